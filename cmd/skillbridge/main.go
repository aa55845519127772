// Command skillbridge serves the SkillBridge learning-path API and offers
// one-shot commands for generating plans and checking the provider.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
