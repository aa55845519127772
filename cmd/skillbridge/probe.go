package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newProbeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check that the provider answers with the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.planService(nil).Probe(cmd.Context())
			if err != nil {
				cmd.PrintErrf("GROQ API test failed: %v\n", err)
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}
