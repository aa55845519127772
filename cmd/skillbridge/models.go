package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newModelsCmd(opts *rootOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the configured model fallback order",
		Long:  `List the configured models in the order they are tried. With --remote, list the models the provider offers to the configured key instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			if remote {
				ids, err := a.groqClient().ListModels(cmd.Context())
				if err != nil {
					return fmt.Errorf("list remote models: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), ids)
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"models":      a.cfg.Groq.Models,
				"recommended": a.cfg.Groq.RecommendedModel,
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "query the provider's model list")
	return cmd
}
