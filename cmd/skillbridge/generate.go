package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	sbotel "github.com/Strob0t/SkillBridge/internal/adapter/otel"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var req plan.Request

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one learning plan and print it as JSON",
		Example: `  skillbridge generate --goal "Master JavaScript" --background beginner --time 5-10
  skillbridge generate --goal "Learn Data Analysis" --background some_exp --time 10-15 --skills "Excel"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			metrics, err := sbotel.NewMetrics(otel.GetMeterProvider())
			if err != nil {
				return err
			}
			p, err := a.planService(metrics).Generate(cmd.Context(), req)
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&req.Goal, "goal", "", "learning goal (required)")
	cmd.Flags().StringVar(&req.Background, "background", "beginner", "background id: beginner, some_exp, intermediate, professional")
	cmd.Flags().StringVar(&req.TimeCommitment, "time", "5-10", "weekly time commitment id: 5-10, 10-15, 15-20, 20+")
	cmd.Flags().StringVar(&req.CurrentSkills, "skills", "", "skills the learner already has")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}
