package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Strob0t/SkillBridge/internal/adapter/groq"
	sbotel "github.com/Strob0t/SkillBridge/internal/adapter/otel"
	"github.com/Strob0t/SkillBridge/internal/config"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
	"github.com/Strob0t/SkillBridge/internal/domain/prompt"
	"github.com/Strob0t/SkillBridge/internal/logger"
	"github.com/Strob0t/SkillBridge/internal/port/llm"
	"github.com/Strob0t/SkillBridge/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

type rootOptions struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "skillbridge",
		Short:         "AI learning-path generator API",
		Long:          `SkillBridge turns a learning goal, background and weekly time budget into a structured multi-week learning plan generated by Groq-hosted models.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", config.DefaultConfigFile, "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file merged into the environment")

	cmd.AddCommand(
		newServeCmd(opts),
		newGenerateCmd(opts),
		newProbeCmd(opts),
		newModelsCmd(opts),
	)
	return cmd
}

// app bundles the configuration and logger shared by every command.
type app struct {
	cfg      *config.Config
	closeLog logger.Closer
}

// bootstrap loads configuration and installs the default logger writing to w.
func bootstrap(opts *rootOptions, w io.Writer) (*app, error) {
	cfg, err := config.LoadFrom(opts.configFile, opts.envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Create a .env file with GROQ_API_KEY=your_groq_key_here (free keys: https://console.groq.com/keys)")
		}
		return nil, err
	}

	log, closer := logger.NewWithWriter(cfg.Logging, w)
	slog.SetDefault(log)

	return &app{cfg: cfg, closeLog: closer}, nil
}

func (a *app) close() { a.closeLog.Close() }

func (a *app) groqClient() *groq.Client {
	return groq.NewClient(a.cfg.Groq.BaseURL, a.cfg.Groq.APIKey, 0)
}

// planService wires the invoker and normalizer. metrics may be nil.
func (a *app) planService(metrics *sbotel.Metrics) *service.PlanService {
	g := a.cfg.Groq
	inv := service.NewModelInvoker(a.groqClient(), service.InvokerConfig{
		Models:         g.Models,
		System:         prompt.System,
		Params:         llm.Params{Temperature: g.Temperature, TopP: g.TopP, MaxTokens: g.MaxTokens},
		AttemptTimeout: g.AttemptTimeout,
	}, metrics)
	return service.NewPlanService(inv, plan.NewNormalizer(), service.PlanServiceConfig{
		RecommendedModel: g.RecommendedModel,
		ProbeModels:      g.ProbeModels,
	}, metrics)
}
