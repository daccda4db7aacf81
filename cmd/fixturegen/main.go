package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/miradorstack/mirador-fixtures/internal/config"
	"github.com/miradorstack/mirador-fixtures/internal/metrics"
	"github.com/miradorstack/mirador-fixtures/internal/services"
	"github.com/miradorstack/mirador-fixtures/internal/utils"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

type flags struct {
	configPath string
	outDir     string
	seed       int64
	parallel   bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "fixturegen:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "fixturegen",
		Short: "Generate sample fixtures for RLM testing",
		Long: `fixturegen writes four sample files for exercising the RLM workflow:

- an application log with errors and stack traces
- Kubernetes manifests with planted security issues
- a Terraform plan with insecure resources
- a JSONL metrics stream with CPU, memory and error-rate incidents`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	rootCmd.Flags().StringVar(&f.configPath, "config", "", "path to a YAML config file (default: $FIXTURES_CONFIG)")
	rootCmd.Flags().StringVar(&f.outDir, "out", "", "output directory (default: context)")
	rootCmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default: time-based)")
	rootCmd.Flags().BoolVar(&f.parallel, "parallel", false, "run producers concurrently")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fixturegen %s (%s)\n", Version, GitCommit)
		},
	})

	return rootCmd
}

func run(cmd *cobra.Command, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Dir = f.outDir
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = f.parallel
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON, os.Stderr)
	slog.SetDefault(logger)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, "Generating sample data files for RLM testing...")
	fmt.Fprintln(stdout)

	svc := services.NewFixtureService(logger, cfg, services.Options{Progress: stdout})
	sum, err := svc.Generate(ctx)
	if err != nil {
		return err
	}
	return services.WriteSummary(stdout, sum)
}
