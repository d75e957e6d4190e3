// Command ames-train runs the full training pipeline described by a
// config file and writes the model and metrics to the artifacts
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aditi-Asati/ames-price-prediction/pipeline"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the pipeline config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ames-train: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.NewTrainingPipeline(cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished in %s\n", result.RunID, result.Duration.Round(0))
	fmt.Printf("model:   %s\n", result.ModelPath)
	fmt.Printf("metrics: %s\n", result.MetricsPath)
	for _, name := range []string{"MAE", "MSE", "RMSE", "R2"} {
		fmt.Printf("  %-5s %f\n", name, result.Metrics[name])
	}
	return nil
}

func newLogger(cfg pipeline.LogConfig) log.Logger {
	level := log.ToLogLevel(cfg.Level)
	if cfg.Format == "slog" {
		return log.NewJSONLogger(os.Stderr, level)
	}
	return log.NewZerologLogger(os.Stderr, level)
}
