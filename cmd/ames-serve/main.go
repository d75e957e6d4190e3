// Command ames-serve loads a trained model and serves predictions over
// HTTP until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aditi-Asati/ames-price-prediction/pipeline"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
	"github.com/Aditi-Asati/ames-price-prediction/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the pipeline config file")
	modelPath := flag.String("model", "", "path to a trained model (overrides server.model_path)")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	if err := run(*configPath, *modelPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "ames-serve: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, modelPath, addr string) error {
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if modelPath == "" {
		modelPath = cfg.Server.ModelPath
	}
	if modelPath == "" {
		return fmt.Errorf("no model path: set server.model_path or pass -model")
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logger := log.NewZerologLogger(os.Stderr, log.ToLogLevel(cfg.Log.Level))

	svc, err := server.NewPredictionService(modelPath, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
