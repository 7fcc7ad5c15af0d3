package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/engine-cycle/internal/api"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP query server",
	Long: `Serves the model over HTTP. All responses are JSON except the CSV export
and the Prometheus endpoint.

Routes:
  GET   /api/config               configuration and derived geometry
  PATCH /api/config               partial update, e.g. {"rpm": 3000}
  POST  /api/config/reset         restore the starting configuration
  GET   /api/models               registered pressure models
  GET   /api/volume/{theta}       cylinder volume
  GET   /api/pressure/{theta}     pressure (?model=)
  GET   /api/state/{theta}        full state at a crank angle (?model=)
  GET   /api/cycle                sampled cycle (?model=&step=)
  GET   /api/cycle.csv            sampled cycle as CSV (?model=&step=)
  GET   /api/performance          indicated performance (?model=)
  GET   /metrics                  Prometheus metrics

Examples:
  enginecycle api
  enginecycle api --addr :9000 --preset cruise`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (default from config)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger("enginecycle-api")
	if err != nil {
		return err
	}

	addr := s.config.API.Address
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}
	logger.Info("configuration loaded", "source", s.source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(s.engine, addr, logger).ListenAndServe(ctx)
}
