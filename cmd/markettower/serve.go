package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0shark/markettower/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MarketTower HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := bootstrap(true)
	if err != nil {
		return err
	}
	log := d.log
	defer log.Sync()

	log.Info("starting MarketTower server",
		zap.String("host", d.cfg.Server.Host),
		zap.Int("port", d.cfg.Server.Port),
		zap.Bool("metrics", d.metrics != nil),
	)

	server, err := api.NewServer(api.Config{
		Host:        d.cfg.Server.Host,
		Port:        d.cfg.Server.Port,
		MetricsPath: d.cfg.Metrics.Path,
	}, api.Dependencies{
		Service:  d.service,
		Calendar: d.calendar,
		Table:    d.table,
		Metrics:  d.metrics,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	log.Info("shutting down MarketTower server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
