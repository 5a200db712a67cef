package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/arloliu/seating"
	"github.com/arloliu/seating/audit"
	"github.com/arloliu/seating/internal/api"
	"github.com/arloliu/seating/internal/config"
	"github.com/arloliu/seating/internal/metrics"
	"github.com/arloliu/seating/store"
)

func serveRun(_ *cobra.Command, _ []string, cfg *config.Config) {
	logger := commonRun(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// serve runs the daemon until ctx is canceled.
func serve(ctx context.Context, cfg *config.Config, logger seating.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheus(reg, cfg.MetricsNamespace)

	st, err := store.NewBadger(
		store.WithDataDir(cfg.Store.DataDir),
		store.WithMaxTxnRetries(cfg.Store.MaxTxnRetries),
		store.WithLogger(logger),
		store.WithMetrics(collector),
	)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("closing store failed", "error", err)
		}
	}()

	opts := []seating.Option{
		seating.WithLogger(logger),
		seating.WithMetrics(collector),
	}
	if cfg.Audit.Enabled {
		nc, err := nats.Connect(cfg.Audit.NATSURL,
			nats.Name(programName),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer nc.Close()

		sink, err := audit.NewJetStream(ctx, nc, audit.JetStreamConfig{
			Stream:        cfg.Audit.Stream,
			SubjectPrefix: cfg.Audit.SubjectPrefix,
			MaxAge:        cfg.Audit.MaxAge,
		}, audit.WithLogger(logger), audit.WithMetrics(collector))
		if err != nil {
			return fmt.Errorf("creating audit sink: %w", err)
		}
		opts = append(opts, seating.WithAuditSink(sink))
		logger.Info("audit publishing enabled", "stream", cfg.Audit.Stream, "url", cfg.Audit.NATSURL)
	}

	engCfg := cfg.Config
	eng, err := seating.NewEngine(&engCfg, st, opts...)
	if err != nil {
		return err
	}

	if !globalFlags.debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := api.NewServer(&api.Config{
		Engine:         eng,
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		MetricsPath:    cfg.MetricsPath,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.OperationTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", cfg.ListenAddress)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the seating API",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			serveRun(cmd, args, cfg)
		},
	}
}
