package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/synthmod_backend/internal/app/ingesthttp"
	"github.com/sir_venger/synthmod_backend/internal/app/opshttp"
	"github.com/sir_venger/synthmod_backend/internal/config"
	"github.com/sir_venger/synthmod_backend/internal/logging"
	"github.com/sir_venger/synthmod_backend/internal/usecase/recordsvc"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// main проверяет конфигурацию, поднимает HTTPS-листенер и корректно завершается по сигналу.
func main() {
	logger := logging.New(os.Stdout, "info")
	level.Info(logger).Log("msg", "--- Starting up Synthesis Modifiability backend server ---")

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
	logger = logging.New(os.Stdout, cfg.LogLevel)

	if err = run(cfg, logger); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger log.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	registerer := prometheus.WrapRegistererWithPrefix("synthmod_", registry)

	records := recordsvc.New(recordsvc.Deps{
		DataDir:         cfg.DataDir,
		Logger:          log.With(logger, "component", "records"),
		Metrics:         recordsvc.NewMetrics(registerer),
		UniqueFilenames: cfg.UniqueFilenames,
	})

	server := &http.Server{
		Addr: config.ListenAddr,
		Handler: ingesthttp.New(ingesthttp.Deps{
			Records:    records,
			Logger:     log.With(logger, "component", "http"),
			Registerer: registerer,
		}),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          logging.StdLogger(log.With(logger, "component", "http")),
	}

	servers := []*http.Server{server}
	var ops *http.Server
	if cfg.OpsAddr != "" {
		ops = &http.Server{
			Addr:              cfg.OpsAddr,
			Handler:           opshttp.New(cfg.DataDir, registry),
			ReadHeaderTimeout: readHeaderTimeout,
		}
		servers = append(servers, ops)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		level.Info(logger).Log("msg", "Listening", "addr", config.ListenAddr)
		if err := server.ListenAndServeTLS(cfg.FullchainPath, cfg.PrivkeyPath); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if ops != nil {
		eg.Go(func() error {
			level.Info(logger).Log("msg", "Ops listening", "addr", cfg.OpsAddr)
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении листенера.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				level.Warn(logger).Log("msg", "shutdown error", "addr", s.Addr, "err", err)
			}
		}
		return nil
	})

	err := eg.Wait()
	level.Info(logger).Log("msg", "stopped")
	return err
}
