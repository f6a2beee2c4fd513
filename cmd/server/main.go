// Command server exposes a bounded cache over HTTP and gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cache-manager/internal/config"
	"cache-manager/internal/core/service"
	cachegrpc "cache-manager/internal/grpc"
	"cache-manager/internal/observability"
	"cache-manager/internal/store"
	"cache-manager/internal/store/policy"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	var cfg config.Server
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	metrics := observability.New(reg, cfg.MetricsNamespace)

	cache, err := newCache(cfg, metrics, logger)
	if err != nil {
		return err
	}
	svc := service.New(cache,
		service.WithMetrics(metrics),
		service.WithLogger(logger),
		service.WithPolicyName(string(cfg.Policy)),
	)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newMux(svc, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := grpc.NewServer()
	cachegrpc.Register(grpcSrv, cachegrpc.New(svc))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", slog.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		logger.Info("grpc listening", slog.String("addr", cfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newCache builds the mutex-guarded cache described by cfg.
func newCache(cfg config.Server, metrics store.Metrics, logger *slog.Logger) (*store.Locked[string, string], error) {
	kind, err := policy.ParseKind(string(cfg.Policy))
	if err != nil {
		return nil, err
	}
	p, err := policy.New[string](kind)
	if err != nil {
		return nil, err
	}
	opts := []store.Option[string, string]{
		store.WithMetrics[string, string](metrics),
		store.WithLogger[string, string](logger.With(slog.String("component", "cache"))),
	}
	if cfg.Overwrite {
		opts = append(opts, store.WithOverwrite[string, string]())
	}
	c, err := store.New(cfg.Capacity, p, opts...)
	if err != nil {
		return nil, err
	}
	return store.NewLocked(c), nil
}

func newLogger(cfg config.Server) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
