package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/jusunglee/hangulnum/internal/db/postgres"
	"github.com/jusunglee/hangulnum/internal/db/store"
	"github.com/jusunglee/hangulnum/internal/health"
	"github.com/jusunglee/hangulnum/internal/logger"
	"github.com/jusunglee/hangulnum/internal/metrics"
	"github.com/jusunglee/hangulnum/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("hangulnum-web")

	var (
		port              = fs.Int64Long("port", 3000, "HTTP server port")
		metricsPort       = fs.Int64Long("metrics-port", 0, "Serve /metrics on a separate port (0 serves it on --port)")
		databaseURL       = fs.StringLong("database-url", "", "History store: postgres://..., sqlite://path, or empty to disable")
		allowedOrigins    = fs.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS origins")
		adminAPIKey       = fs.StringLong("admin-api-key", "", "API key for pruning history (empty disables the route)")
		requestsPerMinute = fs.IntLong("requests-per-minute", 120, "Per-client request limit")
		trustProxyHeaders = fs.BoolLong("trust-proxy-headers", "Key rate limits on X-Real-IP (only behind a proxy that sets it)")
		historyRetention  = fs.DurationLong("history-retention", 30*24*time.Hour, "Delete history older than this (0 keeps everything)")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	if err := health.Check(); err != nil {
		return fmt.Errorf("startup self check: %w", err)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	repo, err := store.Open(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	if repo != nil {
		defer repo.Close()
		log.InfoContext(ctx, "conversion history enabled")
	} else {
		log.InfoContext(ctx, "conversion history disabled")
	}

	router := web.NewRouter(repo, log, web.Config{
		AllowedOrigins:    splitOrigins(*allowedOrigins),
		AdminAPIKey:       *adminAPIKey,
		RequestsPerMinute: *requestsPerMinute,
		TrustProxyHeaders: *trustProxyHeaders,
	})

	mux := http.NewServeMux()
	if *metricsPort == 0 {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", router.Handler())

	servers := []*http.Server{newServer(*port, mux)}
	if *metricsPort != 0 {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		servers = append(servers, newServer(*metricsPort, metricsMux))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
			cancel(errors.New("signal received"))
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	for _, server := range servers {
		g.Go(func() error {
			log.InfoContext(gctx, "starting http server", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", server.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.ErrorContext(shutdownCtx, "server shutdown error", "addr", server.Addr, "error", err)
			}
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				router.PruneRateLimiter()
			case <-gctx.Done():
				return nil
			}
		}
	})

	if pg, ok := repo.(*postgres.Repository); ok {
		g.Go(func() error {
			exportPoolStats(gctx, pg)
			return nil
		})
	}

	if repo != nil && *historyRetention > 0 {
		g.Go(func() error {
			pruneHistory(gctx, repo, *historyRetention, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

func newServer(port int64, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// exportPoolStats periodically copies pgxpool stats into Prometheus gauges.
func exportPoolStats(ctx context.Context, repo *postgres.Repository) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := repo.PoolStats()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}

func pruneHistory(ctx context.Context, repo db.Repository, retention time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		deleted, err := repo.DeleteConversionsBefore(ctx, time.Now().Add(-retention))
		if err != nil {
			log.ErrorContext(ctx, "pruning conversion history", "error", err)
		} else if deleted > 0 {
			log.InfoContext(ctx, "pruned conversion history", "deleted", deleted)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
