// Command gateway runs the edge rewrite locally in front of a static
// directory and an application backend.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/analytics"
	"github.com/CSroseX/edge-path-rewriter/internal/config"
	"github.com/CSroseX/edge-path-rewriter/internal/middleware"
	"github.com/CSroseX/edge-path-rewriter/internal/observability"
	"github.com/CSroseX/edge-path-rewriter/internal/proxy"
	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracer(cfg.Tracing.ServiceName, os.Stdout)
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	// ---- Redis ----
	var stats *analytics.Analytics
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		stats = analytics.NewAnalytics(redisClient)
	}

	handler, err := newHandler(cfg, stats, logger)
	if err != nil {
		logger.Fatal("failed to build handler", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("edge gateway listening",
			zap.String("address", cfg.Server.Address),
			zap.String("static", cfg.Static.Dir),
			zap.String("backend", cfg.Backend.URL),
			zap.Bool("analytics", stats != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

// newHandler wires the edge emulation chain:
// logging -> tracing -> site -> rewrite -> analytics -> router.
func newHandler(cfg *config.Config, stats *analytics.Analytics, logger *zap.Logger) (http.Handler, error) {
	// ---- Backend ----
	appHandler, err := proxy.ProxyHandler(cfg.Backend.URL, logger.Named("proxy"))
	if err != nil {
		return nil, err
	}

	// ---- Router ----
	router := proxy.NewRouter(proxy.StaticHandler(cfg.Static.Dir))
	router.AddRoute(rewrite.AppPrefix, appHandler)

	var edge http.Handler = router
	if stats != nil {
		edge = analytics.Middleware(stats, logger.Named("analytics"), edge)
	}
	edge = site.Middleware(middleware.Rewrite(edge))

	// admin routes bypass the rewrite
	root := proxy.NewRouter(edge)
	if stats != nil {
		root.AddRoute("/admin/rewrites", analytics.Handler(stats, logger.Named("analytics")))
	}

	return middleware.Logging(logger.Named("access"))(middleware.Tracing(root)), nil
}
