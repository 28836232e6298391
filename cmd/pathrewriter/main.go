// Command pathrewriter is the viewer-request edge function. It rewrites the
// request uri to the static object to serve and leaves /app/ paths for the
// application tier.
package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/config"
	"github.com/CSroseX/edge-path-rewriter/internal/observability"
	"github.com/CSroseX/edge-path-rewriter/internal/viewer"
)

// Viewer-request functions take no environment, so these are fixed at build.
const (
	logLevel       = "info"
	tracingEnabled = false
)

func main() {
	logger, err := observability.NewLogger(logLevel)
	if err != nil {
		log.Fatal(err)
	}

	var shutdown func(context.Context) error
	if tracingEnabled {
		shutdown, err = observability.InitTracer(config.DefaultServiceName, os.Stdout, observability.WithSyncExport())
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
	}

	h := viewer.NewHandler(viewer.WithLogger(logger.Named("viewer")))
	// lambda.Start never returns; flushing happens in the SIGTERM hook.
	lambda.StartWithOptions(h.Handle, lambda.WithEnableSIGTERM(flusher(logger, shutdown)))
}

// flusher returns the hook run when the sandbox is shutting down.
func flusher(logger *zap.Logger, shutdown func(context.Context) error) func() {
	return func() {
		if shutdown != nil {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("failed to shut down tracer", zap.Error(err))
			}
		}
		_ = logger.Sync()
	}
}
