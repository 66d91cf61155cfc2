package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/aws"
	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
	"github.com/imrishuroy/ordering-helper-mock/internal/config"
	"github.com/imrishuroy/ordering-helper-mock/internal/handlers"
	"github.com/imrishuroy/ordering-helper-mock/internal/ids"
	"github.com/imrishuroy/ordering-helper-mock/internal/metrics"
	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
)

// setupLogger configures the global logrus logger.
func setupLogger(level log.Level) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
}

// setupRouter wires fixtures, simulators and handlers into a gin engine.
// reg is nil when metrics are disabled.
func setupRouter(cfg config.Config, notifier orders.Notifier, reg *prometheus.Registry) (*gin.Engine, error) {
	logger := log.WithField("component", "api")

	gen, err := ids.New(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}
	cat := catalog.Default()

	r := gin.New()
	r.Use(handlers.Recovery(logger), handlers.RequestLogger(logger), cors.Default())

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.NewWithRegisterer(reg)
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	handlers.RegisterRoutes(r, handlers.HandlerConfig{
		Catalog: cat,
		OCR:     ocr.NewSimulator(cat, gen, cfg.OCRDelay),
		Orders:  orders.NewService(gen, notifier, log.WithField("component", "orders")),
		Metrics: m,
		Logger:  logger,
	})

	return r, nil
}

// buildNotifier returns the configured order-created sinks, or nil when none
// is configured.
func buildNotifier(ctx context.Context, cfg config.Config) (orders.Notifier, error) {
	if !cfg.NeedsAWS() {
		return nil, nil
	}

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		return nil, err
	}

	var ns orders.Notifiers
	if cfg.OrdersQueueURL != "" {
		ns = append(ns, aws.NewPublisher(clients.SQS, cfg.OrdersQueueURL))
	}
	if cfg.CloudWatchNamespace != "" {
		ns = append(ns, aws.NewMetricsEmitter(clients.CloudWatch, cfg.CloudWatchNamespace))
	}
	return ns, nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// serveLocal runs the HTTP server until ctx is canceled.
func serveLocal(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("mock backend listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, draining http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogger(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to init aws clients")
	}

	var reg *prometheus.Registry
	if cfg.MetricsEnabled {
		reg = newRegistry()
	}

	r, err := setupRouter(cfg, notifier, reg)
	if err != nil {
		log.WithError(err).Fatal("failed to build router")
	}

	// RUN_LOCAL=true serves plain HTTP for development and the smoke driver.
	if cfg.RunLocal {
		log.WithFields(log.Fields{
			"addr":      cfg.HTTPAddr,
			"ocr_delay": cfg.OCRDelay,
			"ids":       cfg.IDStrategy,
		}).Info("starting mock backend")
		for _, route := range r.Routes() {
			log.Debugf("  %-6s %s", route.Method, route.Path)
		}
		if err := serveLocal(ctx, cfg.HTTPAddr, r); err != nil {
			log.WithError(err).Fatal("local server failed")
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
