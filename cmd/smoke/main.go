package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
	"github.com/imrishuroy/ordering-helper-mock/internal/smoke"
)

func main() {
	baseURL := flag.String("base-url", envOr("API_BASE_URL", "http://localhost:3001"), "ordering API base URL")
	minDelay := flag.Duration("min-ocr-delay", ocr.DefaultDelay, "latency floor expected from the OCR endpoint")
	skipOCR := flag.Bool("skip-ocr", false, "skip the slow OCR checks")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	verbose := flag.Bool("v", false, "log every check")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	log.WithField("base_url", *baseURL).Info("running smoke checks")
	runner := smoke.NewRunner(smoke.Options{
		BaseURL:     *baseURL,
		MinOCRDelay: *minDelay,
		SkipOCR:     *skipOCR,
	})

	if failed := smoke.Report(os.Stdout, runner.Run(ctx)); failed > 0 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
