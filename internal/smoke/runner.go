package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Languages exercised against the menu and OCR endpoints.
var Languages = []string{"zh-TW", "en-US", "ja-JP", "ko-KR"}

// Options configures a Runner.
type Options struct {
	BaseURL string
	// MinOCRDelay is the latency floor the OCR endpoint must respect.
	MinOCRDelay time.Duration
	SkipOCR     bool
	Client      *http.Client
	Logger      *log.Entry
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the check succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Runner drives the ordering API end to end.
type Runner struct {
	base     string
	minDelay time.Duration
	skipOCR  bool
	client   *http.Client
	logger   *log.Entry
}

// NewRunner returns a Runner for opts.
func NewRunner(opts Options) *Runner {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "smoke")
	}
	return &Runner{
		base:     strings.TrimRight(opts.BaseURL, "/"),
		minDelay: opts.MinOCRDelay,
		skipOCR:  opts.SkipOCR,
		client:   client,
		logger:   logger,
	}
}

type check struct {
	name string
	fn   func(ctx context.Context) error
}

func (r *Runner) checks() []check {
	cs := []check{
		{"health", r.checkHealth},
		{"list stores", r.checkListStores},
		{"get store 1", r.checkGetStore},
		{"get missing store", r.checkMissingStore},
	}
	for _, lang := range Languages {
		lang := lang
		cs = append(cs, check{"menu " + lang, func(ctx context.Context) error { return r.checkMenu(ctx, lang) }})
	}
	cs = append(cs, check{"menu unsupported language", r.checkMenuUnsupported})
	if !r.skipOCR {
		for _, lang := range Languages {
			lang := lang
			cs = append(cs, check{"ocr " + lang, func(ctx context.Context) error { return r.checkOCR(ctx, lang, "") }})
		}
		cs = append(cs, check{"ocr fallback", func(ctx context.Context) error { return r.checkOCR(ctx, "fr-FR", "牛肉麵") }})
	}
	cs = append(cs,
		check{"create order", r.checkCreateOrder},
		check{"order total", r.checkOrderTotal},
		check{"reject order without store", r.checkRejectOrder},
		check{"distinct order ids", r.checkDistinctOrderIDs},
	)
	return cs
}

// Run executes every check in order. It stops early only if ctx ends.
func (r *Runner) Run(ctx context.Context) []Result {
	var results []Result
	for _, c := range r.checks() {
		if ctx.Err() != nil {
			results = append(results, Result{Name: c.name, Err: ctx.Err()})
			continue
		}
		start := time.Now()
		err := c.fn(ctx)
		res := Result{Name: c.name, Err: err, Duration: time.Since(start)}
		entry := r.logger.WithFields(log.Fields{"check": c.name, "duration": res.Duration})
		if err != nil {
			entry.WithError(err).Warn("check failed")
		} else {
			entry.Debug("check passed")
		}
		results = append(results, res)
	}
	return results
}

// Report writes a pass/fail summary and returns the number of failures.
func Report(w io.Writer, results []Result) int {
	failed := 0
	for _, res := range results {
		mark := "PASS"
		if !res.Passed() {
			mark = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s  %-30s %8s", mark, res.Name, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			fmt.Fprintf(w, "  %v", res.Err)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", len(results)-failed, failed)
	return failed
}

func (r *Runner) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.base+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

func (r *Runner) postJSON(ctx context.Context, path string, in, out interface{}) (int, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("encode body: %w", err)
	}
	return r.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(b), out)
}

func expectStatus(got, want int) error {
	if got != want {
		return fmt.Errorf("status %d, want %d", got, want)
	}
	return nil
}
