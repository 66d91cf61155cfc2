package smoke

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
	"github.com/imrishuroy/ordering-helper-mock/internal/handlers"
	"github.com/imrishuroy/ordering-helper-mock/internal/ids"
	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
)

const testDelay = 20 * time.Millisecond

func quietLogger() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.Default()
	gen := ids.NewClock(nil)
	r := gin.New()
	handlers.RegisterRoutes(r, handlers.HandlerConfig{
		Catalog: cat,
		OCR:     ocr.NewSimulator(cat, gen, testDelay),
		Orders:  orders.NewService(gen, nil, quietLogger()),
		Logger:  quietLogger(),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_AllChecksPassAgainstMockBackend(t *testing.T) {
	srv := newBackend(t)
	runner := NewRunner(Options{BaseURL: srv.URL + "/", MinOCRDelay: testDelay, Logger: quietLogger()})

	results := runner.Run(context.Background())
	require.NotEmpty(t, results)
	for _, res := range results {
		assert.True(t, res.Passed(), "%s: %v", res.Name, res.Err)
	}

	var out bytes.Buffer
	assert.Zero(t, Report(&out, results))
	assert.Contains(t, out.String(), "0 failed")
}

func TestRun_DetectsMissingLatencyFloor(t *testing.T) {
	srv := newBackend(t)
	runner := NewRunner(Options{BaseURL: srv.URL, MinOCRDelay: time.Minute, Logger: quietLogger()})

	var ocrFailures int
	for _, res := range runner.Run(context.Background()) {
		if !res.Passed() {
			assert.Contains(t, res.Name, "ocr")
			ocrFailures++
		}
	}
	assert.Equal(t, len(Languages)+1, ocrFailures)
}

func TestRun_SkipOCR(t *testing.T) {
	srv := newBackend(t)
	runner := NewRunner(Options{BaseURL: srv.URL, SkipOCR: true, Logger: quietLogger()})

	for _, res := range runner.Run(context.Background()) {
		assert.NotContains(t, res.Name, "ocr")
	}
}

func TestRun_BrokenBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	runner := NewRunner(Options{BaseURL: srv.URL, SkipOCR: true, Logger: quietLogger()})
	results := runner.Run(context.Background())

	var out bytes.Buffer
	failed := Report(&out, results)
	assert.Equal(t, len(results), failed)
	assert.Contains(t, out.String(), "FAIL")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(Options{BaseURL: "http://127.0.0.1:1", Logger: quietLogger()})
	for _, res := range runner.Run(ctx) {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}
