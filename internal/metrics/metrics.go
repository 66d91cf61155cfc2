package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ocrDuration     *prometheus.HistogramVec
	ocrInFlight     prometheus.Gauge
	ordersCreated   *prometheus.CounterVec
	orderAmount     prometheus.Counter
}

// New registers collectors on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers collectors on registerer. Collectors that are
// already registered are reused.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		requests: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ordering_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"})),
		requestDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ordering_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 2.5, 5},
		}, []string{"route", "method"})),
		ocrDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ordering_ocr_duration_seconds",
			Help:    "Simulated OCR latency by outcome",
			Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 5},
		}, []string{"outcome"})),
		ocrInFlight: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ordering_ocr_in_flight",
			Help: "OCR requests currently waiting on the simulated delay",
		})),
		ordersCreated: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ordering_orders_created_total",
			Help: "Orders created by store",
		}, []string{"store_id"})),
		orderAmount: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ordering_order_amount_total",
			Help: "Sum of total_amount over created orders",
		})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", are.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// OCRStarted marks one OCR request as waiting.
func (m *Metrics) OCRStarted() { m.ocrInFlight.Inc() }

// OCRFinished records how an OCR request ended and how long it took.
func (m *Metrics) OCRFinished(outcome string, d time.Duration) {
	m.ocrInFlight.Dec()
	m.ocrDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// OrderCreated counts an order and its amount.
func (m *Metrics) OrderCreated(storeID int, amount int64) {
	m.ordersCreated.WithLabelValues(strconv.Itoa(storeID)).Inc()
	m.orderAmount.Add(float64(amount))
}
