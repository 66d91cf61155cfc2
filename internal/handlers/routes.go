package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
	"github.com/imrishuroy/ordering-helper-mock/internal/metrics"
	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
	"github.com/imrishuroy/ordering-helper-mock/internal/validation"
)

// Client-facing messages. The frontend displays them verbatim.
const (
	msgHealthy             = "Mock backend is running"
	msgStoreNotFound       = "店家不存在"
	msgUnsupportedLanguage = "不支援的語言"
	msgOCRDone             = "OCR 辨識完成"
	msgOrderCreated        = "訂單建立成功"
	msgNotFound            = "not found"
	msgInternal            = "internal server error"
)

// statusClientClosedRequest is recorded when the caller leaves before a
// response is ready.
const statusClientClosedRequest = 499

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	Catalog *catalog.Catalog
	OCR     *ocr.Simulator
	Orders  *orders.Service
	Metrics *metrics.Metrics // optional
	Logger  *log.Entry       // optional
}

type handler struct {
	catalog  *catalog.Catalog
	ocr      *ocr.Simulator
	orders   *orders.Service
	metrics  *metrics.Metrics
	validate *validatorv10.Validate
	logger   *log.Entry
}

// RegisterRoutes registers the /api routes and the JSON 404 fallback.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.WithField("component", "handlers")
	}
	h := &handler{
		catalog:  cfg.Catalog,
		ocr:      cfg.OCR,
		orders:   cfg.Orders,
		metrics:  cfg.Metrics,
		validate: validation.New(),
		logger:   logger,
	}

	api := r.Group("/api")
	api.GET("/health", h.health)
	api.GET("/stores", h.listStores)
	api.GET("/stores/:id", h.getStore)
	api.GET("/menus/:storeId", h.getMenu)
	api.POST("/upload-menu-image", h.uploadMenuImage)
	api.POST("/orders", h.createOrder)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	})
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": msgHealthy})
}
