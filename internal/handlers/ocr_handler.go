package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
)

// uploadMenuImage accepts a multipart form with an optional `image` file and
// answers with canned dishes once the simulated delay has passed. Unknown
// languages fall back to zh-TW instead of failing.
func (h *handler) uploadMenuImage(c *gin.Context) {
	req := ocr.Request{
		Language: c.PostForm("lang"),
		StoreID:  c.PostForm("store_id"),
	}
	if req.Language == "" {
		req.Language = catalog.DefaultLanguage
	}
	if fh, err := c.FormFile("image"); err == nil {
		req.ImageSize = fh.Size
	}

	logger := h.logger.WithFields(log.Fields{
		"lang":       req.Language,
		"store_id":   req.StoreID,
		"image_size": req.ImageSize,
	})
	logger.Debug("ocr request accepted")

	if h.metrics != nil {
		h.metrics.OCRStarted()
	}
	start := time.Now()

	menu, err := h.ocr.Recognize(c.Request.Context(), req)
	if err != nil {
		if h.metrics != nil {
			h.metrics.OCRFinished("canceled", time.Since(start))
		}
		logger.WithError(err).Warn("ocr request abandoned by client")
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}
	if h.metrics != nil {
		h.metrics.OCRFinished("ok", time.Since(start))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   msgOCRDone,
		"menu_data": menu,
	})
}
