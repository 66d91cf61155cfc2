package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
)

// getMenu validates the store before the language, so an unknown store wins
// over an unknown language.
func (h *handler) getMenu(c *gin.Context) {
	storeID, err := strconv.Atoi(c.Param("storeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgStoreNotFound})
		return
	}
	if _, err := h.catalog.GetStore(storeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgStoreNotFound})
		return
	}

	lang := c.Query("lang")
	if lang == "" {
		lang = catalog.DefaultLanguage
	}

	menu, err := h.catalog.GetMenu(lang)
	if errors.Is(err, catalog.ErrUnsupportedLanguage) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnsupportedLanguage})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	c.JSON(http.StatusOK, menu)
}
