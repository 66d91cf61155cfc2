package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *handler) listStores(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListStores())
}

func (h *handler) getStore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgStoreNotFound})
		return
	}

	store, err := h.catalog.GetStore(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgStoreNotFound})
		return
	}
	c.JSON(http.StatusOK, store)
}
