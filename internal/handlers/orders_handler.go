package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
	"github.com/imrishuroy/ordering-helper-mock/internal/validation"
)

func (h *handler) createOrder(c *gin.Context) {
	ctx := c.Request.Context()

	// Bind + validate request
	var req validation.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		// BindAndValidate already wrote a 400
		h.logger.WithFields(log.Fields{
			"fields": validation.FieldErrors(err),
		}).Info("order rejected")
		return
	}

	items := make([]orders.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.Item(it))
	}

	order := h.orders.Create(ctx, orders.Request{
		StoreID:  req.StoreID,
		Items:    items,
		Language: req.Language,
	})
	if h.metrics != nil {
		h.metrics.OrderCreated(order.StoreID, order.TotalAmount)
	}

	h.logger.WithFields(log.Fields{
		"order_id":     order.OrderID,
		"store_id":     order.StoreID,
		"total_amount": order.TotalAmount,
	}).Info("order created")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgOrderCreated,
		"order":   order,
	})
}
