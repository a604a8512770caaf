package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
	"github.com/mamadbah2/dairybook/internal/service/purchasing"
)

// PurchaseHandler serves purchase orders and receiving.
type PurchaseHandler struct {
	svc    *purchasing.Service
	logger *zap.Logger
}

// NewPurchaseHandler constructs the HTTP handler adapter.
func NewPurchaseHandler(svc *purchasing.Service, logger *zap.Logger) *PurchaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseHandler{svc: svc, logger: logger}
}

// Create adds a purchase order.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchasing.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), middleware.FarmID(c), req)
	if err != nil {
		h.logger.Error("failed creating order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Edit replaces an order's vendor and items, recomputing the total.
func (h *PurchaseHandler) Edit(c *gin.Context) {
	var req purchasing.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.svc.EditOrder(c.Request.Context(), middleware.FarmID(c), c.Param("id"), req)
	switch {
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	case errors.Is(err, purchasing.ErrOrderClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "order already fully received"})
		return
	case err != nil:
		h.logger.Error("failed editing order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to edit order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

type receiveRequest struct {
	Received map[string]string `json:"received" binding:"required"`
}

// Receive records a receiving event against an order.
func (h *PurchaseHandler) Receive(c *gin.Context) {
	var req receiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid receive payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.ReceiveOrder(c.Request.Context(), middleware.FarmID(c), c.Param("id"), req.Received)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed receiving order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record receiving"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns the farm's orders.
func (h *PurchaseHandler) List(c *gin.Context) {
	orders, err := h.svc.Orders(c.Request.Context(), middleware.FarmID(c))
	if err != nil {
		h.logger.Error("failed listing orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Get returns one order.
func (h *PurchaseHandler) Get(c *gin.Context) {
	order, err := h.svc.Order(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// Receivings returns an order's receiving history.
func (h *PurchaseHandler) Receivings(c *gin.Context) {
	records, err := h.svc.Receivings(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing receivings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list receivings"})
		return
	}

	c.JSON(http.StatusOK, records)
}
