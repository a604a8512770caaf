package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
)

// EmployeeHandler serves the worker payment history.
type EmployeeHandler struct {
	repo   mongodb.PaymentRepository
	logger *zap.Logger
}

// NewEmployeeHandler constructs the HTTP handler adapter.
func NewEmployeeHandler(repo mongodb.PaymentRepository, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{repo: repo, logger: logger}
}

type paymentRequest struct {
	Employee string `json:"employee" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=salary advance"`
	Amount   string `json:"amount" binding:"required"`
	Note     string `json:"note"`
}

// CreatePayment records a wage or advance payment.
func (h *EmployeeHandler) CreatePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid payment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	payment, err := h.repo.CreatePayment(c.Request.Context(), models.EmployeePayment{
		FarmID:    middleware.FarmID(c),
		Employee:  req.Employee,
		Date:      req.Date,
		Kind:      req.Kind,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed creating payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// DeletePayment removes a payment row.
func (h *EmployeeHandler) DeletePayment(c *gin.Context) {
	err := h.repo.DeletePayment(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPayments returns payments for ?start&end.
func (h *EmployeeHandler) ListPayments(c *gin.Context) {
	payments, err := h.repo.ListPayments(c.Request.Context(),
		middleware.FarmID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.logger.Error("failed listing payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
