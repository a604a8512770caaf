package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
)

// CustomerHandler serves the customer book.
type CustomerHandler struct {
	repo   mongodb.CustomerRepository
	logger *zap.Logger
}

// NewCustomerHandler constructs the HTTP handler adapter.
func NewCustomerHandler(repo mongodb.CustomerRepository, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{repo: repo, logger: logger}
}

type customerRequest struct {
	Number      string `json:"number" binding:"required,numeric"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	CowRate     string `json:"cow_rate"`
	BuffaloRate string `json:"buffalo_rate"`
	DebitAmount string `json:"debit_amount"`
}

// Create adds a customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := h.repo.CreateCustomer(c.Request.Context(), models.Customer{
		FarmID:      middleware.FarmID(c),
		Number:      req.Number,
		Name:        req.Name,
		Phone:       req.Phone,
		CowRate:     req.CowRate,
		BuffaloRate: req.BuffaloRate,
		DebitAmount: req.DebitAmount,
	})
	if errors.Is(err, mongodb.ErrDuplicateNumber) {
		c.JSON(http.StatusConflict, gin.H{"error": "customer number already in use"})
		return
	}
	if err != nil {
		h.logger.Error("failed creating customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// Update edits a customer's details. The account number is immutable.
func (h *CustomerHandler) Update(c *gin.Context) {
	farmID := middleware.FarmID(c)

	existing, err := h.repo.GetCustomer(c.Request.Context(), farmID, c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer"})
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.CowRate = req.CowRate
	existing.BuffaloRate = req.BuffaloRate
	existing.DebitAmount = req.DebitAmount

	if err := h.repo.UpdateCustomer(c.Request.Context(), *existing); err != nil {
		h.logger.Error("failed updating customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

// Delete removes a customer. Shift history keeps the account number;
// aggregation drops its entries from then on.
func (h *CustomerHandler) Delete(c *gin.Context) {
	err := h.repo.DeleteCustomer(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns the farm's customers ordered by account number.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.repo.ListCustomers(c.Request.Context(), middleware.FarmID(c))
	if err != nil {
		h.logger.Error("failed listing customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
		return
	}

	sort.SliceStable(customers, func(i, j int) bool {
		a, b := customers[i].Number, customers[j].Number
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})

	c.JSON(http.StatusOK, customers)
}

// Get returns one customer.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.repo.GetCustomer(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}
