package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
	"github.com/mamadbah2/dairybook/internal/service/reporting"
)

// LedgerHandler serves the cash and expense ledgers.
type LedgerHandler struct {
	repo    mongodb.LedgerRepository
	reports *reporting.Service
	logger  *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(repo mongodb.LedgerRepository, reports *reporting.Service, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{repo: repo, reports: reports, logger: logger}
}

type cashRequest struct {
	Date   string `json:"date" binding:"required"`
	Kind   string `json:"kind" binding:"required,oneof=in out"`
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// CreateCash adds a cash ledger row.
func (h *LedgerHandler) CreateCash(c *gin.Context) {
	var req cashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid cash payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	farmID := middleware.FarmID(c)
	entry, err := h.repo.CreateCashEntry(c.Request.Context(), models.CashEntry{
		FarmID:    farmID,
		Date:      req.Date,
		Kind:      req.Kind,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed creating cash entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create cash entry"})
		return
	}

	h.reports.InvalidateForDate(c.Request.Context(), farmID, req.Date)
	c.JSON(http.StatusCreated, entry)
}

// DeleteCash removes a cash ledger row.
func (h *LedgerHandler) DeleteCash(c *gin.Context) {
	h.deleteEntry(c, h.repo.DeleteCashEntry)
}

// ListCash returns cash rows for ?start&end.
func (h *LedgerHandler) ListCash(c *gin.Context) {
	entries, err := h.repo.ListCashEntries(c.Request.Context(),
		middleware.FarmID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.logger.Error("failed listing cash entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cash entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

type expenseRequest struct {
	Date     string `json:"date" binding:"required"`
	Category string `json:"category" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Note     string `json:"note"`
}

// CreateExpense adds an expense ledger row.
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	farmID := middleware.FarmID(c)
	entry, err := h.repo.CreateExpenseEntry(c.Request.Context(), models.ExpenseEntry{
		FarmID:    farmID,
		Date:      req.Date,
		Category:  req.Category,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed creating expense entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expense entry"})
		return
	}

	h.reports.InvalidateForDate(c.Request.Context(), farmID, req.Date)
	c.JSON(http.StatusCreated, entry)
}

// DeleteExpense removes an expense ledger row.
func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	h.deleteEntry(c, h.repo.DeleteExpenseEntry)
}

// ListExpenses returns expense rows for ?start&end.
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	entries, err := h.repo.ListExpenseEntries(c.Request.Context(),
		middleware.FarmID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.logger.Error("failed listing expense entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expense entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *LedgerHandler) deleteEntry(c *gin.Context, del func(ctx context.Context, farmID, id string) error) {
	err := del(c.Request.Context(), middleware.FarmID(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}
