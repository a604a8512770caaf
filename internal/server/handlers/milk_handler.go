package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
	milksvc "github.com/mamadbah2/dairybook/internal/service/milk"
)

// MilkHandler serves the daily shift entry screens.
type MilkHandler struct {
	svc    *milksvc.Service
	logger *zap.Logger
}

// NewMilkHandler constructs the HTTP handler adapter.
func NewMilkHandler(svc *milksvc.Service, logger *zap.Logger) *MilkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MilkHandler{svc: svc, logger: logger}
}

type saveShiftRequest struct {
	Entries models.ShiftTally `json:"entries"`
}

// SaveShift replaces one (species, shift) mapping for a date.
func (h *MilkHandler) SaveShift(c *gin.Context) {
	var req saveShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid shift payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.SaveShift(c.Request.Context(),
		middleware.FarmID(c),
		c.Param("date"),
		models.Species(c.Param("species")),
		models.Shift(c.Param("shift")),
		req.Entries,
	)
	if err != nil {
		h.logger.Warn("failed saving shift", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Day returns the full record for one date.
func (h *MilkHandler) Day(c *gin.Context) {
	record, err := h.svc.Day(c.Request.Context(), middleware.FarmID(c), c.Param("date"))
	if err != nil {
		h.logger.Warn("failed loading day", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Range returns all records in an inclusive date range.
func (h *MilkHandler) Range(c *gin.Context) {
	records, err := h.svc.Range(c.Request.Context(),
		middleware.FarmID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.logger.Warn("failed loading range", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
