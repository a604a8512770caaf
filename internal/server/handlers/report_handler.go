package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/export"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/repository/sheets"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
	"github.com/mamadbah2/dairybook/internal/service/reporting"
	"github.com/mamadbah2/dairybook/pkg/clients/notify"
)

// ReportHandler serves monthly reports, customer statements, and exports.
type ReportHandler struct {
	svc       *reporting.Service
	customers mongodb.CustomerRepository
	exporter  sheets.Exporter
	notifier  notify.Client
	logger    *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter. exporter may be nil
// when sheet export is not configured.
func NewReportHandler(
	svc *reporting.Service,
	customers mongodb.CustomerRepository,
	exporter sheets.Exporter,
	notifier notify.Client,
	logger *zap.Logger,
) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &ReportHandler{
		svc:       svc,
		customers: customers,
		exporter:  exporter,
		notifier:  notifier,
		logger:    logger,
	}
}

// Monthly returns the report for ?month=YYYY-MM.
func (h *ReportHandler) Monthly(c *gin.Context) {
	report, err := h.svc.MonthlyReport(c.Request.Context(), middleware.FarmID(c), c.Query("month"))
	if err != nil {
		h.logger.Warn("failed building monthly report", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Statement returns one customer's detail view for ?start&end. With
// ?notify=true the settlement figure is also messaged to the customer's
// phone.
func (h *ReportHandler) Statement(c *gin.Context) {
	farmID := middleware.FarmID(c)
	number := c.Param("id")

	statement, err := h.svc.CustomerStatement(c.Request.Context(),
		farmID, number, c.Query("start"), c.Query("end"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	if err != nil {
		h.logger.Warn("failed building statement", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Query("notify") == "true" {
		h.sendStatementNotice(c, farmID, number, statement.FinalAmount.String())
	}

	c.JSON(http.StatusOK, statement)
}

func (h *ReportHandler) sendStatementNotice(c *gin.Context, farmID, number, finalAmount string) {
	customer, err := h.customers.GetCustomerByNumber(c.Request.Context(), farmID, number)
	if err != nil || customer.Phone == "" {
		h.logger.Warn("statement notice skipped: no phone on file", zap.String("number", number))
		return
	}

	body := fmt.Sprintf("Namaste %s, your milk settlement for %s to %s is %s.",
		customer.Name, c.Query("start"), c.Query("end"), finalAmount)
	if err := h.notifier.SendText(c.Request.Context(), customer.Phone, body); err != nil {
		h.logger.Error("failed sending statement notice", zap.Error(err))
	}
}

// Snapshot returns the frozen report for ?month=YYYY-MM, as persisted by the
// monthly snapshot job.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.svc.Snapshot(c.Request.Context(), middleware.FarmID(c), c.Query("month"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot for that month"})
		return
	}
	if err != nil {
		h.logger.Warn("failed loading snapshot", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ExportExcel streams the monthly report as an xlsx workbook.
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	month := c.Query("month")

	report, err := h.svc.MonthlyReport(c.Request.Context(), middleware.FarmID(c), month)
	if err != nil {
		h.logger.Warn("failed building monthly report", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workbook, err := export.MonthlyWorkbook(report)
	if err != nil {
		h.logger.Error("failed building workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.xlsx", month))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if _, err := workbook.WriteTo(c.Writer); err != nil {
		h.logger.Error("failed streaming workbook", zap.Error(err))
	}
}

// ExportSheets appends the monthly report rows to the configured Google
// Sheet.
func (h *ReportHandler) ExportSheets(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "sheet export not configured"})
		return
	}

	report, err := h.svc.MonthlyReport(c.Request.Context(), middleware.FarmID(c), c.Query("month"))
	if err != nil {
		h.logger.Warn("failed building monthly report", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.exporter.AppendReportRows(c.Request.Context(), export.SheetRows(report)); err != nil {
		h.logger.Error("failed exporting to sheet", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to export to sheet"})
		return
	}

	c.Status(http.StatusAccepted)
}
