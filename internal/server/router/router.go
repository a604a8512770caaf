package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/server/handlers"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
	"github.com/mamadbah2/dairybook/internal/service/auth"
)

// Handlers groups the HTTP adapters the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Milk     *handlers.MilkHandler
	Customer *handlers.CustomerHandler
	Report   *handlers.ReportHandler
	Purchase *handlers.PurchaseHandler
	Ledger   *handlers.LedgerHandler
	Animal   *handlers.AnimalHandler
	Employee *handlers.EmployeeHandler
	Note     *handlers.NoteHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	authed := v1.Group("", middleware.RequireAuth(authSvc, logger))
	// Destructive routes additionally require the farm passkey header.
	guarded := authed.Group("", middleware.RequirePasskey(authSvc, logger))

	authed.PUT("/milk/:date/:species/:shift", h.Milk.SaveShift)
	authed.GET("/milk/:date", h.Milk.Day)
	authed.GET("/milk", h.Milk.Range)

	authed.POST("/customers", h.Customer.Create)
	authed.PUT("/customers/:id", h.Customer.Update)
	guarded.DELETE("/customers/:id", h.Customer.Delete)
	authed.GET("/customers", h.Customer.List)
	authed.GET("/customers/:id", h.Customer.Get)
	authed.GET("/customers/:id/statement", h.Report.Statement)

	authed.GET("/reports/monthly", h.Report.Monthly)
	authed.GET("/reports/snapshots", h.Report.Snapshot)
	authed.GET("/reports/monthly/export", h.Report.ExportExcel)
	authed.POST("/reports/monthly/sheets", h.Report.ExportSheets)

	authed.POST("/orders", h.Purchase.Create)
	authed.PUT("/orders/:id", h.Purchase.Edit)
	guarded.POST("/orders/:id/receive", h.Purchase.Receive)
	authed.GET("/orders", h.Purchase.List)
	authed.GET("/orders/:id", h.Purchase.Get)
	authed.GET("/orders/:id/receivings", h.Purchase.Receivings)

	authed.POST("/ledger/cash", h.Ledger.CreateCash)
	guarded.DELETE("/ledger/cash/:id", h.Ledger.DeleteCash)
	authed.GET("/ledger/cash", h.Ledger.ListCash)
	authed.POST("/ledger/expenses", h.Ledger.CreateExpense)
	guarded.DELETE("/ledger/expenses/:id", h.Ledger.DeleteExpense)
	authed.GET("/ledger/expenses", h.Ledger.ListExpenses)

	authed.POST("/animals", h.Animal.Create)
	authed.PUT("/animals/:id", h.Animal.Update)
	guarded.DELETE("/animals/:id", h.Animal.Delete)
	authed.GET("/animals", h.Animal.List)
	authed.GET("/animals/:id", h.Animal.Get)
	authed.POST("/animals/:id/medical", h.Animal.AddMedicalRecord)
	authed.GET("/animals/:id/medical", h.Animal.ListMedicalRecords)

	authed.POST("/employees/payments", h.Employee.CreatePayment)
	guarded.DELETE("/employees/payments/:id", h.Employee.DeletePayment)
	authed.GET("/employees/payments", h.Employee.ListPayments)

	authed.POST("/notes", h.Note.Create)
	authed.PUT("/notes/:id", h.Note.Update)
	authed.DELETE("/notes/:id", h.Note.Delete)
	authed.GET("/notes", h.Note.List)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
