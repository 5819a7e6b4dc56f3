package router

import (
	"net/http"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/config"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/handler"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/middleware"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/service"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine and the full route table against the
// given document store.
func SetupRouter(cfg *config.Config, st store.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	})

	categories := service.NewCategories(st)
	transactions := service.NewTransactions(st, categories)
	semesters := service.NewSemesters(st)
	reimbursements := service.NewReimbursements(st)

	categoryHandler := handler.NewCategoryHandler(categories)
	r.GET("/categories", categoryHandler.List)
	r.POST("/categories", categoryHandler.Create)
	r.DELETE("/categories/:name", categoryHandler.DeleteByName)

	transactionHandler := handler.NewTransactionHandler(transactions, cfg.App.PageSize)
	r.GET("/transactions", transactionHandler.List)
	r.POST("/transactions", transactionHandler.Create)
	r.PATCH("/transactions/:id", transactionHandler.Update)
	r.DELETE("/transactions/:id", transactionHandler.Delete)

	semesterHandler := handler.NewSemesterHandler(semesters, transactions)
	r.GET("/semesters", semesterHandler.List)
	r.POST("/semesters", semesterHandler.Create)
	r.GET("/semesters/:id", semesterHandler.Get)
	r.PATCH("/semesters/:id", semesterHandler.Update)
	r.DELETE("/semesters/:id", semesterHandler.Delete)
	r.POST("/semesters/:id/weekly_balance", semesterHandler.AddWeeklyBalance)
	r.GET("/semesters/:id/stats", semesterHandler.Stats)

	exportHandler := handler.NewExportHandler(semesters, transactions)
	r.GET("/semesters/:id/export/csv", exportHandler.ExportCSV)
	r.GET("/semesters/:id/export/xlsx", exportHandler.ExportXLSX)

	reimbursementHandler := handler.NewReimbursementHandler(reimbursements)
	r.GET("/reimbursements", reimbursementHandler.List)
	r.POST("/reimbursements", reimbursementHandler.Create)
	r.DELETE("/reimbursements/:id", reimbursementHandler.Delete)

	return r
}
