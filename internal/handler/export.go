package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/service"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves a semester's ledger as CSV or XLSX, in ledger order.
type ExportHandler struct {
	Semesters *service.Semesters
	Txns      *service.Transactions
}

func NewExportHandler(semesters *service.Semesters, txns *service.Transactions) *ExportHandler {
	return &ExportHandler{Semesters: semesters, Txns: txns}
}

var exportHeaders = []string{"Payer", "Time", "Message", "Amount", "Category"}

// ExportCSV streams the semester's transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	id := c.Param("id")
	sem, err := h.Semesters.Get(c.Request.Context(), id)
	if err != nil {
		util.Fail(c, err)
		return
	}
	txns, err := h.Txns.All(c.Request.Context(), id)
	if err != nil {
		util.Fail(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sem.Name+"_transactions.csv"))

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, t := range txns {
		writer.Write([]string{
			t.Payer,
			t.Time,
			t.Message,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Category,
		})
	}
}

// ExportXLSX builds an XLSX workbook with the semester's transactions.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	id := c.Param("id")
	sem, err := h.Semesters.Get(c.Request.Context(), id)
	if err != nil {
		util.Fail(c, err)
		return
	}
	txns, err := h.Txns.All(c.Request.Context(), id)
	if err != nil {
		util.Fail(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Fail(c, err)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for idx, t := range txns {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Payer)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Time)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Message)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Category)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sem.Name+"_transactions.xlsx"))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// headers already sent
		c.Error(err)
	}
}
