package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/service"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes the transaction ledger over HTTP.
type TransactionHandler struct {
	Svc      *service.Transactions
	PageSize int
}

func NewTransactionHandler(svc *service.Transactions, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = service.DefaultPageSize
	}
	return &TransactionHandler{Svc: svc, PageSize: pageSize}
}

// List serves cursor-paginated transactions for one semester, in the order
// the semester recorded them.
func (h *TransactionHandler) List(c *gin.Context) {
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		util.Fail(c, apperr.Validationf("'semester_id' is required as a query parameter."))
		return
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(h.PageSize))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		util.Fail(c, apperr.Validationf("'limit' must be an integer."))
		return
	}
	startAfter := c.Query("start_after")

	page, err := h.Svc.List(c.Request.Context(), semesterID, limit, startAfter)
	if err != nil {
		util.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	txn, err := h.Svc.Create(c.Request.Context(), body)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, "Transaction created and added to semester.", txn)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if err := h.Svc.Update(c.Request.Context(), c.Param("id"), body); err != nil {
		util.Fail(c, err)
		return
	}
	util.Message(c, "Transaction updated.")
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	semesterID, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Message(c, fmt.Sprintf("Transaction with ID '%s' deleted and removed from semester '%s'.", id, semesterID))
}
