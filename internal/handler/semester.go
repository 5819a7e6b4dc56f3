package handler

import (
	"fmt"
	"net/http"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/service"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/util"

	"github.com/gin-gonic/gin"
)

// SemesterHandler exposes the semester aggregate manager over HTTP.
type SemesterHandler struct {
	Svc  *service.Semesters
	Txns *service.Transactions
}

func NewSemesterHandler(svc *service.Semesters, txns *service.Transactions) *SemesterHandler {
	return &SemesterHandler{Svc: svc, Txns: txns}
}

func (h *SemesterHandler) List(c *gin.Context) {
	semesters, err := h.Svc.List(c.Request.Context())
	if err != nil {
		util.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, semesters)
}

func (h *SemesterHandler) Get(c *gin.Context) {
	sem, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sem)
}

func (h *SemesterHandler) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	sem, err := h.Svc.Create(c.Request.Context(), body)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, "Semester created", sem)
}

func (h *SemesterHandler) Update(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if err := h.Svc.Update(c.Request.Context(), c.Param("id"), body); err != nil {
		util.Fail(c, err)
		return
	}
	util.Message(c, "Semester updated.")
}

func (h *SemesterHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		util.Fail(c, err)
		return
	}
	util.Message(c, fmt.Sprintf("Semester with ID '%s' and its associated transactions deleted.", id))
}

func (h *SemesterHandler) AddWeeklyBalance(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	entry, err := h.Svc.AddWeeklyBalance(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, "Weekly balance entry added.", entry)
}

// Stats serves the per-category aggregation of the semester's ledger.
func (h *SemesterHandler) Stats(c *gin.Context) {
	stats, err := h.Txns.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
