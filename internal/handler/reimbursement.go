package handler

import (
	"fmt"
	"net/http"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/service"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/util"

	"github.com/gin-gonic/gin"
)

// ReimbursementHandler exposes the reimbursement tracker over HTTP.
type ReimbursementHandler struct {
	Svc *service.Reimbursements
}

func NewReimbursementHandler(svc *service.Reimbursements) *ReimbursementHandler {
	return &ReimbursementHandler{Svc: svc}
}

func (h *ReimbursementHandler) List(c *gin.Context) {
	reimbursements, err := h.Svc.List(c.Request.Context())
	if err != nil {
		util.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reimbursements)
}

func (h *ReimbursementHandler) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), body)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, "Reimbursement request created", r)
}

func (h *ReimbursementHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		util.Fail(c, err)
		return
	}
	util.Message(c, fmt.Sprintf("Reimbursement with ID '%s' deleted.", id))
}
