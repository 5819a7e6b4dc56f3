package handler

import (
	"fmt"
	"net/http"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/models"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/service"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the category registry over HTTP.
type CategoryHandler struct {
	Svc *service.Categories
}

func NewCategoryHandler(svc *service.Categories) *CategoryHandler {
	return &CategoryHandler{Svc: svc}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Svc.List(c.Request.Context())
	if err != nil {
		util.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), body)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, "Category created", cat)
}

func (h *CategoryHandler) DeleteByName(c *gin.Context) {
	name := c.Param("name")
	if err := h.Svc.DeleteByName(c.Request.Context(), name); err != nil {
		util.Fail(c, err)
		return
	}
	util.Message(c, fmt.Sprintf("Category '%s' deleted and associated transactions updated to '%s'.",
		name, models.UncategorizedName))
}

// bindBody parses the request body into a field map. Create and PATCH
// endpoints work on raw maps so the services can distinguish absent fields
// from null ones.
func bindBody(c *gin.Context) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.Fail(c, apperr.Validationf("Invalid JSON body."))
		return nil, false
	}
	return body, true
}
