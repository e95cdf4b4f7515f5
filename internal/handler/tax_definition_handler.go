package handler

import (
	"net/http"

	"marketplace/internal/service"
	"marketplace/pkg/pagination"
	"marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxDefinitionHandler struct {
	definitionService service.TaxDefinitionService
}

func NewTaxDefinitionHandler(definitionService service.TaxDefinitionService) *TaxDefinitionHandler {
	return &TaxDefinitionHandler{definitionService: definitionService}
}

func (h *TaxDefinitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/tax-definitions")
	{
		group.GET("", h.ListTaxDefinitions)
		group.POST("", h.CreateTaxDefinition)
		group.PUT("/:id", h.UpdateTaxDefinition)
		group.DELETE("/:id", h.DeleteTaxDefinition)
	}
}

// ListTaxDefinitions returns paginated tax definitions
// @Summary      List tax definitions
// @Tags         tax-definitions
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.TaxDefinitionResponse}
// @Router       /api/tax-definitions [get]
func (h *TaxDefinitionHandler) ListTaxDefinitions(c *gin.Context) {
	params := pagination.Parse(c)

	defs, total, err := h.definitionService.GetTaxDefinitions(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, defs, params.Page, params.Limit, total))
}

// CreateTaxDefinition creates a new tax definition
// @Summary      Create tax definition
// @Tags         tax-definitions
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTaxDefinitionRequest  true  "Tax definition payload"
// @Success      201  {object}  response.Response{data=service.TaxDefinitionResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-definitions [post]
func (h *TaxDefinitionHandler) CreateTaxDefinition(c *gin.Context) {
	var req service.CreateTaxDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	def, err := h.definitionService.CreateTaxDefinition(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, def))
}

// UpdateTaxDefinition updates an existing tax definition
// @Summary      Update tax definition
// @Tags         tax-definitions
// @Accept       json
// @Produce      json
// @Param        id       path  string                              true  "Tax definition ID"
// @Param        payload  body  service.UpdateTaxDefinitionRequest  true  "Update payload"
// @Success      200  {object}  response.Response{data=service.TaxDefinitionResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-definitions/{id} [put]
func (h *TaxDefinitionHandler) UpdateTaxDefinition(c *gin.Context) {
	var req service.UpdateTaxDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	def, err := h.definitionService.UpdateTaxDefinition(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, def))
}

// DeleteTaxDefinition soft-deletes a tax definition
// @Summary      Delete tax definition
// @Tags         tax-definitions
// @Produce      json
// @Param        id  path  string  true  "Tax definition ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tax-definitions/{id} [delete]
func (h *TaxDefinitionHandler) DeleteTaxDefinition(c *gin.Context) {
	if err := h.definitionService.DeleteTaxDefinition(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// actorFrom extracts the caller identity recorded in audit entries. Identity
// management is out of scope here, so the value is taken from a plain header.
func actorFrom(c *gin.Context) string {
	return c.GetHeader("X-Actor")
}
