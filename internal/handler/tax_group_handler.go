package handler

import (
	"net/http"

	"marketplace/internal/service"
	"marketplace/pkg/pagination"
	"marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxGroupHandler struct {
	groupService service.TaxGroupService
}

func NewTaxGroupHandler(groupService service.TaxGroupService) *TaxGroupHandler {
	return &TaxGroupHandler{groupService: groupService}
}

func (h *TaxGroupHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/tax-groups")
	{
		group.GET("", h.ListTaxGroups)
		group.GET("/:id", h.GetTaxGroup)
		group.POST("", h.CreateTaxGroup)
		group.PUT("/:id", h.UpdateTaxGroup)
		group.DELETE("/:id", h.DeleteTaxGroup)

		group.POST("/:id/rates", h.AddTaxRate)
		group.PUT("/:id/rates/:rateId", h.UpdateTaxRate)
		group.DELETE("/:id/rates/:rateId", h.RemoveTaxRate)

		group.POST("/:id/assignments", h.AssignTaxGroup)
		group.DELETE("/:id/assignments/:assignmentId", h.UnassignTaxGroup)
	}
}

// ListTaxGroups returns paginated tax groups with their rates
// @Summary      List tax groups
// @Tags         tax-groups
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response{data=[]service.TaxGroupResponse}
// @Router       /api/tax-groups [get]
func (h *TaxGroupHandler) ListTaxGroups(c *gin.Context) {
	params := pagination.Parse(c)

	groups, total, err := h.groupService.GetTaxGroups(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, groups, params.Page, params.Limit, total))
}

// GetTaxGroup returns a single tax group with rates and assignments
// @Summary      Get tax group
// @Tags         tax-groups
// @Produce      json
// @Param        id  path  string  true  "Tax group ID"
// @Success      200  {object}  response.Response{data=service.TaxGroupResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id} [get]
func (h *TaxGroupHandler) GetTaxGroup(c *gin.Context) {
	group, err := h.groupService.GetTaxGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, group))
}

// CreateTaxGroup creates a new tax group
// @Summary      Create tax group
// @Tags         tax-groups
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTaxGroupRequest  true  "Tax group payload"
// @Success      201  {object}  response.Response{data=service.TaxGroupResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups [post]
func (h *TaxGroupHandler) CreateTaxGroup(c *gin.Context) {
	var req service.CreateTaxGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	group, err := h.groupService.CreateTaxGroup(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, group))
}

// UpdateTaxGroup updates an existing tax group
// @Summary      Update tax group
// @Tags         tax-groups
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Tax group ID"
// @Param        payload  body  service.UpdateTaxGroupRequest  true  "Update payload"
// @Success      200  {object}  response.Response{data=service.TaxGroupResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id} [put]
func (h *TaxGroupHandler) UpdateTaxGroup(c *gin.Context) {
	var req service.UpdateTaxGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	group, err := h.groupService.UpdateTaxGroup(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, group))
}

// DeleteTaxGroup soft-deletes a tax group
// @Summary      Delete tax group
// @Tags         tax-groups
// @Produce      json
// @Param        id  path  string  true  "Tax group ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id} [delete]
func (h *TaxGroupHandler) DeleteTaxGroup(c *gin.Context) {
	if err := h.groupService.DeleteTaxGroup(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// AddTaxRate adds a rate to a tax group
// @Summary      Add tax rate
// @Tags         tax-groups
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Tax group ID"
// @Param        payload  body  service.TaxRateRequest  true  "Rate payload"
// @Success      201  {object}  response.Response{data=service.TaxRateResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id}/rates [post]
func (h *TaxGroupHandler) AddTaxRate(c *gin.Context) {
	var req service.TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rate, err := h.groupService.AddTaxRate(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// UpdateTaxRate updates a rate inside a tax group
// @Summary      Update tax rate
// @Tags         tax-groups
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Tax group ID"
// @Param        rateId   path  string                  true  "Tax rate ID"
// @Param        payload  body  service.TaxRateRequest  true  "Rate payload"
// @Success      200  {object}  response.Response{data=service.TaxRateResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id}/rates/{rateId} [put]
func (h *TaxGroupHandler) UpdateTaxRate(c *gin.Context) {
	var req service.TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rate, err := h.groupService.UpdateTaxRate(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("rateId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// RemoveTaxRate removes a rate from a tax group
// @Summary      Remove tax rate
// @Tags         tax-groups
// @Produce      json
// @Param        id      path  string  true  "Tax group ID"
// @Param        rateId  path  string  true  "Tax rate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id}/rates/{rateId} [delete]
func (h *TaxGroupHandler) RemoveTaxRate(c *gin.Context) {
	if err := h.groupService.RemoveTaxRate(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("rateId")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// AssignTaxGroup links a tax group to an assignable entity
// @Summary      Assign tax group
// @Tags         tax-groups
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Tax group ID"
// @Param        payload  body  service.AssignTaxGroupRequest  true  "Assignment payload"
// @Success      201  {object}  response.Response{data=service.TaxAssignmentResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id}/assignments [post]
func (h *TaxGroupHandler) AssignTaxGroup(c *gin.Context) {
	var req service.AssignTaxGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assignment, err := h.groupService.AssignTaxGroup(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assignment))
}

// UnassignTaxGroup removes an assignment from a tax group
// @Summary      Unassign tax group
// @Tags         tax-groups
// @Produce      json
// @Param        id            path  string  true  "Tax group ID"
// @Param        assignmentId  path  string  true  "Assignment ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tax-groups/{id}/assignments/{assignmentId} [delete]
func (h *TaxGroupHandler) UnassignTaxGroup(c *gin.Context) {
	if err := h.groupService.UnassignTaxGroup(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("assignmentId")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
