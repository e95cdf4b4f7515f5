package handler

import (
	"net/http"

	"marketplace/internal/service"
	"marketplace/internal/tax"
	"marketplace/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/tax")
	{
		group.POST("/calculate", h.CalculateTax)
		group.POST("/preview", h.PreviewTax)
		group.GET("/rules", h.GetTaxRules)
	}
}

type CalculateTaxRequest struct {
	Amount  string                 `json:"amount" binding:"required"` // decimal string, e.g. "100.00"
	Context map[string]interface{} `json:"context"`
}

// CalculateTax computes the full tax breakdown for an amount and context
// @Summary      Calculate tax
// @Description  Resolves the applicable tax rates for the context and returns the compound tax breakdown. Always returns a structurally valid result.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        payload  body  CalculateTaxRequest  true  "Amount and resolution context"
// @Success      200  {object}  response.Response{data=service.TaxResultResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax/calculate [post]
func (h *TaxHandler) CalculateTax(c *gin.Context) {
	amount, tctx, ok := h.bindCalculation(c)
	if !ok {
		return
	}

	result := h.taxService.CalculateTax(c.Request.Context(), amount, tctx)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// PreviewTax returns a lightweight tax estimate for an amount and context
// @Summary      Preview tax
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        payload  body  CalculateTaxRequest  true  "Amount and resolution context"
// @Success      200  {object}  response.Response{data=service.TaxPreviewResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/tax/preview [post]
func (h *TaxHandler) PreviewTax(c *gin.Context) {
	amount, tctx, ok := h.bindCalculation(c)
	if !ok {
		return
	}

	preview := h.taxService.PreviewTax(c.Request.Context(), amount, tctx)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, preview))
}

// GetTaxRules lists the rules that would apply for a context given as query parameters
// @Summary      List applicable tax rules
// @Tags         tax
// @Produce      json
// @Param        merchant_id  query  string  false  "Merchant scope"
// @Param        product_id   query  string  false  "Product assignment"
// @Param        category_id  query  string  false  "Category assignment"
// @Param        region_id    query  string  false  "Region assignment"
// @Param        customer_id  query  string  false  "Customer assignment"
// @Success      200  {object}  response.Response{data=[]service.TaxRuleSummary}
// @Router       /api/tax/rules [get]
func (h *TaxHandler) GetTaxRules(c *gin.Context) {
	tctx := tax.Context{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			tctx[key] = values[0]
		}
	}

	rules := h.taxService.GetTaxRules(c.Request.Context(), tctx)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rules))
}

func (h *TaxHandler) bindCalculation(c *gin.Context) (decimal.Decimal, tax.Context, bool) {
	var req CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return decimal.Zero, nil, false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid amount value: "+err.Error()))
		return decimal.Zero, nil, false
	}
	if amount.IsNegative() {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Amount must not be negative"))
		return decimal.Zero, nil, false
	}

	return amount, tax.Context(req.Context), true
}
