package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func (h *Handler) createCompany(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		LegalName  string `json:"legal_name" binding:"required"`
		TradeName  string `json:"trade_name" binding:"required"`
		TaxNumber  string `json:"tax_number" binding:"required"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), principal, service.CompanyInput{
		LegalName:  req.LegalName,
		TradeName:  req.TradeName,
		TaxNumber:  req.TaxNumber,
		Phone:      req.Phone,
		Email:      req.Email,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(company))
}

func (h *Handler) getCompany(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid company id"))
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(company))
}

func (h *Handler) getCompanyByTaxNumber(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	company, err := h.companyService.GetByTaxNumber(c.Request.Context(), principal, c.Param("tax"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(company))
}

func (h *Handler) updateCompany(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid company id"))
		return
	}

	var req struct {
		LegalName  string `json:"legal_name"`
		TradeName  string `json:"trade_name"`
		Status     string `json:"status"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), principal, id, service.UpdateCompanyInput{
		LegalName:  req.LegalName,
		TradeName:  req.TradeName,
		Status:     model.CompanyStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Phone:      req.Phone,
		Email:      req.Email,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(company))
}

func (h *Handler) listClientCompanies(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid company id"))
		return
	}
	if id != principal.CompanyID && !principal.IsMaster() {
		c.JSON(http.StatusForbidden, errorResponse("permission denied"))
		return
	}

	companies, err := h.companyService.ListClients(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": companies}))
}
