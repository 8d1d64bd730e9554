package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

type contractRequest struct {
	ClientCompanyID string   `json:"client_company_id" binding:"required"`
	StartDate       string   `json:"start_date" binding:"required"`
	EndDate         string   `json:"end_date"`
	Status          string   `json:"status"`
	VehicleIDs      []string `json:"vehicle_ids"`
}

func (r contractRequest) toInput() (service.ContractInput, string) {
	clientID, err := uuid.Parse(r.ClientCompanyID)
	if err != nil {
		return service.ContractInput{}, "invalid client company id"
	}

	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return service.ContractInput{}, "invalid start_date, expected YYYY-MM-DD"
	}

	input := service.ContractInput{
		ClientCompanyID: clientID,
		StartDate:       startDate,
		Status:          model.ContractStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
	}

	if r.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return service.ContractInput{}, "invalid end_date, expected YYYY-MM-DD"
		}
		input.EndDate = &endDate
	}

	for _, raw := range r.VehicleIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return service.ContractInput{}, "invalid vehicle id: " + raw
		}
		input.VehicleIDs = append(input.VehicleIDs, id)
	}

	return input, ""
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input, reason := req.toInput()
	if reason != "" {
		c.JSON(http.StatusBadRequest, errorResponse(reason))
		return
	}

	record, err := h.contractService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(record))
}

func (h *Handler) findContractByClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	name := strings.TrimSpace(c.Query("client_name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("client_name is required"))
		return
	}

	record, err := h.contractService.FindByClientName(c.Request.Context(), principal, name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid contract id"))
		return
	}

	record, err := h.contractService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid contract id"))
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input, reason := req.toInput()
	if reason != "" {
		c.JSON(http.StatusBadRequest, errorResponse(reason))
		return
	}

	record, err := h.contractService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}
