package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleet-service/internal/fine"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

type fineAmountsRequest struct {
	FineAmount           decimal.Decimal `json:"fine_amount"`
	DiscountEnabled      bool            `json:"discount_enabled"`
	DiscountedFineAmount decimal.Decimal `json:"discounted_fine_amount"`
	InterestEnabled      bool            `json:"interest_enabled"`
	InterestFineAmount   decimal.Decimal `json:"interest_fine_amount"`
}

func (r fineAmountsRequest) toAmounts() fine.Amounts {
	return fine.Amounts{
		Base:            r.FineAmount,
		DiscountEnabled: r.DiscountEnabled,
		Discount:        r.DiscountedFineAmount,
		InterestEnabled: r.InterestEnabled,
		Interest:        r.InterestFineAmount,
	}
}

func (h *Handler) createFine(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		fineAmountsRequest
		FineNumber         string    `json:"fine_number" binding:"required"`
		VehicleID          string    `json:"vehicle_id" binding:"required"`
		InfractionDateTime time.Time `json:"infraction_date_time" binding:"required"`
		DueDate            time.Time `json:"due_date" binding:"required"`
		EnforcingAgency    string    `json:"enforcing_agency" binding:"required"`
		Location           string    `json:"location" binding:"required"`
		Status             string    `json:"status"`
		Description        string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	record, err := h.fineService.Create(c.Request.Context(), principal, service.CreateFineInput{
		FineNumber:         req.FineNumber,
		VehicleID:          vehicleID,
		InfractionDateTime: req.InfractionDateTime,
		DueDate:            req.DueDate,
		EnforcingAgency:    model.EnforcingAgency(strings.ToUpper(strings.TrimSpace(req.EnforcingAgency))),
		Location:           req.Location,
		Amounts:            req.toAmounts(),
		Status:             model.FineStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Description:        req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(record))
}

func (h *Handler) listFines(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, reason := parseFineQuery(c)
	if reason != "" {
		c.JSON(http.StatusBadRequest, errorResponse(reason))
		return
	}

	records, err := h.fineService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": records}))
}

func parseFineQuery(c *gin.Context) (service.ListFinesOptions, string) {
	opts := service.ListFinesOptions{
		Search: strings.TrimSpace(c.Query("search")),
	}

	for _, raw := range splitCSV(c.Query("status")) {
		status := model.FineStatus(strings.ToUpper(raw))
		if !status.Valid() {
			return opts, "invalid fine status: " + raw
		}
		opts.Statuses = append(opts.Statuses, status)
	}
	for _, raw := range splitCSV(c.Query("agency")) {
		agency := model.EnforcingAgency(strings.ToUpper(raw))
		if !agency.Valid() {
			return opts, "invalid enforcing agency: " + raw
		}
		opts.Agencies = append(opts.Agencies, agency)
	}
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return opts, "invalid vehicle id"
		}
		opts.VehicleID = &id
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, "invalid date_from, expected RFC3339"
		}
		opts.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, "invalid date_to, expected RFC3339"
		}
		opts.DateTo = &to
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return opts, "invalid limit"
		}
		opts.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return opts, "invalid offset"
		}
		opts.Offset = offset
	}

	return opts, ""
}

// lookupFine is the pre-registration duplicate probe for the fine form.
func (h *Handler) lookupFine(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	fineNumber := strings.TrimSpace(c.Query("fine_number"))
	if fineNumber == "" {
		c.JSON(http.StatusBadRequest, errorResponse("fine_number is required"))
		return
	}
	vehicleID, err := uuid.Parse(strings.TrimSpace(c.Query("vehicle_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	record, err := h.fineService.Lookup(c.Request.Context(), principal, fineNumber, vehicleID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) getFine(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid fine id"))
		return
	}

	record, err := h.fineService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) updateFine(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid fine id"))
		return
	}

	var req struct {
		fineAmountsRequest
		InfractionDateTime time.Time `json:"infraction_date_time" binding:"required"`
		DueDate            time.Time `json:"due_date" binding:"required"`
		EnforcingAgency    string    `json:"enforcing_agency" binding:"required"`
		Location           string    `json:"location" binding:"required"`
		Status             string    `json:"status"`
		Description        string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	record, err := h.fineService.Update(c.Request.Context(), principal, id, service.UpdateFineInput{
		InfractionDateTime: req.InfractionDateTime,
		DueDate:            req.DueDate,
		EnforcingAgency:    model.EnforcingAgency(strings.ToUpper(strings.TrimSpace(req.EnforcingAgency))),
		Location:           req.Location,
		Amounts:            req.toAmounts(),
		Status:             model.FineStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Description:        req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) updateFineStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid fine id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	target := model.FineStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !target.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse("invalid fine status"))
		return
	}

	if err := h.fineService.UpdateStatus(c.Request.Context(), principal, id, target, req.Note); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"id": id, "status": target}))
}
