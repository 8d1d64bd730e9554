package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func (h *Handler) createVehicleModel(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		ModelName    string `json:"model_name" binding:"required"`
		Manufacturer string `json:"manufacturer" binding:"required"`
		Observations string `json:"observations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	created, err := h.vehicleService.CreateModel(c.Request.Context(), service.CreateVehicleModelInput{
		ModelName:    req.ModelName,
		Manufacturer: req.Manufacturer,
		Observations: req.Observations,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(created))
}

func (h *Handler) listVehicleModels(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	models, err := h.vehicleService.ListModels(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": models}))
}

func (h *Handler) createVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		VehicleModelID  string `json:"vehicle_model_id" binding:"required"`
		LicensePlate    string `json:"license_plate" binding:"required"`
		Chassis         string `json:"chassis" binding:"required"`
		Renavam         string `json:"renavam"`
		QRCode          string `json:"qr_code"`
		Color           string `json:"color"`
		FuelType        string `json:"fuel_type"`
		Mileage         int64  `json:"mileage"`
		ManufactureYear int    `json:"manufacture_year"`
		ModelYear       int    `json:"model_year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	modelID, err := uuid.Parse(req.VehicleModelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle model id"))
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), principal, service.CreateVehicleInput{
		VehicleModelID:  modelID,
		LicensePlate:    req.LicensePlate,
		Chassis:         req.Chassis,
		Renavam:         req.Renavam,
		QRCode:          req.QRCode,
		Color:           req.Color,
		FuelType:        model.FuelType(strings.ToUpper(strings.TrimSpace(req.FuelType))),
		Mileage:         req.Mileage,
		ManufactureYear: req.ManufactureYear,
		ModelYear:       req.ModelYear,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) listVehicles(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts := service.ListVehiclesOptions{
		Search: strings.TrimSpace(c.Query("search")),
	}
	for _, raw := range splitCSV(c.Query("status")) {
		status := model.VehicleStatus(strings.ToUpper(raw))
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle status: "+raw))
			return
		}
		opts.Statuses = append(opts.Statuses, status)
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, errorResponse("invalid limit"))
			return
		}
		opts.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, errorResponse("invalid offset"))
			return
		}
		opts.Offset = offset
	}

	vehicles, err := h.vehicleService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) getVehicleByPlate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	vehicle, err := h.vehicleService.ResolveByPlate(c.Request.Context(), principal, c.Param("plate"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) getVehicleByChassis(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	vehicle, err := h.vehicleService.ResolveByChassis(c.Request.Context(), principal, c.Param("chassis"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) getVehicleByQRCode(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	vehicle, err := h.vehicleService.ResolveByQRCode(c.Request.Context(), principal, c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) getVehicleHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	history, err := h.vehicleService.History(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": history}))
}
