package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-service/internal/fine"
	"fleet-service/internal/service"
)

type Handler struct {
	authService     *service.AuthService
	companyService  *service.CompanyService
	vehicleService  *service.VehicleService
	contractService *service.ContractService
	fineService     *service.FineService
	log             zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	companyService *service.CompanyService,
	vehicleService *service.VehicleService,
	contractService *service.ContractService,
	fineService *service.FineService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:     authService,
		companyService:  companyService,
		vehicleService:  vehicleService,
		contractService: contractService,
		fineService:     fineService,
		log:             log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *fine.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, errorResponse(validationErr.Error()))
		return
	}

	var dupFine *service.DuplicateFineError
	if errors.As(err, &dupFine) {
		c.JSON(http.StatusConflict, gin.H{
			"error":    dupFine.Error(),
			"existing": dupFine.Existing,
			"choices":  []fine.DuplicateBranch{fine.BranchViewExisting, fine.BranchSwitchToUpdate, fine.BranchDiscardAndReset},
		})
		return
	}
	var dupContract *service.DuplicateContractError
	if errors.As(err, &dupContract) {
		c.JSON(http.StatusConflict, gin.H{
			"error":    dupContract.Error(),
			"existing": dupContract.Existing,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUserBlocked):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
