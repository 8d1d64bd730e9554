package fine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

// ValidationError names the first field that failed validation. Submission
// is blocked before any collaborator call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Input is a candidate fine as collected by the form, before persistence.
type Input struct {
	FineNumber         string
	VehicleID          uuid.UUID
	InfractionDateTime time.Time
	DueDate            time.Time
	EnforcingAgency    model.EnforcingAgency
	Location           string
	Amounts            Amounts
	Status             model.FineStatus
	Description        string
}

func Validate(in Input) error {
	if strings.TrimSpace(in.FineNumber) == "" {
		return &ValidationError{Field: "fine_number", Reason: "required"}
	}
	if in.VehicleID == uuid.Nil {
		return &ValidationError{Field: "vehicle_id", Reason: "vehicle must be resolved first"}
	}
	if in.InfractionDateTime.IsZero() {
		return &ValidationError{Field: "infraction_date_time", Reason: "required"}
	}
	if in.DueDate.IsZero() {
		return &ValidationError{Field: "due_date", Reason: "required"}
	}
	if !in.EnforcingAgency.Valid() {
		return &ValidationError{Field: "enforcing_agency", Reason: "an agency must be selected"}
	}
	if strings.TrimSpace(in.Location) == "" {
		return &ValidationError{Field: "location", Reason: "required"}
	}
	if !in.Amounts.Base.GreaterThan(decimal.Zero) {
		return &ValidationError{Field: "base_amount", Reason: "must be greater than zero"}
	}
	if in.Amounts.DiscountEnabled && in.Amounts.Discount.IsNegative() {
		return &ValidationError{Field: "discount_amount", Reason: "must not be negative"}
	}
	if in.Amounts.InterestEnabled && in.Amounts.Interest.IsNegative() {
		return &ValidationError{Field: "interest_amount", Reason: "must not be negative"}
	}
	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}
	return nil
}
