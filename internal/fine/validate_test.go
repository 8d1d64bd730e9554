package fine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
)

func validInput() Input {
	return Input{
		FineNumber:         "AB123456",
		VehicleID:          uuid.New(),
		InfractionDateTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		DueDate:            time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EnforcingAgency:    model.AgencyDetran,
		Location:           "Av. Paulista, 1000",
		Amounts:            Amounts{Base: decimal.NewFromFloat(195.23)},
	}
}

func TestValidateAcceptsCompleteInput(t *testing.T) {
	require.NoError(t, Validate(validInput()))
}

func TestValidateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Input)
		wantField string
	}{
		{name: "blank fine number", mutate: func(in *Input) { in.FineNumber = "   " }, wantField: "fine_number"},
		{name: "unresolved vehicle", mutate: func(in *Input) { in.VehicleID = uuid.Nil }, wantField: "vehicle_id"},
		{name: "zero infraction time", mutate: func(in *Input) { in.InfractionDateTime = time.Time{} }, wantField: "infraction_date_time"},
		{name: "zero due date", mutate: func(in *Input) { in.DueDate = time.Time{} }, wantField: "due_date"},
		{name: "unset agency", mutate: func(in *Input) { in.EnforcingAgency = model.AgencyUnset }, wantField: "enforcing_agency"},
		{name: "unknown agency", mutate: func(in *Input) { in.EnforcingAgency = "CITY_HALL" }, wantField: "enforcing_agency"},
		{name: "blank location", mutate: func(in *Input) { in.Location = "" }, wantField: "location"},
		{name: "zero base amount", mutate: func(in *Input) { in.Amounts.Base = decimal.Zero }, wantField: "base_amount"},
		{name: "negative base amount", mutate: func(in *Input) { in.Amounts.Base = decimal.NewFromFloat(-1) }, wantField: "base_amount"},
		{
			name: "negative enabled discount",
			mutate: func(in *Input) {
				in.Amounts.DiscountEnabled = true
				in.Amounts.Discount = decimal.NewFromFloat(-5)
			},
			wantField: "discount_amount",
		},
		{
			name: "negative enabled interest",
			mutate: func(in *Input) {
				in.Amounts.InterestEnabled = true
				in.Amounts.Interest = decimal.NewFromFloat(-5)
			},
			wantField: "interest_amount",
		},
		{name: "unknown status", mutate: func(in *Input) { in.Status = "ARCHIVED" }, wantField: "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := Validate(in)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidateIgnoresDisabledNegatives(t *testing.T) {
	in := validInput()
	in.Amounts.Discount = decimal.NewFromFloat(-10)
	in.Amounts.Interest = decimal.NewFromFloat(-10)
	require.NoError(t, Validate(in))
}
