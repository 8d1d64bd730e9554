package model

import (
	"time"

	"github.com/google/uuid"
)

type CompanyBrief struct {
	ID        uuid.UUID `json:"id"`
	TradeName string    `json:"trade_name"`
	TaxNumber string    `json:"tax_number"`
}

type VehicleBrief struct {
	ID           uuid.UUID     `json:"id"`
	LicensePlate string        `json:"license_plate"`
	Chassis      string        `json:"chassis"`
	ModelName    string        `json:"model_name"`
	Manufacturer string        `json:"manufacturer"`
	Status       VehicleStatus `json:"status"`
}

func BriefFromVehicle(v Vehicle) VehicleBrief {
	brief := VehicleBrief{
		ID:           v.ID,
		LicensePlate: v.LicensePlate,
		Chassis:      v.Chassis,
		Status:       v.Status,
	}
	if v.Model != nil {
		brief.ModelName = v.Model.ModelName
		brief.Manufacturer = v.Model.Manufacturer
	}
	return brief
}

type FineRecord struct {
	Fine    Fine          `json:"fine"`
	Vehicle *VehicleBrief `json:"vehicle"`
}

type ContractRecord struct {
	Contract      Contract       `json:"contract"`
	ClientCompany *CompanyBrief  `json:"client_company"`
	Vehicles      []VehicleBrief `json:"vehicles"`
}

// VehicleHistoryEntry is one attachment period of a vehicle to a contract,
// newest first in listings.
type VehicleHistoryEntry struct {
	ContractID uuid.UUID  `json:"contract_id"`
	VehicleID  uuid.UUID  `json:"vehicle_id"`
	AttachedAt time.Time  `json:"attached_at"`
	ReleasedAt *time.Time `json:"released_at"`
}

type AuthResponse struct {
	Token         string    `json:"token"`
	UserID        uuid.UUID `json:"user_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	UserType      UserType  `json:"user_type"`
	IsFirstAccess bool      `json:"is_first_access"`
	Company       *Company  `json:"company,omitempty"`
}
