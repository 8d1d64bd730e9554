package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	VehicleStatusFree          VehicleStatus = "FREE"
	VehicleStatusInContract    VehicleStatus = "IN_CONTRACT"
	VehicleStatusInMaintenance VehicleStatus = "IN_MAINTENANCE"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusFree, VehicleStatusInContract, VehicleStatusInMaintenance:
		return true
	}
	return false
}

type FuelType string

const (
	FuelEthanol  FuelType = "ETHANOL"
	FuelGasoline FuelType = "GASOLINE"
	FuelFlex     FuelType = "FLEX"
	FuelDiesel   FuelType = "DIESEL"
	FuelHybrid   FuelType = "HYBRID"
	FuelElectric FuelType = "ELECTRIC"
	FuelOther    FuelType = "OTHER"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelEthanol, FuelGasoline, FuelFlex, FuelDiesel, FuelHybrid, FuelElectric, FuelOther:
		return true
	}
	return false
}

const (
	licensePlateLength = 7
	chassisLength      = 17
)

// NormalizeLicensePlate strips everything but letters and digits, upcases
// and re-inserts the dash, matching the AAA-0000 mask used on the forms.
func NormalizeLicensePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) > licensePlateLength {
		cleaned = cleaned[:licensePlateLength]
	}
	if len(cleaned) <= 3 {
		return cleaned
	}
	return cleaned[:3] + "-" + cleaned[3:]
}

func ValidLicensePlate(plate string) bool {
	return len(strings.ReplaceAll(plate, "-", "")) == licensePlateLength
}

func NormalizeChassis(chassis string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(chassis))
	if len(cleaned) > chassisLength {
		cleaned = cleaned[:chassisLength]
	}
	return cleaned
}

func ValidChassis(chassis string) bool {
	return len(chassis) == chassisLength
}

type VehicleModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ModelName    string    `gorm:"type:varchar(128);not null" json:"model_name"`
	Manufacturer string    `gorm:"type:varchar(64);not null" json:"manufacturer"`
	Observations string    `gorm:"type:text" json:"observations"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VehicleModel) TableName() string {
	return "vehicle_models"
}

type Vehicle struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleModelID  uuid.UUID     `gorm:"type:uuid;not null" json:"vehicle_model_id"`
	CompanyID       uuid.UUID     `gorm:"type:uuid;not null" json:"company_id"`
	LicensePlate    string        `gorm:"type:varchar(8)" json:"license_plate"`
	Chassis         string        `gorm:"type:varchar(17);not null" json:"chassis"`
	Renavam         string        `gorm:"type:varchar(16)" json:"renavam"`
	QRCode          string        `gorm:"column:qr_code;type:varchar(64)" json:"qr_code"`
	Color           string        `gorm:"type:varchar(32)" json:"color"`
	FuelType        FuelType      `gorm:"type:varchar(16);not null" json:"fuel_type"`
	Mileage         int64         `gorm:"not null;default:0" json:"mileage"`
	ManufactureYear int           `json:"manufacture_year"`
	ModelYear       int           `json:"model_year"`
	Status          VehicleStatus `gorm:"type:vehicle_status;not null;default:'FREE'" json:"status"`
	ContractID      *uuid.UUID    `gorm:"type:uuid" json:"contract_id"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Model *VehicleModel `gorm:"foreignKey:VehicleModelID" json:"model,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
