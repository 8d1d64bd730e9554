package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "ACTIVE"
	ContractStatusInactive ContractStatus = "INACTIVE"
	ContractStatusPaused   ContractStatus = "PAUSED"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusActive, ContractStatusInactive, ContractStatusPaused:
		return true
	}
	return false
}

type Contract struct {
	ID                       uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ServiceProviderCompanyID uuid.UUID      `gorm:"type:uuid;not null" json:"service_provider_company_id"`
	ClientCompanyID          uuid.UUID      `gorm:"type:uuid;not null" json:"client_company_id"`
	StartDate                time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate                  *time.Time     `gorm:"type:date" json:"end_date"`
	Status                   ContractStatus `gorm:"type:contract_status;not null;default:'ACTIVE'" json:"status"`
	CreatedAt                time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	ClientCompany *Company          `gorm:"foreignKey:ClientCompanyID" json:"client_company,omitempty"`
	Vehicles      []ContractVehicle `gorm:"foreignKey:ContractID" json:"vehicles,omitempty"`
}

func (Contract) TableName() string {
	return "contracts"
}

// ContractVehicle is an assignment row. Releasing a vehicle keeps the row
// with released_at set; the row sequence of a vehicle is its traffic history.
type ContractVehicle struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ContractID uuid.UUID  `gorm:"type:uuid;not null" json:"contract_id"`
	VehicleID  uuid.UUID  `gorm:"type:uuid;not null" json:"vehicle_id"`
	AttachedAt time.Time  `gorm:"autoCreateTime" json:"attached_at"`
	ReleasedAt *time.Time `json:"released_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (ContractVehicle) TableName() string {
	return "contract_vehicles"
}

func (cv ContractVehicle) Open() bool {
	return cv.ReleasedAt == nil
}
