package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FineStatus string

const (
	FineStatusActive       FineStatus = "ACTIVE"
	FineStatusSentToClient FineStatus = "SENT_TO_CLIENT"
	FineStatusPaid         FineStatus = "PAID"
	FineStatusOverdue      FineStatus = "OVERDUE"
)

func (s FineStatus) Valid() bool {
	switch s {
	case FineStatusActive, FineStatusSentToClient, FineStatusPaid, FineStatusOverdue:
		return true
	}
	return false
}

type EnforcingAgency string

const (
	AgencyAnac          EnforcingAgency = "ANAC"
	AgencyAntaq         EnforcingAgency = "ANTAQ"
	AgencyAntt          EnforcingAgency = "ANTT"
	AgencyConcessionary EnforcingAgency = "CONCESSIONARIA"
	AgencyDer           EnforcingAgency = "DER"
	AgencyDetran        EnforcingAgency = "DETRAN"
	AgencyDnit          EnforcingAgency = "DNIT"
	AgencyIbama         EnforcingAgency = "IBAMA"
	AgencyMunicipal     EnforcingAgency = "GUARDA_MUNICIPAL"
	AgencyPm            EnforcingAgency = "PM"
	AgencyPre           EnforcingAgency = "PRE"
	AgencyPrf           EnforcingAgency = "PRF"
	AgencyAmc           EnforcingAgency = "AMC"
	AgencyOther         EnforcingAgency = "OTHER"

	// AgencyUnset is the placeholder option the forms start with. It is
	// never accepted at submission time.
	AgencyUnset EnforcingAgency = ""
)

func (a EnforcingAgency) Valid() bool {
	switch a {
	case AgencyAnac, AgencyAntaq, AgencyAntt, AgencyConcessionary, AgencyDer,
		AgencyDetran, AgencyDnit, AgencyIbama, AgencyMunicipal, AgencyPm,
		AgencyPre, AgencyPrf, AgencyAmc, AgencyOther:
		return true
	}
	return false
}

type Fine struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	FineNumber         string          `gorm:"type:varchar(64);not null" json:"fine_number"`
	VehicleID          uuid.UUID       `gorm:"type:uuid;not null" json:"vehicle_id"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null" json:"company_id"`
	RegistrationDate   time.Time       `gorm:"autoCreateTime" json:"registration_date"`
	InfractionDateTime time.Time       `gorm:"not null" json:"infraction_date_time"`
	DueDate            time.Time       `gorm:"type:date;not null" json:"due_date"`
	EnforcingAgency    EnforcingAgency `gorm:"type:varchar(32);not null" json:"enforcing_agency"`
	Location           string          `gorm:"type:text;not null" json:"location"`
	BaseAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_amount"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount_amount"`
	InterestAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"interest_amount"`
	FinalAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_amount"`
	Status             FineStatus      `gorm:"type:fine_status;not null;default:'ACTIVE'" json:"status"`
	Description        string          `gorm:"type:text" json:"description"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (Fine) TableName() string {
	return "fines"
}

type FineStatusLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	FineID    uuid.UUID   `gorm:"type:uuid;not null" json:"fine_id"`
	OldStatus *FineStatus `gorm:"type:fine_status" json:"old_status"`
	NewStatus FineStatus  `gorm:"type:fine_status;not null" json:"new_status"`
	Note      string      `gorm:"type:text" json:"note"`
	ChangedBy *uuid.UUID  `gorm:"type:uuid" json:"changed_by"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (FineStatusLog) TableName() string {
	return "fine_status_log"
}

func (l *FineStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
