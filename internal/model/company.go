package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

func (s CompanyStatus) Valid() bool {
	return s == CompanyStatusActive || s == CompanyStatusInactive
}

// NormalizeTaxNumber keeps only digits so CNPJ lookups ignore the
// 00.000.000/0000-00 mask applied on the forms.
func NormalizeTaxNumber(taxNumber string) string {
	var b strings.Builder
	for _, r := range taxNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type Company struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	LegalName        string        `gorm:"type:varchar(255);not null" json:"legal_name"`
	TradeName        string        `gorm:"type:varchar(255);not null" json:"trade_name"`
	TaxNumber        string        `gorm:"type:varchar(14);not null;uniqueIndex" json:"tax_number"`
	Status           CompanyStatus `gorm:"type:company_status;not null;default:'ACTIVE'" json:"status"`
	Phone            string        `gorm:"type:varchar(16)" json:"phone"`
	Email            string        `gorm:"type:varchar(255)" json:"email"`
	City             string        `gorm:"type:varchar(128)" json:"city"`
	State            string        `gorm:"type:varchar(2)" json:"state"`
	PostalCode       string        `gorm:"type:varchar(9)" json:"postal_code"`
	RelatedCompanyID *uuid.UUID    `gorm:"type:uuid" json:"related_company_id"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
