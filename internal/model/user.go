package model

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeStandard UserType = "STANDARD"
	UserTypeMaster   UserType = "MASTER"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	FullName      string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(128);not null" json:"-"`
	UserType      UserType  `gorm:"type:varchar(16);not null;default:'STANDARD'" json:"user_type"`
	IsFirstAccess bool      `gorm:"not null;default:true" json:"is_first_access"`
	IsBlocked     bool      `gorm:"not null;default:false" json:"is_blocked"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null" json:"company_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (User) TableName() string {
	return "users"
}
