package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) GetByTaxNumber(ctx context.Context, taxNumber string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "tax_number = ?", taxNumber).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// ListClients returns the client companies registered under a service
// provider.
func (r *CompanyRepository) ListClients(ctx context.Context, providerID uuid.UUID) ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.WithContext(ctx).
		Where("related_company_id = ?", providerID).
		Order("trade_name ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
