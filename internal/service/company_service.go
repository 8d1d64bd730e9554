package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type companyStore interface {
	Create(ctx context.Context, c *model.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	GetByTaxNumber(ctx context.Context, taxNumber string) (*model.Company, error)
	Update(ctx context.Context, c *model.Company) error
	ListClients(ctx context.Context, providerID uuid.UUID) ([]model.Company, error)
}

type CompanyService struct {
	companyRepo companyStore
	log         zerolog.Logger
}

func NewCompanyService(companyRepo companyStore, log zerolog.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, log: log}
}

type CompanyInput struct {
	LegalName  string
	TradeName  string
	TaxNumber  string
	Phone      string
	Email      string
	City       string
	State      string
	PostalCode string
}

func validateCompanyInput(input CompanyInput) (string, error) {
	if strings.TrimSpace(input.LegalName) == "" || strings.TrimSpace(input.TradeName) == "" {
		return "", ErrInvalidInput
	}
	taxNumber := model.NormalizeTaxNumber(input.TaxNumber)
	if len(taxNumber) != 14 {
		return "", ErrInvalidInput
	}
	return taxNumber, nil
}

// Create registers a client company under the principal's provider company.
// An already-registered tax number is a conflict, not a second insert.
func (s *CompanyService) Create(ctx context.Context, principal model.Principal, input CompanyInput) (*model.Company, error) {
	taxNumber, err := validateCompanyInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.companyRepo.GetByTaxNumber(ctx, taxNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warn().Err(err).Msg("company duplicate lookup failed")
		return nil, ErrUnavailable
	}
	if existing != nil {
		return nil, ErrConflict
	}

	providerID := principal.CompanyID
	company := &model.Company{
		LegalName:        strings.TrimSpace(input.LegalName),
		TradeName:        strings.TrimSpace(input.TradeName),
		TaxNumber:        taxNumber,
		Status:           model.CompanyStatusActive,
		Phone:            strings.TrimSpace(input.Phone),
		Email:            strings.TrimSpace(input.Email),
		City:             strings.TrimSpace(input.City),
		State:            strings.ToUpper(strings.TrimSpace(input.State)),
		PostalCode:       strings.TrimSpace(input.PostalCode),
		RelatedCompanyID: &providerID,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.visible(principal, company) {
		return nil, ErrNotFound
	}
	return company, nil
}

func (s *CompanyService) GetByTaxNumber(ctx context.Context, principal model.Principal, taxNumber string) (*model.Company, error) {
	normalized := model.NormalizeTaxNumber(taxNumber)
	if len(normalized) != 14 {
		return nil, ErrInvalidInput
	}
	company, err := s.companyRepo.GetByTaxNumber(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Warn().Err(err).Msg("company lookup failed")
		return nil, ErrUnavailable
	}
	if !s.visible(principal, company) {
		return nil, ErrNotFound
	}
	return company, nil
}

type UpdateCompanyInput struct {
	LegalName  string
	TradeName  string
	Status     model.CompanyStatus
	Phone      string
	Email      string
	City       string
	State      string
	PostalCode string
}

func (s *CompanyService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateCompanyInput) (*model.Company, error) {
	company, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if strings.TrimSpace(input.LegalName) != "" {
		company.LegalName = strings.TrimSpace(input.LegalName)
	}
	if strings.TrimSpace(input.TradeName) != "" {
		company.TradeName = strings.TrimSpace(input.TradeName)
	}
	if input.Status != "" {
		company.Status = input.Status
	}
	company.Phone = strings.TrimSpace(input.Phone)
	company.Email = strings.TrimSpace(input.Email)
	company.City = strings.TrimSpace(input.City)
	company.State = strings.ToUpper(strings.TrimSpace(input.State))
	company.PostalCode = strings.TrimSpace(input.PostalCode)

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) ListClients(ctx context.Context, principal model.Principal) ([]model.Company, error) {
	return s.companyRepo.ListClients(ctx, principal.CompanyID)
}

// visible limits reads to the principal's own company and its clients.
// Master users see everything.
func (s *CompanyService) visible(principal model.Principal, company *model.Company) bool {
	if principal.IsMaster() {
		return true
	}
	if company.ID == principal.CompanyID {
		return true
	}
	return company.RelatedCompanyID != nil && *company.RelatedCompanyID == principal.CompanyID
}
