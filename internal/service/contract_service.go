package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/contract"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type contractStore interface {
	GetByID(ctx context.Context, providerID, id uuid.UUID) (*model.Contract, error)
	FindCurrentByClient(ctx context.Context, providerID, clientID uuid.UUID) (*model.Contract, error)
	FindByClientName(ctx context.Context, providerID uuid.UUID, name string) (*model.Contract, error)
	CreateWithVehicles(ctx context.Context, c *model.Contract, vehicleIDs []uuid.UUID) error
	UpdateWithVehicles(ctx context.Context, c *model.Contract, toAttach, toRelease []uuid.UUID) error
	ReleaseAll(ctx context.Context, contractID uuid.UUID) error
}

type contractVehicleStore interface {
	List(ctx context.Context, filter repository.VehicleFilter) ([]model.Vehicle, error)
}

type contractCompanyStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
}

type vehicleInvalidator interface {
	Invalidate(ctx context.Context, vehicle *model.Vehicle)
}

type ContractService struct {
	contractRepo  contractStore
	vehicleRepo   contractVehicleStore
	companyRepo   contractCompanyStore
	vehicleCache  vehicleInvalidator
	allowEmptySet bool
	log           zerolog.Logger
}

func NewContractService(
	contractRepo contractStore,
	vehicleRepo contractVehicleStore,
	companyRepo contractCompanyStore,
	vehicleCache vehicleInvalidator,
	allowEmptySet bool,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		contractRepo:  contractRepo,
		vehicleRepo:   vehicleRepo,
		companyRepo:   companyRepo,
		vehicleCache:  vehicleCache,
		allowEmptySet: allowEmptySet,
		log:           log,
	}
}

type ContractInput struct {
	ClientCompanyID uuid.UUID
	StartDate       time.Time
	EndDate         *time.Time
	Status          model.ContractStatus
	VehicleIDs      []uuid.UUID
}

// Create inserts a contract for the principal's company after the
// duplicate check: a client with a current (active or paused) contract gets
// *DuplicateContractError instead of a second one. The vehicle set is
// admitted through the assignment pool, so only FREE vehicles of the
// company can be attached.
func (s *ContractService) Create(ctx context.Context, principal model.Principal, input ContractInput) (*model.ContractRecord, error) {
	if input.ClientCompanyID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if input.StartDate.IsZero() {
		return nil, ErrInvalidInput
	}
	if !s.allowEmptySet && len(input.VehicleIDs) == 0 {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = model.ContractStatusActive
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.companyRepo.GetByID(ctx, input.ClientCompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrUnavailable
	}

	existing, err := s.contractRepo.FindCurrentByClient(ctx, principal.CompanyID, input.ClientCompanyID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warn().Err(err).Msg("contract duplicate lookup failed")
		return nil, ErrUnavailable
	}
	if existing != nil {
		return nil, &DuplicateContractError{Existing: buildContractRecord(*existing)}
	}

	selected, err := s.admitVehicles(ctx, principal.CompanyID, input.VehicleIDs, nil)
	if err != nil {
		return nil, err
	}

	created := &model.Contract{
		ServiceProviderCompanyID: principal.CompanyID,
		ClientCompanyID:          input.ClientCompanyID,
		StartDate:                input.StartDate,
		EndDate:                  input.EndDate,
		Status:                   input.Status,
	}
	if err := s.contractRepo.CreateWithVehicles(ctx, created, selected.SelectedIDs()); err != nil {
		return nil, err
	}
	s.invalidateVehicles(ctx, selected.Selected())

	reloaded, err := s.contractRepo.GetByID(ctx, principal.CompanyID, created.ID)
	if err != nil {
		return nil, err
	}
	record := buildContractRecord(*reloaded)
	return &record, nil
}

// FindByClientName is the lookup the contract form runs before offering
// "create": found, absent and unavailable are distinct outcomes.
func (s *ContractService) FindByClientName(ctx context.Context, principal model.Principal, name string) (*model.ContractRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	found, err := s.contractRepo.FindByClientName(ctx, principal.CompanyID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Warn().Err(err).Str("client", name).Msg("contract lookup failed")
		return nil, ErrUnavailable
	}
	record := buildContractRecord(*found)
	return &record, nil
}

func (s *ContractService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.ContractRecord, error) {
	found, err := s.contractRepo.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record := buildContractRecord(*found)
	return &record, nil
}

// Update applies field edits and the vehicle set diff. Newly requested
// vehicles are admitted through the assignment pool; vehicles dropped from
// the set get their assignment row closed and return to FREE. A contract
// moved to INACTIVE releases everything.
func (s *ContractService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input ContractInput) (*model.ContractRecord, error) {
	current, err := s.contractRepo.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Status == "" {
		input.Status = current.Status
	}
	if input.StartDate.IsZero() {
		input.StartDate = current.StartDate
	}

	currentIDs := make(map[uuid.UUID]bool)
	for _, cv := range current.Vehicles {
		if cv.Open() {
			currentIDs[cv.VehicleID] = true
		}
	}

	requested := make(map[uuid.UUID]bool, len(input.VehicleIDs))
	var toAttach []uuid.UUID
	for _, vid := range input.VehicleIDs {
		requested[vid] = true
		if !currentIDs[vid] {
			toAttach = append(toAttach, vid)
		}
	}
	var toRelease []uuid.UUID
	for vid := range currentIDs {
		if !requested[vid] {
			toRelease = append(toRelease, vid)
		}
	}

	if !s.allowEmptySet && len(requested) == 0 && input.Status != model.ContractStatusInactive {
		return nil, ErrInvalidInput
	}

	var keep []uuid.UUID
	for vid := range currentIDs {
		if requested[vid] {
			keep = append(keep, vid)
		}
	}
	selected, err := s.admitVehicles(ctx, principal.CompanyID, toAttach, keep)
	if err != nil {
		return nil, err
	}

	// Released vehicles need their cache entries dropped too, or lookups
	// keep serving the IN_CONTRACT copy until the TTL runs out.
	var released []model.Vehicle
	for _, cv := range current.Vehicles {
		if !cv.Open() || cv.Vehicle == nil {
			continue
		}
		if input.Status == model.ContractStatusInactive || !requested[cv.VehicleID] {
			released = append(released, *cv.Vehicle)
		}
	}

	updated := &model.Contract{
		ID:        current.ID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    input.Status,
	}

	if input.Status == model.ContractStatusInactive {
		if err := s.contractRepo.UpdateWithVehicles(ctx, updated, nil, nil); err != nil {
			return nil, err
		}
		if err := s.contractRepo.ReleaseAll(ctx, current.ID); err != nil {
			return nil, err
		}
	} else {
		if err := s.contractRepo.UpdateWithVehicles(ctx, updated, toAttach, toRelease); err != nil {
			return nil, err
		}
	}
	s.invalidateVehicles(ctx, selected.Selected())
	s.invalidateVehicles(ctx, released)

	reloaded, err := s.contractRepo.GetByID(ctx, principal.CompanyID, current.ID)
	if err != nil {
		return nil, err
	}
	record := buildContractRecord(*reloaded)
	return &record, nil
}

// admitVehicles runs the requested ids through the assignment pool built
// from the company's vehicles. Preselected ids (already on the contract)
// bypass the FREE requirement; anything else must be selectable.
func (s *ContractService) admitVehicles(ctx context.Context, companyID uuid.UUID, requested, preselected []uuid.UUID) (*contract.Assignment, error) {
	pool, err := s.vehicleRepo.List(ctx, repository.VehicleFilter{CompanyID: companyID})
	if err != nil {
		return nil, err
	}

	assignment := contract.NewAssignment(pool, preselected)
	for _, id := range requested {
		if !assignment.Select(id) {
			return nil, ErrInvalidInput
		}
	}
	return assignment, nil
}

func (s *ContractService) invalidateVehicles(ctx context.Context, vehicles []model.Vehicle) {
	if s.vehicleCache == nil {
		return
	}
	for i := range vehicles {
		s.vehicleCache.Invalidate(ctx, &vehicles[i])
	}
}

func buildContractRecord(c model.Contract) model.ContractRecord {
	record := model.ContractRecord{Contract: c}
	if c.ClientCompany != nil {
		record.ClientCompany = &model.CompanyBrief{
			ID:        c.ClientCompany.ID,
			TradeName: c.ClientCompany.TradeName,
			TaxNumber: c.ClientCompany.TaxNumber,
		}
	}
	for _, cv := range c.Vehicles {
		if !cv.Open() || cv.Vehicle == nil {
			continue
		}
		record.Vehicles = append(record.Vehicles, model.BriefFromVehicle(*cv.Vehicle))
	}
	record.Contract.ClientCompany = nil
	record.Contract.Vehicles = nil
	return record
}
