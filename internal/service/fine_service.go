package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/fine"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type fineStore interface {
	Create(ctx context.Context, f *model.Fine) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*model.Fine, error)
	GetByNumberAndVehicle(ctx context.Context, fineNumber string, vehicleID uuid.UUID) (*model.Fine, error)
	List(ctx context.Context, filter repository.FineFilter) ([]model.Fine, error)
	Update(ctx context.Context, f *model.Fine) error
	UpdateStatus(ctx context.Context, fineID uuid.UUID, status model.FineStatus) error
	LogStatusChange(ctx context.Context, logEntry *model.FineStatusLog) error
	ListOverdueCandidates(ctx context.Context, now time.Time) ([]model.Fine, error)
}

type fineVehicleStore interface {
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*model.Vehicle, error)
}

type FineService struct {
	fineRepo    fineStore
	vehicleRepo fineVehicleStore
	log         zerolog.Logger
	now         func() time.Time
}

func NewFineService(fineRepo fineStore, vehicleRepo fineVehicleStore, log zerolog.Logger) *FineService {
	return &FineService{
		fineRepo:    fineRepo,
		vehicleRepo: vehicleRepo,
		log:         log,
		now:         time.Now,
	}
}

type CreateFineInput struct {
	FineNumber         string
	VehicleID          uuid.UUID
	InfractionDateTime time.Time
	DueDate            time.Time
	EnforcingAgency    model.EnforcingAgency
	Location           string
	Amounts            fine.Amounts
	Status             model.FineStatus
	Description        string
}

// Create validates, runs the duplicate check and inserts the fine with its
// derived final amount and date-resolved status. A duplicate returns
// *DuplicateFineError with the existing record; a failed duplicate lookup
// returns ErrUnavailable, never a silent insert.
func (s *FineService) Create(ctx context.Context, principal model.Principal, input CreateFineInput) (*model.FineRecord, error) {
	if err := fine.Validate(fine.Input{
		FineNumber:         input.FineNumber,
		VehicleID:          input.VehicleID,
		InfractionDateTime: input.InfractionDateTime,
		DueDate:            input.DueDate,
		EnforcingAgency:    input.EnforcingAgency,
		Location:           input.Location,
		Amounts:            input.Amounts,
		Status:             input.Status,
	}); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, principal.CompanyID, input.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Warn().Err(err).Str("vehicle_id", input.VehicleID.String()).Msg("vehicle lookup failed")
		return nil, ErrUnavailable
	}

	existing, err := s.lookupDuplicate(ctx, input.FineNumber, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateFineError{Existing: *existing}
	}

	status, err := fine.ApplyStatus(input.Status, input.DueDate, s.now())
	if err != nil {
		return nil, ErrInvalidStatus
	}

	amounts := input.Amounts.Normalize()
	record := &model.Fine{
		FineNumber:         input.FineNumber,
		VehicleID:          vehicle.ID,
		CompanyID:          principal.CompanyID,
		InfractionDateTime: input.InfractionDateTime,
		DueDate:            input.DueDate,
		EnforcingAgency:    input.EnforcingAgency,
		Location:           input.Location,
		BaseAmount:         amounts.Base,
		DiscountAmount:     amounts.Discount,
		InterestAmount:     amounts.Interest,
		FinalAmount:        input.Amounts.Final(),
		Status:             status,
		Description:        input.Description,
	}

	if err := s.fineRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if err := s.fineRepo.LogStatusChange(ctx, &model.FineStatusLog{
		FineID:    record.ID,
		NewStatus: status,
		Note:      "fine registered",
		ChangedBy: &principal.UserID,
	}); err != nil {
		return nil, err
	}

	created, err := s.fineRepo.GetByID(ctx, principal.CompanyID, record.ID)
	if err != nil {
		return nil, err
	}
	result := buildFineRecord(*created)
	return &result, nil
}

// Lookup is the duplicate-branch query exposed to the forms: found,
// genuinely absent, or unavailable are three distinct outcomes.
func (s *FineService) Lookup(ctx context.Context, principal model.Principal, fineNumber string, vehicleID uuid.UUID) (*model.FineRecord, error) {
	existing, err := s.lookupDuplicate(ctx, fineNumber, vehicleID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.Fine.CompanyID != principal.CompanyID {
		return nil, ErrNotFound
	}
	return existing, nil
}

func (s *FineService) lookupDuplicate(ctx context.Context, fineNumber string, vehicleID uuid.UUID) (*model.FineRecord, error) {
	found, err := s.fineRepo.GetByNumberAndVehicle(ctx, fineNumber, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Warn().Err(err).Str("fine_number", fineNumber).Msg("duplicate lookup failed")
		return nil, ErrUnavailable
	}
	record := buildFineRecord(*found)
	return &record, nil
}

func (s *FineService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.FineRecord, error) {
	found, err := s.fineRepo.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record := buildFineRecord(*found)
	return &record, nil
}

type ListFinesOptions struct {
	Statuses  []model.FineStatus
	Agencies  []model.EnforcingAgency
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Limit     int
	Offset    int
}

func (s *FineService) List(ctx context.Context, principal model.Principal, opts ListFinesOptions) ([]model.FineRecord, error) {
	fines, err := s.fineRepo.List(ctx, repository.FineFilter{
		CompanyID: principal.CompanyID,
		Statuses:  opts.Statuses,
		Agencies:  opts.Agencies,
		VehicleID: opts.VehicleID,
		DateFrom:  opts.DateFrom,
		DateTo:    opts.DateTo,
		Search:    opts.Search,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.FineRecord, 0, len(fines))
	for _, f := range fines {
		records = append(records, buildFineRecord(f))
	}
	return records, nil
}

type UpdateFineInput struct {
	InfractionDateTime time.Time
	DueDate            time.Time
	EnforcingAgency    model.EnforcingAgency
	Location           string
	Amounts            fine.Amounts
	Status             model.FineStatus
	Description        string
}

// Update edits every field except the fine number and vehicle binding.
// Amounts are re-derived and the status is revalidated against the due date.
func (s *FineService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateFineInput) (*model.FineRecord, error) {
	current, err := s.fineRepo.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := fine.Validate(fine.Input{
		FineNumber:         current.FineNumber,
		VehicleID:          current.VehicleID,
		InfractionDateTime: input.InfractionDateTime,
		DueDate:            input.DueDate,
		EnforcingAgency:    input.EnforcingAgency,
		Location:           input.Location,
		Amounts:            input.Amounts,
		Status:             input.Status,
	}); err != nil {
		return nil, err
	}

	if current.Status == model.FineStatusPaid && input.Status != "" && input.Status != model.FineStatusPaid {
		return nil, ErrInvalidStatus
	}

	// An omitted status must not re-derive manually set states from the due
	// date: a PAID or SENT_TO_CLIENT fine keeps its status across edits.
	requested := input.Status
	if requested == "" {
		switch current.Status {
		case model.FineStatusPaid, model.FineStatusSentToClient:
			requested = current.Status
		}
	}

	status, err := fine.ApplyStatus(requested, input.DueDate, s.now())
	if err != nil {
		return nil, ErrInvalidStatus
	}

	amounts := input.Amounts.Normalize()
	updated := &model.Fine{
		ID:                 current.ID,
		InfractionDateTime: input.InfractionDateTime,
		DueDate:            input.DueDate,
		EnforcingAgency:    input.EnforcingAgency,
		Location:           input.Location,
		BaseAmount:         amounts.Base,
		DiscountAmount:     amounts.Discount,
		InterestAmount:     amounts.Interest,
		FinalAmount:        input.Amounts.Final(),
		Status:             status,
		Description:        input.Description,
	}

	if err := s.fineRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if status != current.Status {
		prev := current.Status
		if err := s.fineRepo.LogStatusChange(ctx, &model.FineStatusLog{
			FineID:    current.ID,
			OldStatus: &prev,
			NewStatus: status,
			Note:      "fine updated",
			ChangedBy: &principal.UserID,
		}); err != nil {
			return nil, err
		}
	}

	reloaded, err := s.fineRepo.GetByID(ctx, principal.CompanyID, current.ID)
	if err != nil {
		return nil, err
	}
	record := buildFineRecord(*reloaded)
	return &record, nil
}

// UpdateStatus applies a manual transition. ACTIVE is rejected once the due
// date has passed; PAID fines stay paid.
func (s *FineService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, target model.FineStatus, note string) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}

	current, err := s.fineRepo.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if current.Status == model.FineStatusPaid {
		return ErrInvalidStatus
	}

	status, err := fine.ApplyStatus(target, current.DueDate, s.now())
	if err != nil {
		return ErrInvalidStatus
	}
	if status == current.Status {
		return nil
	}

	if err := s.fineRepo.UpdateStatus(ctx, current.ID, status); err != nil {
		return err
	}

	prev := current.Status
	return s.fineRepo.LogStatusChange(ctx, &model.FineStatusLog{
		FineID:    current.ID,
		OldStatus: &prev,
		NewStatus: status,
		Note:      note,
		ChangedBy: &principal.UserID,
	})
}

// SweepOverdue flips every past-due ACTIVE fine to OVERDUE and logs the
// transition. Run daily by the scheduler. Returns the number of fines
// transitioned.
func (s *FineService) SweepOverdue(ctx context.Context) (int, error) {
	now := s.now()
	candidates, err := s.fineRepo.ListOverdueCandidates(ctx, now)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, f := range candidates {
		if !fine.Overdue(f.DueDate, now) {
			continue
		}
		if err := s.fineRepo.UpdateStatus(ctx, f.ID, model.FineStatusOverdue); err != nil {
			return swept, err
		}
		prev := f.Status
		if err := s.fineRepo.LogStatusChange(ctx, &model.FineStatusLog{
			FineID:    f.ID,
			OldStatus: &prev,
			NewStatus: model.FineStatusOverdue,
			Note:      "overdue sweep",
		}); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

func buildFineRecord(f model.Fine) model.FineRecord {
	record := model.FineRecord{Fine: f}
	if f.Vehicle != nil {
		brief := model.BriefFromVehicle(*f.Vehicle)
		record.Vehicle = &brief
	}
	record.Fine.Vehicle = nil
	return record
}
