package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type FineRepository struct {
	db *gorm.DB
}

func NewFineRepository(db *gorm.DB) *FineRepository {
	return &FineRepository{db: db}
}

type FineFilter struct {
	CompanyID uuid.UUID
	Statuses  []model.FineStatus
	Agencies  []model.EnforcingAgency
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Limit     int
	Offset    int
}

func (r *FineRepository) Create(ctx context.Context, fine *model.Fine) error {
	return r.db.WithContext(ctx).Create(fine).Error
}

func (r *FineRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*model.Fine, error) {
	var fine model.Fine
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Model").
		First(&fine, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &fine, nil
}

// GetByNumberAndVehicle is the duplicate-check lookup. gorm.ErrRecordNotFound
// means genuinely absent; any other error is a lookup failure and must not
// be read as absence.
func (r *FineRepository) GetByNumberAndVehicle(ctx context.Context, fineNumber string, vehicleID uuid.UUID) (*model.Fine, error) {
	var fine model.Fine
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Model").
		First(&fine, "fine_number = ? AND vehicle_id = ?", fineNumber, vehicleID).Error; err != nil {
		return nil, err
	}
	return &fine, nil
}

func (r *FineRepository) List(ctx context.Context, filter FineFilter) ([]model.Fine, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Fine{}).
		Where("fines.company_id = ?", filter.CompanyID)

	if len(filter.Statuses) > 0 {
		query = query.Where("fines.status IN ?", filter.Statuses)
	}
	if len(filter.Agencies) > 0 {
		query = query.Where("fines.enforcing_agency IN ?", filter.Agencies)
	}
	if filter.VehicleID != nil {
		query = query.Where("fines.vehicle_id = ?", *filter.VehicleID)
	}
	if filter.DateFrom != nil {
		query = query.Where("fines.infraction_date_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("fines.infraction_date_time <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Joins("LEFT JOIN vehicles v ON v.id = fines.vehicle_id").
			Where("(fines.fine_number ILIKE ? OR v.license_plate ILIKE ? OR fines.location ILIKE ?)", search, search, search)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var fines []model.Fine
	if err := query.
		Order("fines.registration_date DESC").
		Preload("Vehicle").
		Preload("Vehicle.Model").
		Find(&fines).Error; err != nil {
		return nil, err
	}
	return fines, nil
}

// Update persists the editable fields. Fine number and vehicle binding are
// immutable after creation and deliberately absent here.
func (r *FineRepository) Update(ctx context.Context, fine *model.Fine) error {
	return r.db.WithContext(ctx).
		Model(&model.Fine{}).
		Where("id = ?", fine.ID).
		Updates(map[string]interface{}{
			"infraction_date_time": fine.InfractionDateTime,
			"due_date":             fine.DueDate,
			"enforcing_agency":     fine.EnforcingAgency,
			"location":             fine.Location,
			"base_amount":          fine.BaseAmount,
			"discount_amount":      fine.DiscountAmount,
			"interest_amount":      fine.InterestAmount,
			"final_amount":         fine.FinalAmount,
			"status":               fine.Status,
			"description":          fine.Description,
		}).Error
}

func (r *FineRepository) UpdateStatus(ctx context.Context, fineID uuid.UUID, status model.FineStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Fine{}).
		Where("id = ?", fineID).
		Update("status", status).Error
}

func (r *FineRepository) LogStatusChange(ctx context.Context, logEntry *model.FineStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}

// ListOverdueCandidates returns the ACTIVE fines whose due date has passed
// at the reference time. Manual states (SENT_TO_CLIENT, PAID) are never
// date-transitioned.
func (r *FineRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]model.Fine, error) {
	var fines []model.Fine
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date <= ?", model.FineStatusActive, now.Format("2006-01-02")).
		Find(&fines).Error; err != nil {
		return nil, err
	}
	return fines, nil
}
