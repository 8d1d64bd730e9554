package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type VehicleFilter struct {
	CompanyID uuid.UUID
	Statuses  []model.VehicleStatus
	Search    string
	Limit     int
	Offset    int
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Model").
		First(&vehicle, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, companyID uuid.UUID, plate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Model").
		First(&vehicle, "company_id = ? AND license_plate = ?", companyID, plate).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetByChassis(ctx context.Context, companyID uuid.UUID, chassis string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Model").
		First(&vehicle, "company_id = ? AND chassis = ?", companyID, chassis).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetByQRCode(ctx context.Context, companyID uuid.UUID, code string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Model").
		First(&vehicle, "company_id = ? AND qr_code = ?", companyID, code).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]model.Vehicle, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Vehicle{}).
		Where("company_id = ?", filter.CompanyID)

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("(license_plate ILIKE ? OR chassis ILIKE ?)", search, search)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var vehicles []model.Vehicle
	if err := query.
		Order("created_at DESC").
		Preload("Model").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// History returns the contract attachment periods of a vehicle, newest
// first.
func (r *VehicleRepository) History(ctx context.Context, companyID, vehicleID uuid.UUID) ([]model.VehicleHistoryEntry, error) {
	var rows []model.ContractVehicle
	if err := r.db.WithContext(ctx).
		Model(&model.ContractVehicle{}).
		Joins("JOIN vehicles v ON v.id = contract_vehicles.vehicle_id").
		Where("contract_vehicles.vehicle_id = ? AND v.company_id = ?", vehicleID, companyID).
		Order("contract_vehicles.attached_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]model.VehicleHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.VehicleHistoryEntry{
			ContractID: row.ContractID,
			VehicleID:  row.VehicleID,
			AttachedAt: row.AttachedAt,
			ReleasedAt: row.ReleasedAt,
		})
	}
	return entries, nil
}

func (r *VehicleRepository) CreateModel(ctx context.Context, m *model.VehicleModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *VehicleRepository) ListModels(ctx context.Context) ([]model.VehicleModel, error) {
	var models []model.VehicleModel
	if err := r.db.WithContext(ctx).
		Order("model_name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}
