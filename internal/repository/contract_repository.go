package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) GetByID(ctx context.Context, providerID, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).
		Preload("ClientCompany").
		Preload("Vehicles", "released_at IS NULL").
		Preload("Vehicles.Vehicle").
		Preload("Vehicles.Vehicle.Model").
		First(&contract, "id = ? AND service_provider_company_id = ?", id, providerID).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindCurrentByClient returns the non-inactive contract between a provider
// and a client, if one exists.
func (r *ContractRepository) FindCurrentByClient(ctx context.Context, providerID, clientID uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).
		Preload("ClientCompany").
		Preload("Vehicles", "released_at IS NULL").
		Preload("Vehicles.Vehicle").
		Where("service_provider_company_id = ? AND client_company_id = ? AND status IN ?",
			providerID, clientID,
			[]model.ContractStatus{model.ContractStatusActive, model.ContractStatusPaused}).
		First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindByClientName resolves a client company by trade name under the
// provider and returns its current contract.
func (r *ContractRepository) FindByClientName(ctx context.Context, providerID uuid.UUID, name string) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).
		Preload("ClientCompany").
		Preload("Vehicles", "released_at IS NULL").
		Preload("Vehicles.Vehicle").
		Preload("Vehicles.Vehicle.Model").
		Joins("JOIN companies c ON c.id = contracts.client_company_id").
		Where("contracts.service_provider_company_id = ? AND c.trade_name ILIKE ? AND contracts.status IN ?",
			providerID, "%"+name+"%",
			[]model.ContractStatus{model.ContractStatusActive, model.ContractStatusPaused}).
		First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// CreateWithVehicles inserts the contract and attaches the vehicle set in
// one transaction, flipping every attached vehicle to IN_CONTRACT.
func (r *ContractRepository) CreateWithVehicles(ctx context.Context, contract *model.Contract, vehicleIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return err
		}
		return attachVehicles(tx, contract.ID, vehicleIDs)
	})
}

// UpdateWithVehicles saves contract field edits and applies the assignment
// diff: vehicles in toAttach are bound, vehicles in toRelease get their open
// assignment row closed and return to FREE.
func (r *ContractRepository) UpdateWithVehicles(ctx context.Context, contract *model.Contract, toAttach, toRelease []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Contract{}).
			Where("id = ?", contract.ID).
			Updates(map[string]interface{}{
				"start_date": contract.StartDate,
				"end_date":   contract.EndDate,
				"status":     contract.Status,
			}).Error; err != nil {
			return err
		}
		if err := attachVehicles(tx, contract.ID, toAttach); err != nil {
			return err
		}
		return releaseVehicles(tx, contract.ID, toRelease)
	})
}

// ReleaseAll closes every open assignment of a contract and frees its
// vehicles. Used when a contract goes INACTIVE.
func (r *ContractRepository) ReleaseAll(ctx context.Context, contractID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.ContractVehicle
		if err := tx.Where("contract_id = ? AND released_at IS NULL", contractID).
			Find(&rows).Error; err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.VehicleID)
		}
		return releaseVehicles(tx, contractID, ids)
	})
}

func attachVehicles(tx *gorm.DB, contractID uuid.UUID, vehicleIDs []uuid.UUID) error {
	for _, vehicleID := range vehicleIDs {
		row := model.ContractVehicle{ContractID: contractID, VehicleID: vehicleID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Vehicle{}).
			Where("id = ?", vehicleID).
			Updates(map[string]interface{}{
				"status":      model.VehicleStatusInContract,
				"contract_id": contractID,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func releaseVehicles(tx *gorm.DB, contractID uuid.UUID, vehicleIDs []uuid.UUID) error {
	if len(vehicleIDs) == 0 {
		return nil
	}
	now := time.Now()
	if err := tx.Model(&model.ContractVehicle{}).
		Where("contract_id = ? AND vehicle_id IN ? AND released_at IS NULL", contractID, vehicleIDs).
		Update("released_at", now).Error; err != nil {
		return err
	}
	return tx.Model(&model.Vehicle{}).
		Where("id IN ? AND contract_id = ?", vehicleIDs, contractID).
		Updates(map[string]interface{}{
			"status":      model.VehicleStatusFree,
			"contract_id": nil,
		}).Error
}
