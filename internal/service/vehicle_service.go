package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/cache"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type vehicleStore interface {
	Create(ctx context.Context, v *model.Vehicle) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*model.Vehicle, error)
	GetByPlate(ctx context.Context, companyID uuid.UUID, plate string) (*model.Vehicle, error)
	GetByChassis(ctx context.Context, companyID uuid.UUID, chassis string) (*model.Vehicle, error)
	GetByQRCode(ctx context.Context, companyID uuid.UUID, code string) (*model.Vehicle, error)
	List(ctx context.Context, filter repository.VehicleFilter) ([]model.Vehicle, error)
	History(ctx context.Context, companyID, vehicleID uuid.UUID) ([]model.VehicleHistoryEntry, error)
	CreateModel(ctx context.Context, m *model.VehicleModel) error
	ListModels(ctx context.Context) ([]model.VehicleModel, error)
}

type VehicleService struct {
	vehicleRepo vehicleStore
	cache       *cache.VehicleCache
	log         zerolog.Logger
}

func NewVehicleService(vehicleRepo vehicleStore, vehicleCache *cache.VehicleCache, log zerolog.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		cache:       vehicleCache,
		log:         log,
	}
}

type CreateVehicleInput struct {
	VehicleModelID  uuid.UUID
	LicensePlate    string
	Chassis         string
	Renavam         string
	QRCode          string
	Color           string
	FuelType        model.FuelType
	Mileage         int64
	ManufactureYear int
	ModelYear       int
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.Vehicle, error) {
	plate := model.NormalizeLicensePlate(input.LicensePlate)
	chassis := model.NormalizeChassis(input.Chassis)

	if input.VehicleModelID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if plate != "" && !model.ValidLicensePlate(plate) {
		return nil, ErrInvalidInput
	}
	if !model.ValidChassis(chassis) {
		return nil, ErrInvalidInput
	}
	if !input.FuelType.Valid() {
		return nil, ErrInvalidInput
	}

	vehicle := &model.Vehicle{
		VehicleModelID:  input.VehicleModelID,
		CompanyID:       principal.CompanyID,
		LicensePlate:    plate,
		Chassis:         chassis,
		Renavam:         strings.TrimSpace(input.Renavam),
		QRCode:          strings.TrimSpace(input.QRCode),
		Color:           strings.TrimSpace(input.Color),
		FuelType:        input.FuelType,
		Mileage:         input.Mileage,
		ManufactureYear: input.ManufactureYear,
		ModelYear:       input.ModelYear,
		Status:          model.VehicleStatusFree,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return vehicle, nil
}

// ResolveByPlate finds a vehicle by license plate within the company scope,
// consulting the redis cache first. Absence and lookup failure stay
// distinct outcomes.
func (s *VehicleService) ResolveByPlate(ctx context.Context, principal model.Principal, plate string) (*model.Vehicle, error) {
	plate = model.NormalizeLicensePlate(plate)
	if !model.ValidLicensePlate(plate) {
		return nil, ErrInvalidInput
	}
	return s.resolve(ctx, principal, "plate", plate, func() (*model.Vehicle, error) {
		return s.vehicleRepo.GetByPlate(ctx, principal.CompanyID, plate)
	})
}

func (s *VehicleService) ResolveByChassis(ctx context.Context, principal model.Principal, chassis string) (*model.Vehicle, error) {
	chassis = model.NormalizeChassis(chassis)
	if !model.ValidChassis(chassis) {
		return nil, ErrInvalidInput
	}
	return s.resolve(ctx, principal, "chassis", chassis, func() (*model.Vehicle, error) {
		return s.vehicleRepo.GetByChassis(ctx, principal.CompanyID, chassis)
	})
}

func (s *VehicleService) ResolveByQRCode(ctx context.Context, principal model.Principal, code string) (*model.Vehicle, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidInput
	}
	return s.resolve(ctx, principal, "qr", code, func() (*model.Vehicle, error) {
		return s.vehicleRepo.GetByQRCode(ctx, principal.CompanyID, code)
	})
}

func (s *VehicleService) resolve(ctx context.Context, principal model.Principal, kind, value string, fetch func() (*model.Vehicle, error)) (*model.Vehicle, error) {
	companyID := principal.CompanyID.String()
	if cached, ok := s.cache.Get(ctx, companyID, kind, value); ok {
		return cached, nil
	}

	vehicle, err := fetch()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Warn().Err(err).Str("kind", kind).Msg("vehicle lookup failed")
		return nil, ErrUnavailable
	}

	s.cache.Set(ctx, companyID, kind, value, vehicle)
	return vehicle, nil
}

type ListVehiclesOptions struct {
	Statuses []model.VehicleStatus
	Search   string
	Limit    int
	Offset   int
}

func (s *VehicleService) List(ctx context.Context, principal model.Principal, opts ListVehiclesOptions) ([]model.Vehicle, error) {
	return s.vehicleRepo.List(ctx, repository.VehicleFilter{
		CompanyID: principal.CompanyID,
		Statuses:  opts.Statuses,
		Search:    opts.Search,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	})
}

func (s *VehicleService) History(ctx context.Context, principal model.Principal, vehicleID uuid.UUID) ([]model.VehicleHistoryEntry, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, principal.CompanyID, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.vehicleRepo.History(ctx, principal.CompanyID, vehicleID)
}

type CreateVehicleModelInput struct {
	ModelName    string
	Manufacturer string
	Observations string
}

func (s *VehicleService) CreateModel(ctx context.Context, input CreateVehicleModelInput) (*model.VehicleModel, error) {
	if strings.TrimSpace(input.ModelName) == "" || strings.TrimSpace(input.Manufacturer) == "" {
		return nil, ErrInvalidInput
	}
	m := &model.VehicleModel{
		ModelName:    strings.TrimSpace(input.ModelName),
		Manufacturer: strings.TrimSpace(input.Manufacturer),
		Observations: strings.TrimSpace(input.Observations),
	}
	if err := s.vehicleRepo.CreateModel(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *VehicleService) ListModels(ctx context.Context) ([]model.VehicleModel, error) {
	return s.vehicleRepo.ListModels(ctx)
}
