package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type fakeVehicleStore struct {
	byID     map[uuid.UUID]*model.Vehicle
	models   []model.VehicleModel
	history  map[uuid.UUID][]model.VehicleHistoryEntry
	fetchErr error
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{
		byID:    make(map[uuid.UUID]*model.Vehicle),
		history: make(map[uuid.UUID][]model.VehicleHistoryEntry),
	}
}

func (f *fakeVehicleStore) Create(_ context.Context, v *model.Vehicle) error {
	for _, stored := range f.byID {
		if stored.CompanyID == v.CompanyID &&
			(stored.LicensePlate == v.LicensePlate || stored.Chassis == v.Chassis) {
			return gorm.ErrDuplicatedKey
		}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	stored := *v
	f.byID[v.ID] = &stored
	return nil
}

func (f *fakeVehicleStore) GetByID(_ context.Context, companyID, id uuid.UUID) (*model.Vehicle, error) {
	v, ok := f.byID[id]
	if !ok || v.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *v
	return &out, nil
}

func (f *fakeVehicleStore) GetByPlate(_ context.Context, companyID uuid.UUID, plate string) (*model.Vehicle, error) {
	return f.find(companyID, func(v *model.Vehicle) bool { return v.LicensePlate == plate })
}

func (f *fakeVehicleStore) GetByChassis(_ context.Context, companyID uuid.UUID, chassis string) (*model.Vehicle, error) {
	return f.find(companyID, func(v *model.Vehicle) bool { return v.Chassis == chassis })
}

func (f *fakeVehicleStore) GetByQRCode(_ context.Context, companyID uuid.UUID, code string) (*model.Vehicle, error) {
	return f.find(companyID, func(v *model.Vehicle) bool { return v.QRCode == code })
}

func (f *fakeVehicleStore) find(companyID uuid.UUID, match func(*model.Vehicle) bool) (*model.Vehicle, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	for _, v := range f.byID {
		if v.CompanyID == companyID && match(v) {
			out := *v
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVehicleStore) List(_ context.Context, filter repository.VehicleFilter) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range f.byID {
		if v.CompanyID == filter.CompanyID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) History(_ context.Context, companyID, vehicleID uuid.UUID) ([]model.VehicleHistoryEntry, error) {
	return f.history[vehicleID], nil
}

func (f *fakeVehicleStore) CreateModel(_ context.Context, m *model.VehicleModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.models = append(f.models, *m)
	return nil
}

func (f *fakeVehicleStore) ListModels(_ context.Context) ([]model.VehicleModel, error) {
	return f.models, nil
}

func vehicleInput() CreateVehicleInput {
	return CreateVehicleInput{
		VehicleModelID:  uuid.New(),
		LicensePlate:    "abc1234",
		Chassis:         "9bwzzz377vt004251",
		Renavam:         "00123456789",
		QRCode:          "QR-0001",
		Color:           "white",
		FuelType:        model.FuelFlex,
		Mileage:         42000,
		ManufactureYear: 2022,
		ModelYear:       2023,
	}
}

func TestVehicleCreateNormalizesIdentifiers(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	created, err := svc.Create(context.Background(), principal, vehicleInput())
	require.NoError(t, err)

	assert.Equal(t, "ABC-1234", created.LicensePlate)
	assert.Equal(t, "9BWZZZ377VT004251", created.Chassis)
	assert.Equal(t, model.VehicleStatusFree, created.Status)
	assert.Equal(t, principal.CompanyID, created.CompanyID)
}

func TestVehicleCreateRejectsBadInput(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	tests := []struct {
		name   string
		mutate func(*CreateVehicleInput)
	}{
		{name: "missing model", mutate: func(in *CreateVehicleInput) { in.VehicleModelID = uuid.Nil }},
		{name: "short plate", mutate: func(in *CreateVehicleInput) { in.LicensePlate = "AB12" }},
		{name: "short chassis", mutate: func(in *CreateVehicleInput) { in.Chassis = "9BWZZZ" }},
		{name: "unknown fuel", mutate: func(in *CreateVehicleInput) { in.FuelType = "COAL" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := vehicleInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), principal, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestVehicleCreateDuplicatePlate(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	_, err := svc.Create(context.Background(), principal, vehicleInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), principal, vehicleInput())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVehicleResolve(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	created, err := svc.Create(context.Background(), principal, vehicleInput())
	require.NoError(t, err)

	byPlate, err := svc.ResolveByPlate(context.Background(), principal, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPlate.ID)

	byChassis, err := svc.ResolveByChassis(context.Background(), principal, "9bwzzz377vt004251")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byChassis.ID)

	byQR, err := svc.ResolveByQRCode(context.Background(), principal, "QR-0001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byQR.ID)

	_, err = svc.ResolveByPlate(context.Background(), principal, "ZZZ-9999")
	assert.ErrorIs(t, err, ErrNotFound)

	// Another company never sees the vehicle.
	other := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}
	_, err = svc.ResolveByPlate(context.Background(), other, "ABC-1234")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVehicleResolveRejectsMalformedInput(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore(), nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	_, err := svc.ResolveByPlate(context.Background(), principal, "AB12")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ResolveByChassis(context.Background(), principal, "9BWZZZ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ResolveByQRCode(context.Background(), principal, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVehicleResolveLookupFailureIsUnavailable(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}
	store.fetchErr = errors.New("connection refused")

	_, err := svc.ResolveByPlate(context.Background(), principal, "ABC-1234")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVehicleHistoryRequiresExistingVehicle(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	_, err := svc.History(context.Background(), principal, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := svc.Create(context.Background(), principal, vehicleInput())
	require.NoError(t, err)
	store.history[created.ID] = []model.VehicleHistoryEntry{{VehicleID: created.ID, ContractID: uuid.New()}}

	entries, err := svc.History(context.Background(), principal, created.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateVehicleModel(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, zerolog.Nop())

	_, err := svc.CreateModel(context.Background(), CreateVehicleModelInput{ModelName: "  ", Manufacturer: "VW"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.CreateModel(context.Background(), CreateVehicleModelInput{ModelName: " Gol ", Manufacturer: " VW "})
	require.NoError(t, err)
	assert.Equal(t, "Gol", created.ModelName)
	assert.Equal(t, "VW", created.Manufacturer)

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Len(t, models, 1)
}
