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
)

type fakeCompanyStore struct {
	byID      map[uuid.UUID]*model.Company
	lookupErr error
}

func newFakeCompanyStore(companies ...*model.Company) *fakeCompanyStore {
	f := &fakeCompanyStore{byID: make(map[uuid.UUID]*model.Company)}
	for _, c := range companies {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCompanyStore) Create(_ context.Context, c *model.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	f.byID[c.ID] = &stored
	return nil
}

func (f *fakeCompanyStore) GetByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCompanyStore) GetByTaxNumber(_ context.Context, taxNumber string) (*model.Company, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, c := range f.byID {
		if c.TaxNumber == taxNumber {
			out := *c
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyStore) Update(_ context.Context, c *model.Company) error {
	if _, ok := f.byID[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *c
	f.byID[c.ID] = &stored
	return nil
}

func (f *fakeCompanyStore) ListClients(_ context.Context, providerID uuid.UUID) ([]model.Company, error) {
	var out []model.Company
	for _, c := range f.byID {
		if c.RelatedCompanyID != nil && *c.RelatedCompanyID == providerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func companyInput() CompanyInput {
	return CompanyInput{
		LegalName: "Transportes Azul Ltda",
		TradeName: "Transportes Azul",
		TaxNumber: "12.345.678/0001-95",
		City:      "São Paulo",
		State:     "sp",
	}
}

func TestCompanyCreate(t *testing.T) {
	store := newFakeCompanyStore()
	svc := NewCompanyService(store, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	created, err := svc.Create(context.Background(), principal, companyInput())
	require.NoError(t, err)

	assert.Equal(t, "12345678000195", created.TaxNumber)
	assert.Equal(t, "SP", created.State)
	assert.Equal(t, model.CompanyStatusActive, created.Status)
	require.NotNil(t, created.RelatedCompanyID)
	assert.Equal(t, principal.CompanyID, *created.RelatedCompanyID)
}

func TestCompanyCreateValidation(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyStore(), zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	in := companyInput()
	in.LegalName = "  "
	_, err := svc.Create(context.Background(), principal, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = companyInput()
	in.TaxNumber = "12.345.678"
	_, err = svc.Create(context.Background(), principal, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompanyCreateDuplicateTaxNumber(t *testing.T) {
	store := newFakeCompanyStore()
	svc := NewCompanyService(store, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	_, err := svc.Create(context.Background(), principal, companyInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), principal, companyInput())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCompanyCreateLookupFailureIsUnavailable(t *testing.T) {
	store := newFakeCompanyStore()
	store.lookupErr = errors.New("connection refused")
	svc := NewCompanyService(store, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New()}

	_, err := svc.Create(context.Background(), principal, companyInput())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, store.byID)
}

func TestCompanyVisibility(t *testing.T) {
	providerID := uuid.New()
	own := &model.Company{ID: providerID, TradeName: "Own", TaxNumber: "11111111000111"}
	client := &model.Company{ID: uuid.New(), TradeName: "Client", TaxNumber: "22222222000122", RelatedCompanyID: &providerID}
	foreign := &model.Company{ID: uuid.New(), TradeName: "Foreign", TaxNumber: "33333333000133"}

	svc := NewCompanyService(newFakeCompanyStore(own, client, foreign), zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: providerID, UserType: model.UserTypeStandard}

	_, err := svc.Get(context.Background(), principal, own.ID)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), principal, client.ID)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), principal, foreign.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	master := model.Principal{UserID: uuid.New(), CompanyID: uuid.New(), UserType: model.UserTypeMaster}
	_, err = svc.Get(context.Background(), master, foreign.ID)
	assert.NoError(t, err)
}

func TestCompanyGetByTaxNumber(t *testing.T) {
	providerID := uuid.New()
	client := &model.Company{ID: uuid.New(), TaxNumber: "12345678000195", RelatedCompanyID: &providerID}
	svc := NewCompanyService(newFakeCompanyStore(client), zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: providerID}

	found, err := svc.GetByTaxNumber(context.Background(), principal, "12.345.678/0001-95")
	require.NoError(t, err)
	assert.Equal(t, client.ID, found.ID)

	_, err = svc.GetByTaxNumber(context.Background(), principal, "99999999000199")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByTaxNumber(context.Background(), principal, "123")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompanyUpdate(t *testing.T) {
	providerID := uuid.New()
	client := &model.Company{
		ID:               uuid.New(),
		LegalName:        "Old Legal",
		TradeName:        "Old Trade",
		TaxNumber:        "12345678000195",
		Status:           model.CompanyStatusActive,
		RelatedCompanyID: &providerID,
	}
	store := newFakeCompanyStore(client)
	svc := NewCompanyService(store, zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: providerID}

	updated, err := svc.Update(context.Background(), principal, client.ID, UpdateCompanyInput{
		TradeName: "New Trade",
		Status:    model.CompanyStatusInactive,
		Phone:     "11 98765-4321",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Trade", updated.TradeName)
	assert.Equal(t, "Old Legal", updated.LegalName)
	assert.Equal(t, model.CompanyStatusInactive, updated.Status)

	// Tax number is immutable through updates.
	assert.Equal(t, "12345678000195", store.byID[client.ID].TaxNumber)

	_, err = svc.Update(context.Background(), principal, client.ID, UpdateCompanyInput{Status: "ARCHIVED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCompanyListClients(t *testing.T) {
	providerID := uuid.New()
	client := &model.Company{ID: uuid.New(), TaxNumber: "12345678000195", RelatedCompanyID: &providerID}
	other := &model.Company{ID: uuid.New(), TaxNumber: "99999999000199"}

	svc := NewCompanyService(newFakeCompanyStore(client, other), zerolog.Nop())
	principal := model.Principal{UserID: uuid.New(), CompanyID: providerID}

	clients, err := svc.ListClients(context.Background(), principal)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, client.ID, clients[0].ID)
}
