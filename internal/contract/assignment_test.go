package contract

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
)

func vehicle(plate, chassis string, status model.VehicleStatus) model.Vehicle {
	return model.Vehicle{
		ID:           uuid.New(),
		LicensePlate: plate,
		Chassis:      chassis,
		Status:       status,
	}
}

func TestNewAssignmentAdmitsOnlyFreeVehicles(t *testing.T) {
	free := vehicle("ABC-1234", "9BWZZZ377VT004251", model.VehicleStatusFree)
	assigned := vehicle("DEF-5678", "9BWZZZ377VT004252", model.VehicleStatusInContract)
	maintenance := vehicle("GHI-9012", "9BWZZZ377VT004253", model.VehicleStatusInMaintenance)

	a := NewAssignment([]model.Vehicle{free, assigned, maintenance}, nil)

	available := a.FilterAvailable("")
	require.Len(t, available, 1)
	assert.Equal(t, free.ID, available[0].ID)
	assert.Empty(t, a.Selected())
}

func TestNewAssignmentPreselectedBypassesFreeCheck(t *testing.T) {
	onContract := vehicle("ABC-1234", "9BWZZZ377VT004251", model.VehicleStatusInContract)
	free := vehicle("DEF-5678", "9BWZZZ377VT004252", model.VehicleStatusFree)

	a := NewAssignment([]model.Vehicle{onContract, free}, []uuid.UUID{onContract.ID})

	require.Len(t, a.Selected(), 1)
	assert.Equal(t, onContract.ID, a.Selected()[0].ID)
	require.Len(t, a.FilterAvailable(""), 1)
	assert.Equal(t, free.ID, a.FilterAvailable("")[0].ID)
}

func TestSelectAndDeselect(t *testing.T) {
	v1 := vehicle("ABC-1234", "9BWZZZ377VT004251", model.VehicleStatusFree)
	v2 := vehicle("DEF-5678", "9BWZZZ377VT004252", model.VehicleStatusFree)

	a := NewAssignment([]model.Vehicle{v1, v2}, nil)

	assert.True(t, a.Select(v1.ID))
	assert.True(t, a.Disjoint())
	require.Len(t, a.Selected(), 1)
	require.Len(t, a.FilterAvailable(""), 1)

	// Selecting it again is a no-op.
	assert.False(t, a.Select(v1.ID))
	require.Len(t, a.Selected(), 1)

	assert.True(t, a.Deselect(v1.ID))
	assert.True(t, a.Disjoint())
	assert.Empty(t, a.Selected())
	require.Len(t, a.FilterAvailable(""), 2)

	assert.False(t, a.Deselect(v1.ID))
	assert.False(t, a.Select(uuid.New()))
	assert.False(t, a.Deselect(uuid.New()))
}

func TestFilterAvailableMatchesPlateAndChassis(t *testing.T) {
	v1 := vehicle("ABC-1234", "9BWZZZ377VT004251", model.VehicleStatusFree)
	v2 := vehicle("XYZ-9876", "8AGSZZZ48VR125387", model.VehicleStatusFree)

	a := NewAssignment([]model.Vehicle{v1, v2}, nil)

	byPlate := a.FilterAvailable("abc")
	require.Len(t, byPlate, 1)
	assert.Equal(t, v1.ID, byPlate[0].ID)

	byChassis := a.FilterAvailable("8agszzz")
	require.Len(t, byChassis, 1)
	assert.Equal(t, v2.ID, byChassis[0].ID)

	assert.Empty(t, a.FilterAvailable("no-match"))
	assert.Len(t, a.FilterAvailable("  "), 2)
}

func TestSelectedIDsKeepPoolOrder(t *testing.T) {
	pool := []model.Vehicle{
		vehicle("AAA-0001", "9BWZZZ377VT004251", model.VehicleStatusFree),
		vehicle("AAA-0002", "9BWZZZ377VT004252", model.VehicleStatusFree),
		vehicle("AAA-0003", "9BWZZZ377VT004253", model.VehicleStatusFree),
	}

	a := NewAssignment(pool, nil)
	require.True(t, a.Select(pool[2].ID))
	require.True(t, a.Select(pool[0].ID))

	ids := a.SelectedIDs()
	require.Len(t, ids, 2)
	assert.Equal(t, pool[0].ID, ids[0])
	assert.Equal(t, pool[2].ID, ids[1])
}
