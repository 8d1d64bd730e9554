// Package contract implements the vehicle assignment set used by the
// contract forms: a pool of FREE vehicles on one side, the vehicles picked
// for the contract on the other, with transfers between the two.
package contract

import (
	"strings"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

// Assignment tracks which vehicles from a fetched pool are selected for a
// contract. Available and selected stay disjoint; only FREE vehicles are
// admitted into the pool (already-assigned vehicles of the contract being
// edited are admitted directly into the selected set).
type Assignment struct {
	available map[uuid.UUID]model.Vehicle
	selected  map[uuid.UUID]model.Vehicle
	order     []uuid.UUID
}

// NewAssignment builds the set from the company's fetched vehicle pool.
// Vehicles already on the contract (preselected) land in the selected set;
// the rest of the pool is admitted only when FREE.
func NewAssignment(pool []model.Vehicle, preselected []uuid.UUID) *Assignment {
	pre := make(map[uuid.UUID]bool, len(preselected))
	for _, id := range preselected {
		pre[id] = true
	}

	a := &Assignment{
		available: make(map[uuid.UUID]model.Vehicle),
		selected:  make(map[uuid.UUID]model.Vehicle),
	}
	for _, v := range pool {
		a.order = append(a.order, v.ID)
		if pre[v.ID] {
			a.selected[v.ID] = v
			continue
		}
		if v.Status == model.VehicleStatusFree {
			a.available[v.ID] = v
		}
	}
	return a
}

// Select moves a vehicle from available to selected. Selecting a vehicle
// that is not available is a no-op and reports false.
func (a *Assignment) Select(id uuid.UUID) bool {
	v, ok := a.available[id]
	if !ok {
		return false
	}
	delete(a.available, id)
	a.selected[id] = v
	return true
}

// Deselect moves a vehicle from selected back to available. Deselecting a
// vehicle that is not selected is a no-op and reports false.
func (a *Assignment) Deselect(id uuid.UUID) bool {
	v, ok := a.selected[id]
	if !ok {
		return false
	}
	delete(a.selected, id)
	a.available[id] = v
	return true
}

// FilterAvailable returns the available vehicles whose plate or chassis
// contains the query, case-insensitive. An empty query returns the whole
// available set. Order follows the fetched pool.
func (a *Assignment) FilterAvailable(query string) []model.Vehicle {
	query = strings.ToUpper(strings.TrimSpace(query))
	out := make([]model.Vehicle, 0, len(a.available))
	for _, id := range a.order {
		v, ok := a.available[id]
		if !ok {
			continue
		}
		if query == "" ||
			strings.Contains(strings.ToUpper(v.LicensePlate), query) ||
			strings.Contains(strings.ToUpper(v.Chassis), query) {
			out = append(out, v)
		}
	}
	return out
}

// Selected returns the selected vehicles in pool order.
func (a *Assignment) Selected() []model.Vehicle {
	out := make([]model.Vehicle, 0, len(a.selected))
	for _, id := range a.order {
		if v, ok := a.selected[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// SelectedIDs returns the ids attached to the contract on submission.
func (a *Assignment) SelectedIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.selected))
	for _, id := range a.order {
		if _, ok := a.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Disjoint reports whether the two sets share no vehicle. It always holds
// after any sequence of Select/Deselect calls; exposed for tests.
func (a *Assignment) Disjoint() bool {
	for id := range a.selected {
		if _, ok := a.available[id]; ok {
			return false
		}
	}
	return true
}
