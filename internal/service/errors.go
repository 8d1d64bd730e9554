package service

import (
	"errors"

	"fleet-service/internal/model"
)

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidStatus      = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")

	// ErrUnavailable marks a transient collaborator failure. Lookups that
	// fail this way are retryable and must never be reported as "not found".
	ErrUnavailable = errors.New("lookup temporarily unavailable")
)

// DuplicateFineError signals that a fine with the same (fine number,
// vehicle) pair already exists. The caller presents the ternary choice:
// view the existing record, switch to the update flow, or discard and start
// over.
type DuplicateFineError struct {
	Existing model.FineRecord
}

func (e *DuplicateFineError) Error() string {
	return "fine already exists for this number and vehicle"
}

func (e *DuplicateFineError) Is(target error) bool {
	return target == ErrConflict
}

// DuplicateContractError signals that the client already has a current
// contract with the provider.
type DuplicateContractError struct {
	Existing model.ContractRecord
}

func (e *DuplicateContractError) Error() string {
	return "client already has a current contract"
}

func (e *DuplicateContractError) Is(target error) bool {
	return target == ErrConflict
}
