package model

import "github.com/google/uuid"

// Principal is the authenticated caller, resolved from JWT claims by the
// auth middleware. Every operation is scoped to the principal's company.
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	UserType  UserType
}

func (p Principal) IsMaster() bool {
	return p.UserType == UserTypeMaster
}
