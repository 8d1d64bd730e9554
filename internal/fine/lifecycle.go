// Package fine holds the fine lifecycle rules: due-date driven status
// resolution and the monetary arithmetic between base, discount, interest
// and final amounts. It performs no I/O; the service layer feeds it values
// and persists the results.
package fine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

var (
	// ErrStatusNotAllowed is returned when a caller asks for ACTIVE on a
	// fine whose due date has already passed.
	ErrStatusNotAllowed = errors.New("status not allowed for past due date")
)

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Overdue reports whether a fine with the given due date must be OVERDUE at
// the reference time. A fine is overdue from the first instant of its due
// date's day on.
func Overdue(dueDate, now time.Time) bool {
	return !startOfDay(dueDate).After(startOfDay(now))
}

// ResolveStatus derives the mandatory date-driven status: OVERDUE when the
// due date is on or before now's day, ACTIVE otherwise. Manual states
// (SENT_TO_CLIENT, PAID) are not derived here; see ApplyStatus.
func ResolveStatus(dueDate, now time.Time) model.FineStatus {
	if Overdue(dueDate, now) {
		return model.FineStatusOverdue
	}
	return model.FineStatusActive
}

// ApplyStatus reconciles an operator-requested status with the date-derived
// one. An empty request falls back to the derived status. SENT_TO_CLIENT and
// PAID are manual states and pass through. Requesting ACTIVE once the due
// date has passed is rejected.
func ApplyStatus(requested model.FineStatus, dueDate, now time.Time) (model.FineStatus, error) {
	derived := ResolveStatus(dueDate, now)
	switch requested {
	case "":
		return derived, nil
	case model.FineStatusSentToClient, model.FineStatusPaid:
		return requested, nil
	case model.FineStatusOverdue:
		return model.FineStatusOverdue, nil
	case model.FineStatusActive:
		if derived == model.FineStatusOverdue {
			return "", ErrStatusNotAllowed
		}
		return model.FineStatusActive, nil
	default:
		return "", ErrStatusNotAllowed
	}
}

// Amounts carries the monetary components of a fine. Discount and interest
// are independent toggles; a disabled component is forced to zero.
type Amounts struct {
	Base            decimal.Decimal
	DiscountEnabled bool
	Discount        decimal.Decimal
	InterestEnabled bool
	Interest        decimal.Decimal
}

// Normalize zeroes disabled components and rounds everything to cents.
func (a Amounts) Normalize() Amounts {
	a.Base = a.Base.Round(2)
	if a.DiscountEnabled {
		a.Discount = a.Discount.Round(2)
	} else {
		a.Discount = decimal.Zero
	}
	if a.InterestEnabled {
		a.Interest = a.Interest.Round(2)
	} else {
		a.Interest = decimal.Zero
	}
	return a
}

// Final computes base − discount + interest, clamped at zero. The final
// amount is always derived; operator-entered values are ignored.
func (a Amounts) Final() decimal.Decimal {
	n := a.Normalize()
	final := n.Base.Sub(n.Discount).Add(n.Interest)
	if final.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return final
}

// DuplicateBranch is the operator's choice after the duplicate check finds
// an existing fine with the same (fine number, vehicle) pair.
type DuplicateBranch string

const (
	BranchViewExisting    DuplicateBranch = "VIEW_EXISTING"
	BranchSwitchToUpdate  DuplicateBranch = "SWITCH_TO_UPDATE"
	BranchDiscardAndReset DuplicateBranch = "DISCARD_AND_RESET"
)
