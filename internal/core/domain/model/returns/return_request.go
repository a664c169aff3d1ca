// Package returns models the one-per-parcel request to send a parcel back.
package returns

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrReasonIsInvalid        = errs.NewValueIsInvalidError("return reason")
	ErrReturnToIsRequired     = errs.NewValueIsRequiredError("return to location")
	ErrReturnAlreadyExists    = errs.NewObjectAlreadyExistsError("return request for parcel", nil)
	ErrReturnAlreadyCompleted = errs.NewStateIsInvalidError("return request is already completed")
	ErrReturnToIsGone         = errs.NewStateIsInvalidError("return to location no longer exists")
	ErrReturnIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

type Reason string

const (
	DeliveryRefused         Reason = "delivery_refused"
	CustomerUnavailable     Reason = "customer_unavailable"
	WrongAddress            Reason = "wrong_address"
	ExpiredWindow           Reason = "expired_window"
	DamagedInTransit        Reason = "damaged_in_transit"
	Expired                 Reason = "expired"
	PackagingIssue          Reason = "packaging_issue"
	FailedDeliveryAttempt   Reason = "failed_delivery_attempt"
	RestrictedItem          Reason = "restricted_item"
	LostInTransit           Reason = "lost_in_transit"
	CustomerRequestedReturn Reason = "customer_requested_return"
)

func AllReasons() []Reason {
	return []Reason{
		DeliveryRefused, CustomerUnavailable, WrongAddress, ExpiredWindow,
		DamagedInTransit, Expired, PackagingIssue, FailedDeliveryAttempt,
		RestrictedItem, LostInTransit, CustomerRequestedReturn,
	}
}

func ParseReason(s string) (Reason, error) {
	r := Reason(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Validate()
}

func (r Reason) Validate() error {
	for _, v := range AllReasons() {
		if r == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrReasonIsInvalid, string(r))
}

func (r Reason) String() string { return string(r) }

// Request sends a parcel back to returnTo. A nil CompletedAt means the return
// is still in flight; once set it never changes.
type Request struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	reason      Reason
	initiatedBy *kernel.UUID
	initiatedAt time.Time
	completedAt *time.Time
	returnTo    *kernel.UUID
	description string
	guard       guard.ConstructorGuard
}

// NewRequest opens a return. initiatedBy is nil when a scheduled job opens it.
func NewRequest(
	id, parcelID kernel.UUID,
	reason Reason,
	initiatedBy *kernel.UUID,
	returnTo kernel.UUID,
	description string,
	now time.Time,
) (*Request, error) {
	var returnToErr error
	if returnTo.Validate() != nil {
		returnToErr = ErrReturnToIsRequired
	}
	if err := errors.Join(reason.Validate(), returnToErr); err != nil {
		return nil, err
	}
	return RestoreRequest(id, parcelID, reason, initiatedBy, now, nil, &returnTo, strings.TrimSpace(description))
}

// RestoreRequest rebuilds a stored request. returnTo is nil once the
// location was deleted.
func RestoreRequest(
	id, parcelID kernel.UUID,
	reason Reason,
	initiatedBy *kernel.UUID,
	initiatedAt time.Time,
	completedAt *time.Time,
	returnTo *kernel.UUID,
	description string,
) (*Request, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), reason.Validate()); err != nil {
		return nil, err
	}

	return &Request{
		id:          id,
		parcelID:    parcelID,
		reason:      reason,
		initiatedBy: initiatedBy,
		initiatedAt: initiatedAt,
		completedAt: completedAt,
		returnTo:    returnTo,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (r *Request) Validate() error {
	if r == nil {
		return ErrReturnIsNotConstructed
	}
	return r.guard.Validate(ErrReturnIsNotConstructed)
}

func (r *Request) ID() kernel.UUID { return r.id }
func (r *Request) ParcelID() kernel.UUID { return r.parcelID }
func (r *Request) Reason() Reason { return r.reason }
func (r *Request) InitiatedBy() *kernel.UUID { return r.initiatedBy }
func (r *Request) InitiatedAt() time.Time { return r.initiatedAt }
func (r *Request) CompletedAt() *time.Time { return r.completedAt }
func (r *Request) ReturnTo() *kernel.UUID { return r.returnTo }
func (r *Request) Description() string { return r.description }

func (r *Request) IsOpen() bool { return r.completedAt == nil }

// Complete closes the return. It fails with ErrReturnAlreadyCompleted when
// called a second time and with ErrReturnToIsGone when the destination was
// deleted.
func (r *Request) Complete(now time.Time) error {
	if r.completedAt != nil {
		return ErrReturnAlreadyCompleted
	}
	if r.returnTo == nil {
		return ErrReturnToIsGone
	}
	r.completedAt = &now
	return nil
}
