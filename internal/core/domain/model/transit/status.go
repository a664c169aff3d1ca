package transit

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a transit assignment.
//
//	Scheduled ──> InTransit ──> Completed
//	    │             │
//	    └─────────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Scheduled
	InTransit
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Scheduled: "scheduled",
	InTransit: "in_transit",
	Completed: "completed",
	Cancelled: "cancelled",
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("transit status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("transit status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Depart transitions Scheduled -> InTransit.
func (s Status) Depart() (Status, error) {
	if s != Scheduled {
		return Unknown, s.invalidTransition("depart")
	}
	return InTransit, nil
}

// Complete transitions InTransit -> Completed.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return Unknown, s.invalidTransition("complete")
	}
	return Completed, nil
}

// Cancel is allowed from Scheduled and InTransit.
func (s Status) Cancel() (Status, error) {
	if s != Scheduled && s != InTransit {
		return Unknown, s.invalidTransition("cancel")
	}
	return Cancelled, nil
}

func (s Status) IsFinished() bool {
	return s == Completed || s == Cancelled
}

func (s Status) invalidTransition(action string) error {
	return errs.NewStateIsInvalidErrorWithCause(
		"transit status",
		fmt.Errorf("cannot %s an assignment that is %s", action, s),
	)
}
