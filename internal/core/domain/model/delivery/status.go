package delivery

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery assignment.
//
//	Assigned ──> OutForDelivery ──┬──> Delivered
//	    │                         ├──> Failed
//	    └─────────────────────────┴──> Returned
type Status int

const (
	Unknown Status = iota
	Assigned
	OutForDelivery
	Delivered
	Failed
	Returned
)

var statusNames = map[Status]string{
	Assigned:       "assigned",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Failed:         "failed",
	Returned:       "returned",
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinished reports whether the assignment reached an outcome.
func (s Status) IsFinished() bool {
	return s == Delivered || s == Failed || s == Returned
}
