package parcel

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

var (
	// ErrStatusIsInvalid is returned for any value outside the defined set.
	ErrStatusIsInvalid = errs.NewValueIsInvalidError("parcel status")

	// ErrStatusIsTerminal is returned when a plain status update targets a
	// parcel that already reached its final disposition.
	ErrStatusIsTerminal = errs.NewStateIsInvalidError("parcel status is terminal")
)

// Status is the position of a parcel in its lifecycle.
//
//	packed ──> in_transit ──> at_station ──> out_for_delivery ──> delivered
//	   │            │              │                 │
//	   └────────────┴──────────────┴─────────────────┴──> cancelled
//
// delivered, cancelled, returned_station and returned_warehouse are terminal.
// A terminal parcel leaves its state only through a completed return or an
// exchange, never through a plain update.
type Status string

const (
	Packed            Status = "packed"
	InTransit         Status = "in_transit"
	AtStation         Status = "at_station"
	OutForDelivery    Status = "out_for_delivery"
	Delivered         Status = "delivered"
	ReturnedStation   Status = "returned_station"
	ReturnedWarehouse Status = "returned_warehouse"
	Cancelled         Status = "cancelled"
)

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Packed, InTransit, AtStation, OutForDelivery, Delivered, ReturnedStation, ReturnedWarehouse, Cancelled}
}

// ParseStatus accepts the stored form case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	for _, v := range AllStatuses() {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrStatusIsInvalid, string(s))
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, ReturnedStation, ReturnedWarehouse:
		return true
	default:
		return false
	}
}

// IsReturned reports whether the parcel went back to a station or warehouse.
func (s Status) IsReturned() bool {
	return s == ReturnedStation || s == ReturnedWarehouse
}
