package delivery

import (
	"strings"

	"logistics/internal/core/domain/model/parcel"
)

// Transition is what a recognised delivery log status does to the
// assignment and its parcel.
type Transition struct {
	// To is the new assignment status.
	To Status
	// From lists the assignment statuses the transition may start from.
	From []Status
	// ParcelStatus is the parcel's new status; empty leaves the parcel as is.
	ParcelStatus  parcel.Status
	SetsDeparture bool
	SetsArrival   bool
	// SignsOff copies requires_signature into signed_off.
	SignsOff bool
}

func (t Transition) allowedFrom(s Status) bool {
	for _, f := range t.From {
		if f == s {
			return true
		}
	}
	return false
}

// transitions is keyed by the normalised log status text. Any other text is
// an informational entry.
var transitions = map[string]Transition{
	"out for delivery": {
		To:            OutForDelivery,
		From:          []Status{Assigned},
		ParcelStatus:  parcel.OutForDelivery,
		SetsDeparture: true,
	},
	"delivered": {
		To:           Delivered,
		From:         []Status{Assigned, OutForDelivery},
		ParcelStatus: parcel.Delivered,
		SetsArrival:  true,
		SignsOff:     true,
	},
	"failed": {
		To:          Failed,
		From:        []Status{Assigned, OutForDelivery},
		SetsArrival: true,
	},
	"returned": {
		To:           Returned,
		From:         []Status{Assigned, OutForDelivery},
		ParcelStatus: parcel.AtStation,
		SetsArrival:  true,
	},
}

// TransitionFor looks up the transition triggered by a log status. Matching
// ignores case, surrounding space, underscores and hyphens.
func TransitionFor(logStatus string) (Transition, bool) {
	t, ok := transitions[normalizeLogStatus(logStatus)]
	return t, ok
}

func normalizeLogStatus(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
