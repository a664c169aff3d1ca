package services

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/pickup"
)

// PickupVerifier checks a collection claim against a parcel waiting at a
// station and, on success, closes the parcel as delivered.
type PickupVerifier struct{}

func NewPickupVerifier() PickupVerifier {
	return PickupVerifier{}
}

// Verify returns the pickup record to persist. The parcel is mutated only
// when verification succeeds.
//
// Errors:
//   - pickup.ErrParcelIsNotAtStation when the parcel is not at_station
//   - pickup.ErrNotRecipient when a customer claims someone else's parcel
//   - pickup.ErrInvalidPickupCode when a guest's code does not match
func (v PickupVerifier) Verify(
	p *parcel.Parcel,
	claim pickup.Claim,
	verifiedBy kernel.UUID,
	now time.Time,
) (*pickup.Pickup, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := claim.Validate(); err != nil {
		return nil, err
	}
	if p.Status() != parcel.AtStation {
		return nil, pickup.ErrParcelIsNotAtStation
	}

	note := "picked up by recipient"
	if claim.CustomerID != nil {
		if !p.IsRecipient(*claim.CustomerID) {
			return nil, pickup.ErrNotRecipient
		}
	} else {
		if !p.PickupCodeMatches(claim.Guest.Code) {
			return nil, pickup.ErrInvalidPickupCode
		}
		note = "picked up by " + claim.Guest.Name
	}

	record, err := pickup.NewPickup(kernel.NewUUID(), p.ID(), claim, verifiedBy, now)
	if err != nil {
		return nil, err
	}

	at := p.CurrentStationID()
	if at == nil {
		at = p.DestinationID()
	}
	if err = p.UpdateStatus(parcel.Delivered, &verifiedBy, at, note, now); err != nil {
		return nil, err
	}

	return record, nil
}
