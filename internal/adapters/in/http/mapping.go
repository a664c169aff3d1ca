package http

import (
	"errors"

	"logistics/internal/adapters/in/http/api"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func attributesFromAPI(body api.NewParcel) (parcel.Attributes, error) {
	priority, priorityErr := parcel.ParsePriority(body.Priority)
	payment, paymentErr := parcel.ParsePaymentStatus(body.PaymentStatus)
	refs, refsErr := optionalIDs(body.SenderID, body.RecipientID, body.OriginID, body.DestinationID)
	if err := errors.Join(priorityErr, paymentErr, refsErr); err != nil {
		return parcel.Attributes{}, err
	}

	attrs := parcel.Attributes{
		SenderID:            refs[0],
		RecipientID:         refs[1],
		OriginID:            refs[2],
		DestinationID:       refs[3],
		DeliveryAddress:     body.DeliveryAddress,
		Fragile:             body.Fragile,
		RequiresSignature:   body.RequiresSignature,
		Priority:            priority,
		Payment:             payment,
		DeliveryFee:         body.DeliveryFee,
		ExtraCharges:        body.ExtraCharges,
		SpecialInstructions: body.SpecialInstructions,
	}
	if d := body.Dimensions; d != nil {
		attrs.Dimensions = parcel.Dimensions{LengthCm: d.LengthCm, WidthCm: d.WidthCm, HeightCm: d.HeightCm}
	}
	if body.ExpectedDeliveryDate != nil {
		date := body.ExpectedDeliveryDate.Time
		attrs.ExpectedDeliveryDate = &date
	}
	return attrs, nil
}

func parcelToAPI(p *parcel.Parcel) api.Parcel {
	attrs := p.Attributes()
	out := api.Parcel{
		ID:                 p.ID().Bytes(),
		TrackingNumber:     p.TrackingNumber().String(),
		Status:             p.Status().String(),
		WeightKg:           p.WeightKg(),
		CurrentLocation:    p.CurrentLocation(),
		RecipientID:        kernel.OptionalBytes(p.RecipientID()),
		DestinationID:      kernel.OptionalBytes(p.DestinationID()),
		Priority:           string(attrs.Priority),
		PaymentStatus:      string(attrs.Payment),
		TotalCharge:        attrs.TotalCharge(),
		StationArrivalTime: p.StationArrivalTime(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
	if code := p.PickupCode(); code != nil {
		out.PickupCode = code.String()
	}
	return out
}

func parcelViewToAPI(v *queries.GetParcelQueryResponse) api.ParcelView {
	out := api.ParcelView{
		ID:                 v.ID.Bytes(),
		TrackingNumber:     v.TrackingNumber.String(),
		Status:             v.Status.String(),
		WeightKg:           v.WeightKg,
		CurrentLocation:    v.CurrentLocation,
		RecipientID:        kernel.OptionalBytes(v.RecipientID),
		DestinationID:      kernel.OptionalBytes(v.DestinationID),
		StationArrivalTime: v.StationArrivalTime,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if r := v.OpenReturn; r != nil {
		out.OpenReturn = &api.OpenReturn{
			ID:          r.ID.Bytes(),
			Reason:      r.Reason.String(),
			ReturnTo:    kernel.OptionalBytes(r.ReturnTo),
			InitiatedAt: r.InitiatedAt,
		}
	}
	if pk := v.Pickup; pk != nil {
		out.Pickup = &api.PickupSummary{PickedUpAt: pk.PickedUpAt, Guest: pk.Guest, SignedOff: pk.SignedOff}
	}
	return out
}

func handoverToAPI(h *handover.Handover) api.Handover {
	return api.Handover{
		ID:           h.ID().Bytes(),
		ParcelID:     h.ParcelID().Bytes(),
		Type:         h.Type().String(),
		FromStaffID:  kernel.OptionalBytes(h.FromStaffID()),
		ToStaffID:    kernel.OptionalBytes(h.ToStaffID()),
		ToCustomerID: kernel.OptionalBytes(h.ToCustomerID()),
		LocationID:   kernel.OptionalBytes(h.LocationID()),
		FromAck:      h.FromAck(),
		ToAck:        h.ToAck(),
		Note:         h.Note(),
		CreatedAt:    h.CreatedAt(),
	}
}

func returnToAPI(r *returns.Request) api.ReturnRequest {
	return api.ReturnRequest{
		ID:          r.ID().Bytes(),
		ParcelID:    r.ParcelID().Bytes(),
		Reason:      r.Reason().String(),
		InitiatedBy: kernel.OptionalBytes(r.InitiatedBy()),
		InitiatedAt: r.InitiatedAt(),
		CompletedAt: r.CompletedAt(),
		ReturnTo:    kernel.OptionalBytes(r.ReturnTo()),
		Description: r.Description(),
	}
}

func transitToAPI(a *transit.Assignment) api.TransitAssignment {
	parcelIDs := make([]openapi_types.UUID, 0, len(a.ParcelIDs()))
	for _, id := range a.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.Bytes())
	}

	return api.TransitAssignment{
		ID:                 a.ID().Bytes(),
		VehicleID:          a.VehicleID().Bytes(),
		DriverID:           a.DriverID().Bytes(),
		OriginID:           a.OriginID().Bytes(),
		DestinationID:      a.DestinationID().Bytes(),
		ParcelIDs:          parcelIDs,
		Status:             a.Status().String(),
		ScheduledDeparture: a.ScheduledDeparture(),
		DepartureTime:      a.DepartureTime(),
		ArrivalTime:        a.ArrivalTime(),
	}
}

func deliveryToAPI(a *delivery.Assignment, entry *delivery.Log) api.DeliveryAssignment {
	out := api.DeliveryAssignment{
		ID:                 a.ID().Bytes(),
		ParcelID:           a.ParcelID().Bytes(),
		CourierID:          a.CourierID().Bytes(),
		VehicleID:          kernel.OptionalBytes(a.VehicleID()),
		OriginID:           kernel.OptionalBytes(a.OriginID()),
		DestinationAddress: a.DestinationAddress(),
		DestinationCity:    a.DestinationCity(),
		Status:             a.Status().String(),
		DepartureTime:      a.DepartureTime(),
		ArrivalTime:        a.ArrivalTime(),
		RequiresSignature:  a.RequiresSignature(),
		SignedOff:          a.SignedOff(),
	}
	if entry != nil {
		out.Log = &api.LogEntry{
			ID:         entry.ID().Bytes(),
			LocationID: kernel.OptionalBytes(entry.LocationID()),
			StaffID:    kernel.OptionalBytes(entry.StaffID()),
			Status:     entry.Status(),
			Note:       entry.Note(),
			Timestamp:  entry.Timestamp(),
		}
	}
	return out
}

// requiredIDs converts wire identifiers; the nil UUID counts as missing.
func requiredIDs(raw ...openapi_types.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("identifier", err)
		}
		ids[i] = id
	}
	return ids, nil
}

func optionalIDs(raw ...*openapi_types.UUID) ([]*kernel.UUID, error) {
	ids := make([]*kernel.UUID, len(raw))
	for i, r := range raw {
		id, err := kernel.OptionalUUIDFromBytes(r)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("identifier", err)
		}
		ids[i] = id
	}
	return ids, nil
}
