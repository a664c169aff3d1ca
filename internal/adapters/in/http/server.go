package http

import (
	"context"
	"log/slog"
	"net/http"

	"logistics/internal/adapters/in/http/api"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is the shape shared by every command and query handler.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f HandlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateParcel             Handler[commands.CreateParcelCommand, *parcel.Parcel]
	UpdateParcelStatus       Handler[commands.UpdateParcelStatusCommand, *parcel.Parcel]
	IssuePickupCode          Handler[commands.IssuePickupCodeCommand, *parcel.Parcel]
	VerifyPickup             Handler[commands.VerifyPickupCommand, *pickup.Pickup]
	RecordHandover           Handler[commands.RecordHandoverCommand, *handover.Handover]
	AcknowledgeHandover      Handler[commands.AcknowledgeHandoverCommand, *handover.Handover]
	InitiateReturn           Handler[commands.InitiateReturnCommand, *returns.Request]
	CompleteReturn           Handler[commands.CompleteReturnCommand, *returns.Request]
	RecordExchange           Handler[commands.RecordExchangeCommand, *exchange.Exchange]
	CreateTransitAssignment  Handler[commands.CreateTransitAssignmentCommand, *transit.Assignment]
	ChangeTransitStatus      Handler[commands.ChangeTransitStatusCommand, *transit.Assignment]
	AppendTransitLog         Handler[commands.AppendTransitLogCommand, transit.Log]
	CreateDeliveryAssignment Handler[commands.CreateDeliveryAssignmentCommand, *delivery.Assignment]
	AppendDeliveryLog        Handler[commands.AppendDeliveryLogCommand, commands.AppendDeliveryLogResult]

	GetParcel          Handler[queries.GetParcelQuery, *queries.GetParcelQueryResponse]
	GetParcelTimeline  Handler[queries.GetParcelTimelineQuery, []queries.GetParcelTimelineQueryResponse]
	GetTransitManifest Handler[queries.GetTransitManifestQuery, *queries.GetTransitManifestQueryResponse]
}

// Server implements api.ServerInterface. It translates wire types into
// commands and queries and maps results and error categories back.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{h: handlers, logger: logger.With(slog.String("component", "http"))}
}

// actorID reads the acting staff member. Whether the id belongs to active
// staff is decided by the use case.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(api.StaffIDHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewAccessIsDeniedError(api.StaffIDHeader + " header is missing")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(api.StaffIDHeader, err)
	}
	return id, nil
}

func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewParcel
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	attrs, err := attributesFromAPI(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	items := make([]commands.ItemInput, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, commands.ItemInput{
			Name:        it.Name,
			Description: it.Description,
			Category:    it.Category,
			Quantity:    it.Quantity,
			WeightKg:    it.WeightKg,
			Value:       it.Value,
		})
	}

	cmd, err := commands.NewCreateParcelCommand(actor, body.WeightKg, attrs, items)
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.h.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, parcelToAPI(p))
}

func (s *Server) GetParcel(ctx echo.Context, trackingNumber string) error {
	query, err := queries.NewGetParcelQuery(trackingNumber)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelViewToAPI(view))
}

func (s *Server) GetParcelTimeline(ctx echo.Context, trackingNumber string) error {
	query, err := queries.NewGetParcelTimelineQuery(trackingNumber)
	if err != nil {
		return s.fail(ctx, err)
	}
	entries, err := s.h.GetParcelTimeline.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.TimelineEntry, len(entries))
	for i, e := range entries {
		response[i] = api.TimelineEntry{
			Status:     e.Status.String(),
			LocationID: kernel.OptionalBytes(e.LocationID),
			StaffID:    kernel.OptionalBytes(e.StaffID),
			Note:       e.Note,
			Timestamp:  e.Timestamp,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) UpdateParcelStatus(ctx echo.Context, parcelID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	locationID, err := kernel.OptionalUUIDFromBytes(body.LocationID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("location_id", err))
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(actor, id, body.Status, locationID, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.h.UpdateParcelStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToAPI(p))
}

func (s *Server) IssuePickupCode(ctx echo.Context, parcelID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewIssuePickupCodeCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.h.IssuePickupCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToAPI(p))
}

func (s *Server) VerifyPickup(ctx echo.Context, parcelID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.PickupClaim
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	customerID, err := kernel.OptionalUUIDFromBytes(body.CustomerID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("customer_id", err))
	}
	claim := pickup.Claim{CustomerID: customerID}
	if body.Guest != nil {
		claim.Guest = &pickup.Guest{Name: body.Guest.Name, IDNumber: body.Guest.IDNumber, Code: body.Guest.Code}
	}

	cmd, err := commands.NewVerifyPickupCommand(actor, id, claim)
	if err != nil {
		return s.fail(ctx, err)
	}
	pk, err := s.h.VerifyPickup.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Pickup{
		ID:         pk.ID().Bytes(),
		ParcelID:   pk.ParcelID().Bytes(),
		CustomerID: kernel.OptionalBytes(pk.CustomerID()),
		GuestName:  pk.GuestName(),
		VerifiedBy: kernel.OptionalBytes(pk.VerifiedBy()),
		SignedOff:  pk.SignedOff(),
		PickedUpAt: pk.PickedUpAt(),
	})
}

func (s *Server) RecordHandover(ctx echo.Context, parcelID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewHandover
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	from, err := kernel.UUIDFromBytes(body.FromStaffID[:])
	if err != nil {
		return s.fail(ctx, errs.NewValueIsRequiredErrorWithCause("from_staff_id", err))
	}
	refs, err := optionalIDs(body.ToStaffID, body.ToCustomerID, body.LocationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordHandoverCommand(actor, id, body.Type, from, refs[0], refs[1], refs[2], body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	h, err := s.h.RecordHandover.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, handoverToAPI(h))
}

func (s *Server) AcknowledgeHandover(ctx echo.Context, handoverID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, handoverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAcknowledgeHandoverCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	h, err := s.h.AcknowledgeHandover.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, handoverToAPI(h))
}

func (s *Server) InitiateReturn(ctx echo.Context, parcelID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewReturn
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	returnTo, err := kernel.UUIDFromBytes(body.ReturnTo[:])
	if err != nil {
		return s.fail(ctx, errs.NewValueIsRequiredErrorWithCause("return_to", err))
	}

	cmd, err := commands.NewInitiateReturnCommand(actor, id, body.Reason, returnTo, body.Description)
	if err != nil {
		return s.fail(ctx, err)
	}
	r, err := s.h.InitiateReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, returnToAPI(r))
}

func (s *Server) CompleteReturn(ctx echo.Context, returnID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, returnID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteReturnCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	r, err := s.h.CompleteReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, returnToAPI(r))
}

func (s *Server) RecordExchange(ctx echo.Context, parcelID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewExchange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	refs, err := optionalIDs(body.ToRecipientID, body.ToStationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordExchangeCommand(actor, id, refs[0], refs[1], body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	e, err := s.h.RecordExchange.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Exchange{
		ID:              e.ID().Bytes(),
		ParcelID:        e.ParcelID().Bytes(),
		FromRecipientID: kernel.OptionalBytes(e.FromRecipientID()),
		ToRecipientID:   kernel.OptionalBytes(e.ToRecipientID()),
		FromStationID:   kernel.OptionalBytes(e.FromStationID()),
		ToStationID:     kernel.OptionalBytes(e.ToStationID()),
		SwitchedBy:      kernel.OptionalBytes(e.SwitchedBy()),
		SwitchedAt:      e.SwitchedAt(),
		Note:            e.Note(),
	})
}

func (s *Server) CreateTransitAssignment(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewTransitAssignment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ids, err := requiredIDs(body.VehicleID, body.DriverID, body.OriginID, body.DestinationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	parcelIDs, err := requiredIDs(body.ParcelIDs...)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateTransitAssignmentCommand(actor, ids[0], ids[1], ids[2], ids[3],
		parcelIDs, body.ScheduledDeparture)
	if err != nil {
		return s.fail(ctx, err)
	}
	a, err := s.h.CreateTransitAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, transitToAPI(a))
}

func (s *Server) GetTransitManifest(ctx echo.Context, assignmentID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(assignmentID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetTransitManifestQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	m, err := s.h.GetTransitManifest.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	parcels := make([]api.ManifestParcel, len(m.Parcels))
	for i, p := range m.Parcels {
		parcels[i] = api.ManifestParcel{
			ID:             p.ID.Bytes(),
			TrackingNumber: p.TrackingNumber.String(),
			Status:         p.Status.String(),
			WeightKg:       p.WeightKg,
		}
	}
	return ctx.JSON(http.StatusOK, api.TransitManifest{
		ID:                 m.ID.Bytes(),
		Status:             m.Status.String(),
		VehicleID:          m.VehicleID.Bytes(),
		PlateNumber:        m.PlateNumber,
		DriverID:           m.DriverID.Bytes(),
		OriginID:           m.OriginID.Bytes(),
		DestinationID:      m.DestinationID.Bytes(),
		ScheduledDeparture: m.ScheduledDeparture,
		DepartureTime:      m.DepartureTime,
		ArrivalTime:        m.ArrivalTime,
		TotalWeightKg:      m.TotalWeightKg,
		Parcels:            parcels,
	})
}

func (s *Server) ChangeTransitStatus(ctx echo.Context, assignmentID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, assignmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.TransitAction
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeTransitStatusCommand(actor, id, body.Action)
	if err != nil {
		return s.fail(ctx, err)
	}
	a, err := s.h.ChangeTransitStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitToAPI(a))
}

func (s *Server) AppendTransitLog(ctx echo.Context, assignmentID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, assignmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewLogEntry
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	locationID, err := kernel.OptionalUUIDFromBytes(body.LocationID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("location_id", err))
	}

	cmd, err := commands.NewAppendTransitLogCommand(actor, id, locationID, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	entry, err := s.h.AppendTransitLog.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.LogEntry{
		ID:         entry.ID().Bytes(),
		LocationID: kernel.OptionalBytes(entry.LocationID()),
		StaffID:    kernel.OptionalBytes(entry.StaffID()),
		Note:       entry.Note(),
		Timestamp:  entry.Timestamp(),
	})
}

func (s *Server) CreateDeliveryAssignment(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewDeliveryAssignment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ids, err := requiredIDs(body.ParcelID, body.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}
	refs, err := optionalIDs(body.VehicleID, body.OriginID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryAssignmentCommand(actor, ids[0], ids[1], refs[0], refs[1],
		body.DestinationAddress, body.DestinationCity, body.RequiresSignature)
	if err != nil {
		return s.fail(ctx, err)
	}
	a, err := s.h.CreateDeliveryAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryToAPI(a, nil))
}

func (s *Server) AppendDeliveryLog(ctx echo.Context, assignmentID openapi_types.UUID) error {
	actor, id, err := actorAndID(ctx, assignmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.NewLogEntry
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	locationID, err := kernel.OptionalUUIDFromBytes(body.LocationID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("location_id", err))
	}

	cmd, err := commands.NewAppendDeliveryLogCommand(actor, id, body.Status, locationID, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.AppendDeliveryLog.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryToAPI(result.Assignment, &result.Log))
}

func actorAndID(ctx echo.Context, raw openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	actor, err := actorID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return actor, id, nil
}
