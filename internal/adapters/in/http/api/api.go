// Package api holds the HTTP contract: the embedded OpenAPI document, the
// wire types it describes and the echo route bindings. Path parameters are
// bound the way oapi-codegen bound them before the document was extended by
// hand.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var Document []byte

const StaffIDHeader = "X-Staff-ID"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Dimensions struct {
	LengthCm float64 `json:"length_cm,omitempty"`
	WidthCm  float64 `json:"width_cm,omitempty"`
	HeightCm float64 `json:"height_cm,omitempty"`
}

type NewItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	Value       *int64   `json:"value,omitempty"`
}

type NewParcel struct {
	WeightKg             float64             `json:"weight_kg"`
	SenderID             *openapi_types.UUID `json:"sender_id,omitempty"`
	RecipientID          *openapi_types.UUID `json:"recipient_id,omitempty"`
	OriginID             *openapi_types.UUID `json:"origin_id,omitempty"`
	DestinationID        *openapi_types.UUID `json:"destination_id,omitempty"`
	DeliveryAddress      string              `json:"delivery_address,omitempty"`
	Dimensions           *Dimensions         `json:"dimensions,omitempty"`
	Fragile              bool                `json:"fragile,omitempty"`
	RequiresSignature    bool                `json:"requires_signature,omitempty"`
	Priority             string              `json:"priority,omitempty"`
	PaymentStatus        string              `json:"payment_status,omitempty"`
	DeliveryFee          int64               `json:"delivery_fee,omitempty"`
	ExtraCharges         int64               `json:"extra_charges,omitempty"`
	SpecialInstructions  string              `json:"special_instructions,omitempty"`
	ExpectedDeliveryDate *openapi_types.Date `json:"expected_delivery_date,omitempty"`
	Items                []NewItem           `json:"items,omitempty"`
}

type Parcel struct {
	ID                 openapi_types.UUID  `json:"id"`
	TrackingNumber     string              `json:"tracking_number"`
	Status             string              `json:"status"`
	WeightKg           float64             `json:"weight_kg"`
	CurrentLocation    string              `json:"current_location,omitempty"`
	RecipientID        *openapi_types.UUID `json:"recipient_id,omitempty"`
	DestinationID      *openapi_types.UUID `json:"destination_id,omitempty"`
	Priority           string              `json:"priority"`
	PaymentStatus      string              `json:"payment_status"`
	TotalCharge        int64               `json:"total_charge"`
	PickupCode         string              `json:"pickup_code,omitempty"`
	StationArrivalTime *time.Time          `json:"station_arrival_time,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type OpenReturn struct {
	ID          openapi_types.UUID `json:"id"`
	Reason      string             `json:"reason"`
	ReturnTo    *openapi_types.UUID `json:"return_to,omitempty"`
	InitiatedAt time.Time           `json:"initiated_at"`
}

type PickupSummary struct {
	PickedUpAt time.Time `json:"picked_up_at"`
	Guest      bool      `json:"guest"`
	SignedOff  bool      `json:"signed_off"`
}

type ParcelView struct {
	ID                 openapi_types.UUID  `json:"id"`
	TrackingNumber     string              `json:"tracking_number"`
	Status             string              `json:"status"`
	WeightKg           float64             `json:"weight_kg"`
	CurrentLocation    string              `json:"current_location,omitempty"`
	RecipientID        *openapi_types.UUID `json:"recipient_id,omitempty"`
	DestinationID      *openapi_types.UUID `json:"destination_id,omitempty"`
	StationArrivalTime *time.Time          `json:"station_arrival_time,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	OpenReturn         *OpenReturn         `json:"open_return,omitempty"`
	Pickup             *PickupSummary      `json:"pickup,omitempty"`
}

type TimelineEntry struct {
	Status     string              `json:"status"`
	LocationID *openapi_types.UUID `json:"location_id,omitempty"`
	StaffID    *openapi_types.UUID `json:"staff_id,omitempty"`
	Note       string              `json:"note,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

type StatusUpdate struct {
	Status     string              `json:"status"`
	LocationID *openapi_types.UUID `json:"location_id,omitempty"`
	Note       string              `json:"note,omitempty"`
}

type Guest struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
	Code     string `json:"code"`
}

type PickupClaim struct {
	CustomerID *openapi_types.UUID `json:"customer_id,omitempty"`
	Guest      *Guest              `json:"guest,omitempty"`
}

type Pickup struct {
	ID         openapi_types.UUID  `json:"id"`
	ParcelID   openapi_types.UUID  `json:"parcel_id"`
	CustomerID *openapi_types.UUID `json:"customer_id,omitempty"`
	GuestName  string              `json:"guest_name,omitempty"`
	VerifiedBy *openapi_types.UUID `json:"verified_by,omitempty"`
	SignedOff  bool                `json:"signed_off"`
	PickedUpAt time.Time           `json:"picked_up_at"`
}

type NewHandover struct {
	Type         string              `json:"type"`
	FromStaffID  openapi_types.UUID  `json:"from_staff_id"`
	ToStaffID    *openapi_types.UUID `json:"to_staff_id,omitempty"`
	ToCustomerID *openapi_types.UUID `json:"to_customer_id,omitempty"`
	LocationID   *openapi_types.UUID `json:"location_id,omitempty"`
	Note         string              `json:"note,omitempty"`
}

type Handover struct {
	ID           openapi_types.UUID  `json:"id"`
	ParcelID     openapi_types.UUID  `json:"parcel_id"`
	Type         string              `json:"type"`
	FromStaffID  *openapi_types.UUID `json:"from_staff_id,omitempty"`
	ToStaffID    *openapi_types.UUID `json:"to_staff_id,omitempty"`
	ToCustomerID *openapi_types.UUID `json:"to_customer_id,omitempty"`
	LocationID   *openapi_types.UUID `json:"location_id,omitempty"`
	FromAck      bool                `json:"from_ack"`
	ToAck        bool                `json:"to_ack"`
	Note         string              `json:"note,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type NewReturn struct {
	Reason      string             `json:"reason"`
	ReturnTo    openapi_types.UUID `json:"return_to"`
	Description string             `json:"description,omitempty"`
}

type ReturnRequest struct {
	ID          openapi_types.UUID  `json:"id"`
	ParcelID    openapi_types.UUID  `json:"parcel_id"`
	Reason      string              `json:"reason"`
	InitiatedBy *openapi_types.UUID `json:"initiated_by,omitempty"`
	InitiatedAt time.Time           `json:"initiated_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	ReturnTo    *openapi_types.UUID `json:"return_to,omitempty"`
	Description string              `json:"description,omitempty"`
}

type NewExchange struct {
	ToRecipientID *openapi_types.UUID `json:"to_recipient_id,omitempty"`
	ToStationID   *openapi_types.UUID `json:"to_station_id,omitempty"`
	Note          string              `json:"note,omitempty"`
}

type Exchange struct {
	ID              openapi_types.UUID  `json:"id"`
	ParcelID        openapi_types.UUID  `json:"parcel_id"`
	FromRecipientID *openapi_types.UUID `json:"from_recipient_id,omitempty"`
	ToRecipientID   *openapi_types.UUID `json:"to_recipient_id,omitempty"`
	FromStationID   *openapi_types.UUID `json:"from_station_id,omitempty"`
	ToStationID     *openapi_types.UUID `json:"to_station_id,omitempty"`
	SwitchedBy      *openapi_types.UUID `json:"switched_by,omitempty"`
	SwitchedAt      time.Time           `json:"switched_at"`
	Note            string              `json:"note,omitempty"`
}

type NewTransitAssignment struct {
	VehicleID          openapi_types.UUID   `json:"vehicle_id"`
	DriverID           openapi_types.UUID   `json:"driver_id"`
	OriginID           openapi_types.UUID   `json:"origin_id"`
	DestinationID      openapi_types.UUID   `json:"destination_id"`
	ParcelIDs          []openapi_types.UUID `json:"parcel_ids"`
	ScheduledDeparture *time.Time           `json:"scheduled_departure,omitempty"`
}

type TransitAssignment struct {
	ID                 openapi_types.UUID   `json:"id"`
	VehicleID          openapi_types.UUID   `json:"vehicle_id"`
	DriverID           openapi_types.UUID   `json:"driver_id"`
	OriginID           openapi_types.UUID   `json:"origin_id"`
	DestinationID      openapi_types.UUID   `json:"destination_id"`
	ParcelIDs          []openapi_types.UUID `json:"parcel_ids"`
	Status             string               `json:"status"`
	ScheduledDeparture *time.Time           `json:"scheduled_departure,omitempty"`
	DepartureTime      *time.Time           `json:"departure_time,omitempty"`
	ArrivalTime        *time.Time           `json:"arrival_time,omitempty"`
}

type TransitAction struct {
	Action string `json:"action"`
}

type ManifestParcel struct {
	ID             openapi_types.UUID `json:"id"`
	TrackingNumber string             `json:"tracking_number"`
	Status         string             `json:"status"`
	WeightKg       float64            `json:"weight_kg"`
}

type TransitManifest struct {
	ID                 openapi_types.UUID `json:"id"`
	Status             string             `json:"status"`
	VehicleID          openapi_types.UUID `json:"vehicle_id"`
	PlateNumber        string             `json:"plate_number,omitempty"`
	DriverID           openapi_types.UUID `json:"driver_id"`
	OriginID           openapi_types.UUID `json:"origin_id"`
	DestinationID      openapi_types.UUID `json:"destination_id"`
	ScheduledDeparture *time.Time         `json:"scheduled_departure,omitempty"`
	DepartureTime      *time.Time         `json:"departure_time,omitempty"`
	ArrivalTime        *time.Time         `json:"arrival_time,omitempty"`
	TotalWeightKg      float64            `json:"total_weight_kg"`
	Parcels            []ManifestParcel   `json:"parcels"`
}

type NewLogEntry struct {
	Status     string              `json:"status,omitempty"`
	LocationID *openapi_types.UUID `json:"location_id,omitempty"`
	Note       string              `json:"note,omitempty"`
}

type LogEntry struct {
	ID         openapi_types.UUID  `json:"id"`
	LocationID *openapi_types.UUID `json:"location_id,omitempty"`
	StaffID    *openapi_types.UUID `json:"staff_id,omitempty"`
	Status     string              `json:"status,omitempty"`
	Note       string              `json:"note,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

type NewDeliveryAssignment struct {
	ParcelID           openapi_types.UUID  `json:"parcel_id"`
	CourierID          openapi_types.UUID  `json:"courier_id"`
	VehicleID          *openapi_types.UUID `json:"vehicle_id,omitempty"`
	OriginID           *openapi_types.UUID `json:"origin_id,omitempty"`
	DestinationAddress string              `json:"destination_address,omitempty"`
	DestinationCity    string              `json:"destination_city,omitempty"`
	RequiresSignature  *bool               `json:"requires_signature,omitempty"`
}

type DeliveryAssignment struct {
	ID                 openapi_types.UUID  `json:"id"`
	ParcelID           openapi_types.UUID  `json:"parcel_id"`
	CourierID          openapi_types.UUID  `json:"courier_id"`
	VehicleID          *openapi_types.UUID `json:"vehicle_id,omitempty"`
	OriginID           *openapi_types.UUID `json:"origin_id,omitempty"`
	DestinationAddress string              `json:"destination_address,omitempty"`
	DestinationCity    string              `json:"destination_city,omitempty"`
	Status             string              `json:"status"`
	DepartureTime      *time.Time          `json:"departure_time,omitempty"`
	ArrivalTime        *time.Time          `json:"arrival_time,omitempty"`
	RequiresSignature  bool                `json:"requires_signature"`
	SignedOff          bool                `json:"signed_off"`
	Log                *LogEntry           `json:"log,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/parcels)
	CreateParcel(ctx echo.Context) error
	// (GET /api/v1/tracking/{trackingNumber})
	GetParcel(ctx echo.Context, trackingNumber string) error
	// (GET /api/v1/tracking/{trackingNumber}/timeline)
	GetParcelTimeline(ctx echo.Context, trackingNumber string) error
	// (POST /api/v1/parcels/{parcelId}/status)
	UpdateParcelStatus(ctx echo.Context, parcelID openapi_types.UUID) error
	// (POST /api/v1/parcels/{parcelId}/pickup-code)
	IssuePickupCode(ctx echo.Context, parcelID openapi_types.UUID) error
	// (POST /api/v1/parcels/{parcelId}/pickup)
	VerifyPickup(ctx echo.Context, parcelID openapi_types.UUID) error
	// (POST /api/v1/parcels/{parcelId}/handovers)
	RecordHandover(ctx echo.Context, parcelID openapi_types.UUID) error
	// (POST /api/v1/handovers/{handoverId}/acknowledge)
	AcknowledgeHandover(ctx echo.Context, handoverID openapi_types.UUID) error
	// (POST /api/v1/parcels/{parcelId}/returns)
	InitiateReturn(ctx echo.Context, parcelID openapi_types.UUID) error
	// (POST /api/v1/returns/{returnId}/complete)
	CompleteReturn(ctx echo.Context, returnID openapi_types.UUID) error
	// (POST /api/v1/parcels/{parcelId}/exchanges)
	RecordExchange(ctx echo.Context, parcelID openapi_types.UUID) error
	// (POST /api/v1/transit-assignments)
	CreateTransitAssignment(ctx echo.Context) error
	// (GET /api/v1/transit-assignments/{assignmentId}/manifest)
	GetTransitManifest(ctx echo.Context, assignmentID openapi_types.UUID) error
	// (POST /api/v1/transit-assignments/{assignmentId}/status)
	ChangeTransitStatus(ctx echo.Context, assignmentID openapi_types.UUID) error
	// (POST /api/v1/transit-assignments/{assignmentId}/logs)
	AppendTransitLog(ctx echo.Context, assignmentID openapi_types.UUID) error
	// (POST /api/v1/delivery-assignments)
	CreateDeliveryAssignment(ctx echo.Context) error
	// (POST /api/v1/delivery-assignments/{assignmentId}/logs)
	AppendDeliveryLog(ctx echo.Context, assignmentID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath[T any](ctx echo.Context, name string) (T, error) {
	var value T
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	return w.Handler.CreateParcel(ctx)
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	trackingNumber, err := bindPath[string](ctx, "trackingNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, trackingNumber)
}

func (w *ServerInterfaceWrapper) GetParcelTimeline(ctx echo.Context) error {
	trackingNumber, err := bindPath[string](ctx, "trackingNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetParcelTimeline(ctx, trackingNumber)
}

func (w *ServerInterfaceWrapper) withUUID(name string, h func(echo.Context, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPath[openapi_types.UUID](ctx, name)
		if err != nil {
			return err
		}
		return h(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) CreateTransitAssignment(ctx echo.Context) error {
	return w.Handler.CreateTransitAssignment(ctx)
}

func (w *ServerInterfaceWrapper) CreateDeliveryAssignment(ctx echo.Context) error {
	return w.Handler.CreateDeliveryAssignment(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/parcels", w.CreateParcel)
	router.GET(baseURL+"/api/v1/tracking/:trackingNumber", w.GetParcel)
	router.GET(baseURL+"/api/v1/tracking/:trackingNumber/timeline", w.GetParcelTimeline)
	router.POST(baseURL+"/api/v1/parcels/:parcelId/status", w.withUUID("parcelId", si.UpdateParcelStatus))
	router.POST(baseURL+"/api/v1/parcels/:parcelId/pickup-code", w.withUUID("parcelId", si.IssuePickupCode))
	router.POST(baseURL+"/api/v1/parcels/:parcelId/pickup", w.withUUID("parcelId", si.VerifyPickup))
	router.POST(baseURL+"/api/v1/parcels/:parcelId/handovers", w.withUUID("parcelId", si.RecordHandover))
	router.POST(baseURL+"/api/v1/handovers/:handoverId/acknowledge", w.withUUID("handoverId", si.AcknowledgeHandover))
	router.POST(baseURL+"/api/v1/parcels/:parcelId/returns", w.withUUID("parcelId", si.InitiateReturn))
	router.POST(baseURL+"/api/v1/returns/:returnId/complete", w.withUUID("returnId", si.CompleteReturn))
	router.POST(baseURL+"/api/v1/parcels/:parcelId/exchanges", w.withUUID("parcelId", si.RecordExchange))
	router.POST(baseURL+"/api/v1/transit-assignments", w.CreateTransitAssignment)
	router.GET(baseURL+"/api/v1/transit-assignments/:assignmentId/manifest", w.withUUID("assignmentId", si.GetTransitManifest))
	router.POST(baseURL+"/api/v1/transit-assignments/:assignmentId/status", w.withUUID("assignmentId", si.ChangeTransitStatus))
	router.POST(baseURL+"/api/v1/transit-assignments/:assignmentId/logs", w.withUUID("assignmentId", si.AppendTransitLog))
	router.POST(baseURL+"/api/v1/delivery-assignments", w.CreateDeliveryAssignment)
	router.POST(baseURL+"/api/v1/delivery-assignments/:assignmentId/logs", w.withUUID("assignmentId", si.AppendDeliveryLog))
}
