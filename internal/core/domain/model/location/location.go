package location

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultMaxStorageDays is how long a pickup station keeps an unclaimed parcel
// when the station does not configure its own limit.
const DefaultMaxStorageDays = 7

var (
	ErrNameIsRequired            = errs.NewValueIsRequiredError("location name")
	ErrLocationIsNotConstructed  = errors.New("Location must be created via NewLocation constructor")
	ErrDetailsDoNotMatchKind     = errs.NewValueIsInvalidError("location details")
	ErrKindIsInvalid             = errs.NewValueIsInvalidError("location kind")
	ErrCapacityMustNotBeNegative = errs.NewValueIsInvalidError("capacity")
)

// Kind tags a Location and selects which Details variant it carries.
type Kind string

const (
	Warehouse     Kind = "warehouse"
	PickupStation Kind = "pickup_station"
	Hub           Kind = "hub"
	Office        Kind = "office"
	Custom        Kind = "custom"
)

func (k Kind) Validate() error {
	switch k {
	case Warehouse, PickupStation, Hub, Office, Custom:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrKindIsInvalid, string(k))
	}
}

func (k Kind) String() string { return string(k) }

// Details is the kind-specific payload of a Location. Implementations are
// WarehouseDetails, StationDetails and HubDetails; offices and custom
// locations carry none.
type Details interface {
	Kind() Kind
	validate() error
}

type WarehouseDetails struct {
	Capacity       int    `json:"capacity"`
	ColdStorage    bool   `json:"cold_storage"`
	OperatingHours string `json:"operating_hours,omitempty"`
}

func (WarehouseDetails) Kind() Kind { return Warehouse }

func (d WarehouseDetails) validate() error {
	if d.Capacity < 0 {
		return ErrCapacityMustNotBeNegative
	}
	return nil
}

type StationDetails struct {
	OpeningHours   string `json:"opening_hours,omitempty"`
	MaxStorageDays int    `json:"max_storage_days"`
	Lockers        int    `json:"lockers"`
}

func (StationDetails) Kind() Kind { return PickupStation }

func (d StationDetails) validate() error {
	if d.MaxStorageDays < 1 || d.MaxStorageDays > 365 {
		return errs.NewValueIsOutOfRangeError("max storage days", d.MaxStorageDays, 1, 365)
	}
	if d.Lockers < 0 {
		return ErrCapacityMustNotBeNegative
	}
	return nil
}

type HubDetails struct {
	Capacity               int      `json:"capacity"`
	OperatingHours         string   `json:"operating_hours,omitempty"`
	ConnectedRoutes        []string `json:"connected_routes,omitempty"`
	VehicleParkingCapacity int      `json:"vehicle_parking_capacity"`
}

func (HubDetails) Kind() Kind { return Hub }

func (d HubDetails) validate() error {
	if d.Capacity < 0 || d.VehicleParkingCapacity < 0 {
		return ErrCapacityMustNotBeNegative
	}
	return nil
}

// Location is a single record for every place a parcel can be: a kind tag
// plus a kind-specific Details value.
type Location struct {
	id      kernel.UUID
	name    string
	city    string
	address string
	kind    Kind
	details Details
	active  bool
	guard   guard.ConstructorGuard
}

// NewLocation creates an active location. A pickup station without a storage
// limit gets DefaultMaxStorageDays.
func NewLocation(id kernel.UUID, name, city, address string, kind Kind, details Details) (*Location, error) {
	return RestoreLocation(id, name, city, address, kind, details, true)
}

// RestoreLocation rebuilds a location read from storage.
func RestoreLocation(
	id kernel.UUID,
	name, city, address string,
	kind Kind,
	details Details,
	active bool,
) (*Location, error) {
	l := &Location{
		city:    strings.TrimSpace(city),
		address: strings.TrimSpace(address),
		active:  active,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		l.setName(name),
		l.setKind(kind, details),
	); err != nil {
		return nil, err
	}
	l.id = id

	return l, nil
}

func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) ID() kernel.UUID { return l.id }
func (l *Location) Name() string { return l.name }
func (l *Location) City() string { return l.city }
func (l *Location) Address() string { return l.address }
func (l *Location) Kind() Kind { return l.kind }
func (l *Location) Details() Details { return l.details }
func (l *Location) IsActive() bool { return l.active }
func (l *Location) IsPickupStation() bool { return l.kind == PickupStation }

// Label is the human-readable form stored as a parcel's current location.
func (l *Location) Label() string {
	if l.city == "" {
		return l.name
	}
	return fmt.Sprintf("%s, %s", l.name, l.city)
}

// MaxStorageDays is zero for every kind except pickup stations.
func (l *Location) MaxStorageDays() int {
	if d, ok := l.details.(StationDetails); ok {
		return d.MaxStorageDays
	}
	return 0
}

func (l *Location) Deactivate() { l.active = false }

func (l *Location) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	l.name = name
	return nil
}

func (l *Location) setKind(kind Kind, details Details) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	if details == nil && kind == PickupStation {
		details = StationDetails{}
	}
	if d, ok := details.(StationDetails); ok && d.MaxStorageDays == 0 {
		d.MaxStorageDays = DefaultMaxStorageDays
		details = d
	}

	if details != nil {
		if details.Kind() != kind {
			return fmt.Errorf("%w: %s details on a %s", ErrDetailsDoNotMatchKind, details.Kind(), kind)
		}
		if err := details.validate(); err != nil {
			return err
		}
	}

	l.kind = kind
	l.details = details
	return nil
}
