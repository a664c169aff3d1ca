package transit

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrPlateNumberIsRequired   = errs.NewValueIsRequiredError("plate number")
	ErrVehicleTypeIsInvalid    = errs.NewValueIsInvalidError("vehicle type")
	ErrCapacityIsInvalid       = errs.NewValueIsInvalidError("capacity")
	ErrVehicleIsInactive       = errs.NewStateIsInvalidError("vehicle is inactive")
	ErrCapacityExceeded        = errs.NewValueIsInvalidError("parcels exceed vehicle capacity")
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

type VehicleType string

const (
	Truck        VehicleType = "truck"
	Van          VehicleType = "van"
	Bike         VehicleType = "bike"
	OtherVehicle VehicleType = "other"
)

func (t VehicleType) Validate() error {
	switch t {
	case Truck, Van, Bike, OtherVehicle:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrVehicleTypeIsInvalid, string(t))
	}
}

// Vehicle carries parcels. A zero capacity means the limit is not tracked.
type Vehicle struct {
	id          kernel.UUID
	plateNumber string
	vehicleType VehicleType
	capacityKg  float64
	active      bool
	guard       guard.ConstructorGuard
}

func NewVehicle(id kernel.UUID, plateNumber string, vehicleType VehicleType, capacityKg float64) (*Vehicle, error) {
	return RestoreVehicle(id, plateNumber, vehicleType, capacityKg, true)
}

func RestoreVehicle(
	id kernel.UUID,
	plateNumber string,
	vehicleType VehicleType,
	capacityKg float64,
	active bool,
) (*Vehicle, error) {
	plateNumber = strings.ToUpper(strings.TrimSpace(plateNumber))

	var plateErr, capErr error
	if plateNumber == "" {
		plateErr = ErrPlateNumberIsRequired
	}
	if capacityKg < 0 {
		capErr = fmt.Errorf("%w: %.1f is negative", ErrCapacityIsInvalid, capacityKg)
	}
	if err := errors.Join(id.Validate(), plateErr, vehicleType.Validate(), capErr); err != nil {
		return nil, err
	}

	return &Vehicle{
		id:          id,
		plateNumber: plateNumber,
		vehicleType: vehicleType,
		capacityKg:  capacityKg,
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID { return v.id }
func (v *Vehicle) PlateNumber() string { return v.plateNumber }
func (v *Vehicle) Type() VehicleType { return v.vehicleType }
func (v *Vehicle) CapacityKg() float64 { return v.capacityKg }
func (v *Vehicle) IsActive() bool { return v.active }

// CanCarry checks an active vehicle against a total load.
func (v *Vehicle) CanCarry(totalKg float64) error {
	if !v.active {
		return fmt.Errorf("%w: %s", ErrVehicleIsInactive, v.plateNumber)
	}
	if v.capacityKg > 0 && totalKg > v.capacityKg {
		return errs.NewValueIsOutOfRangeErrorWithCause("load", totalKg, 0, v.capacityKg, ErrCapacityExceeded)
	}
	return nil
}
