package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	ErrPriorityIsInvalid  = errs.NewValueIsInvalidError("priority")
	ErrPaymentIsInvalid   = errs.NewValueIsInvalidError("payment status")
	ErrChargeIsNegative   = errs.NewValueIsInvalidError("charge")
	ErrDimensionIsInvalid = errs.NewValueIsInvalidError("dimensions")
)

type Priority string

const (
	Standard  Priority = "standard"
	Express   Priority = "express"
	Overnight Priority = "overnight"
)

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return Standard, nil
	}
	return p, p.Validate()
}

func (p Priority) Validate() error {
	switch p {
	case Standard, Express, Overnight:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrPriorityIsInvalid, string(p))
	}
}

// PaymentStatus records who pays the delivery fee and when.
type PaymentStatus string

const (
	PaidOnline   PaymentStatus = "online"
	PayOnPickup  PaymentStatus = "pickup"
	NoPaymentDue PaymentStatus = "none"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	p := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return NoPaymentDue, nil
	}
	return p, p.Validate()
}

func (p PaymentStatus) Validate() error {
	switch p {
	case PaidOnline, PayOnPickup, NoPaymentDue:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrPaymentIsInvalid, string(p))
	}
}

// Dimensions are in centimetres. All zero means unknown.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

func (d Dimensions) Validate() error {
	if d.LengthCm < 0 || d.WidthCm < 0 || d.HeightCm < 0 {
		return fmt.Errorf("%w: %.1fx%.1fx%.1f", ErrDimensionIsInvalid, d.LengthCm, d.WidthCm, d.HeightCm)
	}
	return nil
}

// Attributes are the descriptive fields supplied when a parcel is created.
// References are nullable; a deleted customer or location leaves nil behind.
type Attributes struct {
	SenderID             *kernel.UUID
	RecipientID          *kernel.UUID
	OriginID             *kernel.UUID
	DestinationID        *kernel.UUID
	DeliveryAddress      string
	Dimensions           Dimensions
	Fragile              bool
	RequiresSignature    bool
	Priority             Priority
	Payment              PaymentStatus
	DeliveryFee          int64
	ExtraCharges         int64
	SpecialInstructions  string
	ExpectedDeliveryDate *time.Time
}

func (a *Attributes) normalize() error {
	if a.Priority == "" {
		a.Priority = Standard
	}
	if a.Payment == "" {
		a.Payment = NoPaymentDue
	}
	a.DeliveryAddress = strings.TrimSpace(a.DeliveryAddress)
	a.SpecialInstructions = strings.TrimSpace(a.SpecialInstructions)

	var chargeErr error
	if a.DeliveryFee < 0 || a.ExtraCharges < 0 {
		chargeErr = fmt.Errorf("%w: fee %d, extra %d", ErrChargeIsNegative, a.DeliveryFee, a.ExtraCharges)
	}

	return errors.Join(a.Priority.Validate(), a.Payment.Validate(), a.Dimensions.Validate(), chargeErr)
}

// TotalCharge is the fee plus extra charges in minor currency units.
func (a Attributes) TotalCharge() int64 {
	return a.DeliveryFee + a.ExtraCharges
}
