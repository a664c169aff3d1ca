// Package customer holds the sender/recipient record the core looks up by id.
package customer

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("customer name")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Customer is a sender or recipient. Unregistered customers have no account
// and collect parcels with a pickup code.
type Customer struct {
	id                   kernel.UUID
	name                 string
	email                string
	phone                string
	address              string
	registered           bool
	identificationNumber string
	guard                guard.ConstructorGuard
}

func NewCustomer(
	id kernel.UUID,
	name, email, phone, address string,
	registered bool,
	identificationNumber string,
) (*Customer, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	if err := errors.Join(id.Validate(), nameErr); err != nil {
		return nil, err
	}

	return &Customer{
		id:                   id,
		name:                 name,
		email:                strings.TrimSpace(email),
		phone:                strings.TrimSpace(phone),
		address:              strings.TrimSpace(address),
		registered:           registered,
		identificationNumber: strings.TrimSpace(identificationNumber),
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID { return c.id }
func (c *Customer) Name() string { return c.name }
func (c *Customer) Email() string { return c.email }
func (c *Customer) Phone() string { return c.phone }
func (c *Customer) Address() string { return c.address }
func (c *Customer) IsRegistered() bool { return c.registered }
func (c *Customer) IdentificationNumber() string { return c.identificationNumber }
