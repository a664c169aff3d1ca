package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// ItemInput describes one item of a new parcel.
type ItemInput struct {
	Name        string
	Description string
	Category    string
	Quantity    int
	WeightKg    *float64
	Value       *int64
}

// CreateParcelCommand registers a new parcel in packed status.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(staffID, 2.5, parcel.Attributes{
//	    SenderID:      &senderID,
//	    OriginID:      &warehouseID,
//	    DestinationID: &stationID,
//	}, []ItemInput{{Name: "Headphones", Category: "electronics", Quantity: 1}})
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	actorID  kernel.UUID
	weightKg float64
	attrs    parcel.Attributes
	items    []parcel.Item

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand validates the item list eagerly so a bad item is
// reported before any storage is touched. Weight and attributes are
// validated by the parcel itself.
func NewCreateParcelCommand(
	actorID kernel.UUID,
	weightKg float64,
	attrs parcel.Attributes,
	items []ItemInput,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		weightKg: weightKg,
		attrs:    attrs,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setItems(items),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ActorID() kernel.UUID { return c.actorID }
func (c CreateParcelCommand) WeightKg() float64 { return c.weightKg }
func (c CreateParcelCommand) Attributes() parcel.Attributes { return c.attrs }

func (c CreateParcelCommand) Items() []parcel.Item {
	return append([]parcel.Item(nil), c.items...)
}

func (c *CreateParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := validateActor(actorID); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *CreateParcelCommand) setItems(inputs []ItemInput) error {
	items := make([]parcel.Item, 0, len(inputs))
	var errList []error
	for i, in := range inputs {
		category := parcel.Category(strings.ToLower(strings.TrimSpace(in.Category)))
		item, err := parcel.NewItem(in.Name, in.Description, category, in.Quantity, in.WeightKg, in.Value)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}
