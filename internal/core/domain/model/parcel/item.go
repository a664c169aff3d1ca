package parcel

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

var (
	ErrItemNameIsRequired    = errs.NewValueIsRequiredError("item name")
	ErrItemCategoryIsInvalid = errs.NewValueIsInvalidError("item category")
	ErrItemQuantityIsInvalid = errs.NewValueIsInvalidError("item quantity")
	ErrItemWeightIsInvalid   = errs.NewValueIsInvalidError("item weight")
)

type Category string

const (
	Electronics Category = "electronics"
	Clothing    Category = "clothing"
	Documents   Category = "documents"
	Food        Category = "food"
	FragileGood Category = "fragile"
	OtherGood   Category = "other"
)

func (c Category) Validate() error {
	switch c {
	case Electronics, Clothing, Documents, Food, FragileGood, OtherGood:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrItemCategoryIsInvalid, string(c))
	}
}

// Item is a line of a parcel's contents. Weight and declared value are optional.
type Item struct {
	name        string
	description string
	category    Category
	quantity    int
	weightKg    *float64
	value       *int64
}

func NewItem(name, description string, category Category, quantity int, weightKg *float64, value *int64) (Item, error) {
	name = strings.TrimSpace(name)
	if category == "" {
		category = OtherGood
	}

	var nameErr, qtyErr, weightErr error
	if name == "" {
		nameErr = ErrItemNameIsRequired
	}
	if quantity < 1 {
		qtyErr = fmt.Errorf("%w: %d is less than 1", ErrItemQuantityIsInvalid, quantity)
	}
	if weightKg != nil && *weightKg <= 0 {
		weightErr = fmt.Errorf("%w: %.3f is not greater than 0", ErrItemWeightIsInvalid, *weightKg)
	}
	if err := errors.Join(nameErr, category.Validate(), qtyErr, weightErr); err != nil {
		return Item{}, err
	}

	return Item{
		name:        name,
		description: strings.TrimSpace(description),
		category:    category,
		quantity:    quantity,
		weightKg:    weightKg,
		value:       value,
	}, nil
}

func (i Item) Name() string { return i.name }
func (i Item) Description() string { return i.description }
func (i Item) Category() Category { return i.category }
func (i Item) Quantity() int { return i.quantity }
func (i Item) WeightKg() *float64 { return i.weightKg }
func (i Item) Value() *int64 { return i.value }
