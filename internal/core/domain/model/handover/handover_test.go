package handover_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestNewHandover(t *testing.T) {
	from := kernel.NewUUID()
	to := kernel.NewUUID()

	t.Run("recorded by the handing-over staff", func(t *testing.T) {
		h, err := handover.NewHandover(kernel.NewUUID(), kernel.NewUUID(), handover.WarehouseToDriver,
			from, &to, nil, nil, from, " sealed ", now)

		require.NoError(t, err)
		assert.True(t, h.FromAck())
		assert.False(t, h.ToAck())
		assert.Equal(t, "sealed", h.Note())
	})

	t.Run("recorded by someone else", func(t *testing.T) {
		h, err := handover.NewHandover(kernel.NewUUID(), kernel.NewUUID(), handover.DriverToStation,
			from, &to, nil, nil, kernel.NewUUID(), "", now)

		require.NoError(t, err)
		assert.False(t, h.FromAck())
	})

	t.Run("courier to customer", func(t *testing.T) {
		customer := kernel.NewUUID()

		h, err := handover.NewHandover(kernel.NewUUID(), kernel.NewUUID(), handover.CourierToCustomer,
			from, nil, &customer, nil, from, "", now)

		require.NoError(t, err)
		assert.Nil(t, h.ToStaffID())
		assert.True(t, customer.IsEqual(*h.ToCustomerID()))
		assert.True(t, from.IsEqual(*h.FromStaffID()))
	})
}

func TestRestoreHandover_DeletedStaff(t *testing.T) {
	h, err := handover.RestoreHandover(kernel.NewUUID(), kernel.NewUUID(), handover.WarehouseToDriver,
		nil, nil, nil, nil, true, false, "", now)

	require.NoError(t, err)
	assert.Nil(t, h.FromStaffID())
	assert.True(t, h.FromAck())
}

func TestNewHandover_Invalid(t *testing.T) {
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	customer := kernel.NewUUID()

	tests := []struct {
		name       string
		typ        handover.Type
		toStaff    *kernel.UUID
		toCustomer *kernel.UUID
		target     error
	}{
		{"unknown type", handover.Type("driver_to_moon"), &to, nil, handover.ErrTypeIsInvalid},
		{"staff type without staff", handover.InterWarehouse, nil, nil, handover.ErrToStaffIsRequired},
		{"customer type without customer", handover.CourierToCustomer, nil, nil, handover.ErrToCustomerIsRequired},
		{"both receivers", handover.CourierToCustomer, &to, &customer, handover.ErrRecipientsAreExclusive},
		{"customer on staff type", handover.ReturnToWarehouse, nil, &customer, handover.ErrRecipientsAreExclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handover.NewHandover(kernel.NewUUID(), kernel.NewUUID(), tt.typ,
				from, tt.toStaff, tt.toCustomer, nil, from, "", now)

			require.ErrorIs(t, err, tt.target)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestHandover_Acknowledge(t *testing.T) {
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	h, err := handover.NewHandover(kernel.NewUUID(), kernel.NewUUID(), handover.StationToCourier,
		from, &to, nil, nil, from, "", now)
	require.NoError(t, err)

	require.ErrorIs(t, h.Acknowledge(from), handover.ErrNotReceivingParty)
	assert.False(t, h.ToAck())

	require.NoError(t, h.Acknowledge(to))
	assert.True(t, h.ToAck())

	require.ErrorIs(t, h.Acknowledge(to), errs.ErrStateIsInvalid)
}

func TestParseType(t *testing.T) {
	assert.Len(t, handover.AllTypes(), 8)

	typ, err := handover.ParseType("Return_To_Station")
	require.NoError(t, err)
	assert.Equal(t, handover.ReturnToStation, typ)
}
