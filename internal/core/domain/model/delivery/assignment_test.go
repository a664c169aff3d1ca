package delivery_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newAssignment(t *testing.T, requiresSignature bool) *delivery.Assignment {
	t.Helper()
	a, err := delivery.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, nil,
		"5 Allen Avenue", "Ikeja", requiresSignature, now)
	require.NoError(t, err)
	return a
}

func TestAssignment_DeliveredLog(t *testing.T) {
	for _, requiresSignature := range []bool{true, false} {
		a := newAssignment(t, requiresSignature)
		at := now.Add(2 * time.Hour)

		entry, tr, err := a.AppendLog("Delivered", nil, nil, "left with neighbour", at)

		require.NoError(t, err)
		require.NotNil(t, tr)
		assert.Equal(t, parcel.Delivered, tr.ParcelStatus)
		assert.Equal(t, delivery.Delivered, a.Status())
		assert.Equal(t, at, *a.ArrivalTime())
		assert.Equal(t, requiresSignature, a.SignedOff())
		assert.Equal(t, "Delivered", entry.Status())
		assert.Len(t, a.PendingLog(), 1)
	}
}

func TestAssignment_TransitionTable(t *testing.T) {
	tests := []struct {
		logStatus    string
		wantStatus   delivery.Status
		parcelStatus parcel.Status
		arrival      bool
	}{
		{"Out for Delivery", delivery.OutForDelivery, parcel.OutForDelivery, false},
		{"out_for_delivery", delivery.OutForDelivery, parcel.OutForDelivery, false},
		{"FAILED", delivery.Failed, "", true},
		{" returned ", delivery.Returned, parcel.AtStation, true},
	}

	for _, tt := range tests {
		t.Run(tt.logStatus, func(t *testing.T) {
			a := newAssignment(t, false)

			_, tr, err := a.AppendLog(tt.logStatus, nil, nil, "", now)

			require.NoError(t, err)
			require.NotNil(t, tr)
			assert.Equal(t, tt.wantStatus, a.Status())
			assert.Equal(t, tt.parcelStatus, tr.ParcelStatus)
			assert.Equal(t, tt.arrival, a.ArrivalTime() != nil)
		})
	}
}

func TestAssignment_InformationalLog(t *testing.T) {
	a := newAssignment(t, true)

	entry, tr, err := a.AppendLog("Traffic on Third Mainland", nil, nil, "", now)

	require.NoError(t, err)
	assert.Nil(t, tr)
	assert.Equal(t, delivery.Assigned, a.Status())
	assert.Equal(t, "Traffic on Third Mainland", entry.Status())
}

func TestAssignment_OutcomeOnFinishedAssignment(t *testing.T) {
	a := newAssignment(t, true)
	_, _, err := a.AppendLog("Delivered", nil, nil, "", now)
	require.NoError(t, err)

	_, _, err = a.AppendLog("Failed", nil, nil, "", now.Add(time.Hour))

	require.ErrorIs(t, err, delivery.ErrTransitionIsNotAllowed)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
	assert.Equal(t, delivery.Delivered, a.Status())
	assert.Len(t, a.PendingLog(), 1)

	_, _, err = a.AppendLog("Out for Delivery", nil, nil, "", now)
	require.ErrorIs(t, err, delivery.ErrTransitionIsNotAllowed)
}

func TestAssignment_Invalid(t *testing.T) {
	_, err := delivery.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, nil, nil, " ", "", false, now)

	require.ErrorIs(t, err, delivery.ErrDestinationIsRequired)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	a := newAssignment(t, false)
	_, _, err = a.AppendLog("  ", nil, nil, "", now)
	require.ErrorIs(t, err, delivery.ErrLogStatusIsRequired)
}
