package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTransit(t *testing.T, f *fixture, parcelIDs ...kernel.UUID) *transit.Assignment {
	t.Helper()
	cmd, err := commands.NewCreateTransitAssignmentCommand(f.manager.ID(), f.vehicle.ID(), f.driver.ID(),
		f.warehouse.ID(), f.station.ID(), parcelIDs, nil)
	require.NoError(t, err)
	h := commands.NewCreateTransitAssignmentCommandHandler(f.assignmentUoW())
	a, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return a
}

func changeTransit(t *testing.T, f *fixture, id kernel.UUID, action string) (*transit.Assignment, error) {
	t.Helper()
	cmd, err := commands.NewChangeTransitStatusCommand(f.driver.ID(), id, action)
	require.NoError(t, err)
	h := commands.NewChangeTransitStatusCommandHandler(f.assignmentUoW())
	return h.Handle(t.Context(), cmd)
}

func createDelivery(t *testing.T, f *fixture, parcelID kernel.UUID) *delivery.Assignment {
	t.Helper()
	stationID := f.station.ID()
	cmd, err := commands.NewCreateDeliveryAssignmentCommand(f.manager.ID(), parcelID, f.courier.ID(),
		nil, &stationID, "", "Lagos", nil)
	require.NoError(t, err)
	h := commands.NewCreateDeliveryAssignmentCommandHandler(f.assignmentUoW())
	a, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return a
}

func appendDeliveryLog(t *testing.T, f *fixture, id kernel.UUID, status string) (commands.AppendDeliveryLogResult, error) {
	t.Helper()
	cmd, err := commands.NewAppendDeliveryLogCommand(f.courier.ID(), id, status, nil, "")
	require.NoError(t, err)
	h := commands.NewAppendDeliveryLogCommandHandler(f.assignmentUoW())
	return h.Handle(t.Context(), cmd)
}

func TestParcelJourney_WarehouseToDoorstep(t *testing.T) {
	f := newFixture(t)
	first := f.addParcel(t, 12, parcel.Packed)
	second := f.addParcel(t, 8, parcel.Packed)

	run := createTransit(t, f, first.ID(), second.ID())
	assert.Equal(t, transit.Scheduled, run.Status())

	departed, err := changeTransit(t, f, run.ID(), "depart")
	require.NoError(t, err)
	assert.Equal(t, transit.InTransit, departed.Status())
	assert.NotNil(t, departed.DepartureTime())
	for _, id := range []kernel.UUID{first.ID(), second.ID()} {
		assert.Equal(t, parcel.InTransit, f.store.storedParcel(t, id).Status())
	}

	arrived, err := changeTransit(t, f, run.ID(), "complete")
	require.NoError(t, err)
	assert.Equal(t, transit.Completed, arrived.Status())
	assert.NotNil(t, arrived.ArrivalTime())
	for _, id := range []kernel.UUID{first.ID(), second.ID()} {
		stored := f.store.storedParcel(t, id)
		assert.Equal(t, parcel.AtStation, stored.Status())
		assert.NotNil(t, stored.StationArrivalTime())
		assert.Equal(t, f.station.Label(), stored.CurrentLocation())
	}
	require.Len(t, f.store.transitLog, 2)
	assert.Equal(t, "departed", f.store.transitLog[0].Note())
	assert.Equal(t, "arrived at "+f.station.Label(), f.store.transitLog[1].Note())

	assignment := createDelivery(t, f, first.ID())
	assert.Equal(t, delivery.Assigned, assignment.Status())
	assert.True(t, assignment.RequiresSignature())
	assert.NotEmpty(t, assignment.DestinationAddress())

	result, err := appendDeliveryLog(t, f, assignment.ID(), "Delivered")
	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, result.Assignment.Status())
	assert.NotNil(t, result.Assignment.ArrivalTime())
	assert.True(t, result.Assignment.SignedOff())
	assert.Equal(t, "Delivered", result.Log.Status())
	assert.Equal(t, parcel.Delivered, f.store.storedParcel(t, first.ID()).Status())
	assert.Equal(t, parcel.AtStation, f.store.storedParcel(t, second.ID()).Status())

	statuses := make([]parcel.Status, 0)
	for _, e := range f.store.logFor(first.ID()) {
		statuses = append(statuses, e.Status())
	}
	assert.Equal(t, []parcel.Status{parcel.InTransit, parcel.AtStation, parcel.Delivered}, statuses)
}

func TestCreateTransitAssignmentCommandHandler_Rejects(t *testing.T) {
	t.Run("load above vehicle capacity", func(t *testing.T) {
		f := newFixture(t)
		heavy := f.addParcel(t, 40, parcel.Packed)
		heavier := f.addParcel(t, 20, parcel.Packed)
		cmd, err := commands.NewCreateTransitAssignmentCommand(f.manager.ID(), f.vehicle.ID(), f.driver.ID(),
			f.warehouse.ID(), f.station.ID(), []kernel.UUID{heavy.ID(), heavier.ID()}, nil)
		require.NoError(t, err)
		h := commands.NewCreateTransitAssignmentCommandHandler(f.assignmentUoW())

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Empty(t, f.store.transits)
	})

	t.Run("driver without the driver role", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.Packed)
		cmd, err := commands.NewCreateTransitAssignmentCommand(f.manager.ID(), f.vehicle.ID(), f.courier.ID(),
			f.warehouse.ID(), f.station.ID(), []kernel.UUID{p.ID()}, nil)
		require.NoError(t, err)
		h := commands.NewCreateTransitAssignmentCommandHandler(f.assignmentUoW())

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrDriverIsNotEligible)
	})

	t.Run("clerk cannot schedule runs", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.Packed)
		cmd, err := commands.NewCreateTransitAssignmentCommand(f.clerk.ID(), f.vehicle.ID(), f.driver.ID(),
			f.warehouse.ID(), f.station.ID(), []kernel.UUID{p.ID()}, nil)
		require.NoError(t, err)
		h := commands.NewCreateTransitAssignmentCommandHandler(f.assignmentUoW())

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAccessIsDenied)
	})

	t.Run("terminal parcel", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.Delivered)
		cmd, err := commands.NewCreateTransitAssignmentCommand(f.manager.ID(), f.vehicle.ID(), f.driver.ID(),
			f.warehouse.ID(), f.station.ID(), []kernel.UUID{p.ID()}, nil)
		require.NoError(t, err)
		h := commands.NewCreateTransitAssignmentCommandHandler(f.assignmentUoW())

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, parcel.ErrStatusIsTerminal)
	})
}

func TestChangeTransitStatusCommandHandler_Cancel(t *testing.T) {
	f := newFixture(t)
	p := f.addParcel(t, 1, parcel.Packed)
	run := createTransit(t, f, p.ID())

	cancelled, err := changeTransit(t, f, run.ID(), "cancel")
	require.NoError(t, err)
	assert.Equal(t, transit.Cancelled, cancelled.Status())
	assert.Equal(t, parcel.Packed, f.store.storedParcel(t, p.ID()).Status())

	_, err = changeTransit(t, f, run.ID(), "depart")
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
}

func TestAppendTransitLogCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	p := f.addParcel(t, 1, parcel.Packed)
	run := createTransit(t, f, p.ID())
	cmd, err := commands.NewAppendTransitLogCommand(f.driver.ID(), run.ID(), nil, "fuel stop")
	require.NoError(t, err)
	h := commands.NewAppendTransitLogCommandHandler(f.assignmentUoW())

	entry, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "fuel stop", entry.Note())
	assert.Equal(t, transit.Scheduled, f.store.transits[run.ID()].Status())
	require.Len(t, f.store.transitLog, 1)
}

func TestAppendDeliveryLogCommandHandler_Outcomes(t *testing.T) {
	t.Run("failed attempt leaves the parcel as is", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.OutForDelivery)
		a := createDelivery(t, f, p.ID())

		result, err := appendDeliveryLog(t, f, a.ID(), "Failed")

		require.NoError(t, err)
		assert.Equal(t, delivery.Failed, result.Assignment.Status())
		assert.False(t, result.Assignment.SignedOff())
		assert.Equal(t, parcel.OutForDelivery, f.store.storedParcel(t, p.ID()).Status())
		assert.Empty(t, f.store.logFor(p.ID()))
	})

	t.Run("returned parcel goes back to the station", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.OutForDelivery)
		a := createDelivery(t, f, p.ID())

		_, err := appendDeliveryLog(t, f, a.ID(), "out_for_delivery")
		require.NoError(t, err)
		result, err := appendDeliveryLog(t, f, a.ID(), "returned")

		require.NoError(t, err)
		assert.Equal(t, delivery.Returned, result.Assignment.Status())
		stored := f.store.storedParcel(t, p.ID())
		assert.Equal(t, parcel.AtStation, stored.Status())
		require.NotNil(t, stored.CurrentStationID())
		assert.True(t, f.station.ID().IsEqual(*stored.CurrentStationID()))
	})

	t.Run("informational entry changes nothing", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.AtStation)
		a := createDelivery(t, f, p.ID())

		result, err := appendDeliveryLog(t, f, a.ID(), "Gate closed, waiting")

		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, result.Assignment.Status())
		assert.Equal(t, parcel.AtStation, f.store.storedParcel(t, p.ID()).Status())
		assert.Len(t, f.store.deliveryLog, 1)
	})

	t.Run("second outcome is rejected", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.AtStation)
		a := createDelivery(t, f, p.ID())
		_, err := appendDeliveryLog(t, f, a.ID(), "Delivered")
		require.NoError(t, err)

		_, err = appendDeliveryLog(t, f, a.ID(), "Delivered")

		require.ErrorIs(t, err, delivery.ErrTransitionIsNotAllowed)
		require.ErrorIs(t, err, errs.ErrStateIsInvalid)
		assert.Len(t, f.store.deliveryLog, 1)
	})
}

func TestCreateDeliveryAssignmentCommandHandler_Rejects(t *testing.T) {
	t.Run("driver is not a courier", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.AtStation)
		cmd, err := commands.NewCreateDeliveryAssignmentCommand(f.manager.ID(), p.ID(), f.driver.ID(),
			nil, nil, "", "", nil)
		require.NoError(t, err)
		h := commands.NewCreateDeliveryAssignmentCommandHandler(f.assignmentUoW())

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrCourierIsNotEligible)
		assert.Empty(t, f.store.deliveries)
	})

	t.Run("explicit signature flag wins", func(t *testing.T) {
		f := newFixture(t)
		p := f.addParcel(t, 1, parcel.AtStation)
		noSignature := false
		cmd, err := commands.NewCreateDeliveryAssignmentCommand(f.manager.ID(), p.ID(), f.courier.ID(),
			nil, nil, "12 Marina Rd", "Lagos", &noSignature)
		require.NoError(t, err)
		h := commands.NewCreateDeliveryAssignmentCommandHandler(f.assignmentUoW())

		a, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.False(t, a.RequiresSignature())
		assert.Equal(t, "12 Marina Rd", a.DestinationAddress())
	})
}
