package transitrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/adapters/out/postgres/transitrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type TransitRepositoryIntegrationTestSuite struct {
	suite.Suite
	database    *pgtest.Database
	assignments *transitrepo.GormAssignmentRepository
	vehicles    *transitrepo.GormVehicleRepository
}

func (suite *TransitRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.assignments = transitrepo.NewGormAssignmentRepository(database.DB, nopTracker{})
	suite.vehicles = transitrepo.NewGormVehicleRepository(database.DB)
}

func (suite *TransitRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *TransitRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *TransitRepositoryIntegrationTestSuite) TestVehicle_RoundTripAndUniquePlate() {
	ctx := context.Background()
	truck, err := transit.NewVehicle(kernel.NewUUID(), "lag-123-xy", transit.Truck, 1200)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.vehicles.Add(ctx, truck))

	loaded, err := suite.vehicles.Get(ctx, truck.ID())
	suite.Require().NoError(err)
	suite.Equal("LAG-123-XY", loaded.PlateNumber())
	suite.Equal(transit.Truck, loaded.Type())
	suite.InDelta(1200, loaded.CapacityKg(), 0.001)
	suite.True(loaded.IsActive())

	twin, err := transit.NewVehicle(kernel.NewUUID(), "LAG-123-XY", transit.Van, 300)
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.vehicles.Add(ctx, twin), errs.ErrObjectAlreadyExists)

	_, err = suite.vehicles.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAssignment_LifecycleAndLog() {
	ctx := context.Background()
	parcels := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	origin, destination, driver := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	departAt := time.Now().UTC().Add(2 * time.Hour)

	a, err := transit.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), driver, origin, destination,
		parcels, &departAt, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignments.Add(ctx, a))

	suite.Require().NoError(a.Depart(time.Now().UTC()))
	a.AppendLog(nil, &driver, "fuel stop", time.Now().UTC())
	suite.Require().NoError(suite.assignments.Update(ctx, a))
	suite.Empty(a.PendingLog())

	loaded, err := suite.assignments.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(transit.InTransit, loaded.Status())
	suite.NotNil(loaded.DepartureTime())
	suite.Nil(loaded.ArrivalTime())
	suite.Require().Len(loaded.ParcelIDs(), 3)
	for i, id := range parcels {
		suite.True(loaded.ParcelIDs()[i].IsEqual(id))
	}
	suite.True(loaded.OriginID().IsEqual(origin))
	suite.WithinDuration(departAt, *loaded.ScheduledDeparture(), time.Millisecond)

	var notes []string
	suite.Require().NoError(suite.database.DB.Model(&transitrepo.LogDTO{}).
		Where("assignment_id = ?", a.ID().Bytes()).Order("timestamp").Pluck("note", &notes).Error)
	suite.Contains(notes, "fuel stop")
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAssignment_UpdateUnknown() {
	a, err := transit.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()}, nil, time.Now())
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.assignments.Update(context.Background(), a), errs.ErrObjectNotFound)
}

func TestTransitRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(TransitRepositoryIntegrationTestSuite))
}
