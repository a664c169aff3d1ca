package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *deliveryrepo.GormAssignmentRepository
	fake     faker.Faker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repo = deliveryrepo.NewGormAssignmentRepository(database.DB, nopTracker{})
	suite.fake = faker.New()
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAssignment_OutcomeIsPersistedWithLog() {
	ctx := context.Background()
	courier, station := kernel.NewUUID(), kernel.NewUUID()
	address := suite.fake.Address().Address()

	a, err := delivery.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), courier, nil, &station,
		address, "Ibadan", true, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, a))

	now := time.Now().UTC()
	_, _, err = a.AppendLog("out for delivery", nil, &courier, "", now)
	suite.Require().NoError(err)
	_, _, err = a.AppendLog("Delivered", nil, &courier, "signed by recipient", now.Add(40*time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, a))

	loaded, err := suite.repo.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Delivered, loaded.Status())
	suite.True(loaded.SignedOff())
	suite.NotNil(loaded.DepartureTime())
	suite.NotNil(loaded.ArrivalTime())
	suite.Equal(address, loaded.DestinationAddress())
	suite.True(loaded.OriginID().IsEqual(station))
	suite.Nil(loaded.VehicleID())

	var statuses []string
	suite.Require().NoError(suite.database.DB.Model(&deliveryrepo.LogDTO{}).
		Where("assignment_id = ?", a.ID().Bytes()).Order("timestamp").Pluck("status", &statuses).Error)
	suite.Equal([]string{"out for delivery", "Delivered"}, statuses)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAssignment_GetUnknown() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDeliveryRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
