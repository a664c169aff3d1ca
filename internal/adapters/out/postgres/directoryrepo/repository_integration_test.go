package directoryrepo_test

import (
	"context"
	"testing"

	"logistics/internal/adapters/out/postgres/directoryrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/staff"
	"logistics/internal/pkg/errs"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/suite"
)

type DirectoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	fake      faker.Faker
	staff     *directoryrepo.GormStaffRepository
	customers *directoryrepo.GormCustomerRepository
	locations *directoryrepo.GormLocationRepository
}

func (suite *DirectoryRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.fake = faker.New()
	suite.staff = directoryrepo.NewGormStaffRepository(database.DB)
	suite.customers = directoryrepo.NewGormCustomerRepository(database.DB)
	suite.locations = directoryrepo.NewGormLocationRepository(database.DB)
}

func (suite *DirectoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *DirectoryRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *DirectoryRepositoryIntegrationTestSuite) TestLocation_DetailsRoundTripPerKind() {
	ctx := context.Background()

	tests := []struct {
		name    string
		kind    location.Kind
		details location.Details
	}{
		{"warehouse", location.Warehouse, location.WarehouseDetails{Capacity: 5000, ColdStorage: true}},
		{"station", location.PickupStation, location.StationDetails{MaxStorageDays: 7, Lockers: 40, OpeningHours: "08-20"}},
		{"hub", location.Hub, location.HubDetails{Capacity: 100, ConnectedRoutes: []string{"LOS-IBA", "LOS-ABV"}}},
		{"office", location.Office, nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			l, err := location.NewLocation(kernel.NewUUID(), suite.fake.Company().Name(), suite.fake.Address().City(),
				suite.fake.Address().StreetAddress(), tt.kind, tt.details)
			suite.Require().NoError(err)
			suite.Require().NoError(suite.locations.Add(ctx, l))

			loaded, err := suite.locations.Get(ctx, l.ID())
			suite.Require().NoError(err)
			suite.Equal(tt.kind, loaded.Kind())
			suite.Equal(l.Details(), loaded.Details())
			suite.Equal(l.Label(), loaded.Label())
			suite.True(loaded.IsActive())
		})
	}
}

func (suite *DirectoryRepositoryIntegrationTestSuite) TestStaff_UniqueEmployeeID() {
	ctx := context.Background()
	stationID := kernel.NewUUID()
	employeeID := kernel.StaffID("STF-20240601-00AB")

	clerk, err := staff.NewStaff(kernel.NewUUID(), employeeID, suite.fake.Person().Name(), staff.StationRole, &stationID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.staff.Add(ctx, clerk))

	loaded, err := suite.staff.Get(ctx, clerk.ID())
	suite.Require().NoError(err)
	suite.Equal(employeeID, loaded.EmployeeID())
	suite.Equal(staff.StationRole, loaded.Role())
	suite.True(loaded.LocationID().IsEqual(stationID))

	twin, err := staff.NewStaff(kernel.NewUUID(), employeeID, "Other", staff.CourierRole, nil)
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.staff.Add(ctx, twin), errs.ErrObjectAlreadyExists)
}

func (suite *DirectoryRepositoryIntegrationTestSuite) TestCustomer_RoundTrip() {
	ctx := context.Background()
	person := suite.fake.Person()
	c, err := customer.NewCustomer(kernel.NewUUID(), person.Name(), suite.fake.Internet().Email(),
		suite.fake.Phone().Number(), suite.fake.Address().Address(), false, "NIN-778812")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.customers.Add(ctx, c))

	loaded, err := suite.customers.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(c.Name(), loaded.Name())
	suite.Equal(c.Email(), loaded.Email())
	suite.False(loaded.IsRegistered())
	suite.Equal("NIN-778812", loaded.IdentificationNumber())

	_, err = suite.customers.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDirectoryRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DirectoryRepositoryIntegrationTestSuite))
}
