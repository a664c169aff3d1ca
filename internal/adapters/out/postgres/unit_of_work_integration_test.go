package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/outboxrepo"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
	seq      int
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newParcel() *parcel.Parcel {
	suite.seq++
	tn, err := kernel.NewTrackingNumber(fmt.Sprintf("PRC-20240601-%06X", suite.seq))
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(kernel.NewUUID(), tn, 1.5, parcel.Attributes{}, nil, nil, time.Now().UTC())
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) countRows(table string) int64 {
	var n int64
	suite.Require().NoError(suite.database.DB.Table(table).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow2.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Error(uow.Commit(ctx), "commit without a transaction")
	suite.Error(uow.Rollback(ctx), "rollback without a transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesStateLogAndOutboxTogether() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.countRows("parcels"))
	suite.Equal(int64(1), suite.countRows("parcel_status_logs"))
	suite.Empty(p.DomainEvents(), "events are cleared once committed")

	var messages []outboxrepo.MessageDTO
	suite.Require().NoError(suite.database.DB.Find(&messages).Error)
	suite.Require().Len(messages, 1)
	suite.Equal(parcel.EventStatusChanged, messages[0].EventType)
	suite.Equal(p.ID().Bytes(), messages[0].AggregateID)
	suite.Nil(messages[0].ProcessedAt)
	suite.Contains(string(messages[0].Payload), `"to": "packed"`)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_TracksEachAggregateOnce() {
	ctx := context.Background()
	p := suite.newParcel()
	station, err := location.NewLocation(kernel.NewUUID(), "Station 7", "Lagos", "", location.PickupStation,
		location.StationDetails{MaxStorageDays: 5})
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LocationRepository().Add(ctx, station))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(p.ArriveAtStation(station, nil, "", time.Now().UTC()))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	var types []string
	suite.Require().NoError(suite.database.DB.Model(&outboxrepo.MessageDTO{}).
		Order("occurred_at, event_type").Pluck("event_type", &types).Error)
	suite.ElementsMatch([]string{
		parcel.EventStatusChanged,
		parcel.EventStatusChanged,
		parcel.EventArrivedAtStation,
	}, types)
	suite.Equal(int64(2), suite.countRows("parcel_status_logs"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsStateAndEvents() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Zero(suite.countRows("parcels"))
	suite.Zero(suite.countRows("outbox_messages"))
	suite.NotEmpty(p.DomainEvents(), "events survive a rollback so a retry can write them")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedWritesAreInvisible() {
	ctx := context.Background()
	p := suite.newParcel()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.ParcelRepository().Add(ctx, p))

	reader := suite.factory.Create()
	_, err := reader.ParcelRepository().GetByTrackingNumber(ctx, p.TrackingNumber())
	suite.Require().Error(err)

	suite.Require().NoError(writer.Commit(ctx))

	found, err := reader.ParcelRepository().GetByTrackingNumber(ctx, p.TrackingNumber())
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(p.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_RelaysSkipRowsLockedByAnotherRelay() {
	ctx := context.Background()
	for range 3 {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		suite.Require().NoError(uow.ParcelRepository().Add(ctx, suite.newParcel()))
		suite.Require().NoError(uow.Commit(ctx))
	}

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	claimed, err := first.OutboxRepository().FetchPending(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(claimed, 2)

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	rest, err := second.OutboxRepository().FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.NotEqual(claimed[0].ID, rest[0].ID)
	suite.NotEqual(claimed[1].ID, rest[0].ID)
	suite.Require().NoError(second.Rollback(ctx))

	ids := []kernel.UUID{claimed[0].ID, claimed[1].ID}
	suite.Require().NoError(first.OutboxRepository().MarkProcessed(ctx, ids, time.Now().UTC()))
	suite.Require().NoError(first.Commit(ctx))

	var pending int64
	suite.Require().NoError(suite.database.DB.Model(&outboxrepo.MessageDTO{}).
		Where("processed_at IS NULL").Count(&pending).Error)
	suite.Equal(int64(1), pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSchema_HasUniqueTrackingNumber() {
	suite.True(suite.database.DB.Migrator().HasIndex(&parcelrepo.ParcelDTO{}, "idx_parcels_tracking_number"))
}

func (suite *UnitOfWorkIntegrationTestSuite) deleteRules(table string) map[string]string {
	var rows []struct {
		ColumnName string
		DeleteRule string
	}
	suite.Require().NoError(suite.database.DB.Raw(`
		SELECT kcu.column_name, rc.delete_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = rc.constraint_name AND kcu.constraint_schema = rc.constraint_schema
		WHERE kcu.table_schema = current_schema() AND kcu.table_name = ?`, table).Scan(&rows).Error)

	rules := make(map[string]string, len(rows))
	for _, r := range rows {
		rules[r.ColumnName] = r.DeleteRule
	}
	return rules
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSchema_ForeignKeyDeleteRules() {
	const cascade, setNull = "CASCADE", "SET NULL"
	expected := map[string]map[string]string{
		"parcels": {
			"sender_id": setNull, "recipient_id": setNull, "origin_id": setNull,
			"destination_id": setNull, "current_station_id": setNull,
		},
		"parcel_items":       {"parcel_id": cascade},
		"parcel_status_logs": {"parcel_id": cascade, "location_id": setNull, "staff_id": setNull},
		"handovers": {
			"parcel_id": cascade, "from_staff_id": setNull, "to_staff_id": setNull,
			"to_customer_id": setNull, "location_id": setNull,
		},
		"return_requests": {"parcel_id": cascade, "initiated_by": setNull, "return_to": setNull},
		"parcel_exchanges": {
			"parcel_id": cascade, "from_recipient_id": setNull, "to_recipient_id": setNull,
			"from_station_id": setNull, "to_station_id": setNull, "switched_by": setNull,
		},
		"parcel_pickups": {"parcel_id": cascade, "customer_id": setNull, "verified_by": setNull},
	}

	for table, columns := range expected {
		rules := suite.deleteRules(table)
		for column, rule := range columns {
			suite.Equal(rule, rules[column], "%s.%s", table, column)
		}
	}
}

func TestUnitOfWorkIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
