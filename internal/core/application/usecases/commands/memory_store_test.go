package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/core/domain/model/staff"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/require"
)

// memoryStore backs every repository with maps. Parcels are stored as
// snapshots so an uncommitted mutation never leaks into a later Get.
type memoryStore struct {
	mu sync.Mutex

	parcels     map[kernel.UUID]parcel.State
	parcelLog   []parcel.LogEntry
	events      []kernel.DomainEvent
	handovers   map[kernel.UUID]*handover.Handover
	returnReqs  map[kernel.UUID]*returns.Request
	exchanges   []*exchange.Exchange
	pickups     map[kernel.UUID]*pickup.Pickup
	transits    map[kernel.UUID]*transit.Assignment
	transitLog  []transit.Log
	deliveries  map[kernel.UUID]*delivery.Assignment
	deliveryLog []delivery.Log
	vehicles    map[kernel.UUID]*transit.Vehicle
	staff       map[kernel.UUID]*staff.Staff
	customers   map[kernel.UUID]*customer.Customer
	locations   map[kernel.UUID]*location.Location
	outbox      []ports.OutboxMessage
	processed   map[kernel.UUID]time.Time

	commits int

	// conflicts is the number of upcoming parcel writes rejected as duplicates.
	conflicts int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		parcels:    make(map[kernel.UUID]parcel.State),
		handovers:  make(map[kernel.UUID]*handover.Handover),
		returnReqs: make(map[kernel.UUID]*returns.Request),
		pickups:    make(map[kernel.UUID]*pickup.Pickup),
		transits:   make(map[kernel.UUID]*transit.Assignment),
		deliveries: make(map[kernel.UUID]*delivery.Assignment),
		vehicles:   make(map[kernel.UUID]*transit.Vehicle),
		staff:      make(map[kernel.UUID]*staff.Staff),
		customers:  make(map[kernel.UUID]*customer.Customer),
		locations:  make(map[kernel.UUID]*location.Location),
		processed:  make(map[kernel.UUID]time.Time),
	}
}

func (s *memoryStore) storedParcel(t *testing.T, id kernel.UUID) *parcel.Parcel {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.parcels[id]
	require.True(t, ok, "parcel %s not stored", id)
	p, err := parcel.RestoreParcel(st)
	require.NoError(t, err)
	return p
}

func (s *memoryStore) logFor(id kernel.UUID) []parcel.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []parcel.LogEntry
	for _, e := range s.parcelLog {
		if e.ParcelID().IsEqual(id) {
			out = append(out, e)
		}
	}
	return out
}

func (s *memoryStore) eventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventType())
	}
	return out
}

// memoryUoW implements every unit of work interface the handlers use.
type memoryUoW struct {
	store *memoryStore
}

func (u *memoryUoW) Begin(context.Context) error { return nil }
func (u *memoryUoW) Rollback(context.Context) error { return nil }

func (u *memoryUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.commits++
	return nil
}

func (u *memoryUoW) ParcelRepository() ports.ParcelRepository { return parcelRepo{u.store} }
func (u *memoryUoW) HandoverRepository() ports.HandoverRepository { return handoverRepo{u.store} }
func (u *memoryUoW) ReturnRepository() ports.ReturnRepository { return returnRepo{u.store} }
func (u *memoryUoW) ExchangeRepository() ports.ExchangeRepository { return exchangeRepo{u.store} }
func (u *memoryUoW) PickupRepository() ports.PickupRepository { return pickupRepo{u.store} }
func (u *memoryUoW) TransitRepository() ports.TransitRepository { return transitRepo{u.store} }
func (u *memoryUoW) DeliveryRepository() ports.DeliveryRepository { return deliveryRepo{u.store} }
func (u *memoryUoW) VehicleRepository() ports.VehicleRepository { return vehicleRepo{u.store} }
func (u *memoryUoW) StaffRepository() ports.StaffRepository { return staffRepo{u.store} }
func (u *memoryUoW) CustomerRepository() ports.CustomerRepository { return customerRepo{u.store} }
func (u *memoryUoW) LocationRepository() ports.LocationRepository { return locationRepo{u.store} }
func (u *memoryUoW) OutboxRepository() ports.OutboxRepository { return outboxRepo{u.store} }

type (
	parcelUoWFactory     struct{ store *memoryStore }
	protocolUoWFactory   struct{ store *memoryStore }
	assignmentUoWFactory struct{ store *memoryStore }
	outboxUoWFactory     struct{ store *memoryStore }
)

func (f parcelUoWFactory) Create() commands.ParcelUoW { return &memoryUoW{f.store} }
func (f protocolUoWFactory) Create() commands.ProtocolUoW { return &memoryUoW{f.store} }
func (f assignmentUoWFactory) Create() commands.AssignmentUoW { return &memoryUoW{f.store} }
func (f outboxUoWFactory) Create() commands.OutboxUoW { return &memoryUoW{f.store} }

type parcelRepo struct{ s *memoryStore }

func snapshot(p *parcel.Parcel) parcel.State {
	return parcel.State{
		ID:                 p.ID(),
		TrackingNumber:     p.TrackingNumber(),
		WeightKg:           p.WeightKg(),
		Attributes:         p.Attributes(),
		Items:              p.Items(),
		Status:             p.Status(),
		CurrentLocation:    p.CurrentLocation(),
		PickupCode:         p.PickupCode(),
		CurrentStationID:   p.CurrentStationID(),
		StationArrivalTime: p.StationArrivalTime(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func (r parcelRepo) save(p *parcel.Parcel, isNew bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.conflicts > 0 {
		r.s.conflicts--
		return errs.NewObjectAlreadyExistsError("parcel", p.TrackingNumber())
	}
	for id, st := range r.s.parcels {
		if id.IsEqual(p.ID()) {
			continue
		}
		if st.TrackingNumber == p.TrackingNumber() {
			return errs.NewObjectAlreadyExistsError("tracking number", p.TrackingNumber())
		}
		if st.PickupCode != nil && p.PickupCode() != nil && *st.PickupCode == *p.PickupCode() {
			return errs.NewObjectAlreadyExistsError("pickup code", p.PickupCode())
		}
	}
	if _, exists := r.s.parcels[p.ID()]; exists == isNew {
		if isNew {
			return errs.NewObjectAlreadyExistsError("parcel", p.ID())
		}
		return errs.NewObjectNotFoundError("parcel", p.ID())
	}

	r.s.parcels[p.ID()] = snapshot(p)
	r.s.parcelLog = append(r.s.parcelLog, p.PendingLog()...)
	p.ClearPendingLog()
	r.s.events = append(r.s.events, p.DomainEvents()...)
	p.ClearDomainEvents()
	return nil
}

func (r parcelRepo) Add(_ context.Context, p *parcel.Parcel) error { return r.save(p, true) }
func (r parcelRepo) Update(_ context.Context, p *parcel.Parcel) error { return r.save(p, false) }

func (r parcelRepo) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id)
	}
	return parcel.RestoreParcel(st)
}

func (r parcelRepo) GetByTrackingNumber(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	r.s.mu.Lock()
	var found *kernel.UUID
	for id, st := range r.s.parcels {
		if st.TrackingNumber == tn {
			found = &id
			break
		}
	}
	r.s.mu.Unlock()
	if found == nil {
		return nil, errs.NewObjectNotFoundError("parcel", tn)
	}
	return r.Get(ctx, *found)
}

func (r parcelRepo) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	out := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r parcelRepo) ListStorageExpired(_ context.Context, at time.Time, limit int) ([]*parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*parcel.Parcel, 0)
	for _, st := range r.s.parcels {
		if st.Status != parcel.AtStation || st.CurrentStationID == nil || len(out) >= limit {
			continue
		}
		station, ok := r.s.locations[*st.CurrentStationID]
		if !ok {
			continue
		}
		hasReturn := false
		for _, req := range r.s.returnReqs {
			if req.ParcelID().IsEqual(st.ID) {
				hasReturn = true
			}
		}
		if hasReturn {
			continue
		}
		p, err := parcel.RestoreParcel(st)
		if err != nil {
			return nil, err
		}
		if p.StorageExpired(station.MaxStorageDays(), at) {
			out = append(out, p)
		}
	}
	return out, nil
}

type handoverRepo struct{ s *memoryStore }

func (r handoverRepo) Add(_ context.Context, h *handover.Handover) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.handovers[h.ID()] = h
	return nil
}

func (r handoverRepo) Update(ctx context.Context, h *handover.Handover) error { return r.Add(ctx, h) }

func (r handoverRepo) Get(_ context.Context, id kernel.UUID) (*handover.Handover, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.handovers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("handover", id)
	}
	return h, nil
}

func (r handoverRepo) ListByParcel(_ context.Context, parcelID kernel.UUID) ([]*handover.Handover, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*handover.Handover
	for _, h := range r.s.handovers {
		if h.ParcelID().IsEqual(parcelID) {
			out = append(out, h)
		}
	}
	return out, nil
}

type returnRepo struct{ s *memoryStore }

func (r returnRepo) Add(_ context.Context, req *returns.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.returnReqs {
		if existing.ParcelID().IsEqual(req.ParcelID()) {
			return returns.ErrReturnAlreadyExists
		}
	}
	r.s.returnReqs[req.ID()] = req
	return nil
}

func (r returnRepo) Update(_ context.Context, req *returns.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.returnReqs[req.ID()] = req
	return nil
}

func (r returnRepo) Get(_ context.Context, id kernel.UUID) (*returns.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.returnReqs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("return request", id)
	}
	return req, nil
}

func (r returnRepo) FindByParcel(_ context.Context, parcelID kernel.UUID) (*returns.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.returnReqs {
		if req.ParcelID().IsEqual(parcelID) {
			return req, nil
		}
	}
	return nil, nil //nolint:nilnil // no return yet
}

type exchangeRepo struct{ s *memoryStore }

func (r exchangeRepo) Add(_ context.Context, e *exchange.Exchange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.exchanges = append(r.s.exchanges, e)
	return nil
}

func (r exchangeRepo) ListByParcel(_ context.Context, parcelID kernel.UUID) ([]*exchange.Exchange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*exchange.Exchange
	for _, e := range r.s.exchanges {
		if e.ParcelID().IsEqual(parcelID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type pickupRepo struct{ s *memoryStore }

func (r pickupRepo) Add(_ context.Context, p *pickup.Pickup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pickups[p.ParcelID()]; ok {
		return pickup.ErrPickupAlreadyRecorded
	}
	r.s.pickups[p.ParcelID()] = p
	return nil
}

func (r pickupRepo) FindByParcel(_ context.Context, parcelID kernel.UUID) (*pickup.Pickup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.pickups[parcelID], nil
}

type transitRepo struct{ s *memoryStore }

func (r transitRepo) Add(_ context.Context, a *transit.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transits[a.ID()] = a
	r.s.transitLog = append(r.s.transitLog, a.PendingLog()...)
	a.ClearPendingLog()
	return nil
}

func (r transitRepo) Update(ctx context.Context, a *transit.Assignment) error { return r.Add(ctx, a) }

func (r transitRepo) Get(_ context.Context, id kernel.UUID) (*transit.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.transits[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("transit assignment", id)
	}
	return a, nil
}

type deliveryRepo struct{ s *memoryStore }

func (r deliveryRepo) Add(_ context.Context, a *delivery.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deliveries[a.ID()] = a
	r.s.deliveryLog = append(r.s.deliveryLog, a.PendingLog()...)
	a.ClearPendingLog()
	return nil
}

func (r deliveryRepo) Update(ctx context.Context, a *delivery.Assignment) error { return r.Add(ctx, a) }

func (r deliveryRepo) Get(_ context.Context, id kernel.UUID) (*delivery.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.deliveries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery assignment", id)
	}
	return a, nil
}

type vehicleRepo struct{ s *memoryStore }

func (r vehicleRepo) Add(_ context.Context, v *transit.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.vehicles[v.ID()] = v
	return nil
}

func (r vehicleRepo) Get(_ context.Context, id kernel.UUID) (*transit.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vehicle", id)
	}
	return v, nil
}

type staffRepo struct{ s *memoryStore }

func (r staffRepo) Add(_ context.Context, m *staff.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.staff[m.ID()] = m
	return nil
}

func (r staffRepo) Get(_ context.Context, id kernel.UUID) (*staff.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.staff[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("staff", id)
	}
	return m, nil
}

type customerRepo struct{ s *memoryStore }

func (r customerRepo) Add(_ context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID()] = c
	return nil
}

func (r customerRepo) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id)
	}
	return c, nil
}

type locationRepo struct{ s *memoryStore }

func (r locationRepo) Add(_ context.Context, l *location.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations[l.ID()] = l
	return nil
}

func (r locationRepo) Get(_ context.Context, id kernel.UUID) (*location.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("location", id)
	}
	return l, nil
}

type outboxRepo struct{ s *memoryStore }

func (r outboxRepo) FetchPending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]ports.OutboxMessage, 0)
	for _, m := range r.s.outbox {
		if _, done := r.s.processed[m.ID]; done {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

func (r outboxRepo) MarkProcessed(_ context.Context, ids []kernel.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		r.s.processed[id] = at
	}
	return nil
}

// fixture seeds the lookups shared by most handler tests.
type fixture struct {
	store *memoryStore
	fake  faker.Faker

	clerk     *staff.Staff
	manager   *staff.Staff
	driver    *staff.Staff
	courier   *staff.Staff
	sender    *customer.Customer
	recipient *customer.Customer
	warehouse *location.Location
	station   *location.Location
	vehicle   *transit.Vehicle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: newMemoryStore(), fake: faker.New()}

	f.clerk = f.addStaff(t, staff.WarehouseRole)
	f.manager = f.addStaff(t, staff.ManagerRole)
	f.driver = f.addStaff(t, staff.DriverRole)
	f.courier = f.addStaff(t, staff.CourierRole)
	f.sender = f.addCustomer(t)
	f.recipient = f.addCustomer(t)

	var err error
	f.warehouse, err = location.NewLocation(kernel.NewUUID(), "Central Warehouse", f.fake.Address().City(),
		f.fake.Address().Address(), location.Warehouse, location.WarehouseDetails{Capacity: 1000})
	require.NoError(t, err)
	f.station, err = location.NewLocation(kernel.NewUUID(), "Market Station", f.fake.Address().City(),
		f.fake.Address().Address(), location.PickupStation, location.StationDetails{MaxStorageDays: 3})
	require.NoError(t, err)
	f.store.locations[f.warehouse.ID()] = f.warehouse
	f.store.locations[f.station.ID()] = f.station

	f.vehicle, err = transit.NewVehicle(kernel.NewUUID(), "lag-123-xy", transit.Van, 50)
	require.NoError(t, err)
	f.store.vehicles[f.vehicle.ID()] = f.vehicle

	return f
}

func (f *fixture) addStaff(t *testing.T, role staff.Role) *staff.Staff {
	t.Helper()
	s, err := staff.NewStaff(kernel.NewUUID(), "STF-20240601-0A0B", f.fake.Person().Name(), role, nil)
	require.NoError(t, err)
	f.store.staff[s.ID()] = s
	return s
}

func (f *fixture) addCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), f.fake.Person().Name(), f.fake.Internet().Email(),
		f.fake.Phone().Number(), f.fake.Address().Address(), true, "")
	require.NoError(t, err)
	f.store.customers[c.ID()] = c
	return c
}

// addParcel stores a parcel from warehouse to station for recipient.
func (f *fixture) addParcel(t *testing.T, weightKg float64, status parcel.Status) *parcel.Parcel {
	t.Helper()
	originID, destID, recipientID := f.warehouse.ID(), f.station.ID(), f.recipient.ID()
	senderID := f.sender.ID()
	p, err := parcel.NewParcel(kernel.NewUUID(), kernel.TrackingNumber(trackingNumber()), weightKg, parcel.Attributes{
		SenderID:          &senderID,
		RecipientID:       &recipientID,
		OriginID:          &originID,
		DestinationID:     &destID,
		DeliveryAddress:   f.fake.Address().Address(),
		RequiresSignature: true,
	}, nil, nil, time.Now().UTC())
	require.NoError(t, err)

	switch {
	case status == parcel.AtStation:
		require.NoError(t, p.ArriveAtStation(f.station, nil, "", time.Now().UTC()))
	case status.IsReturned():
		require.NoError(t, p.CompleteReturn(status, f.warehouse, nil, time.Now().UTC()))
	case status != parcel.Packed:
		require.NoError(t, p.UpdateStatus(status, nil, nil, "", time.Now().UTC()))
	}
	p.ClearPendingLog()
	p.ClearDomainEvents()
	f.store.parcels[p.ID()] = snapshot(p)
	return p
}

func (f *fixture) parcelUoW() parcelUoWFactory { return parcelUoWFactory{f.store} }
func (f *fixture) protocolUoW() protocolUoWFactory { return protocolUoWFactory{f.store} }
func (f *fixture) assignmentUoW() assignmentUoWFactory { return assignmentUoWFactory{f.store} }

var trackingSeq = kernel.NewIdentifierGenerator()

func trackingNumber() string {
	tn, err := trackingSeq.NextTrackingNumber()
	if err != nil {
		panic(err)
	}
	return tn.String()
}
