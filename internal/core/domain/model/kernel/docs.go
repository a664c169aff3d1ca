// Package kernel provides the primitives shared by every aggregate of the
// logistics core.
//
// The package includes:
//   - UUID: a validated identifier value; optional references are *UUID
//   - TrackingNumber, StaffID, PickupCode: human-facing identifiers and the
//     IdentifierGenerator that issues them
//   - DomainEvent, EventRecorder and BaseEvent: facts raised by aggregates and
//     later written to the outbox by the unit of work
package kernel
