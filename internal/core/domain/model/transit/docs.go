// Package transit models vehicles and the assignments that move batches of
// parcels between locations. An assignment is scheduled, then in transit,
// then completed; it may be cancelled before completion.
package transit
