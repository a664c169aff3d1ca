// Package services holds domain logic that spans aggregates: verifying a
// pickup claim against a parcel, and choosing the returned status for a
// return destination.
package services
