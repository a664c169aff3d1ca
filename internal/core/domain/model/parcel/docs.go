// Package parcel contains the Parcel aggregate: its lifecycle statuses, the
// append-only status log, the item list and the domain events raised when a
// parcel changes state or gets a pickup code.
package parcel
