// Package location models warehouses, pickup stations, hubs and other places
// parcels move between. A Location is one record with a Kind tag and a
// kind-specific Details value.
package location
