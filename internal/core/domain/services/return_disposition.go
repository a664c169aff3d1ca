package services

import (
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
)

// ReturnDisposition picks the returned status that matches where a parcel
// is sent back to.
type ReturnDisposition struct{}

func NewReturnDisposition() ReturnDisposition {
	return ReturnDisposition{}
}

// StatusFor maps warehouses and hubs to returned_warehouse and every other
// kind to returned_station.
func (ReturnDisposition) StatusFor(returnTo *location.Location) parcel.Status {
	switch returnTo.Kind() {
	case location.Warehouse, location.Hub:
		return parcel.ReturnedWarehouse
	default:
		return parcel.ReturnedStation
	}
}
