// Package handover records custody transfers of a parcel between staff
// members, or from a courier to the customer, with acknowledgement flags for
// both sides.
package handover
