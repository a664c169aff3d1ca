// Package delivery models last-mile delivery assignments. Log entries whose
// status text appears in the transition table move the assignment (and its
// parcel) to a new state; all other entries are informational.
package delivery
