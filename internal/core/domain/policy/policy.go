// Package policy holds the single authorization rule applied to every
// mutating entry point.
package policy

import (
	"fmt"

	"logistics/internal/core/domain/model/staff"
	"logistics/internal/pkg/errs"
)

// ErrActorIsRequired is returned when a mutation arrives without an acting staff member.
var ErrActorIsRequired = errs.NewValueIsRequiredError("acting staff")

// Policy decides from the actor's role and active flag whether an operation is allowed.
type Policy func(role staff.Role, active bool) bool

// ActiveStaff allows any active staff member with a known role.
func ActiveStaff(role staff.Role, active bool) bool {
	return active && role.Validate() == nil
}

// Management allows active managers and admins.
func Management(role staff.Role, active bool) bool {
	return active && role.IsManagement()
}

// Authorize applies p to actor. operation names the action in the error.
func Authorize(p Policy, actor *staff.Staff, operation string) error {
	if actor == nil || actor.Validate() != nil {
		return ErrActorIsRequired
	}
	if !p(actor.Role(), actor.IsActive()) {
		return &errs.AccessIsDeniedError{
			ParamName: operation,
			Cause:     fmt.Errorf("%s %s (active=%t)", actor.EmployeeID(), actor.Role(), actor.IsActive()),
		}
	}
	return nil
}
