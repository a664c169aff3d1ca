package policy_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/staff"
	"logistics/internal/core/domain/policy"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicies(t *testing.T) {
	tests := []struct {
		role       staff.Role
		active     bool
		staffOK    bool
		management bool
	}{
		{staff.CourierRole, true, true, false},
		{staff.CourierRole, false, false, false},
		{staff.ManagerRole, true, true, true},
		{staff.AdminRole, false, false, false},
		{staff.Role("guest"), true, false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.staffOK, policy.ActiveStaff(tt.role, tt.active), "%s active=%t", tt.role, tt.active)
		assert.Equal(t, tt.management, policy.Management(tt.role, tt.active), "%s active=%t", tt.role, tt.active)
	}
}

func TestAuthorize(t *testing.T) {
	driver, err := staff.NewStaff(kernel.NewUUID(), "STF-20240101-00AA", "Tunde", staff.DriverRole, nil)
	require.NoError(t, err)

	require.NoError(t, policy.Authorize(policy.ActiveStaff, driver, "record handover"))

	err = policy.Authorize(policy.Management, driver, "create transit assignment")
	require.ErrorIs(t, err, errs.ErrAccessIsDenied)
	assert.Contains(t, err.Error(), "create transit assignment")

	require.ErrorIs(t, policy.Authorize(policy.ActiveStaff, nil, "x"), policy.ErrActorIsRequired)
}
