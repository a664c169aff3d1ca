package staff

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("staff name")
	ErrRoleIsInvalid         = errs.NewValueIsInvalidError("staff role")
	ErrStaffIsNotConstructed = errors.New("Staff must be created via NewStaff constructor")
)

// Role decides which operations a staff member may perform.
type Role string

const (
	WarehouseRole Role = "warehouse"
	StationRole   Role = "station"
	DriverRole    Role = "driver"
	CourierRole   Role = "courier"
	ManagerRole   Role = "manager"
	AdminRole     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Validate()
}

func (r Role) Validate() error {
	switch r {
	case WarehouseRole, StationRole, DriverRole, CourierRole, ManagerRole, AdminRole:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrRoleIsInvalid, string(r))
	}
}

func (r Role) String() string { return string(r) }

// IsManagement reports whether the role may manage assignments.
func (r Role) IsManagement() bool {
	return r == ManagerRole || r == AdminRole
}

// Staff is an employee acting on parcels. Staff records are looked up by the
// core; their lifecycle is managed elsewhere.
type Staff struct {
	id         kernel.UUID
	employeeID kernel.StaffID
	name       string
	role       Role
	locationID *kernel.UUID
	active     bool
	guard      guard.ConstructorGuard
}

func NewStaff(id kernel.UUID, employeeID kernel.StaffID, name string, role Role, locationID *kernel.UUID) (*Staff, error) {
	return RestoreStaff(id, employeeID, name, role, locationID, true)
}

func RestoreStaff(
	id kernel.UUID,
	employeeID kernel.StaffID,
	name string,
	role Role,
	locationID *kernel.UUID,
	active bool,
) (*Staff, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	_, employeeErr := kernel.NewStaffID(employeeID.String())

	if err := errors.Join(id.Validate(), employeeErr, nameErr, role.Validate()); err != nil {
		return nil, err
	}

	return &Staff{
		id:         id,
		employeeID: employeeID,
		name:       name,
		role:       role,
		locationID: locationID,
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (s *Staff) Validate() error {
	if s == nil {
		return ErrStaffIsNotConstructed
	}
	return s.guard.Validate(ErrStaffIsNotConstructed)
}

func (s *Staff) ID() kernel.UUID { return s.id }
func (s *Staff) EmployeeID() kernel.StaffID { return s.employeeID }
func (s *Staff) Name() string { return s.name }
func (s *Staff) Role() Role { return s.role }
func (s *Staff) LocationID() *kernel.UUID { return s.locationID }
func (s *Staff) IsActive() bool { return s.active }

func (s *Staff) Deactivate() { s.active = false }
func (s *Staff) Activate() { s.active = true }
