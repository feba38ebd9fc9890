// Package authorization defines staff roles.
package authorization

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleAttendant  UserRole = "attendant"
	RoleTechnician UserRole = "technician"
)

var validRoles = map[UserRole]bool{
	RoleAdmin:      true,
	RoleManager:    true,
	RoleAttendant:  true,
	RoleTechnician: true,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return validRoles[r]
}

// ParseUserRole falls back to the least privileged role for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleTechnician
}

// ScopeCenter returns the service center a listing must be limited to.
// Admins see every center; other staff only their own, when they have one.
func ScopeCenter(role UserRole, userCenterID *uint, requested *uint) *uint {
	if role.IsAdmin() || userCenterID == nil {
		return requested
	}
	return userCenterID
}
