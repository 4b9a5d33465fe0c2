package model

// Role is the closed set of permission levels. The numeric values are the
// ones stored in the users table; do not renumber.
type Role int16

const (
	RoleUser         Role = 1
	RoleUserCanBuy   Role = 2
	RoleUserBlocked  Role = 5
	RoleAdmin        Role = 50
	RoleAdminBlocked Role = 55
	RoleSuperuser    Role = 60
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleUserCanBuy, RoleUserBlocked, RoleAdmin, RoleAdminBlocked, RoleSuperuser:
		return true
	}
	return false
}

// IsSuperuser reports whether r is the superuser role.
func (r Role) IsSuperuser() bool {
	return r == RoleSuperuser
}

// IsAdmin reports whether r carries admin privilege. Superusers are admins.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r.IsSuperuser()
}

// IsBlocked reports whether r is one of the blocked states. Blocked roles
// retain no privilege at all.
func (r Role) IsBlocked() bool {
	return r == RoleUserBlocked || r == RoleAdminBlocked
}

// CanBuy reports whether r permits token purchase.
func (r Role) CanBuy() bool {
	return r == RoleUserCanBuy
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleUserCanBuy:
		return "user_can_buy"
	case RoleUserBlocked:
		return "user_blocked"
	case RoleAdmin:
		return "admin"
	case RoleAdminBlocked:
		return "admin_blocked"
	case RoleSuperuser:
		return "superuser"
	}
	return "unknown"
}
