package models

// Available roles.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// GetDefaultRoles returns the roles assigned to a new user.
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// GetAllRoles returns every known role.
func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleStaff,
		RoleAdmin,
	}
}
