package constants

const (
	Admin      = "admin"
	Manager    = "manager"
	Technician = "technician"
	Viewer     = "viewer"
)

// ValidRoles is the set of allowed values for user role.
var ValidRoles = []string{Viewer, Technician, Manager, Admin}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
