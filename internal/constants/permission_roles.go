package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewAssets:        {Viewer, Technician, Manager, Admin},
	ManageAssets:      {Manager, Admin},
	ImportAssets:      {Manager, Admin},
	AssignAsset:       {Manager, Admin},
	TransitionCustody: {Manager, Admin},
	RecordMaintenance: {Technician, Manager, Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
