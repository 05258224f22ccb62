package enums

// Permission is the level granted to a whiteboard collaborator.
// Edit does not imply admin: sharing and permission updates require
// admin (or ownership) explicitly.
type Permission string

const (
	PermissionView  Permission = "view"
	PermissionEdit  Permission = "edit"
	PermissionAdmin Permission = "admin"
)

func (p Permission) Valid() bool {
	switch p {
	case PermissionView, PermissionEdit, PermissionAdmin:
		return true
	default:
		return false
	}
}
