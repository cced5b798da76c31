package models

// RoleType is the role assigned to a user account.
type RoleType string

const (
	RoleUser      RoleType = "user"
	RoleAdmin     RoleType = "admin"
	RoleOrganizer RoleType = "organizer"
)

// AllRoles returns every defined role. Used to validate role-change requests.
func AllRoles() []RoleType {
	return []RoleType{
		RoleUser,
		RoleAdmin,
		RoleOrganizer,
	}
}

// ValidRole reports whether the given role is one of the defined roles.
func ValidRole(role RoleType) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
