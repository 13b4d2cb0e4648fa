package domain

// Role is a named permission level assigned to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleEditor    Role = "editor"
)

// AllRoles lists every role the system recognises.
var AllRoles = []Role{RoleUser, RoleAdmin, RoleModerator, RoleEditor}

// roleParent maps each role to the role directly beneath it in the
// hierarchy. The full permission sets are derived from this relation at
// init time so the chain only has to be stated once.
var roleParent = map[Role]Role{
	RoleAdmin:     RoleModerator,
	RoleModerator: RoleEditor,
	RoleEditor:    RoleUser,
}

// rolePermissions is the transitive closure of roleParent: every role maps
// to itself plus all roles beneath it.
var rolePermissions = buildPermissions()

func buildPermissions() map[Role][]Role {
	perms := make(map[Role][]Role, len(AllRoles))
	for _, r := range AllRoles {
		set := []Role{r}
		for cur, ok := roleParent[r]; ok; cur, ok = roleParent[cur] {
			set = append(set, cur)
		}
		perms[r] = set
	}
	return perms
}

// IsValidRole reports whether r is one of the recognised roles.
func IsValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}

// ValidRoles reports whether every role in the slice is recognised.
func ValidRoles(roles []Role) bool {
	for _, r := range roles {
		if !IsValidRole(r) {
			return false
		}
	}
	return true
}

// PermissionsOf returns the role plus every role beneath it in the
// hierarchy. An unrecognised role falls back to the base user permission
// set so permission lookups are total; unknown roles are rejected at
// assignment time instead.
func PermissionsOf(r Role) []Role {
	if perms, ok := rolePermissions[r]; ok {
		return perms
	}
	return rolePermissions[RoleUser]
}

// Satisfies reports whether userRole grants the permissions of required.
func Satisfies(userRole, required Role) bool {
	for _, r := range PermissionsOf(userRole) {
		if r == required {
			return true
		}
	}
	return false
}

// AnySatisfies reports whether at least one of userRoles grants required.
func AnySatisfies(userRoles []Role, required Role) bool {
	for _, r := range userRoles {
		if Satisfies(r, required) {
			return true
		}
	}
	return false
}

// HasRole reports whether roles contains r exactly, ignoring the hierarchy.
func HasRole(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}
