package constants

// Roles carried in the JWT and resolved by the auth middleware.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var AllRoles = []string{RoleAdmin, RoleMember}
