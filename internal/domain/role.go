package domain

// Role is the caller identity class resolved by the auth layer upstream.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

var validRoles = map[Role]struct{}{
	RoleCustomer: {},
	RoleVendor:   {},
	RoleAdmin:    {},
}

func ToRole(s string) (Role, bool) {
	role := Role(s)
	_, ok := validRoles[role]
	return role, ok
}
