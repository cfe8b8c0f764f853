package constants

// User roles as reported by the User service.
const (
	RoleCustomer = "CUSTOMER"
	RoleSales    = "SALES"
	RoleQuality  = "QUALITY"
)

// IsManager reports whether a directory role belongs to internal staff.
func IsManager(role string) bool {
	return role == RoleSales || role == RoleQuality
}
