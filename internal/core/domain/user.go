package domain

// Role is the access level attached to a UserRecord.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// UserRecord is a locally known account. Passwords are kept in plaintext:
// the credential store only simulates authentication.
type UserRecord struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// DefaultUsers returns the records seeded into an empty or unreadable store.
func DefaultUsers() []UserRecord {
	return []UserRecord{
		{Username: "admin", Password: "password", Role: RoleAdmin},
		{Username: "customer1", Password: "password", Role: RoleCustomer},
		{Username: "customer2", Password: "password", Role: RoleCustomer},
	}
}
