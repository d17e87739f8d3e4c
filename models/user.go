package models

// UserRole values are part of the persisted contract and must match the
// tokens issued at login.
type UserRole string

const (
	RoleCustomer      UserRole = "CUSTOMER"
	RoleAdmin         UserRole = "ADMIN"
	RoleDeliveryAgent UserRole = "DELIVERY_AGENT"
)

type User struct {
	ID    string   `gorm:"primaryKey" json:"id"`
	Name  string   `gorm:"not null" json:"name"`
	Email string   `gorm:"uniqueIndex;not null" json:"email"`
	Role  UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Phone string   `json:"phone,omitempty"`
}

// Identity is the authenticated caller of a lifecycle operation. It is
// extracted from the request token and passed explicitly; services never
// read ambient session state.
type Identity struct {
	ID   string
	Role UserRole
}
