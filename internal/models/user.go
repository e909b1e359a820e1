package models

// Role is the access level of a user. It is fixed at creation.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a storefront account.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Role         Role   `gorm:"type:varchar(16);not null;default:'customer'" json:"role"`
	LoginCount   int    `gorm:"not null;default:0" json:"login_count"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
