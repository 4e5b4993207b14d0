package models

import "gorm.io/gorm"

// Role is the closed set of user roles.
type Role string

const (
	RoleBuyer  Role = "buyer"  // can purchase via cart/checkout
	RoleVendor Role = "vendor" // can list and manage products
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleVendor
}

// User represents a registered user of the marketplace.
// Role is fixed at registration and never changes afterwards.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password     string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role         Role   `json:"role" gorm:"type:varchar(10)" validate:"required,oneof=buyer vendor"`
	FirstName    string `json:"first_name" gorm:"type:varchar(100)"`
	LastName     string `json:"last_name" gorm:"type:varchar(100)"`
	Phone        string `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Address      string `json:"address"`
	ProfileImage string `json:"profile_image"` // storage key, resolved by pkg/storage
	gorm.Model   `json:"-"`
}
