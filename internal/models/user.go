package models

import "time"

// Roles a user can hold.
const (
	RoleClient    = "client"
	RoleAdmin     = "admin"
	RoleSuperUser = "super-user"
	RoleCEO       = "CEO"
)

// AdminRoles are the roles allowed into the back-office.
var AdminRoles = []string{RoleAdmin, RoleSuperUser, RoleCEO}

// User represents a user of the store.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      string    `json:"role" gorm:"type:varchar(20);index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the role may use the back-office.
func IsAdmin(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}
