package models

import "gorm.io/gorm"

// Role is the access level of an account. Roles are immutable after
// creation except through an admin-approved promotion.
type Role string

const (
	RoleStudent  Role = "student"
	RoleDelegate Role = "delegate"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleDelegate, RoleAdmin:
		return true
	}
	return false
}

// Account is a registered user of the classroom.
//
// Secret is stored and compared verbatim. Password hashing is a known
// weakness of this system and deliberately out of scope.
type Account struct {
	gorm.Model
	Email  string `json:"email" gorm:"uniqueIndex;not null"`
	Secret string `json:"-" gorm:"not null"`
	Name   string `json:"name"`
	Role   Role   `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
}

// Profile is the subset of account data attached to chat messages.
type Profile struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// UnknownProfile is used when a message's author no longer resolves to an
// account. Broken author links degrade to this placeholder, never fail a read.
var UnknownProfile = Profile{Name: "Unknown", Role: RoleStudent}
