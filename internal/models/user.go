// Package models contains data models for the account service.
package models

import "time"

// Role determines the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status determines whether a user may log in.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User represents a registered account in the system.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	FullName     string     `json:"full_name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:user"`
	Status       Status     `json:"status" gorm:"type:varchar(20);not null;default:active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
