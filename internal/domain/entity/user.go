package entity

import (
	"strings"
	"time"
)

// User represents a registered member of the network
type User struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	FirstName     string     `bson:"firstname" json:"firstname"`
	LastName      string     `bson:"lastname" json:"lastname"`
	DateOfBirth   *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Email         string     `bson:"email" json:"email"`
	PasswordHash  string     `bson:"password_hash" json:"-"`
	AccountLocked bool       `bson:"account_locked" json:"account_locked"`
	Enabled       bool       `bson:"enabled" json:"enabled"`
	Roles         []string   `bson:"roles" json:"roles"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// FullName is the display name carried in tokens and emails.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Role is a named permission group.
type Role struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultRoleName is assigned to every newly registered user.
const DefaultRoleName = "USER"
