package users

import (
	"time"

	"github.com/angelmondragon/mallkv/pkg/enums"
)

// User is one account of the "registered_users" directory. Secret holds the
// argon2id hash; directories written before hashing was introduced may still
// hold the plain value until the next successful sign-in.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Secret       string         `json:"password"`
	Role         enums.UserRole `json:"role"`
	RegisterDate time.Time      `json:"registerDate"`
	IsActive     bool           `json:"isActive"`
}

// Public returns u without the credential.
func (u User) Public() User {
	u.Secret = ""
	return u
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"password" validate:"required,min=6,max=128"`
	Name   string `json:"name" validate:"required,max=64"`
}
