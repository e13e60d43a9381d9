package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered buyer account. Email is the uniqueness key.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Market         string    `json:"market"`
	Location       string    `json:"location"`
	ContactVisible bool      `json:"contact_visible"`
	CreatedAt      time.Time `json:"created_at"`
	Password       string    `json:"-"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Market         *string `json:"market"`
	Location       *string `json:"location"`
	ContactVisible *bool   `json:"contact_visible"`
}

// HashPassword hashes the given password and stores it on the user.
func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
