package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"mantatrack/models"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// Directory is the in-memory user list standing in for a real account
// backend. Users are created at signup and updated by profile edits, never
// deleted.
type Directory struct {
	mu    sync.Mutex
	users []models.User

	now func() time.Time
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{now: time.Now}
}

// SignupInput carries the fields of a signup form.
type SignupInput struct {
	Name           string
	Email          string
	Password       string
	Market         string
	Location       string
	ContactVisible bool
}

// Signup registers a new buyer. Email is the uniqueness key; a duplicate
// fails with ErrEmailTaken. The password is hashed before it is stored.
func (d *Directory) Signup(input SignupInput) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, ErrEmailTaken
		}
	}

	user := models.User{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          email,
		Market:         input.Market,
		Location:       input.Location,
		ContactVisible: input.ContactVisible,
		CreatedAt:      d.now(),
	}
	if err := user.HashPassword(input.Password); err != nil {
		return models.User{}, err
	}
	d.users = append(d.users, user)
	return user, nil
}

// Login looks up a buyer by email. Demo semantics: any password is accepted
// for a known email, matching the mock backend this directory stands in for.
// Unknown emails fail with ErrUserNotFound.
func (d *Directory) Login(email, password string) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UserByID looks up a buyer by id.
func (d *Directory) UserByID(id string) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UpdateProfile merges the non-nil fields of upd into the user with the
// given id and returns the updated record.
func (d *Directory) UpdateProfile(id string, upd models.ProfileUpdate) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		user := &d.users[i]
		if user.ID != id {
			continue
		}
		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Market != nil {
			user.Market = *upd.Market
		}
		if upd.Location != nil {
			user.Location = *upd.Location
		}
		if upd.ContactVisible != nil {
			user.ContactVisible = *upd.ContactVisible
		}
		return *user, nil
	}
	return models.User{}, ErrUserNotFound
}
