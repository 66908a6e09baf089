package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxPasswordBytes is the longest password bcrypt will hash without truncation.
const MaxPasswordBytes = 72

// MaxUsernameLength bounds usernames to what the users table stores.
const MaxUsernameLength = 150

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 150 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Field messages for user validation failures.
const (
	MsgFieldRequired = "Campo obrigatório"
	MsgFieldTooLong  = "Valor muito longo"
)

// User represents a registered account.
// ID is assigned by the store on insert.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used only during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string, now time.Time) (*User, error) {
	user := &User{
		Username:  username,
		Password:  password,
		CreatedAt: now.UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data. Failures are returned as a
// *ValidationError keyed by the offending field.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", MsgFieldRequired, ErrEmptyUsername)
	}
	if len(u.Username) > MaxUsernameLength {
		return NewValidationError("username", MsgFieldTooLong, ErrUsernameTooLong)
	}

	if u.Password != "" {
		if len(u.Password) > MaxPasswordBytes {
			return NewValidationError("password", MsgFieldTooLong, ErrPasswordTooLong)
		}
		return nil
	}

	// Persisted users carry only the hash.
	if u.HashedPassword == "" {
		return NewValidationError("password", MsgFieldRequired, ErrEmptyPassword)
	}
	return nil
}

// SetHashedPassword stores the digest and clears the plaintext.
func (u *User) SetHashedPassword(hash string) error {
	if hash == "" {
		return ErrEmptyHashedPassword
	}
	u.HashedPassword = hash
	u.Password = ""
	return nil
}
