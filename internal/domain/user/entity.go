package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	Name           string
	MiddleName     string
	LastName       string
	SecondLastName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Register is the registration payload. Password holds plaintext until it is
// replaced by its hash before persistence.
type Register struct {
	Email          string
	Password       string
	Name           string
	MiddleName     string
	LastName       string
	SecondLastName string
}

// Credentials is the login payload.
type Credentials struct {
	Email    string
	Password string
}

// TokenModel is the password-free projection of a User embedded in access
// tokens.
type TokenModel struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
}

// SaveResult is the outcome code of persisting a user. Values are shaped like
// HTTP statuses and are surfaced as such by the registration endpoint.
type SaveResult int

const (
	SaveCreated  SaveResult = 201
	SaveConflict SaveResult = 409
)

// ToTokenModel projects the user into its token payload.
func (u User) ToTokenModel() TokenModel {
	return TokenModel{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.Name,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		SecondLastName: u.SecondLastName,
	}
}

// FromRegister builds a user from a registration payload; the caller is
// expected to have replaced the password with its hash.
func FromRegister(r Register) User {
	return User{
		Email:          r.Email,
		PasswordHash:   r.Password,
		Name:           r.Name,
		MiddleName:     r.MiddleName,
		LastName:       r.LastName,
		SecondLastName: r.SecondLastName,
	}
}
