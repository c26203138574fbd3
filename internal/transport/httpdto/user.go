package httpdto

import (
	"time"

	"account-service/internal/domain/user"
)

// RegisterRequest is used for POST /v1/users/register
type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,max=72"`
	Name           string `json:"name"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName,omitempty"`
}

func (r RegisterRequest) ToDomain() user.Register {
	return user.Register{
		Email:          r.Email,
		Password:       r.Password,
		Name:           r.Name,
		MiddleName:     r.MiddleName,
		LastName:       r.LastName,
		SecondLastName: r.SecondLastName,
	}
}

// LoginRequest is used for POST /v1/users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToDomain() user.Credentials {
	return user.Credentials{Email: r.Email, Password: r.Password}
}

// LoginResponse is the token model plus the bearer token.
type LoginResponse struct {
	user.TokenModel
	Token string `json:"token"`
}

// UserDTO represents a stored user in API responses, without the password hash.
type UserDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	CreatedAt      string `json:"createdAt"`
}

// FromUser converts a domain user to UserDTO
func FromUser(u user.User) UserDTO {
	return UserDTO{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.Name,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		SecondLastName: u.SecondLastName,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// FromUserSlice converts a slice of domain users to UserDTO slice
func FromUserSlice(users []user.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = FromUser(u)
	}
	return dtos
}
