package dto

import (
	"time"

	"garage/internal/domain/user"
)

type UserDTO struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	ServiceCenterID *uint      `json:"service_center_id,omitempty"`
	Active          bool       `json:"active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:              u.ID(),
		Name:            u.Name(),
		Email:           u.Email(),
		Role:            u.Role().String(),
		ServiceCenterID: u.ServiceCenterID(),
		Active:          u.IsActive(),
		LastLoginAt:     u.LastLoginAt(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}
