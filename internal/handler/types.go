package handler

import (
	"time"

	"ticket-server/internal/models"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.RoleType `json:"role"`
	Banned    bool            `json:"banned"`
	Verified  bool            `json:"verified"`
}

// meResponse omits the admin-only fields.
type meResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type updateUserRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type changeRoleRequest struct {
	Role models.RoleType `json:"role" binding:"required"`
}

type eventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	TicketPrice float64   `json:"ticket_price"`
	TicketCount int       `json:"ticket_count"`
	Location    string    `json:"location" binding:"required"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Banned:    user.Banned,
		Verified:  user.Verified,
	}
}
