package repository

import (
	"context"

	"ticket-server/internal/models"
)

// UserRepository is the user-storage contract consumed by the auth core.
type UserRepository interface {
	// Create inserts the user and fills in the assigned ID.
	Create(ctx context.Context, user *models.User) error
	// GetByID returns models.ErrUserNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByEmail returns models.ErrUserNotFound when no row matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	// Update replaces the user's email, names and password hash.
	Update(ctx context.Context, id int64, email, firstName, lastName, passwordHash string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetBanStatus(ctx context.Context, id int64, banned bool) error
	SetRole(ctx context.Context, id int64, role models.RoleType) error
	Delete(ctx context.Context, id int64) error
}

// EventRepository is the event-storage contract used by the event service.
type EventRepository interface {
	// Create inserts the event and fills in the assigned ID and created_at.
	Create(ctx context.Context, event *models.Event) error
	// GetByID returns models.ErrEventNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]models.Event, error)
}
