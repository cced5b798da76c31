package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ticket-server/internal/models"
)

// Compile-time check to ensure pgEventRepository implements EventRepository
var _ EventRepository = (*pgEventRepository)(nil)

type pgEventRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgEventRepository creates a new PostgreSQL-backed EventRepository.
func NewPgEventRepository(pool *pgxpool.Pool, logger *zap.Logger) EventRepository {
	return &pgEventRepository{
		pool:   pool,
		logger: logger.Named("PgEventRepo"),
	}
}

const eventColumns = `id, title, description, category, starts_at, ends_at,
	ticket_price, ticket_count, location, status, organizer_id, created_at`

// Create inserts a new event and fills in the assigned ID and created_at.
func (r *pgEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `INSERT INTO events
		(title, description, category, starts_at, ends_at, ticket_price, ticket_count, location, status, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.Category,
		event.StartsAt, event.EndsAt,
		event.TicketPrice, event.TicketCount,
		event.Location, event.Status, event.OrganizerID,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create event in postgres", zap.Error(err), zap.String("title", event.Title))
		return fmt.Errorf("failed to create event in postgres: %w", err)
	}
	r.logger.Info("Event created successfully", zap.Int64("eventID", event.ID), zap.Int64("organizerID", event.OrganizerID))
	return nil
}

// GetByID retrieves an event by its ID.
func (r *pgEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event := &models.Event{}
	if err := pgxscan.Get(ctx, r.pool, event, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Event not found by id", zap.Int64("eventID", id))
			return nil, models.ErrEventNotFound
		}
		r.logger.Error("Failed to get event by id from postgres", zap.Error(err), zap.Int64("eventID", id))
		return nil, fmt.Errorf("failed to get event by id from postgres: %w", err)
	}
	return event, nil
}

// GetAll returns every event, newest first.
func (r *pgEventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	var events []models.Event
	if err := pgxscan.Select(ctx, r.pool, &events, query); err != nil {
		r.logger.Error("Failed to list events from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list events from postgres: %w", err)
	}
	return events, nil
}
