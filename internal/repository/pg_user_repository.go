package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ticket-server/internal/models"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(pool *pgxpool.Pool, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		pool:   pool,
		logger: logger.Named("PgUserRepo"),
	}
}

const userColumns = `id, email, password, first_name, last_name, role, banned, verified`

// Create inserts a new user into the database.
func (r *pgUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, password, first_name, last_name, role, banned, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.Role, user.Banned, user.Verified,
	).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation; only the email column is unique
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate user by email", zap.String("email", user.Email))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}

	r.logger.Info("User created successfully", zap.Int64("userID", user.ID), zap.String("email", user.Email))
	return nil
}

// GetByID retrieves a user by their ID.
func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Role, &user.Banned, &user.Verified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by id", zap.Int64("userID", id))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.Int64("userID", id))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email.
func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Role, &user.Banned, &user.Verified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return user, nil
}

// GetAll returns every user ordered by ID.
func (r *pgUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	var users []models.User
	if err := pgxscan.Select(ctx, r.pool, &users, query); err != nil {
		r.logger.Error("Failed to list users from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list users from postgres: %w", err)
	}
	return users, nil
}

// Update replaces the user's editable fields.
func (r *pgUserRepository) Update(ctx context.Context, id int64, email, firstName, lastName, passwordHash string) error {
	query := `UPDATE users SET email = $2, first_name = $3, last_name = $4, password = $5 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, email, firstName, lastName, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to update user in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to update user in postgres: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces only the password hash.
func (r *pgUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		r.logger.Error("Failed to update user password in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to update user password in postgres: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// SetBanStatus flips the banned flag.
func (r *pgUserRepository) SetBanStatus(ctx context.Context, id int64, banned bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET banned = $2 WHERE id = $1`, id, banned)
	if err != nil {
		r.logger.Error("Failed to set user ban status in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to set user ban status in postgres: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User ban status updated", zap.Int64("userID", id), zap.Bool("banned", banned))
	return nil
}

// SetRole changes the user's role.
func (r *pgUserRepository) SetRole(ctx context.Context, id int64, role models.RoleType) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		r.logger.Error("Failed to set user role in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to set user role in postgres: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// Delete removes the user.
func (r *pgUserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user from postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to delete user from postgres: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User deleted", zap.Int64("userID", id))
	return nil
}
