package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"ticket-server/internal/messaging"
	"ticket-server/internal/models"
	"ticket-server/internal/repository"
)

// UserUpdateParams are the fields an edit request may replace.
type UserUpdateParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService covers user administration: listing, editing, banning and
// role changes. Authentication itself lives in AuthService.
type UserService interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, params UserUpdateParams) error
	ChangePassword(ctx context.Context, id int64, password string) error
	// SetBanStatus bans or unbans a user. actorID is the caller; banning
	// yourself is rejected, as is re-applying the current state.
	SetBanStatus(ctx context.Context, id int64, banned bool, actorID int64) error
	ChangeRole(ctx context.Context, id int64, role models.RoleType) error
	Delete(ctx context.Context, id int64) error
}

var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	userRepo  repository.UserRepository
	publisher messaging.UserEventPublisher
	logger    *zap.Logger
}

// NewUserService creates a new instance of userServiceImpl.
func NewUserService(userRepo repository.UserRepository, publisher messaging.UserEventPublisher, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger.Named("UserService"),
	}
}

func (s *userServiceImpl) GetAll(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Update replaces the user's email, names and password.
func (s *userServiceImpl) Update(ctx context.Context, id int64, params UserUpdateParams) error {
	log := s.logger.With(zap.Int64("userID", id))

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || params.Password == "" || params.FirstName == "" || params.LastName == "" {
		return models.ErrEmptyFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		log.Warn("Update attempt with invalid email format", zap.Error(err))
		return models.ErrInvalidEmail
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	hashed, err := hashPassword(params.Password)
	if err != nil {
		log.Error("Failed to hash password during update", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Update(ctx, id, email, strings.TrimSpace(params.FirstName), strings.TrimSpace(params.LastName), hashed); err != nil {
		return err
	}

	log.Info("User updated successfully")
	return nil
}

// ChangePassword replaces the user's password hash.
func (s *userServiceImpl) ChangePassword(ctx context.Context, id int64, password string) error {
	log := s.logger.With(zap.Int64("userID", id))

	if password == "" {
		return models.ErrEmptyFields
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, id, hashed); err != nil {
		return err
	}

	log.Info("User password changed")
	return nil
}

// SetBanStatus bans or un-bans a user based on the supplied state.
func (s *userServiceImpl) SetBanStatus(ctx context.Context, id int64, banned bool, actorID int64) error {
	log := s.logger.With(zap.Int64("userID", id), zap.Bool("banned", banned))

	if id == actorID {
		log.Warn("User attempted to ban/unban themselves")
		return models.ErrCantSelfBan
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Banned == banned {
		return models.ErrAlreadyBannedOrUnbanned
	}

	if err := s.userRepo.SetBanStatus(ctx, id, banned); err != nil {
		return err
	}

	if err := s.publisher.PublishBanStatusChanged(ctx, id, banned); err != nil {
		// The ban is already applied, publishing is best effort.
		log.Error("Failed to publish ban status event", zap.Error(err))
	}

	log.Info("User ban status changed", zap.Int64("actorID", actorID))
	return nil
}

// ChangeRole assigns a new role to the user.
func (s *userServiceImpl) ChangeRole(ctx context.Context, id int64, role models.RoleType) error {
	if !models.ValidRole(role) {
		return models.ErrInvalidInput
	}

	if err := s.userRepo.SetRole(ctx, id, role); err != nil {
		return err
	}

	s.logger.Info("User role changed", zap.Int64("userID", id), zap.String("role", string(role)))
	return nil
}

// Delete removes the user account.
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			s.logger.Error("Failed to delete user", zap.Error(err), zap.Int64("userID", id))
		}
		return err
	}
	s.logger.Info("User deleted", zap.Int64("userID", id))
	return nil
}
