package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"ticket-server/internal/config"
	"ticket-server/internal/messaging"
	"ticket-server/internal/models"
	"ticket-server/internal/repository"
	"ticket-server/internal/token"
)

// Refresh and verification TTLs are fixed; only the access TTL is
// configurable.
const (
	refreshTokenTTL      = 30 * 24 * time.Hour
	verificationTokenTTL = 10 * time.Minute
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

// authServiceImpl implements the AuthService interface.
type authServiceImpl struct {
	userRepo  repository.UserRepository
	codec     *token.Codec
	publisher messaging.UserEventPublisher
	cfg       *config.Config
	logger    *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo repository.UserRepository, codec *token.Codec, publisher messaging.UserEventPublisher, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		codec:     codec,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
	}
}

// IssueAccessToken creates a short-lived access token. Access tokens carry
// no explicit type tag.
func (s *authServiceImpl) IssueAccessToken(user *models.User) (string, error) {
	if user == nil {
		return "", models.ErrTokenEncoding
	}
	return s.codec.Encode(user.ID, s.cfg.AccessTokenTTL, "")
}

// IssueRefreshToken creates a 30-day refresh token.
func (s *authServiceImpl) IssueRefreshToken(user *models.User) (string, error) {
	if user == nil {
		return "", models.ErrTokenEncoding
	}
	return s.codec.Encode(user.ID, refreshTokenTTL, token.TypeRefresh)
}

// IssueVerificationToken creates a 10-minute token for the email
// verification flow.
func (s *authServiceImpl) IssueVerificationToken(user *models.User) (string, error) {
	if user == nil {
		return "", models.ErrTokenEncoding
	}
	return s.codec.Encode(user.ID, verificationTokenTTL, token.TypeVerify)
}

// Register creates a new user account and mints its initial token pair.
func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	log := s.logger.With(zap.String("email", email))
	log.Info("Registering new user")

	if email == "" || params.Password == "" || params.FirstName == "" || params.LastName == "" {
		log.Warn("Registration attempt with empty fields")
		return nil, models.ErrEmptyFields
	}

	if _, err := mail.ParseAddress(email); err != nil {
		log.Warn("Registration attempt with invalid email format", zap.Error(err))
		return nil, models.ErrInvalidEmail
	}

	hashed, err := hashPassword(params.Password)
	if err != nil {
		log.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Role:      models.RoleUser,
		Banned:    false,
		Verified:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailAlreadyExists) {
			log.Warn("Registration attempt for existing email")
		}
		return nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		log.Error("Failed to issue token pair during registration", zap.Error(err), zap.Int64("userID", user.ID))
		return nil, err
	}

	if err := s.publisher.PublishUserRegistered(ctx, user); err != nil {
		// The account exists either way, publishing is best effort.
		log.Error("Failed to publish user.registered event", zap.Error(err), zap.Int64("userID", user.ID))
	}

	log.Info("User registered successfully", zap.Int64("userID", user.ID))
	return pair, nil
}

// Login authenticates an existing user and mints a fresh token pair.
// Missing user, wrong password and banned account all collapse into the
// same error so callers cannot enumerate accounts.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.With(zap.String("email", email))
	log.Info("Login attempt")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Login failed: user not found")
			return nil, models.ErrInvalidCredentials
		}
		log.Error("Login failed: error getting user from repository", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.Password) {
		log.Warn("Login failed: invalid password", zap.Int64("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	if user.Banned {
		log.Warn("Login failed: user is banned", zap.Int64("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	if !user.Verified {
		log.Warn("Login failed: user is not verified", zap.Int64("userID", user.ID))
		return nil, models.ErrNotVerified
	}

	pair, err := s.issuePair(user)
	if err != nil {
		log.Error("Failed to issue token pair during login", zap.Error(err), zap.Int64("userID", user.ID))
		return nil, err
	}

	log.Info("User logged in successfully", zap.Int64("userID", user.ID))
	return pair, nil
}

// Refresh issues a new access token, given a valid refresh token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	s.logger.Info("Token refresh attempt")

	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh attempt with undecodable token", zap.Error(err))
		return "", err
	}

	if claims.TokenType != token.TypeRefresh {
		s.logger.Warn("Refresh attempt with wrong token type", zap.String("typ", claims.TokenType))
		return "", models.ErrTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Refresh attempt for unknown user", zap.Int64("userID", userID))
			return "", models.ErrUserNotFound
		}
		s.logger.Error("Error getting user during refresh", zap.Error(err), zap.Int64("userID", userID))
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if user.Banned {
		s.logger.Warn("Refresh attempt for banned user", zap.Int64("userID", userID))
		return "", models.ErrTokenInvalid
	}

	newToken, err := s.IssueAccessToken(user)
	if err != nil {
		s.logger.Error("Failed to issue access token during refresh", zap.Error(err), zap.Int64("userID", userID))
		return "", err
	}

	s.logger.Info("Token refreshed successfully", zap.Int64("userID", userID))
	return newToken, nil
}

// Authenticate resolves a bearer token into its user and checks the live
// ban flag. A valid token whose subject no longer exists resolves to no
// identity at all, matching the permissive historical behavior.
func (s *authServiceImpl) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Debug("Token subject not found in storage", zap.Int64("userID", userID))
			return nil, nil
		}
		s.logger.Error("Error getting user during authentication", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Banned {
		s.logger.Warn("Authentication rejected: user is banned", zap.Int64("userID", userID))
		return nil, models.ErrTokenInvalid
	}

	return user, nil
}

func (s *authServiceImpl) issuePair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Token: accessToken, Refresh: refreshToken}, nil
}
