package models

import "errors"

// Application-wide standard errors
var (
	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrNotVerified        = errors.New("email address is not verified")
	ErrUnauthorized       = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden          = errors.New("forbidden")    // Authenticated, but lacks permission

	// Token Errors
	ErrTokenEncoding = errors.New("unable to generate the token")
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrTokenExpired  = errors.New("token has expired")

	// User Management Errors
	ErrEmptyFields             = errors.New("all fields are required and cannot be empty")
	ErrInvalidEmail            = errors.New("email address is not valid")
	ErrCantSelfBan             = errors.New("you cannot ban/unban yourself")
	ErrAlreadyBannedOrUnbanned = errors.New("user is already banned/unbanned")

	// Event Errors
	ErrEventNotFound = errors.New("event not found")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
