package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ticket-server/internal/config"
	"ticket-server/internal/messaging"
	"ticket-server/internal/middleware"
	"ticket-server/internal/models"
	"ticket-server/internal/repository/mocks"
	"ticket-server/internal/service"
	"ticket-server/internal/token"
)

const testSecret = "test-secret"

// newTestRouter wires the full auth stack against the given repository
// mock. The rate limiter points at an unreachable redis, which lets every
// request through.
func newTestRouter(userRepo *mocks.UserRepository) (*gin.Engine, service.AuthService) {
	cfg := &config.Config{
		JWTSecret:      testSecret,
		AccessTokenTTL: 2 * time.Hour,
	}
	log := zap.NewNop()
	codec := token.NewCodec(cfg.JWTSecret)
	authSvc := service.NewAuthService(userRepo, codec, messaging.NopPublisher{}, cfg, log)
	userSvc := service.NewUserService(userRepo, messaging.NopPublisher{}, log)

	h := NewAuthHandler(authSvc, userSvc, cfg)
	limiter := middleware.NewRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 100, time.Minute, log)

	router := gin.New()
	h.RegisterRoutes(router, limiter)
	return router, authSvc
}

func postJSON(router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterEndpoint(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, _ := newTestRouter(userRepo)

	userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 42
	}).Return(nil).Once()

	w := postJSON(router, "/auth/register", gin.H{
		"email":      "alice@example.com",
		"password":   "secret123",
		"first_name": "Alice",
		"last_name":  "Smith",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.Refresh)

	// The access token must name the created user.
	claims, err := token.NewCodec(testSecret).Decode(pair.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	userRepo.AssertExpectations(t)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, _ := newTestRouter(userRepo)

	w := postJSON(router, "/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userRepo.AssertNotCalled(t, "Create")
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, _ := newTestRouter(userRepo)

	user := &models.User{
		ID: 42, Email: "alice@example.com", Password: mustHash(t, "secret123"),
		Role: models.RoleUser, Verified: true,
	}
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil).Once()

	w := postJSON(router, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpass",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, models.ErrCodeWrongCredentials, errResp.Code)
	assert.Equal(t, "Wrong email or password", errResp.Message)
}

func TestRefreshEndpoint(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, authSvc := newTestRouter(userRepo)

	user := &models.User{ID: 42, Email: "alice@example.com", Role: models.RoleUser, Verified: true}
	refresh, err := authSvc.IssueRefreshToken(user)
	require.NoError(t, err)

	userRepo.On("GetByID", mock.Anything, int64(42)).Return(user, nil).Once()

	w := postJSON(router, "/auth/refresh", gin.H{"refresh": refresh}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := token.NewCodec(testSecret).Decode(resp.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.TokenType)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRefreshEndpoint_AccessTokenRejected(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, authSvc := newTestRouter(userRepo)

	user := &models.User{ID: 42, Role: models.RoleUser, Verified: true}
	access, err := authSvc.IssueAccessToken(user)
	require.NoError(t, err)

	w := postJSON(router, "/auth/refresh", gin.H{"refresh": access}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "That token is Invalid", errResp.Message)
}

func TestGetMe(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, authSvc := newTestRouter(userRepo)

	user := &models.User{
		ID: 42, Email: "alice@example.com", FirstName: "Alice", LastName: "Smith",
		Role: models.RoleUser, Verified: true,
	}
	access, err := authSvc.IssueAccessToken(user)
	require.NoError(t, err)

	userRepo.On("GetByID", mock.Anything, int64(42)).Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp meResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "Alice", resp.FirstName)
}

func TestGetMe_NoToken(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, _ := newTestRouter(userRepo)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe_BannedUser(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, authSvc := newTestRouter(userRepo)

	user := &models.User{ID: 42, Role: models.RoleUser, Verified: true}
	access, err := authSvc.IssueAccessToken(user)
	require.NoError(t, err)

	banned := *user
	banned.Banned = true
	userRepo.On("GetByID", mock.Anything, int64(42)).Return(&banned, nil).Once()

	// A still-valid token stops working the moment the user is banned.
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe_MalformedHeader(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, _ := newTestRouter(userRepo)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsers_RequiresAdmin(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	router, authSvc := newTestRouter(userRepo)

	user := &models.User{ID: 42, Role: models.RoleUser, Verified: true}
	access, err := authSvc.IssueAccessToken(user)
	require.NoError(t, err)

	userRepo.On("GetByID", mock.Anything, int64(42)).Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Forbidden", errResp.Message)
}
