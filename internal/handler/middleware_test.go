package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ticket-server/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withIdentity injects a user into the request context, standing in for
// AuthMiddleware.
func withIdentity(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(identityKey, user)
		}
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"regular user", &models.User{ID: 3, Role: models.RoleUser}, http.StatusForbidden},
		{"organizer", &models.User{ID: 3, Role: models.RoleOrganizer}, http.StatusForbidden},
		{"admin", &models.User{ID: 9, Role: models.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/protected", withIdentity(tt.user), RequireAdmin(), okHandler)

			w := performRequest(router, http.MethodGet, "/protected")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		target     string
		wantStatus int
	}{
		{"no identity", nil, "7", http.StatusUnauthorized},
		{"other user", &models.User{ID: 3, Role: models.RoleUser}, "7", http.StatusForbidden},
		{"self", &models.User{ID: 3, Role: models.RoleUser}, "3", http.StatusOK},
		{"admin on anyone", &models.User{ID: 9, Role: models.RoleAdmin}, "7", http.StatusOK},
		{"bad target id", &models.User{ID: 3, Role: models.RoleUser}, "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/users/:user_id", withIdentity(tt.user), RequireSelfOrAdmin("user_id"), okHandler)

			w := performRequest(router, http.MethodGet, "/users/"+tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireOrganizer(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"regular user", &models.User{ID: 3, Role: models.RoleUser}, http.StatusForbidden},
		// Admins cannot create events, only organizers can.
		{"admin", &models.User{ID: 9, Role: models.RoleAdmin}, http.StatusForbidden},
		{"organizer", &models.User{ID: 5, Role: models.RoleOrganizer}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/events", withIdentity(tt.user), RequireOrganizer(), okHandler)

			w := performRequest(router, http.MethodPost, "/events")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireNotBanned(t *testing.T) {
	router := gin.New()
	banned := &models.User{ID: 5, Role: models.RoleOrganizer, Banned: true}
	router.POST("/events", withIdentity(banned), RequireNotBanned(), okHandler)

	w := performRequest(router, http.MethodPost, "/events")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth(t *testing.T) {
	router := gin.New()
	router.GET("/me", withIdentity(nil), RequireAuth(), okHandler)

	w := performRequest(router, http.MethodGet, "/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
