package handler

import (
	"github.com/gin-gonic/gin"

	"ticket-server/internal/config"
	"ticket-server/internal/middleware"
	"ticket-server/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService service.AuthService, userService service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine, limiter *middleware.RateLimiter) {
	authGroup := router.Group("/auth")
	authGroup.Use(limiter.Middleware())
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/refresh", h.refresh)
	}

	users := router.Group("/users")
	users.Use(h.AuthMiddleware())
	{
		users.GET("/", RequireAdmin(), h.listUsers)
		users.GET("/me", RequireAuth(), h.getMe)
		users.GET("/:user_id", RequireAdmin(), h.getUser)
		users.PUT("/:user_id", RequireSelfOrAdmin("user_id"), h.updateUser)
		users.POST("/:user_id/password", RequireSelfOrAdmin("user_id"), h.changePassword)
		users.POST("/:user_id/ban", RequireAdmin(), h.banUser)
		users.POST("/:user_id/unban", RequireAdmin(), h.unbanUser)
		users.POST("/:user_id/role", RequireAdmin(), h.changeRole)
		users.DELETE("/:user_id", RequireAdmin(), h.deleteUser)
	}
}

func (h *EventHandler) RegisterRoutes(router *gin.Engine, auth *AuthHandler) {
	events := router.Group("/events")
	{
		events.GET("/", h.listEvents)
		events.GET("/:event_id", h.getEvent)
		events.POST("/", auth.AuthMiddleware(), RequireNotBanned(), RequireOrganizer(), h.createEvent)
	}
}
