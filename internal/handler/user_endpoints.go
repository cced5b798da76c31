package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticket-server/internal/models"
	"ticket-server/internal/service"
)

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		handleServiceError(c, models.ErrInvalidInput)
		return 0, false
	}
	return id, true
}

// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {array} userResponse "All users"
// @Failure 403 {object} models.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /users/ [get]
func (h *AuthHandler) listUsers(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, newUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} meResponse "Profile"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /users/me [get]
func (h *AuthHandler) getMe(c *gin.Context) {
	user := identity(c)
	if user == nil {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, meResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} userResponse "User"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{user_id} [get]
func (h *AuthHandler) getUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body updateUserRequest true "Replacement fields"
// @Success 204 "Updated"
// @Failure 400 {object} models.ErrorResponse "Invalid request data"
// @Security BearerAuth
// @Router /users/{user_id} [put]
func (h *AuthHandler) updateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	err := h.userService.Update(c.Request.Context(), id, service.UserUpdateParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Change a user's password
// @Tags users
// @Accept json
// @Param user_id path int true "User ID"
// @Param request body changePasswordRequest true "New password"
// @Success 204 "Password changed"
// @Failure 400 {object} models.ErrorResponse "Invalid request data"
// @Security BearerAuth
// @Router /users/{user_id}/password [post]
func (h *AuthHandler) changePassword(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), id, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Ban a user
// @Tags users
// @Param user_id path int true "User ID"
// @Success 204 "Banned"
// @Failure 400 {object} models.ErrorResponse "Already banned or self-ban"
// @Security BearerAuth
// @Router /users/{user_id}/ban [post]
func (h *AuthHandler) banUser(c *gin.Context) {
	h.setBanStatus(c, true)
}

// @Summary Unban a user
// @Tags users
// @Param user_id path int true "User ID"
// @Success 204 "Unbanned"
// @Failure 400 {object} models.ErrorResponse "Already unbanned or self-unban"
// @Security BearerAuth
// @Router /users/{user_id}/unban [post]
func (h *AuthHandler) unbanUser(c *gin.Context) {
	h.setBanStatus(c, false)
}

func (h *AuthHandler) setBanStatus(c *gin.Context, banned bool) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	actor := identity(c)
	if actor == nil {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	if err := h.userService.SetBanStatus(c.Request.Context(), id, banned, actor.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Change a user's role
// @Tags users
// @Accept json
// @Param user_id path int true "User ID"
// @Param request body changeRoleRequest true "New role"
// @Success 204 "Role changed"
// @Failure 400 {object} models.ErrorResponse "Invalid role"
// @Security BearerAuth
// @Router /users/{user_id}/role [post]
func (h *AuthHandler) changeRole(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.ChangeRole(c.Request.Context(), id, req.Role); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete a user
// @Tags users
// @Param user_id path int true "User ID"
// @Success 204 "Deleted"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{user_id} [delete]
func (h *AuthHandler) deleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
