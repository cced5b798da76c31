package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticket-server/internal/models"
)

// @Summary List all events
// @Tags events
// @Produce json
// @Success 200 {array} models.Event "All events"
// @Router /events/ [get]
func (h *EventHandler) listEvents(c *gin.Context) {
	events, err := h.eventService.GetAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} models.Event "Event"
// @Failure 404 {object} models.ErrorResponse "Event not found"
// @Router /events/{event_id} [get]
func (h *EventHandler) getEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil {
		handleServiceError(c, models.ErrInvalidInput)
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Create an event
// @Description Creates a new event owned by the authenticated organizer
// @Tags events
// @Accept json
// @Produce json
// @Param request body eventRequest true "Event data"
// @Success 201 {object} models.Event "Created event"
// @Failure 403 {object} models.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /events/ [post]
func (h *EventHandler) createEvent(c *gin.Context) {
	organizer := identity(c)
	if organizer == nil {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		TicketPrice: req.TicketPrice,
		TicketCount: req.TicketCount,
		Location:    req.Location,
		OrganizerID: organizer.ID,
	}

	if err := h.eventService.Create(c.Request.Context(), event); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}
