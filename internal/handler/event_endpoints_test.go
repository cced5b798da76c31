package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticket-server/internal/models"
	"ticket-server/internal/repository/mocks"
	"ticket-server/internal/service"
)

// newEventTestRouter wires the event routes with a stubbed identity instead
// of the full auth stack.
func newEventTestRouter(eventRepo *mocks.EventRepository, user *models.User) *gin.Engine {
	eventSvc := service.NewEventService(eventRepo, zap.NewNop())
	h := NewEventHandler(eventSvc)

	router := gin.New()
	events := router.Group("/events")
	events.GET("/", h.listEvents)
	events.GET("/:event_id", h.getEvent)
	events.POST("/", withIdentity(user), RequireNotBanned(), RequireOrganizer(), h.createEvent)
	return router
}

func TestListEvents(t *testing.T) {
	eventRepo := new(mocks.EventRepository)
	router := newEventTestRouter(eventRepo, nil)

	eventRepo.On("GetAll", mock.Anything).Return([]models.Event{
		{ID: 1, Title: "Go Conference", Status: models.EventNotStarted},
		{ID: 2, Title: "Jazz Night", Status: models.EventFinished},
	}, nil).Once()

	w := performRequest(router, http.MethodGet, "/events/")
	require.Equal(t, http.StatusOK, w.Code)

	var events []models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 2)
	assert.Equal(t, "Go Conference", events[0].Title)
}

func TestGetEvent_NotFound(t *testing.T) {
	eventRepo := new(mocks.EventRepository)
	router := newEventTestRouter(eventRepo, nil)

	eventRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, models.ErrEventNotFound).Once()

	w := performRequest(router, http.MethodGet, "/events/99")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, models.ErrCodeEventNotFound, errResp.Code)
}

func TestGetEvent_BadID(t *testing.T) {
	eventRepo := new(mocks.EventRepository)
	router := newEventTestRouter(eventRepo, nil)

	w := performRequest(router, http.MethodGet, "/events/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEvent(t *testing.T) {
	eventRepo := new(mocks.EventRepository)
	organizer := &models.User{ID: 5, Role: models.RoleOrganizer}
	router := newEventTestRouter(eventRepo, organizer)

	eventRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.Event) bool {
		return e.Title == "Go Conference" &&
			e.OrganizerID == 5 &&
			e.Status == models.EventNotStarted
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Event).ID = 1
	}).Return(nil).Once()

	w := postJSON(router, "/events/", gin.H{
		"title":        "Go Conference",
		"description":  "A conference about Go",
		"category":     "tech",
		"starts_at":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"ends_at":      time.Now().Add(26 * time.Hour).Format(time.RFC3339),
		"ticket_price": 25.0,
		"ticket_count": 300,
		"location":     "Berlin",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var event models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, int64(1), event.ID)
	assert.Equal(t, int64(5), event.OrganizerID)
	eventRepo.AssertExpectations(t)
}

func TestCreateEvent_ForbiddenForUsers(t *testing.T) {
	eventRepo := new(mocks.EventRepository)
	user := &models.User{ID: 3, Role: models.RoleUser}
	router := newEventTestRouter(eventRepo, user)

	w := postJSON(router, "/events/", gin.H{"title": "x"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	eventRepo.AssertNotCalled(t, "Create")
}

func TestCreateEvent_MissingFields(t *testing.T) {
	eventRepo := new(mocks.EventRepository)
	organizer := &models.User{ID: 5, Role: models.RoleOrganizer}
	router := newEventTestRouter(eventRepo, organizer)

	w := postJSON(router, "/events/", gin.H{"title": "Go Conference"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	eventRepo.AssertNotCalled(t, "Create")
}
