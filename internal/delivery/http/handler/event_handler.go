package handler

import (
	"net/http"
	"strconv"

	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/event"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUseCase *event.EventUseCase
}

func NewEventHandler(eventUseCase *event.EventUseCase) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
	}
}

// Create registers a new event
// @Summary Create event
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body event.CreateRequest true "Event data"
// @Success 201 {object} domain.Event
// @Failure 400 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.eventUseCase.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns active events
// @Summary List events
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param campus query string false "Campus"
// @Param type query string false "Event type"
// @Success 200 {array} domain.Event
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, err := h.eventUseCase.List(c.Request.Context(), c.Query("campus"), c.Query("type"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Get returns one event
// @Summary Get event
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} ErrorResponse
// @Router /events/{event_id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	found, err := h.eventUseCase.Get(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// ListJoined returns the caller's events
// @Summary List my events
// @Tags events
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Event
// @Router /events/joined [get]
func (h *EventHandler) ListJoined(c *gin.Context) {
	events, err := h.eventUseCase.ListJoined(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Join enrolls the caller in an event
// @Summary Join event
// @Tags events
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /events/{event_id}/join [post]
func (h *EventHandler) Join(c *gin.Context) {
	if err := h.eventUseCase.Join(c.Request.Context(), middleware.UserID(c), c.Param("event_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "joined event"})
}

// Leave removes the caller from an event
// @Summary Leave event
// @Tags events
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Success 200 {object} SuccessResponse
// @Router /events/{event_id}/leave [post]
func (h *EventHandler) Leave(c *gin.Context) {
	if err := h.eventUseCase.Leave(c.Request.Context(), middleware.UserID(c), c.Param("event_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "left event"})
}

// Update edits an event. Creator only
// @Summary Update event
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param request body event.UpdateRequest true "Event update"
// @Success 200 {object} domain.Event
// @Failure 403 {object} ErrorResponse
// @Router /events/{event_id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req event.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.eventUseCase.Update(c.Request.Context(), middleware.UserID(c), c.Param("event_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Cancel cancels an event and notifies participants. Creator only
// @Summary Cancel event
// @Tags events
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /events/{event_id} [delete]
func (h *EventHandler) Cancel(c *gin.Context) {
	if err := h.eventUseCase.Cancel(c.Request.Context(), middleware.UserID(c), c.Param("event_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "event cancelled"})
}
