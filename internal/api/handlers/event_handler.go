package handlers

import (
	"net/http"

	"github.com/PoodingDev/Evento-BE/internal/api/dto"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/domain/event"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service event.Service
}

func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

func toEventResponse(ev *event.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          ev.ID,
		CalendarID:  ev.CalendarID,
		Title:       ev.Title,
		Description: ev.Description,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Visibility:  string(ev.Visibility()),
		Location:    ev.Location,
		CreatedBy:   ev.CreatedBy,
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func toEventResponses(events []event.Event) []dto.EventResponse {
	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i]))
	}
	return resp
}

// eventID parses the path id, rejecting anything but canonical UUIDs.
func eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := event.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new event on a calendar the caller administers
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	visibility, err := event.ParseVisibility(req.Visibility)
	if err != nil {
		respondError(c, err)
		return
	}

	ev, err := h.service.CreateEvent(c.Request.Context(), userID, event.CreateEventInput{
		CalendarID:  req.CalendarID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Visibility:  visibility,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(ev))
}

// Get returns one event if the caller may read it
func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	ev, err := h.service.GetEvent(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(ev))
}

// Update modifies an event; calendar admin only
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := event.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	}
	if req.Visibility != nil {
		visibility, err := event.ParseVisibility(*req.Visibility)
		if err != nil {
			respondError(c, err)
			return
		}
		input.Visibility = &visibility
	}

	ev, err := h.service.UpdateEvent(c.Request.Context(), userID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(ev))
}

// Delete removes an event; calendar admin only
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByCalendar returns the calendar's events the caller may read
func (h *EventHandler) ListByCalendar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	events, err := h.service.ListCalendarEvents(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponses(events))
}

// ListPublic returns all public events
func (h *EventHandler) ListPublic(c *gin.Context) {
	events, err := h.service.ListPublicEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponses(events))
}

// ListVisible returns every event the caller can see
func (h *EventHandler) ListVisible(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	events, err := h.service.ListVisibleEvents(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponses(events))
}

// ListActive returns events of the caller's actively subscribed calendars
func (h *EventHandler) ListActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	events, err := h.service.ListActiveCalendarEvents(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponses(events))
}

// Upload ingests a CSV or Excel file of events
func (h *EventHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "file form field is required"})
		return
	}
	defer file.Close()

	report, err := h.service.UploadEvents(c.Request.Context(), userID, event.Upload{
		Filename: header.Filename,
		Reader:   file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.UploadReportResponse{
		Created: report.Created,
		Updated: report.Updated,
		Failed:  report.Failed,
		Rows:    make([]dto.UploadRowResponse, 0, len(report.Rows)),
	}
	for _, row := range report.Rows {
		r := dto.UploadRowResponse{Row: row.Row, Action: row.Action, Error: row.Error}
		if row.EventID != uuid.Nil {
			r.EventID = row.EventID.String()
		}
		resp.Rows = append(resp.Rows, r)
	}
	c.JSON(http.StatusOK, resp)
}
