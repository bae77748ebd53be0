package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventcreator/internal/delivery/http/helpers"
	"eventcreator/internal/domain"
)

// GetDraftSuccessResponse is the success response for GET /events/draft/{draftID}.
type GetDraftSuccessResponse struct {
	Success bool          `json:"success"`
	Data    *domain.Draft `json:"data"`
}

// GetEventSuccessResponse is the success response for GET /events/{eventID}.
type GetEventSuccessResponse struct {
	Success bool          `json:"success"`
	Data    *domain.Event `json:"data"`
}

type EventController struct {
	Logger *slog.Logger
	Drafts domain.DraftService
	Events domain.EventService
}

func NewEventController(logger *slog.Logger, drafts domain.DraftService, events domain.EventService) *EventController {
	return &EventController{
		Logger: logger,
		Drafts: drafts,
		Events: events,
	}
}

// SaveDraft godoc
// @Summary Save a draft
// @Description Creates a draft, or overwrites the one named by draftId keeping its creation time.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draft body domain.EventPayload true "Form state"
// @Success 200 {object} domain.DraftSaved
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /events/draft [post]
func (c *EventController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req domain.EventPayload
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	d, err := c.Drafts.SaveDraft(r.Context(), req)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to save draft")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, domain.DraftSaved{
		Success:   true,
		Message:   "Draft saved successfully",
		DraftID:   d.ID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

// GetDraft godoc
// @Summary Get a draft
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param draftID path string true "Draft ID"
// @Success 200 {object} controllers.GetDraftSuccessResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /events/draft/{draftID} [get]
func (c *EventController) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := c.Drafts.GetDraft(r.Context(), r.PathValue("draftID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "Draft not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to load draft")
		return
	}
	helpers.WriteJSONData(w, http.StatusOK, d)
}

// Publish godoc
// @Summary Publish an event
// @Description Publishes the form as an event and deletes the draft it came from. Title and dateTime are required.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.EventPayload true "Form state"
// @Success 201 {object} domain.Published
// @Failure 400 {object} helpers.APIResponse "Event title is required / Date and time is required"
// @Failure 401 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /events [post]
func (c *EventController) Publish(w http.ResponseWriter, r *http.Request) {
	var req domain.EventPayload
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ev, err := c.Events.Publish(r.Context(), req)
	if err != nil {
		var verr domain.ValidationError
		if errors.As(err, &verr) {
			helpers.WriteJSONError(w, http.StatusBadRequest, verr.Message)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to publish event")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, domain.Published{
		Success:     true,
		Message:     "Event published successfully",
		EventID:     ev.EventID,
		EventURL:    ev.EventURL,
		PublishedAt: ev.PublishedAt,
	})
}

// GetEvent godoc
// @Summary Get a published event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := c.Events.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to load event")
		return
	}
	helpers.WriteJSONData(w, http.StatusOK, ev)
}

// Validate godoc
// @Summary Validate an event form
// @Description Returns blocking errors and advisory warnings. Always 200 for a well-formed body.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param form body domain.EventForm true "Form fields"
// @Success 200 {object} domain.ValidationResult
// @Failure 400 {object} helpers.APIResponse
// @Router /events/validate [post]
func (c *EventController) Validate(w http.ResponseWriter, r *http.Request) {
	var req domain.EventForm
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	helpers.WriteJSON(w, http.StatusOK, c.Events.Validate(r.Context(), req))
}
