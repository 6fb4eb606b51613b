package adaptor

import (
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// Create handles POST /api/events; the caller becomes the event's creator.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "create event")
		return
	}

	utils.ResponseSuccess(w, "Success create event", event)
}

func (h *EventHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindAll(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "find events")
		return
	}

	utils.ResponsePaginated(w, "Success find all events", result.Data, result.Pagination)
}

func (h *EventHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "find event")
		return
	}

	utils.ResponseSuccess(w, "Success find one event", event)
}

// FindOneBySlug handles GET /api/events/{slug}/slug
func (h *EventHandler) FindOneBySlug(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.FindOneBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, h.log, err, "find event by slug")
		return
	}

	utils.ResponseSuccess(w, "Success find one by slug event", event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "Success update event", event)
}

func (h *EventHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.service.Remove(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "remove event")
		return
	}

	utils.ResponseSuccess(w, "Success remove event", event)
}
