package adaptor

import (
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create ticket")
		return
	}

	utils.ResponseSuccess(w, "Success create a ticket", ticket)
}

func (h *TicketHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindAll(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "find tickets")
		return
	}

	utils.ResponsePaginated(w, "Success find all tickets", result.Data, result.Pagination)
}

func (h *TicketHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	ticket, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "find ticket")
		return
	}

	utils.ResponseSuccess(w, "Success find a ticket", ticket)
}

// FindAllByEvent handles GET /api/tickets/{eventId}/events
func (h *TicketHandler) FindAllByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uuidParam(w, r, "eventId")
	if !ok {
		return
	}

	tickets, err := h.service.FindAllByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, h.log, err, "find tickets by event")
		return
	}

	utils.ResponseSuccess(w, "Success find all tickets by an event", tickets)
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.TicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "update ticket")
		return
	}

	utils.ResponseSuccess(w, "Success update a ticket", ticket)
}

func (h *TicketHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	ticket, err := h.service.Remove(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "remove ticket")
		return
	}

	utils.ResponseSuccess(w, "Success remove a ticket", ticket)
}
