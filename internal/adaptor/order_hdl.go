package adaptor

import (
	"net/http"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Create handles POST /api/orders (member)
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, h.log, err, "create order")
		return
	}

	utils.ResponseSuccess(w, "Success to create an order", order)
}

// FindAll handles GET /api/orders (admin)
func (h *OrderHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindAll(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "find orders")
		return
	}

	utils.ResponsePaginated(w, "Success find all orders", result.Data, result.Pagination)
}

// FindOne handles GET /api/orders/{orderId}. Members only see their own orders.
func (h *OrderHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderId")

	role, _ := utils.GetRoleFromContext(r.Context())
	var (
		order *response.OrderResponse
		err   error
	)
	if role == string(entity.RoleAdmin) {
		order, err = h.service.FindOne(r.Context(), orderID)
	} else {
		order, err = h.service.FindOneForMember(r.Context(), orderID, userID)
	}
	if err != nil {
		writeError(w, h.log, err, "find order")
		return
	}

	utils.ResponseSuccess(w, "Success to find one an order", order)
}

// FindAllByMember handles GET /api/orders-history (member)
func (h *OrderHandler) FindAllByMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.service.FindAllByMember(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "find order history")
		return
	}

	utils.ResponsePaginated(w, "Success find all orders", result.Data, result.Pagination)
}

// Complete handles PUT /api/orders/{orderId}/completed (admin)
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	order, err := h.service.Complete(r.Context(), chi.URLParam(r, "orderId"), caller)
	if err != nil {
		writeError(w, h.log, err, "complete order")
		return
	}

	utils.ResponseSuccess(w, "Success to complete an order", order)
}

// Cancel handles PUT /api/orders/{orderId}/cancelled (admin)
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	order, err := h.service.Cancel(r.Context(), chi.URLParam(r, "orderId"), caller)
	if err != nil {
		writeError(w, h.log, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "Success to cancel an order", order)
}

// Remove handles DELETE /api/orders/{orderId} (admin)
func (h *OrderHandler) Remove(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Remove(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, h.log, err, "remove order")
		return
	}

	utils.ResponseSuccess(w, "Success to remove an order", order)
}

func currentCaller(w http.ResponseWriter, r *http.Request) (usecase.Caller, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return usecase.Caller{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Caller{UserID: userID, Role: role}, true
}
