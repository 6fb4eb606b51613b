package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) order(args mock.Arguments) (*response.OrderResponse, error) {
	o, _ := args.Get(0).(*response.OrderResponse)
	return o, args.Error(1)
}

func (m *mockOrderService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	return m.order(m.Called(ctx, userID, req))
}

func (m *mockOrderService) Complete(ctx context.Context, orderID string, caller usecase.Caller) (*response.OrderResponse, error) {
	return m.order(m.Called(ctx, orderID, caller))
}

func (m *mockOrderService) Cancel(ctx context.Context, orderID string, caller usecase.Caller) (*response.OrderResponse, error) {
	return m.order(m.Called(ctx, orderID, caller))
}

func (m *mockOrderService) Remove(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *mockOrderService) FindOne(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *mockOrderService) FindOneForMember(ctx context.Context, orderID string, userID uuid.UUID) (*response.OrderResponse, error) {
	return m.order(m.Called(ctx, orderID, userID))
}

func (m *mockOrderService) FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*response.PaginatedResponse[response.OrderResponse])
	return p, args.Error(1)
}

func (m *mockOrderService) FindAllByMember(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	args := m.Called(ctx, userID, req)
	p, _ := args.Get(0).(*response.PaginatedResponse[response.OrderResponse])
	return p, args.Error(1)
}

type envelope struct {
	Meta       utils.Meta        `json:"meta"`
	Data       json.RawMessage   `json:"data"`
	Pagination *utils.Pagination `json:"pagination"`
}

func orderRouter(h *OrderHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/orders", h.Create)
	r.Get("/api/orders", h.FindAll)
	r.Get("/api/orders/{orderId}", h.FindOne)
	r.Put("/api/orders/{orderId}/completed", h.Complete)
	r.Put("/api/orders/{orderId}/cancelled", h.Cancel)
	return r
}

func serve(t *testing.T, handler http.Handler, req *http.Request, userID uuid.UUID, role entity.UserRole) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	if userID != uuid.Nil {
		req = req.WithContext(utils.SetUserContext(req.Context(), userID, string(role)))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestOrderHandler_Create(t *testing.T) {
	svc := &mockOrderService{}
	handler := orderRouter(NewOrderHandler(svc, zap.NewNop()))
	member := uuid.New()

	created := &response.OrderResponse{OrderID: "AB12C", Status: entity.OrderStatusPending, Total: 300000}
	svc.On("Create", mock.Anything, member, mock.MatchedBy(func(req *request.CreateOrderRequest) bool {
		return req.Quantity == 2
	})).Return(created, nil)

	body := `{"events":"` + uuid.NewString() + `","ticket":"` + uuid.NewString() + `","quantity":2}`
	rec, env := serve(t, handler, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)), member, entity.RoleMember)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got response.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "AB12C", got.OrderID)
	svc.AssertExpectations(t)
}

func TestOrderHandler_Create_InsufficientStock(t *testing.T) {
	svc := &mockOrderService{}
	handler := orderRouter(NewOrderHandler(svc, zap.NewNop()))
	member := uuid.New()

	svc.On("Create", mock.Anything, member, mock.Anything).
		Return(nil, apperror.InsufficientStock("ticket quantity is not enough"))

	body := `{"events":"` + uuid.NewString() + `","ticket":"` + uuid.NewString() + `","quantity":99}`
	rec, env := serve(t, handler, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)), member, entity.RoleMember)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"insufficient_stock"}`, string(env.Data))
}

func TestOrderHandler_Create_BadBody(t *testing.T) {
	svc := &mockOrderService{}
	handler := orderRouter(NewOrderHandler(svc, zap.NewNop()))

	rec, _ := serve(t, handler, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{")), uuid.New(), entity.RoleMember)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_RequiresUser(t *testing.T) {
	handler := orderRouter(NewOrderHandler(&mockOrderService{}, zap.NewNop()))

	rec, _ := serve(t, handler, httptest.NewRequest(http.MethodPut, "/api/orders/AB12C/completed", nil), uuid.Nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderHandler_FindOne_ScopesMembers(t *testing.T) {
	svc := &mockOrderService{}
	handler := orderRouter(NewOrderHandler(svc, zap.NewNop()))
	admin, member := uuid.New(), uuid.New()

	svc.On("FindOne", mock.Anything, "AB12C").Return(&response.OrderResponse{OrderID: "AB12C"}, nil)
	svc.On("FindOneForMember", mock.Anything, "AB12C", member).Return(nil, apperror.NotFound("order not found"))

	rec, _ := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/orders/AB12C", nil), admin, entity.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/orders/AB12C", nil), member, entity.RoleMember)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}

func TestOrderHandler_Complete(t *testing.T) {
	svc := &mockOrderService{}
	handler := orderRouter(NewOrderHandler(svc, zap.NewNop()))
	admin := uuid.New()
	caller := usecase.Caller{UserID: admin, Role: string(entity.RoleAdmin)}

	// the order belongs to a member; the admin resolves it all the same
	completed := &response.OrderResponse{
		OrderID:   "AB12C",
		CreatedBy: uuid.NewString(),
		Status:    entity.OrderStatusCompleted,
		Vouchers:  []response.VoucherResponse{{VoucherID: "Q7X2M"}, {VoucherID: "Z9K4P"}},
	}
	svc.On("Complete", mock.Anything, "AB12C", caller).Return(completed, nil).Once()
	svc.On("Complete", mock.Anything, "AB12C", caller).Return(nil, apperror.Conflict("order already completed")).Once()

	rec, env := serve(t, handler, httptest.NewRequest(http.MethodPut, "/api/orders/AB12C/completed", nil), admin, entity.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	var got response.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Vouchers, 2)

	rec, env = serve(t, handler, httptest.NewRequest(http.MethodPut, "/api/orders/AB12C/completed", nil), admin, entity.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"conflict"}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestOrderHandler_CompleteAndCancel_AdminOnly(t *testing.T) {
	svc := &mockOrderService{}
	h := NewOrderHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.With(middleware.ACL(zap.NewNop(), string(entity.RoleAdmin))).Put("/api/orders/{orderId}/completed", h.Complete)
	r.With(middleware.ACL(zap.NewNop(), string(entity.RoleAdmin))).Put("/api/orders/{orderId}/cancelled", h.Cancel)

	member := uuid.New()
	for _, path := range []string{"/api/orders/AB12C/completed", "/api/orders/AB12C/cancelled"} {
		rec, _ := serve(t, r, httptest.NewRequest(http.MethodPut, path, nil), member, entity.RoleMember)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	admin := uuid.New()
	cancelled := &response.OrderResponse{OrderID: "AB12C", Status: entity.OrderStatusCancelled}
	svc.On("Cancel", mock.Anything, "AB12C", usecase.Caller{UserID: admin, Role: string(entity.RoleAdmin)}).Return(cancelled, nil)

	rec, _ := serve(t, r, httptest.NewRequest(http.MethodPut, "/api/orders/AB12C/cancelled", nil), admin, entity.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertExpectations(t)
}

func TestOrderHandler_FindAll_Paginated(t *testing.T) {
	svc := &mockOrderService{}
	handler := orderRouter(NewOrderHandler(svc, zap.NewNop()))

	page := response.NewPaginatedResponse([]response.OrderResponse{{OrderID: "AB12C"}}, 2, 1, 3)
	svc.On("FindAll", mock.Anything, &request.PaginatedRequest{Page: 2, Limit: 1, Search: "AB"}).Return(page, nil)

	rec, env := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/orders?page=2&limit=1&search=AB", nil), uuid.New(), entity.RoleAdmin)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, utils.Pagination{Current: 2, Total: 3, TotalPages: 3}, *env.Pagination)
}
