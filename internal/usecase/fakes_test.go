package usecase

import (
	"context"
	"sync"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore backs the ticket and order fakes. DecrementStock keeps the
// same guarantee as the SQL conditional update: it never goes below zero.
type memStore struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]entity.Ticket
	orders  map[string]entity.Order
}

func newMemStore() *memStore {
	return &memStore{
		tickets: make(map[uuid.UUID]entity.Ticket),
		orders:  make(map[string]entity.Order),
	}
}

func (s *memStore) addTicket(eventID uuid.UUID, price int64, quantity int) entity.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := entity.Ticket{
		Base:     entity.NewBase(),
		EventID:  eventID,
		Name:     "Regular",
		Price:    decimal.NewFromInt(price),
		Quantity: quantity,
	}
	s.tickets[t.ID] = t
	return t
}

func (s *memStore) stock(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets[id].Quantity
}

func (s *memStore) setPrice(id uuid.UUID, price int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tickets[id]
	t.Price = decimal.NewFromInt(price)
	s.tickets[id] = t
}

func (s *memStore) order(orderID string) (entity.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	return o, ok
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memSnapshot struct {
	tickets map[uuid.UUID]entity.Ticket
	orders  map[string]entity.Order
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := memSnapshot{
		tickets: make(map[uuid.UUID]entity.Ticket, len(s.tickets)),
		orders:  make(map[string]entity.Order, len(s.orders)),
	}
	for k, v := range s.tickets {
		snap.tickets[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = snap.tickets
	s.orders = snap.orders
}

// memTx serialises transactions and rolls the store back when fn fails.
type memTx struct {
	mu    sync.Mutex
	store *memStore
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type memTickets struct {
	repository.TicketRepository
	store *memStore
}

func (r *memTickets) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.tickets[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *memTickets) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.tickets[id]
	if !ok {
		return repository.ErrTicketNotFound
	}
	if t.Quantity < quantity {
		return repository.ErrInsufficientStock
	}
	t.Quantity -= quantity
	r.store.tickets[id] = t
	return nil
}

type memOrders struct {
	repository.OrderRepository
	store *memStore

	// markCompletedErr, when set, is returned after the status check passes.
	markCompletedErr error
}

func (r *memOrders) Create(_ context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[order.OrderID] = cloneOrder(*order)
	return nil
}

func (r *memOrders) FindByOrderID(_ context.Context, orderID string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[orderID]
	if !ok {
		return nil, nil
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *memOrders) FindByOrderIDAndUser(ctx context.Context, orderID string, userID uuid.UUID) (*entity.Order, error) {
	o, err := r.FindByOrderID(ctx, orderID)
	if err != nil || o == nil || o.CreatedBy != userID {
		return nil, err
	}
	return o, nil
}

func (r *memOrders) MarkCompleted(_ context.Context, orderID string, vouchers []entity.Voucher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[orderID]
	if !ok || o.Status != entity.OrderStatusPending {
		return repository.ErrStatusChanged
	}
	if r.markCompletedErr != nil {
		return r.markCompletedErr
	}
	o.Status = entity.OrderStatusCompleted
	o.Vouchers = append([]entity.Voucher(nil), vouchers...)
	r.store.orders[orderID] = o
	return nil
}

func (r *memOrders) MarkCancelled(_ context.Context, orderID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[orderID]
	if !ok || o.Status != entity.OrderStatusPending {
		return repository.ErrStatusChanged
	}
	o.Status = entity.OrderStatusCancelled
	r.store.orders[orderID] = o
	return nil
}

func (r *memOrders) Delete(_ context.Context, orderID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[orderID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.orders, orderID)
	return nil
}

func cloneOrder(o entity.Order) entity.Order {
	o.Vouchers = append([]entity.Voucher(nil), o.Vouchers...)
	return o
}

type gatewayFunc func(ctx context.Context, orderID string, amount decimal.Decimal) (*entity.PaymentLink, error)

func (f gatewayFunc) CreateLink(ctx context.Context, orderID string, amount decimal.Decimal) (*entity.PaymentLink, error) {
	return f(ctx, orderID, amount)
}

func okGateway() gatewayFunc {
	return func(_ context.Context, orderID string, _ decimal.Decimal) (*entity.PaymentLink, error) {
		return &entity.PaymentLink{
			Token:       "token-" + orderID,
			RedirectURL: "https://pay.example.com/" + orderID,
		}, nil
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
