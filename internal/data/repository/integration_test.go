//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type fixture struct {
	db      database.PgxIface
	repo    *Repository
	tx      database.Transactor
	user    entity.User
	event   entity.Event
}

func setupPostgres(t *testing.T) database.PgxIface {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("tickets"),
		postgres.WithUsername("tickets"),
		postgres.WithPassword("tickets"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(connStr))

	db, err := database.Connect(ctx, connStr, 20)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := setupPostgres(t)
	repo := NewRepository(db, zap.NewNop())

	user := entity.User{
		Base:           entity.NewBase(),
		FullName:       "Admin",
		Username:       "admin",
		Email:          "admin@example.com",
		PasswordHash:   "x",
		Role:           entity.RoleAdmin,
		ProfilePicture: entity.DefaultProfilePicture,
		IsActive:       true,
	}
	require.NoError(t, repo.User.Create(ctx, &user))

	category := entity.Category{Base: entity.NewBase(), Name: "Music"}
	require.NoError(t, repo.Category.Create(ctx, &category))

	start := time.Now().Add(24 * time.Hour).UTC()
	event := entity.Event{
		Base:       entity.NewBase(),
		Name:       "Jazz Night",
		Slug:       "jazz-night",
		StartDate:  start,
		EndDate:    start.Add(3 * time.Hour),
		CategoryID: category.ID,
		CreatedBy:  user.ID,
		Location:   entity.Location{Region: 3171, Coordinates: [2]float64{-6.26, 106.81}},
	}
	require.NoError(t, repo.Event.Create(ctx, &event))

	return &fixture{db: db, repo: repo, tx: database.NewTransactor(db), user: user, event: event}
}

func (f *fixture) ticket(t *testing.T, quantity int) entity.Ticket {
	t.Helper()
	ticket := entity.Ticket{
		Base:     entity.NewBase(),
		EventID:  f.event.ID,
		Name:     "Regular",
		Price:    decimal.NewFromInt(125000),
		Quantity: quantity,
	}
	require.NoError(t, f.repo.Ticket.Create(context.Background(), &ticket))
	return ticket
}

func (f *fixture) order(t *testing.T, ticket entity.Ticket, code string, quantity int) entity.Order {
	t.Helper()
	order := entity.Order{
		Base:      entity.NewBase(),
		OrderID:   code,
		CreatedBy: f.user.ID,
		EventID:   ticket.EventID,
		TicketID:  ticket.ID,
		Quantity:  quantity,
		Total:     ticket.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:    entity.OrderStatusPending,
		Payment:   entity.PaymentLink{Token: "tok-" + code, RedirectURL: "https://pay.example.com/" + code},
	}
	require.NoError(t, f.repo.Order.Create(context.Background(), &order))
	return order
}

func TestIntegration_DecrementStockNeverNegative(t *testing.T) {
	f := newFixture(t)
	ticket := f.ticket(t, 10)

	var (
		wg       sync.WaitGroup
		ok       atomic.Int64
		rejected atomic.Int64
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.repo.Ticket.DecrementStock(context.Background(), ticket.ID, 3)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, err := f.repo.Ticket.FindByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, ok.Load())
	assert.EqualValues(t, 9, rejected.Load())
	assert.Equal(t, 1, stored.Quantity)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(125000)))
}

func TestIntegration_CompleteRollsBackTogether(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ticket := f.ticket(t, 5)
	order := f.order(t, ticket, "AB12C", 2)

	require.NoError(t, f.repo.Order.MarkCancelled(ctx, order.OrderID))

	err := f.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := f.repo.Ticket.DecrementStock(ctx, ticket.ID, order.Quantity); err != nil {
			return err
		}
		return f.repo.Order.MarkCompleted(ctx, order.OrderID, []entity.Voucher{{VoucherID: "V1AAA"}})
	})
	assert.ErrorIs(t, err, ErrStatusChanged)

	stored, err := f.repo.Ticket.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Quantity)
}

func TestIntegration_OrderLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ticket := f.ticket(t, 5)
	order := f.order(t, ticket, "ZX9QW", 2)

	vouchers := []entity.Voucher{{VoucherID: "AAAAA"}, {VoucherID: "BBBBB"}}
	require.NoError(t, f.repo.Order.MarkCompleted(ctx, order.OrderID, vouchers))
	assert.ErrorIs(t, f.repo.Order.MarkCompleted(ctx, order.OrderID, vouchers), ErrStatusChanged)
	assert.ErrorIs(t, f.repo.Order.MarkCancelled(ctx, order.OrderID), ErrStatusChanged)

	stored, err := f.repo.Order.FindByOrderIDAndUser(ctx, order.OrderID, f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.OrderStatusCompleted, stored.Status)
	assert.Equal(t, vouchers, stored.Vouchers)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("250001")))

	orders, err := f.repo.Order.FindAll(ctx, "ZX", 10, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	require.NoError(t, f.repo.Order.Delete(ctx, order.OrderID))
	assert.ErrorIs(t, f.repo.Order.Delete(ctx, order.OrderID), ErrNotFound)
}

func TestIntegration_QuantityCheckConstraint(t *testing.T) {
	f := newFixture(t)
	ticket := f.ticket(t, 1)

	_, err := f.db.Exec(context.Background(), `UPDATE tickets SET quantity = -1 WHERE id = $1`, ticket.ID)
	assert.True(t, database.IsCheckViolation(err))
}

func TestIntegration_RegionTree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	regencies, err := f.repo.Region.FindRegenciesByProvince(ctx, 31)
	require.NoError(t, err)
	assert.NotEmpty(t, regencies)

	found, err := f.repo.Region.SearchRegencies(ctx, "bandung")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 3273, found[0].ID)
}
