// Package payment talks to the Snap-style payment gateway that issues
// payment links for new orders.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"event-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrFractionalAmount   = errors.New("amount is not a whole number")
)

// Gateway issues a payment link for an order. Transport and response
// failures are reported as ErrGatewayUnavailable; callers never retry.
type Gateway interface {
	CreateLink(ctx context.Context, orderID string, amount decimal.Decimal) (*entity.PaymentLink, error)
}

type Config struct {
	TransactionURL string
	ServerKey      string
	Timeout        time.Duration
}

type MidtransClient struct {
	url        string
	authHeader string
	httpClient *http.Client
	log        *zap.Logger
}

type transactionRequest struct {
	TransactionDetails transactionDetails `json:"transaction_details"`
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type transactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func NewMidtransClient(cfg Config, log *zap.Logger) *MidtransClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &MidtransClient{
		url:        cfg.TransactionURL,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.ServerKey+":")),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.With(zap.String("client", "midtrans")),
	}
}

func (c *MidtransClient) CreateLink(ctx context.Context, orderID string, amount decimal.Decimal) (*entity.PaymentLink, error) {
	// gross_amount is an integer on the wire; never truncate a charge
	if !amount.IsInteger() {
		return nil, fmt.Errorf("%w: %s", ErrFractionalAmount, amount)
	}

	body, err := json.Marshal(transactionRequest{
		TransactionDetails: transactionDetails{
			OrderID:     orderID,
			GrossAmount: amount.IntPart(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGatewayUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Payment gateway request failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusCreated {
		c.log.Warn("Payment gateway rejected transaction",
			zap.String("order_id", orderID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var out transactionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}
	if out.Token == "" || out.RedirectURL == "" {
		return nil, fmt.Errorf("%w: incomplete payment link", ErrGatewayUnavailable)
	}

	return &entity.PaymentLink{Token: out.Token, RedirectURL: out.RedirectURL}, nil
}
