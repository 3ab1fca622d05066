package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// HTTPGateway talks to the payment provider over HTTP. Calls run through a
// circuit breaker so a dead provider fails fast instead of tying up
// checkout retries.
type HTTPGateway struct {
	baseURL  string
	currency string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[*Session]
}

func NewHTTPGateway(baseURL, currency string, timeout time.Duration) *HTTPGateway {
	settings := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &HTTPGateway{
		baseURL:  baseURL,
		currency: currency,
		client:   &http.Client{Timeout: timeout},
		breaker:  gobreaker.NewCircuitBreaker[*Session](settings),
	}
}

type createSessionRequest struct {
	OrderID  int64  `json:"order_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (g *HTTPGateway) CreateSession(ctx context.Context, order *domain.Order) (*Session, error) {
	session, err := g.breaker.Execute(func() (*Session, error) {
		return g.createSession(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}
	return session, nil
}

func (g *HTTPGateway) createSession(ctx context.Context, order *domain.Order) (*Session, error) {
	payload, err := json.Marshal(createSessionRequest{
		OrderID:  order.ID,
		Amount:   order.Total.String(),
		Currency: g.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}
	return &session, nil
}
