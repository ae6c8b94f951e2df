package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/text/currency"

	"teslo/internal/metrics"
)

// StatusCompleted is the order status PayPal reports once the buyer has been charged.
const StatusCompleted = "COMPLETED"

var (
	// ErrAuthorization is returned when no access token could be obtained.
	ErrAuthorization = errors.New("paypal: could not obtain access token")
	// ErrUnavailable is returned when the provider cannot be reached or answers with an error.
	ErrUnavailable = errors.New("paypal: provider unavailable")
)

// Config holds PayPal connection details.
type Config struct {
	ClientID  string
	Secret    string
	OAuthURL  string
	OrdersURL string
	Timeout   time.Duration
}

// OrderStatus is the part of a PayPal order the storefront relies on.
type OrderStatus struct {
	ID       string
	Status   string
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Completed reports whether the buyer has been charged.
func (s *OrderStatus) Completed() bool {
	return s.Status == StatusCompleted
}

// Client talks to the PayPal REST API. All calls go through one circuit breaker.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a new PayPal client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "paypal",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("Circuit breaker %s changed from %s to %s", name, from, to)
			},
		}),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken exchanges the client credentials for a bearer token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	body, err := c.do(ctx, "token", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.cfg.ClientID, c.cfg.Secret)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthorization, err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %w", ErrAuthorization, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthorization)
	}
	return token.AccessToken, nil
}

type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Amount struct {
			CurrencyCode string `json:"currency_code"`
			Value        string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
}

// GetOrder fetches the status and charged amount of the PayPal order transactionID.
func (c *Client) GetOrder(ctx context.Context, accessToken, transactionID string) (*OrderStatus, error) {
	endpoint := strings.TrimRight(c.cfg.OrdersURL, "/") + "/" + url.PathEscape(transactionID)

	body, err := c.do(ctx, "order", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode order %s: %w", ErrUnavailable, transactionID, err)
	}

	status := &OrderStatus{ID: resp.ID, Status: resp.Status}
	if len(resp.PurchaseUnits) == 0 {
		return status, nil
	}

	amount := resp.PurchaseUnits[0].Amount
	if amount.Value != "" {
		status.Amount, err = decimal.NewFromString(amount.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid amount %q for order %s: %w", ErrUnavailable, amount.Value, transactionID, err)
		}
	}
	if amount.CurrencyCode != "" {
		status.Currency, err = currency.ParseISO(amount.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid currency %q for order %s: %w", ErrUnavailable, amount.CurrencyCode, transactionID, err)
		}
	}
	return status, nil
}

// do sends the request built by newReq through the circuit breaker and returns the body of a
// 2xx response.
func (c *Client) do(ctx context.Context, operation string, newReq func() (*http.Request, error)) ([]byte, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := newReq()
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%s request returned status %d", operation, resp.StatusCode)
		}
		return data, nil
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.PaymentProviderRequests.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return body, nil
}
