package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/j4ckson185/apk/internal/core/ports"
)

// Client implements ports.MarketplaceClient over the marketplace's REST API.
//
// Outbound calls pass a rate limiter and a circuit breaker. Requests the
// marketplace explicitly refuses (4xx) count as business rejections, not as
// breaker failures; only transport errors and 5xx responses trip it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenProvider
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a marketplace client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL string, tokens TokenProvider, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger = logger.With("component", "marketplace_client")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "marketplace",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		breaker:    breaker,
		logger:     logger,
	}
}

// DispatchOrder tells the marketplace the courier is on the way.
func (c *Client) DispatchOrder(ctx context.Context, marketplaceOrderID string) error {
	path := fmt.Sprintf("/order/v1.0/orders/%s/dispatch", marketplaceOrderID)
	return c.post(ctx, path, nil)
}

// VerifyDeliveryCode confirms the hand-off code with the marketplace.
func (c *Client) VerifyDeliveryCode(ctx context.Context, marketplaceOrderID string, code string) error {
	path := fmt.Sprintf("/order/v1.0/orders/%s/verifyDeliveryCode", marketplaceOrderID)
	return c.post(ctx, path, map[string]string{"code": code})
}

// post runs one rate-limited, breaker-guarded request. A 401 invalidates the
// cached token and retries once with a fresh one.
func (c *Client) post(ctx context.Context, path string, payload any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		status, body, reqErr := c.send(ctx, path, payload)
		if reqErr != nil {
			return nil, reqErr
		}

		if status == http.StatusUnauthorized {
			c.tokens.Invalidate()
			status, body, reqErr = c.send(ctx, path, payload)
			if reqErr != nil {
				return nil, reqErr
			}
		}

		switch {
		case status >= 200 && status < 300:
			return nil, nil
		case status >= 400 && status < 500:
			// A refusal is an answer, not an outage.
			return &ports.MarketplaceRejectedError{
				StatusCode: status,
				Message:    rejectionMessage(body),
			}, nil
		default:
			return nil, fmt.Errorf("marketplace returned status %d", status)
		}
	})
	if err != nil {
		return fmt.Errorf("marketplace request %s: %w", path, err)
	}

	if rejection, ok := result.(*ports.MarketplaceRejectedError); ok && rejection != nil {
		return rejection
	}
	return nil
}

// send performs a single authenticated POST and returns the status and body.
func (c *Client) send(ctx context.Context, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("obtaining token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

// rejectionMessage extracts the marketplace's own message from a refusal
// body, falling back to the raw body text.
func rejectionMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return string(bytes.TrimSpace(body))
}
