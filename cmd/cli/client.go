package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"pizzabot/internal/api"
	"pizzabot/internal/cart"
	"pizzabot/internal/chat"
	"pizzabot/internal/models"
)

const defaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Field      string `json:"field"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Field)
	}
	return e.Message
}

// Session is the server answer to a new conversation.
type Session struct {
	Token          string     `json:"token"`
	ID             string     `json:"session_id"`
	Language       string     `json:"language"`
	Welcome        chat.Reply `json:"welcome"`
	PaymentMethods []string   `json:"payment_methods"`
}

// CartState is the server view of a session cart.
type CartState struct {
	Items          []cart.Item `json:"items"`
	Total          int64       `json:"total"`
	Currency       string      `json:"currency"`
	PaymentMethods []string    `json:"payment_methods"`
}

type cartResponse struct {
	Reply chat.Reply `json:"reply"`
	Cart  CartState  `json:"cart"`
}

// APIClient talks to the pizzabot HTTP API. Session-bound calls need a token
// from StartSession.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	token      string
}

// NewAPIClient creates a client for baseURL, falling back to PIZZABOT_API_URL
// and then localhost.
func NewAPIClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = os.Getenv("PIZZABOT_API_URL")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &APIClient{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *APIClient) CheckHealth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// StartSession opens a conversation in language and keeps its token.
func (c *APIClient) StartSession(ctx context.Context, language string) (*Session, error) {
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/sessions", map[string]string{"language": language}, &sess); err != nil {
		return nil, err
	}
	c.token = sess.Token
	return &sess, nil
}

// Send posts one chat message.
func (c *APIClient) Send(ctx context.Context, message string) (chat.Reply, error) {
	var reply chat.Reply
	err := c.do(ctx, http.MethodPost, "/api/v1/chat", map[string]string{"message": message}, &reply)
	return reply, err
}

// AddItem adds the named item, or the item on display when name is empty.
func (c *APIClient) AddItem(ctx context.Context, name string) (chat.Reply, error) {
	var resp cartResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/cart/items", map[string]string{"name": name}, &resp)
	return resp.Reply, err
}

// ClearCart empties the session cart.
func (c *APIClient) ClearCart(ctx context.Context) (chat.Reply, error) {
	var resp cartResponse
	err := c.do(ctx, http.MethodDelete, "/api/v1/cart", nil, &resp)
	return resp.Reply, err
}

// GetCart returns the session cart.
func (c *APIClient) GetCart(ctx context.Context) (CartState, error) {
	var cart CartState
	err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil, &cart)
	return cart, err
}

// Checkout places the cart as an order.
func (c *APIClient) Checkout(ctx context.Context, form chat.CheckoutForm) (*chat.Receipt, error) {
	var receipt chat.Receipt
	if err := c.do(ctx, http.MethodPost, "/api/v1/checkout", form, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetOrders retrieves all orders, or those whose customer name contains name.
func (c *APIClient) GetOrders(ctx context.Context, name string) ([]models.Order, error) {
	path := "/api/v1/orders"
	if name != "" {
		path += "/search?name=" + url.QueryEscape(name)
	}
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, path, nil, &orders)
	return orders, err
}

// GetOrder retrieves a specific order by ID
func (c *APIClient) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order to status.
func (c *APIClient) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d/status", id), map[string]string{"status": string(status)}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(api.TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
