package support

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	msgCreateFailed  = "Failed to create ticket"
	msgListFailed    = "Failed to fetch tickets"
	msgGetFailed     = "Failed to fetch ticket"
	msgStatusFailed  = "Failed to update ticket status"
	msgCommentFailed = "Failed to add comment"
	msgDeleteFailed  = "Failed to delete ticket"
	msgHealthFailed  = "Health check failed"
)

// Client talks to the ticket API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API rooted at baseURL, including the
// API prefix (e.g. "http://localhost:8080/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateTicket(ctx context.Context, t NewTicket) (*Ticket, error) {
	var created Ticket
	if err := c.doRequest(ctx, http.MethodPost, "/tickets", t, &created, msgCreateFailed); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTickets returns every ticket, newest first.
func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	tickets := []Ticket{}
	if err := c.doRequest(ctx, http.MethodGet, "/tickets", nil, &tickets, msgListFailed); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) GetTicket(ctx context.Context, id uint) (*Ticket, error) {
	var t Ticket
	if err := c.doRequest(ctx, http.MethodGet, ticketPath(id), nil, &t, msgGetFailed); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatus sends status as given; the server rejects anything but the
// three known values.
func (c *Client) UpdateStatus(ctx context.Context, id uint, status string) error {
	path := ticketPath(id) + "/status?status=" + url.QueryEscape(status)
	return c.doRequest(ctx, http.MethodPut, path, nil, nil, msgStatusFailed)
}

func (c *Client) AddComment(ctx context.Context, id uint, comment string) error {
	return c.doRequest(ctx, http.MethodPost, ticketPath(id)+"/comment", commentBody{Comment: comment}, nil, msgCommentFailed)
}

func (c *Client) DeleteTicket(ctx context.Context, id uint) error {
	return c.doRequest(ctx, http.MethodDelete, ticketPath(id), nil, nil, msgDeleteFailed)
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &h, msgHealthFailed); err != nil {
		return nil, err
	}
	return &h, nil
}

func ticketPath(id uint) string {
	return fmt.Sprintf("/tickets/%d", id)
}

// doRequest performs an HTTP request and decodes the response into result.
// Non-2xx responses become *APIError, using fallback when the body carries
// no error message.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallback}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
