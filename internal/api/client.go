// Package api is the HTTP client for the remote contact service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

var (
	// ErrRemote matches every non-200 response
	ErrRemote = errors.New("remote contact service error")
	// ErrTransport matches network failures
	ErrTransport = errors.New("contact service unreachable")
)

// StatusError is returned when the service answers with anything but 200
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Code, e.Body)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRemote
}

// Service is the contract of the remote contact service
type Service interface {
	List(ctx context.Context) ([]contact.Contact, error)
	Create(ctx context.Context, c contact.NewContact) error
	Update(ctx context.Context, id string, fields contact.Fields) error
	Delete(ctx context.Context, id string) error
}

// Client talks to the service over HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the service rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every contact in service order
func (c *Client) List(ctx context.Context) ([]contact.Contact, error) {
	resp, err := c.do(ctx, "list contacts", http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contacts := []contact.Contact{}
	if err := json.NewDecoder(resp.Body).Decode(&contacts); err != nil {
		return nil, fmt.Errorf("list contacts: decoding response: %w", err)
	}
	return contacts, nil
}

// Create adds a contact; the service assigns its ID
func (c *Client) Create(ctx context.Context, nc contact.NewContact) error {
	return c.send(ctx, "create contact", http.MethodPost, "/create-user", nc)
}

// Update replaces the given fields of contact id
func (c *Client) Update(ctx context.Context, id string, fields contact.Fields) error {
	return c.send(ctx, "update contact", http.MethodPut, "/update-user/"+url.PathEscape(id), fields)
}

// Delete removes contact id
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.send(ctx, "delete contact", http.MethodDelete, "/delete-user/"+url.PathEscape(id), nil)
}

func (c *Client) send(ctx context.Context, op, method, path string, payload any) error {
	resp, err := c.do(ctx, op, method, path, payload)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// do issues the request and returns the response only for status 200
func (c *Client) do(ctx context.Context, op, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return resp, nil
}
