// Package api is the HTTP client for the Oto backend. Every endpoint returns
// a `{"data": ...}` envelope; non-2xx responses are returned as errors and
// callers degrade to an empty state rather than retrying.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Client struct {
	base  string
	hc    *http.Client
	token func() string
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithToken supplies the bearer token lazily so a mid-session login is picked
// up without rebuilding the client.
func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return errors.Wrapf(err, "api: build request %s", path)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "api: GET %s", path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("api: GET %s: unexpected status %d", path, resp.StatusCode)
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrapf(err, "api: decode %s", path)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrapf(err, "api: decode %s data", path)
	}
	return nil
}

type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	CreatedAt string `json:"created_at"`
}

type Space struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Members     int    `json:"member_count"`
}

type Conversation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LastMessage string `json:"last_message"`
	UpdatedAt   string `json:"updated_at"`
}

type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Model       string `json:"model"`
	Description string `json:"description"`
}

type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
}

type Profile struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Plan           string `json:"plan"`
	OnboardingDone bool   `json:"onboarding_done"`
}

func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	var out []Contact
	return out, c.get(ctx, "/contacts", &out)
}

func (c *Client) ListSpaces(ctx context.Context) ([]Space, error) {
	var out []Space
	return out, c.get(ctx, "/spaces", &out)
}

func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var out []Conversation
	return out, c.get(ctx, "/conversations", &out)
}

func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var out []Agent
	return out, c.get(ctx, "/agents", &out)
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var out []Article
	return out, c.get(ctx, "/articles", &out)
}

func (c *Client) GetArticle(ctx context.Context, id string) (Article, error) {
	var out Article
	return out, c.get(ctx, fmt.Sprintf("/articles/%s", id), &out)
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var out Profile
	return out, c.get(ctx, "/profile", &out)
}
