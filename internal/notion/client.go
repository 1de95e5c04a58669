package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/pkg/errors"

	"github.com/rs/zerolog"
)

// Client talks to the remote store API. Every call is synchronous, carries
// the caller's context, and is bounded by the configured HTTP timeout.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Notion.Timeout,
		},
		log: logger.Get(),
	}
}

// NewClientWithHTTP injects a custom HTTP client; used by tests.
func NewClientWithHTTP(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        logger.Get(),
	}
}

// QueryAll pages through a database query until the cursor is exhausted and
// returns every matching page. Each invocation starts a fresh cursor.
func (c *Client) QueryAll(ctx context.Context, databaseID string, filter Filter) ([]Page, error) {
	var pages []Page
	cursor := ""

	for {
		reqBody := queryRequest{
			PageSize:    c.cfg.Notion.PageSize,
			Filter:      filter,
			StartCursor: cursor,
		}

		var resp queryResponse
		path := fmt.Sprintf("/databases/%s/query", databaseID)
		if err := c.do(ctx, http.MethodPost, path, reqBody, &resp); err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}

// CreatePage creates a page in the given database and returns its ID.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties) (string, error) {
	reqBody := map[string]interface{}{
		"parent":     map[string]interface{}{"database_id": databaseID},
		"properties": props,
	}

	var resp Page
	if err := c.do(ctx, http.MethodPost, "/pages", reqBody, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdatePage patches properties of an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props Properties) error {
	reqBody := map[string]interface{}{
		"properties": props,
	}
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, reqBody, nil)
}

// CreateComment posts a comment on a page: the message text followed by a
// mention of the target user. The caller decides whether a failure matters.
func (c *Client) CreateComment(ctx context.Context, pageID, mentionUserID, message string) error {
	reqBody := map[string]interface{}{
		"parent": map[string]interface{}{"page_id": pageID},
		"rich_text": []interface{}{
			map[string]interface{}{
				"text": map[string]interface{}{"content": message + " "},
			},
			map[string]interface{}{
				"mention": map[string]interface{}{
					"user": map[string]interface{}{"id": mentionUserID},
				},
			},
		},
	}
	return c.do(ctx, http.MethodPost, "/comments", reqBody, nil)
}

// ListUsers pages through the workspace user list.
func (c *Client) ListUsers(ctx context.Context) ([]PersonRef, error) {
	var users []PersonRef
	cursor := ""

	for {
		path := "/users"
		if cursor != "" {
			path += "?start_cursor=" + url.QueryEscape(cursor)
		}

		var resp userListResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}

		users = append(users, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return users, nil
}

// MultiSelectOptions reads the configured options of a multi_select property
// from the database schema. Used to list the known test names.
func (c *Client) MultiSelectOptions(ctx context.Context, databaseID, property string) ([]string, error) {
	var resp databaseResponse
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, &resp); err != nil {
		return nil, err
	}

	prop, ok := resp.Properties[property]
	if !ok || prop.MultiSelect == nil {
		return nil, nil
	}

	options := make([]string, len(prop.MultiSelect.Options))
	for i, opt := range prop.MultiSelect.Options {
		options[i] = opt.Name
	}
	return options, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Notion.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Notion.Token)
	req.Header.Set("Notion-Version", c.cfg.Notion.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError(method+" "+path, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return errors.NewRetryableError(
			errors.NewTransportError(method+" "+path, resp.StatusCode, nil),
			"remote store unavailable")
	default:
		return errors.NewTransportError(method+" "+path, resp.StatusCode, nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
