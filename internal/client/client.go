package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ealmloff/linknotes/internal/config"
	"github.com/ealmloff/linknotes/internal/types"
)

// Client is the typed gateway to the daemon. Every editor-facing
// operation is one method; callers never see HTTP.
type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
}

func New() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   cfg.DaemonBaseURL(),
		tokenPath: tokenPath,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetWorkspaceID resolves a directory path to its workspace id,
// registering the path with the daemon on first use.
func (c *Client) GetWorkspaceID(ctx context.Context, path string) (int, error) {
	var resp RegisterWorkspaceResponse
	req := RegisterWorkspaceRequest{Path: path}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/workspaces", req, true, &resp); err != nil {
		return 0, err
	}
	return resp.WorkspaceID, nil
}

func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID int) error {
	return c.doJSON(ctx, http.MethodDelete, workspacePath(workspaceID, ""), nil, true, nil)
}

// FilesInWorkspace lists every note in the workspace with its tags.
func (c *Client) FilesInWorkspace(ctx context.Context, workspaceID int) ([]types.ContextualDocument, error) {
	var resp NotesResponse
	if err := c.doJSON(ctx, http.MethodGet, workspacePath(workspaceID, "notes"), nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *Client) SaveNote(ctx context.Context, workspaceID int, title, text string) error {
	req := SaveNoteRequest{Title: title, Text: text}
	return c.doJSON(ctx, http.MethodPost, workspacePath(workspaceID, "notes"), req, true, nil)
}

func (c *Client) ReadNote(ctx context.Context, workspaceID int, title string) (types.ContextualDocument, error) {
	var doc types.ContextualDocument
	if err := c.doJSON(ctx, http.MethodGet, notePath(workspaceID, title), nil, true, &doc); err != nil {
		return types.ContextualDocument{}, err
	}
	return doc, nil
}

func (c *Client) RemoveNote(ctx context.Context, workspaceID int, title string) error {
	return c.doJSON(ctx, http.MethodDelete, notePath(workspaceID, title), nil, true, nil)
}

func (c *Client) GetTags(ctx context.Context, workspaceID int, title string) ([]types.Tag, error) {
	var resp TagsResponse
	if err := c.doJSON(ctx, http.MethodGet, notePath(workspaceID, title)+"/tags", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

func (c *Client) SetTags(ctx context.Context, workspaceID int, title string, tags []types.Tag) error {
	req := TagsRequest{Tags: tags}
	return c.doJSON(ctx, http.MethodPut, notePath(workspaceID, title)+"/tags", req, true, nil)
}

// Search returns matching note chunks, best first. Ordering is
// re-asserted here so callers can rely on it regardless of what the
// daemon sent.
func (c *Client) Search(ctx context.Context, workspaceID int, text string, tags []string, results int) ([]types.SearchResult, error) {
	req := SearchRequest{Text: text, Tags: tags, Results: results}
	var resp SearchResponse
	if err := c.doJSON(ctx, http.MethodPost, workspacePath(workspaceID, "search"), req, true, &resp); err != nil {
		return nil, err
	}
	sort.SliceStable(resp.Results, func(i, j int) bool {
		return resp.Results[i].Distance < resp.Results[j].Distance
	})
	return resp.Results, nil
}

// ContextSearch finds notes related to the text around the cursor.
// Title is empty for documents that have never been saved.
func (c *Client) ContextSearch(ctx context.Context, workspaceID int, req ContextSearchRequest) ([]types.ContextResult, error) {
	var resp ContextSearchResponse
	if err := c.doJSON(ctx, http.MethodPost, workspacePath(workspaceID, "context-search"), req, true, &resp); err != nil {
		return nil, err
	}
	sort.SliceStable(resp.Results, func(i, j int) bool {
		return resp.Results[i].Distance < resp.Results[j].Distance
	})
	return resp.Results, nil
}

func (c *Client) ShutdownDaemon(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/shutdown", nil, true, nil)
}

// EnsureDaemon health-checks the daemon and starts one in the
// background when nothing answers, polling until it comes up.
func (c *Client) EnsureDaemon(ctx context.Context) error {
	if resp, err := c.Health(ctx); err == nil && resp.OK {
		_ = c.loadToken()
		return nil
	}

	if err := StartBackgroundDaemon(); err != nil {
		return err
	}

	deadline := time.Now().Add(4 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		resp, err := c.Health(ctx)
		if err == nil && resp.OK {
			_ = c.loadToken()
			return nil
		}
		lastErr = err
		time.Sleep(150 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = errors.New("daemon not healthy after start")
	}
	return lastErr
}

func workspacePath(workspaceID int, sub string) string {
	path := fmt.Sprintf("/v1/workspaces/%d", workspaceID)
	if sub != "" {
		path += "/" + sub
	}
	return path
}

func notePath(workspaceID int, title string) string {
	return workspacePath(workspaceID, "notes") + "/" + url.PathEscape(title)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if err := c.ensureToken(); err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ensureToken() error {
	if strings.TrimSpace(c.token) == "" {
		if err := c.loadToken(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.token) == "" {
		return errors.New("token not found; is the daemon running?")
	}
	return nil
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err to the daemon error when there is one.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsNotFound reports whether err is the daemon saying a resource does
// not exist.
func IsNotFound(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}
