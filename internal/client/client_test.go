package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ealmloff/linknotes/internal/types"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   []byte
}

func newRecordingServer(t *testing.T, status int, response any) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.auth = r.Header.Get("Authorization")
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func TestGetWorkspaceIDSendsTokenAndPath(t *testing.T) {
	server, rec := newRecordingServer(t, http.StatusOK, RegisterWorkspaceResponse{WorkspaceID: 7})
	c := NewWithBaseURL(server.URL, "secret")

	id, err := c.GetWorkspaceID(context.Background(), "/home/me/notes")
	if err != nil {
		t.Fatal(err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
	if rec.method != http.MethodPost || rec.path != "/v1/workspaces" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
	if rec.auth != "Bearer secret" {
		t.Fatalf("auth = %q", rec.auth)
	}
	var req RegisterWorkspaceRequest
	if err := json.Unmarshal(rec.body, &req); err != nil {
		t.Fatalf("body %s: %v", rec.body, err)
	}
	if req.Path != "/home/me/notes" {
		t.Fatalf("path = %q", req.Path)
	}
}

func TestNotePathsEscapeTitles(t *testing.T) {
	server, rec := newRecordingServer(t, http.StatusOK, types.ContextualDocument{Document: types.Document{Title: "a/b"}})
	c := NewWithBaseURL(server.URL, "secret")

	if _, err := c.ReadNote(context.Background(), 3, "a/b c"); err != nil {
		t.Fatal(err)
	}
	if rec.path != "/v1/workspaces/3/notes/a%2Fb%20c" {
		t.Fatalf("path = %q", rec.path)
	}
}

func TestSetTagsUsesPut(t *testing.T) {
	server, rec := newRecordingServer(t, http.StatusOK, map[string]bool{"ok": true})
	c := NewWithBaseURL(server.URL, "secret")

	tags := []types.Tag{{Name: "Math", Manual: true}}
	if err := c.SetTags(context.Background(), 1, "Calc", tags); err != nil {
		t.Fatal(err)
	}
	if rec.method != http.MethodPut || rec.path != "/v1/workspaces/1/notes/Calc/tags" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
	var req TagsRequest
	if err := json.Unmarshal(rec.body, &req); err != nil {
		t.Fatal(err)
	}
	if len(req.Tags) != 1 || req.Tags[0].Name != "Math" || !req.Tags[0].Manual {
		t.Fatalf("tags = %+v", req.Tags)
	}
}

func TestSearchSortsByDistance(t *testing.T) {
	response := SearchResponse{Results: []types.SearchResult{
		{Distance: 0.9, Title: "far"},
		{Distance: 0.1, Title: "near"},
		{Distance: 0.5, Title: "mid"},
	}}
	server, _ := newRecordingServer(t, http.StatusOK, response)
	c := NewWithBaseURL(server.URL, "secret")

	results, err := c.Search(context.Background(), 1, "query", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"near", "mid", "far"}
	for i, title := range want {
		if results[i].Title != title {
			t.Fatalf("results[%d] = %q, want %q", i, results[i].Title, title)
		}
	}
}

func TestContextSearchSortsByDistance(t *testing.T) {
	response := ContextSearchResponse{Results: []types.ContextResult{
		{Distance: 0.4, Title: "b"},
		{Distance: 0.2, Title: "a"},
	}}
	server, rec := newRecordingServer(t, http.StatusOK, response)
	c := NewWithBaseURL(server.URL, "secret")

	req := ContextSearchRequest{DocumentText: "text", CursorUTF16Index: 2, Results: 3}
	results, err := c.ContextSearch(context.Background(), 4, req)
	if err != nil {
		t.Fatal(err)
	}
	if rec.path != "/v1/workspaces/4/context-search" {
		t.Fatalf("path = %q", rec.path)
	}
	if results[0].Title != "a" || results[1].Title != "b" {
		t.Fatalf("results = %+v", results)
	}
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, map[string]string{"error": "note not found"})
	c := NewWithBaseURL(server.URL, "secret")

	_, err := c.ReadNote(context.Background(), 1, "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "note not found" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Fatal("IsNotFound = false")
	}
}

func TestMissingTokenFailsBeforeRequest(t *testing.T) {
	c := NewWithBaseURL("http://127.0.0.1:1", "")
	if err := c.SaveNote(context.Background(), 1, "t", "x"); err == nil {
		t.Fatal("expected error with empty token")
	}
}
