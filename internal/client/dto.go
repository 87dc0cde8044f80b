package client

import "github.com/ealmloff/linknotes/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
}

type RegisterWorkspaceRequest struct {
	Path string `json:"path"`
}

type RegisterWorkspaceResponse struct {
	WorkspaceID int `json:"workspace_id"`
}

type SaveNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type NotesResponse struct {
	Notes []types.ContextualDocument `json:"notes"`
}

type TagsRequest struct {
	Tags []types.Tag `json:"tags"`
}

type TagsResponse struct {
	Tags []types.Tag `json:"tags"`
}

type SearchRequest struct {
	Text    string   `json:"text"`
	Tags    []string `json:"tags"`
	Results int      `json:"results"`
}

type SearchResponse struct {
	Results []types.SearchResult `json:"results"`
}

type ContextSearchRequest struct {
	DocumentTitle    string `json:"document_title,omitempty"`
	DocumentText     string `json:"document_text"`
	CursorUTF16Index int    `json:"cursor_utf16_index"`
	Results          int    `json:"results"`
	ContextSentences int    `json:"context_sentences"`
}

type ContextSearchResponse struct {
	Results []types.ContextResult `json:"results"`
}
