package daemon

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ealmloff/linknotes/internal/logging"
	"github.com/ealmloff/linknotes/internal/types"
)

type API struct {
	Version  string
	Stores   *Stores
	Notes    *NoteService
	Search   *SearchService
	Watcher  *NoteWatcher
	Logger   logging.Logger
	Defaults SearchDefaults
	Shutdown func(context.Context) error
}

type RegisterWorkspaceRequest struct {
	Path string `json:"path"`
}

func (r RegisterWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
	)
}

type RegisterWorkspaceResponse struct {
	WorkspaceID int `json:"workspace_id"`
}

type SaveNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (r SaveNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 512)),
	)
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

func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Results, validation.Min(0), validation.Max(1000)),
	)
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

func (r ContextSearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentText, validation.Required),
		validation.Field(&r.CursorUTF16Index, validation.Min(0)),
		validation.Field(&r.Results, validation.Min(0), validation.Max(1000)),
		validation.Field(&r.ContextSentences, validation.Min(0), validation.Max(100)),
	)
}

type ContextSearchResponse struct {
	Results []types.ContextResult `json:"results"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
}
