package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ealmloff/linknotes/internal/logging"
)

func (a *API) logger() logging.Logger {
	if a.Logger == nil {
		return logging.Nop()
	}
	return a.Logger
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Version: a.Version,
		PID:     os.Getpid(),
	})
}

func (a *API) ShutdownDaemon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
	if a.Shutdown == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Shutdown(ctx)
	}()
}

// Workspaces handles POST /v1/workspaces: resolve a path to its
// workspace id, registering the path on first sight.
func (a *API) Workspaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req RegisterWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, invalidError(err.Error(), nil))
		return
	}
	service := NewWorkspaceService(a.Stores, a.Watcher)
	ws, err := service.Resolve(r.Context(), req.Path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	a.logger().Info("workspace resolved", logging.F("id", ws.ID), logging.F("path", ws.Path))
	writeJSON(w, http.StatusOK, RegisterWorkspaceResponse{WorkspaceID: ws.ID})
}

// WorkspaceByID routes /v1/workspaces/{id}[/...] to the note, tag, and
// search endpoints.
func (a *API) WorkspaceByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/workspaces/")
	idRaw, sub, _ := strings.Cut(rest, "/")
	id, err := strconv.Atoi(strings.TrimSpace(idRaw))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch {
	case sub == "":
		a.workspaceRoot(w, r, id)
	case sub == "notes":
		a.workspaceNotes(w, r, id)
	case strings.HasPrefix(sub, "notes/"):
		a.workspaceNoteByTitle(w, r, id, strings.TrimPrefix(sub, "notes/"))
	case sub == "search":
		a.workspaceSearch(w, r, id)
	case sub == "context-search":
		a.workspaceContextSearch(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (a *API) workspaceRoot(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		ws, ok, err := a.Stores.Workspaces.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, unavailableError("workspace lookup failed", err))
			return
		}
		if !ok {
			writeServiceError(w, notFoundError("workspace not found", nil))
			return
		}
		writeJSON(w, http.StatusOK, ws)
	case http.MethodDelete:
		service := NewWorkspaceService(a.Stores, a.Watcher)
		if err := service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{OK: true})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (a *API) workspaceNotes(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		notes, err := a.Notes.List(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NotesResponse{Notes: notes})
	case http.MethodPost:
		var req SaveNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		if err := req.Validate(); err != nil {
			writeServiceError(w, invalidError(err.Error(), nil))
			return
		}
		if err := a.Notes.Save(r.Context(), id, req.Title, req.Text); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{OK: true})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

// Note titles may contain slashes, so the title is everything up to an
// optional trailing /tags segment.
func (a *API) workspaceNoteByTitle(w http.ResponseWriter, r *http.Request, id int, rest string) {
	if title, ok := strings.CutSuffix(rest, "/tags"); ok && title != "" {
		a.workspaceNoteTags(w, r, id, title)
		return
	}
	title := strings.TrimSpace(rest)
	if title == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc, err := a.Notes.Read(r.Context(), id, title)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodDelete:
		if err := a.Notes.Remove(r.Context(), id, title); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{OK: true})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (a *API) workspaceNoteTags(w http.ResponseWriter, r *http.Request, id int, title string) {
	switch r.Method {
	case http.MethodGet:
		tags, err := a.Notes.GetTags(r.Context(), id, title)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
	case http.MethodPut:
		var req TagsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		if err := a.Notes.SetTags(r.Context(), id, title, req.Tags); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{OK: true})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (a *API) workspaceSearch(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, invalidError(err.Error(), nil))
		return
	}
	results, err := a.Search.Search(r.Context(), id, req.Text, req.Tags, req.Results)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

func (a *API) workspaceContextSearch(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req ContextSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, invalidError(err.Error(), nil))
		return
	}
	results, err := a.Search.ContextSearch(
		r.Context(), id,
		req.DocumentTitle, req.DocumentText,
		req.CursorUTF16Index, req.Results, req.ContextSentences,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContextSearchResponse{Results: results})
}
