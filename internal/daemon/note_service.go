package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ealmloff/linknotes/internal/logging"
	"github.com/ealmloff/linknotes/internal/store"
	"github.com/ealmloff/linknotes/internal/types"
)

// NoteService owns note lifecycle: persistence, the on-disk .txt
// mirror, and tag bookkeeping. Notes saved without any tags get one
// inferred tag from the suggester.
type NoteService struct {
	stores    *Stores
	suggester *TagSuggester
	logger    logging.Logger
}

func NewNoteService(stores *Stores, suggester *TagSuggester, logger logging.Logger) *NoteService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoteService{stores: stores, suggester: suggester, logger: logger}
}

func (s *NoteService) List(ctx context.Context, workspaceID int) ([]types.ContextualDocument, error) {
	if _, err := s.workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	records, err := s.stores.Notes.List(ctx, workspaceID)
	if err != nil {
		return nil, unavailableError("list notes failed", err)
	}
	out := make([]types.ContextualDocument, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Contextual())
	}
	return out, nil
}

func (s *NoteService) Save(ctx context.Context, workspaceID int, title, text string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return invalidError("note title is required", nil)
	}
	ws, err := s.workspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	record := &types.NoteRecord{
		WorkspaceID: workspaceID,
		Title:       title,
		Body:        text,
	}
	prev, ok, err := s.stores.Notes.Get(ctx, workspaceID, title)
	if err != nil {
		return unavailableError("read note failed", err)
	}
	if ok {
		record.Tags = prev.Tags
		record.CreatedAt = prev.CreatedAt
	} else if err := s.checkFileNameCollision(ctx, workspaceID, title); err != nil {
		return err
	}
	if len(record.Tags) == 0 {
		if name, err := s.suggester.Suggest(ctx, workspaceID, text); err == nil && name != "" {
			record.Tags = []types.Tag{{Name: name, Manual: false}}
		}
	}

	if _, err := s.stores.Notes.Upsert(ctx, record); err != nil {
		return unavailableError("save note failed", err)
	}
	s.suggester.Invalidate(workspaceID)

	if err := writeNoteFile(ws.Path, title, text); err != nil {
		return unavailableError("write note file failed", err)
	}
	s.logger.Debug("note saved", logging.F("workspace", workspaceID), logging.F("title", title))
	return nil
}

func (s *NoteService) Read(ctx context.Context, workspaceID int, title string) (types.ContextualDocument, error) {
	if _, err := s.workspace(ctx, workspaceID); err != nil {
		return types.ContextualDocument{}, err
	}
	rec, ok, err := s.stores.Notes.Get(ctx, workspaceID, title)
	if err != nil {
		return types.ContextualDocument{}, unavailableError("read note failed", err)
	}
	if !ok {
		return types.ContextualDocument{}, notFoundError("note not found", nil)
	}
	return rec.Contextual(), nil
}

func (s *NoteService) Remove(ctx context.Context, workspaceID int, title string) error {
	ws, err := s.workspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := s.stores.Notes.Delete(ctx, workspaceID, title); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return notFoundError("note not found", err)
		}
		return unavailableError("remove note failed", err)
	}
	s.suggester.Invalidate(workspaceID)
	if err := os.Remove(noteFilePath(ws.Path, title)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("remove note file failed", logging.F("title", title), logging.F("err", err))
	}
	return nil
}

func (s *NoteService) GetTags(ctx context.Context, workspaceID int, title string) ([]types.Tag, error) {
	doc, err := s.Read(ctx, workspaceID, title)
	if err != nil {
		return nil, err
	}
	return doc.Tags, nil
}

// SetTags replaces the note's tag list wholesale. Names are trimmed and
// deduplicated case-insensitively, first occurrence wins.
func (s *NoteService) SetTags(ctx context.Context, workspaceID int, title string, tags []types.Tag) error {
	if _, err := s.workspace(ctx, workspaceID); err != nil {
		return err
	}
	rec, ok, err := s.stores.Notes.Get(ctx, workspaceID, title)
	if err != nil {
		return unavailableError("read note failed", err)
	}
	if !ok {
		return notFoundError("note not found", nil)
	}
	rec.Tags = normalizeTags(tags)
	if _, err := s.stores.Notes.Upsert(ctx, rec); err != nil {
		return unavailableError("save tags failed", err)
	}
	s.suggester.Invalidate(workspaceID)
	return nil
}

// SyncFromFile reconciles one on-disk note file with the store,
// preserving existing tags. Used by the watcher when a .txt file
// changes outside the app.
func (s *NoteService) SyncFromFile(ctx context.Context, workspaceID int, title, text string) error {
	rec, ok, err := s.stores.Notes.Get(ctx, workspaceID, title)
	if err != nil {
		return err
	}
	if ok && rec.Body == text {
		return nil
	}
	if !ok {
		rec = &types.NoteRecord{WorkspaceID: workspaceID, Title: title}
	}
	rec.Body = text
	if len(rec.Tags) == 0 {
		if name, err := s.suggester.Suggest(ctx, workspaceID, text); err == nil && name != "" {
			rec.Tags = []types.Tag{{Name: name, Manual: false}}
		}
	}
	_, err = s.stores.Notes.Upsert(ctx, rec)
	if err == nil {
		s.suggester.Invalidate(workspaceID)
	}
	return err
}

// DropFromIndex removes the stored record for an externally deleted
// file without touching the filesystem.
func (s *NoteService) DropFromIndex(ctx context.Context, workspaceID int, title string) error {
	err := s.stores.Notes.Delete(ctx, workspaceID, title)
	if errors.Is(err, store.ErrNoteNotFound) {
		return nil
	}
	if err == nil {
		s.suggester.Invalidate(workspaceID)
	}
	return err
}

// checkFileNameCollision rejects a new title whose sanitized file name
// would overwrite a different note's .txt mirror.
func (s *NoteService) checkFileNameCollision(ctx context.Context, workspaceID int, title string) error {
	records, err := s.stores.Notes.List(ctx, workspaceID)
	if err != nil {
		return unavailableError("list notes failed", err)
	}
	file := sanitizeFileName(title)
	for _, rec := range records {
		if rec.Title != title && sanitizeFileName(rec.Title) == file {
			return conflictError(fmt.Sprintf("note %q already uses file name %s.txt", rec.Title, file), nil)
		}
	}
	return nil
}

func (s *NoteService) workspace(ctx context.Context, workspaceID int) (*types.Workspace, error) {
	ws, ok, err := s.stores.Workspaces.Get(ctx, workspaceID)
	if err != nil {
		return nil, unavailableError("workspace lookup failed", err)
	}
	if !ok {
		return nil, notFoundError("workspace not found", nil)
	}
	return ws, nil
}

func normalizeTags(tags []types.Tag) []types.Tag {
	out := make([]types.Tag, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		name := strings.TrimSpace(tag.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, types.Tag{Name: name, Manual: tag.Manual})
	}
	return out
}

func notesDir(workspacePath string) string {
	return filepath.Join(workspacePath, "notes")
}

func noteFilePath(workspacePath, title string) string {
	return filepath.Join(notesDir(workspacePath), sanitizeFileName(title)+".txt")
}

// sanitizeFileName keeps titles usable as file names without losing
// the title itself, which lives in the store.
func sanitizeFileName(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '\x00':
			return '-'
		default:
			return r
		}
	}, title)
}

func writeNoteFile(workspacePath, title, text string) error {
	dir := notesDir(workspacePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(noteFilePath(workspacePath, title), []byte(text), 0o644)
}
