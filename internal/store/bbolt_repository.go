package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ealmloff/linknotes/internal/types"
)

var (
	bucketWorkspaces = []byte("workspaces")
	bucketNotes      = []byte("notes")
)

type bboltRepository struct {
	db         *bolt.DB
	workspaces WorkspaceStore
	notes      NoteStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:         db,
		workspaces: &bboltWorkspaceStore{db: db},
		notes:      &bboltNoteStore{db: db},
	}, nil
}

func (r *bboltRepository) Workspaces() WorkspaceStore {
	return r.workspaces
}

func (r *bboltRepository) Notes() NoteStore {
	return r.notes
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketWorkspaces); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketNotes); err != nil {
			return err
		}
		return nil
	})
}

// Workspaces are keyed by their cleaned path; ids come from the bucket
// sequence so they stay unique for the life of the database.
type bboltWorkspaceStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltWorkspaceStore) GetOrCreate(ctx context.Context, path string) (*types.Workspace, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("workspace path is required")
	}
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	var out *types.Workspace
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkspaces)
		if b == nil {
			return errors.New("workspaces bucket missing")
		}
		key := []byte(path)
		if raw := b.Get(key); len(raw) > 0 {
			var ws types.Workspace
			if err := json.Unmarshal(raw, &ws); err != nil {
				return err
			}
			out = &ws
			return nil
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		ws := types.Workspace{
			ID:        int(seq),
			Path:      path,
			CreatedAt: time.Now().UTC(),
		}
		raw, err := json.Marshal(&ws)
		if err != nil {
			return err
		}
		if err := b.Put(key, raw); err != nil {
			return err
		}
		out = &ws
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltWorkspaceStore) Get(ctx context.Context, id int) (*types.Workspace, bool, error) {
	var (
		out *types.Workspace
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkspaces)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			if ok {
				return nil
			}
			var ws types.Workspace
			if err := json.Unmarshal(v, &ws); err != nil {
				return err
			}
			if ws.ID == id {
				out = &ws
				ok = true
			}
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltWorkspaceStore) List(ctx context.Context) ([]*types.Workspace, error) {
	out := make([]*types.Workspace, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkspaces)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var ws types.Workspace
			if err := json.Unmarshal(v, &ws); err != nil {
				return err
			}
			out = append(out, &ws)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes the workspace registration and every note filed under
// it.
func (s *bboltWorkspaceStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkspaces)
		if b == nil {
			return ErrWorkspaceNotFound
		}
		var key []byte
		if err := b.ForEach(func(k, v []byte) error {
			var ws types.Workspace
			if err := json.Unmarshal(v, &ws); err != nil {
				return err
			}
			if ws.ID == id {
				key = append([]byte(nil), k...)
			}
			return nil
		}); err != nil {
			return err
		}
		if key == nil {
			return ErrWorkspaceNotFound
		}
		if err := b.Delete(key); err != nil {
			return err
		}
		notes := tx.Bucket(bucketNotes)
		if notes == nil {
			return nil
		}
		prefix := notePrefix(id)
		c := notes.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := notes.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Notes are keyed by workspace id plus title, so a workspace's notes
// form one contiguous key range.
type bboltNoteStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func notePrefix(workspaceID int) []byte {
	return []byte(fmt.Sprintf("%d\x00", workspaceID))
}

func noteKey(workspaceID int, title string) []byte {
	return append(notePrefix(workspaceID), []byte(title)...)
}

func (s *bboltNoteStore) List(ctx context.Context, workspaceID int) ([]*types.NoteRecord, error) {
	out := make([]*types.NoteRecord, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		prefix := notePrefix(workspaceID)
		c := b.Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var rec types.NoteRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *bboltNoteStore) Get(ctx context.Context, workspaceID int, title string) (*types.NoteRecord, bool, error) {
	var (
		out *types.NoteRecord
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		raw := b.Get(noteKey(workspaceID, title))
		if len(raw) == 0 {
			return nil
		}
		var rec types.NoteRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		out = &rec
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltNoteStore) Upsert(ctx context.Context, record *types.NoteRecord) (*types.NoteRecord, error) {
	if record == nil {
		return nil, errors.New("note record is required")
	}
	rec := *record
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		return nil, errors.New("note title is required")
	}
	rec.Tags = append([]types.Tag(nil), rec.Tags...)
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		key := noteKey(rec.WorkspaceID, rec.Title)
		if raw := b.Get(key); len(raw) > 0 {
			var prev types.NoteRecord
			if err := json.Unmarshal(raw, &prev); err == nil && !prev.CreatedAt.IsZero() {
				rec.CreatedAt = prev.CreatedAt
			}
		}
		raw, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		return b.Put(key, raw)
	})
	if err != nil {
		return nil, err
	}
	clone := rec
	clone.Tags = append([]types.Tag(nil), rec.Tags...)
	return &clone, nil
}

func (s *bboltNoteStore) Delete(ctx context.Context, workspaceID int, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return ErrNoteNotFound
		}
		key := noteKey(workspaceID, title)
		if b.Get(key) == nil {
			return ErrNoteNotFound
		}
		return b.Delete(key)
	})
}
