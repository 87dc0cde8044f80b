package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ealmloff/linknotes/internal/types"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	repo, err := NewBboltRepository(filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestWorkspaceGetOrCreateStableID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Workspaces().GetOrCreate(ctx, "/tmp/alpha")
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.Workspaces().GetOrCreate(ctx, "/tmp/alpha")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Fatalf("same path got ids %d and %d", first.ID, second.ID)
	}

	other, err := repo.Workspaces().GetOrCreate(ctx, "/tmp/beta")
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == first.ID {
		t.Fatalf("distinct paths share id %d", other.ID)
	}
}

func TestWorkspaceGetAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ws, err := repo.Workspaces().GetOrCreate(ctx, "/tmp/alpha")
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := repo.Workspaces().Get(ctx, ws.ID)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Path != "/tmp/alpha" {
		t.Fatalf("path = %q", got.Path)
	}
	if _, ok, _ := repo.Workspaces().Get(ctx, 999); ok {
		t.Fatal("unexpected hit for unknown id")
	}

	all, err := repo.Workspaces().List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("list size = %d", len(all))
	}
}

func TestNoteUpsertGetDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ws, err := repo.Workspaces().GetOrCreate(ctx, "/tmp/alpha")
	if err != nil {
		t.Fatal(err)
	}

	saved, err := repo.Notes().Upsert(ctx, &types.NoteRecord{
		WorkspaceID: ws.ID,
		Title:       "Linear Algebra",
		Body:        "Matrices and vectors.",
		Tags:        []types.Tag{{Name: "Math", Manual: true}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, ok, err := repo.Notes().Get(ctx, ws.ID, "Linear Algebra")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Body != "Matrices and vectors." || len(got.Tags) != 1 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Updating keeps the original creation time.
	updated, err := repo.Notes().Upsert(ctx, &types.NoteRecord{
		WorkspaceID: ws.ID,
		Title:       "Linear Algebra",
		Body:        "Eigenvalues too.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v -> %v", saved.CreatedAt, updated.CreatedAt)
	}

	if err := repo.Notes().Delete(ctx, ws.ID, "Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Notes().Delete(ctx, ws.ID, "Linear Algebra"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteListIsScopedToWorkspace(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	alpha, _ := repo.Workspaces().GetOrCreate(ctx, "/tmp/alpha")
	beta, _ := repo.Workspaces().GetOrCreate(ctx, "/tmp/beta")

	for _, title := range []string{"b-note", "a-note"} {
		if _, err := repo.Notes().Upsert(ctx, &types.NoteRecord{WorkspaceID: alpha.ID, Title: title, Body: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := repo.Notes().Upsert(ctx, &types.NoteRecord{WorkspaceID: beta.ID, Title: "other", Body: "y"}); err != nil {
		t.Fatal(err)
	}

	notes, err := repo.Notes().List(ctx, alpha.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("list size = %d, want 2", len(notes))
	}
	if notes[0].Title != "a-note" || notes[1].Title != "b-note" {
		t.Fatalf("unexpected order: %q, %q", notes[0].Title, notes[1].Title)
	}
}

func TestWorkspaceDeleteRemovesNotes(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ws, _ := repo.Workspaces().GetOrCreate(ctx, "/tmp/alpha")
	keep, _ := repo.Workspaces().GetOrCreate(ctx, "/tmp/beta")
	if _, err := repo.Notes().Upsert(ctx, &types.NoteRecord{WorkspaceID: ws.ID, Title: "gone", Body: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Notes().Upsert(ctx, &types.NoteRecord{WorkspaceID: keep.ID, Title: "stays", Body: "y"}); err != nil {
		t.Fatal(err)
	}

	if err := repo.Workspaces().Delete(ctx, ws.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := repo.Workspaces().Get(ctx, ws.ID); ok {
		t.Fatal("workspace still present after delete")
	}
	if notes, _ := repo.Notes().List(ctx, ws.ID); len(notes) != 0 {
		t.Fatalf("notes survived workspace delete: %d", len(notes))
	}
	if notes, _ := repo.Notes().List(ctx, keep.ID); len(notes) != 1 {
		t.Fatalf("other workspace notes affected: %d", len(notes))
	}

	if err := repo.Workspaces().Delete(ctx, ws.ID); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}
