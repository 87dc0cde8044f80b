package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ealmloff/linknotes/internal/app"
	noteclient "github.com/ealmloff/linknotes/internal/client"
	"github.com/ealmloff/linknotes/internal/types"
)

func TestDaemonCommandKillFlag(t *testing.T) {
	var calls []string
	cmd := NewDaemonCommand(
		&bytes.Buffer{},
		func(background bool) error {
			calls = append(calls, "run")
			if background {
				calls = append(calls, "background")
			}
			return nil
		},
		func() error {
			calls = append(calls, "kill")
			return nil
		},
	)

	if err := cmd.Run([]string{"--kill"}); err != nil {
		t.Fatalf("expected kill run to succeed, got err=%v", err)
	}
	if strings.Join(calls, ",") != "kill" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

func TestLSCommandPrintsNotes(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		notesResp: []types.ContextualDocument{
			{
				Document: types.Document{Title: "Graph Theory", Body: "vertices"},
				Tags:     []types.Tag{{Name: "Math"}, {Name: "Important", Manual: true}},
			},
		},
	}
	cmd := NewLSCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--workspace", t.TempDir()}); err != nil {
		t.Fatalf("expected ls to succeed, got err=%v", err)
	}
	if fake.ensureDaemonCalls != 1 {
		t.Fatalf("expected ensure daemon once, got %d", fake.ensureDaemonCalls)
	}
	out := stdout.String()
	if !strings.Contains(out, "TITLE") || !strings.Contains(out, "TAGS") {
		t.Fatalf("expected header in output, got %q", out)
	}
	if !strings.Contains(out, "Graph Theory") || !strings.Contains(out, "Math,Important") {
		t.Fatalf("expected note row in output, got %q", out)
	}
}

func TestRMCommandRemovesNote(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{}
	cmd := NewRMCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--workspace", t.TempDir(), "Old Note"}); err != nil {
		t.Fatalf("expected rm to succeed, got err=%v", err)
	}
	if len(fake.removedTitles) != 1 || fake.removedTitles[0] != "Old Note" {
		t.Fatalf("unexpected removals: %v", fake.removedTitles)
	}
	if !strings.Contains(stdout.String(), "removed Old Note") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestRMCommandRequiresTitle(t *testing.T) {
	cmd := NewRMCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(&fakeCommandClient{}))
	if err := cmd.Run(nil); err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestSearchCommandPassesTagsAndLimit(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		searchResp: []types.SearchResult{
			{Distance: 0.123, Title: "Calculus", CharacterRange: types.CharRange{Start: 0, End: 20}},
		},
	}
	cmd := NewSearchCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	err := cmd.Run([]string{
		"--workspace", t.TempDir(),
		"--tag", "Math",
		"--tag", "Physics",
		"--results", "5",
		"derivatives",
	})
	if err != nil {
		t.Fatalf("expected search to succeed, got err=%v", err)
	}
	if fake.searchText != "derivatives" {
		t.Fatalf("unexpected query: %q", fake.searchText)
	}
	if len(fake.searchTags) != 2 || fake.searchTags[0] != "Math" || fake.searchTags[1] != "Physics" {
		t.Fatalf("unexpected tags: %v", fake.searchTags)
	}
	if fake.searchLimit != 5 {
		t.Fatalf("unexpected limit: %d", fake.searchLimit)
	}
	out := stdout.String()
	if !strings.Contains(out, "0.123") || !strings.Contains(out, "Calculus") || !strings.Contains(out, "[0..20]") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestImportCommandSavesFileContents(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lecture.txt")
	if err := os.WriteFile(file, []byte("imported body"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{}
	cmd := NewImportCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--workspace", dir, file}); err != nil {
		t.Fatalf("expected import to succeed, got err=%v", err)
	}
	if fake.savedTitle != "lecture" || fake.savedText != "imported body" {
		t.Fatalf("unexpected save: %q/%q", fake.savedTitle, fake.savedText)
	}
}

func TestImportCommandRejectsNonTxt(t *testing.T) {
	cmd := NewImportCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(&fakeCommandClient{}))
	err := cmd.Run([]string{"notes.md"})
	if err == nil || !strings.Contains(err.Error(), ".txt") {
		t.Fatalf("expected extension error, got %v", err)
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewVersionCommand(stdout, "v-test")
	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected version to succeed, got err=%v", err)
	}
	if !strings.Contains(stdout.String(), "v-test") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

type fakeCommandClient struct {
	ensureDaemonErr   error
	ensureDaemonCalls int

	notesResp []types.ContextualDocument
	notesErr  error

	savedTitle string
	savedText  string
	saveErr    error

	removedTitles []string
	removeErr     error

	searchText  string
	searchTags  []string
	searchLimit int
	searchResp  []types.SearchResult
	searchErr   error

	shutdownErr error
	healthResp  *noteclient.HealthResponse
	healthErr   error

	runUICalls int
	runUIErr   error
}

func (f *fakeCommandClient) EnsureDaemon(context.Context) error {
	f.ensureDaemonCalls++
	return f.ensureDaemonErr
}

func (f *fakeCommandClient) GetWorkspaceID(context.Context, string) (int, error) {
	return 1, nil
}

func (f *fakeCommandClient) FilesInWorkspace(context.Context, int) ([]types.ContextualDocument, error) {
	return f.notesResp, f.notesErr
}

func (f *fakeCommandClient) SaveNote(_ context.Context, _ int, title, text string) error {
	f.savedTitle = title
	f.savedText = text
	return f.saveErr
}

func (f *fakeCommandClient) RemoveNote(_ context.Context, _ int, title string) error {
	f.removedTitles = append(f.removedTitles, title)
	return f.removeErr
}

func (f *fakeCommandClient) Search(_ context.Context, _ int, text string, tags []string, results int) ([]types.SearchResult, error) {
	f.searchText = text
	f.searchTags = tags
	f.searchLimit = results
	return f.searchResp, f.searchErr
}

func (f *fakeCommandClient) ShutdownDaemon(context.Context) error {
	return f.shutdownErr
}

func (f *fakeCommandClient) Health(context.Context) (*noteclient.HealthResponse, error) {
	return f.healthResp, f.healthErr
}

func (f *fakeCommandClient) RunUI(app.Options) error {
	f.runUICalls++
	return f.runUIErr
}

func fixedFactory(client commandClient) clientFactory {
	return func() (commandClient, error) {
		return client, nil
	}
}
