package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/ealmloff/linknotes/internal/client"
	"github.com/ealmloff/linknotes/internal/types"
)

const (
	requestTimeout      = 4 * time.Second
	workspaceRetryDelay = 3 * time.Second
)

func resolveWorkspaceCmd(api WorkspaceAPI, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		id, err := api.GetWorkspaceID(ctx, path)
		return workspaceResolvedMsg{id: id, err: err}
	}
}

func retryWorkspaceCmd() tea.Cmd {
	return tea.Tick(workspaceRetryDelay, func(time.Time) tea.Msg {
		return workspaceRetryMsg{}
	})
}

func loadNotesCmd(api NoteAPI, workspaceID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		notes, err := api.FilesInWorkspace(ctx, workspaceID)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func saveNoteCmd(api NoteAPI, workspaceID, seq int, title, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := api.SaveNote(ctx, workspaceID, title, text)
		return noteSavedMsg{seq: seq, title: title, text: text, err: err}
	}
}

func loadNoteCmd(api NoteAPI, workspaceID, seq int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		doc, err := api.ReadNote(ctx, workspaceID, title)
		return noteLoadedMsg{seq: seq, title: title, doc: doc, err: err}
	}
}

func deleteNoteCmd(api NoteAPI, workspaceID int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := api.RemoveNote(ctx, workspaceID, title)
		return noteDeletedMsg{title: title, err: err}
	}
}

func loadTagsCmd(api NoteAPI, workspaceID int, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tags, err := api.GetTags(ctx, workspaceID, title)
		return tagsLoadedMsg{title: title, tags: tags, err: err}
	}
}

func saveTagsCmd(api NoteAPI, workspaceID int, title string, tags []types.Tag) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := api.SetTags(ctx, workspaceID, title, tags)
		return tagsSavedMsg{title: title, err: err}
	}
}

func searchCmd(api SearchAPI, workspaceID, seq int, text string, tags []string, results int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		found, err := api.Search(ctx, workspaceID, text, tags, results)
		return searchResultsMsg{seq: seq, results: found, err: err}
	}
}

func contextSearchCmd(api SearchAPI, workspaceID, seq, offset int, req client.ContextSearchRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		found, err := api.ContextSearch(ctx, workspaceID, req)
		return contextResultsMsg{seq: seq, offset: offset, results: found, err: err}
	}
}

func importNoteCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return noteImportedMsg{err: &ImportFormatError{Path: path}}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return noteImportedMsg{err: err}
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return noteImportedMsg{title: title, text: string(data)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
