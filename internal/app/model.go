package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textarea"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/ealmloff/linknotes/internal/client"
	"github.com/ealmloff/linknotes/internal/editor"
	"github.com/ealmloff/linknotes/internal/types"
)

const (
	minSidebarWidth  = 24
	maxSidebarWidth  = 40
	minEditorWidth   = 20
	minContentHeight = 6
	untitledNote     = "Untitled"
)

type focusArea int

const (
	focusEditor focusArea = iota
	focusTitle
	focusSearch
	focusTag
	focusImport
	focusList
)

type sidebarTab int

const (
	tabNotes sidebarTab = iota
	tabLinks
)

// Options carries everything the editor session needs from config and
// the command line.
type Options struct {
	Version          string
	WorkspacePath    string
	SearchResults    int
	ContextResults   int
	ContextSentences int
	CursorThreshold  int
	DarkTheme        bool
}

// Model is the editor session. It owns the note catalog, the document
// being edited, the tag set, and the search and context-search state,
// and routes every mutation through the daemon.
type Model struct {
	version string

	noteAPI      NoteAPI
	searchAPI    SearchAPI
	workspaceAPI WorkspaceAPI

	workspacePath  string
	workspaceID    int
	workspaceReady bool

	catalog   []types.ContextualDocument
	listIndex int

	activeTitle string
	dirty       bool

	titleInput  *TextField
	searchInput *TextField
	tagInput    *TextField
	importInput *TextField
	body        textarea.Model

	tags []types.Tag

	filter         *SearchFilter
	dropdownIndex  int
	coordinator    *ContextSearchCoordinator
	contextResults []types.ContextResult
	loader         spinner.Model

	confirm            *ConfirmController
	pendingDeleteTitle string

	searchResults    int
	contextCount     int
	contextSentences int

	focus       focusArea
	activeTab   sidebarTab
	showPreview bool

	width  int
	height int
	status string

	selectSeq int
	saveSeq   int
	saving    bool

	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
}

var _ EditorCapabilities = (*Model)(nil)

func NewModel(c *client.Client, opts Options) Model {
	return newModel(c, c, c, opts)
}

func newModel(notes NoteAPI, search SearchAPI, workspaces WorkspaceAPI, opts Options) Model {
	body := textarea.New()
	body.Placeholder = "Start writing…"
	body.CharLimit = 0
	body.ShowLineNumbers = false

	setMarkdownBackgroundDark(opts.DarkTheme)

	loader := spinner.New()
	loader.Spinner = spinner.Line

	m := Model{
		version:          opts.Version,
		noteAPI:          notes,
		searchAPI:        search,
		workspaceAPI:     workspaces,
		workspacePath:    opts.WorkspacePath,
		titleInput:       NewTextField(minEditorWidth, untitledNote),
		searchInput:      NewTextField(minSidebarWidth, "Search notes…"),
		tagInput:         NewTextField(minSidebarWidth, "Add tag…"),
		importInput:      NewTextField(minEditorWidth, "Path to .txt file…"),
		body:             body,
		filter:           NewSearchFilter(),
		loader:           loader,
		coordinator:      NewContextSearchCoordinator(opts.CursorThreshold),
		confirm:          NewConfirmController(),
		searchResults:    opts.SearchResults,
		contextCount:     opts.ContextResults,
		contextSentences: opts.ContextSentences,
		focus:            focusEditor,
		status:           "connecting to daemon…",
	}
	m.body.Focus()
	return m
}

func Run(c *client.Client, opts Options) error {
	model := NewModel(c, opts)
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(resolveWorkspaceCmd(m.workspaceAPI, m.workspacePath), tickCmd())
}

// NewNote resets the editor to a fresh unsaved document. The catalog
// is untouched until the note is saved.
func (m *Model) NewNote() {
	m.activeTitle = ""
	m.dirty = false
	m.titleInput.Clear()
	m.body.SetValue("")
	m.body.MoveToBegin()
	m.tags = nil
	m.contextResults = nil
	m.coordinator.Reset()
	m.setFocus(focusTitle)
}

// SaveNote persists the current document under the title input's
// value, defaulting to "Untitled" when blank. Heading lines stay in the
// editor buffer but are excluded from the saved body.
func (m *Model) SaveNote() tea.Cmd {
	if !m.workspaceReady {
		m.showWarningToast("workspace not ready yet")
		return nil
	}
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		title = untitledNote
		m.titleInput.SetValue(title)
	}
	m.saveSeq++
	m.saving = true
	text := editor.Parse(m.body.Value()).ExtractText()
	return saveNoteCmd(m.noteAPI, m.workspaceID, m.saveSeq, title, text)
}

// SelectNote loads the named note into the editor. Responses are
// matched by sequence number so a stale load never replaces a newer
// selection.
func (m *Model) SelectNote(title string) tea.Cmd {
	if !m.workspaceReady || title == "" {
		return nil
	}
	m.selectSeq++
	return loadNoteCmd(m.noteAPI, m.workspaceID, m.selectSeq, title)
}

// RequestDelete opens the confirmation dialog for the named note.
// Nothing is removed until the dialog is confirmed.
func (m *Model) RequestDelete(title string) {
	if title == "" {
		return
	}
	m.pendingDeleteTitle = title
	m.confirm.Open("Delete note", "Delete \""+title+"\"? The note file on disk is removed as well.", "Delete", "Keep")
}

func (m *Model) ConfirmDelete() tea.Cmd {
	title := m.pendingDeleteTitle
	m.pendingDeleteTitle = ""
	m.confirm.Close()
	if title == "" || !m.workspaceReady {
		return nil
	}
	return deleteNoteCmd(m.noteAPI, m.workspaceID, title)
}

func (m *Model) CancelDelete() {
	m.pendingDeleteTitle = ""
	m.confirm.Close()
}

// AddTag attaches a manual tag to the active note and reloads the
// authoritative tag set from the daemon.
func (m *Model) AddTag(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if m.activeTitle == "" {
		m.showWarningToast("save the note before tagging it")
		return nil
	}
	next := make([]types.Tag, 0, len(m.tags)+1)
	for _, tag := range m.tags {
		if strings.EqualFold(strings.TrimSpace(tag.Name), name) {
			m.showInfoToast("tag already set: " + tag.Name)
			return nil
		}
		next = append(next, tag)
	}
	next = append(next, types.Tag{Name: name, Manual: true})
	return saveTagsCmd(m.noteAPI, m.workspaceID, m.activeTitle, next)
}

// ToggleTagFilter flips the tag in the search filter set and reruns
// the search when the filter remains active.
func (m *Model) ToggleTagFilter(name string) tea.Cmd {
	if !m.filter.ToggleTag(name) {
		return nil
	}
	return m.issueSearch()
}

func (m *Model) issueSearch() tea.Cmd {
	if !m.workspaceReady || !m.filter.Active() {
		return nil
	}
	seq := m.filter.Begin()
	return searchCmd(m.searchAPI, m.workspaceID, seq, strings.TrimSpace(m.filter.Query()), m.filter.Tags(), m.searchResults)
}

func (m *Model) setFocus(area focusArea) {
	m.focus = area
	m.titleInput.Blur()
	m.searchInput.Blur()
	m.tagInput.Blur()
	m.importInput.Blur()
	m.body.Blur()
	switch area {
	case focusEditor:
		m.body.Focus()
	case focusTitle:
		m.titleInput.Focus()
	case focusSearch:
		m.searchInput.Focus()
		m.filter.Reopen()
	case focusTag:
		m.tagInput.Focus()
	case focusImport:
		m.importInput.Focus()
	}
}

// catalogIndex returns the position of title in the catalog, or -1.
func (m *Model) catalogIndex(title string) int {
	for i, doc := range m.catalog {
		if doc.Title == title {
			return i
		}
	}
	return -1
}

func (m *Model) upsertCatalog(title, body string, tags []types.Tag) {
	if i := m.catalogIndex(title); i >= 0 {
		m.catalog[i].Body = body
		if tags != nil {
			m.catalog[i].Tags = tags
		}
		return
	}
	m.catalog = append(m.catalog, types.ContextualDocument{
		Document: types.Document{Title: title, Body: body},
		Tags:     tags,
	})
}

func (m *Model) removeFromCatalog(title string) {
	if i := m.catalogIndex(title); i >= 0 {
		m.catalog = append(m.catalog[:i], m.catalog[i+1:]...)
		if m.listIndex >= len(m.catalog) && m.listIndex > 0 {
			m.listIndex--
		}
	}
}

// maybeContextSearch fires a context lookup when the cursor has moved
// far enough from the last queried position. Offsets are UTF-16 code
// units into the document source, the unit the endpoint expects.
func (m *Model) maybeContextSearch() tea.Cmd {
	if !m.workspaceReady {
		return nil
	}
	doc := editor.Parse(m.body.Value())
	col := m.body.LineInfo().StartColumn + m.body.LineInfo().ColumnOffset
	offset := doc.UTF16OffsetAt(m.body.Line(), col)
	if !m.coordinator.ShouldQuery(offset, doc.UTF16Len()) {
		return nil
	}
	seq := m.coordinator.Begin()
	req := client.ContextSearchRequest{
		DocumentTitle:    m.activeTitle,
		DocumentText:     doc.Source(),
		CursorUTF16Index: offset,
		Results:          m.contextCount,
		ContextSentences: m.contextSentences,
	}
	return contextSearchCmd(m.searchAPI, m.workspaceID, seq, offset, req)
}
