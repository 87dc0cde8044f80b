package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/ealmloff/linknotes/internal/editor"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workspaceResolvedMsg:
		if msg.err != nil {
			m.status = "workspace unavailable, retrying"
			m.showErrorToast("workspace error: " + msg.err.Error())
			return m, retryWorkspaceCmd()
		}
		m.workspaceID = msg.id
		m.workspaceReady = true
		m.status = m.workspacePath
		return m, loadNotesCmd(m.noteAPI, m.workspaceID)

	case workspaceRetryMsg:
		if m.workspaceReady {
			return m, nil
		}
		return m, resolveWorkspaceCmd(m.workspaceAPI, m.workspacePath)

	case notesLoadedMsg:
		if msg.err != nil {
			m.showErrorToast("load notes: " + msg.err.Error())
			return m, nil
		}
		m.catalog = msg.notes
		if m.listIndex >= len(m.catalog) {
			m.listIndex = max(0, len(m.catalog)-1)
		}
		return m, nil

	case noteSavedMsg:
		if msg.seq != m.saveSeq {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			m.showErrorToast("save failed: " + msg.err.Error())
			return m, nil
		}
		m.activeTitle = msg.title
		m.dirty = false
		m.upsertCatalog(msg.title, msg.text, nil)
		m.showInfoToast("saved " + msg.title)
		return m, loadTagsCmd(m.noteAPI, m.workspaceID, msg.title)

	case noteLoadedMsg:
		if msg.seq != m.selectSeq {
			return m, nil
		}
		if msg.err != nil {
			m.showErrorToast("open failed: " + msg.err.Error())
			return m, nil
		}
		doc := editor.Parse(msg.doc.Body)
		m.titleInput.SetValue(msg.doc.Title)
		m.body.SetValue(doc.Encode())
		m.body.MoveToBegin()
		m.tags = msg.doc.Tags
		m.activeTitle = msg.doc.Title
		m.dirty = false
		m.contextResults = nil
		m.coordinator.Reset()
		m.filter.Close()
		m.setFocus(focusEditor)
		return m, nil

	case noteDeletedMsg:
		if msg.err != nil {
			m.showErrorToast("delete failed: " + msg.err.Error())
			return m, nil
		}
		m.removeFromCatalog(msg.title)
		if m.activeTitle == msg.title {
			m.NewNote()
		}
		m.showInfoToast("deleted " + msg.title)
		return m, nil

	case tagsLoadedMsg:
		if msg.err != nil {
			m.showWarningToast("load tags: " + msg.err.Error())
			return m, nil
		}
		if msg.title == m.activeTitle {
			m.tags = msg.tags
		}
		if i := m.catalogIndex(msg.title); i >= 0 {
			m.catalog[i].Tags = msg.tags
		}
		return m, nil

	case tagsSavedMsg:
		if msg.err != nil {
			m.showErrorToast("save tags: " + msg.err.Error())
			return m, nil
		}
		return m, loadTagsCmd(m.noteAPI, m.workspaceID, msg.title)

	case searchResultsMsg:
		if msg.err != nil {
			if m.filter.IsCurrent(msg.seq) {
				m.showWarningToast("search: " + msg.err.Error())
			}
			return m, nil
		}
		if m.filter.Accept(msg.seq, msg.results) {
			m.dropdownIndex = 0
		}
		return m, nil

	case contextResultsMsg:
		if msg.err != nil {
			m.coordinator.Fail(msg.seq)
			return m, nil
		}
		if m.coordinator.Accept(msg.seq, msg.offset) {
			m.contextResults = msg.results
		}
		return m, nil

	case noteImportedMsg:
		if msg.err != nil {
			m.showErrorToast("import failed: " + msg.err.Error())
			return m, nil
		}
		m.NewNote()
		m.titleInput.SetValue(msg.title)
		m.body.SetValue(msg.text)
		m.body.MoveToBegin()
		m.setFocus(focusEditor)
		return m, m.SaveNote()

	case tickMsg:
		m.handleTick(msg)
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleTick(msg tickMsg) {
	if m.toastText != "" && !m.toastActive(time.Time(msg)) {
		m.clearToast()
	}
	if m.coordinator.Querying() {
		m.loader, _ = m.loader.Update(spinner.TickMsg{Time: time.Time(msg), ID: m.loader.ID()})
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	sidebar := m.sidebarWidth()
	editorWidth := max(minEditorWidth, width-sidebar-1)
	m.body.SetWidth(editorWidth)
	m.body.SetHeight(max(minContentHeight, height-6))
	m.titleInput.Resize(editorWidth)
	m.importInput.Resize(editorWidth)
	m.searchInput.Resize(sidebar)
	m.tagInput.Resize(sidebar)
}

func (m *Model) sidebarWidth() int {
	w := m.width / 3
	if w < minSidebarWidth {
		w = minSidebarWidth
	}
	if w > maxSidebarWidth {
		w = maxSidebarWidth
	}
	return w
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		switch choice {
		case confirmChoiceConfirm:
			return m, m.ConfirmDelete()
		case confirmChoiceCancel:
			m.CancelDelete()
			return m, nil
		}
		if handled {
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		return m, m.SaveNote()
	case "ctrl+n":
		m.NewNote()
		return m, nil
	case "ctrl+f":
		m.setFocus(focusSearch)
		return m, nil
	case "ctrl+t":
		m.setFocus(focusTag)
		return m, nil
	case "ctrl+o":
		m.setFocus(focusImport)
		return m, nil
	case "ctrl+b":
		m.setFocus(focusList)
		return m, nil
	case "ctrl+l":
		if m.activeTab == tabNotes {
			m.activeTab = tabLinks
		} else {
			m.activeTab = tabNotes
		}
		return m, nil
	case "ctrl+p":
		m.showPreview = !m.showPreview
		return m, nil
	case "ctrl+y":
		if text := m.body.Value(); strings.TrimSpace(text) != "" {
			m.copyWithToast(text, "note copied")
		}
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusTag:
		return m.handleTagKey(msg)
	case focusImport:
		return m.handleImportKey(msg)
	case focusTitle:
		return m.handleTitleKey(msg)
	case focusList:
		return m.handleListKey(msg)
	default:
		return m.handleEditorKey(msg)
	}
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.filter.Close()
		return m, nil
	}
	before := m.body.Value()
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	if m.body.Value() != before {
		m.dirty = true
	}
	if search := m.maybeContextSearch(); search != nil {
		return m, tea.Batch(cmd, search)
	}
	return m, cmd
}

func (m *Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "down":
		m.setFocus(focusEditor)
		return m, nil
	case "esc":
		m.setFocus(focusEditor)
		return m, nil
	}
	return m, m.titleInput.Update(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.Close()
		m.setFocus(focusEditor)
		return m, nil
	case "down":
		if m.filter.Open() && m.dropdownIndex < len(m.filter.Results())-1 {
			m.dropdownIndex++
		}
		return m, nil
	case "up":
		if m.dropdownIndex > 0 {
			m.dropdownIndex--
		}
		return m, nil
	case "enter":
		results := m.filter.Results()
		if m.filter.Open() && m.dropdownIndex < len(results) {
			title := results[m.dropdownIndex].Title
			m.filter.Close()
			return m, m.SelectNote(title)
		}
		return m, nil
	}
	cmd := m.searchInput.Update(msg)
	if m.filter.SetQuery(m.searchInput.Value()) {
		m.dropdownIndex = 0
		return m, tea.Batch(cmd, m.issueSearch())
	}
	return m, cmd
}

func (m *Model) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.tagInput.Clear()
		m.setFocus(focusEditor)
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.tagInput.Value())
		m.tagInput.Clear()
		return m, m.AddTag(name)
	}
	return m, m.tagInput.Update(msg)
}

func (m *Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.importInput.Clear()
		m.setFocus(focusEditor)
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.importInput.Value())
		m.importInput.Clear()
		m.setFocus(focusEditor)
		if path == "" {
			return m, nil
		}
		return m, importNoteCmd(path)
	}
	return m, m.importInput.Update(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeTab == tabLinks {
		switch msg.String() {
		case "esc":
			m.setFocus(focusEditor)
			return m, nil
		case "down", "j":
			if m.listIndex < len(m.contextResults)-1 {
				m.listIndex++
			}
			return m, nil
		case "up", "k":
			if m.listIndex > 0 {
				m.listIndex--
			}
			return m, nil
		case "enter":
			if m.listIndex < len(m.contextResults) {
				return m, m.SelectNote(m.contextResults[m.listIndex].Title)
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.setFocus(focusEditor)
		return m, nil
	case "down", "j":
		if m.listIndex < len(m.catalog)-1 {
			m.listIndex++
		}
		return m, nil
	case "up", "k":
		if m.listIndex > 0 {
			m.listIndex--
		}
		return m, nil
	case "enter":
		if m.listIndex < len(m.catalog) {
			return m, m.SelectNote(m.catalog[m.listIndex].Title)
		}
		return m, nil
	case "d", "delete":
		if m.listIndex < len(m.catalog) {
			m.RequestDelete(m.catalog[m.listIndex].Title)
		}
		return m, nil
	case "t":
		if m.listIndex < len(m.catalog) {
			doc := m.catalog[m.listIndex]
			if len(doc.Tags) > 0 {
				return m, m.ToggleTagFilter(doc.Tags[0].Name)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleMouse(msg, m.width, m.height)
		switch choice {
		case confirmChoiceConfirm:
			return m, m.ConfirmDelete()
		case confirmChoiceCancel:
			m.CancelDelete()
		}
		return m, nil
	}
	if m.filter.Open() {
		return m, m.handleDropdownClick(msg)
	}
	return m, nil
}

// handleDropdownClick routes clicks while the results dropdown is up.
// Clicks outside the search bar and the dropdown dismiss it; a left
// click on a result row opens that note.
func (m *Model) handleDropdownClick(msg tea.MouseClickMsg) tea.Cmd {
	mouse := msg.Mouse()
	if mouse.Y == searchBarRow {
		return nil
	}
	results := m.filter.Results()
	dropWidth := max(minSidebarWidth, m.sidebarWidth())
	dropHeight := 1 + max(1, len(results))
	inside := mouse.X >= 0 && mouse.X < dropWidth &&
		mouse.Y >= dropdownRow && mouse.Y < dropdownRow+dropHeight
	if !inside {
		m.filter.Close()
		return nil
	}
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	index := mouse.Y - dropdownRow - 1
	if index < 0 || index >= len(results) {
		return nil
	}
	m.dropdownIndex = index
	title := results[index].Title
	m.filter.Close()
	return m.SelectNote(title)
}
