package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/ealmloff/linknotes/internal/types"
)

func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar(width))
	b.WriteString("\n")

	sidebar := m.renderSidebar(m.sidebarWidth(), height-5)
	editorPane := m.renderEditor(width-m.sidebarWidth()-1, height-5)
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, dividerStyle.Render("│"), editorPane)
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(m.renderStatus(width))

	view := b.String()
	if m.filter.Open() {
		view = m.overlayDropdown(view, width)
	}
	if m.confirm.IsOpen() {
		view = m.overlayConfirm(view, width, height)
	}
	return view
}

func (m *Model) renderHeader(width int) string {
	title := headerStyle.Render("linknotes")
	ws := ""
	if m.workspaceReady {
		ws = statusStyle.Render(" " + truncateToWidth(m.workspacePath, max(1, width-30)))
	}
	notesTab := tabStyle.Render(" notes ")
	linksTab := tabStyle.Render(" links ")
	if m.activeTab == tabNotes {
		notesTab = tabActiveStyle.Render(" notes ")
	} else {
		linksTab = tabActiveStyle.Render(" links ")
	}
	line := title + ws + " " + notesTab + linksTab
	if m.coordinator.Querying() {
		line += " " + statusStyle.Render(m.loader.View()+" linking")
	}
	return truncateToWidth(line, width)
}

func (m *Model) renderSearchBar(width int) string {
	bar := m.searchInput.View()
	if tags := m.filter.Tags(); len(tags) > 0 {
		pills := make([]string, 0, len(tags))
		for _, tag := range tags {
			pills = append(pills, tagFilterActiveStyle.Render(" "+tag+" "))
		}
		bar += " " + strings.Join(pills, " ")
	}
	return truncateToWidth(bar, width)
}

func (m *Model) renderSidebar(width, height int) string {
	if height < 1 {
		height = 1
	}
	var lines []string
	if m.activeTab == tabLinks {
		lines = m.renderLinkRows(width, height)
	} else {
		lines = m.renderNoteRows(width, height)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines[:height], "\n")
}

func (m *Model) renderNoteRows(width, height int) []string {
	lines := make([]string, 0, height)
	if len(m.catalog) == 0 {
		lines = append(lines, statusStyle.Render(truncateToWidth(" no notes yet", width)))
		return lines
	}
	for i, doc := range m.catalog {
		if len(lines) >= height {
			break
		}
		label := doc.Title
		if label == "" {
			label = untitledNote
		}
		row := " " + label
		if len(doc.Tags) > 0 {
			names := make([]string, 0, len(doc.Tags))
			for _, tag := range doc.Tags {
				names = append(names, tag.Name)
			}
			row += " [" + strings.Join(names, ", ") + "]"
		}
		row = truncateToWidth(row, width)
		switch {
		case m.focus == focusList && i == m.listIndex:
			row = selectedStyle.Render(padToWidth(row, width))
		case doc.Title == m.activeTitle:
			row = noteActiveStyle.Render(row)
		default:
			row = noteStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return lines
}

func (m *Model) renderLinkRows(width, height int) []string {
	lines := make([]string, 0, height)
	if len(m.contextResults) == 0 {
		lines = append(lines, statusStyle.Render(truncateToWidth(" no related notes", width)))
		return lines
	}
	for i, res := range m.contextResults {
		if len(lines)+2 > height {
			break
		}
		title := truncateToWidth(" "+res.Title, max(1, width-6))
		head := title + " " + distanceStyle.Render(fmt.Sprintf("%.2f", res.Distance))
		if m.focus == focusList && i == m.listIndex {
			head = selectedStyle.Render(padToWidth(head, width))
		}
		lines = append(lines, truncateToWidth(head, width))
		snippet := m.renderSnippet(res.Text, res.RelevantRange.Start, res.RelevantRange.End, width)
		lines = append(lines, snippet)
	}
	return lines
}

// renderSnippet highlights the relevant slice of a context result.
// The range is in UTF-16 units of the snippet text.
func (m *Model) renderSnippet(text string, start, end, width int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	startB, endB := types.UTF16RangeToBytes(text, types.CharRange{Start: start, End: end})
	before := text[:startB]
	match := text[startB:endB]
	after := text[endB:]
	line := "   " + snippetStyle.Render(before) + snippetMatchStyle.Render(match) + snippetStyle.Render(after)
	return truncateToWidth(line, width)
}

func (m *Model) renderEditor(width, height int) string {
	if width < minEditorWidth {
		width = minEditorWidth
	}
	var b strings.Builder
	title := m.titleInput.View()
	if m.dirty {
		title += statusStyle.Render(" *")
	}
	b.WriteString(truncateToWidth(title, width))
	b.WriteString("\n")
	b.WriteString(m.renderTagLine(width))
	b.WriteString("\n")
	if m.focus == focusImport {
		b.WriteString(helpStyle.Render(truncateToWidth("import: "+m.importInput.View(), width)))
		b.WriteString("\n")
	}
	if m.showPreview {
		b.WriteString(renderMarkdown(m.body.Value(), width))
	} else {
		b.WriteString(m.body.View())
	}
	return b.String()
}

func (m *Model) renderTagLine(width int) string {
	parts := make([]string, 0, len(m.tags)+1)
	for _, tag := range m.tags {
		style := tagStyle
		if tag.Manual {
			style = tagManualStyle
		}
		parts = append(parts, style.Render("#"+tag.Name))
	}
	if m.focus == focusTag {
		parts = append(parts, m.tagInput.View())
	}
	if len(parts) == 0 {
		return helpStyle.Render(truncateToWidth(" no tags (ctrl+t to add)", width))
	}
	return truncateToWidth(" "+strings.Join(parts, " "), width)
}

func (m *Model) renderStatus(width int) string {
	if toast := m.toastLine(width); toast != "" {
		return toast
	}
	help := "ctrl+s save · ctrl+n new · ctrl+f search · ctrl+t tag · ctrl+b notes · ctrl+l links · ctrl+o import · ctrl+c quit"
	left := statusStyle.Render(truncateToWidth(m.status, max(1, width/3)))
	return truncateToWidth(left+"  "+helpStyle.Render(help), width)
}

// View rows of the search bar and the dropdown overlay under it. The
// mouse handler checks clicks against the same rows.
const (
	searchBarRow = 1
	dropdownRow  = 2
)

// overlayDropdown splices the search results under the search bar row.
func (m *Model) overlayDropdown(view string, width int) string {
	results := m.filter.Results()
	dropWidth := max(minSidebarWidth, m.sidebarWidth())
	rows := make([]string, 0, len(results)+1)
	rows = append(rows, dropdownHeaderStyle.Render(padToWidth(" results", dropWidth)))
	if len(results) == 0 {
		rows = append(rows, menuDropStyle.Render(padToWidth(" no matches", dropWidth)))
	}
	for i, res := range results {
		label := truncateToWidth(" "+res.Title, max(1, dropWidth-6))
		label += " " + distanceStyle.Render(fmt.Sprintf("%.2f", res.Distance))
		label = padToWidth(truncateToWidth(label, dropWidth), dropWidth)
		if i == m.dropdownIndex {
			rows = append(rows, selectedStyle.Render(label))
		} else {
			rows = append(rows, menuDropStyle.Render(label))
		}
	}
	return spliceLines(view, rows, dropdownRow, width)
}

func (m *Model) overlayConfirm(view string, width, height int) string {
	block, y := m.confirm.View(width, height)
	if block == "" {
		return view
	}
	return spliceLines(view, strings.Split(block, "\n"), y, width)
}

// spliceLines overwrites view lines starting at row with the overlay
// lines, padding the base view as needed.
func spliceLines(view string, overlay []string, row, width int) string {
	lines := strings.Split(view, "\n")
	for i, line := range overlay {
		at := row + i
		for at >= len(lines) {
			lines = append(lines, "")
		}
		base := lines[at]
		overlayWidth := xansi.StringWidth(line)
		if xansi.StringWidth(base) > overlayWidth {
			lines[at] = line + xansi.Cut(base, overlayWidth, width)
		} else {
			lines[at] = line
		}
	}
	return strings.Join(lines, "\n")
}
