// Package render draws the sidebar rows and chrome with lipgloss.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/chat-sidebar/internal/colors"
)

const (
	unreadWidth      = 5
	minTitleWidth    = 10
	defaultWidth     = 40
	archiveRowSymbol = "▤"
	selectedSymbol   = "›"
)

// ChatRowState defines the inputs needed to render a chat row.
type ChatRowState struct {
	Title    string
	Unread   int
	Selected bool
	Active   bool
	Compact  bool
	Width    int
}

// ArchiveRowState defines the inputs needed to render the archive row.
type ArchiveRowState struct {
	Count    int
	Selected bool
	Width    int
}

// FolderTab is one entry of the folder bar.
type FolderTab struct {
	Title    string
	Selected bool
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Hints         []string
	StatusText    string
	StatusIsError bool
	Width         int
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ansiColorNumber(colors.Blue))).
			Foreground(lipgloss.Color("0"))
	unreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Header renders the pane title with the navigation breadcrumb.
func Header(title, breadcrumb string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	text := title
	if breadcrumb != "" {
		text = fmt.Sprintf("%s  %s", title, dimStyle.Render(breadcrumb))
	}
	return headerStyle.MaxWidth(width).Render(text)
}

// FolderBar renders the folder tabs on one line.
func FolderBar(tabs []FolderTab, width int) string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Selected {
			parts = append(parts, activeTabStyle.Render(tab.Title))
			continue
		}
		parts = append(parts, dimStyle.Render(tab.Title))
	}
	line := strings.Join(parts, " │ ")
	if width > 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

// ArchiveRow renders the entry that opens the archived chats pane.
func ArchiveRow(state ArchiveRowState) string {
	text := fmt.Sprintf("%s Archived Chats (%d)", archiveRowSymbol, state.Count)
	return row(text, "", state.Selected, state.Width)
}

// ChatRow renders a single chat.
func ChatRow(state ChatRowState) string {
	title := state.Title
	if state.Active {
		title = selectedSymbol + " " + title
	}
	unread := ""
	if state.Unread > 0 && !state.Compact {
		unread = unreadStyle.Render(fmt.Sprintf("%*d", unreadWidth, state.Unread))
	}
	return row(title, unread, state.Selected, state.Width)
}

// Empty renders the placeholder for an empty pane.
func Empty(text string) string {
	return dimStyle.Render(text)
}

// Footer renders key hints and the status line.
func Footer(state FooterState) string {
	var b strings.Builder
	if state.StatusText != "" {
		if state.StatusIsError {
			b.WriteString(errorStyle.Render(state.StatusText))
		} else {
			b.WriteString(state.StatusText)
		}
		b.WriteString("\n")
	}
	hints := strings.Join(state.Hints, " • ")
	if state.Width > 0 {
		hints = truncate(hints, state.Width)
	}
	b.WriteString(dimStyle.Render(hints))
	return b.String()
}

func row(title, suffix string, selected bool, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	titleWidth := width - lipgloss.Width(suffix) - 1
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}
	line := fmt.Sprintf("%-*s", titleWidth, truncate(title, titleWidth)) + suffix
	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
