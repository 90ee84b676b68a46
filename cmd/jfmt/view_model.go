package main

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	charmlog "charm.land/log/v2"

	"go.humanfmt.dev/jfmt"
)

// viewModel is the bubbletea model backing `jfmt view`. It holds the raw
// source once and re-renders it with a different [jfmt.Options] every time
// the user toggles a setting, so the preview always reflects the current
// choices.
type viewModel struct {
	src  string
	path string
	log  *charmlog.Logger

	opts jfmt.Options

	cols, rows int

	rendered string
	renderErr error
	scroll   int
}

func newViewModel(src, path string, cols, rows int, log *charmlog.Logger) *viewModel {
	m := &viewModel{
		src:  src,
		path: path,
		log:  log,
		opts: jfmt.DefaultOptions(),
		cols: cols,
		rows: rows,
	}

	m.reformat()

	return m
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg.String()); cmd != nil {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height
	}

	return m, nil
}

// handleKey applies the effect of a single key, identified by its
// [tea.KeyPressMsg.String] form, and returns a non-nil [tea.Cmd] only when
// the key should terminate the program.
func (m *viewModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "n":
		m.cycleAlignment()
		m.reformat()
	case "c":
		m.cycleCommentPolicy()
		m.reformat()
	case "b":
		m.opts.PreserveBlankLines = !m.opts.PreserveBlankLines
		m.reformat()
	case "up", "k":
		m.scroll = max(m.scroll-1, 0)
	case "down", "j":
		m.scroll++
	}

	return nil
}

func (m *viewModel) cycleAlignment() {
	switch m.opts.NumberListAlignment {
	case jfmt.AlignLeft:
		m.opts.NumberListAlignment = jfmt.AlignRight
	case jfmt.AlignRight:
		m.opts.NumberListAlignment = jfmt.AlignDecimal
	case jfmt.AlignDecimal:
		m.opts.NumberListAlignment = jfmt.AlignNormalize
	default:
		m.opts.NumberListAlignment = jfmt.AlignLeft
	}
}

func (m *viewModel) cycleCommentPolicy() {
	switch m.opts.CommentPolicy {
	case jfmt.CommentPreserve:
		m.opts.CommentPolicy = jfmt.CommentRemove
	default:
		m.opts.CommentPolicy = jfmt.CommentPreserve
	}
}

func (m *viewModel) reformat() {
	out, err := jfmt.Format(m.src, m.opts)
	if err != nil {
		m.renderErr = err
		m.log.Error("format failed", "path", m.path, "err", err)

		return
	}

	m.rendered = out
	m.renderErr = nil
	m.log.Debug("reformatted", "path", m.path, "alignment", m.opts.NumberListAlignment)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m *viewModel) View() tea.View {
	var body string

	if m.renderErr != nil {
		body = errorStyle.Render(fmt.Sprintf("error: %v", m.renderErr))
	} else {
		body = visibleWindow(m.rendered, m.scroll, m.rows-3)
	}

	header := headerStyle.Render(fmt.Sprintf("jfmt view — %s", m.path))
	footer := footerStyle.Render("n: number alignment  c: comments  b: blank lines  j/k: scroll  q: quit")

	v := tea.NewView(strings.Join([]string{header, body, footer}, "\n"))
	v.AltScreen = true

	return v
}

func visibleWindow(text string, scroll, height int) string {
	lines := strings.Split(text, "\n")

	if height < 1 {
		height = 1
	}

	start := scroll
	if start > len(lines) {
		start = len(lines)
	}

	end := start + height
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}
