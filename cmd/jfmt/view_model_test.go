package main

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	charmlog "charm.land/log/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.humanfmt.dev/jfmt"
)

func discardLogger() *charmlog.Logger {
	return charmlog.New(nilWriter{})
}

func TestNewViewModelFormatsOnConstruction(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
	assert.Equal(t, `{"a": 1}`+"\n", m.rendered)
	require.NoError(t, m.renderErr)
}

func TestNewViewModelCapturesFormatError(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{`, "f.json", 80, 24, discardLogger())
	assert.Error(t, m.renderErr)
}

func TestViewModelCycleAlignment(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
	require.Equal(t, jfmt.AlignNormalize, m.opts.NumberListAlignment)

	m.cycleAlignment()
	assert.Equal(t, jfmt.AlignLeft, m.opts.NumberListAlignment)

	m.cycleAlignment()
	assert.Equal(t, jfmt.AlignRight, m.opts.NumberListAlignment)

	m.cycleAlignment()
	assert.Equal(t, jfmt.AlignDecimal, m.opts.NumberListAlignment)

	m.cycleAlignment()
	assert.Equal(t, jfmt.AlignNormalize, m.opts.NumberListAlignment)
}

func TestViewModelCycleCommentPolicy(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
	require.Equal(t, jfmt.CommentPreserve, m.opts.CommentPolicy)

	m.cycleCommentPolicy()
	assert.Equal(t, jfmt.CommentRemove, m.opts.CommentPolicy)

	m.cycleCommentPolicy()
	assert.Equal(t, jfmt.CommentPreserve, m.opts.CommentPolicy)
}

func TestHandleKeyQuitKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"q", "ctrl+c", "esc"} {
		m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
		cmd := m.handleKey(key)

		assert.NotNil(t, cmd, "key %q should emit a quit command", key)
	}
}

func TestHandleKeyToggleBlankLines(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
	require.True(t, m.opts.PreserveBlankLines)

	cmd := m.handleKey("b")
	assert.Nil(t, cmd)
	assert.False(t, m.opts.PreserveBlankLines)

	m.handleKey("b")
	assert.True(t, m.opts.PreserveBlankLines)
}

func TestHandleKeyScroll(t *testing.T) {
	t.Parallel()

	m := newViewModel("a\nb\nc\nd\ne", "f.json", 80, 24, discardLogger())

	m.handleKey("j")
	assert.Equal(t, 1, m.scroll)

	m.handleKey("k")
	assert.Equal(t, 0, m.scroll)

	m.handleKey("k")
	assert.Equal(t, 0, m.scroll, "scroll never goes negative")

	m.handleKey("down")
	assert.Equal(t, 1, m.scroll)

	m.handleKey("up")
	assert.Equal(t, 0, m.scroll)
}

func TestHandleKeyUnknownIsNoop(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
	before := *m

	cmd := m.handleKey("x")
	assert.Nil(t, cmd)
	assert.Equal(t, before.scroll, m.scroll)
	assert.Equal(t, before.opts, m.opts)
}

func TestViewModelUpdateWindowSize(t *testing.T) {
	t.Parallel()

	m := newViewModel(`{"a":1}`, "f.json", 80, 24, discardLogger())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.cols)
	assert.Equal(t, 40, m.rows)
}

func TestVisibleWindowClampsRange(t *testing.T) {
	t.Parallel()

	text := "1\n2\n3\n4\n5"

	assert.Equal(t, "2\n3", visibleWindow(text, 1, 2))
	assert.Equal(t, "5", visibleWindow(text, 4, 10))
	assert.Equal(t, "", visibleWindow(text, 10, 2))
}

func TestVisibleWindowMinimumHeight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1", visibleWindow("1\n2\n3", 0, 0))
}
