package jfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measureWithDefaults(t *testing.T, n *Node) *paddedTokens {
	t.Helper()

	o := DefaultOptions().normalized()
	tok := newPaddedTokens(o)
	measure(n, tok)

	return tok
}

func TestMeasurePrimitive(t *testing.T) {
	t.Parallel()

	n := &Node{Kind: KindNumber, Value: "42"}
	measureWithDefaults(t, n)

	assert.Equal(t, 2, n.ValueLen)
	assert.Equal(t, 0, n.Complexity)
	assert.False(t, n.RequiresMultipleLines)
	assert.Equal(t, 2, n.MinimumTotalLen)
}

func TestMeasureEmptyContainer(t *testing.T) {
	t.Parallel()

	n := &Node{Kind: KindArray}
	measureWithDefaults(t, n)

	assert.Equal(t, 0, n.Complexity)
	assert.Equal(t, "", n.Value) // containers never populate Value
	assert.Equal(t, 2, n.MinimumTotalLen)
}

func TestMeasureComplexityPropagation(t *testing.T) {
	t.Parallel()

	// [[1, 2], 3] — the nested array bumps complexity by one level.
	n := &Node{
		Kind: KindArray,
		Children: []*Node{
			{Kind: KindArray, Children: []*Node{
				{Kind: KindNumber, Value: "1"},
				{Kind: KindNumber, Value: "2"},
			}},
			{Kind: KindNumber, Value: "3"},
		},
	}

	measureWithDefaults(t, n)

	require.Len(t, n.Children, 2)
	assert.Equal(t, 1, n.Children[0].Complexity) // non-empty array of numbers only
	assert.Equal(t, 2, n.Complexity)              // one level above its deepest child
}

func TestMeasureCommentForcesMultipleLines(t *testing.T) {
	t.Parallel()

	n := &Node{Kind: KindNumber, Value: "1", PostfixComment: "// trailing"}
	measureWithDefaults(t, n)

	assert.False(t, n.RequiresMultipleLines) // single-line comment alone doesn't force it

	multi := &Node{Kind: KindNumber, Value: "1", PostfixComment: "/* line1\nline2 */"}
	measureWithDefaults(t, multi)
	assert.True(t, multi.RequiresMultipleLines)
}

func TestMeasurePostCommentLineStyleForcesContainerMultiline(t *testing.T) {
	t.Parallel()

	n := &Node{
		Kind: KindArray,
		Children: []*Node{
			{Kind: KindNumber, Value: "1", PostfixComment: "// note", IsPostCommentLineStyle: true},
			{Kind: KindNumber, Value: "2"},
		},
	}

	measureWithDefaults(t, n)

	assert.True(t, n.RequiresMultipleLines)
}

func TestMinimumTotalLenIncludesNameAndColon(t *testing.T) {
	t.Parallel()

	n := &Node{Kind: KindNumber, Value: "1", Name: `"a"`}
	tok := measureWithDefaults(t, n)

	assert.Equal(t, n.NameLen+tok.colonWidth+n.ValueLen, n.MinimumTotalLen)
}

func TestContainsNewline(t *testing.T) {
	t.Parallel()

	assert.True(t, containsNewline("a\nb"))
	assert.False(t, containsNewline("ab"))
	assert.False(t, containsNewline(""))
}
