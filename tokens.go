package jfmt

import "strings"

// padType selects how much padding a container's brackets receive.
// Chosen per container at render time (spec §4.1): Empty if the container
// has no data children; Complex if it has any non-empty array/object child
// ([Node.HasNonEmptyContainerChild]); Simple otherwise.
type padType int

const (
	padEmpty padType = iota
	padSimple
	padComplex
)

// paddedTokens precomputes every fixed textual fragment and its measured
// width once per format call, so the layout engine and table template
// analyzer never re-measure punctuation. Built once by [newPaddedTokens] and
// passed down by reference through recursive calls (spec §4.1).
type paddedTokens struct {
	comma      string
	commaWidth int

	dummyComma string // spaces equal in width to comma, for trailing-row alignment

	colon      string
	colonWidth int

	commentSpace      string
	commentSpaceWidth int

	eol string

	arrStart      [3]string
	arrStartWidth [3]int
	arrEnd        [3]string
	arrEndWidth   [3]int
	objStart      [3]string
	objStartWidth [3]int
	objEnd        [3]string
	objEndWidth   [3]int

	indentUnit  string
	indentCache map[int]string
	spacesCache map[int]string

	width WidthFunc
}

// newPaddedTokens builds the fixed-fragment table for a single format call,
// parameterized by o.
func newPaddedTokens(o Options) *paddedTokens {
	wf := o.widthFunc()

	t := &paddedTokens{
		width:       wf,
		indentCache: make(map[int]string),
		spacesCache: make(map[int]string),
		eol:         o.EOLStyle.text(),
	}

	t.comma = ","
	if o.CommaPadding {
		t.comma = ", "
	}

	t.commaWidth = wf(t.comma)
	t.dummyComma = strings.Repeat(" ", t.commaWidth)

	t.colon = ":"
	if o.ColonPadding {
		t.colon = ": "
	}

	t.colonWidth = wf(t.colon)

	if o.CommentPadding {
		t.commentSpace = " "
	}

	t.commentSpaceWidth = wf(t.commentSpace)

	t.arrStart[padEmpty], t.arrEnd[padEmpty] = "[", "]"
	t.objStart[padEmpty], t.objEnd[padEmpty] = "{", "}"

	if o.SimpleBracketPadding {
		t.arrStart[padSimple], t.arrEnd[padSimple] = "[ ", " ]"
		t.objStart[padSimple], t.objEnd[padSimple] = "{ ", " }"
	} else {
		t.arrStart[padSimple], t.arrEnd[padSimple] = "[", "]"
		t.objStart[padSimple], t.objEnd[padSimple] = "{", "}"
	}

	if o.NestedBracketPadding {
		t.arrStart[padComplex], t.arrEnd[padComplex] = "[ ", " ]"
		t.objStart[padComplex], t.objEnd[padComplex] = "{ ", " }"
	} else {
		t.arrStart[padComplex], t.arrEnd[padComplex] = "[", "]"
		t.objStart[padComplex], t.objEnd[padComplex] = "{", "}"
	}

	for i := range 3 {
		t.arrStartWidth[i] = wf(t.arrStart[i])
		t.arrEndWidth[i] = wf(t.arrEnd[i])
		t.objStartWidth[i] = wf(t.objStart[i])
		t.objEndWidth[i] = wf(t.objEnd[i])
	}

	if o.UseTabToIndent {
		t.indentUnit = "\t"
	} else {
		t.indentUnit = strings.Repeat(" ", max(o.IndentSpaces, 0))
	}

	return t
}

func (t *paddedTokens) arrStartFor(p padType) string  { return t.arrStart[p] }
func (t *paddedTokens) arrEndFor(p padType) string    { return t.arrEnd[p] }
func (t *paddedTokens) objStartFor(p padType) string  { return t.objStart[p] }
func (t *paddedTokens) objEndFor(p padType) string    { return t.objEnd[p] }

func (t *paddedTokens) arrStartWidthFor(p padType) int { return t.arrStartWidth[p] }
func (t *paddedTokens) arrEndWidthFor(p padType) int   { return t.arrEndWidth[p] }
func (t *paddedTokens) objStartWidthFor(p padType) int { return t.objStartWidth[p] }
func (t *paddedTokens) objEndWidthFor(p padType) int   { return t.objEndWidth[p] }

// startFor/endFor/startWidthFor/endWidthFor dispatch on the node's own kind.
func (t *paddedTokens) startFor(k Kind, p padType) string {
	if k == KindObject {
		return t.objStartFor(p)
	}

	return t.arrStartFor(p)
}

func (t *paddedTokens) endFor(k Kind, p padType) string {
	if k == KindObject {
		return t.objEndFor(p)
	}

	return t.arrEndFor(p)
}

func (t *paddedTokens) startWidthFor(k Kind, p padType) int {
	if k == KindObject {
		return t.objStartWidthFor(p)
	}

	return t.arrStartWidthFor(p)
}

func (t *paddedTokens) endWidthFor(k Kind, p padType) int {
	if k == KindObject {
		return t.objEndWidthFor(p)
	}

	return t.arrEndWidthFor(p)
}

// padTypeFor determines a container's pad type from its own children, per
// spec §9's first open question: the decision is strictly the container's
// own complexity, never a guess based on a child's chosen pad type.
func padTypeFor(n *Node) padType {
	if len(n.DataChildren()) == 0 {
		return padEmpty
	}

	if n.HasNonEmptyContainerChild() {
		return padComplex
	}

	return padSimple
}

// indent returns the indentation string for the given depth, lazily
// memoized.
func (t *paddedTokens) indent(level int) string {
	if level <= 0 {
		return ""
	}

	if s, ok := t.indentCache[level]; ok {
		return s
	}

	s := strings.Repeat(t.indentUnit, level)
	t.indentCache[level] = s

	return s
}

// spaces returns count space characters, lazily memoized.
func (t *paddedTokens) spaces(count int) string {
	if count <= 0 {
		return ""
	}

	if s, ok := t.spacesCache[count]; ok {
		return s
	}

	s := strings.Repeat(" ", count)
	t.spacesCache[count] = s

	return s
}
