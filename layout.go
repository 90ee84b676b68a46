package jfmt

import "strings"

// containerFormat is the rendering strategy chosen for one Array/Object
// node (spec §4.4 "Format selection"). Chosen per container, top-down,
// when emission reaches it, after [measure] has run.
type containerFormat int

const (
	formatInline containerFormat = iota
	formatMultilineCompact
	formatTable
	formatExpanded
)

// layouter carries the per-call state the layout engine threads through
// its recursive emission: the precomputed tokens, the output sink, and the
// resolved Options.
type layouter struct {
	o   *Options
	tok *paddedTokens
	buf *outputBuffer
}

// renderDocument emits the root value (and any standalone comments
// alongside it) to a fresh buffer and returns the final text.
func renderDocument(roots []*Node, o Options) string {
	norm := o.normalized()
	tok := newPaddedTokens(norm)
	buf := newOutputBuffer(tok.eol, tok.width)
	lay := &layouter{o: &norm, tok: tok, buf: buf}

	for i, n := range roots {
		if i > 0 {
			buf.newline()
		}

		measure(n, tok)
		lay.writePrefixComment(n, 0)
		lay.emitNode(n, 0, false)
		lay.writePostfixComment(n)
	}

	buf.newline()

	return buf.String()
}

// emitNode writes n at the given indent depth. inRow is true when n is a
// table cell being rendered at a caller-controlled column width, in which
// case emitNode must not write its own trailing comma/newline.
func (l *layouter) emitNode(n *Node, depth int, inRow bool) {
	if n.Kind.IsStandaloneComment() {
		l.emitStandaloneComment(n, depth)

		return
	}

	if n.Kind.IsContainer() {
		l.emitContainer(n, depth)

		return
	}

	l.buf.writeString(n.Value)
}

// emitStandaloneComment writes a blank line or a free-floating comment
// occupying its own line(s).
func (l *layouter) emitStandaloneComment(n *Node, depth int) {
	if n.Kind == KindBlankLine {
		return
	}

	l.writeMultilineText(n.Value, depth)
}

// writeMultilineText writes s, starting every line after the first with
// depth's indent. Each line keeps the leading whitespace it had in the
// source; it is not normalized against the comment's source column.
func (l *layouter) writeMultilineText(s string, depth int) {
	lines := strings.Split(s, "\n")

	for i, line := range lines {
		if i > 0 {
			l.buf.newline()
			l.buf.writeString(l.tok.indent(depth))
		}

		l.buf.writeString(line)
	}
}

// writePrefixComment writes n's prefix comment, if any, as lines preceding
// n at depth.
func (l *layouter) writePrefixComment(n *Node, depth int) {
	if n.PrefixComment == "" {
		return
	}

	l.buf.writeString(l.tok.indent(depth))
	l.writeMultilineText(n.PrefixComment, depth)
	l.buf.newline()
	l.buf.writeString(l.tok.indent(depth))
}

// writePostfixComment writes n's postfix comment, if any, immediately after
// n's value on the same line.
func (l *layouter) writePostfixComment(n *Node) {
	if n.PostfixComment == "" {
		return
	}

	l.buf.writeString(l.tok.commentSpace)
	l.writeMultilineText(n.PostfixComment, 0)
}

// emitContainer chooses and applies a format for n (spec §4.4).
func (l *layouter) emitContainer(n *Node, depth int) {
	format := l.chooseFormat(n, depth)

	switch format {
	case formatInline:
		l.emitInline(n)
	case formatMultilineCompact:
		l.emitMultilineCompact(n, depth)
	case formatTable:
		l.emitTable(n, depth)
	default:
		l.emitExpanded(n, depth)
	}
}

// chooseFormat applies the priority rules from spec §4.4: Inline, then
// MultilineCompact, then Table, then Expanded as the universal fallback.
func (l *layouter) chooseFormat(n *Node, depth int) containerFormat {
	if l.o.AlwaysExpandDepth >= 0 && depth >= l.o.AlwaysExpandDepth {
		return formatExpanded
	}

	if l.inlineEligible(n, depth) {
		return formatInline
	}

	if l.compactEligible(n, depth) {
		return formatMultilineCompact
	}

	if l.tableEligible(n, depth) {
		return formatTable
	}

	return formatExpanded
}

// inlineEligible reports whether n fits entirely on its current line
// (spec §4.4 "Inline").
func (l *layouter) inlineEligible(n *Node, depth int) bool {
	if n.RequiresMultipleLines {
		return false
	}

	if n.Complexity > l.o.MaxInlineComplexity {
		return false
	}

	if n.MinimumTotalLen > l.o.MaxInlineLength {
		return false
	}

	lineBudget := l.o.MaxTotalLineLength - l.buf.currentLineWidth()

	return n.MinimumTotalLen <= lineBudget
}

// compactEligible reports whether n's data children can be wrapped,
// multiple per line, without a table (spec §4.4 "MultilineCompact"):
// requires array kind, a minimum item count, no standalone comment or
// blank-line children, no comment attached to any item, and every item
// within the compact complexity cap.
func (l *layouter) compactEligible(n *Node, depth int) bool {
	if n.Kind != KindArray {
		return false
	}

	for _, c := range n.Children {
		if !c.IsDataChild() || c.PrefixComment != "" || c.MiddleComment != "" || c.PostfixComment != "" {
			return false
		}
	}

	children := n.DataChildren()
	if len(children) < l.o.MinCompactArrayRowItems {
		return false
	}

	for _, c := range children {
		if c.Complexity > l.o.MaxCompactArrayComplexity {
			return false
		}

		if c.RequiresMultipleLines {
			return false
		}
	}

	return true
}

// tableEligible reports whether n's data children can be analyzed into a
// [tableTemplate] that both satisfies the row-complexity cap and fits the
// line budget (after [tableTemplate.tryToFit] pruning).
func (l *layouter) tableEligible(n *Node, depth int) bool {
	tpl, ok := l.tryBuildTable(n, depth)

	return ok && tpl != nil
}

// tryBuildTable analyzes and fits a table template for n, returning
// ok=false if no table candidate clears the complexity/similarity gates or
// fits the available width even after pruning.
func (l *layouter) tryBuildTable(n *Node, depth int) (*tableTemplate, bool) {
	for _, c := range n.DataChildren() {
		if c.Complexity > l.o.MaxTableRowComplexity {
			return nil, false
		}

		// emitTableRow writes only names and values, so a row with a
		// middle comment or with comments inside it is left to Expanded.
		if c.MiddleComment != "" || firstComment(c.Children) != nil {
			return nil, false
		}
	}

	tpl, ok := analyzeRows(n, l.o, l.tok)
	if !ok {
		return nil, false
	}

	indentWidth := l.tok.width(l.tok.indent(depth + 1))
	budget := l.o.MaxTotalLineLength - indentWidth

	if tpl.totalLength > budget {
		if !tpl.tryToFit(budget, l.o, l.tok) {
			return nil, false
		}
	}

	return tpl, true
}

// emitInline writes n's full subtree on the current line, with no
// newlines anywhere beneath it.
func (l *layouter) emitInline(n *Node) {
	pt := padTypeFor(n)
	l.buf.writeString(l.tok.startFor(n.Kind, pt))

	children := n.DataChildren()
	for i, c := range children {
		if i > 0 {
			l.buf.writeString(l.tok.comma)
		}

		l.emitInlineChild(c)
	}

	l.buf.writeString(l.tok.endFor(n.Kind, pt))
}

func (l *layouter) emitInlineChild(c *Node) {
	if c.PrefixComment != "" {
		l.buf.writeString(c.PrefixComment)
		l.buf.writeString(l.tok.commentSpace)
	}

	if n := c.Name; n != "" {
		l.buf.writeString(n)
		l.buf.writeString(l.tok.colon)
	}

	if c.MiddleComment != "" {
		l.buf.writeString(c.MiddleComment)
		l.buf.writeString(l.tok.commentSpace)
	}

	l.emitNode(c, 0, false)

	if c.PostfixComment != "" {
		l.buf.writeString(l.tok.commentSpace)
		l.buf.writeString(c.PostfixComment)
	}
}

// emitMultilineCompact wraps an array's items several-per-line, packing as
// many as fit within MaxTotalLineLength per line (spec §4.4
// "MultilineCompact").
func (l *layouter) emitMultilineCompact(n *Node, depth int) {
	pt := padTypeFor(n)
	children := n.DataChildren()

	l.buf.writeString(l.tok.startFor(n.Kind, pt))
	l.buf.newline()

	childDepth := depth + 1
	indent := l.tok.indent(childDepth)

	l.buf.writeString(indent)

	numericWidth := 0

	if l.o.JustifyParallelNumbers {
		numericWidth = maxChildValueWidth(children, l.tok.width)
	}

	for i, c := range children {
		isLast := i == len(children)-1

		cell := c.Value
		if c.Kind.IsContainer() {
			cell = l.renderInline(c)
		}

		if numericWidth > 0 && c.Kind == KindNumber {
			cell = l.tok.spaces(max(numericWidth-l.tok.width(c.Value), 0)) + c.Value
		}

		l.buf.writeString(cell)

		if !isLast {
			l.buf.writeString(l.tok.comma)
		}

		next := l.tok.width(cell) + l.tok.commaWidth

		fitsMore := !isLast && l.buf.currentLineWidth()+next <= l.o.MaxTotalLineLength

		if !isLast && !fitsMore {
			l.buf.newline()
			l.buf.writeString(indent)
		} else if !isLast {
			l.buf.writeString(l.tok.spaces(1))
		}
	}

	l.buf.newline()
	l.buf.writeString(l.tok.indent(depth))
	l.buf.writeString(l.tok.endFor(n.Kind, pt))
}

func maxChildValueWidth(children []*Node, width WidthFunc) int {
	w := 0

	for _, c := range children {
		if c.Kind == KindNumber {
			if v := width(c.Value); v > w {
				w = v
			}
		}
	}

	return w
}

// emitTable writes n's data children as aligned table rows, each preceded
// by its property name (padded to the longest row name) when n is an
// object. If [tryBuildTable] rejects n, the whole container is written
// with [emitExpanded] instead.
func (l *layouter) emitTable(n *Node, depth int) {
	tpl, ok := l.tryBuildTable(n, depth)
	if !ok {
		l.emitExpanded(n, depth)

		return
	}

	pt := padTypeFor(n)
	l.buf.writeString(l.tok.startFor(n.Kind, pt))
	l.buf.newline()

	childDepth := depth + 1
	indent := l.tok.indent(childDepth)

	nonComments := n.DataChildren()
	allChildren := n.Children

	rowNameWidth := 0
	for _, c := range nonComments {
		rowNameWidth = max(rowNameWidth, c.NameLen)
	}

	rowIdx := 0

	for _, c := range allChildren {
		if !c.IsDataChild() {
			l.buf.writeString(indent)
			l.emitStandaloneComment(c, childDepth)
			l.buf.newline()

			continue
		}

		l.writePrefixComment(c, childDepth)
		if c.PrefixComment == "" {
			l.buf.writeString(indent)
		}

		if c.Name != "" {
			l.buf.writeString(c.Name)
			l.buf.writeString(l.tok.colon)
			l.buf.writeString(l.tok.spaces(rowNameWidth - c.NameLen))
		}

		isLastData := rowIdx == len(nonComments)-1

		l.emitTableRow(tpl, rowIdx, isLastData)

		l.writePostfixComment(c)
		l.buf.newline()

		rowIdx++
	}

	l.buf.writeString(l.tok.indent(depth))
	l.buf.writeString(l.tok.endFor(n.Kind, pt))
}

// emitTableRow writes one row of tpl wrapped in the row element's own
// brackets/braces (an array row for a table over arrays, an object row for
// a table over objects), padding each cell to its column width, the same
// way emitTableCell wraps a nested col.sub cell in its own brackets before
// padding it to the outer column's width. A cell the row lacks is written
// as blank padding, and a comma is written only between two cells the row
// has. A comma follows every row but the last (spec §4.4 "Row emission").
func (l *layouter) emitTableRow(tpl *tableTemplate, rowIdx int, isLast bool) {
	row := tpl.source[rowIdx]

	rowKind := KindArray
	if tpl.isObjectRows {
		rowKind = KindObject
	}

	rowPad := padTypeFor(row)

	l.buf.writeString(l.tok.startFor(rowKind, rowPad))

	cells := tpl.rows[rowIdx]
	wroteCell := false

	for ci, col := range tpl.columns {
		cell := cells[ci]

		if ci > 0 {
			if cell != nil && wroteCell {
				l.buf.writeString(l.tok.comma)
			} else {
				l.buf.writeString(l.tok.dummyComma)
			}
		}

		if cell != nil {
			wroteCell = true
		}

		if tpl.isObjectRows && cell != nil {
			l.buf.writeString(cell.Name)
			l.buf.writeString(l.tok.colon)
		}

		l.emitTableCell(col, cell)
	}

	l.buf.writeString(l.tok.endFor(rowKind, rowPad))

	if isLast {
		l.buf.writeString(l.tok.dummyComma)
	} else {
		l.buf.writeString(l.tok.comma)
	}
}

// emitTableCell renders one cell padded to col's width: decimal-aligned
// for number columns under Decimal/Normalize, right-justified for Right,
// left-justified otherwise (spec §4.3 "Column rendering").
func (l *layouter) emitTableCell(col *tableColumn, cell *Node) {
	if cell == nil {
		l.buf.writeString(l.tok.spaces(col.width))

		return
	}

	if col.sub != nil && cell.Kind.IsContainer() {
		l.emitNode(cell, 0, true)
		l.buf.writeString(l.tok.spaces(max(col.width-cell.MinimumTotalLen, 0)))

		return
	}

	if col.colType == columnNumber && cell.Kind == KindNumber {
		l.emitNumberCell(col, cell)

		return
	}

	text := cell.Value
	if cell.Kind.IsContainer() {
		text = l.renderInline(cell)
	}

	pad := l.tok.spaces(max(col.width-l.tok.width(text), 0))
	l.buf.writeString(text)
	l.buf.writeString(pad)
}

// emitNumberCell renders a number cell under the configured
// NumberListAlignment.
func (l *layouter) emitNumberCell(col *tableColumn, cell *Node) {
	switch l.o.NumberListAlignment {
	case AlignLeft:
		l.buf.writeString(cell.Value)
		l.buf.writeString(l.tok.spaces(max(col.width-l.tok.width(cell.Value), 0)))
	case AlignRight:
		l.buf.writeString(l.tok.spaces(max(col.width-l.tok.width(cell.Value), 0)))
		l.buf.writeString(cell.Value)
	case AlignNormalize:
		if !col.anyExponent {
			if v, ok := normalizeNumber(cell.Value, col.maxDigitsAfter); ok {
				l.buf.writeString(v)
				l.buf.writeString(l.tok.spaces(max(col.width-l.tok.width(v), 0)))

				return
			}
		}

		l.buf.writeString(cell.Value)
		l.buf.writeString(l.tok.spaces(max(col.width-l.tok.width(cell.Value), 0)))
	default: // AlignDecimal
		l.buf.writeString(padNumberCell(cell.Value, col.maxDigitsBefore, col.maxDigitsAfter, l.tok))
	}
}

// renderInline renders n (a container cell too complex to use its nested
// sub-template, or a container item of a MultilineCompact array) into a
// standalone inline string, for embedding in a table cell that didn't
// qualify for recursive tabulation or in a compact line.
func (l *layouter) renderInline(n *Node) string {
	sub := newOutputBuffer(l.tok.eol, l.tok.width)
	subLay := &layouter{o: l.o, tok: l.tok, buf: sub}
	subLay.emitInline(n)

	return sub.String()
}

// emitExpanded writes n with one data child per line, each fully indented,
// optionally justifying property-name colons (spec §4.5 "Expanded").
func (l *layouter) emitExpanded(n *Node, depth int) {
	pt := padTypeFor(n)
	l.buf.writeString(l.tok.startFor(n.Kind, pt))

	if len(n.DataChildren()) == 0 && len(n.Children) == 0 {
		l.buf.writeString(l.tok.endFor(n.Kind, pt))

		return
	}

	l.buf.newline()

	childDepth := depth + 1
	indent := l.tok.indent(childDepth)

	nameWidth := 0

	if n.Kind == KindObject {
		nameWidth = expandedNameWidth(n, l.o, l.tok, l.tok.width(indent))
	}

	data := n.DataChildren()
	dataIdx := 0

	for _, c := range n.Children {
		if !c.IsDataChild() {
			l.buf.writeString(indent)
			l.emitStandaloneComment(c, childDepth)
			l.buf.newline()

			continue
		}

		l.writePrefixComment(c, childDepth)
		if c.PrefixComment == "" {
			l.buf.writeString(indent)
		}

		if c.Name != "" {
			l.buf.writeString(c.Name)

			pad := l.tok.spaces(max(nameWidth-l.tok.width(c.Name), 0))

			if l.o.ColonBeforePropNamePadding {
				l.buf.writeString(l.tok.colon)

				if nameWidth > 0 {
					l.buf.writeString(pad)
				}
			} else {
				if nameWidth > 0 {
					l.buf.writeString(pad)
				}

				l.buf.writeString(l.tok.colon)
			}
		}

		if c.MiddleComment != "" {
			l.buf.writeString(c.MiddleComment)
			l.buf.writeString(l.tok.commentSpace)
		}

		l.emitNode(c, childDepth, false)

		if dataIdx < len(data)-1 {
			l.buf.writeString(l.tok.comma)
		}

		l.writePostfixComment(c)
		l.buf.newline()

		dataIdx++
	}

	l.buf.writeString(l.tok.indent(depth))
	l.buf.writeString(l.tok.endFor(n.Kind, pt))
}

// expandedNameWidth computes the property-name column width for Expanded
// object rendering (spec §4.5 "Property name padding"): the shortest name
// is padded up to shortest+min(longest-shortest, MaxPropNamePadding), so a
// single outlier key can't blow out the whole column. Padding is abandoned
// (returns 0) if it would push any value past the available line width, or
// if any property's middle comment spans multiple lines, since there's no
// longer one line to keep the colon-to-value offset consistent on.
func expandedNameWidth(n *Node, o *Options, tok *paddedTokens, indentWidth int) int {
	children := n.DataChildren()
	if len(children) == 0 {
		return 0
	}

	shortest, longest := children[0].NameLen, children[0].NameLen

	for _, c := range children {
		if c.NameLen < shortest {
			shortest = c.NameLen
		}

		if c.NameLen > longest {
			longest = c.NameLen
		}

		if strings.Contains(c.MiddleComment, "\n") {
			return 0
		}
	}

	pad := longest - shortest
	if pad > o.MaxPropNamePadding {
		pad = o.MaxPropNamePadding
	}

	if pad <= 0 {
		return 0
	}

	width := shortest + pad

	for _, c := range children {
		if indentWidth+width+tok.colonWidth+c.MinimumTotalLen > o.MaxTotalLineLength {
			return 0
		}
	}

	return width
}
