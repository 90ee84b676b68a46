package jfmt

import "sort"

// columnType classifies the values observed in a table column, used to pick
// a rendering and alignment strategy per column (spec §4.3 "Column typing").
type columnType int

const (
	columnUnknown columnType = iota
	columnNull
	columnBool
	columnString
	columnNumber
	columnArray
	columnObject
	columnMixed
)

// tableColumn describes one column of a candidate [tableTemplate]: its
// observed type, the rendered width every row must be padded to, and (for
// Array/Object columns) the nested template analyzed from that column's own
// values.
type tableColumn struct {
	// key is the quoted property name for an object-row column; empty for
	// array-row columns, which are identified by index alone.
	key string

	colType columnType

	// width is the maximum MinimumTotalLen (or numeric cell width) across
	// every row's value in this column.
	width int

	// complexity is the maximum Complexity among this column's values.
	complexity int

	// Numeric alignment stats (spec §4.3 "Number column stats"), populated
	// only when colType is columnNumber.
	maxDigitsBefore int
	maxDigitsAfter  int
	allZero         bool
	anyExponent     bool

	// sub is the recursive sub-template for this column's values, populated
	// only when colType is columnArray or columnObject and every value is
	// itself table-eligible.
	sub *tableTemplate

	// values holds the Nodes contributing to this column, in row order,
	// skipping rows with no cell. Kept so a later collapse can re-measure
	// the column without walking back up to its owning template.
	values []*Node
}

// tableTemplate is a candidate tabular rendering of a container's data
// children: either the rows of an outer array/object being considered for
// Table format, or the nested values of one of its columns. The type is
// shared between both roles (spec §4.3: "the column template and the row
// template share one recursive shape").
type tableTemplate struct {
	columns []*tableColumn

	// rows[i][j] is the Node for row i, column j; nil when row i has no
	// value for column j: an object row lacking a key other rows carry (the
	// similarity gate admits such rows), or an array row shorter than the
	// longest row.
	rows [][]*Node

	// source is the original ordered list of data children this template
	// was built from, used to fall back cleanly if the template is
	// rejected.
	source []*Node

	isObjectRows bool

	// totalLength is the rendered width of the table including separators,
	// computed by [tableTemplate.computeTotalLength].
	totalLength int
}

// analyzeRows attempts to build a [tableTemplate] for n's data children. It
// returns ok=false when n's children are too dissimilar to justify a table
// (spec §4.3 "Table" format eligibility): fewer than 2 data children, mixed
// object/array rows, or similarity below the configured gate.
func analyzeRows(n *Node, o *Options, tok *paddedTokens) (*tableTemplate, bool) {
	rows := n.DataChildren()
	if len(rows) < 2 {
		return nil, false
	}

	allObjects := true
	allArrays := true

	for _, r := range rows {
		if r.Kind != KindObject {
			allObjects = false
		}

		if r.Kind != KindArray {
			allArrays = false
		}
	}

	switch {
	case allObjects:
		return analyzeObjectColumns(rows, o, tok)
	case allArrays:
		return analyzeArrayColumns(rows, o, tok)
	default:
		return nil, false
	}
}

// keyStat tracks, for one object-row key, how many rows carried it and the
// positions at which it appeared, used to order columns by mean index and
// to compute similarity (spec §4.3 "Object rows").
type keyStat struct {
	key      string
	sumIndex int
	occurs   int
}

// analyzeObjectColumns builds a table template from object-shaped rows,
// ordering columns by the mean index at which each key appears across rows
// and rejecting any row containing a duplicate key (spec §4.3 "Object rows").
func analyzeObjectColumns(rows []*Node, o *Options, tok *paddedTokens) (*tableTemplate, bool) {
	stats := make(map[string]*keyStat)
	order := make([]string, 0)

	for _, row := range rows {
		seen := make(map[string]bool)

		for i, field := range row.DataChildren() {
			if seen[field.Name] {
				return nil, false
			}

			seen[field.Name] = true

			st, ok := stats[field.Name]
			if !ok {
				st = &keyStat{key: field.Name}
				stats[field.Name] = st
				order = append(order, field.Name)
			}

			st.sumIndex += i
			st.occurs++
		}
	}

	totalRows := len(rows)

	similarity := columnSimilarity(stats, totalRows)
	if similarity < o.TableObjectMinimumSimilarity || o.TableObjectMinimumSimilarity > 100 {
		return nil, false
	}

	sort.SliceStable(order, func(i, j int) bool {
		si, sj := stats[order[i]], stats[order[j]]

		return meanIndex(si) < meanIndex(sj)
	})

	columns := make([]*tableColumn, len(order))
	colIndex := make(map[string]int, len(order))

	for i, key := range order {
		columns[i] = &tableColumn{key: key}
		colIndex[key] = i
	}

	grid := make([][]*Node, len(rows))

	for r, row := range rows {
		cells := make([]*Node, len(columns))

		for _, field := range row.DataChildren() {
			cells[colIndex[field.Name]] = field
		}

		grid[r] = cells
	}

	tpl := &tableTemplate{columns: columns, rows: grid, source: rows, isObjectRows: true}

	if !finalizeColumns(tpl, o, tok) {
		return nil, false
	}

	return tpl, true
}

// analyzeArrayColumns builds a table template from array-shaped rows,
// matching columns positionally (spec §4.3 "Array rows"). Rows may have
// differing lengths; missing trailing cells are left nil.
func analyzeArrayColumns(rows []*Node, o *Options, tok *paddedTokens) (*tableTemplate, bool) {
	maxCols := 0

	for _, row := range rows {
		if n := len(row.DataChildren()); n > maxCols {
			maxCols = n
		}
	}

	if maxCols == 0 {
		return nil, false
	}

	present := make([]int, maxCols)

	grid := make([][]*Node, len(rows))

	for r, row := range rows {
		children := row.DataChildren()
		cells := make([]*Node, maxCols)

		for i, c := range children {
			cells[i] = c
			present[i]++
		}

		grid[r] = cells
	}

	totalRows := len(rows)
	minPresent := present[0]

	for _, p := range present {
		if p < minPresent {
			minPresent = p
		}
	}

	similarity := 100.0 * float64(minPresent) / float64(totalRows)
	if similarity < o.TableArrayMinimumSimilarity || o.TableArrayMinimumSimilarity > 100 {
		return nil, false
	}

	columns := make([]*tableColumn, maxCols)
	for i := range columns {
		columns[i] = &tableColumn{}
	}

	tpl := &tableTemplate{columns: columns, rows: grid, source: rows, isObjectRows: false}

	if !finalizeColumns(tpl, o, tok) {
		return nil, false
	}

	return tpl, true
}

// columnSimilarity reports the unweighted mean, as a percentage, of each
// key's occurrence rate across rows: present cells divided by rows times
// distinct keys (spec §4.3 "Similarity gating").
func columnSimilarity(stats map[string]*keyStat, totalRows int) float64 {
	if totalRows == 0 || len(stats) == 0 {
		return 0
	}

	sum := 0.0

	for _, st := range stats {
		sum += float64(st.occurs) / float64(totalRows)
	}

	return 100.0 * sum / float64(len(stats))
}

func meanIndex(st *keyStat) float64 {
	if st.occurs == 0 {
		return 0
	}

	return float64(st.sumIndex) / float64(st.occurs)
}

// finalizeColumns analyzes every column's type, width, and (for
// Array/Object columns) nested sub-template, then computes the template's
// total rendered length. Returns false if any column turns out to carry no
// values at all (a fully-sparse column after positional matching), which
// disqualifies the table.
func finalizeColumns(tpl *tableTemplate, o *Options, tok *paddedTokens) bool {
	for ci, col := range tpl.columns {
		values := make([]*Node, 0, len(tpl.rows))

		for _, row := range tpl.rows {
			if row[ci] != nil {
				values = append(values, row[ci])
			}
		}

		if len(values) == 0 {
			return false
		}

		col.values = values
		analyzeColumn(col, values, o, tok)
	}

	tpl.computeTotalLength(o, tok)

	return true
}

// analyzeColumn establishes one column's type and width from its observed
// values (spec §4.3 "Column typing"): a column is typed as the single Kind
// shared by every value, demoted to Mixed if values disagree (other than
// Null, which never forces a demotion — a nullable column keeps its
// non-null type), and recursively analyzed as a nested table when every
// value is itself a non-empty Array or Object eligible for one.
func analyzeColumn(col *tableColumn, values []*Node, o *Options, tok *paddedTokens) {
	var observed columnType

	mixed := false
	maxComplexity := 0

	for _, v := range values {
		if v.Complexity > maxComplexity {
			maxComplexity = v.Complexity
		}

		vt := kindColumnType(v.Kind)

		switch {
		case vt == columnNull:
			continue
		case observed == columnUnknown:
			observed = vt
		case observed != vt:
			mixed = true
		}
	}

	col.complexity = maxComplexity

	if mixed {
		col.colType = columnMixed
	} else if observed == columnUnknown {
		col.colType = columnNull
	} else {
		col.colType = observed
	}

	switch col.colType {
	case columnNumber:
		analyzeNumberColumn(col, values)
	case columnArray, columnObject:
		if sub, ok := tryBuildSubTemplate(values, o, tok); ok {
			col.sub = sub
		} else {
			col.colType = columnMixed
		}
	}

	col.width = columnWidth(col, values, tok)
}

func kindColumnType(k Kind) columnType {
	switch k {
	case KindNull:
		return columnNull
	case KindTrue, KindFalse:
		return columnBool
	case KindString:
		return columnString
	case KindNumber:
		return columnNumber
	case KindArray:
		return columnArray
	case KindObject:
		return columnObject
	default:
		return columnMixed
	}
}

// analyzeNumberColumn computes decimal-alignment statistics across a
// number column's values (spec §4.3 "Number column stats").
func analyzeNumberColumn(col *tableColumn, values []*Node) {
	allZero := true

	for _, v := range values {
		if v.Kind != KindNumber {
			continue
		}

		before, after := numberDigitStats(v.Value)

		if before > col.maxDigitsBefore {
			col.maxDigitsBefore = before
		}

		if after > col.maxDigitsAfter {
			col.maxDigitsAfter = after
		}

		if hasExponent(v.Value) {
			col.anyExponent = true
		}

		if !isZeroLiteral(v.Value) {
			allZero = false
		}
	}

	col.allZero = allZero
}

// tryBuildSubTemplate attempts to build a recursive sub-template from an
// Array/Object column's values, treating each value's own data children as
// one more level of table rows. Returns ok=false when any value is empty
// (nothing to tabulate) or the recursive analysis itself fails its
// similarity gate.
func tryBuildSubTemplate(values []*Node, o *Options, tok *paddedTokens) (*tableTemplate, bool) {
	synthetic := &Node{Kind: KindArray, Children: values}

	for _, v := range values {
		if len(v.DataChildren()) == 0 {
			return nil, false
		}
	}

	return analyzeRows(synthetic, o, tok)
}

// columnWidth computes the column width every cell must be padded to:
// decimal-alignment width for number columns with no exponent (under every
// NumberListAlignment), otherwise the maximum MinimumTotalLen among the
// column's values.
func columnWidth(col *tableColumn, values []*Node, tok *paddedTokens) int {
	if col.colType == columnNumber {
		switch {
		case col.anyExponent:
			return maxMinimumTotalLen(values)
		default:
			return col.maxDigitsBefore + col.maxDigitsAfter + boolToInt(col.maxDigitsAfter > 0)
		}
	}

	return maxMinimumTotalLen(values)
}

func maxMinimumTotalLen(values []*Node) int {
	w := 0

	for _, v := range values {
		if v.MinimumTotalLen > w {
			w = v.MinimumTotalLen
		}
	}

	return w
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// computeTotalLength sets tpl.totalLength to the rendered width of the
// table as a whole: the widest row once every column is padded to its
// final width, plus inter-column separators and (for object rows) the
// shared key-column width.
func (tpl *tableTemplate) computeTotalLength(o *Options, tok *paddedTokens) {
	rowWidth := 0

	if tpl.isObjectRows {
		keyWidth := 0

		for _, row := range tpl.rows {
			for _, cell := range row {
				if cell != nil && cell.NameLen > keyWidth {
					keyWidth = cell.NameLen
				}
			}
		}

		rowWidth += keyWidth + tok.colonWidth
	}

	for i, col := range tpl.columns {
		if i > 0 {
			rowWidth += tok.commaWidth
		}

		rowWidth += col.width
	}

	tpl.totalLength = rowWidth
}

// tryToFit attempts to shrink tpl under budget by collapsing its deepest
// nested layer of sub-templates back to their source values (spec §4.3
// "try_to_fit"). It mutates tpl in place and returns whether the result now
// fits; the caller should reject the Table format entirely if it still
// doesn't, since a table with unrenderable nested columns is not useful.
func (tpl *tableTemplate) tryToFit(budget int, o *Options, tok *paddedTokens) bool {
	for tpl.totalLength > budget {
		if !tpl.collapseDeepestLayer(o, tok) {
			break
		}
	}

	return tpl.totalLength <= budget
}

// collapseDeepestLayer finds the deepest sub-template reachable from tpl
// and discards it (falling its column back to Mixed, whose container cells
// [layouter.emitTableCell] renders inline), then
// recomputes widths bottom-up. Returns false once there is nothing left to
// collapse.
func (tpl *tableTemplate) collapseDeepestLayer(o *Options, tok *paddedTokens) bool {
	deepest, _ := tpl.deepestSubTemplate(0)
	if deepest == nil {
		return false
	}

	deepest.sub = nil
	deepest.colType = columnMixed
	deepest.width = maxMinimumTotalLen(deepest.values)

	tpl.recomputeWidths(tok)
	tpl.computeTotalLength(o, tok)

	return true
}

// deepestSubTemplate returns the tableColumn holding the deepest
// sub-template under tpl, along with its depth, so collapseDeepestLayer
// always prunes leaves first.
func (tpl *tableTemplate) deepestSubTemplate(depth int) (*tableColumn, int) {
	var best *tableColumn

	bestDepth := depth

	for _, col := range tpl.columns {
		if col.sub == nil {
			continue
		}

		if nested, nd := col.sub.deepestSubTemplate(depth + 1); nested != nil {
			if nd > bestDepth {
				best, bestDepth = nested, nd
			}
		} else if depth+1 >= bestDepth {
			best, bestDepth = col, depth+1
		}
	}

	return best, bestDepth
}

// recomputeWidths refreshes every column's width from its current state
// (sub-template total length, or max MinimumTotalLen for non-table
// columns) without re-running type analysis.
func (tpl *tableTemplate) recomputeWidths(tok *paddedTokens) {
	for _, col := range tpl.columns {
		if col.sub != nil {
			// Refresh the nested template bottom-up first: its own widths
			// may be stale if the collapsed column lives even deeper.
			col.sub.recomputeWidths(tok)
			col.sub.computeTotalLengthFor(tok)
			col.width = col.sub.totalLength

			continue
		}

		col.width = maxMinimumTotalLen(col.values)
	}
}

// computeTotalLengthFor is computeTotalLength without needing an *Options,
// for use during bottom-up recomputation after a collapse.
func (tpl *tableTemplate) computeTotalLengthFor(tok *paddedTokens) {
	rowWidth := 0

	if tpl.isObjectRows {
		keyWidth := 0

		for _, row := range tpl.rows {
			for _, cell := range row {
				if cell != nil && cell.NameLen > keyWidth {
					keyWidth = cell.NameLen
				}
			}
		}

		rowWidth += keyWidth + tok.colonWidth
	}

	for i, col := range tpl.columns {
		if i > 0 {
			rowWidth += tok.commaWidth
		}

		rowWidth += col.width
	}

	tpl.totalLength = rowWidth
}

