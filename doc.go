// Package jfmt formats and minifies JSON and JSONC (JSON with comments)
// text into a deterministic, readable layout.
//
// The formatter never reorders or reinterprets data: every value, key,
// and comment from the input appears in the output, byte-identical in
// meaning. What changes is whitespace, indentation, and how a container's
// children are distributed across lines.
//
// # Layout Engine
//
// [Format] parses a document into a tree of [Node] values, measures every
// node's rendered width bottom-up, then chooses one of four layouts for
// each array or object as emission reaches it, from the root inward:
//
//  1. Inline: the whole container fits on the current line.
//
//  2. MultilineCompact: an array of simple, similarly-shaped items wraps
//     several per line, like a paragraph of numbers.
//
//  3. Table: an array or object whose children are structurally similar
//     objects (or arrays) renders as aligned columns, each padded to its
//     own width.
//
//  4. Expanded: one child per line, fully indented. The universal
//     fallback when nothing more compact fits.
//
// A container's format is chosen independently of its siblings and
// ancestors; nothing about where a container sits in the tree changes how
// its own children are laid out, only the column budget available to it.
//
// # Options
//
// [Options] controls every layout decision: width budgets, complexity
// caps, indentation, padding, number-column alignment, and comment
// handling. [DefaultOptions] returns a reasonable starting point. [Config]
// bridges [Options] to a CLI via [Config.RegisterFlags].
//
// # Values vs. Text
//
// [Format] and [Minify] operate on JSONC source text and preserve
// comments. [FormatValue] and [MinifyValue] operate on decoded Go values
// (the shapes produced by encoding/json.Unmarshal into interface{}) and
// never see comments, since none exist on a Go value.
package jfmt
