package jfmt

import "github.com/google/jsonschema-go/jsonschema"

// OptionsSchema returns a JSON Schema (Draft 2020-12) describing the
// serializable surface of [Options], suitable for validating a
// `--config file.json`/`file.yaml` document before it's decoded into an
// [Options] value. Fields with no meaningful external representation
// (WidthFunc, Logger) are intentionally absent.
func OptionsSchema() *jsonschema.Schema {
	props := map[string]*jsonschema.Schema{
		"maxInlineLength":              intSchema("maximum content width for inline/table candidates"),
		"maxTotalLineLength":           intSchema("maximum total output line width, including indent and prefix"),
		"maxInlineComplexity":          intSchema("maximum nesting depth eligible for Inline format"),
		"maxCompactArrayComplexity":    intSchema("maximum item nesting depth eligible for MultilineCompact"),
		"maxTableRowComplexity":        intSchema("maximum row nesting depth eligible for Table"),
		"minCompactArrayRowItems":      intSchema("minimum item count before MultilineCompact is considered"),
		"alwaysExpandDepth":            intSchema("depth at or beyond which every container is Expanded; -1 disables"),
		"indentSpaces":                 intSchema("spaces per indent level"),
		"useTabToIndent":               boolSchema("indent with tabs instead of spaces"),
		"prefixString":                 stringSchema("string prepended to every output line"),
		"nestedBracketPadding":         boolSchema("pad brackets of a container holding a non-empty container child"),
		"simpleBracketPadding":         boolSchema("pad brackets of a container holding only scalar children"),
		"colonPadding":                 boolSchema("write a space after each property colon"),
		"commaPadding":                 boolSchema("write a space after each comma"),
		"commentPadding":               boolSchema("write a space before an attached comment"),
		"eolStyle":                     enumSchema("line ending style", "lf", "crlf"),
		"numberListAlignment":          enumSchema("number column alignment", "left", "right", "decimal", "normalize"),
		"tableCommaPlacement":          enumSchema("where a table cell's comma falls relative to padding; not read by the layout engine", "afterPadding", "beforePadding", "beforePaddingExceptNumbers"),
		"maxPropNamePadding":           intSchema("maximum number of spaces added to align property names in Expanded"),
		"colonBeforePropNamePadding":   boolSchema("in Expanded, write the colon right after the name and pad after it (true) or pad the name before the colon (false)"),
		"commentPolicy":                enumSchema("comment handling", "preserve", "remove", "error"),
		"preserveBlankLines":           boolSchema("preserve blank lines between elements"),
		"allowTrailingCommas":          boolSchema("allow a trailing comma before a closing bracket"),
		"tableObjectMinimumSimilarity": numberSchema("minimum percentage of shared keys for object rows to form a table; >100 disables"),
		"tableArrayMinimumSimilarity":  numberSchema("minimum percentage of shared positions for array rows to form a table; >100 disables"),
		"justifyParallelNumbers":       boolSchema("right-justify numbers within a MultilineCompact line"),
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
	}
}

func intSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func numberSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: desc}
}

func boolSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc}
}

func stringSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func enumSchema(desc string, values ...string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}

	return &jsonschema.Schema{Type: "string", Description: desc, Enum: enum}
}
