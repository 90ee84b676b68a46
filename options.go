package jfmt

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EOLStyle selects the line terminator written after every output line.
type EOLStyle int

const (
	EOLLf EOLStyle = iota
	EOLCrlf
)

func (s EOLStyle) text() string {
	if s == EOLCrlf {
		return "\r\n"
	}

	return "\n"
}

// NumberListAlignment selects how a number column's values are padded
// relative to one another (spec §4.3).
type NumberListAlignment int

const (
	AlignLeft NumberListAlignment = iota
	AlignRight
	AlignDecimal
	AlignNormalize
)

// TableCommaPlacement names where a table cell's comma falls relative to
// its column padding. The layout engine does not read it: a comma between
// cells is always written after the padded cell, so commas line up.
type TableCommaPlacement int

const (
	CommaAfterPadding TableCommaPlacement = iota
	CommaBeforePadding
	CommaBeforePaddingExceptNumbers
)

// CommentPolicy selects how comments in the input are handled.
type CommentPolicy int

const (
	CommentPreserve CommentPolicy = iota
	CommentRemove
	CommentTreatAsError
)

// Options holds every recognized formatting option from spec §6, plus the
// Go-specific WidthFunc and Logger hooks added in SPEC_FULL.md §7.
type Options struct {
	// Width budgets.
	MaxInlineLength    int
	MaxTotalLineLength int

	// Complexity/depth caps per format.
	MaxInlineComplexity       int
	MaxCompactArrayComplexity int
	MaxTableRowComplexity     int
	MinCompactArrayRowItems   int
	AlwaysExpandDepth         int // -1 disables

	// Indentation.
	IndentSpaces   int
	UseTabToIndent bool
	PrefixString   string

	// Padding.
	NestedBracketPadding bool
	SimpleBracketPadding bool
	ColonPadding         bool
	CommaPadding         bool
	CommentPadding       bool

	EOLStyle EOLStyle

	NumberListAlignment        NumberListAlignment
	TableCommaPlacement        TableCommaPlacement
	MaxPropNamePadding         int
	ColonBeforePropNamePadding bool

	CommentPolicy       CommentPolicy
	PreserveBlankLines  bool
	AllowTrailingCommas bool

	// Table eligibility gates. A value > 100 disables the corresponding
	// format, per spec §4.3 "Similarity gating".
	TableObjectMinimumSimilarity float64
	TableArrayMinimumSimilarity  float64

	// JustifyParallelNumbers governs MultilineCompact's per-item numeric
	// right-justification (spec §4.4 "Emission contracts").
	JustifyParallelNumbers bool

	// WidthFunc measures string width for every padding/alignment decision.
	// Defaults to [DefaultWidth]; set to [EastAsianWidth] for CJK-aware
	// layouts.
	WidthFunc WidthFunc

	// Logger is the logger for this formatting call, [slog.Default] when
	// nil. The layout engine writes no events to it.
	Logger *slog.Logger
}

// DefaultOptions returns the package's default [Options], matching the
// values a bare [Format] call with a zero Options would not otherwise get
// (zero Options would make every width budget 0 and force Expanded
// everywhere, which is never useful as a default).
func DefaultOptions() Options {
	return Options{
		MaxInlineLength:               80,
		MaxTotalLineLength:            120,
		MaxInlineComplexity:           2,
		MaxCompactArrayComplexity:     1,
		MaxTableRowComplexity:         2,
		MinCompactArrayRowItems:       3,
		AlwaysExpandDepth:             -1,
		IndentSpaces:                  4,
		UseTabToIndent:                false,
		PrefixString:                  "",
		NestedBracketPadding:          true,
		SimpleBracketPadding:          false,
		ColonPadding:                  true,
		CommaPadding:                  true,
		CommentPadding:                true,
		EOLStyle:                      EOLLf,
		NumberListAlignment:           AlignNormalize,
		TableCommaPlacement:           CommaBeforePaddingExceptNumbers,
		MaxPropNamePadding:            80,
		ColonBeforePropNamePadding:    true,
		CommentPolicy:                CommentPreserve,
		PreserveBlankLines:            true,
		AllowTrailingCommas:           false,
		TableObjectMinimumSimilarity:  75,
		TableArrayMinimumSimilarity:   50,
		JustifyParallelNumbers:        true,
		WidthFunc:                     DefaultWidth,
	}
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

func (o *Options) widthFunc() WidthFunc {
	if o.WidthFunc != nil {
		return o.WidthFunc
	}

	return DefaultWidth
}

// normalized returns a copy of o with nil hooks and zero-value numeric
// fields that would otherwise disable the engine filled from
// [DefaultOptions]. Only fields equal to the Go zero value are replaced, so
// an explicitly-set MaxInlineLength of 0 ("never inline") is respected.
func (o Options) normalized() Options {
	d := DefaultOptions()

	if o.MaxInlineLength == 0 && o.MaxTotalLineLength == 0 {
		o.MaxInlineLength = d.MaxInlineLength
		o.MaxTotalLineLength = d.MaxTotalLineLength
	}

	if o.IndentSpaces == 0 && !o.UseTabToIndent {
		o.IndentSpaces = d.IndentSpaces
	}

	if o.MinCompactArrayRowItems == 0 {
		o.MinCompactArrayRowItems = d.MinCompactArrayRowItems
	}

	if o.AlwaysExpandDepth == 0 {
		o.AlwaysExpandDepth = d.AlwaysExpandDepth
	}

	if o.TableObjectMinimumSimilarity == 0 {
		o.TableObjectMinimumSimilarity = d.TableObjectMinimumSimilarity
	}

	if o.TableArrayMinimumSimilarity == 0 {
		o.TableArrayMinimumSimilarity = d.TableArrayMinimumSimilarity
	}

	if o.MaxPropNamePadding == 0 {
		o.MaxPropNamePadding = d.MaxPropNamePadding
	}

	if o.WidthFunc == nil {
		o.WidthFunc = d.WidthFunc
	}

	return o
}

// Flags holds CLI flag names for formatting configuration, following the
// same Flags/Config split as the teacher's log.Config and profile.Config:
// Flags holds flag *names* so embedders can rename them, Config holds
// resolved *values*.
type Flags struct {
	MaxInlineLength     string
	MaxTotalLineLength  string
	IndentSpaces        string
	UseTabToIndent      string
	EOLStyle            string
	NumberListAlignment string
	CommentPolicy       string
	PreserveBlankLines  string
	AllowTrailingCommas string
	EastAsianWidth      string
}

// Config holds CLI flag values for formatting configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Options] to resolve a [Options] value
// for [Format]/[Minify].
type Config struct {
	Flags Flags `yaml:"-"`

	MaxInlineLength     int    `yaml:"maxInlineLength"`
	MaxTotalLineLength  int    `yaml:"maxTotalLineLength"`
	IndentSpaces        int    `yaml:"indentSpaces"`
	UseTabToIndent      bool   `yaml:"useTabToIndent"`
	EOLStyle            string `yaml:"eolStyle"`
	NumberListAlignment string `yaml:"numberListAlignment"`
	CommentPolicy       string `yaml:"commentPolicy"`
	PreserveBlankLines  bool   `yaml:"preserveBlankLines"`
	AllowTrailingCommas bool   `yaml:"allowTrailingCommas"`
	EastAsianWidth      bool   `yaml:"eastAsianWidth"`
}

// NewConfig returns a new [Config] with default flag names and values drawn
// from [DefaultOptions].
func NewConfig() *Config {
	d := DefaultOptions()

	return &Config{
		Flags: Flags{
			MaxInlineLength:     "max-inline-length",
			MaxTotalLineLength:  "max-width",
			IndentSpaces:        "indent",
			UseTabToIndent:      "use-tabs",
			EOLStyle:            "eol",
			NumberListAlignment: "number-alignment",
			CommentPolicy:       "comments",
			PreserveBlankLines:  "preserve-blank-lines",
			AllowTrailingCommas: "allow-trailing-commas",
			EastAsianWidth:      "east-asian-width",
		},
		MaxInlineLength:     d.MaxInlineLength,
		MaxTotalLineLength:  d.MaxTotalLineLength,
		IndentSpaces:        d.IndentSpaces,
		UseTabToIndent:      d.UseTabToIndent,
		EOLStyle:            "lf",
		NumberListAlignment: "normalize",
		CommentPolicy:       "preserve",
		PreserveBlankLines:  d.PreserveBlankLines,
		AllowTrailingCommas: d.AllowTrailingCommas,
	}
}

// RegisterFlags adds formatting flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.MaxInlineLength, c.Flags.MaxInlineLength, c.MaxInlineLength,
		"maximum content width for inline/table candidates")
	flags.IntVar(&c.MaxTotalLineLength, c.Flags.MaxTotalLineLength, c.MaxTotalLineLength,
		"maximum total output line width, including indent and prefix")
	flags.IntVar(&c.IndentSpaces, c.Flags.IndentSpaces, c.IndentSpaces,
		"spaces per indent level")
	flags.BoolVar(&c.UseTabToIndent, c.Flags.UseTabToIndent, c.UseTabToIndent,
		"indent with tabs instead of spaces")
	flags.StringVar(&c.EOLStyle, c.Flags.EOLStyle, c.EOLStyle,
		"line ending style, one of: lf, crlf")
	flags.StringVar(&c.NumberListAlignment, c.Flags.NumberListAlignment, c.NumberListAlignment,
		"number column alignment, one of: left, right, decimal, normalize")
	flags.StringVar(&c.CommentPolicy, c.Flags.CommentPolicy, c.CommentPolicy,
		"comment handling, one of: preserve, remove, error")
	flags.BoolVar(&c.PreserveBlankLines, c.Flags.PreserveBlankLines, c.PreserveBlankLines,
		"preserve blank lines between elements")
	flags.BoolVar(&c.AllowTrailingCommas, c.Flags.AllowTrailingCommas, c.AllowTrailingCommas,
		"allow a trailing comma before a closing bracket")
	flags.BoolVar(&c.EastAsianWidth, c.Flags.EastAsianWidth, c.EastAsianWidth,
		"measure string width treating East-Asian fullwidth characters as 2 columns")
}

// RegisterCompletions registers shell completions for formatting flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	completions := []struct {
		flag    string
		choices []string
	}{
		{c.Flags.EOLStyle, []string{"lf", "crlf"}},
		{c.Flags.NumberListAlignment, []string{"left", "right", "decimal", "normalize"}},
		{c.Flags.CommentPolicy, []string{"preserve", "remove", "error"}},
	}

	for _, comp := range completions {
		err := cmd.RegisterFlagCompletionFunc(comp.flag,
			cobra.FixedCompletions(comp.choices, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", comp.flag, err)
		}
	}

	return nil
}

// Options resolves c into an [Options] value, parsing the string-encoded
// enum flags. Returns [ErrInvalidOption] if an enum flag holds an
// unrecognized value.
func (c *Config) Options() (Options, error) {
	o := DefaultOptions()
	o.MaxInlineLength = c.MaxInlineLength
	o.MaxTotalLineLength = c.MaxTotalLineLength
	o.IndentSpaces = c.IndentSpaces
	o.UseTabToIndent = c.UseTabToIndent
	o.PreserveBlankLines = c.PreserveBlankLines
	o.AllowTrailingCommas = c.AllowTrailingCommas

	if c.EastAsianWidth {
		o.WidthFunc = EastAsianWidth
	}

	switch c.EOLStyle {
	case "lf", "":
		o.EOLStyle = EOLLf
	case "crlf":
		o.EOLStyle = EOLCrlf
	default:
		return Options{}, fmt.Errorf("%w: eol %q", ErrInvalidOption, c.EOLStyle)
	}

	switch c.NumberListAlignment {
	case "left":
		o.NumberListAlignment = AlignLeft
	case "right":
		o.NumberListAlignment = AlignRight
	case "decimal":
		o.NumberListAlignment = AlignDecimal
	case "normalize", "":
		o.NumberListAlignment = AlignNormalize
	default:
		return Options{}, fmt.Errorf("%w: number-alignment %q", ErrInvalidOption, c.NumberListAlignment)
	}

	switch c.CommentPolicy {
	case "preserve", "":
		o.CommentPolicy = CommentPreserve
	case "remove":
		o.CommentPolicy = CommentRemove
	case "error":
		o.CommentPolicy = CommentTreatAsError
	default:
		return Options{}, fmt.Errorf("%w: comments %q", ErrInvalidOption, c.CommentPolicy)
	}

	return o, nil
}
