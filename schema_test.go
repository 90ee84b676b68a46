package jfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsSchemaShape(t *testing.T) {
	t.Parallel()

	s := OptionsSchema()
	require.Equal(t, "object", s.Type)

	prop, ok := s.Properties["maxInlineLength"]
	require.True(t, ok)
	assert.Equal(t, "integer", prop.Type)

	prop, ok = s.Properties["commentPolicy"]
	require.True(t, ok)
	assert.Equal(t, "string", prop.Type)
	assert.Equal(t, []any{"preserve", "remove", "error"}, prop.Enum)
}

func TestOptionsSchemaExcludesUnserializableFields(t *testing.T) {
	t.Parallel()

	s := OptionsSchema()

	_, hasWidthFunc := s.Properties["widthFunc"]
	_, hasLogger := s.Properties["logger"]

	assert.False(t, hasWidthFunc)
	assert.False(t, hasLogger)
}

func TestOptionsSchemaCoversEveryConfigField(t *testing.T) {
	t.Parallel()

	s := OptionsSchema()

	for _, key := range []string{
		"maxInlineLength", "maxTotalLineLength", "indentSpaces", "useTabToIndent",
		"eolStyle", "numberListAlignment", "commentPolicy", "preserveBlankLines",
		"allowTrailingCommas",
	} {
		_, ok := s.Properties[key]
		assert.True(t, ok, "schema missing %s", key)
	}
}
