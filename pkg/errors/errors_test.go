package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedLevelError(t *testing.T) {
	err := NewMalformedLevelError(7, "n/a")

	assert.Equal(t, `row 7: level "n/a" is not a non-negative integer`, err.Error())
	assert.True(t, Is(err, ErrInvalidInput))

	var mle *MalformedLevelError
	require.True(t, As(err, &mle))
	assert.Equal(t, 7, mle.Row)
	assert.Equal(t, "n/a", mle.Value)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("format", "xml", "unknown output format")

	assert.Equal(t, "validation failed for field format: unknown output format", err.Error())
	assert.True(t, Is(err, ErrInvalidInput))

	noField := NewValidationError("", nil, "bad input")
	assert.Equal(t, "validation failed: bad input", noField.Error())
}

func TestIOErrorUnwrap(t *testing.T) {
	cause := New("disk full")
	err := NewIOError("write", "/tmp/report.xlsx", cause)

	assert.Equal(t, "failed to write /tmp/report.xlsx: disk full", err.Error())
	assert.True(t, Is(err, cause))
}

func TestParseError(t *testing.T) {
	cause := New("unexpected EOF")
	err := NewParseError("xlsx", "book.xlsx", "unexpected EOF", cause)

	assert.Equal(t, "failed to parse xlsx file book.xlsx: unexpected EOF", err.Error())
	assert.True(t, Is(err, cause))

	noFile := NewParseError("yaml", "", "bad indent", nil)
	assert.Equal(t, "failed to parse yaml: bad indent", noFile.Error())
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("logger", "unknown level", nil)
	assert.Equal(t, "configuration error in logger: unknown level", err.Error())

	noComponent := NewConfigError("", "missing file", nil)
	assert.Equal(t, "configuration error: missing file", noComponent.Error())
}

func TestWrappersReturnNilOnNil(t *testing.T) {
	assert.NoError(t, WrapIO("read", "x", nil))
	assert.NoError(t, WrapParse("xlsx", "x", nil))
	assert.NoError(t, WrapValidation("field", nil))
}

func TestWrappersPreserveCause(t *testing.T) {
	cause := New("boom")

	assert.True(t, Is(WrapIO("open", "book.xlsx", cause), cause))
	assert.True(t, Is(WrapParse("xlsx", "book.xlsx", cause), cause))
	assert.True(t, Is(WrapValidation("source", cause), ErrInvalidInput))
}
