package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/bootdrift/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "catalog",
			ID:       "3.1.9",
		}
		assert.Equal(t, "catalog 3.1.9 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("catalog", "9.9.9")
		wrapped := fmt.Errorf("loading catalog: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("format", "csv", "must be one of table, wide, json, yaml")
		assert.Equal(t, "validation failed for field format: must be one of table, wide, json, yaml", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "missing manifest path"}
		assert.Equal(t, "validation failed: missing manifest path", err.Error())
	})
}

func TestUnsupportedFormatError(t *testing.T) {
	err := &pkgerrors.UnsupportedFormatError{Path: "deps.txt", Extension: ".txt"}
	assert.Contains(t, err.Error(), `".txt"`)
	assert.True(t, pkgerrors.IsUnsupportedFormat(err))
	assert.True(t, pkgerrors.IsValidationError(err))

	noExt := &pkgerrors.UnsupportedFormatError{Path: "Makefile"}
	assert.Contains(t, noExt.Error(), "no file extension")
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		notFound    bool
		rateLimited bool
		unavailable bool
	}{
		{name: "not found", status: 404, notFound: true},
		{name: "rate limited", status: 429, rateLimited: true},
		{name: "server error", status: 502, unavailable: true},
		{name: "forbidden", status: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("spring-docs", tt.status, "request failed")
			assert.Contains(t, err.Error(), "spring-docs")
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, pkgerrors.IsSourceUnavailable(err))
		})
	}

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := pkgerrors.WrapAPI("spring-docs", 0, base)
		require.Error(t, err)
		assert.ErrorIs(t, err, base)
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
		assert.Equal(t, "API error from spring-docs: connection reset", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad duration")
	err := pkgerrors.NewConfigError("cache", "cache_ttl: invalid value", base)
	assert.Contains(t, err.Error(), "cache")
	assert.Contains(t, err.Error(), "cache_ttl")
	assert.ErrorIs(t, err, base)
}

func TestParseError(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "pom",
			File:    "pom.xml",
			Line:    12,
			Column:  4,
			Message: "unexpected EOF",
		}
		assert.Equal(t, "parse error in pom at pom.xml:12:4: unexpected EOF", err.Error())
	})

	t.Run("file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("sbom", "bom.json", "invalid character", nil)
		assert.Equal(t, "parse error in sbom file bom.json: invalid character", err.Error())
	})

	t.Run("no file", func(t *testing.T) {
		err := pkgerrors.NewParseError("html", "", "no table", nil)
		assert.Equal(t, "html parse error: no table", err.Error())
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", ".cache/dependencies_3.1.0.json", base)
	assert.Contains(t, err.Error(), "write")
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, base)

	noPath := &pkgerrors.IOError{Operation: "read", Message: "closed"}
	assert.Equal(t, "IO error during read: closed", noPath.Error())
}

func TestResourceError(t *testing.T) {
	base := errors.New("timeout")
	err := pkgerrors.NewResourceError("fetch", "catalog", "3.2.0", base)
	assert.Equal(t, "failed to fetch catalog 3.2.0: timeout", err.Error())
	assert.ErrorIs(t, err, base)

	noID := &pkgerrors.ResourceError{Operation: "clear", Resource: "cache", Message: "busy"}
	assert.Equal(t, "failed to clear cache: busy", noID.Error())
}

func TestIsOffline(t *testing.T) {
	err := fmt.Errorf("catalog 3.1.0: %w", pkgerrors.ErrOffline)
	assert.True(t, pkgerrors.IsOffline(err))
	assert.False(t, pkgerrors.IsOffline(pkgerrors.ErrNotFound))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapValidation("field", nil))
		assert.NoError(t, pkgerrors.WrapIO("read", "file", nil))
		assert.NoError(t, pkgerrors.WrapResource("fetch", "catalog", "id", nil))
		assert.NoError(t, pkgerrors.WrapParse("pom", "file", nil))
		assert.NoError(t, pkgerrors.WrapAPI("docs", 500, nil))
	})

	t.Run("typed results", func(t *testing.T) {
		base := errors.New("boom")

		var ve *pkgerrors.ValidationError
		require.ErrorAs(t, pkgerrors.WrapValidation("tag", base), &ve)
		assert.Equal(t, "tag", ve.Field)

		var ioe *pkgerrors.IOError
		require.ErrorAs(t, pkgerrors.WrapIO("open", "pom.xml", base), &ioe)
		assert.Equal(t, "pom.xml", ioe.Path)

		var re *pkgerrors.ResourceError
		require.ErrorAs(t, pkgerrors.WrapResource("store", "catalog", "3.1.0", base), &re)
		assert.Equal(t, "store", re.Operation)

		var pe *pkgerrors.ParseError
		require.ErrorAs(t, pkgerrors.WrapParse("gradle", "build.gradle", base), &pe)
		assert.Equal(t, "gradle", pe.Format)
	})
}
