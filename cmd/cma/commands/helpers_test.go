package commands

import (
	"testing"
	"time"

	"github.com/contentforge-io/cma-client/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldValues(t *testing.T) {
	t.Parallel()

	t.Run("typed values", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseFieldValues([]string{
			`title=Hello world`,
			`rating=5`,
			`featured=true`,
			`tags=["go","api"]`,
		})
		require.NoError(t, err)

		assert.Equal(t, "Hello world", attrs["title"])
		assert.InDelta(t, 5.0, attrs["rating"], 0.0001)
		assert.Equal(t, true, attrs["featured"])
		assert.Equal(t, []interface{}{"go", "api"}, attrs["tags"])
	})

	t.Run("value containing equals sign", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseFieldValues([]string{"slug=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", attrs["slug"])
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Parallel()

		_, err := parseFieldValues([]string{"title"})
		require.ErrorIs(t, err, ErrInvalidFieldFormat)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := parseFieldValues([]string{"=value"})
		require.ErrorIs(t, err, ErrInvalidFieldFormat)
	})

	t.Run("no fields", func(t *testing.T) {
		t.Parallel()

		_, err := parseFieldValues(nil)
		require.ErrorIs(t, err, ErrNoFieldsGiven)
	})
}

func TestResourceStatus(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.Equal(t, "draft", resourceStatus(cma.Sys{}))
	assert.Equal(t, "published", resourceStatus(cma.Sys{PublishedAt: &now}))
	assert.Equal(t, "archived", resourceStatus(cma.Sys{ArchivedAt: &now}))
}

func TestFormatFieldValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello", formatFieldValue(cma.String("Hello")))
	assert.Equal(t, "5", formatFieldValue(cma.Number(5)))
	assert.Equal(t, "true", formatFieldValue(cma.Boolean(true)))
	assert.Equal(t, "-> Entry author-id", formatFieldValue(cma.Reference(cma.LinkTypeEntry, "author-id")))
	assert.Equal(t, "(48.85, 2.35)", formatFieldValue(cma.Point(48.85, 2.35)))
	assert.Equal(t, "[go, api]", formatFieldValue(cma.ListOf(cma.String("go"), cma.String("api"))))

	long := formatFieldValue(cma.String(string(make([]byte, 300))))
	assert.LessOrEqual(t, len(long), 80)
}

func TestIsConfigKey(t *testing.T) {
	t.Parallel()

	assert.True(t, isConfigKey("api"))
	assert.True(t, isConfigKey("nats_url"))
	assert.False(t, isConfigKey("bogus"))
}
