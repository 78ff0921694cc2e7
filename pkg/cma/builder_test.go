package cma

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResourceDispatch(t *testing.T) {
	t.Parallel()

	t.Run("entry", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{
			"sys": {"id": "entry-id", "type": "Entry", "version": 3},
			"fields": {"title": {"en-US": "Hello"}}
		}`)

		resource, err := BuildResource(raw)
		require.NoError(t, err)

		entry, ok := resource.(*Entry)
		require.True(t, ok)
		assert.Equal(t, "entry-id", entry.Sys.ID)
	})

	t.Run("asset", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"sys": {"id": "asset-id", "type": "Asset"}, "fields": {}}`)

		resource, err := BuildResource(raw)
		require.NoError(t, err)

		asset, ok := resource.(*Asset)
		require.True(t, ok)
		assert.Equal(t, "asset-id", asset.Sys.ID)
	})

	t.Run("content type", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{
			"sys": {"id": "blog", "type": "ContentType"},
			"name": "Blog Post",
			"fields": [{"id": "title", "name": "Title", "type": "Text"}]
		}`)

		resource, err := BuildResource(raw)
		require.NoError(t, err)

		schema, ok := resource.(*ContentTypeSchema)
		require.True(t, ok)
		assert.Equal(t, "blog", schema.ID())
		require.Len(t, schema.Fields, 1)
	})

	t.Run("space", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"sys": {"id": "space-id", "type": "Space"}, "name": "Marketing"}`)

		resource, err := BuildResource(raw)
		require.NoError(t, err)

		space, ok := resource.(*Space)
		require.True(t, ok)
		assert.Equal(t, "Marketing", space.Name)
	})

	t.Run("error resource", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"sys": {"id": "NotFound", "type": "Error"}, "message": "gone"}`)

		resource, err := BuildResource(raw)
		require.NoError(t, err)

		apiErr, ok := resource.(*APIError)
		require.True(t, ok)
		assert.Equal(t, ErrorIDNotFound, apiErr.Sys.ID)
	})

	t.Run("array", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{
			"sys": {"type": "Array"},
			"total": 1, "skip": 0, "limit": 50,
			"items": [{"sys": {"id": "entry-id", "type": "Entry"}}]
		}`)

		resource, err := BuildResource(raw)
		require.NoError(t, err)

		collection, ok := resource.(*Collection[json.RawMessage])
		require.True(t, ok)
		assert.Equal(t, 1, collection.Total)
		require.Len(t, collection.Items, 1)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := BuildResource([]byte(`{"sys": {"type": "Widget"}}`))
		require.Error(t, err)

		var unknown *ErrUnknownResourceType

		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "Widget", unknown.Type)
	})
}

func TestBuildEntryHydratesStore(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"sys": {
			"id": "entry-id",
			"type": "Entry",
			"version": 5,
			"space": {"type": "Link", "linkType": "Space", "id": "space-id"},
			"contentType": {"type": "Link", "linkType": "ContentType", "id": "blog"}
		},
		"fields": {
			"title": {"en-US": "Hello", "fr-FR": "Bonjour"},
			"author": {"en-US": {"type": "Link", "linkType": "Entry", "id": "author-id"}},
			"venue": {"en-US": {"lat": 48.85, "lon": 2.35}},
			"tags": {"en-US": ["go", "api"]}
		}
	}`)

	entry, err := BuildEntry(raw)
	require.NoError(t, err)
	assert.Equal(t, "entry-id", entry.Sys.ID)
	assert.Equal(t, 5, entry.Sys.Version)
	assert.Equal(t, "space-id", entry.SpaceID())
	assert.Equal(t, "blog", entry.ContentTypeID())

	title, ok := entry.Fields.Get("title", "fr-FR")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", title.Str)

	author, ok := entry.Fields.Get("author", "en-US")
	require.True(t, ok)
	assert.Equal(t, KindLink, author.Kind)
	assert.Equal(t, "author-id", author.Link.ID)

	venue, ok := entry.Fields.Get("venue", "en-US")
	require.True(t, ok)
	assert.Equal(t, KindLocation, venue.Kind)
	assert.InDelta(t, 48.85, venue.Loc.Lat, 0.0001)

	tags, ok := entry.Fields.Get("tags", "en-US")
	require.True(t, ok)
	require.Equal(t, KindList, tags.Kind)
	assert.Equal(t, "go", tags.List[0].Str)
}

func TestBuildEntryReplacesStoreWholesale(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"sys": {"id": "entry-id", "type": "Entry"},
		"fields": {"title": {"en-US": "Server"}}
	}`)

	entry, err := BuildEntry(raw)
	require.NoError(t, err)

	// The hydrated store holds exactly what the payload carried.
	assert.ElementsMatch(t, []string{"title"}, entry.Fields.FieldNames())
	assert.ElementsMatch(t, []string{"en-US"}, entry.Fields.Locales())
}

func TestHydratedEntryRoundTripsThroughUpdatePayload(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"sys": {"id": "entry-id", "type": "Entry"},
		"fields": {
			"author": {"en-US": {"type": "Link", "linkType": "Entry", "id": "author-id"}},
			"venue": {"en-US": {"lat": 40.7, "lon": -74.0}}
		}
	}`)

	entry, err := BuildEntry(raw)
	require.NoError(t, err)

	// Re-encoding the hydrated state restores the original wire shapes.
	payload, err := ComputeUpdatePayload(entry.Fields, nil, "en-US", nil)
	require.NoError(t, err)

	link, ok := payload["author"]["en-US"].(Link)
	require.True(t, ok)
	assert.Equal(t, "author-id", link.ID)
	assert.Equal(t, LinkTypeEntry, link.LinkType)

	loc, ok := payload["venue"]["en-US"].(Location)
	require.True(t, ok)
	assert.InDelta(t, 40.7, loc.Lat, 0.0001)
}
