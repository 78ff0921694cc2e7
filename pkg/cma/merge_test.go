package cma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogSchema() *ContentTypeSchema {
	return &ContentTypeSchema{
		Sys:  Sys{ID: "blog", Type: TypeContentType, Version: 1},
		Name: "Blog Post",
		Fields: []FieldDescriptor{
			{ID: "title", Name: "Title", Type: FieldTypeText, Localized: true},
			{ID: "slug", Name: "Slug", Type: FieldTypeSymbol},
			{ID: "author", Name: "Author", Type: FieldTypeLink, LinkType: LinkTypeEntry},
			{ID: "venue", Name: "Venue", Type: FieldTypeLocation},
			{ID: "tags", Name: "Tags", Type: FieldTypeArray, Items: &FieldItems{Type: FieldTypeSymbol}},
		},
	}
}

func TestComputeUpdatePayloadPreservesSiblingLocales(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("title", "en-US", String("A"))
	store.Set("title", "fr-FR", String("B"))

	payload, err := ComputeUpdatePayload(store, map[string]interface{}{"title": "C"}, "en-US", blogSchema())
	require.NoError(t, err)

	// The update lands at en-US only; the fr-FR sibling survives untouched.
	assert.Equal(t, "C", payload["title"]["en-US"])
	assert.Equal(t, "B", payload["title"]["fr-FR"])
}

func TestComputeUpdatePayloadPreservesUntouchedFields(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("title", "en-US", String("Hello"))
	store.Set("slug", "en-US", String("hello"))

	payload, err := ComputeUpdatePayload(store, map[string]interface{}{"title": "Updated"}, "en-US", blogSchema())
	require.NoError(t, err)

	assert.Equal(t, "Updated", payload["title"]["en-US"])
	assert.Equal(t, "hello", payload["slug"]["en-US"])
}

func TestComputeUpdatePayloadDropsUndeclaredAttrs(t *testing.T) {
	t.Parallel()

	payload, err := ComputeUpdatePayload(NewFieldStore(), map[string]interface{}{
		"title":      "Hello",
		"undeclared": "dropped",
	}, "en-US", blogSchema())
	require.NoError(t, err)

	assert.Contains(t, payload, "title")
	assert.NotContains(t, payload, "undeclared")
}

func TestComputeUpdatePayloadKeepsAllAttrsWithoutSchema(t *testing.T) {
	t.Parallel()

	payload, err := ComputeUpdatePayload(NewFieldStore(), map[string]interface{}{
		"anything": "goes",
	}, "en-US", nil)
	require.NoError(t, err)

	assert.Equal(t, "goes", payload["anything"]["en-US"])
}

func TestComputeUpdatePayloadReencodesStoredDomainValues(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("author", "en-US", Reference(LinkTypeEntry, "author-id"))
	store.Set("venue", "en-US", Point(40.7, -74.0))

	payload, err := ComputeUpdatePayload(store, nil, "en-US", blogSchema())
	require.NoError(t, err)

	link, ok := payload["author"]["en-US"].(Link)
	require.True(t, ok)
	assert.Equal(t, "author-id", link.ID)

	loc, ok := payload["venue"]["en-US"].(Location)
	require.True(t, ok)
	assert.InDelta(t, 40.7, loc.Lat, 0.0001)
}

func TestComputeUpdatePayloadClearsReference(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("author", "en-US", Reference(LinkTypeEntry, "author-id"))

	payload, err := ComputeUpdatePayload(store, map[string]interface{}{"author": Clear}, "en-US", blogSchema())
	require.NoError(t, err)

	// The key is present with an explicit null, which is how the wire
	// distinguishes clearing from omission.
	locales, ok := payload["author"]
	require.True(t, ok)

	value, present := locales["en-US"]
	require.True(t, present)
	assert.Nil(t, value)
}

func TestComputeUpdatePayloadIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("title", "en-US", String("Hello"))
	store.Set("title", "fr-FR", String("Bonjour"))

	attrs := map[string]interface{}{"title": "Updated", "slug": "updated"}

	first, err := ComputeUpdatePayload(store, attrs, "en-US", blogSchema())
	require.NoError(t, err)

	second, err := ComputeUpdatePayload(store, attrs, "en-US", blogSchema())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// The inputs were not mutated along the way.
	assert.Equal(t, map[string]interface{}{"title": "Updated", "slug": "updated"}, attrs)

	stored, ok := store.Get("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, "Hello", stored.Str)
}

func TestComputeUpdatePayloadPropagatesEncodeErrors(t *testing.T) {
	t.Parallel()

	_, err := ComputeUpdatePayload(NewFieldStore(), map[string]interface{}{
		"tags": []interface{}{"ok", NewLink(LinkTypeEntry, "bad")},
	}, "en-US", blogSchema())
	require.ErrorIs(t, err, ErrMixedList)
}

func TestComputeUpdatePayloadNilStore(t *testing.T) {
	t.Parallel()

	payload, err := ComputeUpdatePayload(nil, map[string]interface{}{"title": "Hello"}, "en-US", blogSchema())
	require.NoError(t, err)
	assert.Equal(t, "Hello", payload["title"]["en-US"])
}
