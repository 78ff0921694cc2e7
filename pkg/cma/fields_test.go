package cma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldStoreGetSet(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()

	_, ok := store.Get("title", "en-US")
	assert.False(t, ok)

	// Writing initializes the locale bucket on demand.
	store.Set("title", "en-US", String("Hello"))

	value, ok := store.Get("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, KindString, value.Kind)
	assert.Equal(t, "Hello", value.Str)

	// A second locale is independent of the first.
	store.Set("title", "fr-FR", String("Bonjour"))

	value, ok = store.Get("title", "fr-FR")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", value.Str)

	value, ok = store.Get("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, "Hello", value.Str)

	assert.Equal(t, 2, store.Len())
}

func TestFieldStoreFieldNamesUnion(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("title", "en-US", String("Hello"))
	store.Set("title", "fr-FR", String("Bonjour"))
	store.Set("slug", "en-US", String("hello"))
	store.Set("body", "fr-FR", String("corps"))

	names := store.FieldNames()
	assert.ElementsMatch(t, []string{"title", "slug", "body"}, names)
	assert.ElementsMatch(t, []string{"en-US", "fr-FR"}, store.Locales())
}

func TestFieldStoreLocaleView(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("title", "en-US", String("Hello"))
	store.Set("slug", "en-US", String("hello"))
	store.Set("title", "de-DE", String("Hallo"))

	view := store.LocaleView("de-DE", "en-US")

	// The requested locale wins where both carry the field; the default fills
	// in underneath, field by field.
	assert.Equal(t, "Hallo", view["title"].Str)
	assert.Equal(t, "hello", view["slug"].Str)
}

func TestFieldStoreLocaleViewInitializesRequestedBucket(t *testing.T) {
	t.Parallel()

	store := NewFieldStore()
	store.Set("title", "en-US", String("Hello"))

	view := store.LocaleView("ja-JP", "en-US")
	assert.Equal(t, "Hello", view["title"].Str)

	// The requested bucket now exists, so a write through the view's locale
	// lands without further setup.
	store.Set("title", "ja-JP", String("こんにちは"))

	value, ok := store.Get("title", "ja-JP")
	require.True(t, ok)
	assert.Equal(t, "こんにちは", value.Str)

	// The default bucket was not touched.
	value, ok = store.Get("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, "Hello", value.Str)
}

func TestFieldValueConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FieldValue{Kind: KindString, Str: "x"}, String("x"))
	assert.Equal(t, FieldValue{Kind: KindNumber, Num: 4.5}, Number(4.5))
	assert.Equal(t, FieldValue{Kind: KindBool, Bool: true}, Boolean(true))

	ref := Reference(LinkTypeAsset, "asset-id")
	assert.Equal(t, KindLink, ref.Kind)
	assert.Equal(t, "asset-id", ref.Link.ID)
	assert.Equal(t, LinkTypeAsset, ref.Link.LinkType)
	assert.Equal(t, TypeLink, ref.Link.Type)

	point := Point(52.52, 13.405)
	assert.Equal(t, KindLocation, point.Kind)
	assert.InDelta(t, 52.52, point.Loc.Lat, 0.0001)

	list := ListOf(String("a"), String("b"))
	assert.Equal(t, KindList, list.Kind)
	assert.Len(t, list.List, 2)
}
