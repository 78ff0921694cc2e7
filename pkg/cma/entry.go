package cma

import (
	"context"
)

// SchemaResolver resolves a content type schema for an entry. Implemented by
// SchemaCache; injected into entries at hydration time so field accessors can
// materialize lazily.
type SchemaResolver interface {
	Resolve(ctx context.Context, spaceID, contentTypeID string) (*ContentTypeSchema, error)
}

// Entry is a structured content record with versioned, locale-partitioned
// field data. Identity is (space, id, version); version is advanced only by
// the server and echoed back on every mutating request.
type Entry struct {
	Sys    Sys         `json:"sys" yaml:"sys"`
	Fields *FieldStore `json:"-"   yaml:"-"`

	schema    *ContentTypeSchema
	accessors accessorTable
	resolver  SchemaResolver
	registry  *AccessorRegistry
}

// NewEntry creates an unpersisted entry with an empty field store.
func NewEntry() *Entry {
	return &Entry{Fields: NewFieldStore()}
}

// IsPersisted reports whether the entry has a server identity.
func (e *Entry) IsPersisted() bool {
	return e.Sys.ID != ""
}

// IsPublished reports whether the entry has a published timestamp.
func (e *Entry) IsPublished() bool {
	return e.Sys.PublishedAt != nil
}

// IsArchived reports whether the entry has an archived timestamp.
func (e *Entry) IsArchived() bool {
	return e.Sys.ArchivedAt != nil
}

// IsDraft reports whether the entry is neither published nor archived.
func (e *Entry) IsDraft() bool {
	return !e.IsPublished() && !e.IsArchived()
}

// SpaceID returns the owning space id from the sys block.
func (e *Entry) SpaceID() string {
	if e.Sys.Space == nil {
		return ""
	}

	return e.Sys.Space.ID
}

// ContentTypeID returns the entry's content type id from the sys block.
func (e *Entry) ContentTypeID() string {
	if e.Sys.ContentType == nil {
		return ""
	}

	return e.Sys.ContentType.ID
}

// Schema returns the schema bound to this entry instance, if resolved.
func (e *Entry) Schema() *ContentTypeSchema {
	return e.schema
}

// SetResolver attaches the schema resolver and registry used for lazy
// accessor materialization. Called by the entries client on hydration.
func (e *Entry) SetResolver(resolver SchemaResolver, registry *AccessorRegistry) {
	e.resolver = resolver
	e.registry = registry
}

// BindSchema binds a schema to this entry and installs one accessor pair per
// declared field. The schema is cached on the instance; subsequent accesses
// never re-fetch.
func (e *Entry) BindSchema(schema *ContentTypeSchema) {
	e.schema = schema

	if e.registry != nil {
		e.accessors = e.registry.TableFor(schema)
	} else {
		e.accessors = buildAccessorTable(schema)
	}
}

// Field reads a field through the accessor table, resolving the entry's
// schema on first access to an undeclared name. Resolution happens at most
// once; a name that still does not resolve after binding fails with an
// UnknownMemberError naming the accessor and the entry's identity.
func (e *Entry) Field(ctx context.Context, name, locale string) (FieldValue, error) {
	accessor, err := e.accessor(ctx, name)
	if err != nil {
		return FieldValue{}, err
	}

	value, _ := accessor.get(e.Fields, locale)

	return value, nil
}

// SetField writes a field through the accessor table, with the same lazy
// schema resolution as Field.
func (e *Entry) SetField(ctx context.Context, name, locale string, value FieldValue) error {
	accessor, err := e.accessor(ctx, name)
	if err != nil {
		return err
	}

	accessor.set(e.Fields, locale, value)

	return nil
}

func (e *Entry) accessor(ctx context.Context, name string) (fieldAccessor, error) {
	if accessor, ok := e.accessors[name]; ok {
		return accessor, nil
	}

	// Only resolve if no schema is bound yet; a bound schema that does not
	// declare the name is a hard failure, not cause for a second fetch.
	if e.schema == nil && e.resolver != nil {
		schema, err := e.resolver.Resolve(ctx, e.SpaceID(), e.ContentTypeID())
		if err != nil {
			return fieldAccessor{}, err
		}

		e.BindSchema(schema)

		if accessor, ok := e.accessors[name]; ok {
			return accessor, nil
		}
	}

	return fieldAccessor{}, &UnknownMemberError{EntryID: e.Sys.ID, SpaceID: e.SpaceID(), Name: name}
}
