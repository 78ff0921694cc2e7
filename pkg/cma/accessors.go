package cma

import (
	"sync"
)

// fieldAccessor is one generated read/write closure pair for a declared
// field. The closures take the owning store as a parameter so a table built
// once per content type can serve every entry of that type; binding to a
// concrete entry happens when the entry keeps the table next to its store.
type fieldAccessor struct {
	descriptor FieldDescriptor
	get        func(store *FieldStore, locale string) (FieldValue, bool)
	set        func(store *FieldStore, locale string, value FieldValue)
}

// accessorTable is the capability table mapping field names to accessors.
// Field access goes through this table rather than reflection.
type accessorTable map[string]fieldAccessor

// buildAccessorTable generates one accessor pair per field descriptor.
func buildAccessorTable(schema *ContentTypeSchema) accessorTable {
	table := make(accessorTable, len(schema.Fields))

	for i := range schema.Fields {
		desc := schema.Fields[i]

		table[desc.ID] = fieldAccessor{
			descriptor: desc,
			get: func(store *FieldStore, locale string) (FieldValue, bool) {
				return store.Get(desc.ID, locale)
			},
			set: func(store *FieldStore, locale string, value FieldValue) {
				store.Set(desc.ID, locale, value)
			},
		}
	}

	return table
}

// AccessorRegistry caches generated accessor tables per content type id for
// the lifetime of a client session, so entries sharing a content type share
// one table instead of regenerating closures per instance.
type AccessorRegistry struct {
	mu     sync.Mutex
	tables map[string]accessorTable
}

// NewAccessorRegistry creates an empty session-scoped registry.
func NewAccessorRegistry() *AccessorRegistry {
	return &AccessorRegistry{tables: make(map[string]accessorTable)}
}

// TableFor returns the accessor table for the schema's content type,
// generating and registering it on first use.
func (r *AccessorRegistry) TableFor(schema *ContentTypeSchema) accessorTable {
	r.mu.Lock()
	defer r.mu.Unlock()

	if table, ok := r.tables[schema.ID()]; ok {
		return table
	}

	table := buildAccessorTable(schema)
	r.tables[schema.ID()] = table

	return table
}

// Forget drops the cached table for a content type id, forcing regeneration
// on next use. Paired with SchemaCache.Invalidate after an explicit re-fetch.
func (r *AccessorRegistry) Forget(contentTypeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tables, contentTypeID)
}

// Len returns the number of registered content types.
func (r *AccessorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.tables)
}
