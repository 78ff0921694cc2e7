package cma

import (
	"encoding/json"
	"fmt"
)

// ErrUnknownResourceType reports a sys.type discriminator the builder does
// not recognize.
type ErrUnknownResourceType struct {
	Type string
}

// Error implements the error interface.
func (e *ErrUnknownResourceType) Error() string {
	return fmt.Sprintf("unknown resource type %q", e.Type)
}

// BuildResource materializes a typed resource from a raw JSON payload,
// dispatching on the sys.type discriminator. Error resources come back as a
// non-nil *APIError value (the caller decides whether to treat it as an
// error); Array payloads come back as a Collection of raw items for the
// caller to build element-wise.
func BuildResource(raw []byte) (interface{}, error) {
	var head struct {
		Sys struct {
			Type string `json:"type"`
		} `json:"sys"`
	}

	err := json.Unmarshal(raw, &head)
	if err != nil {
		return nil, fmt.Errorf("reading resource sys block: %w", err)
	}

	switch head.Sys.Type {
	case TypeEntry:
		return BuildEntry(raw)
	case TypeAsset:
		return BuildAsset(raw)
	case TypeContentType:
		var schema ContentTypeSchema
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("parsing content type: %w", err)
		}

		return &schema, nil
	case TypeSpace:
		var space Space
		if err := json.Unmarshal(raw, &space); err != nil {
			return nil, fmt.Errorf("parsing space: %w", err)
		}

		return &space, nil
	case TypeError:
		var apiErr APIError
		if err := json.Unmarshal(raw, &apiErr); err != nil {
			return nil, fmt.Errorf("parsing error resource: %w", err)
		}

		return &apiErr, nil
	case TypeArray:
		var collection Collection[json.RawMessage]
		if err := json.Unmarshal(raw, &collection); err != nil {
			return nil, fmt.Errorf("parsing collection: %w", err)
		}

		return &collection, nil
	default:
		return nil, &ErrUnknownResourceType{Type: head.Sys.Type}
	}
}

// wireEntry is the inbound JSON shape of entries and assets: a sys block and
// a locale-nested fields block.
type wireEntry struct {
	Sys    Sys                               `json:"sys"`
	Fields map[string]map[string]interface{} `json:"fields"`
}

// BuildEntry hydrates an entry from a response payload. The field store is
// built wholesale from the payload; it replaces, never merges with, whatever
// the caller held before.
func BuildEntry(raw []byte) (*Entry, error) {
	var wire wireEntry

	err := json.Unmarshal(raw, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing entry: %w", err)
	}

	entry := NewEntry()
	entry.Sys = wire.Sys
	hydrateStore(entry.Fields, wire.Fields)

	return entry, nil
}

// BuildAsset hydrates an asset from a response payload.
func BuildAsset(raw []byte) (*Asset, error) {
	var wire wireEntry

	err := json.Unmarshal(raw, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing asset: %w", err)
	}

	asset := &Asset{Sys: wire.Sys, Fields: NewFieldStore()}
	hydrateStore(asset.Fields, wire.Fields)

	return asset, nil
}

// hydrateStore decodes a locale-nested wire fields block into a store. The
// inbound shape nests field name above locale; the store keys locale first.
func hydrateStore(store *FieldStore, fields map[string]map[string]interface{}) {
	for name, locales := range fields {
		for locale, raw := range locales {
			store.Set(name, locale, DecodeValue(raw))
		}
	}
}
