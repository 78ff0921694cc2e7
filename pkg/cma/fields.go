package cma

// ValueKind tags the wire-representable kinds a field value may take.
type ValueKind int

const (
	// KindString represents short or long text values.
	KindString ValueKind = iota

	// KindNumber represents integer and floating point values.
	KindNumber

	// KindBool represents boolean values.
	KindBool

	// KindLink represents a reference to another Entry or Asset.
	KindLink

	// KindLocation represents a geographic point.
	KindLocation

	// KindList represents an array of values.
	KindList

	// KindRaw represents structured JSON the schema declares as Object.
	KindRaw
)

// String returns the kind name used in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindLink:
		return "link"
	case KindLocation:
		return "location"
	case KindList:
		return "list"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// FieldValue is a tagged union over the closed set of wire-representable
// value kinds. Exactly one payload field is meaningful for a given Kind.
type FieldValue struct {
	Kind ValueKind

	Str  string
	Num  float64
	Bool bool
	Link Link
	Loc  Location
	List []FieldValue
	Raw  interface{}
}

// String builds a string field value.
func String(s string) FieldValue {
	return FieldValue{Kind: KindString, Str: s}
}

// Number builds a numeric field value.
func Number(n float64) FieldValue {
	return FieldValue{Kind: KindNumber, Num: n}
}

// Boolean builds a boolean field value.
func Boolean(b bool) FieldValue {
	return FieldValue{Kind: KindBool, Bool: b}
}

// Reference builds a link field value pointing at the given resource.
func Reference(linkType, id string) FieldValue {
	return FieldValue{Kind: KindLink, Link: NewLink(linkType, id)}
}

// Point builds a location field value.
func Point(lat, lon float64) FieldValue {
	return FieldValue{Kind: KindLocation, Loc: Location{Lat: lat, Lon: lon}}
}

// ListOf builds a list field value from the given elements.
func ListOf(elems ...FieldValue) FieldValue {
	return FieldValue{Kind: KindList, List: elems}
}

// RawValue builds a pass-through field value for Object-typed fields.
func RawValue(v interface{}) FieldValue {
	return FieldValue{Kind: KindRaw, Raw: v}
}

// FieldStore is the locale-partitioned field value table owned by exactly one
// entry (or asset). The outer key is the locale code, the inner key the field
// name. A locale bucket may lag another if it was never written; the union of
// field names across buckets is exposed through FieldNames.
type FieldStore struct {
	locales map[string]map[string]FieldValue
}

// NewFieldStore creates an empty store.
func NewFieldStore() *FieldStore {
	return &FieldStore{locales: make(map[string]map[string]FieldValue)}
}

// Get returns the value of a field at a locale.
func (s *FieldStore) Get(field, locale string) (FieldValue, bool) {
	bucket, ok := s.locales[locale]
	if !ok {
		return FieldValue{}, false
	}

	value, ok := bucket[field]

	return value, ok
}

// Set assigns a field value at a locale, initializing the locale bucket if it
// does not exist yet. Callers may safely write before any field exists there.
func (s *FieldStore) Set(field, locale string, value FieldValue) {
	bucket, ok := s.locales[locale]
	if !ok {
		bucket = make(map[string]FieldValue)
		s.locales[locale] = bucket
	}

	bucket[field] = value
}

// Locales returns the locale codes present in the store.
func (s *FieldStore) Locales() []string {
	locales := make([]string, 0, len(s.locales))
	for locale := range s.locales {
		locales = append(locales, locale)
	}

	return locales
}

// FieldNames returns the union of field names seen in any locale bucket.
// A field may exist at one locale only, so no single bucket is authoritative.
func (s *FieldStore) FieldNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, bucket := range s.locales {
		for name := range bucket {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}

				names = append(names, name)
			}
		}
	}

	return names
}

// LocaleView returns the field mapping for the requested locale with the
// default locale's values filled in underneath, field by field. The requested
// locale wins whenever both buckets carry the field; this is a per-entry
// overlay, not a wholesale map replace.
func (s *FieldStore) LocaleView(requested, defaultLocale string) map[string]FieldValue {
	view := make(map[string]FieldValue)

	for name, value := range s.locales[defaultLocale] {
		view[name] = value
	}

	// Reading an unset requested bucket initializes it so callers can write
	// through the view's locale immediately afterwards.
	bucket, ok := s.locales[requested]
	if !ok {
		bucket = make(map[string]FieldValue)
		s.locales[requested] = bucket
	}

	for name, value := range bucket {
		view[name] = value
	}

	return view
}

// Len returns the number of locale buckets.
func (s *FieldStore) Len() int {
	return len(s.locales)
}
