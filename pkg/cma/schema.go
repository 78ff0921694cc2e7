package cma

// FieldType is the declared type of a content type field.
type FieldType string

// Declared field types.
const (
	FieldTypeSymbol   FieldType = "Symbol"
	FieldTypeText     FieldType = "Text"
	FieldTypeInteger  FieldType = "Integer"
	FieldTypeNumber   FieldType = "Number"
	FieldTypeBoolean  FieldType = "Boolean"
	FieldTypeDate     FieldType = "Date"
	FieldTypeLocation FieldType = "Location"
	FieldTypeLink     FieldType = "Link"
	FieldTypeArray    FieldType = "Array"
	FieldTypeObject   FieldType = "Object"
)

// FieldItems describes the element type of an Array field.
type FieldItems struct {
	Type     FieldType `json:"type"               yaml:"type"`
	LinkType string    `json:"linkType,omitempty" yaml:"linkType,omitempty"`
}

// FieldDescriptor declares one field of a content type: its name, declared
// type, and, for Link and Array-of-Link fields, the target kind.
type FieldDescriptor struct {
	ID        string      `json:"id"                  yaml:"id"`
	Name      string      `json:"name"                yaml:"name"`
	Type      FieldType   `json:"type"                yaml:"type"`
	LinkType  string      `json:"linkType,omitempty"  yaml:"linkType,omitempty"`
	Items     *FieldItems `json:"items,omitempty"     yaml:"items,omitempty"`
	Required  bool        `json:"required,omitempty"  yaml:"required,omitempty"`
	Localized bool        `json:"localized,omitempty" yaml:"localized,omitempty"`
	Disabled  bool        `json:"disabled,omitempty"  yaml:"disabled,omitempty"`
}

// ContentTypeSchema is the ordered field schema governing which fields an
// entry may carry. Loaded once per content type id and cached for the session.
type ContentTypeSchema struct {
	Sys          Sys               `json:"sys"                    yaml:"sys"`
	Name         string            `json:"name"                   yaml:"name"`
	Description  string            `json:"description,omitempty"  yaml:"description,omitempty"`
	DisplayField string            `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Fields       []FieldDescriptor `json:"fields"                 yaml:"fields"`
}

// ID returns the content type id from the sys block.
func (s *ContentTypeSchema) ID() string {
	return s.Sys.ID
}

// Field looks up a descriptor by field id.
func (s *ContentTypeSchema) Field(id string) (*FieldDescriptor, bool) {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i], true
		}
	}

	return nil, false
}

// FieldIDs returns the declared field ids in schema order.
func (s *ContentTypeSchema) FieldIDs() []string {
	ids := make([]string, 0, len(s.Fields))
	for i := range s.Fields {
		ids = append(ids, s.Fields[i].ID)
	}

	return ids
}
