package cma

import (
	"time"
)

// Resource type discriminators carried in the sys.type field.
const (
	TypeEntry       = "Entry"
	TypeAsset       = "Asset"
	TypeContentType = "ContentType"
	TypeSpace       = "Space"
	TypeLink        = "Link"
	TypeError       = "Error"
	TypeArray       = "Array"
)

// Link target kinds.
const (
	LinkTypeEntry       = "Entry"
	LinkTypeAsset       = "Asset"
	LinkTypeContentType = "ContentType"
	LinkTypeSpace       = "Space"
)

// Sys is the metadata block every platform resource carries.
type Sys struct {
	ID          string     `json:"id"                    yaml:"id"`
	Type        string     `json:"type"                  yaml:"type"`
	Version     int        `json:"version,omitempty"     yaml:"version,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"   yaml:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"   yaml:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"  yaml:"archivedAt,omitempty"`
	Locale      string     `json:"locale,omitempty"      yaml:"locale,omitempty"`
	Space       *Link      `json:"space,omitempty"       yaml:"space,omitempty"`
	ContentType *Link      `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// Link is the wire-format reference to another resource by id and kind.
type Link struct {
	Type     string `json:"type"     yaml:"type"`
	LinkType string `json:"linkType" yaml:"linkType"`
	ID       string `json:"id"       yaml:"id"`
}

// NewLink builds a Link of the given kind.
func NewLink(linkType, id string) Link {
	return Link{Type: TypeLink, LinkType: linkType, ID: id}
}

// IsZero reports whether the link carries no target.
func (l Link) IsZero() bool {
	return l.ID == ""
}

// Location is a geographic point field value.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Collection represents a list response envelope.
type Collection[T any] struct {
	Sys   CollectionSys `json:"sys"   yaml:"sys"`
	Total int           `json:"total" yaml:"total"`
	Skip  int           `json:"skip"  yaml:"skip"`
	Limit int           `json:"limit" yaml:"limit"`
	Items []T           `json:"items" yaml:"items"`
}

// CollectionSys is the metadata block of a list response.
type CollectionSys struct {
	Type string `json:"type" yaml:"type"`
}

// Space represents a content space. Only the narrow surface this client needs
// is modeled: identity and the default locale used for field views.
type Space struct {
	Sys           Sys    `json:"sys"                     yaml:"sys"`
	Name          string `json:"name"                    yaml:"name"`
	DefaultLocale string `json:"defaultLocale,omitempty" yaml:"defaultLocale,omitempty"`
}

// Asset represents a binary asset record. Assets carry the same locale-keyed
// field store as entries (title, description, file descriptors).
type Asset struct {
	Sys    Sys         `json:"sys" yaml:"sys"`
	Fields *FieldStore `json:"-"   yaml:"-"`
}

// IsPublished reports whether the asset has a published timestamp.
func (a *Asset) IsPublished() bool {
	return a.Sys.PublishedAt != nil
}

// IsArchived reports whether the asset has an archived timestamp.
func (a *Asset) IsArchived() bool {
	return a.Sys.ArchivedAt != nil
}
