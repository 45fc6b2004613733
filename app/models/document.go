package models

import (
	"encoding/json"
	"errors"
)

const (
	TypeShape         = "tableShape"
	TypeMaterial      = "tableMaterial"
	TypeSize          = "tableSize"
	TypeQuality       = "tableQuality"
	TypeConfiguration = "tableConfiguration"
	TypeCategory      = "category"
	TypeProduct       = "product"
	TypePost          = "post"
)

// ErrDocumentNotFound is returned when a document id does not resolve.
var ErrDocumentNotFound = errors.New("document not found")

// Document is implemented by every CMS document model.
type Document interface {
	DocumentID() string
	DocumentType() string
}

// Meta holds the system attributes the CMS attaches to every document.
type Meta struct {
	ID   string `json:"_id,omitempty" gorm:"size:128;primaryKey"`
	Type string `json:"_type,omitempty" gorm:"-"`
	Rev  string `json:"_rev,omitempty" gorm:"size:64"`
}

func (m Meta) DocumentID() string { return m.ID }

// DocumentIDFor builds the deterministic id used for seeded documents.
func DocumentIDFor(docType, slug string) string {
	return docType + "-" + slug
}

type Slug struct {
	Type    string `json:"_type,omitempty" gorm:"-"`
	Current string `json:"current" gorm:"column:current;size:150" validate:"required"`
}

func NewSlug(current string) Slug {
	return Slug{Type: "slug", Current: current}
}

// UnmarshalJSON accepts both the CMS object form and a bare string.
func (s *Slug) UnmarshalJSON(b []byte) error {
	var current string
	if err := json.Unmarshal(b, &current); err == nil {
		*s = NewSlug(current)
		return nil
	}

	type plain Slug
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = Slug(p)
	return nil
}

type Reference struct {
	Key  string `json:"_key,omitempty" gorm:"-"`
	Type string `json:"_type,omitempty" gorm:"-"`
	Ref  string `json:"_ref" gorm:"column:ref;size:128" validate:"required"`
}

func NewReference(id string) Reference {
	return Reference{Type: "reference", Ref: id}
}

func (r Reference) IsZero() bool { return r.Ref == "" }

type Image struct {
	Key   string    `json:"_key,omitempty"`
	Type  string    `json:"_type,omitempty"`
	Asset Reference `json:"asset"`
	Alt   string    `json:"alt,omitempty"`
}
