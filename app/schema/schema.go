// Package schema describes the CMS document types as plain data: fields,
// validation bounds, orderings and which fields a preview shows. The studio
// build consumes the JSON export; formatting previews lives in preview.go.
package schema

import (
	"encoding/json"
	"io"
)

const (
	FieldString    = "string"
	FieldText      = "text"
	FieldSlug      = "slug"
	FieldNumber    = "number"
	FieldBoolean   = "boolean"
	FieldObject    = "object"
	FieldArray     = "array"
	FieldReference = "reference"
	FieldImage     = "image"
	FieldDatetime  = "datetime"
)

type Field struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required,omitempty"`
	ReadOnly    bool     `json:"readOnly,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Options     []string `json:"options,omitempty"`
	// To lists the document types a reference may point at.
	To []string `json:"to,omitempty"`
	// Of is the element type of an array field.
	Of           string  `json:"of,omitempty"`
	Fields       []Field `json:"fields,omitempty"`
	Source       string  `json:"source,omitempty"`
	InitialValue any     `json:"initialValue,omitempty"`
}

type OrderBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type Ordering struct {
	Title string    `json:"title"`
	Name  string    `json:"name"`
	By    []OrderBy `json:"by"`
}

// PreviewSelect names the fields the studio list view shows.
type PreviewSelect struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Media    string `json:"media,omitempty"`
}

type DocumentType struct {
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Fields    []Field       `json:"fields"`
	Orderings []Ordering    `json:"orderings,omitempty"`
	Preview   PreviewSelect `json:"preview"`
}

// Field looks up a top-level field by name.
func (d DocumentType) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (d DocumentType) RequiredFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Lookup finds a document type by name.
func Lookup(name string) (DocumentType, bool) {
	for _, t := range Types() {
		if t.Name == name {
			return t, true
		}
	}
	return DocumentType{}, false
}

// Export writes every document type as indented JSON.
func Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"types": Types()})
}

func bound(v float64) *float64 { return &v }

func sortOrderOrdering() Ordering {
	return Ordering{
		Title: "Sort order",
		Name:  "sortOrderAsc",
		By:    []OrderBy{{Field: "sortOrder", Direction: "asc"}, {Field: "name", Direction: "asc"}},
	}
}

func nameOrdering() Ordering {
	return Ordering{
		Title: "Name",
		Name:  "nameAsc",
		By:    []OrderBy{{Field: "name", Direction: "asc"}},
	}
}

func slugField(source string) Field {
	return Field{Name: "slug", Title: "Slug", Type: FieldSlug, Required: true, Source: source}
}

func activeField() Field {
	return Field{Name: "isActive", Title: "Active", Type: FieldBoolean, InitialValue: true}
}

func sortOrderField() Field {
	return Field{Name: "sortOrder", Title: "Sort order", Type: FieldNumber, InitialValue: 0}
}
