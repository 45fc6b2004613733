package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/utils/format"
)

// Summary is the one-line description shown in list views and logs.
type Summary struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type previewFunc func(doc any) Summary

var previewers = map[string]previewFunc{
	models.TypeShape:         shapePreview,
	models.TypeMaterial:      materialPreview,
	models.TypeSize:          sizePreview,
	models.TypeQuality:       qualityPreview,
	models.TypeConfiguration: configurationPreview,
	models.TypeCategory:      categoryPreview,
	models.TypeProduct:       productPreview,
	models.TypePost:          postPreview,
}

// Preview formats a document for display, keyed by its document type.
// Pointers and values are both accepted.
func Preview(doc models.Document) Summary {
	if doc == nil {
		return Summary{Title: "(nil document)"}
	}
	fn, ok := previewers[doc.DocumentType()]
	if !ok {
		return Summary{Title: doc.DocumentID(), Subtitle: doc.DocumentType()}
	}
	return fn(reflect.Indirect(reflect.ValueOf(doc)).Interface())
}

func untitled(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}

func withInactive(subtitle string, active bool) string {
	if active {
		return subtitle
	}
	return subtitle + " (inactive)"
}

func shapePreview(doc any) Summary {
	s := doc.(models.TableShape)
	subtitle := "area " + format.FormatMultiplier(s.AreaMultiplier)
	if s.BasePriceRange != nil {
		subtitle += fmt.Sprintf(" · %s–%s", format.FormatEuro(s.BasePriceRange.Min), format.FormatEuro(s.BasePriceRange.Max))
	}
	return Summary{Title: untitled(s.Name), Subtitle: withInactive(subtitle, s.IsActive)}
}

func materialPreview(doc any) Summary {
	m := doc.(models.TableMaterial)
	subtitle := format.FormatMultiplier(m.PriceMultiplier)
	if m.Properties.Hardness != "" {
		subtitle += " · " + m.Properties.Hardness
	}
	return Summary{Title: untitled(m.Name), Subtitle: withInactive(subtitle, m.IsActive)}
}

func sizePreview(doc any) Summary {
	s := doc.(models.TableSize)
	subtitle := fmt.Sprintf("%g×%g cm · %s", s.Dimensions.Length, s.Dimensions.Width, format.FormatMultiplier(s.PriceMultiplier))
	if !s.IsStandard {
		subtitle += " · custom"
	}
	return Summary{Title: untitled(s.Name), Subtitle: withInactive(subtitle, s.IsActive)}
}

func qualityPreview(doc any) Summary {
	q := doc.(models.TableQuality)
	grade := q.Grade
	if grade != "" {
		grade = strings.ToUpper(grade[:1]) + grade[1:]
	}
	subtitle := grade + " · " + format.FormatAdjustment(q.QualityAdjustment, q.PriceDirection)
	return Summary{Title: untitled(q.Name), Subtitle: withInactive(subtitle, q.IsActive)}
}

func configurationPreview(doc any) Summary {
	c := doc.(models.TableConfiguration)
	var subtitle string
	switch {
	case c.PriceOverride != nil:
		subtitle = format.FormatEuro(*c.PriceOverride) + " (override)"
	case c.CalculatedPrice > 0:
		subtitle = format.FormatEuro(c.CalculatedPrice)
	default:
		subtitle = "not priced"
	}
	if !c.IsAvailable {
		subtitle += " · unavailable"
	}
	return Summary{Title: untitled(c.Name), Subtitle: subtitle}
}

func categoryPreview(doc any) Summary {
	c := doc.(models.Category)
	return Summary{Title: untitled(c.Title), Subtitle: c.Description}
}

func productPreview(doc any) Summary {
	p := doc.(models.Product)
	subtitle := ""
	if p.StartingPrice > 0 {
		subtitle = "from " + format.FormatEuro(p.StartingPrice)
	}
	if p.Featured {
		subtitle = strings.TrimPrefix(subtitle+" · featured", " · ")
	}
	return Summary{Title: untitled(p.Name), Subtitle: subtitle}
}

func postPreview(doc any) Summary {
	p := doc.(models.Post)
	subtitle := "draft"
	if !p.PublishedAt.IsZero() {
		subtitle = p.PublishedAt.Format("2 Jan 2006")
	}
	return Summary{Title: untitled(p.Title), Subtitle: subtitle}
}
