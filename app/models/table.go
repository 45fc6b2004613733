package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GradePrime     = "prime"
	GradeCharacter = "character"
	GradeRustic    = "rustic"

	DirectionAdd      = "add"
	DirectionSubtract = "subtract"
)

type PriceRange struct {
	Min float64 `json:"min" gorm:"column:min;type:decimal(16,2)" validate:"gte=0"`
	Max float64 `json:"max" gorm:"column:max;type:decimal(16,2)" validate:"gt=0,gtefield=Min"`
}

// Midpoint is the base price used when pricing a configuration of this shape.
func (r PriceRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

type TableShape struct {
	Meta
	Name           string      `json:"name" gorm:"size:100;not null" validate:"required"`
	Slug           Slug        `json:"slug" gorm:"embedded;embeddedPrefix:slug_"`
	Description    string      `json:"description,omitempty" gorm:"type:text"`
	AreaMultiplier float64     `json:"areaMultiplier" gorm:"type:decimal(6,3);not null" validate:"gte=0.1,lte=2"`
	IsActive       bool        `json:"isActive"`
	SortOrder      int         `json:"sortOrder"`
	BasePriceRange *PriceRange `json:"basePriceRange,omitempty" gorm:"embedded;embeddedPrefix:base_price_"`
}

func (TableShape) DocumentType() string { return TypeShape }

// AfterFind restores a missing price range; the mirror reads it back as zeros.
func (s *TableShape) AfterFind(*gorm.DB) error {
	if s.BasePriceRange != nil && s.BasePriceRange.Min == 0 && s.BasePriceRange.Max == 0 {
		s.BasePriceRange = nil
	}
	return nil
}

type MaterialProperties struct {
	Hardness     string `json:"hardness,omitempty" gorm:"column:hardness;size:20" validate:"omitempty,oneof=soft medium hard very-hard"`
	GrainPattern string `json:"grainPattern,omitempty" gorm:"column:grain_pattern;size:100"`
	ColorRange   string `json:"colorRange,omitempty" gorm:"column:color_range;size:100"`
	Durability   int    `json:"durability,omitempty" gorm:"column:durability" validate:"omitempty,min=1,max=10"`
}

type TableMaterial struct {
	Meta
	Name            string             `json:"name" gorm:"size:100;not null" validate:"required"`
	Slug            Slug               `json:"slug" gorm:"embedded;embeddedPrefix:slug_"`
	Description     string             `json:"description,omitempty" gorm:"type:text"`
	Properties      MaterialProperties `json:"properties" gorm:"embedded;embeddedPrefix:properties_"`
	PriceMultiplier float64            `json:"priceMultiplier" gorm:"type:decimal(6,3);not null" validate:"gte=0.1"`
	IsActive        bool               `json:"isActive"`
	SortOrder       int                `json:"sortOrder"`
}

func (TableMaterial) DocumentType() string { return TypeMaterial }

type Dimensions struct {
	Length    float64 `json:"length" gorm:"column:length" validate:"gt=0"`
	Width     float64 `json:"width" gorm:"column:width" validate:"gt=0"`
	Height    float64 `json:"height" gorm:"column:height" validate:"gt=0"`
	Thickness float64 `json:"thickness,omitempty" gorm:"column:thickness" validate:"omitempty,gt=0"`
}

type SeatingCapacity struct {
	Min         int `json:"min" gorm:"column:min" validate:"gte=0"`
	Max         int `json:"max" gorm:"column:max" validate:"gtefield=Min"`
	Comfortable int `json:"comfortable,omitempty" gorm:"column:comfortable" validate:"omitempty,gtefield=Min,ltefield=Max"`
}

type TableSize struct {
	Meta
	Name            string                         `json:"name" gorm:"size:100;not null" validate:"required"`
	Slug            Slug                           `json:"slug" gorm:"embedded;embeddedPrefix:slug_"`
	Dimensions      Dimensions                     `json:"dimensions" gorm:"embedded;embeddedPrefix:dim_"`
	SuitableShapes  datatypes.JSONSlice[Reference] `json:"suitableShapes,omitempty" validate:"dive"`
	SeatingCapacity SeatingCapacity                `json:"seatingCapacity" gorm:"embedded;embeddedPrefix:seating_"`
	PriceMultiplier float64                        `json:"priceMultiplier" gorm:"type:decimal(6,3);not null" validate:"gte=0.1"`
	IsStandard      bool                           `json:"isStandard"`
	IsActive        bool                           `json:"isActive"`
	SortOrder       int                            `json:"sortOrder"`
}

func (TableSize) DocumentType() string { return TypeSize }

// FitsShape reports whether the size lists the shape as suitable. An empty
// list means the size fits every shape.
func (s TableSize) FitsShape(shapeID string) bool {
	if len(s.SuitableShapes) == 0 {
		return true
	}
	for _, ref := range s.SuitableShapes {
		if ref.Ref == shapeID {
			return true
		}
	}
	return false
}

type TableQuality struct {
	Meta
	Name              string                      `json:"name" gorm:"size:100;not null" validate:"required"`
	Slug              Slug                        `json:"slug" gorm:"embedded;embeddedPrefix:slug_"`
	Grade             string                      `json:"grade" gorm:"size:20;not null" validate:"required,oneof=prime character rustic"`
	Characteristics   datatypes.JSONSlice[string] `json:"characteristics,omitempty"`
	QualityAdjustment float64                     `json:"qualityAdjustment" gorm:"type:decimal(6,2);not null" validate:"gte=0,lte=100"`
	PriceDirection    string                      `json:"priceDirection" gorm:"size:10;not null" validate:"required,oneof=add subtract"`
	// PriceMultiplier is the legacy multiplicative factor, derived from the
	// adjustment by the pricing scripts.
	PriceMultiplier float64 `json:"priceMultiplier,omitempty" gorm:"type:decimal(6,3)"`
	QualityScore    int     `json:"qualityScore,omitempty" validate:"omitempty,min=1,max=10"`
	IsActive        bool    `json:"isActive"`
	SortOrder       int     `json:"sortOrder"`
}

func (TableQuality) DocumentType() string { return TypeQuality }
