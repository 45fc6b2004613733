package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultCustomPriceAdjustment is the surcharge percentage for custom
// dimensions when the configuration does not set its own.
const DefaultCustomPriceAdjustment = 15.0

type CustomDimensions struct {
	IsCustom              bool     `json:"isCustom" gorm:"column:is_custom"`
	Length                float64  `json:"length,omitempty" gorm:"column:length" validate:"omitempty,gt=0"`
	Width                 float64  `json:"width,omitempty" gorm:"column:width" validate:"omitempty,gt=0"`
	Height                float64  `json:"height,omitempty" gorm:"column:height" validate:"omitempty,gt=0"`
	CustomPriceAdjustment *float64 `json:"customPriceAdjustment,omitempty" gorm:"column:price_adjustment" validate:"omitempty,gte=0,lte=100"`
}

// SurchargePercent returns the configured surcharge, falling back to the default.
func (c CustomDimensions) SurchargePercent() float64 {
	if c.CustomPriceAdjustment == nil {
		return DefaultCustomPriceAdjustment
	}
	return *c.CustomPriceAdjustment
}

type AdditionalOption struct {
	Key             string  `json:"_key,omitempty"`
	Name            string  `json:"name" validate:"required"`
	PriceAdjustment float64 `json:"priceAdjustment"`
	IsRequired      bool    `json:"isRequired"`
}

type TableConfiguration struct {
	Meta
	Name              string                                `json:"name" gorm:"size:255;not null" validate:"required"`
	Slug              Slug                                  `json:"slug" gorm:"embedded;embeddedPrefix:slug_"`
	Shape             Reference                             `json:"shape" gorm:"embedded;embeddedPrefix:shape_"`
	Material          Reference                             `json:"material" gorm:"embedded;embeddedPrefix:material_"`
	Size              Reference                             `json:"size" gorm:"embedded;embeddedPrefix:size_"`
	Quality           Reference                             `json:"quality" gorm:"embedded;embeddedPrefix:quality_"`
	CustomDimensions  *CustomDimensions                     `json:"customDimensions,omitempty" gorm:"embedded;embeddedPrefix:custom_"`
	CalculatedPrice   float64                               `json:"calculatedPrice,omitempty" gorm:"type:decimal(16,2)"`
	PriceOverride     *float64                              `json:"priceOverride,omitempty" gorm:"type:decimal(16,2)" validate:"omitempty,gte=0"`
	AdditionalOptions datatypes.JSONSlice[AdditionalOption] `json:"additionalOptions,omitempty" validate:"dive"`
	Images            datatypes.JSONSlice[Image]            `json:"images,omitempty"`
	LeadTime          int                                   `json:"leadTime" validate:"gte=1"`
	IsAvailable       bool                                  `json:"isAvailable"`
	Notes             string                                `json:"notes,omitempty" gorm:"type:text"`
}

func (TableConfiguration) DocumentType() string { return TypeConfiguration }

// HasCustomDimensions reports whether the custom-dimension surcharge applies.
func (c CustomDimensions) isZero() bool {
	return !c.IsCustom && c.Length == 0 && c.Width == 0 && c.Height == 0 && c.CustomPriceAdjustment == nil
}

// AfterFind drops the empty custom dimension group the mirror returns for
// configurations stored without one.
func (c *TableConfiguration) AfterFind(*gorm.DB) error {
	if c.CustomDimensions != nil && c.CustomDimensions.isZero() {
		c.CustomDimensions = nil
	}
	return nil
}

func (c TableConfiguration) HasCustomDimensions() bool {
	return c.CustomDimensions != nil && c.CustomDimensions.IsCustom
}

// MissingReferences lists the required references that are not set, in
// shape, material, size, quality order.
func (c TableConfiguration) MissingReferences() []string {
	var missing []string
	for _, r := range []struct {
		name string
		ref  Reference
	}{
		{"shape", c.Shape},
		{"material", c.Material},
		{"size", c.Size},
		{"quality", c.Quality},
	} {
		if r.ref.IsZero() {
			missing = append(missing, r.name)
		}
	}
	return missing
}
