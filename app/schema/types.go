package schema

import "github.com/Rakhulsr/go-furniture/app/models"

// Types returns every document type in studio menu order.
func Types() []DocumentType {
	return []DocumentType{
		tableShape(),
		tableMaterial(),
		tableSize(),
		tableQuality(),
		tableConfiguration(),
		category(),
		product(),
		post(),
	}
}

func tableShape() DocumentType {
	return DocumentType{
		Name:  models.TypeShape,
		Title: "Table shape",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true},
			slugField("name"),
			{Name: "description", Title: "Description", Type: FieldText},
			{Name: "areaMultiplier", Title: "Area efficiency multiplier", Type: FieldNumber, Required: true, Min: bound(0.1), Max: bound(2.0), InitialValue: 1.0},
			activeField(),
			sortOrderField(),
			{Name: "basePriceRange", Title: "Base price range", Type: FieldObject, Fields: []Field{
				{Name: "min", Title: "Minimum (€)", Type: FieldNumber, Min: bound(0)},
				{Name: "max", Title: "Maximum (€)", Type: FieldNumber, Min: bound(0.01)},
			}},
		},
		Orderings: []Ordering{sortOrderOrdering(), nameOrdering()},
		Preview:   PreviewSelect{Title: "name", Subtitle: "areaMultiplier"},
	}
}

func tableMaterial() DocumentType {
	return DocumentType{
		Name:  models.TypeMaterial,
		Title: "Table material",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true},
			slugField("name"),
			{Name: "description", Title: "Description", Type: FieldText},
			{Name: "properties", Title: "Properties", Type: FieldObject, Fields: []Field{
				{Name: "hardness", Title: "Hardness", Type: FieldString, Options: []string{"soft", "medium", "hard", "very-hard"}},
				{Name: "grainPattern", Title: "Grain pattern", Type: FieldString},
				{Name: "colorRange", Title: "Color range", Type: FieldString},
				{Name: "durability", Title: "Durability", Type: FieldNumber, Min: bound(1), Max: bound(10)},
			}},
			{Name: "priceMultiplier", Title: "Price multiplier", Type: FieldNumber, Required: true, Min: bound(0.1), InitialValue: 1.0},
			activeField(),
			sortOrderField(),
		},
		Orderings: []Ordering{sortOrderOrdering(), nameOrdering(), {
			Title: "Price multiplier",
			Name:  "priceMultiplierDesc",
			By:    []OrderBy{{Field: "priceMultiplier", Direction: "desc"}},
		}},
		Preview: PreviewSelect{Title: "name", Subtitle: "priceMultiplier"},
	}
}

func tableSize() DocumentType {
	return DocumentType{
		Name:  models.TypeSize,
		Title: "Table size",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true},
			slugField("name"),
			{Name: "dimensions", Title: "Dimensions (cm)", Type: FieldObject, Required: true, Fields: []Field{
				{Name: "length", Title: "Length", Type: FieldNumber, Required: true, Min: bound(0)},
				{Name: "width", Title: "Width", Type: FieldNumber, Required: true, Min: bound(0)},
				{Name: "height", Title: "Height", Type: FieldNumber, Required: true, Min: bound(0)},
				{Name: "thickness", Title: "Top thickness", Type: FieldNumber, Min: bound(0)},
			}},
			{Name: "suitableShapes", Title: "Suitable shapes", Type: FieldArray, Of: FieldReference, To: []string{models.TypeShape}},
			{Name: "seatingCapacity", Title: "Seating capacity", Type: FieldObject, Fields: []Field{
				{Name: "min", Title: "Minimum", Type: FieldNumber, Min: bound(0)},
				{Name: "max", Title: "Maximum", Type: FieldNumber, Min: bound(0)},
				{Name: "comfortable", Title: "Comfortable", Type: FieldNumber, Min: bound(0)},
			}},
			{Name: "priceMultiplier", Title: "Price multiplier", Type: FieldNumber, Required: true, Min: bound(0.1), InitialValue: 1.0},
			{Name: "isStandard", Title: "Standard size", Type: FieldBoolean, InitialValue: true},
			activeField(),
			sortOrderField(),
		},
		Orderings: []Ordering{sortOrderOrdering(), {
			Title: "Length",
			Name:  "lengthAsc",
			By:    []OrderBy{{Field: "dimensions.length", Direction: "asc"}},
		}},
		Preview: PreviewSelect{Title: "name", Subtitle: "dimensions"},
	}
}

func tableQuality() DocumentType {
	return DocumentType{
		Name:  models.TypeQuality,
		Title: "Table quality",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true},
			slugField("name"),
			{Name: "grade", Title: "Grade", Type: FieldString, Required: true, Options: []string{models.GradePrime, models.GradeCharacter, models.GradeRustic}},
			{Name: "characteristics", Title: "Characteristics", Type: FieldArray, Of: FieldString},
			{Name: "qualityAdjustment", Title: "Quality adjustment (%)", Type: FieldNumber, Required: true, Min: bound(0), Max: bound(100), InitialValue: 0,
				Description: "Always positive; the direction field decides whether it is added or subtracted."},
			{Name: "priceDirection", Title: "Price direction", Type: FieldString, Required: true, Options: []string{models.DirectionAdd, models.DirectionSubtract}, InitialValue: models.DirectionAdd},
			{Name: "priceMultiplier", Title: "Legacy price multiplier", Type: FieldNumber, ReadOnly: true,
				Description: "Derived from the adjustment by the pricing scripts."},
			{Name: "qualityScore", Title: "Quality score", Type: FieldNumber, Min: bound(1), Max: bound(10)},
			activeField(),
			sortOrderField(),
		},
		Orderings: []Ordering{sortOrderOrdering(), {
			Title: "Quality score",
			Name:  "qualityScoreDesc",
			By:    []OrderBy{{Field: "qualityScore", Direction: "desc"}},
		}},
		Preview: PreviewSelect{Title: "name", Subtitle: "grade"},
	}
}

func tableConfiguration() DocumentType {
	return DocumentType{
		Name:  models.TypeConfiguration,
		Title: "Table configuration",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true},
			slugField("name"),
			{Name: "shape", Title: "Shape", Type: FieldReference, Required: true, To: []string{models.TypeShape}},
			{Name: "material", Title: "Material", Type: FieldReference, Required: true, To: []string{models.TypeMaterial}},
			{Name: "size", Title: "Size", Type: FieldReference, Required: true, To: []string{models.TypeSize}},
			{Name: "quality", Title: "Quality", Type: FieldReference, Required: true, To: []string{models.TypeQuality}},
			{Name: "customDimensions", Title: "Custom dimensions", Type: FieldObject, Fields: []Field{
				{Name: "isCustom", Title: "Custom size", Type: FieldBoolean, InitialValue: false},
				{Name: "length", Title: "Length (cm)", Type: FieldNumber, Min: bound(0)},
				{Name: "width", Title: "Width (cm)", Type: FieldNumber, Min: bound(0)},
				{Name: "height", Title: "Height (cm)", Type: FieldNumber, Min: bound(0)},
				{Name: "customPriceAdjustment", Title: "Custom size surcharge (%)", Type: FieldNumber, Min: bound(0), Max: bound(100), InitialValue: models.DefaultCustomPriceAdjustment},
			}},
			{Name: "calculatedPrice", Title: "Calculated price (€)", Type: FieldNumber, ReadOnly: true},
			{Name: "priceOverride", Title: "Price override (€)", Type: FieldNumber, Min: bound(0),
				Description: "Replaces the calculated price on the storefront when set."},
			{Name: "additionalOptions", Title: "Additional options", Type: FieldArray, Of: FieldObject, Fields: []Field{
				{Name: "name", Title: "Name", Type: FieldString, Required: true},
				{Name: "priceAdjustment", Title: "Price adjustment (€)", Type: FieldNumber},
				{Name: "isRequired", Title: "Required", Type: FieldBoolean, InitialValue: false},
			}},
			{Name: "images", Title: "Images", Type: FieldArray, Of: FieldImage},
			{Name: "leadTime", Title: "Lead time (days)", Type: FieldNumber, Required: true, Min: bound(1), InitialValue: 28},
			{Name: "isAvailable", Title: "Available", Type: FieldBoolean, InitialValue: true},
			{Name: "notes", Title: "Internal notes", Type: FieldText},
		},
		Orderings: []Ordering{nameOrdering(), {
			Title: "Calculated price",
			Name:  "calculatedPriceAsc",
			By:    []OrderBy{{Field: "calculatedPrice", Direction: "asc"}},
		}},
		Preview: PreviewSelect{Title: "name", Subtitle: "calculatedPrice", Media: "images.0"},
	}
}

func category() DocumentType {
	return DocumentType{
		Name:  models.TypeCategory,
		Title: "Category",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: FieldString, Required: true},
			slugField("title"),
			{Name: "description", Title: "Description", Type: FieldText},
			sortOrderField(),
		},
		Orderings: []Ordering{{
			Title: "Sort order",
			Name:  "sortOrderAsc",
			By:    []OrderBy{{Field: "sortOrder", Direction: "asc"}, {Field: "title", Direction: "asc"}},
		}},
		Preview: PreviewSelect{Title: "title", Subtitle: "description"},
	}
}

func product() DocumentType {
	return DocumentType{
		Name:  models.TypeProduct,
		Title: "Product",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true},
			slugField("name"),
			{Name: "category", Title: "Category", Type: FieldReference, Required: true, To: []string{models.TypeCategory}},
			{Name: "description", Title: "Description", Type: FieldText},
			{Name: "featured", Title: "Featured", Type: FieldBoolean, InitialValue: false},
			{Name: "startingPrice", Title: "Starting price (€)", Type: FieldNumber, Min: bound(0)},
			{Name: "images", Title: "Images", Type: FieldArray, Of: FieldImage},
		},
		Orderings: []Ordering{nameOrdering()},
		Preview:   PreviewSelect{Title: "name", Subtitle: "category.title", Media: "images.0"},
	}
}

func post() DocumentType {
	return DocumentType{
		Name:  models.TypePost,
		Title: "Blog post",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: FieldString, Required: true},
			slugField("title"),
			{Name: "publishedAt", Title: "Published at", Type: FieldDatetime},
			{Name: "excerpt", Title: "Excerpt", Type: FieldText, Max: bound(300)},
			{Name: "body", Title: "Body", Type: FieldText},
			{Name: "tags", Title: "Tags", Type: FieldArray, Of: FieldString},
		},
		Orderings: []Ordering{{
			Title: "Published, newest first",
			Name:  "publishedAtDesc",
			By:    []OrderBy{{Field: "publishedAt", Direction: "desc"}},
		}},
		Preview: PreviewSelect{Title: "title", Subtitle: "publishedAt"},
	}
}
