package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category struct {
	Meta
	Title       string `json:"title" validate:"required"`
	Slug        Slug   `json:"slug"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sortOrder"`
}

func (Category) DocumentType() string { return TypeCategory }

type Product struct {
	Meta
	Name          string                     `json:"name" validate:"required"`
	Slug          Slug                       `json:"slug"`
	Category      Reference                  `json:"category"`
	Description   string                     `json:"description,omitempty"`
	Featured      bool                       `json:"featured"`
	StartingPrice float64                    `json:"startingPrice,omitempty" validate:"gte=0"`
	Images        datatypes.JSONSlice[Image] `json:"images,omitempty"`
}

func (Product) DocumentType() string { return TypeProduct }

type Post struct {
	Meta
	Title       string                      `json:"title" validate:"required"`
	Slug        Slug                        `json:"slug"`
	PublishedAt time.Time                   `json:"publishedAt"`
	Excerpt     string                      `json:"excerpt,omitempty" validate:"max=300"`
	Body        string                      `json:"body,omitempty"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`
}

func (Post) DocumentType() string { return TypePost }
