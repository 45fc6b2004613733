package seeders

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Rakhulsr/go-furniture/app/configs"
	"github.com/Rakhulsr/go-furniture/app/db/batch"
	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/Rakhulsr/go-furniture/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Entry map[string]any

// SeedFile is the YAML document read by the seed command. Entries use the
// CMS field names; slugs are derived from the name when omitted and
// references are written as the slug of the target document.
type SeedFile struct {
	Categories []Entry `yaml:"categories"`
	Shapes     []Entry `yaml:"shapes"`
	Materials  []Entry `yaml:"materials"`
	Sizes      []Entry `yaml:"sizes"`
	Qualities  []Entry `yaml:"qualities"`
	Products   []Entry `yaml:"products"`
}

func LoadSeedFile(path string) (*SeedFile, error) {
	if err := configs.RequireFile(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file SeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &file, nil
}

type Seeder struct {
	Name     string
	Document models.Document
	// Err is set when the entry could not be turned into a document.
	Err error
}

// SeedersRegister builds one seeder per entry, dependencies first:
// categories, shapes, materials, sizes, qualities, products.
func SeedersRegister(file *SeedFile) []Seeder {
	var seeders []Seeder
	add := func(docType string, entries []Entry, newDoc func() models.Document, prepare func(Entry)) {
		for i, e := range entries {
			seeders = append(seeders, buildSeeder(docType, i, e, newDoc, prepare))
		}
	}

	add(models.TypeCategory, file.Categories, func() models.Document { return &models.Category{} }, nil)
	add(models.TypeShape, file.Shapes, func() models.Document { return &models.TableShape{} }, defaultActive)
	add(models.TypeMaterial, file.Materials, func() models.Document { return &models.TableMaterial{} }, defaultActive)
	add(models.TypeSize, file.Sizes, func() models.Document { return &models.TableSize{} }, prepareSize)
	add(models.TypeQuality, file.Qualities, func() models.Document { return &models.TableQuality{} }, defaultActive)
	add(models.TypeProduct, file.Products, func() models.Document { return &models.Product{} }, prepareProduct)
	return seeders
}

// DBSeed validates and creates every seeded document. Documents that
// already exist are reported as conflicts and left untouched.
func DBSeed(ctx context.Context, client services.CMSClient, v *validator.Validate, logger *zap.Logger, seeders []Seeder) *batch.Report {
	items := make([]batch.Item, 0, len(seeders))
	for _, s := range seeders {
		items = append(items, batch.Item{
			Name: s.Name,
			Run: func(ctx context.Context) error {
				if s.Err != nil {
					return s.Err
				}
				if err := helpers.ValidateDocument(v, s.Document); err != nil {
					return err
				}
				_, err := client.Create(ctx, s.Document)
				return err
			},
		})
	}
	return batch.Run(ctx, logger, items)
}

func buildSeeder(docType string, index int, e Entry, newDoc func() models.Document, prepare func(Entry)) Seeder {
	title := firstString(e, "name", "title")
	current := firstString(e, "slug")
	if current == "" {
		current = slug.Make(title)
	}
	if current == "" {
		return Seeder{
			Name: fmt.Sprintf("%s #%d", docType, index+1),
			Err:  fmt.Errorf("%s #%d: needs a name, title or slug", docType, index+1),
		}
	}

	id := models.DocumentIDFor(docType, current)
	e["_id"] = id
	e["slug"] = current
	if prepare != nil {
		prepare(e)
	}
	if docType == models.TypeQuality {
		if err := setLegacyMultiplier(e); err != nil {
			return Seeder{Name: id, Err: fmt.Errorf("%s: %w", id, err)}
		}
	}

	doc := newDoc()
	if err := decodeEntry(e, doc); err != nil {
		return Seeder{Name: id, Err: fmt.Errorf("%s: %w", id, err)}
	}
	return Seeder{Name: id, Document: doc}
}

// decodeEntry goes through JSON so the CMS field names and the custom
// slug decoding apply exactly as they do for API responses.
func decodeEntry(e Entry, doc models.Document) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, doc)
}

func firstString(e Entry, keys ...string) string {
	for _, k := range keys {
		if s, ok := e[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func defaultActive(e Entry) {
	if _, ok := e["isActive"]; !ok {
		e["isActive"] = true
	}
}

func reference(docType, slugValue string) map[string]any {
	return map[string]any{
		"_key":  uuid.NewString()[:8],
		"_type": "reference",
		"_ref":  models.DocumentIDFor(docType, slugValue),
	}
}

func prepareSize(e Entry) {
	defaultActive(e)
	shapes, _ := e["suitableShapes"].([]any)
	refs := make([]any, 0, len(shapes))
	for _, s := range shapes {
		if name, ok := s.(string); ok {
			refs = append(refs, reference(models.TypeShape, slug.Make(name)))
		}
	}
	if len(refs) > 0 {
		e["suitableShapes"] = refs
	}
}

func prepareProduct(e Entry) {
	if category := firstString(e, "category"); category != "" {
		ref := reference(models.TypeCategory, slug.Make(category))
		delete(ref, "_key")
		e["category"] = ref
	}
}

func setLegacyMultiplier(e Entry) error {
	adjustment, err := number(e["qualityAdjustment"])
	if err != nil {
		return fmt.Errorf("qualityAdjustment: %w", err)
	}
	direction, _ := e["priceDirection"].(string)
	multiplier, err := calc.LegacyQualityMultiplier(adjustment, calc.Direction(direction))
	if err != nil {
		return err
	}
	e["priceMultiplier"] = multiplier.InexactFloat64()
	return nil
}

func number(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("expected a number, got %v", v)
	}
}
