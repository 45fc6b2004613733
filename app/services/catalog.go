package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-furniture/app/models"
)

// CatalogResolver looks up the documents a configuration references.
// Unknown ids return models.ErrDocumentNotFound.
type CatalogResolver interface {
	GetShape(ctx context.Context, id string) (*models.TableShape, error)
	GetMaterial(ctx context.Context, id string) (*models.TableMaterial, error)
	GetSize(ctx context.Context, id string) (*models.TableSize, error)
	GetQuality(ctx context.Context, id string) (*models.TableQuality, error)
}

// Catalog is an in-memory snapshot of the pricing documents, in the
// order the CMS returned them.
type Catalog struct {
	Shapes    []models.TableShape
	Materials []models.TableMaterial
	Sizes     []models.TableSize
	Qualities []models.TableQuality
}

// publishedOfType skips drafts; scripts only ever touch published documents.
const publishedOfType = `*[_type == $type && !(_id in path("drafts.**"))] | order(sortOrder asc, name asc)`

// LoadCatalog fetches every shape, material, size and quality.
func LoadCatalog(ctx context.Context, client CMSClient) (*Catalog, error) {
	var c Catalog
	for _, q := range []struct {
		docType string
		out     any
	}{
		{models.TypeShape, &c.Shapes},
		{models.TypeMaterial, &c.Materials},
		{models.TypeSize, &c.Sizes},
		{models.TypeQuality, &c.Qualities},
	} {
		if err := client.Query(ctx, publishedOfType, map[string]any{"type": q.docType}, q.out); err != nil {
			return nil, fmt.Errorf("load %s documents: %w", q.docType, err)
		}
	}
	return &c, nil
}

// LoadConfigurations fetches every published table configuration.
func LoadConfigurations(ctx context.Context, client CMSClient) ([]models.TableConfiguration, error) {
	var configurations []models.TableConfiguration
	if err := client.Query(ctx, publishedOfType, map[string]any{"type": models.TypeConfiguration}, &configurations); err != nil {
		return nil, fmt.Errorf("load %s documents: %w", models.TypeConfiguration, err)
	}
	return configurations, nil
}

func notFound(docType, id string) error {
	return fmt.Errorf("%s %q: %w", docType, id, models.ErrDocumentNotFound)
}

func (c *Catalog) GetShape(_ context.Context, id string) (*models.TableShape, error) {
	for i := range c.Shapes {
		if c.Shapes[i].ID == id {
			return &c.Shapes[i], nil
		}
	}
	return nil, notFound(models.TypeShape, id)
}

func (c *Catalog) GetMaterial(_ context.Context, id string) (*models.TableMaterial, error) {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			return &c.Materials[i], nil
		}
	}
	return nil, notFound(models.TypeMaterial, id)
}

func (c *Catalog) GetSize(_ context.Context, id string) (*models.TableSize, error) {
	for i := range c.Sizes {
		if c.Sizes[i].ID == id {
			return &c.Sizes[i], nil
		}
	}
	return nil, notFound(models.TypeSize, id)
}

func (c *Catalog) GetQuality(_ context.Context, id string) (*models.TableQuality, error) {
	for i := range c.Qualities {
		if c.Qualities[i].ID == id {
			return &c.Qualities[i], nil
		}
	}
	return nil, notFound(models.TypeQuality, id)
}

// Active returns a copy holding only active documents.
func (c *Catalog) Active() *Catalog {
	out := &Catalog{}
	for _, s := range c.Shapes {
		if s.IsActive {
			out.Shapes = append(out.Shapes, s)
		}
	}
	for _, m := range c.Materials {
		if m.IsActive {
			out.Materials = append(out.Materials, m)
		}
	}
	for _, s := range c.Sizes {
		if s.IsActive {
			out.Sizes = append(out.Sizes, s)
		}
	}
	for _, q := range c.Qualities {
		if q.IsActive {
			out.Qualities = append(out.Qualities, q)
		}
	}
	return out
}

// Documents lists every document in the snapshot, shapes first.
func (c *Catalog) Documents() []models.Document {
	var docs []models.Document
	for i := range c.Shapes {
		docs = append(docs, &c.Shapes[i])
	}
	for i := range c.Materials {
		docs = append(docs, &c.Materials[i])
	}
	for i := range c.Sizes {
		docs = append(docs, &c.Sizes[i])
	}
	for i := range c.Qualities {
		docs = append(docs, &c.Qualities[i])
	}
	return docs
}
