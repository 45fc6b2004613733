package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-furniture/app/models"
)

const productSlugs = `*[_type == $type && defined(slug.current) && !(_id in path("drafts.**"))] | order(name asc).slug.current`

// ProductPaths lists the slug of every published product, the identifiers
// the static frontend generates pages for.
func ProductPaths(ctx context.Context, client CMSClient) ([]string, error) {
	var slugs []string
	if err := client.Query(ctx, productSlugs, map[string]any{"type": models.TypeProduct}, &slugs); err != nil {
		return nil, fmt.Errorf("load product paths: %w", err)
	}

	paths := slugs[:0]
	for _, s := range slugs {
		if s != "" {
			paths = append(paths, s)
		}
	}
	return paths, nil
}
