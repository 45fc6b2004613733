package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-furniture/app/repositories"
	"github.com/Rakhulsr/go-furniture/app/schema"
	"go.uber.org/zap"
)

// SyncReport counts the documents written to the mirror per type.
type SyncReport struct {
	Shapes         int `json:"shapes"`
	Materials      int `json:"materials"`
	Sizes          int `json:"sizes"`
	Qualities      int `json:"qualities"`
	Configurations int `json:"configurations"`
}

type SyncService struct {
	client         CMSClient
	catalog        repositories.CatalogRepositoryImpl
	configurations repositories.ConfigurationRepositoryImpl
	logger         *zap.Logger
}

func NewSyncService(client CMSClient, catalog repositories.CatalogRepositoryImpl, configurations repositories.ConfigurationRepositoryImpl, logger *zap.Logger) *SyncService {
	return &SyncService{client: client, catalog: catalog, configurations: configurations, logger: logger}
}

// Sync copies every published catalog document and configuration from the
// CMS into the mirror. Existing rows are overwritten; rows for documents
// deleted in the CMS are left in place.
func (s *SyncService) Sync(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	catalog, err := LoadCatalog(ctx, s.client)
	if err != nil {
		return report, err
	}
	configurations, err := LoadConfigurations(ctx, s.client)
	if err != nil {
		return report, err
	}

	for _, doc := range catalog.Documents() {
		summary := schema.Preview(doc)
		s.logger.Debug("syncing document",
			zap.String("type", doc.DocumentType()),
			zap.String("id", doc.DocumentID()),
			zap.String("title", summary.Title),
			zap.String("subtitle", summary.Subtitle),
		)
	}

	if err := s.catalog.UpsertShapes(ctx, catalog.Shapes); err != nil {
		return report, fmt.Errorf("sync shapes: %w", err)
	}
	report.Shapes = len(catalog.Shapes)

	if err := s.catalog.UpsertMaterials(ctx, catalog.Materials); err != nil {
		return report, fmt.Errorf("sync materials: %w", err)
	}
	report.Materials = len(catalog.Materials)

	if err := s.catalog.UpsertSizes(ctx, catalog.Sizes); err != nil {
		return report, fmt.Errorf("sync sizes: %w", err)
	}
	report.Sizes = len(catalog.Sizes)

	if err := s.catalog.UpsertQualities(ctx, catalog.Qualities); err != nil {
		return report, fmt.Errorf("sync qualities: %w", err)
	}
	report.Qualities = len(catalog.Qualities)

	if err := s.configurations.Upsert(ctx, configurations); err != nil {
		return report, fmt.Errorf("sync configurations: %w", err)
	}
	report.Configurations = len(configurations)

	s.logger.Info("mirror synced",
		zap.Int("shapes", report.Shapes),
		zap.Int("materials", report.Materials),
		zap.Int("sizes", report.Sizes),
		zap.Int("qualities", report.Qualities),
		zap.Int("configurations", report.Configurations),
	)
	return report, nil
}
