package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-furniture/app/models"
	"gorm.io/gorm"
)

type ConfigurationRepositoryImpl interface {
	GetAvailablePaginated(ctx context.Context, limit, offset int) ([]models.TableConfiguration, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.TableConfiguration, error)
	Upsert(ctx context.Context, configurations []models.TableConfiguration) error
}

type configurationRepository struct {
	db *gorm.DB
}

func NewConfigurationRepository(db *gorm.DB) ConfigurationRepositoryImpl {
	return &configurationRepository{db}
}

func (r *configurationRepository) GetAvailablePaginated(ctx context.Context, limit, offset int) ([]models.TableConfiguration, int64, error) {
	var configurations []models.TableConfiguration
	var total int64

	available := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.TableConfiguration{}).Where("is_available = ?", true)
	}
	if err := available().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := available().Order("name ASC").Limit(limit).Offset(offset).Find(&configurations).Error; err != nil {
		return nil, 0, err
	}
	return configurations, total, nil
}

func (r *configurationRepository) GetBySlug(ctx context.Context, slug string) (*models.TableConfiguration, error) {
	var configuration models.TableConfiguration
	err := r.db.WithContext(ctx).First(&configuration, "slug_current = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %q: %w", models.TypeConfiguration, slug, models.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (r *configurationRepository) Upsert(ctx context.Context, configurations []models.TableConfiguration) error {
	return upsert(ctx, r.db, configurations)
}
