package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-furniture/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const activeOrder = "sort_order ASC, name ASC"

type CatalogRepositoryImpl interface {
	GetShape(ctx context.Context, id string) (*models.TableShape, error)
	GetMaterial(ctx context.Context, id string) (*models.TableMaterial, error)
	GetSize(ctx context.Context, id string) (*models.TableSize, error)
	GetQuality(ctx context.Context, id string) (*models.TableQuality, error)

	ActiveShapes(ctx context.Context) ([]models.TableShape, error)
	ActiveMaterials(ctx context.Context) ([]models.TableMaterial, error)
	ActiveSizes(ctx context.Context) ([]models.TableSize, error)
	ActiveQualities(ctx context.Context) ([]models.TableQuality, error)

	UpsertShapes(ctx context.Context, shapes []models.TableShape) error
	UpsertMaterials(ctx context.Context, materials []models.TableMaterial) error
	UpsertSizes(ctx context.Context, sizes []models.TableSize) error
	UpsertQualities(ctx context.Context, qualities []models.TableQuality) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepositoryImpl {
	return &catalogRepository{db: db}
}

// firstByID loads a single document, mapping a missing row to
// models.ErrDocumentNotFound.
func firstByID[T models.Document](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var doc T
	err := db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %q: %w", doc.DocumentType(), id, models.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func active[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Where("is_active = ?", true).Order(activeOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// upsert inserts rows, replacing every column of rows whose id already exists.
func upsert[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
}

func (r *catalogRepository) GetShape(ctx context.Context, id string) (*models.TableShape, error) {
	return firstByID[models.TableShape](ctx, r.db, id)
}

func (r *catalogRepository) GetMaterial(ctx context.Context, id string) (*models.TableMaterial, error) {
	return firstByID[models.TableMaterial](ctx, r.db, id)
}

func (r *catalogRepository) GetSize(ctx context.Context, id string) (*models.TableSize, error) {
	return firstByID[models.TableSize](ctx, r.db, id)
}

func (r *catalogRepository) GetQuality(ctx context.Context, id string) (*models.TableQuality, error) {
	return firstByID[models.TableQuality](ctx, r.db, id)
}

func (r *catalogRepository) ActiveShapes(ctx context.Context) ([]models.TableShape, error) {
	return active[models.TableShape](ctx, r.db)
}

func (r *catalogRepository) ActiveMaterials(ctx context.Context) ([]models.TableMaterial, error) {
	return active[models.TableMaterial](ctx, r.db)
}

func (r *catalogRepository) ActiveSizes(ctx context.Context) ([]models.TableSize, error) {
	return active[models.TableSize](ctx, r.db)
}

func (r *catalogRepository) ActiveQualities(ctx context.Context) ([]models.TableQuality, error) {
	return active[models.TableQuality](ctx, r.db)
}

func (r *catalogRepository) UpsertShapes(ctx context.Context, shapes []models.TableShape) error {
	return upsert(ctx, r.db, shapes)
}

func (r *catalogRepository) UpsertMaterials(ctx context.Context, materials []models.TableMaterial) error {
	return upsert(ctx, r.db, materials)
}

func (r *catalogRepository) UpsertSizes(ctx context.Context, sizes []models.TableSize) error {
	return upsert(ctx, r.db, sizes)
}

func (r *catalogRepository) UpsertQualities(ctx context.Context, qualities []models.TableQuality) error {
	return upsert(ctx, r.db, qualities)
}
