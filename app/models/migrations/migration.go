package migrations

import (
	"github.com/Rakhulsr/go-furniture/app/models"
	"gorm.io/gorm"
)

// AutoMigrate creates the mirror tables the storefront reads from.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.TableShape{}, &models.TableMaterial{}, &models.TableSize{}, &models.TableQuality{}, &models.TableConfiguration{})
}
