package repositories

import (
	"fmt"

	"gavel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema and then backfills the legacy
// single-image column into the ordered gallery relation.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.Bid{},
		&models.ItemImage{},
		&models.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return migrateLegacyCoverImages(db)
}

// migrateLegacyCoverImages moves every non-null items.image_file_id into
// item_images at position 0. Items that already have gallery rows are left
// alone, so the backfill is idempotent and preserves exactly one image per
// legacy item.
func migrateLegacyCoverImages(db *gorm.DB) error {
	var items []models.Item
	err := db.
		Where("image_file_id IS NOT NULL").
		Find(&items).Error
	if err != nil {
		return fmt.Errorf("failed to scan legacy cover images: %w", err)
	}

	for _, item := range items {
		if item.LegacyImageFileID == nil || *item.LegacyImageFileID == "" {
			continue
		}
		migrateErr := db.Transaction(func(tx *gorm.DB) error {
			var count int64
			err := tx.Model(&models.ItemImage{}).
				Where("item_id = ?", item.ID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				cover := models.ItemImage{
					ID:      uuid.New().String(),
					ItemID:  item.ID,
					FileRef: *item.LegacyImageFileID,
				}
				if err := tx.Create(&cover).Error; err != nil {
					return err
				}
			}
			return tx.Model(&models.Item{}).
				Where("id = ?", item.ID).
				Update("image_file_id", nil).Error
		})
		if migrateErr != nil {
			return fmt.Errorf("failed to migrate legacy cover for item %s: %w", item.ID, migrateErr)
		}
	}
	return nil
}
