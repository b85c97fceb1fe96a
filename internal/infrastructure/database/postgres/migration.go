// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Migration handles catalog schema migrations and seeding
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the catalog models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	models := []interface{}{
		&catalog.Category{},
		&catalog.Product{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the indexes used by the storefront listings.
// Failures are logged and skipped.
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_sort ON products(category, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_products_bestseller ON products(is_bestseller, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_products_new ON products(is_new, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.logger.Infof("Created %d indexes (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts the built-in catalog. Existing rows are kept.
func (m *Migration) SeedInitialData() error {
	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	return nil
}

func (m *Migration) seedCategories() error {
	for _, category := range catalog.StaticCategories() {
		var existing catalog.Category
		err := m.db.Where("slug = ?", category.Slug).First(&existing).Error
		if err == nil {
			m.logger.Debugf("Category already exists: %s", category.Slug)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := m.db.Create(&category).Error; err != nil {
			return err
		}
		m.logger.Infof("Created category: %s", category.Name)
	}
	return nil
}

// seedProducts only runs against an empty products table so catalog edits
// made in the database are never overwritten.
func (m *Migration) seedProducts() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.logger.Infof("Products already seeded (%d rows)", count)
		return nil
	}

	products := catalog.StaticProducts()
	if err := m.db.Create(&products).Error; err != nil {
		return err
	}

	m.logger.Infof("Seeded %d products", len(products))
	return nil
}
