package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"rikky/internal/database"
	"rikky/internal/models"
	"rikky/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, categoryType int, name string) *models.Category {
	t.Helper()
	c := &models.Category{Type: categoryType, Name: name}
	require.NoError(t, repositories.NewGORMCategoryRepository(db).Create(context.Background(), c))
	return c
}

func newDish(categoryID uint, name string) *models.Dish {
	return &models.Dish{
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.RequireFromString("12.80"),
		Status:     models.StatusEnabled,
	}
}

func flavor(name string, values ...string) models.DishFlavor {
	return models.DishFlavor{Name: name, Value: datatypes.JSONSlice[string](values)}
}
