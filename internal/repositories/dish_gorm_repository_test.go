package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"rikky/internal/models"
	"rikky/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMDishRepository_CreateWithFlavors(t *testing.T) {
	ctx := models.WithOperator(context.Background(), "emp-1")
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	cat := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")

	dish := newDish(cat.ID, "Mapo Tofu")
	flavors := []models.DishFlavor{
		flavor("spice", "mild", "medium", "hot"),
		flavor("temperature", "warm"),
		flavor("size", "small", "large"),
	}
	require.NoError(t, repo.CreateWithFlavors(ctx, dish, flavors))
	require.NotZero(t, dish.ID)

	stored, err := repo.GetByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu", stored.Name)
	assert.True(t, decimal.RequireFromString("12.8").Equal(stored.Price))
	assert.Equal(t, "emp-1", stored.CreatedBy)
	assert.Equal(t, "emp-1", stored.UpdatedBy)

	got, err := repo.FlavorsByDishIDs(ctx, []uint{dish.ID})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, f := range got {
		assert.Equal(t, dish.ID, f.DishID)
		assert.Equal(t, flavors[i].Name, f.Name)
		assert.Equal(t, []string(flavors[i].Value), []string(f.Value))
	}
}

func TestGORMDishRepository_CreateWithFlavors_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	cat := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")

	require.NoError(t, db.Migrator().DropTable(&models.DishFlavor{}))

	err := repo.CreateWithFlavors(ctx, newDish(cat.ID, "Orphan"), []models.DishFlavor{flavor("spice", "hot")})
	require.Error(t, err)

	dishes, err := repo.List(ctx, models.DishFilter{})
	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestGORMDishRepository_GetByID_NotFound(t *testing.T) {
	repo := repositories.NewGORMDishRepository(newTestDB(t))
	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMDishRepository_UpdateWithFlavors_ReplacesSet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	cat := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")

	dish := newDish(cat.ID, "Mapo Tofu")
	require.NoError(t, repo.CreateWithFlavors(ctx, dish, []models.DishFlavor{flavor("A", "1"), flavor("B", "2")}))

	update := &models.Dish{
		Model:      models.Model{ID: dish.ID},
		Name:       "Mapo Tofu (large)",
		CategoryID: cat.ID,
		Price:      decimal.RequireFromString("22"),
		Status:     models.StatusDisabled,
	}
	require.NoError(t, repo.UpdateWithFlavors(models.WithOperator(ctx, "emp-2"), update, []models.DishFlavor{flavor("C", "3")}))

	flavors, err := repo.FlavorsByDishIDs(ctx, []uint{dish.ID})
	require.NoError(t, err)
	require.Len(t, flavors, 1)
	assert.Equal(t, "C", flavors[0].Name)

	stored, err := repo.GetByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu (large)", stored.Name)
	assert.Equal(t, models.StatusDisabled, stored.Status)
	assert.Equal(t, "emp-2", stored.UpdatedBy)
	assert.False(t, stored.CreatedAt.IsZero())

	// replaced rows are physically gone
	var total int64
	require.NoError(t, db.Unscoped().Model(&models.DishFlavor{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestGORMDishRepository_UpdateWithFlavors_NotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)

	missing := newDish(1, "Ghost")
	missing.ID = 77
	err := repo.UpdateWithFlavors(ctx, missing, []models.DishFlavor{flavor("A", "1")})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	flavors, err := repo.FlavorsByDishIDs(ctx, []uint{77})
	require.NoError(t, err)
	assert.Empty(t, flavors)
}

func TestGORMDishRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	cat := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")

	var ids []uint
	for i := 0; i < 3; i++ {
		d := newDish(cat.ID, fmt.Sprintf("Dish %d", i))
		require.NoError(t, repo.CreateWithFlavors(ctx, d, nil))
		ids = append(ids, d.ID)
	}

	require.NoError(t, repo.UpdateStatus(ctx, ids, models.StatusDisabled))
	status := models.StatusDisabled
	disabled, err := repo.List(ctx, models.DishFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, disabled, 3)

	// an unknown id leaves every row untouched
	err = repo.UpdateStatus(ctx, []uint{ids[0], 999}, models.StatusEnabled)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	stored, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisabled, stored.Status)
}

func TestGORMDishRepository_DeleteWithFlavors(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	cat := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")

	a := newDish(cat.ID, "A")
	b := newDish(cat.ID, "B")
	require.NoError(t, repo.CreateWithFlavors(ctx, a, []models.DishFlavor{flavor("spice", "hot")}))
	require.NoError(t, repo.CreateWithFlavors(ctx, b, []models.DishFlavor{flavor("spice", "mild")}))

	assert.ErrorIs(t, repo.DeleteWithFlavors(ctx, []uint{a.ID, 999}), repositories.ErrNotFound)
	_, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteWithFlavors(ctx, []uint{a.ID}))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	flavors, err := repo.FlavorsByDishIDs(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, flavors, 1)
	assert.Equal(t, b.ID, flavors[0].DishID)

	// logical delete keeps the rows
	var total int64
	require.NoError(t, db.Unscoped().Model(&models.DishFlavor{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestGORMDishRepository_List(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	sichuan := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")
	empty := seedCategory(t, db, models.CategoryTypeDish, "Desserts")

	second := newDish(sichuan.ID, "Kung Pao Chicken")
	second.Sort = 2
	first := newDish(sichuan.ID, "100% Tofu")
	first.Sort = 1
	require.NoError(t, repo.CreateWithFlavors(ctx, second, nil))
	require.NoError(t, repo.CreateWithFlavors(ctx, first, nil))

	dishes, err := repo.List(ctx, models.DishFilter{CategoryID: &sichuan.ID})
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "100% Tofu", dishes[0].Name)

	dishes, err = repo.List(ctx, models.DishFilter{CategoryID: &empty.ID})
	require.NoError(t, err)
	assert.NotNil(t, dishes)
	assert.Empty(t, dishes)

	// LIKE wildcards in the filter match literally
	dishes, err = repo.List(ctx, models.DishFilter{Name: "0%"})
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "100% Tofu", dishes[0].Name)

	dishes, err = repo.List(ctx, models.DishFilter{Name: "_"})
	require.NoError(t, err)
	assert.Empty(t, dishes)

	dishes, err = repo.List(ctx, models.DishFilter{Name: "KUNG"})
	require.NoError(t, err)
	assert.Len(t, dishes, 1)
}

func TestGORMDishRepository_Page(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMDishRepository(db)
	cat := seedCategory(t, db, models.CategoryTypeDish, "Sichuan")

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.CreateWithFlavors(ctx, newDish(cat.ID, fmt.Sprintf("Dish %02d", i)), nil))
	}

	q := models.PageQuery{Page: 1, PageSize: 10}.Normalize()
	page1, total, err := repo.Page(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)

	q.Page = 2
	page2, total, err := repo.Page(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page2, 5)

	seen := map[uint]bool{}
	for _, d := range append(page1, page2...) {
		assert.False(t, seen[d.ID], "dish %d on two pages", d.ID)
		seen[d.ID] = true
	}

	q = models.PageQuery{Page: 1, PageSize: 10, Name: "dish 1"}.Normalize()
	filtered, total, err := repo.Page(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, filtered, 5)
}
