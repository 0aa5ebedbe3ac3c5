package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"rikky/internal/models"
	"rikky/internal/repositories"
	"rikky/internal/services"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newDishService(t *testing.T) (*services.DishService, *MockDishRepository, *MockCategoryRepository, *recordingPublisher) {
	t.Helper()
	dishRepo := new(MockDishRepository)
	categoryRepo := new(MockCategoryRepository)
	publisher := &recordingPublisher{}
	events := services.NewMenuEvents(publisher, zerolog.Nop())
	return services.NewDishService(dishRepo, categoryRepo, events), dishRepo, categoryRepo, publisher
}

func dishCategory(id uint) *models.Category {
	return &models.Category{Model: models.Model{ID: id}, Type: models.CategoryTypeDish, Name: "Sichuan"}
}

func validDishDto() *models.DishDto {
	return &models.DishDto{
		Dish: models.Dish{
			Name:       "Mapo Tofu",
			CategoryID: 3,
			Price:      decimal.RequireFromString("18.50"),
			Status:     models.StatusEnabled,
		},
		Flavors: []models.DishFlavor{
			{Name: "spice", Value: datatypes.JSONSlice[string]{"mild", "hot"}},
			{Name: "temperature", Value: datatypes.JSONSlice[string]{"warm"}},
		},
	}
}

func TestDishService_SaveWithFlavors(t *testing.T) {
	ctx := context.Background()
	svc, dishRepo, categoryRepo, publisher := newDishService(t)

	dto := validDishDto()
	categoryRepo.On("GetByID", ctx, uint(3)).Return(dishCategory(3), nil).Once()
	dishRepo.On("CreateWithFlavors", ctx, mock.AnythingOfType("*models.Dish"), dto.Flavors).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Dish).ID = 42
		}).
		Return(nil).Once()

	require.NoError(t, svc.SaveWithFlavors(ctx, dto))
	assert.Equal(t, uint(42), dto.ID)
	dishRepo.AssertExpectations(t)

	require.Len(t, publisher.keys, 1)
	assert.Equal(t, "dish.saved", publisher.keys[0])
	var event services.MenuEvent
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, []uint{42}, event.IDs)
}

func TestDishService_SaveWithFlavors_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		svc, dishRepo, _, _ := newDishService(t)
		dto := validDishDto()
		dto.Name = ""
		err := svc.SaveWithFlavors(ctx, dto)
		assert.True(t, services.IsKind(err, services.KindValidation))
		dishRepo.AssertNotCalled(t, "CreateWithFlavors", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("price not positive", func(t *testing.T) {
		svc, _, _, _ := newDishService(t)
		dto := validDishDto()
		dto.Price = decimal.Zero
		err := svc.SaveWithFlavors(ctx, dto)
		assert.True(t, services.IsKind(err, services.KindValidation))
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("status out of range", func(t *testing.T) {
		svc, _, _, _ := newDishService(t)
		dto := validDishDto()
		dto.Status = 5
		assert.True(t, services.IsKind(svc.SaveWithFlavors(ctx, dto), services.KindValidation))
	})

	t.Run("flavor without values", func(t *testing.T) {
		svc, _, _, _ := newDishService(t)
		dto := validDishDto()
		dto.Flavors[0].Value = nil
		assert.True(t, services.IsKind(svc.SaveWithFlavors(ctx, dto), services.KindValidation))
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, _, categoryRepo, _ := newDishService(t)
		categoryRepo.On("GetByID", ctx, uint(3)).Return(nil, fmt.Errorf("category: %w", repositories.ErrNotFound)).Once()
		err := svc.SaveWithFlavors(ctx, validDishDto())
		assert.True(t, services.IsKind(err, services.KindValidation))
		assert.Contains(t, err.Error(), "category 3 does not exist")
	})

	t.Run("setmeal category", func(t *testing.T) {
		svc, _, categoryRepo, _ := newDishService(t)
		categoryRepo.On("GetByID", ctx, uint(3)).Return(&models.Category{Model: models.Model{ID: 3}, Type: models.CategoryTypeSetmeal}, nil).Once()
		err := svc.SaveWithFlavors(ctx, validDishDto())
		assert.True(t, services.IsKind(err, services.KindValidation))
	})
}

func TestDishService_GetByIDWithFlavors(t *testing.T) {
	ctx := context.Background()
	svc, dishRepo, categoryRepo, _ := newDishService(t)

	dish := &models.Dish{Model: models.Model{ID: 7}, Name: "Mapo Tofu", CategoryID: 3}
	dishRepo.On("GetByID", ctx, uint(7)).Return(dish, nil).Once()
	dishRepo.On("FlavorsByDishIDs", ctx, []uint{7}).Return([]models.DishFlavor{
		{DishID: 7, Name: "spice", Value: datatypes.JSONSlice[string]{"hot"}},
	}, nil).Once()
	categoryRepo.On("GetByIDs", ctx, []uint{3}).Return([]models.Category{*dishCategory(3)}, nil).Once()

	dto, err := svc.GetByIDWithFlavors(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu", dto.Name)
	assert.Equal(t, "Sichuan", dto.CategoryName)
	require.Len(t, dto.Flavors, 1)
	assert.Equal(t, "spice", dto.Flavors[0].Name)

	dishRepo.On("GetByID", ctx, uint(8)).Return(nil, fmt.Errorf("dish: %w", repositories.ErrNotFound)).Once()
	_, err = svc.GetByIDWithFlavors(ctx, 8)
	assert.True(t, services.IsKind(err, services.KindNotFound))
	assert.Contains(t, err.Error(), "dish 8 not found")
}

func TestDishService_UpdateWithFlavors(t *testing.T) {
	ctx := context.Background()

	t.Run("id required", func(t *testing.T) {
		svc, _, _, _ := newDishService(t)
		assert.True(t, services.IsKind(svc.UpdateWithFlavors(ctx, validDishDto()), services.KindValidation))
	})

	t.Run("not found", func(t *testing.T) {
		svc, dishRepo, categoryRepo, publisher := newDishService(t)
		dto := validDishDto()
		dto.ID = 99
		categoryRepo.On("GetByID", ctx, uint(3)).Return(dishCategory(3), nil).Once()
		dishRepo.On("UpdateWithFlavors", ctx, &dto.Dish, dto.Flavors).Return(fmt.Errorf("dish: %w", repositories.ErrNotFound)).Once()

		err := svc.UpdateWithFlavors(ctx, dto)
		assert.True(t, services.IsKind(err, services.KindNotFound))
		assert.Empty(t, publisher.keys)
	})

	t.Run("ok", func(t *testing.T) {
		svc, dishRepo, categoryRepo, publisher := newDishService(t)
		dto := validDishDto()
		dto.ID = 5
		categoryRepo.On("GetByID", ctx, uint(3)).Return(dishCategory(3), nil).Once()
		dishRepo.On("UpdateWithFlavors", ctx, &dto.Dish, dto.Flavors).Return(nil).Once()

		require.NoError(t, svc.UpdateWithFlavors(ctx, dto))
		assert.Equal(t, []string{"dish.updated"}, publisher.keys)
	})
}

func TestDishService_UpdateDishStatus(t *testing.T) {
	ctx := context.Background()
	svc, dishRepo, _, publisher := newDishService(t)

	assert.True(t, services.IsKind(svc.UpdateDishStatus(ctx, nil, 1), services.KindValidation))
	assert.True(t, services.IsKind(svc.UpdateDishStatus(ctx, []uint{1}, 2), services.KindValidation))
	assert.True(t, services.IsKind(svc.UpdateDishStatus(ctx, []uint{0}, 1), services.KindValidation))

	dishRepo.On("UpdateStatus", ctx, []uint{1, 2, 3}, 0).Return(nil).Once()
	require.NoError(t, svc.UpdateDishStatus(ctx, []uint{1, 2, 2, 3, 1}, 0))

	var event services.MenuEvent
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, "status", event.Action)
	require.NotNil(t, event.Status)
	assert.Equal(t, 0, *event.Status)

	dishRepo.On("UpdateStatus", ctx, []uint{4}, 1).Return(fmt.Errorf("0 of 1: %w", repositories.ErrNotFound)).Once()
	assert.True(t, services.IsKind(svc.UpdateDishStatus(ctx, []uint{4}, 1), services.KindNotFound))
	dishRepo.AssertExpectations(t)
}

func TestDishService_DeleteByIDs(t *testing.T) {
	ctx := context.Background()
	svc, dishRepo, _, publisher := newDishService(t)

	assert.True(t, services.IsKind(svc.DeleteByIDs(ctx, []uint{}), services.KindValidation))

	dishRepo.On("DeleteWithFlavors", ctx, []uint{1, 2}).Return(nil).Once()
	require.NoError(t, svc.DeleteByIDs(ctx, []uint{1, 2}))
	assert.Equal(t, []string{"dish.deleted"}, publisher.keys)

	dbErr := errors.New("connection reset")
	dishRepo.On("DeleteWithFlavors", ctx, []uint{3}).Return(dbErr).Once()
	err := svc.DeleteByIDs(ctx, []uint{3})
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, services.IsKind(err, services.KindNotFound))
}

func TestDishService_ListWithFlavors_Empty(t *testing.T) {
	ctx := context.Background()
	svc, dishRepo, _, _ := newDishService(t)

	categoryID := uint(11)
	filter := models.DishFilter{CategoryID: &categoryID}
	dishRepo.On("List", ctx, filter).Return([]models.Dish{}, nil).Once()

	dtos, err := svc.ListWithFlavors(ctx, filter)
	require.NoError(t, err)
	assert.NotNil(t, dtos)
	assert.Empty(t, dtos)
	dishRepo.AssertNotCalled(t, "FlavorsByDishIDs", mock.Anything, mock.Anything)
}

func TestDishService_Page(t *testing.T) {
	ctx := context.Background()
	svc, dishRepo, categoryRepo, _ := newDishService(t)

	dishes := []models.Dish{
		{Model: models.Model{ID: 2}, Name: "B", CategoryID: 3},
		{Model: models.Model{ID: 1}, Name: "A", CategoryID: 4},
	}
	dishRepo.On("Page", ctx, models.PageQuery{Page: 1, PageSize: 100, Name: "a"}).Return(dishes, int64(102), nil).Once()
	dishRepo.On("FlavorsByDishIDs", ctx, []uint{2, 1}).Return([]models.DishFlavor{}, nil).Once()
	categoryRepo.On("GetByIDs", ctx, []uint{3, 4}).Return([]models.Category{*dishCategory(3)}, nil).Once()

	page, err := svc.Page(ctx, models.PageQuery{Page: 0, PageSize: 500, Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(102), page.Total)
	assert.Equal(t, int64(2), page.Pages)
	assert.Equal(t, 1, page.Current)
	assert.Equal(t, 100, page.Size)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "Sichuan", page.Records[0].CategoryName)
	assert.Equal(t, "", page.Records[1].CategoryName)
	assert.NotNil(t, page.Records[1].Flavors)
}

func TestDishService_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	dishRepo := new(MockDishRepository)
	publisher := &recordingPublisher{failWith: errors.New("channel closed")}
	svc := services.NewDishService(dishRepo, new(MockCategoryRepository), services.NewMenuEvents(publisher, zerolog.Nop()))

	dishRepo.On("DeleteWithFlavors", ctx, []uint{1}).Return(nil).Once()
	assert.NoError(t, svc.DeleteByIDs(ctx, []uint{1}))
}

func TestDishService_NilEvents(t *testing.T) {
	ctx := context.Background()
	dishRepo := new(MockDishRepository)
	svc := services.NewDishService(dishRepo, new(MockCategoryRepository), nil)

	dishRepo.On("UpdateStatus", ctx, []uint{1}, 1).Return(nil).Once()
	assert.NoError(t, svc.UpdateDishStatus(ctx, []uint{1}, 1))
}
