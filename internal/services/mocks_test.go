package services_test

import (
	"context"
	"sync"

	"rikky/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockEmployeeRepository is a mock implementation of repositories.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, categoryType *int) ([]models.Category, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDishRepository is a mock implementation of repositories.DishRepository
type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) CreateWithFlavors(ctx context.Context, dish *models.Dish, flavors []models.DishFlavor) error {
	args := m.Called(ctx, dish, flavors)
	return args.Error(0)
}

func (m *MockDishRepository) CreateManyWithFlavors(ctx context.Context, dishes []models.DishDto) error {
	args := m.Called(ctx, dishes)
	return args.Error(0)
}

func (m *MockDishRepository) GetByID(ctx context.Context, id uint) (*models.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dish), args.Error(1)
}

func (m *MockDishRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Dish, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dish), args.Error(1)
}

func (m *MockDishRepository) FlavorsByDishIDs(ctx context.Context, dishIDs []uint) ([]models.DishFlavor, error) {
	args := m.Called(ctx, dishIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DishFlavor), args.Error(1)
}

func (m *MockDishRepository) UpdateWithFlavors(ctx context.Context, dish *models.Dish, flavors []models.DishFlavor) error {
	args := m.Called(ctx, dish, flavors)
	return args.Error(0)
}

func (m *MockDishRepository) UpdateStatus(ctx context.Context, ids []uint, status int) error {
	args := m.Called(ctx, ids, status)
	return args.Error(0)
}

func (m *MockDishRepository) DeleteWithFlavors(ctx context.Context, ids []uint) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockDishRepository) List(ctx context.Context, filter models.DishFilter) ([]models.Dish, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dish), args.Error(1)
}

func (m *MockDishRepository) Page(ctx context.Context, query models.PageQuery) ([]models.Dish, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Dish), args.Get(1).(int64), args.Error(2)
}

// MockSetmealRepository is a mock implementation of repositories.SetmealRepository
type MockSetmealRepository struct {
	mock.Mock
}

func (m *MockSetmealRepository) CreateWithDishes(ctx context.Context, setmeal *models.Setmeal, dishes []models.SetmealDish) error {
	args := m.Called(ctx, setmeal, dishes)
	return args.Error(0)
}

func (m *MockSetmealRepository) GetByID(ctx context.Context, id uint) (*models.Setmeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setmeal), args.Error(1)
}

func (m *MockSetmealRepository) DishesBySetmealIDs(ctx context.Context, setmealIDs []uint) ([]models.SetmealDish, error) {
	args := m.Called(ctx, setmealIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SetmealDish), args.Error(1)
}

func (m *MockSetmealRepository) UpdateWithDishes(ctx context.Context, setmeal *models.Setmeal, dishes []models.SetmealDish) error {
	args := m.Called(ctx, setmeal, dishes)
	return args.Error(0)
}

func (m *MockSetmealRepository) UpdateStatus(ctx context.Context, ids []uint, status int) error {
	args := m.Called(ctx, ids, status)
	return args.Error(0)
}

func (m *MockSetmealRepository) DeleteWithDishes(ctx context.Context, ids []uint) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockSetmealRepository) List(ctx context.Context, filter models.SetmealFilter) ([]models.Setmeal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Setmeal), args.Error(1)
}

func (m *MockSetmealRepository) Page(ctx context.Context, query models.PageQuery) ([]models.Setmeal, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Setmeal), args.Get(1).(int64), args.Error(2)
}

// recordingPublisher keeps every published message.
type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	bodies   [][]byte
	failWith error
}

func (p *recordingPublisher) Publish(routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.keys = append(p.keys, routingKey)
	p.bodies = append(p.bodies, body)
	return nil
}
