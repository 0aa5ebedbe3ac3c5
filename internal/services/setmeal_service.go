package services

import (
	"context"
	"errors"
	"fmt"

	"rikky/internal/models"
	"rikky/internal/repositories"
)

// SetmealService handles business logic related to setmeals and their member dishes.
type SetmealService struct {
	setmealRepo  repositories.SetmealRepository
	dishRepo     repositories.DishRepository
	categoryRepo repositories.CategoryRepository
	events       *MenuEvents
}

// NewSetmealService creates a new SetmealService. events may be nil.
func NewSetmealService(setmealRepo repositories.SetmealRepository, dishRepo repositories.DishRepository, categoryRepo repositories.CategoryRepository, events *MenuEvents) *SetmealService {
	return &SetmealService{
		setmealRepo:  setmealRepo,
		dishRepo:     dishRepo,
		categoryRepo: categoryRepo,
		events:       events,
	}
}

// SaveWithDishes creates a setmeal together with its member dishes.
func (s *SetmealService) SaveWithDishes(ctx context.Context, dto *models.SetmealDto) error {
	if err := s.checkSetmeal(ctx, dto); err != nil {
		return err
	}
	if err := s.setmealRepo.CreateWithDishes(ctx, &dto.Setmeal, dto.SetmealDishes); err != nil {
		return fmt.Errorf("failed to save setmeal: %w", err)
	}
	if dto.SetmealDishes == nil {
		dto.SetmealDishes = []models.SetmealDish{}
	}
	s.events.emit(ctx, EntitySetmeal, ActionSaved, []uint{dto.ID}, nil)
	return nil
}

// GetByIDWithDishes retrieves a setmeal with its member dishes and category name.
func (s *SetmealService) GetByIDWithDishes(ctx context.Context, id uint) (*models.SetmealDto, error) {
	setmeal, err := s.setmealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "setmeal %d not found", id)
	}
	dtos, err := s.assemble(ctx, []models.Setmeal{*setmeal})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// UpdateWithDishes updates a setmeal and replaces all of its member dishes.
func (s *SetmealService) UpdateWithDishes(ctx context.Context, dto *models.SetmealDto) error {
	if dto.ID == 0 {
		return NewDomainError(KindValidation, "setmeal id is required")
	}
	if err := s.checkSetmeal(ctx, dto); err != nil {
		return err
	}
	if err := s.setmealRepo.UpdateWithDishes(ctx, &dto.Setmeal, dto.SetmealDishes); err != nil {
		return fromRepository(err, "setmeal %d not found", dto.ID)
	}
	if dto.SetmealDishes == nil {
		dto.SetmealDishes = []models.SetmealDish{}
	}
	s.events.emit(ctx, EntitySetmeal, ActionUpdated, []uint{dto.ID}, nil)
	return nil
}

// ChangeStatus puts the given setmeals on sale (1) or takes them off sale (0).
func (s *SetmealService) ChangeStatus(ctx context.Context, ids []uint, status int) error {
	ids, err := checkBatch(ids, &status)
	if err != nil {
		return err
	}
	if err := s.setmealRepo.UpdateStatus(ctx, ids, status); err != nil {
		return fromRepository(err, "one or more of setmeals %v not found", ids)
	}
	s.events.emit(ctx, EntitySetmeal, ActionStatus, ids, &status)
	return nil
}

// RemoveWithDishes logically deletes the given setmeals and their member
// rows. Nothing is deleted while any of them is on sale.
func (s *SetmealService) RemoveWithDishes(ctx context.Context, ids []uint) error {
	ids, err := checkBatch(ids, nil)
	if err != nil {
		return err
	}
	if err := s.setmealRepo.DeleteWithDishes(ctx, ids); err != nil {
		var onSale *repositories.OnSaleError
		if errors.As(err, &onSale) {
			return NewDomainError(KindConflict, "%d of %d setmeals are on sale and cannot be deleted", onSale.OnSale, onSale.Total)
		}
		return fromRepository(err, "one or more of setmeals %v not found", ids)
	}
	s.events.emit(ctx, EntitySetmeal, ActionDeleted, ids, nil)
	return nil
}

// ListWithDishes retrieves the setmeals matching the filter with their member dishes.
func (s *SetmealService) ListWithDishes(ctx context.Context, filter models.SetmealFilter) ([]models.SetmealDto, error) {
	setmeals, err := s.setmealRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, setmeals)
}

// Page retrieves one page of setmeals with their category names.
func (s *SetmealService) Page(ctx context.Context, query models.PageQuery) (models.Page[models.SetmealDto], error) {
	query = query.Normalize()
	setmeals, total, err := s.setmealRepo.Page(ctx, query)
	if err != nil {
		return models.Page[models.SetmealDto]{}, err
	}
	dtos, err := s.assemble(ctx, setmeals)
	if err != nil {
		return models.Page[models.SetmealDto]{}, err
	}
	return models.NewPage(dtos, total, query), nil
}

// ListDishes retrieves the member dishes of a setmeal, with their flavors
// and the number of copies included, in member order.
func (s *SetmealService) ListDishes(ctx context.Context, id uint) ([]models.DishDto, error) {
	if _, err := s.setmealRepo.GetByID(ctx, id); err != nil {
		return nil, fromRepository(err, "setmeal %d not found", id)
	}
	members, err := s.setmealRepo.DishesBySetmealIDs(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	dtos := make([]models.DishDto, 0, len(members))
	if len(members) == 0 {
		return dtos, nil
	}

	dishIDs := make([]uint, len(members))
	for i, m := range members {
		dishIDs[i] = m.DishID
	}
	dishes, err := s.dishRepo.GetByIDs(ctx, dishIDs)
	if err != nil {
		return nil, err
	}
	flavors, err := s.dishRepo.FlavorsByDishIDs(ctx, dishIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}
	flavorsByDish := make(map[uint][]models.DishFlavor, len(dishes))
	for _, f := range flavors {
		flavorsByDish[f.DishID] = append(flavorsByDish[f.DishID], f)
	}

	for _, m := range members {
		dish, ok := byID[m.DishID]
		if !ok {
			// deleted since the setmeal was assembled
			continue
		}
		dishFlavors := flavorsByDish[dish.ID]
		if dishFlavors == nil {
			dishFlavors = []models.DishFlavor{}
		}
		dtos = append(dtos, models.DishDto{Dish: dish, Flavors: dishFlavors, Copies: m.Copies})
	}
	return dtos, nil
}

// checkSetmeal validates the setmeal and snapshots name, price and image
// of every member from the current dish row.
func (s *SetmealService) checkSetmeal(ctx context.Context, dto *models.SetmealDto) error {
	if err := validateStruct(dto); err != nil {
		return err
	}
	if !dto.Price.IsPositive() {
		return NewDomainError(KindValidation, "setmeal price must be greater than 0")
	}
	if err := requireCategory(ctx, s.categoryRepo, dto.CategoryID, models.CategoryTypeSetmeal); err != nil {
		return err
	}
	if len(dto.SetmealDishes) == 0 {
		return nil
	}

	dishIDs := make([]uint, len(dto.SetmealDishes))
	for i, m := range dto.SetmealDishes {
		dishIDs[i] = m.DishID
	}
	dishes, err := s.dishRepo.GetByIDs(ctx, uniqueIDs(dishIDs))
	if err != nil {
		return fmt.Errorf("failed to load member dishes: %w", err)
	}
	byID := make(map[uint]models.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}
	for i := range dto.SetmealDishes {
		m := &dto.SetmealDishes[i]
		dish, ok := byID[m.DishID]
		if !ok {
			return NewDomainError(KindValidation, "dish %d does not exist", m.DishID)
		}
		m.Name = dish.Name
		m.Price = dish.Price
		m.Image = dish.Image
	}
	return nil
}

// assemble attaches member dishes and category names to setmeals, keeping their order.
func (s *SetmealService) assemble(ctx context.Context, setmeals []models.Setmeal) ([]models.SetmealDto, error) {
	dtos := make([]models.SetmealDto, 0, len(setmeals))
	if len(setmeals) == 0 {
		return dtos, nil
	}

	setmealIDs := make([]uint, len(setmeals))
	categoryIDs := make([]uint, len(setmeals))
	for i, sm := range setmeals {
		setmealIDs[i] = sm.ID
		categoryIDs[i] = sm.CategoryID
	}

	members, err := s.setmealRepo.DishesBySetmealIDs(ctx, setmealIDs)
	if err != nil {
		return nil, err
	}
	bySetmeal := make(map[uint][]models.SetmealDish, len(setmeals))
	for _, m := range members {
		bySetmeal[m.SetmealID] = append(bySetmeal[m.SetmealID], m)
	}

	names, err := categoryNames(ctx, s.categoryRepo, categoryIDs)
	if err != nil {
		return nil, err
	}

	for _, sm := range setmeals {
		setmealDishes := bySetmeal[sm.ID]
		if setmealDishes == nil {
			setmealDishes = []models.SetmealDish{}
		}
		dtos = append(dtos, models.SetmealDto{
			Setmeal:       sm,
			SetmealDishes: setmealDishes,
			CategoryName:  names[sm.CategoryID],
		})
	}
	return dtos, nil
}
