package services

import (
	"context"
	"fmt"
	"io"

	"rikky/internal/models"
	"rikky/internal/repositories"
)

// DishService handles business logic related to dishes and their flavors.
type DishService struct {
	dishRepo     repositories.DishRepository
	categoryRepo repositories.CategoryRepository
	events       *MenuEvents
}

// NewDishService creates a new DishService. events may be nil.
func NewDishService(dishRepo repositories.DishRepository, categoryRepo repositories.CategoryRepository, events *MenuEvents) *DishService {
	return &DishService{
		dishRepo:     dishRepo,
		categoryRepo: categoryRepo,
		events:       events,
	}
}

// SaveWithFlavors creates a dish together with its flavors.
func (s *DishService) SaveWithFlavors(ctx context.Context, dto *models.DishDto) error {
	if err := s.checkDish(ctx, dto); err != nil {
		return err
	}
	if err := s.dishRepo.CreateWithFlavors(ctx, &dto.Dish, dto.Flavors); err != nil {
		return fmt.Errorf("failed to save dish: %w", err)
	}
	if dto.Flavors == nil {
		dto.Flavors = []models.DishFlavor{}
	}
	s.events.emit(ctx, EntityDish, ActionSaved, []uint{dto.ID}, nil)
	return nil
}

// GetByIDWithFlavors retrieves a dish with its flavors and category name.
func (s *DishService) GetByIDWithFlavors(ctx context.Context, id uint) (*models.DishDto, error) {
	dish, err := s.dishRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "dish %d not found", id)
	}
	dtos, err := s.assemble(ctx, []models.Dish{*dish})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// UpdateWithFlavors updates a dish and replaces its whole flavor set.
func (s *DishService) UpdateWithFlavors(ctx context.Context, dto *models.DishDto) error {
	if dto.ID == 0 {
		return NewDomainError(KindValidation, "dish id is required")
	}
	if err := s.checkDish(ctx, dto); err != nil {
		return err
	}
	if err := s.dishRepo.UpdateWithFlavors(ctx, &dto.Dish, dto.Flavors); err != nil {
		return fromRepository(err, "dish %d not found", dto.ID)
	}
	if dto.Flavors == nil {
		dto.Flavors = []models.DishFlavor{}
	}
	s.events.emit(ctx, EntityDish, ActionUpdated, []uint{dto.ID}, nil)
	return nil
}

// UpdateDishStatus puts the given dishes on sale (1) or sells them out (0).
func (s *DishService) UpdateDishStatus(ctx context.Context, ids []uint, status int) error {
	ids, err := checkBatch(ids, &status)
	if err != nil {
		return err
	}
	if err := s.dishRepo.UpdateStatus(ctx, ids, status); err != nil {
		return fromRepository(err, "one or more of dishes %v not found", ids)
	}
	s.events.emit(ctx, EntityDish, ActionStatus, ids, &status)
	return nil
}

// DeleteByIDs logically deletes the given dishes and their flavors.
func (s *DishService) DeleteByIDs(ctx context.Context, ids []uint) error {
	ids, err := checkBatch(ids, nil)
	if err != nil {
		return err
	}
	if err := s.dishRepo.DeleteWithFlavors(ctx, ids); err != nil {
		return fromRepository(err, "one or more of dishes %v not found", ids)
	}
	s.events.emit(ctx, EntityDish, ActionDeleted, ids, nil)
	return nil
}

// ListWithFlavors retrieves the dishes matching the filter with their flavors.
func (s *DishService) ListWithFlavors(ctx context.Context, filter models.DishFilter) ([]models.DishDto, error) {
	dishes, err := s.dishRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, dishes)
}

// Page retrieves one page of dishes with their category names.
func (s *DishService) Page(ctx context.Context, query models.PageQuery) (models.Page[models.DishDto], error) {
	query = query.Normalize()
	dishes, total, err := s.dishRepo.Page(ctx, query)
	if err != nil {
		return models.Page[models.DishDto]{}, err
	}
	dtos, err := s.assemble(ctx, dishes)
	if err != nil {
		return models.Page[models.DishDto]{}, err
	}
	return models.NewPage(dtos, total, query), nil
}

// Import creates every dish of a spreadsheet in one transaction and returns
// how many were created. A single bad row rejects the whole sheet.
func (s *DishService) Import(ctx context.Context, r io.Reader) (int, error) {
	rows, err := parseDishSheet(r)
	if err != nil {
		return 0, err
	}
	dtos := make([]models.DishDto, 0, len(rows))
	for _, row := range rows {
		if err := s.checkDish(ctx, &row.dto); err != nil {
			if IsKind(err, KindValidation) {
				return 0, NewDomainError(KindValidation, "row %d: %v", row.line, err)
			}
			return 0, err
		}
		dtos = append(dtos, row.dto)
	}
	if err := s.dishRepo.CreateManyWithFlavors(ctx, dtos); err != nil {
		return 0, fmt.Errorf("failed to import dishes: %w", err)
	}
	ids := make([]uint, len(dtos))
	for i := range dtos {
		ids[i] = dtos[i].ID
	}
	s.events.emit(ctx, EntityDish, ActionSaved, ids, nil)
	return len(dtos), nil
}

func (s *DishService) checkDish(ctx context.Context, dto *models.DishDto) error {
	if err := validateStruct(dto); err != nil {
		return err
	}
	if !dto.Price.IsPositive() {
		return NewDomainError(KindValidation, "dish price must be greater than 0")
	}
	return requireCategory(ctx, s.categoryRepo, dto.CategoryID, models.CategoryTypeDish)
}

// assemble attaches flavors and category names to dishes, keeping their order.
func (s *DishService) assemble(ctx context.Context, dishes []models.Dish) ([]models.DishDto, error) {
	dtos := make([]models.DishDto, 0, len(dishes))
	if len(dishes) == 0 {
		return dtos, nil
	}

	dishIDs := make([]uint, len(dishes))
	categoryIDs := make([]uint, len(dishes))
	for i, d := range dishes {
		dishIDs[i] = d.ID
		categoryIDs[i] = d.CategoryID
	}

	flavors, err := s.dishRepo.FlavorsByDishIDs(ctx, dishIDs)
	if err != nil {
		return nil, err
	}
	byDish := make(map[uint][]models.DishFlavor, len(dishes))
	for _, f := range flavors {
		byDish[f.DishID] = append(byDish[f.DishID], f)
	}

	names, err := categoryNames(ctx, s.categoryRepo, categoryIDs)
	if err != nil {
		return nil, err
	}

	for _, d := range dishes {
		dishFlavors := byDish[d.ID]
		if dishFlavors == nil {
			dishFlavors = []models.DishFlavor{}
		}
		dtos = append(dtos, models.DishDto{
			Dish:         d,
			Flavors:      dishFlavors,
			CategoryName: names[d.CategoryID],
		})
	}
	return dtos, nil
}
