package models

// DishDto is a dish together with its flavors, as exchanged with clients.
type DishDto struct {
	Dish
	Flavors      []DishFlavor `json:"flavors" validate:"dive"`
	CategoryName string       `json:"categoryName,omitempty"`
	// Copies is set when the dish is listed as a member of a setmeal.
	Copies int `json:"copies,omitempty"`
}

// SetmealDto is a setmeal together with its member dishes.
type SetmealDto struct {
	Setmeal
	SetmealDishes []SetmealDish `json:"setmealDishes" validate:"dive"`
	CategoryName  string        `json:"categoryName,omitempty"`
}

// DishFilter narrows a dish list. Nil fields are not applied.
type DishFilter struct {
	CategoryID *uint
	Status     *int
	Name       string
}

// SetmealFilter narrows a setmeal list. Nil fields are not applied.
type SetmealFilter struct {
	CategoryID *uint
	Status     *int
	Name       string
}
