package models

import "gorm.io/gorm"

// Recipe belongs to the user who created it.
type Recipe struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Servings    int    `json:"servings"`
	PrepMinutes int    `json:"prep_minutes"`
	CookMinutes int    `json:"cook_minutes"`
	Image       string `gorm:"size:512" json:"image"`

	Ingredients  []RecipeIngredient  `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Instructions []RecipeInstruction `gorm:"foreignKey:RecipeID" json:"instructions"`
	Tags         []RecipeTag         `gorm:"foreignKey:RecipeID" json:"tags"`
}

type RecipeIngredient struct {
	gorm.Model
	RecipeID uint    `gorm:"index;not null" json:"recipe_id"`
	Order    int     `json:"order"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `gorm:"size:16" json:"unit"`
}

type RecipeInstruction struct {
	gorm.Model
	RecipeID   uint   `gorm:"index;not null" json:"recipe_id"`
	StepNumber int    `gorm:"not null" json:"step_number"`
	Text       string `gorm:"type:text;not null" json:"text"`
}

type RecipeTag struct {
	gorm.Model
	RecipeID uint   `gorm:"index;not null" json:"recipe_id"`
	Name     string `gorm:"not null" json:"name"`
}
