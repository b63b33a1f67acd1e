package entities

import (
	"time"
)

type Recipe struct {
	ID            int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string    `gorm:"index" json:"name"`
	AuthorID      int       `gorm:"index" json:"author_id"`
	CategoryName  string    `gorm:"index" json:"category_name"`
	CookTime      int       `json:"cook_time"`
	PrepTime      int       `json:"prep_time"`
	DatePublished time.Time `json:"date_published"`
	Description   string    `gorm:"type:text" json:"description"`
	Servings      string    `json:"servings"`
	Yield         string    `json:"yield"`
	Rating        *float64  `json:"rating,omitempty"`

	Author    *Author    `gorm:"foreignKey:AuthorID"`
	Category  *Category  `gorm:"foreignKey:CategoryName;references:Name"`
	Nutrition *Nutrition `gorm:"foreignKey:RecipeID"`
}

type Author struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"index" json:"name"`
}

// Category rows are keyed by name, there is no separate numeric id.
type Category struct {
	Name string `gorm:"primaryKey" json:"name"`
}

type Nutrition struct {
	RecipeID      int     `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Calories      int     `json:"calories"`
	Fat           float64 `json:"fat"`
	SaturatedFat  float64 `json:"saturated_fat"`
	Cholesterol   int     `json:"cholesterol"`
	Sodium        int     `json:"sodium"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	Protein       float64 `json:"protein"`
}

// Ordered list-valued recipe attributes live in child tables keyed by
// (recipe_id, position) and are reassembled in position order on read.

type RecipeImage struct {
	RecipeID int    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Position int    `gorm:"primaryKey;autoIncrement:false" json:"position"`
	URL      string `json:"url"`
}

type RecipeIngredient struct {
	RecipeID int    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Position int    `gorm:"primaryKey;autoIncrement:false" json:"position"`
	Quantity string `json:"quantity"`
	Name     string `gorm:"index" json:"name"`
}

type RecipeInstruction struct {
	RecipeID int    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Position int    `gorm:"primaryKey;autoIncrement:false" json:"position"`
	Text     string `gorm:"type:text" json:"text"`
}
