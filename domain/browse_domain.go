package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessGetFeatured     = "success get featured recipes"
	MessageSuccessGetFavourites   = "success get favourites"
	MessageSuccessToggleFavourite = "favourite toggled"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedGetFavourites   = "failed to get favourites"
	MessageFailedToggleFavourite = "failed to toggle favourite"

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrAuthorNotFound   = errors.New("author not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUnknownUser      = errors.New("unknown user")
)

// Search filters accepted by the browse endpoints.
const (
	FilterByName       = "name"
	FilterByAuthor     = "author"
	FilterByCategory   = "category"
	FilterByIngredient = "ingredient"
)

type (
	BrowseRequest struct {
		FilterBy string `json:"filter_by"`
		Query    string `json:"query"`
		Page     int    `json:"page"`
		PerPage  int    `json:"per_page"`
	}

	RecipeSummary struct {
		ID           int      `json:"id"`
		Name         string   `json:"name"`
		AuthorName   string   `json:"author_name"`
		CategoryName string   `json:"category_name"`
		ImageURL     string   `json:"image_url,omitempty"`
		Description  string   `json:"description,omitempty"`
		Rating       *float64 `json:"rating,omitempty"`
		IsFavourite  bool     `json:"is_favourite"`
	}

	RecipeIngredientLine struct {
		Quantity string `json:"quantity"`
		Name     string `json:"name"`
	}

	NutritionResponse struct {
		Calories         int     `json:"calories"`
		Fat              float64 `json:"fat"`
		SaturatedFat     float64 `json:"saturated_fat"`
		Cholesterol      int     `json:"cholesterol"`
		Sodium           int     `json:"sodium"`
		Carbohydrates    float64 `json:"carbohydrates"`
		Fiber            float64 `json:"fiber"`
		Sugar            float64 `json:"sugar"`
		Protein          float64 `json:"protein"`
		HealthStarRating float64 `json:"health_star_rating"`
	}

	RecipeDetailResponse struct {
		RecipeSummary
		CookTime      int                    `json:"cook_time"`
		PrepTime      int                    `json:"prep_time"`
		Ingredients   []RecipeIngredientLine `json:"ingredients"`
		Instructions  []string               `json:"instructions"`
		Images        []string               `json:"images"`
		Servings      string                 `json:"servings"`
		Yield         string                 `json:"yield"`
		Nutrition     *NutritionResponse     `json:"nutrition,omitempty"`
		Reviews       []ReviewResponse       `json:"reviews"`
		DatePublished time.Time              `json:"date_published"`
	}

	BrowseResponse struct {
		Recipes    []RecipeSummary `json:"recipes"`
		Total      int             `json:"total"`
		Page       int             `json:"page"`
		PerPage    int             `json:"per_page"`
		TotalPages int             `json:"total_pages"`
	}

	ToggleFavouriteResponse struct {
		RecipeID    int  `json:"recipe_id"`
		IsFavourite bool `json:"is_favourite"`
	}
)
