package domain

import (
	"math"
	"time"
)

// Author of one or more recipes. Author names are not unique across the
// dataset, so authors are always identified by their numeric id.
type Author struct {
	ID      int
	Name    string
	Recipes []*Recipe
}

func NewAuthor(id int, name string) *Author {
	return &Author{ID: id, Name: name}
}

// AddRecipe appends recipe to the author's collection, keeping insertion
// order. Duplicates are rejected.
func (a *Author) AddRecipe(recipe *Recipe) {
	if recipe == nil {
		return
	}
	for _, r := range a.Recipes {
		if r == recipe || r.ID == recipe.ID {
			return
		}
	}
	a.Recipes = append(a.Recipes, recipe)
}

// Category groups recipes. Identity is the name itself, globally unique.
type Category struct {
	Name    string
	Recipes []*Recipe
}

func NewCategory(name string) *Category {
	return &Category{Name: name}
}

func (c *Category) AddRecipe(recipe *Recipe) {
	if recipe == nil {
		return
	}
	for _, r := range c.Recipes {
		if r == recipe || r.ID == recipe.ID {
			return
		}
	}
	c.Recipes = append(c.Recipes, recipe)
}

type Recipe struct {
	ID                   int
	Name                 string
	Author               *Author
	Category             *Category
	Nutrition            *Nutrition
	CookTime             int
	PrepTime             int
	DatePublished        time.Time
	Description          string
	Images               []string
	IngredientQuantities []string
	Ingredients          []string
	Instructions         []string
	Servings             string
	Yield                string

	// Rating is the mean of all attached reviews, nil when there are none.
	Rating  *float64
	Reviews []*Review
}

// AddReview attaches the review and recomputes the aggregate rating.
func (r *Recipe) AddReview(review *Review) {
	if review == nil {
		return
	}
	r.Reviews = append(r.Reviews, review)
	r.RecalculateRating()
}

// RemoveReview detaches the review with the given id, if present, and
// recomputes the aggregate rating.
func (r *Recipe) RemoveReview(reviewID int) {
	for i, rev := range r.Reviews {
		if rev.ID == reviewID {
			r.Reviews = append(r.Reviews[:i], r.Reviews[i+1:]...)
			r.RecalculateRating()
			return
		}
	}
}

// RecalculateRating sets Rating to the mean of the attached reviews' ratings,
// rounded to one decimal place. With no reviews the rating is nil, not zero.
func (r *Recipe) RecalculateRating() {
	if len(r.Reviews) == 0 {
		r.Rating = nil
		return
	}
	var sum float64
	for _, rev := range r.Reviews {
		sum += rev.Rating
	}
	mean := math.Round(sum/float64(len(r.Reviews))*10) / 10
	r.Rating = &mean
}
