package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddReview    = "review added successfully"
	MessageSuccessDeleteReview = "review deleted successfully"
	MessageSuccessGetReviews   = "success get reviews"

	MessageFailedAddReview    = "failed to add review"
	MessageFailedDeleteReview = "failed to delete review"
	MessageFailedGetReviews   = "failed to get reviews"

	ErrReviewNotFound = errors.New("review not found")
)

type (
	AddReviewRequest struct {
		RecipeID int     `json:"recipe_id" validate:"required,min=1"`
		Rating   float64 `json:"rating" validate:"min=0,max=5"`
		Text     string  `json:"text" validate:"required"`
	}

	DeleteReviewRequest struct {
		ReviewID int `json:"review_id" validate:"required,min=1"`
	}

	ReviewResponse struct {
		ID       int       `json:"id"`
		Username string    `json:"username"`
		RecipeID int       `json:"recipe_id"`
		Rating   float64   `json:"rating"`
		Text     string    `json:"text"`
		Date     time.Time `json:"date"`
	}
)
