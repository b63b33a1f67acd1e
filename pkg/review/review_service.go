package review

import (
	"RecipeBook/domain"
	"RecipeBook/pkg/repository"
	"context"
	"sort"
)

type (
	ReviewService interface {
		AddReview(ctx context.Context, req domain.AddReviewRequest, username string) (domain.ReviewResponse, error)
		DeleteReview(ctx context.Context, reviewID int, username string) (bool, error)
		GetReviewsForRecipe(ctx context.Context, recipeID int) ([]domain.ReviewResponse, error)
	}

	reviewService struct {
		repo repository.Repository
	}
)

func NewReviewService(repo repository.Repository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) AddReview(ctx context.Context, req domain.AddReviewRequest, username string) (domain.ReviewResponse, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return domain.ReviewResponse{}, err
	}
	if user == nil {
		return domain.ReviewResponse{}, domain.ErrUnknownUser
	}
	recipe, err := s.repo.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		return domain.ReviewResponse{}, err
	}
	if recipe == nil {
		return domain.ReviewResponse{}, domain.ErrRecipeNotFound
	}

	review, err := domain.NewReview(user, recipe, req.Rating, req.Text)
	if err != nil {
		return domain.ReviewResponse{}, err
	}
	if err := s.repo.AddReview(ctx, review); err != nil {
		return domain.ReviewResponse{}, err
	}

	return domain.ReviewResponse{
		ID:       review.ID,
		Username: username,
		RecipeID: req.RecipeID,
		Rating:   review.Rating,
		Text:     review.Text,
		Date:     review.Date,
	}, nil
}

// DeleteReview reports whether the review was removed. A missing review or a
// review owned by someone else both come back false without an error.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID int, username string) (bool, error) {
	return s.repo.DeleteReview(ctx, reviewID, username)
}

func (s *reviewService) GetReviewsForRecipe(ctx context.Context, recipeID int) ([]domain.ReviewResponse, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}

	reviews := make([]*domain.Review, len(recipe.Reviews))
	copy(reviews, recipe.Reviews)
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})

	responses := make([]domain.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		res := domain.ReviewResponse{
			ID:       review.ID,
			RecipeID: recipeID,
			Rating:   review.Rating,
			Text:     review.Text,
			Date:     review.Date,
		}
		if review.User != nil {
			res.Username = review.User.Username
		}
		responses = append(responses, res)
	}
	return responses, nil
}
