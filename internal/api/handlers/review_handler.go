package handlers

import (
	"RecipeBook/domain"
	"RecipeBook/internal/api/presenters"
	"RecipeBook/pkg/review"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		AddReview(c *fiber.Ctx) error
		DeleteReview(c *fiber.Ctx) error
		GetReviews(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) AddReview(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	req := new(domain.AddReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddReview, err)
	}

	res, err := h.reviewService.AddReview(c.Context(), *req, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddReview, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddReview)
}

func (h *reviewHandler) DeleteReview(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReview, domain.ErrReviewNotFound)
	}

	deleted, err := h.reviewService.DeleteReview(c.Context(), reviewID, username)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReview, err)
	}
	if !deleted {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteReview, domain.ErrReviewNotFound)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReview)
}

func (h *reviewHandler) GetReviews(c *fiber.Ctx) error {
	recipeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReviews, domain.ErrRecipeNotFound)
	}

	res, err := h.reviewService.GetReviewsForRecipe(c.Context(), recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReviews, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReviews)
}
