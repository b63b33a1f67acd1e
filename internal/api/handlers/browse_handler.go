package handlers

import (
	"RecipeBook/domain"
	"RecipeBook/internal/api/presenters"
	"RecipeBook/pkg/browse"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	BrowseHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetFeaturedRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetFavourites(c *fiber.Ctx) error
		ToggleFavourite(c *fiber.Ctx) error
	}

	browseHandler struct {
		browseService browse.BrowseService
	}
)

func NewBrowseHandler(browseService browse.BrowseService) BrowseHandler {
	return &browseHandler{browseService: browseService}
}

func (h *browseHandler) GetRecipes(c *fiber.Ctx) error {
	req := domain.BrowseRequest{
		FilterBy: c.Query("filter_by", domain.FilterByName),
		Query:    c.Query("query", ""),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", browse.DefaultPerPage),
	}

	res, err := h.browseService.Browse(c.Context(), req, localUsername(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *browseHandler) GetFeaturedRecipes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 4)
	res, err := h.browseService.GetFeaturedRecipes(c.Context(), limit, localUsername(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFeatured)
}

func (h *browseHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	res, err := h.browseService.GetRecipeDetail(c.Context(), recipeID, localUsername(c))
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *browseHandler) GetFavourites(c *fiber.Ctx) error {
	req := domain.BrowseRequest{
		FilterBy: c.Query("filter_by", domain.FilterByName),
		Query:    c.Query("query", ""),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", browse.DefaultPerPage),
	}

	res, err := h.browseService.GetFavourites(c.Context(), req, localUsername(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFavourites, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavourites)
}

func (h *browseHandler) ToggleFavourite(c *fiber.Ctx) error {
	recipeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleFavourite, domain.ErrRecipeNotFound)
	}

	res, err := h.browseService.ToggleFavourite(c.Context(), recipeID, localUsername(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleFavourite, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavourite)
}

// localUsername reads the username set by the auth middleware. Routes behind
// the optional variant may have no user at all.
func localUsername(c *fiber.Ctx) string {
	if username, ok := c.Locals("username").(string); ok {
		return username
	}
	return ""
}
