package browse

import (
	"RecipeBook/domain"
	"RecipeBook/pkg/repository"
	"context"
	"errors"
	"sort"
	"strings"
)

const DefaultPerPage = 9

type (
	// BrowseService is the read-side of the application: browsing, search,
	// featured picks and the favourites surface.
	BrowseService interface {
		Browse(ctx context.Context, req domain.BrowseRequest, username string) (domain.BrowseResponse, error)
		SearchRecipes(ctx context.Context, filterBy, query string) ([]*domain.Recipe, error)
		GetRecipeDetail(ctx context.Context, recipeID int, username string) (domain.RecipeDetailResponse, error)
		GetFeaturedRecipes(ctx context.Context, limit int, username string) ([]domain.RecipeSummary, error)
		GetFavourites(ctx context.Context, req domain.BrowseRequest, username string) (domain.BrowseResponse, error)
		ToggleFavourite(ctx context.Context, recipeID int, username string) (domain.ToggleFavouriteResponse, error)
	}

	browseService struct {
		repo repository.Repository
	}
)

func NewBrowseService(repo repository.Repository) BrowseService {
	return &browseService{repo: repo}
}

func (s *browseService) Browse(ctx context.Context, req domain.BrowseRequest, username string) (domain.BrowseResponse, error) {
	page, perPage := normalisePage(req.Page, req.PerPage)

	if req.FilterBy != "" && strings.TrimSpace(req.Query) != "" {
		recipes, err := s.SearchRecipes(ctx, req.FilterBy, req.Query)
		if err != nil {
			return domain.BrowseResponse{}, err
		}
		return s.pageOf(ctx, recipes, page, perPage, username)
	}

	total, err := s.repo.CountRecipesByName(ctx, "")
	if err != nil {
		return domain.BrowseResponse{}, err
	}
	recipes, err := s.repo.GetRecipesByNamePaginated(ctx, "", page, perPage)
	if err != nil {
		return domain.BrowseResponse{}, err
	}
	summaries, err := s.summarise(ctx, recipes, username)
	if err != nil {
		return domain.BrowseResponse{}, err
	}
	return domain.BrowseResponse{
		Recipes:    summaries,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// SearchRecipes dispatches on the filter kind. A filter whose target does
// not exist is an empty result here, not an error, because an empty search
// outcome is a normal page to render.
func (s *browseService) SearchRecipes(ctx context.Context, filterBy, query string) ([]*domain.Recipe, error) {
	var (
		recipes []*domain.Recipe
		err     error
	)
	switch filterBy {
	case domain.FilterByAuthor:
		recipes, err = s.repo.GetRecipesByAuthorName(ctx, query)
	case domain.FilterByCategory:
		recipes, err = s.repo.GetRecipesByCategoryName(ctx, query)
	case domain.FilterByIngredient:
		recipes, err = s.repo.GetRecipesByIngredient(ctx, query)
	default:
		recipes, err = s.repo.GetRecipesByName(ctx, query)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) || errors.Is(err, domain.ErrCategoryNotFound) {
			return []*domain.Recipe{}, nil
		}
		return nil, err
	}
	return recipes, nil
}

func (s *browseService) GetRecipeDetail(ctx context.Context, recipeID int, username string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if recipe == nil {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
	}

	isFavourite := false
	if username != "" {
		isFavourite, err = s.repo.IsRecipeInFavourites(ctx, username, recipeID)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
	}

	detail := domain.RecipeDetailResponse{
		RecipeSummary: summary(recipe, isFavourite),
		CookTime:      recipe.CookTime,
		PrepTime:      recipe.PrepTime,
		Instructions:  recipe.Instructions,
		Images:        recipe.Images,
		Servings:      recipe.Servings,
		Yield:         recipe.Yield,
		DatePublished: recipe.DatePublished,
	}
	for i, name := range recipe.Ingredients {
		quantity := ""
		if i < len(recipe.IngredientQuantities) {
			quantity = recipe.IngredientQuantities[i]
		}
		detail.Ingredients = append(detail.Ingredients, domain.RecipeIngredientLine{Quantity: quantity, Name: name})
	}
	if recipe.Nutrition != nil {
		n := recipe.Nutrition
		detail.Nutrition = &domain.NutritionResponse{
			Calories:         n.Calories,
			Fat:              n.Fat,
			SaturatedFat:     n.SaturatedFat,
			Cholesterol:      n.Cholesterol,
			Sodium:           n.Sodium,
			Carbohydrates:    n.Carbohydrates,
			Fiber:            n.Fiber,
			Sugar:            n.Sugar,
			Protein:          n.Protein,
			HealthStarRating: n.HealthStarRating(),
		}
	}

	// Most recent review first.
	reviews := make([]*domain.Review, len(recipe.Reviews))
	copy(reviews, recipe.Reviews)
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})
	detail.Reviews = make([]domain.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, reviewResponse(review))
	}
	return detail, nil
}

func (s *browseService) GetFeaturedRecipes(ctx context.Context, limit int, username string) ([]domain.RecipeSummary, error) {
	recipes, err := s.repo.GetFeaturedRecipes(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.summarise(ctx, recipes, username)
}

func (s *browseService) GetFavourites(ctx context.Context, req domain.BrowseRequest, username string) (domain.BrowseResponse, error) {
	if username == "" {
		return domain.BrowseResponse{}, domain.ErrUnknownUser
	}
	favourites, err := s.repo.GetUserFavourites(ctx, username)
	if err != nil {
		return domain.BrowseResponse{}, err
	}
	if req.FilterBy != "" && strings.TrimSpace(req.Query) != "" {
		favourites = filterRecipes(favourites, req.FilterBy, req.Query)
	}
	page, perPage := normalisePage(req.Page, req.PerPage)
	return s.pageOf(ctx, favourites, page, perPage, username)
}

// ToggleFavourite flips the favourite state for the pair. A missing user or
// recipe reports not-favourited without an error, the caller treats that as
// a no-op rather than a failure.
func (s *browseService) ToggleFavourite(ctx context.Context, recipeID int, username string) (domain.ToggleFavouriteResponse, error) {
	res := domain.ToggleFavouriteResponse{RecipeID: recipeID}
	if username == "" {
		return res, nil
	}
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return res, err
	}
	if user == nil {
		return res, nil
	}
	recipe, err := s.repo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return res, err
	}
	if recipe == nil {
		return res, nil
	}

	already, err := s.repo.IsRecipeInFavourites(ctx, username, recipeID)
	if err != nil {
		return res, err
	}
	if already {
		if err := s.repo.RemoveFavourite(ctx, user, recipe); err != nil {
			return res, err
		}
		res.IsFavourite = false
		return res, nil
	}
	if err := s.repo.AddFavourite(ctx, user, recipe); err != nil {
		return res, err
	}
	res.IsFavourite = true
	return res, nil
}

func (s *browseService) pageOf(ctx context.Context, recipes []*domain.Recipe, page, perPage int, username string) (domain.BrowseResponse, error) {
	total := len(recipes)
	start := (page - 1) * perPage
	var window []*domain.Recipe
	if start < total {
		end := start + perPage
		if end > total {
			end = total
		}
		window = recipes[start:end]
	}
	summaries, err := s.summarise(ctx, window, username)
	if err != nil {
		return domain.BrowseResponse{}, err
	}
	return domain.BrowseResponse{
		Recipes:    summaries,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// summarise builds the list DTOs, annotating each recipe's favourite flag
// for the signed-in user. Without a user every flag is false.
func (s *browseService) summarise(ctx context.Context, recipes []*domain.Recipe, username string) ([]domain.RecipeSummary, error) {
	summaries := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		isFavourite := false
		if username != "" {
			var err error
			isFavourite, err = s.repo.IsRecipeInFavourites(ctx, username, recipe.ID)
			if err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, summary(recipe, isFavourite))
	}
	return summaries, nil
}

func summary(recipe *domain.Recipe, isFavourite bool) domain.RecipeSummary {
	s := domain.RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Description: recipe.Description,
		Rating:      recipe.Rating,
		IsFavourite: isFavourite,
	}
	if recipe.Author != nil {
		s.AuthorName = recipe.Author.Name
	}
	if recipe.Category != nil {
		s.CategoryName = recipe.Category.Name
	}
	if len(recipe.Images) > 0 {
		s.ImageURL = recipe.Images[0]
	}
	return s
}

func reviewResponse(review *domain.Review) domain.ReviewResponse {
	res := domain.ReviewResponse{
		ID:     review.ID,
		Rating: review.Rating,
		Text:   review.Text,
		Date:   review.Date,
	}
	if review.User != nil {
		res.Username = review.User.Username
	}
	if review.Recipe != nil {
		res.RecipeID = review.Recipe.ID
	}
	return res
}

// filterRecipes applies the search filters in memory, used for searching
// inside an already-loaded favourites list.
func filterRecipes(recipes []*domain.Recipe, filterBy, query string) []*domain.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]*domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		var target bool
		switch filterBy {
		case domain.FilterByAuthor:
			target = recipe.Author != nil && strings.Contains(strings.ToLower(recipe.Author.Name), q)
		case domain.FilterByCategory:
			target = recipe.Category != nil && strings.Contains(strings.ToLower(recipe.Category.Name), q)
		case domain.FilterByIngredient:
			for _, ing := range recipe.Ingredients {
				if strings.Contains(strings.ToLower(ing), q) {
					target = true
					break
				}
			}
		default:
			target = strings.Contains(strings.ToLower(recipe.Name), q)
		}
		if target {
			matched = append(matched, recipe)
		}
	}
	return matched
}

func normalisePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

func totalPages(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
