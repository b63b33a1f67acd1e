package browse

import (
	"RecipeBook/domain"
	"RecipeBook/pkg/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededService(t *testing.T) (BrowseService, repository.Repository) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	ann := domain.NewAuthor(10, "Ann Baker")
	ben := domain.NewAuthor(11, "Ben Brewer")
	dessert := domain.NewCategory("Dessert")
	drinks := domain.NewCategory("Drinks")

	recipes := []*domain.Recipe{
		{
			ID: 1, Name: "Brownies", Author: ann, Category: dessert,
			CookTime: 35, PrepTime: 15,
			Description:          "Dense chocolate squares.",
			Images:               []string{"https://img.example.com/brownies.jpg"},
			Ingredients:          []string{"dark chocolate", "flour"},
			IngredientQuantities: []string{"200g", "100g"},
			Instructions:         []string{"Melt.", "Bake."},
			Nutrition:            &domain.Nutrition{Calories: 320, Fiber: 2.5},
		},
		{ID: 2, Name: "Iced Latte", Author: ben, Category: drinks, Ingredients: []string{"espresso", "milk"}},
		{ID: 3, Name: "Cheesecake", Author: ann, Category: dessert, Ingredients: []string{"cream cheese"}},
	}
	for _, recipe := range recipes {
		require.NoError(t, repo.AddRecipe(ctx, recipe))
	}
	require.NoError(t, repo.AddUser(ctx, domain.NewUser("alice", "hash")))
	return NewBrowseService(repo), repo
}

func TestBrowseListsAlphabetically(t *testing.T) {
	service, _ := newSeededService(t)

	res, err := service.Browse(context.Background(), domain.BrowseRequest{Page: 1, PerPage: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Recipes, 2)
	assert.Equal(t, "Brownies", res.Recipes[0].Name)
	assert.Equal(t, "Cheesecake", res.Recipes[1].Name)
	assert.Equal(t, "Ann Baker", res.Recipes[0].AuthorName)
	assert.Equal(t, "https://img.example.com/brownies.jpg", res.Recipes[0].ImageURL)

	res, err = service.Browse(context.Background(), domain.BrowseRequest{Page: 2, PerPage: 2}, "")
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Iced Latte", res.Recipes[0].Name)

	// Past the last page there is nothing, not an error.
	res, err = service.Browse(context.Background(), domain.BrowseRequest{Page: 9, PerPage: 2}, "")
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)
}

func TestBrowseWithFilter(t *testing.T) {
	service, _ := newSeededService(t)

	res, err := service.Browse(context.Background(), domain.BrowseRequest{
		FilterBy: domain.FilterByIngredient,
		Query:    "milk",
		Page:     1,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Iced Latte", res.Recipes[0].Name)
}

func TestSearchRecipesUnknownTargetIsEmpty(t *testing.T) {
	service, _ := newSeededService(t)
	ctx := context.Background()

	recipes, err := service.SearchRecipes(ctx, domain.FilterByAuthor, "nobody at all")
	require.NoError(t, err)
	assert.Empty(t, recipes)

	recipes, err = service.SearchRecipes(ctx, domain.FilterByCategory, "soups")
	require.NoError(t, err)
	assert.Empty(t, recipes)

	recipes, err = service.SearchRecipes(ctx, domain.FilterByAuthor, "ann")
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestGetRecipeDetail(t *testing.T) {
	service, repo := newSeededService(t)
	ctx := context.Background()

	user, err := repo.GetUser(ctx, "alice")
	require.NoError(t, err)
	recipe, err := repo.GetRecipeByID(ctx, 1)
	require.NoError(t, err)

	early, err := domain.NewReview(user, recipe, 4.0, "Good.")
	require.NoError(t, err)
	early.Date = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddReview(ctx, early))
	late, err := domain.NewReview(user, recipe, 5.0, "Even better on day two.")
	require.NoError(t, err)
	late.Date = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddReview(ctx, late))

	detail, err := service.GetRecipeDetail(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Brownies", detail.Name)
	assert.Equal(t, 35, detail.CookTime)
	require.Len(t, detail.Ingredients, 2)
	assert.Equal(t, domain.RecipeIngredientLine{Quantity: "200g", Name: "dark chocolate"}, detail.Ingredients[0])
	require.NotNil(t, detail.Nutrition)
	assert.Equal(t, 320, detail.Nutrition.Calories)
	assert.Greater(t, detail.Nutrition.HealthStarRating, 0.0)
	require.NotNil(t, detail.Rating)
	assert.InDelta(t, 4.5, *detail.Rating, 0.001)

	// Newest review first.
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, "Even better on day two.", detail.Reviews[0].Text)

	_, err = service.GetRecipeDetail(ctx, 999, "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestToggleFavourite(t *testing.T) {
	service, _ := newSeededService(t)
	ctx := context.Background()

	res, err := service.ToggleFavourite(ctx, 1, "alice")
	require.NoError(t, err)
	assert.True(t, res.IsFavourite)

	res, err = service.ToggleFavourite(ctx, 1, "alice")
	require.NoError(t, err)
	assert.False(t, res.IsFavourite)

	// Unknown users and recipes are silent no-ops.
	res, err = service.ToggleFavourite(ctx, 1, "ghost")
	require.NoError(t, err)
	assert.False(t, res.IsFavourite)

	res, err = service.ToggleFavourite(ctx, 999, "alice")
	require.NoError(t, err)
	assert.False(t, res.IsFavourite)
}

func TestGetFavouritesAnnotatesAndFilters(t *testing.T) {
	service, _ := newSeededService(t)
	ctx := context.Background()

	_, err := service.ToggleFavourite(ctx, 1, "alice")
	require.NoError(t, err)
	_, err = service.ToggleFavourite(ctx, 2, "alice")
	require.NoError(t, err)

	res, err := service.GetFavourites(ctx, domain.BrowseRequest{Page: 1}, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	for _, summary := range res.Recipes {
		assert.True(t, summary.IsFavourite)
	}

	res, err = service.GetFavourites(ctx, domain.BrowseRequest{
		FilterBy: domain.FilterByName,
		Query:    "latte",
		Page:     1,
	}, "alice")
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Iced Latte", res.Recipes[0].Name)

	_, err = service.GetFavourites(ctx, domain.BrowseRequest{Page: 1}, "")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestBrowseMarksFavouritesForSignedInUser(t *testing.T) {
	service, _ := newSeededService(t)
	ctx := context.Background()

	_, err := service.ToggleFavourite(ctx, 3, "alice")
	require.NoError(t, err)

	res, err := service.Browse(ctx, domain.BrowseRequest{Page: 1}, "alice")
	require.NoError(t, err)
	for _, summary := range res.Recipes {
		assert.Equal(t, summary.ID == 3, summary.IsFavourite)
	}

	// Anonymous browsing never marks favourites.
	res, err = service.Browse(ctx, domain.BrowseRequest{Page: 1}, "")
	require.NoError(t, err)
	for _, summary := range res.Recipes {
		assert.False(t, summary.IsFavourite)
	}
}

func TestGetFeaturedRecipes(t *testing.T) {
	service, _ := newSeededService(t)

	featured, err := service.GetFeaturedRecipes(context.Background(), 2, "")
	require.NoError(t, err)
	assert.Len(t, featured, 2)
}
