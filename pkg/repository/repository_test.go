package repository

import (
	"RecipeBook/domain"
	"RecipeBook/entities"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The same behavioural suite runs against both backends; anything asserted
// here is contract, not implementation detail.
func backends(t *testing.T) map[string]Repository {
	t.Helper()
	return map[string]Repository{
		"memory":   NewMemoryRepository(),
		"database": newSQLiteRepository(t),
	}
}

func newSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.Author{},
		&entities.Category{},
		&entities.Recipe{},
		&entities.Nutrition{},
		&entities.RecipeImage{},
		&entities.RecipeIngredient{},
		&entities.RecipeInstruction{},
		&entities.User{},
		&entities.Favourite{},
		&entities.Review{},
	))
	return NewDatabaseRepository(db)
}

// sampleRecipes builds fresh instances on every call so a backend mutating
// its input can never leak state into another subtest.
func sampleRecipes() []*domain.Recipe {
	ann := domain.NewAuthor(10, "Ann Baker")
	ben := domain.NewAuthor(11, "Ben Brewer")
	dessert := domain.NewCategory("Dessert")
	drinks := domain.NewCategory("Drinks")

	return []*domain.Recipe{
		{
			ID:                   1,
			Name:                 "Brownies",
			Author:               ann,
			Category:             dessert,
			CookTime:             35,
			PrepTime:             15,
			DatePublished:        time.Date(2009, 8, 9, 0, 0, 0, 0, time.UTC),
			Description:          "Dense chocolate squares.",
			Images:               []string{"https://img.example.com/brownies.jpg"},
			IngredientQuantities: []string{"200g", "100g", "3"},
			Ingredients:          []string{"dark chocolate", "flour", "eggs"},
			Instructions:         []string{"Melt the chocolate.", "Fold in the flour.", "Bake."},
			Servings:             "16",
			Yield:                "1 tray",
			Nutrition: &domain.Nutrition{
				Calories:      320,
				Fat:           18,
				SaturatedFat:  9,
				Cholesterol:   60,
				Sodium:        140,
				Carbohydrates: 38,
				Fiber:         2.5,
				Sugar:         26,
				Protein:       4.5,
			},
		},
		{
			ID:            2,
			Name:          "Iced Latte",
			Author:        ben,
			Category:      drinks,
			PrepTime:      5,
			DatePublished: time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC),
			Description:   "Espresso over milk and ice.",
			Ingredients:   []string{"espresso", "milk", "ice"},
			Instructions:  []string{"Pull the shots.", "Pour over ice and milk."},
			Servings:      "1",
			Yield:         "Not specified",
		},
		{
			ID:            3,
			Name:          "Cheesecake",
			Author:        ann,
			Category:      dessert,
			CookTime:      60,
			PrepTime:      30,
			DatePublished: time.Date(2015, 2, 14, 0, 0, 0, 0, time.UTC),
			Description:   "Baked cheesecake on a biscuit base.",
			Ingredients:   []string{"cream cheese", "sugar", "eggs"},
			Instructions:  []string{"Mix the filling.", "Bake in a water bath."},
			Servings:      "12",
			Yield:         "1 cake",
		},
	}
}

func seedRecipes(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	for _, recipe := range sampleRecipes() {
		require.NoError(t, repo.AddRecipe(ctx, recipe))
	}
}

func seedUser(t *testing.T, repo Repository, username string) *domain.User {
	t.Helper()
	user := domain.NewUser(username, "hash-"+username)
	require.NoError(t, repo.AddUser(context.Background(), user))
	return user
}

func recipeNames(recipes []*domain.Recipe) []string {
	names := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		names = append(names, recipe.Name)
	}
	return names
}

func fetchRating(t *testing.T, repo Repository, recipeID int) *float64 {
	t.Helper()
	recipe, err := repo.GetRecipeByID(context.Background(), recipeID)
	require.NoError(t, err)
	require.NotNil(t, recipe)
	return recipe.Rating
}

func TestAddRecipeAndGetByID(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			recipe, err := repo.GetRecipeByID(ctx, 1)
			require.NoError(t, err)
			require.NotNil(t, recipe)
			assert.Equal(t, "Brownies", recipe.Name)
			assert.Equal(t, "Ann Baker", recipe.Author.Name)
			assert.Equal(t, "Dessert", recipe.Category.Name)
			assert.Equal(t, []string{"dark chocolate", "flour", "eggs"}, recipe.Ingredients)
			assert.Equal(t, []string{"200g", "100g", "3"}, recipe.IngredientQuantities)
			assert.Equal(t, []string{"Melt the chocolate.", "Fold in the flour.", "Bake."}, recipe.Instructions)
			assert.Equal(t, []string{"https://img.example.com/brownies.jpg"}, recipe.Images)
			require.NotNil(t, recipe.Nutrition)
			assert.Equal(t, 320, recipe.Nutrition.Calories)
			assert.Nil(t, recipe.Rating)

			missing, err := repo.GetRecipeByID(ctx, 999)
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestAddRecipeRejectsDuplicatesAndInvalid(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			dup := sampleRecipes()[0]
			err := repo.AddRecipe(ctx, dup)
			assert.ErrorIs(t, err, ErrDuplicateRecipe)
			assert.ErrorIs(t, err, ErrRepository)

			assert.ErrorIs(t, repo.AddRecipe(ctx, nil), ErrInvalidEntity)
			assert.ErrorIs(t, repo.AddRecipe(ctx, &domain.Recipe{Name: "No identity"}), ErrInvalidEntity)

			count, err := repo.CountRecipes(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, count)
		})
	}
}

func TestAddRecipeRegistersOwners(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			// Authors and categories arrive implicitly with their recipes.
			author, err := repo.GetAuthorByID(ctx, 10)
			require.NoError(t, err)
			assert.Equal(t, "Ann Baker", author.Name)

			category, err := repo.GetCategoryByName(ctx, "Drinks")
			require.NoError(t, err)
			assert.Equal(t, "Drinks", category.Name)

			assert.ErrorIs(t, repo.AddAuthor(ctx, domain.NewAuthor(10, "Ann Baker")), ErrDuplicateAuthor)
			assert.ErrorIs(t, repo.AddCategory(ctx, domain.NewCategory("Dessert")), ErrDuplicateCategory)

			// A known identity arriving on a fresh instance lands with the
			// registered owner, not a forked one.
			extra := &domain.Recipe{
				ID:       4,
				Name:     "Blondies",
				Author:   domain.NewAuthor(10, "Ann Baker"),
				Category: domain.NewCategory("Dessert"),
			}
			require.NoError(t, repo.AddRecipe(ctx, extra))

			byAuthor, err := repo.GetRecipesByAuthorID(ctx, 10)
			require.NoError(t, err)
			assert.Contains(t, recipeNames(byAuthor), "Blondies")

			byCategory, err := repo.GetRecipesByCategoryName(ctx, "Dessert")
			require.NoError(t, err)
			assert.Contains(t, recipeNames(byCategory), "Blondies")
		})
	}
}

func TestAuthorAndCategoryLookupsReportAbsence(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			_, err := repo.GetAuthorByID(ctx, 404)
			assert.ErrorIs(t, err, domain.ErrAuthorNotFound)

			_, err = repo.GetAuthorsByName(ctx, "Nobody Here")
			assert.ErrorIs(t, err, domain.ErrAuthorNotFound)

			_, err = repo.GetCategoryByName(ctx, "Soups")
			assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

			_, err = repo.GetRecipesByAuthorName(ctx, "nobody")
			assert.ErrorIs(t, err, domain.ErrAuthorNotFound)

			_, err = repo.GetRecipesByCategoryName(ctx, "soups")
			assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		})
	}
}

func TestGetAuthorsByNameReturnsEveryNamesake(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.AddAuthor(ctx, domain.NewAuthor(20, "Sam Cook")))
			require.NoError(t, repo.AddAuthor(ctx, domain.NewAuthor(21, "Sam Cook")))

			authors, err := repo.GetAuthorsByName(ctx, "sam cook")
			require.NoError(t, err)
			require.Len(t, authors, 2)
			ids := []int{authors[0].ID, authors[1].ID}
			assert.ElementsMatch(t, []int{20, 21}, ids)
		})
	}
}

func TestSearchByName(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			// An empty query is the browse-everything case, alphabetical.
			all, err := repo.GetRecipesByName(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"Brownies", "Cheesecake", "Iced Latte"}, recipeNames(all))

			matches, err := repo.GetRecipesByName(ctx, "CHEESE")
			require.NoError(t, err)
			assert.Equal(t, []string{"Cheesecake"}, recipeNames(matches))

			matches, err = repo.GetRecipesByName(ctx, "e")
			require.NoError(t, err)
			assert.Equal(t, []string{"Brownies", "Cheesecake", "Iced Latte"}, recipeNames(matches))

			matches, err = repo.GetRecipesByName(ctx, "no such dish")
			require.NoError(t, err)
			assert.Empty(t, matches)

			count, err := repo.CountRecipesByName(ctx, "cake")
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestSearchByAuthorCategoryIngredient(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			byAuthor, err := repo.GetRecipesByAuthorName(ctx, "ann")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"Brownies", "Cheesecake"}, recipeNames(byAuthor))

			byCategory, err := repo.GetRecipesByCategoryName(ctx, "dess")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"Brownies", "Cheesecake"}, recipeNames(byCategory))

			byIngredient, err := repo.GetRecipesByIngredient(ctx, "MILK")
			require.NoError(t, err)
			assert.Equal(t, []string{"Iced Latte"}, recipeNames(byIngredient))

			// Shared ingredients must not produce duplicate rows.
			byIngredient, err = repo.GetRecipesByIngredient(ctx, "eggs")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"Brownies", "Cheesecake"}, recipeNames(byIngredient))

			// An unmatched ingredient is an empty page, not an error.
			byIngredient, err = repo.GetRecipesByIngredient(ctx, "saffron")
			require.NoError(t, err)
			assert.Empty(t, byIngredient)
		})
	}
}

func TestRecipesByAuthorID(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			recipes, err := repo.GetRecipesByAuthorID(ctx, 11)
			require.NoError(t, err)
			assert.Equal(t, []string{"Iced Latte"}, recipeNames(recipes))

			_, err = repo.GetRecipesByAuthorID(ctx, 404)
			assert.ErrorIs(t, err, domain.ErrAuthorNotFound)
		})
	}
}

func TestPagination(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			full, err := repo.GetRecipesByName(ctx, "")
			require.NoError(t, err)

			// Walking the pages reconstructs the full ordered listing.
			var walked []string
			for page := 1; ; page++ {
				recipes, err := repo.GetRecipesByNamePaginated(ctx, "", page, 2)
				require.NoError(t, err)
				if len(recipes) == 0 {
					break
				}
				walked = append(walked, recipeNames(recipes)...)
			}
			assert.Equal(t, recipeNames(full), walked)

			page2, err := repo.GetRecipesByNamePaginated(ctx, "", 2, 2)
			require.NoError(t, err)
			assert.Equal(t, []string{"Iced Latte"}, recipeNames(page2))

			outOfRange, err := repo.GetRecipesByNamePaginated(ctx, "", 9, 2)
			require.NoError(t, err)
			assert.Empty(t, outOfRange)

			outOfRange, err = repo.GetRecipesPaginated(ctx, 0, 2)
			require.NoError(t, err)
			assert.Empty(t, outOfRange)
		})
	}
}

func TestFirstLastAndFeatured(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := repo.GetFirstRecipe(ctx)
			require.NoError(t, err)
			assert.Nil(t, first)

			seedRecipes(t, repo)

			first, err = repo.GetFirstRecipe(ctx)
			require.NoError(t, err)
			require.NotNil(t, first)
			assert.Equal(t, 1, first.ID)

			last, err := repo.GetLastRecipe(ctx)
			require.NoError(t, err)
			require.NotNil(t, last)
			assert.Equal(t, 3, last.ID)

			featured, err := repo.GetFeaturedRecipes(ctx, 2)
			require.NoError(t, err)
			assert.Len(t, featured, 2)

			// The sample can never exceed the data set.
			featured, err = repo.GetFeaturedRecipes(ctx, 10)
			require.NoError(t, err)
			assert.Len(t, featured, 3)
		})
	}
}

func TestUserLifecycle(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			alice := seedUser(t, repo, "alice")
			assert.NotZero(t, alice.ID)

			assert.ErrorIs(t, repo.AddUser(ctx, domain.NewUser("alice", "other")), ErrDuplicateUser)
			assert.ErrorIs(t, repo.AddUser(ctx, domain.NewUser("  ", "x")), ErrInvalidEntity)

			stored, err := repo.GetUser(ctx, "alice")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, "hash-alice", stored.PasswordHash)

			// A missing user is nil, not an error.
			missing, err := repo.GetUser(ctx, "nobody")
			require.NoError(t, err)
			assert.Nil(t, missing)

			require.NoError(t, repo.UpdateUserProfilePicture(ctx, "alice", "https://cdn.example.com/alice.png"))
			stored, err = repo.GetUser(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "https://cdn.example.com/alice.png", stored.ProfilePicture)

			assert.ErrorIs(t, repo.UpdateUserProfilePicture(ctx, "nobody", "x"), domain.ErrUnknownUser)

			require.NoError(t, repo.UpdateUserPassword(ctx, "alice", "hash-rotated"))
			stored, err = repo.GetUser(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "hash-rotated", stored.PasswordHash)

			assert.ErrorIs(t, repo.UpdateUserPassword(ctx, "nobody", "x"), domain.ErrUnknownUser)
		})
	}
}

func TestReviewRatingAggregation(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			bob := seedUser(t, repo, "bob")
			recipe, err := repo.GetRecipeByID(ctx, 1)
			require.NoError(t, err)

			first, err := domain.NewReview(alice, recipe, 5.0, "Perfect.")
			require.NoError(t, err)
			require.NoError(t, repo.AddReview(ctx, first))
			rating := fetchRating(t, repo, 1)
			require.NotNil(t, rating)
			assert.InDelta(t, 5.0, *rating, 0.001)

			second, err := domain.NewReview(bob, recipe, 3.0, "Too sweet.")
			require.NoError(t, err)
			require.NoError(t, repo.AddReview(ctx, second))
			rating = fetchRating(t, repo, 1)
			require.NotNil(t, rating)
			assert.InDelta(t, 4.0, *rating, 0.001)

			// 5 and 2 average to 3.5, exercising the one-decimal rounding.
			deleted, err := repo.DeleteReview(ctx, second.ID, "bob")
			require.NoError(t, err)
			assert.True(t, deleted)
			third, err := domain.NewReview(bob, recipe, 2.0, "Changed my mind.")
			require.NoError(t, err)
			require.NoError(t, repo.AddReview(ctx, third))
			rating = fetchRating(t, repo, 1)
			require.NotNil(t, rating)
			assert.InDelta(t, 3.5, *rating, 0.001)

			// No reviews, no rating.
			for _, del := range []struct {
				id       int
				username string
			}{{first.ID, "alice"}, {third.ID, "bob"}} {
				deleted, err := repo.DeleteReview(ctx, del.id, del.username)
				require.NoError(t, err)
				assert.True(t, deleted)
			}
			assert.Nil(t, fetchRating(t, repo, 1))
		})
	}
}

func TestReviewIDsAreNeverReissued(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			recipe, err := repo.GetRecipeByID(ctx, 1)
			require.NoError(t, err)

			var issued []int
			for i := 0; i < 3; i++ {
				review, err := domain.NewReview(alice, recipe, 4.0, "Good.")
				require.NoError(t, err)
				require.NoError(t, repo.AddReview(ctx, review))
				issued = append(issued, review.ID)
			}
			assert.Equal(t, []int{issued[0], issued[0] + 1, issued[0] + 2}, issued)

			// Deleting the newest review must not free its id.
			deleted, err := repo.DeleteReview(ctx, issued[2], "alice")
			require.NoError(t, err)
			assert.True(t, deleted)

			next, err := domain.NewReview(alice, recipe, 4.0, "Again.")
			require.NoError(t, err)
			require.NoError(t, repo.AddReview(ctx, next))
			assert.Greater(t, next.ID, issued[2])
		})
	}
}

func TestAddReviewValidation(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			recipe, err := repo.GetRecipeByID(ctx, 1)
			require.NoError(t, err)

			err = repo.AddReview(ctx, &domain.Review{User: alice, Recipe: recipe, Rating: 5.5})
			assert.ErrorIs(t, err, domain.ErrRatingOutOfRange)

			ghost := domain.NewUser("ghost", "x")
			err = repo.AddReview(ctx, &domain.Review{User: ghost, Recipe: recipe, Rating: 4})
			assert.ErrorIs(t, err, domain.ErrUnknownUser)

			err = repo.AddReview(ctx, &domain.Review{User: alice, Recipe: &domain.Recipe{ID: 999}, Rating: 4})
			assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

			assert.ErrorIs(t, repo.AddReview(ctx, nil), ErrInvalidEntity)
		})
	}
}

func TestDeleteReviewAuthorization(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			seedUser(t, repo, "bob")
			recipe, err := repo.GetRecipeByID(ctx, 1)
			require.NoError(t, err)

			review, err := domain.NewReview(alice, recipe, 5.0, "Mine.")
			require.NoError(t, err)
			require.NoError(t, repo.AddReview(ctx, review))

			// Someone else's review and a missing review both come back
			// false with no error.
			deleted, err := repo.DeleteReview(ctx, review.ID, "bob")
			require.NoError(t, err)
			assert.False(t, deleted)

			deleted, err = repo.DeleteReview(ctx, 9999, "alice")
			require.NoError(t, err)
			assert.False(t, deleted)

			rating := fetchRating(t, repo, 1)
			require.NotNil(t, rating)
			assert.InDelta(t, 5.0, *rating, 0.001)

			deleted, err = repo.DeleteReview(ctx, review.ID, "alice")
			require.NoError(t, err)
			assert.True(t, deleted)
		})
	}
}

func TestFavouritesToggle(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			recipe, err := repo.GetRecipeByID(ctx, 2)
			require.NoError(t, err)

			favourited, err := repo.IsRecipeInFavourites(ctx, "alice", 2)
			require.NoError(t, err)
			assert.False(t, favourited)

			require.NoError(t, repo.AddFavourite(ctx, alice, recipe))
			// Adding again must stay at one favourite per pair.
			require.NoError(t, repo.AddFavourite(ctx, alice, recipe))

			favourites, err := repo.GetUserFavourites(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, []string{"Iced Latte"}, recipeNames(favourites))

			favourited, err = repo.IsRecipeInFavourites(ctx, "alice", 2)
			require.NoError(t, err)
			assert.True(t, favourited)

			require.NoError(t, repo.RemoveFavourite(ctx, alice, recipe))
			// Removing an absent favourite is a no-op.
			require.NoError(t, repo.RemoveFavourite(ctx, alice, recipe))

			favourites, err = repo.GetUserFavourites(ctx, "alice")
			require.NoError(t, err)
			assert.Empty(t, favourites)
		})
	}
}

func TestFavouritesTolerateUnknownParties(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			recipe, err := repo.GetRecipeByID(ctx, 1)
			require.NoError(t, err)

			ghost := domain.NewUser("ghost", "x")
			require.NoError(t, repo.AddFavourite(ctx, ghost, recipe))
			require.NoError(t, repo.AddFavourite(ctx, alice, &domain.Recipe{ID: 999}))
			require.NoError(t, repo.AddFavourite(ctx, nil, nil))

			favourited, err := repo.IsRecipeInFavourites(ctx, "ghost", 1)
			require.NoError(t, err)
			assert.False(t, favourited)

			favourites, err := repo.GetUserFavourites(ctx, "ghost")
			require.NoError(t, err)
			assert.Empty(t, favourites)
		})
	}
}

func TestGetUserHydratesActivity(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)
			alice := seedUser(t, repo, "alice")
			recipe, err := repo.GetRecipeByID(ctx, 3)
			require.NoError(t, err)

			require.NoError(t, repo.AddFavourite(ctx, alice, recipe))
			review, err := domain.NewReview(alice, recipe, 4.0, "Lovely texture.")
			require.NoError(t, err)
			require.NoError(t, repo.AddReview(ctx, review))

			stored, err := repo.GetUser(ctx, "alice")
			require.NoError(t, err)
			require.NotNil(t, stored)
			require.Len(t, stored.Favourites, 1)
			assert.Equal(t, 3, stored.Favourites[0].Recipe.ID)
			require.Len(t, stored.Reviews, 1)
			assert.Equal(t, review.ID, stored.Reviews[0].ID)
			assert.InDelta(t, 4.0, stored.Reviews[0].Rating, 0.001)
		})
	}
}

func TestRecipeHydrationSharesOwners(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seedRecipes(t, repo)

			recipes, err := repo.GetRecipes(ctx)
			require.NoError(t, err)
			require.Len(t, recipes, 3)

			byName := make(map[string]*domain.Recipe)
			for _, recipe := range recipes {
				byName[recipe.Name] = recipe
			}
			// Two recipes by the same author point at one author instance
			// that lists them both.
			assert.Same(t, byName["Brownies"].Author, byName["Cheesecake"].Author)
			assert.Len(t, byName["Brownies"].Author.Recipes, 2)
			assert.Same(t, byName["Brownies"].Category, byName["Cheesecake"].Category)
		})
	}
}
