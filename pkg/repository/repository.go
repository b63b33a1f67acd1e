package repository

import (
	"RecipeBook/domain"
	"context"
	"errors"
	"fmt"
)

// Identity errors shared by both backends. Lookups where absence is a normal
// outcome (recipe by id, user by username, review delete target) return a nil
// result instead of an error; lookups the caller is expected to guard
// (author/category and recipes-by-author/category) return the corresponding
// not-found error from the domain package.
var (
	ErrRepository = errors.New("repository")

	ErrInvalidEntity     = fmt.Errorf("%w: invalid entity", ErrRepository)
	ErrDuplicateRecipe   = fmt.Errorf("%w: duplicate recipe id", ErrRepository)
	ErrDuplicateAuthor   = fmt.Errorf("%w: duplicate author id", ErrRepository)
	ErrDuplicateCategory = fmt.Errorf("%w: duplicate category name", ErrRepository)
	ErrDuplicateUser     = fmt.Errorf("%w: duplicate username", ErrRepository)
	ErrDuplicateReview   = fmt.Errorf("%w: duplicate review id", ErrRepository)
)

// PasswordHasher is the injected password hashing capability used when
// seeding users. The algorithm itself is outside the repository's scope.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type (
	// Repository is the storage contract shared by the in-memory and the
	// relational backend. Both implementations must preserve identical
	// semantics: uniqueness constraints, bidirectional author/category
	// links, pagination, search, review-id allocation and rating
	// aggregation.
	Repository interface {
		AddRecipe(ctx context.Context, recipe *domain.Recipe) error
		GetRecipeByID(ctx context.Context, id int) (*domain.Recipe, error)
		GetRecipes(ctx context.Context) ([]*domain.Recipe, error)
		GetRecipesPaginated(ctx context.Context, page, perPage int) ([]*domain.Recipe, error)
		GetRecipesByName(ctx context.Context, name string) ([]*domain.Recipe, error)
		GetRecipesByNamePaginated(ctx context.Context, name string, page, perPage int) ([]*domain.Recipe, error)
		CountRecipes(ctx context.Context) (int, error)
		CountRecipesByName(ctx context.Context, name string) (int, error)
		GetFirstRecipe(ctx context.Context) (*domain.Recipe, error)
		GetLastRecipe(ctx context.Context) (*domain.Recipe, error)
		GetFeaturedRecipes(ctx context.Context, limit int) ([]*domain.Recipe, error)

		AddAuthor(ctx context.Context, author *domain.Author) error
		GetAuthorByID(ctx context.Context, id int) (*domain.Author, error)
		GetAuthorsByName(ctx context.Context, name string) ([]*domain.Author, error)
		GetRecipesByAuthorName(ctx context.Context, name string) ([]*domain.Recipe, error)
		GetRecipesByAuthorID(ctx context.Context, id int) ([]*domain.Recipe, error)

		AddCategory(ctx context.Context, category *domain.Category) error
		GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
		GetRecipesByCategoryName(ctx context.Context, name string) ([]*domain.Recipe, error)

		GetRecipesByIngredient(ctx context.Context, ingredient string) ([]*domain.Recipe, error)

		AddUser(ctx context.Context, user *domain.User) error
		GetUser(ctx context.Context, username string) (*domain.User, error)
		UpdateUserProfilePicture(ctx context.Context, username, url string) error
		UpdateUserPassword(ctx context.Context, username, passwordHash string) error

		AddReview(ctx context.Context, review *domain.Review) error
		DeleteReview(ctx context.Context, reviewID int, username string) (bool, error)

		AddFavourite(ctx context.Context, user *domain.User, recipe *domain.Recipe) error
		RemoveFavourite(ctx context.Context, user *domain.User, recipe *domain.Recipe) error
		GetUserFavourites(ctx context.Context, username string) ([]*domain.Recipe, error)
		IsRecipeInFavourites(ctx context.Context, username string, recipeID int) (bool, error)
	}
)
