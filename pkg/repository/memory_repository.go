package repository

import (
	"RecipeBook/domain"
	"context"
	"math/rand"
	"sort"
	"strings"
)

type (
	// MemoryRepository keeps every entity in indexed in-process collections.
	// It is single-process, single-writer storage with no concurrency
	// protection, matching the application's one-request-at-a-time model.
	MemoryRepository struct {
		recipes       []*domain.Recipe
		recipesIndex  map[int]*domain.Recipe
		authors       map[int]*domain.Author
		authorsByName map[string][]*domain.Author
		categories    map[string]*domain.Category
		users         map[string]*domain.User
		reviews       map[int]*domain.Review

		// High-water mark of every review id ever issued. Allocation is
		// always maxReviewID+1, never len+1, so a deleted review's id can
		// never be handed out again.
		maxReviewID int
	}
)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		recipesIndex:  make(map[int]*domain.Recipe),
		authors:       make(map[int]*domain.Author),
		authorsByName: make(map[string][]*domain.Author),
		categories:    make(map[string]*domain.Category),
		users:         make(map[string]*domain.User),
		reviews:       make(map[int]*domain.Review),
	}
}

func (r *MemoryRepository) AddRecipe(_ context.Context, recipe *domain.Recipe) error {
	if recipe == nil || recipe.ID == 0 || recipe.Author == nil || recipe.Category == nil {
		return ErrInvalidEntity
	}
	if _, exists := r.recipesIndex[recipe.ID]; exists {
		return ErrDuplicateRecipe
	}

	// Register the owning author and category when they are not known yet,
	// the same implicit registration the relational backend performs for
	// its foreign keys. A duplicate identity carried by a fresh instance is
	// re-pointed to the registered one so back-references stay on a single
	// shared object.
	if known, ok := r.authors[recipe.Author.ID]; ok {
		recipe.Author = known
	} else {
		r.registerAuthor(recipe.Author)
	}
	if known, ok := r.categories[recipe.Category.Name]; ok {
		recipe.Category = known
	} else {
		r.categories[recipe.Category.Name] = recipe.Category
	}

	r.recipesIndex[recipe.ID] = recipe
	r.recipes = append(r.recipes, recipe)

	// Bidirectional consistency: both owners list this recipe afterwards.
	recipe.Author.AddRecipe(recipe)
	recipe.Category.AddRecipe(recipe)
	return nil
}

func (r *MemoryRepository) GetRecipeByID(_ context.Context, id int) (*domain.Recipe, error) {
	return r.recipesIndex[id], nil
}

func (r *MemoryRepository) GetRecipes(_ context.Context) ([]*domain.Recipe, error) {
	out := make([]*domain.Recipe, len(r.recipes))
	copy(out, r.recipes)
	return out, nil
}

func (r *MemoryRepository) GetRecipesPaginated(_ context.Context, page, perPage int) ([]*domain.Recipe, error) {
	return paginate(r.recipes, page, perPage), nil
}

func (r *MemoryRepository) GetRecipesByName(_ context.Context, name string) ([]*domain.Recipe, error) {
	return r.recipesByName(name), nil
}

func (r *MemoryRepository) GetRecipesByNamePaginated(_ context.Context, name string, page, perPage int) ([]*domain.Recipe, error) {
	return paginate(r.recipesByName(name), page, perPage), nil
}

// recipesByName returns the case-insensitive substring matches sorted
// alphabetically by name. An empty query matches everything.
func (r *MemoryRepository) recipesByName(name string) []*domain.Recipe {
	query := strings.ToLower(strings.TrimSpace(name))
	var matches []*domain.Recipe
	for _, recipe := range r.recipes {
		if query == "" || strings.Contains(strings.ToLower(recipe.Name), query) {
			matches = append(matches, recipe)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})
	return matches
}

func (r *MemoryRepository) CountRecipes(_ context.Context) (int, error) {
	return len(r.recipes), nil
}

func (r *MemoryRepository) CountRecipesByName(_ context.Context, name string) (int, error) {
	return len(r.recipesByName(name)), nil
}

func (r *MemoryRepository) GetFirstRecipe(_ context.Context) (*domain.Recipe, error) {
	if len(r.recipes) == 0 {
		return nil, nil
	}
	return r.recipes[0], nil
}

func (r *MemoryRepository) GetLastRecipe(_ context.Context) (*domain.Recipe, error) {
	if len(r.recipes) == 0 {
		return nil, nil
	}
	return r.recipes[len(r.recipes)-1], nil
}

// GetFeaturedRecipes returns a random sample bounded by the available data.
func (r *MemoryRepository) GetFeaturedRecipes(_ context.Context, limit int) ([]*domain.Recipe, error) {
	if limit <= 0 || len(r.recipes) == 0 {
		return nil, nil
	}
	sample := make([]*domain.Recipe, len(r.recipes))
	copy(sample, r.recipes)
	rand.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	if limit < len(sample) {
		sample = sample[:limit]
	}
	return sample, nil
}

func (r *MemoryRepository) AddAuthor(_ context.Context, author *domain.Author) error {
	if author == nil || author.ID == 0 {
		return ErrInvalidEntity
	}
	if _, exists := r.authors[author.ID]; exists {
		return ErrDuplicateAuthor
	}
	r.registerAuthor(author)
	return nil
}

func (r *MemoryRepository) registerAuthor(author *domain.Author) {
	r.authors[author.ID] = author
	key := strings.ToLower(author.Name)
	r.authorsByName[key] = append(r.authorsByName[key], author)
}

func (r *MemoryRepository) GetAuthorByID(_ context.Context, id int) (*domain.Author, error) {
	author, ok := r.authors[id]
	if !ok {
		return nil, domain.ErrAuthorNotFound
	}
	return author, nil
}

// GetAuthorsByName returns every author carrying the given name. Names are
// not unique across the dataset, hence the plural.
func (r *MemoryRepository) GetAuthorsByName(_ context.Context, name string) ([]*domain.Author, error) {
	authors := r.authorsByName[strings.ToLower(strings.TrimSpace(name))]
	if len(authors) == 0 {
		return nil, domain.ErrAuthorNotFound
	}
	out := make([]*domain.Author, len(authors))
	copy(out, authors)
	return out, nil
}

func (r *MemoryRepository) GetRecipesByAuthorName(_ context.Context, name string) ([]*domain.Recipe, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	matched := false
	for _, author := range r.authors {
		if strings.Contains(strings.ToLower(author.Name), query) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, domain.ErrAuthorNotFound
	}
	var matches []*domain.Recipe
	for _, recipe := range r.recipes {
		if strings.Contains(strings.ToLower(recipe.Author.Name), query) {
			matches = append(matches, recipe)
		}
	}
	return matches, nil
}

func (r *MemoryRepository) GetRecipesByAuthorID(_ context.Context, id int) ([]*domain.Recipe, error) {
	if _, ok := r.authors[id]; !ok {
		return nil, domain.ErrAuthorNotFound
	}
	var matches []*domain.Recipe
	for _, recipe := range r.recipes {
		if recipe.Author.ID == id {
			matches = append(matches, recipe)
		}
	}
	return matches, nil
}

func (r *MemoryRepository) AddCategory(_ context.Context, category *domain.Category) error {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return ErrInvalidEntity
	}
	if _, exists := r.categories[category.Name]; exists {
		return ErrDuplicateCategory
	}
	r.categories[category.Name] = category
	return nil
}

func (r *MemoryRepository) GetCategoryByName(_ context.Context, name string) (*domain.Category, error) {
	category, ok := r.categories[name]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (r *MemoryRepository) GetRecipesByCategoryName(_ context.Context, name string) ([]*domain.Recipe, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	matched := false
	for _, category := range r.categories {
		if strings.Contains(strings.ToLower(category.Name), query) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, domain.ErrCategoryNotFound
	}
	var matches []*domain.Recipe
	for _, recipe := range r.recipes {
		if strings.Contains(strings.ToLower(recipe.Category.Name), query) {
			matches = append(matches, recipe)
		}
	}
	return matches, nil
}

// GetRecipesByIngredient matches any ingredient string, case-insensitive. An
// empty result is a normal outcome, not an error.
func (r *MemoryRepository) GetRecipesByIngredient(_ context.Context, ingredient string) ([]*domain.Recipe, error) {
	query := strings.ToLower(strings.TrimSpace(ingredient))
	var matches []*domain.Recipe
	for _, recipe := range r.recipes {
		for _, ing := range recipe.Ingredients {
			if strings.Contains(strings.ToLower(ing), query) {
				matches = append(matches, recipe)
				break
			}
		}
	}
	return matches, nil
}

func (r *MemoryRepository) AddUser(_ context.Context, user *domain.User) error {
	if user == nil || strings.TrimSpace(user.Username) == "" {
		return ErrInvalidEntity
	}
	if _, exists := r.users[user.Username]; exists {
		return ErrDuplicateUser
	}
	if user.ID == 0 {
		user.ID = len(r.users) + 1
	}
	r.users[user.Username] = user
	return nil
}

func (r *MemoryRepository) GetUser(_ context.Context, username string) (*domain.User, error) {
	return r.users[username], nil
}

func (r *MemoryRepository) UpdateUserProfilePicture(_ context.Context, username, url string) error {
	user, ok := r.users[username]
	if !ok {
		return domain.ErrUnknownUser
	}
	user.ProfilePicture = url
	return nil
}

func (r *MemoryRepository) UpdateUserPassword(_ context.Context, username, passwordHash string) error {
	user, ok := r.users[username]
	if !ok {
		return domain.ErrUnknownUser
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *MemoryRepository) AddReview(_ context.Context, review *domain.Review) error {
	if review == nil || review.User == nil || review.Recipe == nil {
		return ErrInvalidEntity
	}
	if review.Rating < 0.0 || review.Rating > 5.0 {
		return domain.ErrRatingOutOfRange
	}
	user, ok := r.users[review.User.Username]
	if !ok {
		return domain.ErrUnknownUser
	}
	recipe, ok := r.recipesIndex[review.Recipe.ID]
	if !ok {
		return domain.ErrRecipeNotFound
	}

	if review.ID == 0 {
		review.ID = r.maxReviewID + 1
	} else if _, taken := r.reviews[review.ID]; taken {
		return ErrDuplicateReview
	}
	if review.ID > r.maxReviewID {
		r.maxReviewID = review.ID
	}

	review.User = user
	review.Recipe = recipe
	r.reviews[review.ID] = review
	user.Reviews = append(user.Reviews, review)
	recipe.AddReview(review)
	return nil
}

// DeleteReview removes the review only when it exists and belongs to the
// requesting user; both failure cases report false without an error.
func (r *MemoryRepository) DeleteReview(_ context.Context, reviewID int, username string) (bool, error) {
	review, ok := r.reviews[reviewID]
	if !ok {
		return false, nil
	}
	if review.User == nil || review.User.Username != username {
		return false, nil
	}

	delete(r.reviews, reviewID)
	review.Recipe.RemoveReview(reviewID)
	for i, rev := range review.User.Reviews {
		if rev.ID == reviewID {
			review.User.Reviews = append(review.User.Reviews[:i], review.User.Reviews[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryRepository) AddFavourite(_ context.Context, user *domain.User, recipe *domain.Recipe) error {
	if user == nil || recipe == nil {
		return nil
	}
	stored, ok := r.users[user.Username]
	if !ok {
		return nil
	}
	if _, ok := r.recipesIndex[recipe.ID]; !ok {
		return nil
	}
	stored.AddFavourite(recipe)
	return nil
}

func (r *MemoryRepository) RemoveFavourite(_ context.Context, user *domain.User, recipe *domain.Recipe) error {
	if user == nil || recipe == nil {
		return nil
	}
	if stored, ok := r.users[user.Username]; ok {
		stored.RemoveFavourite(recipe.ID)
	}
	return nil
}

func (r *MemoryRepository) GetUserFavourites(_ context.Context, username string) ([]*domain.Recipe, error) {
	user, ok := r.users[username]
	if !ok {
		return []*domain.Recipe{}, nil
	}
	favourites := make([]*domain.Recipe, 0, len(user.Favourites))
	for _, fav := range user.Favourites {
		if fav.Recipe != nil {
			favourites = append(favourites, fav.Recipe)
		}
	}
	return favourites, nil
}

func (r *MemoryRepository) IsRecipeInFavourites(_ context.Context, username string, recipeID int) (bool, error) {
	user, ok := r.users[username]
	if !ok {
		return false, nil
	}
	return user.HasFavourite(recipeID), nil
}

// paginate slices with 1-based page numbers; out-of-range pages yield an
// empty list, never an error.
func paginate(recipes []*domain.Recipe, page, perPage int) []*domain.Recipe {
	if page < 1 || perPage < 1 {
		return []*domain.Recipe{}
	}
	start := (page - 1) * perPage
	if start >= len(recipes) {
		return []*domain.Recipe{}
	}
	end := start + perPage
	if end > len(recipes) {
		end = len(recipes)
	}
	out := make([]*domain.Recipe, end-start)
	copy(out, recipes[start:end])
	return out
}
