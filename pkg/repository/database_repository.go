package repository

import (
	"RecipeBook/domain"
	"RecipeBook/entities"
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

type (
	// DatabaseRepository implements the repository contract on normalized
	// tables. Every public method scopes its work to the calling context;
	// multi-statement writes run inside a transaction so an exit without
	// commit rolls the session back.
	DatabaseRepository struct {
		db *gorm.DB
	}
)

func NewDatabaseRepository(db *gorm.DB) *DatabaseRepository {
	return &DatabaseRepository{db: db}
}

func (r *DatabaseRepository) AddRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if recipe == nil || recipe.ID == 0 || recipe.Author == nil || recipe.Category == nil {
		return ErrInvalidEntity
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateRecipe
		}

		// The owning author and category rows are created on first use so
		// the foreign keys always resolve.
		author := entities.Author{ID: recipe.Author.ID, Name: recipe.Author.Name}
		if err := tx.FirstOrCreate(&author, entities.Author{ID: recipe.Author.ID}).Error; err != nil {
			return err
		}
		category := entities.Category{Name: recipe.Category.Name}
		if err := tx.FirstOrCreate(&category, entities.Category{Name: recipe.Category.Name}).Error; err != nil {
			return err
		}

		row := entities.Recipe{
			ID:            recipe.ID,
			Name:          recipe.Name,
			AuthorID:      recipe.Author.ID,
			CategoryName:  recipe.Category.Name,
			CookTime:      recipe.CookTime,
			PrepTime:      recipe.PrepTime,
			DatePublished: recipe.DatePublished,
			Description:   recipe.Description,
			Servings:      recipe.Servings,
			Yield:         recipe.Yield,
			Rating:        recipe.Rating,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		if recipe.Nutrition != nil {
			n := recipe.Nutrition
			nutrition := entities.Nutrition{
				RecipeID:      recipe.ID,
				Calories:      n.Calories,
				Fat:           n.Fat,
				SaturatedFat:  n.SaturatedFat,
				Cholesterol:   n.Cholesterol,
				Sodium:        n.Sodium,
				Carbohydrates: n.Carbohydrates,
				Fiber:         n.Fiber,
				Sugar:         n.Sugar,
				Protein:       n.Protein,
			}
			if err := tx.Create(&nutrition).Error; err != nil {
				return err
			}
		}

		for i, url := range recipe.Images {
			image := entities.RecipeImage{RecipeID: recipe.ID, Position: i + 1, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		for i, name := range recipe.Ingredients {
			quantity := ""
			if i < len(recipe.IngredientQuantities) {
				quantity = recipe.IngredientQuantities[i]
			}
			ingredient := entities.RecipeIngredient{RecipeID: recipe.ID, Position: i + 1, Quantity: quantity, Name: name}
			if err := tx.Create(&ingredient).Error; err != nil {
				return err
			}
		}
		for i, text := range recipe.Instructions {
			instruction := entities.RecipeInstruction{RecipeID: recipe.ID, Position: i + 1, Text: text}
			if err := tx.Create(&instruction).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DatabaseRepository) GetRecipeByID(ctx context.Context, id int) (*domain.Recipe, error) {
	recipes, err := r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("id = ?", id)
	})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return recipes[0], nil
}

func (r *DatabaseRepository) GetRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("id")
	})
}

func (r *DatabaseRepository) GetRecipesPaginated(ctx context.Context, page, perPage int) ([]*domain.Recipe, error) {
	if page < 1 || perPage < 1 {
		return []*domain.Recipe{}, nil
	}
	offset := (page - 1) * perPage
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("id").Offset(offset).Limit(perPage)
	})
}

func (r *DatabaseRepository) GetRecipesByName(ctx context.Context, name string) ([]*domain.Recipe, error) {
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return nameSearchScope(q, name)
	})
}

func (r *DatabaseRepository) GetRecipesByNamePaginated(ctx context.Context, name string, page, perPage int) ([]*domain.Recipe, error) {
	if page < 1 || perPage < 1 {
		return []*domain.Recipe{}, nil
	}
	offset := (page - 1) * perPage
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return nameSearchScope(q, name).Offset(offset).Limit(perPage)
	})
}

// nameSearchScope applies the case-insensitive substring filter plus the
// stable alphabetical order shared by the name search queries. An empty
// query matches everything.
func nameSearchScope(q *gorm.DB, name string) *gorm.DB {
	query := strings.ToLower(strings.TrimSpace(name))
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}
	return q.Order("LOWER(name), id")
}

func (r *DatabaseRepository) CountRecipes(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error
	return int(count), err
}

func (r *DatabaseRepository) CountRecipesByName(ctx context.Context, name string) (int, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&entities.Recipe{})
	query := strings.ToLower(strings.TrimSpace(name))
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}
	err := q.Count(&count).Error
	return int(count), err
}

func (r *DatabaseRepository) GetFirstRecipe(ctx context.Context) (*domain.Recipe, error) {
	return r.edgeRecipe(ctx, "id asc")
}

func (r *DatabaseRepository) GetLastRecipe(ctx context.Context) (*domain.Recipe, error) {
	return r.edgeRecipe(ctx, "id desc")
}

func (r *DatabaseRepository) edgeRecipe(ctx context.Context, order string) (*domain.Recipe, error) {
	var row entities.Recipe
	if err := r.db.WithContext(ctx).Order(order).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetRecipeByID(ctx, row.ID)
}

func (r *DatabaseRepository) GetFeaturedRecipes(ctx context.Context, limit int) ([]*domain.Recipe, error) {
	if limit <= 0 {
		return []*domain.Recipe{}, nil
	}
	var ids []int
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Recipe{}, nil
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if limit < len(ids) {
		ids = ids[:limit]
	}
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("id IN ?", ids)
	})
}

func (r *DatabaseRepository) AddAuthor(ctx context.Context, author *domain.Author) error {
	if author == nil || author.ID == 0 {
		return ErrInvalidEntity
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", author.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateAuthor
	}
	return r.db.WithContext(ctx).Create(&entities.Author{ID: author.ID, Name: author.Name}).Error
}

func (r *DatabaseRepository) GetAuthorByID(ctx context.Context, id int) (*domain.Author, error) {
	var row entities.Author
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, err
	}
	return domain.NewAuthor(row.ID, row.Name), nil
}

func (r *DatabaseRepository) GetAuthorsByName(ctx context.Context, name string) ([]*domain.Author, error) {
	var rows []entities.Author
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrAuthorNotFound
	}
	authors := make([]*domain.Author, 0, len(rows))
	for _, row := range rows {
		authors = append(authors, domain.NewAuthor(row.ID, row.Name))
	}
	return authors, nil
}

func (r *DatabaseRepository) GetRecipesByAuthorName(ctx context.Context, name string) ([]*domain.Recipe, error) {
	query := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	var ids []int
	if err := r.db.WithContext(ctx).Model(&entities.Author{}).
		Where("LOWER(name) LIKE ?", query).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, domain.ErrAuthorNotFound
	}
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id IN ?", ids).Order("id")
	})
}

func (r *DatabaseRepository) GetRecipesByAuthorID(ctx context.Context, id int) ([]*domain.Recipe, error) {
	if _, err := r.GetAuthorByID(ctx, id); err != nil {
		return nil, err
	}
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id = ?", id).Order("id")
	})
}

func (r *DatabaseRepository) AddCategory(ctx context.Context, category *domain.Category) error {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return ErrInvalidEntity
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Category{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateCategory
	}
	return r.db.WithContext(ctx).Create(&entities.Category{Name: category.Name}).Error
}

func (r *DatabaseRepository) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var row entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return domain.NewCategory(row.Name), nil
}

func (r *DatabaseRepository) GetRecipesByCategoryName(ctx context.Context, name string) ([]*domain.Recipe, error) {
	query := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	var names []string
	if err := r.db.WithContext(ctx).Model(&entities.Category{}).
		Where("LOWER(name) LIKE ?", query).
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_name IN ?", names).Order("id")
	})
}

func (r *DatabaseRepository) GetRecipesByIngredient(ctx context.Context, ingredient string) ([]*domain.Recipe, error) {
	query := "%" + strings.ToLower(strings.TrimSpace(ingredient)) + "%"
	var ids []int
	if err := r.db.WithContext(ctx).Model(&entities.RecipeIngredient{}).
		Where("LOWER(name) LIKE ?", query).
		Distinct("recipe_id").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Recipe{}, nil
	}
	return r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("id IN ?", ids).Order("id")
	})
}

func (r *DatabaseRepository) AddUser(ctx context.Context, user *domain.User) error {
	if user == nil || strings.TrimSpace(user.Username) == "" {
		return ErrInvalidEntity
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateUser
	}
	row := entities.User{
		Username:       user.Username,
		PasswordHash:   user.PasswordHash,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	user.ID = row.ID
	return nil
}

func (r *DatabaseRepository) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var row entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	user := &domain.User{
		ID:             row.ID,
		Username:       row.Username,
		PasswordHash:   row.PasswordHash,
		Email:          row.Email,
		ProfilePicture: row.ProfilePicture,
	}

	favourites, err := r.GetUserFavourites(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, recipe := range favourites {
		user.Favourites = append(user.Favourites, &domain.Favourite{User: user, Recipe: recipe})
	}

	var reviewRows []entities.Review
	if err := r.db.WithContext(ctx).Where("user_id = ?", row.ID).Order("id").Find(&reviewRows).Error; err != nil {
		return nil, err
	}
	for _, rev := range reviewRows {
		user.Reviews = append(user.Reviews, &domain.Review{
			ID:     rev.ID,
			User:   user,
			Recipe: &domain.Recipe{ID: rev.RecipeID},
			Rating: rev.Rating,
			Text:   rev.Text,
			Date:   rev.Date,
		})
	}
	return user, nil
}

func (r *DatabaseRepository) UpdateUserProfilePicture(ctx context.Context, username, url string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("username = ?", username).
		Update("profile_picture", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUnknownUser
	}
	return nil
}

func (r *DatabaseRepository) UpdateUserPassword(ctx context.Context, username, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUnknownUser
	}
	return nil
}

func (r *DatabaseRepository) AddReview(ctx context.Context, review *domain.Review) error {
	if review == nil || review.User == nil || review.Recipe == nil {
		return ErrInvalidEntity
	}
	if review.Rating < 0.0 || review.Rating > 5.0 {
		return domain.ErrRatingOutOfRange
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.Where("username = ?", review.User.Username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnknownUser
			}
			return err
		}
		var recipeCount int64
		if err := tx.Model(&entities.Recipe{}).Where("id = ?", review.Recipe.ID).Count(&recipeCount).Error; err != nil {
			return err
		}
		if recipeCount == 0 {
			return domain.ErrRecipeNotFound
		}

		if review.Date.IsZero() {
			review.Date = time.Now()
		}
		// A zero id lets the database sequence allocate; the sequence never
		// reissues an id after a deletion, preserving the max-ever+1 rule.
		row := entities.Review{
			ID:       review.ID,
			UserID:   user.ID,
			RecipeID: review.Recipe.ID,
			Rating:   review.Rating,
			Text:     review.Text,
			Date:     review.Date,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		review.ID = row.ID
		return recalcRecipeRating(tx, review.Recipe.ID)
	})
}

func (r *DatabaseRepository) DeleteReview(ctx context.Context, reviewID int, username string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row entities.Review
		if err := tx.Where("id = ?", reviewID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		var user entities.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if row.UserID != user.ID {
			return nil
		}
		if err := tx.Delete(&entities.Review{}, row.ID).Error; err != nil {
			return err
		}
		deleted = true
		return recalcRecipeRating(tx, row.RecipeID)
	})
	return deleted, err
}

// recalcRecipeRating persists the mean of the recipe's remaining reviews,
// rounded to one decimal place, or NULL when none remain.
func recalcRecipeRating(tx *gorm.DB, recipeID int) error {
	var ratings []float64
	if err := tx.Model(&entities.Review{}).Where("recipe_id = ?", recipeID).Pluck("rating", &ratings).Error; err != nil {
		return err
	}
	var rating *float64
	if len(ratings) > 0 {
		var sum float64
		for _, v := range ratings {
			sum += v
		}
		mean := math.Round(sum/float64(len(ratings))*10) / 10
		rating = &mean
	}
	return tx.Model(&entities.Recipe{}).Where("id = ?", recipeID).Update("rating", rating).Error
}

func (r *DatabaseRepository) AddFavourite(ctx context.Context, user *domain.User, recipe *domain.Recipe) error {
	if user == nil || recipe == nil {
		return nil
	}
	var row entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", user.Username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	var recipeCount int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Count(&recipeCount).Error; err != nil {
		return err
	}
	if recipeCount == 0 {
		return nil
	}

	var existing entities.Favourite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", row.ID, recipe.ID).
		First(&existing).Error
	if err == nil {
		// Already favourited, adding twice must not duplicate.
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	favourite := entities.Favourite{
		UserID:    row.ID,
		RecipeID:  recipe.ID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favourite).Error
}

func (r *DatabaseRepository) RemoveFavourite(ctx context.Context, user *domain.User, recipe *domain.Recipe) error {
	if user == nil || recipe == nil {
		return nil
	}
	var row entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", user.Username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", row.ID, recipe.ID).
		Delete(&entities.Favourite{}).Error
}

func (r *DatabaseRepository) GetUserFavourites(ctx context.Context, username string) ([]*domain.Recipe, error) {
	var row entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*domain.Recipe{}, nil
		}
		return nil, err
	}
	var favourites []entities.Favourite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", row.ID).
		Order("created_at, recipe_id").
		Find(&favourites).Error; err != nil {
		return nil, err
	}
	if len(favourites) == 0 {
		return []*domain.Recipe{}, nil
	}
	ids := make([]int, 0, len(favourites))
	for _, fav := range favourites {
		ids = append(ids, fav.RecipeID)
	}
	recipes, err := r.findRecipes(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("id IN ?", ids)
	})
	if err != nil {
		return nil, err
	}
	// Reorder the hydrated set back into favourite insertion order.
	byID := make(map[int]*domain.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}
	ordered := make([]*domain.Recipe, 0, len(ids))
	for _, id := range ids {
		if recipe, ok := byID[id]; ok {
			ordered = append(ordered, recipe)
		}
	}
	return ordered, nil
}

func (r *DatabaseRepository) IsRecipeInFavourites(ctx context.Context, username string, recipeID int) (bool, error) {
	var row entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favourite{}).
		Where("user_id = ? AND recipe_id = ?", row.ID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
