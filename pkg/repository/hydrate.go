package repository

import (
	"RecipeBook/domain"
	"RecipeBook/entities"
	"context"

	"gorm.io/gorm"
)

// findRecipes runs a scoped query over the recipe table and hydrates every
// matching row into a domain entity.
func (r *DatabaseRepository) findRecipes(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Recipe, error) {
	var rows []entities.Recipe
	q := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Preload("Author").
		Preload("Category").
		Preload("Nutrition")
	if err := scope(q).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.hydrateRecipes(ctx, rows)
}

// hydrateRecipes turns scalar recipe rows into fully-formed domain entities.
// The list-valued attributes are fetched with one position-ordered query per
// child table across the whole id set, grouped by recipe id in memory, then
// assigned, so a bulk read never degrades into one query per recipe.
func (r *DatabaseRepository) hydrateRecipes(ctx context.Context, rows []entities.Recipe) ([]*domain.Recipe, error) {
	if len(rows) == 0 {
		return []*domain.Recipe{}, nil
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var images []entities.RecipeImage
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("recipe_id, position").
		Find(&images).Error; err != nil {
		return nil, err
	}
	imagesByRecipe := make(map[int][]string)
	for _, image := range images {
		imagesByRecipe[image.RecipeID] = append(imagesByRecipe[image.RecipeID], image.URL)
	}

	var ingredients []entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("recipe_id, position").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	ingredientsByRecipe := make(map[int][]string)
	quantitiesByRecipe := make(map[int][]string)
	for _, ingredient := range ingredients {
		ingredientsByRecipe[ingredient.RecipeID] = append(ingredientsByRecipe[ingredient.RecipeID], ingredient.Name)
		quantitiesByRecipe[ingredient.RecipeID] = append(quantitiesByRecipe[ingredient.RecipeID], ingredient.Quantity)
	}

	var instructions []entities.RecipeInstruction
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("recipe_id, position").
		Find(&instructions).Error; err != nil {
		return nil, err
	}
	instructionsByRecipe := make(map[int][]string)
	for _, instruction := range instructions {
		instructionsByRecipe[instruction.RecipeID] = append(instructionsByRecipe[instruction.RecipeID], instruction.Text)
	}

	var reviewRows []entities.Review
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("id").
		Find(&reviewRows).Error; err != nil {
		return nil, err
	}
	reviewersByID, err := r.reviewers(ctx, reviewRows)
	if err != nil {
		return nil, err
	}
	reviewsByRecipe := make(map[int][]entities.Review)
	for _, review := range reviewRows {
		reviewsByRecipe[review.RecipeID] = append(reviewsByRecipe[review.RecipeID], review)
	}

	// Authors and categories are shared within the result set so recipes of
	// the same author reference one instance, with back-references intact.
	authors := make(map[int]*domain.Author)
	categories := make(map[string]*domain.Category)

	recipes := make([]*domain.Recipe, 0, len(rows))
	for _, row := range rows {
		author, ok := authors[row.AuthorID]
		if !ok {
			name := ""
			if row.Author != nil {
				name = row.Author.Name
			}
			author = domain.NewAuthor(row.AuthorID, name)
			authors[row.AuthorID] = author
		}
		category, ok := categories[row.CategoryName]
		if !ok {
			category = domain.NewCategory(row.CategoryName)
			categories[row.CategoryName] = category
		}

		recipe := &domain.Recipe{
			ID:                   row.ID,
			Name:                 row.Name,
			Author:               author,
			Category:             category,
			CookTime:             row.CookTime,
			PrepTime:             row.PrepTime,
			DatePublished:        row.DatePublished,
			Description:          row.Description,
			Images:               imagesByRecipe[row.ID],
			IngredientQuantities: quantitiesByRecipe[row.ID],
			Ingredients:          ingredientsByRecipe[row.ID],
			Instructions:         instructionsByRecipe[row.ID],
			Servings:             row.Servings,
			Yield:                row.Yield,
			Rating:               row.Rating,
		}
		if row.Nutrition != nil {
			recipe.Nutrition = &domain.Nutrition{
				Calories:      row.Nutrition.Calories,
				Fat:           row.Nutrition.Fat,
				SaturatedFat:  row.Nutrition.SaturatedFat,
				Cholesterol:   row.Nutrition.Cholesterol,
				Sodium:        row.Nutrition.Sodium,
				Carbohydrates: row.Nutrition.Carbohydrates,
				Fiber:         row.Nutrition.Fiber,
				Sugar:         row.Nutrition.Sugar,
				Protein:       row.Nutrition.Protein,
			}
		}

		for _, rev := range reviewsByRecipe[row.ID] {
			recipe.Reviews = append(recipe.Reviews, &domain.Review{
				ID:     rev.ID,
				User:   reviewersByID[rev.UserID],
				Recipe: recipe,
				Rating: rev.Rating,
				Text:   rev.Text,
				Date:   rev.Date,
			})
		}

		author.AddRecipe(recipe)
		category.AddRecipe(recipe)
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// reviewers loads the reviewing users for a set of review rows in one query.
func (r *DatabaseRepository) reviewers(ctx context.Context, reviews []entities.Review) (map[int]*domain.User, error) {
	users := make(map[int]*domain.User)
	if len(reviews) == 0 {
		return users, nil
	}
	seen := make(map[int]bool)
	userIDs := make([]int, 0, len(reviews))
	for _, review := range reviews {
		if !seen[review.UserID] {
			seen[review.UserID] = true
			userIDs = append(userIDs, review.UserID)
		}
	}
	var rows []entities.User
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		users[row.ID] = &domain.User{
			ID:             row.ID,
			Username:       row.Username,
			Email:          row.Email,
			ProfilePicture: row.ProfilePicture,
		}
	}
	return users, nil
}
