package repository

import (
	"RecipeBook/domain"
	"RecipeBook/pkg/datareader"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Populate seeds a repository from the CSV dataset directory: recipes.csv
// with its authors and categories, then users.csv hashed through the
// injected hasher. A single failing entity is logged and skipped so one bad
// row can never abort a whole dataset load.
func Populate(ctx context.Context, dataPath string, repo Repository, hasher PasswordHasher) error {
	recipesPath := filepath.Join(dataPath, "recipes.csv")
	if _, err := os.Stat(recipesPath); err != nil {
		return fmt.Errorf("recipe dataset not found: %w", err)
	}

	reader := datareader.NewCSVDataReader(recipesPath)
	if err := reader.Read(); err != nil {
		return err
	}

	for _, author := range reader.Authors {
		if err := repo.AddAuthor(ctx, author); err != nil {
			log.Printf("populate: skipping author %d: %v", author.ID, err)
		}
	}
	for _, category := range reader.Categories {
		if err := repo.AddCategory(ctx, category); err != nil {
			log.Printf("populate: skipping category %q: %v", category.Name, err)
		}
	}
	for _, recipe := range reader.Recipes {
		if err := repo.AddRecipe(ctx, recipe); err != nil {
			log.Printf("populate: skipping recipe %d: %v", recipe.ID, err)
		}
	}

	if err := loadUsers(ctx, filepath.Join(dataPath, "users.csv"), repo, hasher); err != nil {
		return err
	}

	count, err := repo.CountRecipes(ctx)
	if err != nil {
		return err
	}
	log.Printf("populate: loaded %d recipes, %d authors, %d categories",
		count, len(reader.Authors), len(reader.Categories))
	return nil
}

// loadUsers reads (id, username, password) seed rows, hashing each cleartext
// password before storage. A missing users.csv is not an error, the dataset
// simply ships no seed accounts.
func loadUsers(ctx context.Context, path string, repo Repository, hasher PasswordHasher) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("populate: no user seed file at %s", path)
			return nil
		}
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return err
	}

	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		if len(row) < 3 {
			log.Printf("populate: skipping malformed user row %d", i+1)
			continue
		}
		username := strings.TrimSpace(row[1])
		hash, err := hasher.Hash(strings.TrimSpace(row[2]))
		if err != nil {
			log.Printf("populate: skipping user %q: %v", username, err)
			continue
		}
		if err := repo.AddUser(ctx, domain.NewUser(username, hash)); err != nil {
			log.Printf("populate: skipping user %q: %v", username, err)
		}
	}
	return nil
}
