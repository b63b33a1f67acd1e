package main

import (
	"RecipeBook/cmd/config"
	migration "RecipeBook/cmd/database/migrate"
	"RecipeBook/internal/utils"
	"RecipeBook/pkg/repository"
	"RecipeBook/pkg/user"
	"context"
	"log"
)

func main() {
	utils.LoadConfig()

	repo, err := buildRepository()
	if err != nil {
		log.Fatalf("failed to set up repository: %v", err)
	}

	dataPath := utils.GetConfig("DATA_PATH")
	if dataPath == "" {
		dataPath = "data"
	}
	if err := seed(repo, dataPath); err != nil {
		log.Fatalf("failed to seed repository: %v", err)
	}

	app, err := config.NewApp(repo)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	port := utils.GetConfig("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// buildRepository selects the storage backend. REPO_MODE "memory" keeps
// everything in process, anything else connects to the database.
func buildRepository() (repository.Repository, error) {
	if utils.GetConfig("REPO_MODE") == "memory" {
		return repository.NewMemoryRepository(), nil
	}

	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, err
	}
	return repository.NewDatabaseRepository(db), nil
}

// seed loads the CSV dataset on first start. A repository that already holds
// recipes is left as is.
func seed(repo repository.Repository, dataPath string) error {
	ctx := context.Background()
	count, err := repo.CountRecipes(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return repository.Populate(ctx, dataPath, repo, user.NewBcryptHasher())
}
