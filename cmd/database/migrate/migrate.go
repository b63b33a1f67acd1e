package migration

import (
	"RecipeBook/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Author{}, &entities.Category{}); err != nil {
		log.Fatalf("Error migrating author and category tables: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}, &entities.Nutrition{}); err != nil {
		log.Fatalf("Error migrating recipe tables: %v", err)
		return err
	}
	if err := db.AutoMigrate(
		&entities.RecipeImage{},
		&entities.RecipeIngredient{},
		&entities.RecipeInstruction{},
	); err != nil {
		log.Fatalf("Error migrating recipe child tables: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.Favourite{}, &entities.Review{}); err != nil {
		log.Fatalf("Error migrating user tables: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
