package domain

import (
	"errors"
	"time"
)

var ErrRatingOutOfRange = errors.New("rating must be between 0.0 and 5.0")

type User struct {
	ID             int
	Username       string
	PasswordHash   string
	Email          string
	ProfilePicture string
	Favourites     []*Favourite
	Reviews        []*Review
}

func NewUser(username, passwordHash string) *User {
	return &User{Username: username, PasswordHash: passwordHash}
}

// AddFavourite links the recipe to the user. At most one favourite may exist
// per (user, recipe) pair; adding an existing one is a no-op.
func (u *User) AddFavourite(recipe *Recipe) {
	if recipe == nil || u.HasFavourite(recipe.ID) {
		return
	}
	u.Favourites = append(u.Favourites, &Favourite{User: u, Recipe: recipe})
}

// RemoveFavourite unlinks the recipe. Removing an absent favourite is a no-op.
func (u *User) RemoveFavourite(recipeID int) {
	for i, f := range u.Favourites {
		if f.Recipe != nil && f.Recipe.ID == recipeID {
			u.Favourites = append(u.Favourites[:i], u.Favourites[i+1:]...)
			return
		}
	}
}

func (u *User) HasFavourite(recipeID int) bool {
	for _, f := range u.Favourites {
		if f.Recipe != nil && f.Recipe.ID == recipeID {
			return true
		}
	}
	return false
}

// Favourite is a user-recipe bookmark join record.
type Favourite struct {
	User   *User
	Recipe *Recipe
}

// Review identity is a monotonically increasing integer, unique across the
// whole system rather than per recipe. A zero ID marks a review whose id has
// not been allocated yet.
type Review struct {
	ID     int
	User   *User
	Recipe *Recipe
	Rating float64
	Text   string
	Date   time.Time
}

func NewReview(user *User, recipe *Recipe, rating float64, text string) (*Review, error) {
	if rating < 0.0 || rating > 5.0 {
		return nil, ErrRatingOutOfRange
	}
	return &Review{
		User:   user,
		Recipe: recipe,
		Rating: rating,
		Text:   text,
		Date:   time.Now(),
	}, nil
}
