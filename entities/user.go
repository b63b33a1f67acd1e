package entities

import (
	"time"
)

type User struct {
	ID             int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string `gorm:"uniqueIndex" json:"username"`
	PasswordHash   string `json:"-"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Timestamp
}

// Favourite links one user and one recipe. The composite primary key keeps
// the at-most-one-favourite-per-pair invariant inside the schema itself.
type Favourite struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RecipeID  int       `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

// Review ids are allocated by the database sequence, which never hands out
// an id below one it has already issued, even after deletions.
type Review struct {
	ID       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int       `gorm:"index" json:"user_id"`
	RecipeID int       `gorm:"index" json:"recipe_id"`
	Rating   float64   `json:"rating"`
	Text     string    `gorm:"type:text" json:"text"`
	Date     time.Time `gorm:"type:timestamp" json:"date"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
