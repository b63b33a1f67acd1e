package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFavourites(t *testing.T) {
	user := NewUser("alice", "hash")
	brownies := &Recipe{ID: 1, Name: "Brownies"}
	latte := &Recipe{ID: 2, Name: "Iced Latte"}

	user.AddFavourite(brownies)
	// At most one favourite per pair.
	user.AddFavourite(brownies)
	user.AddFavourite(latte)
	user.AddFavourite(nil)

	require.Len(t, user.Favourites, 2)
	assert.True(t, user.HasFavourite(1))
	assert.True(t, user.HasFavourite(2))
	assert.False(t, user.HasFavourite(3))

	user.RemoveFavourite(1)
	assert.False(t, user.HasFavourite(1))
	assert.Len(t, user.Favourites, 1)

	// Removing something that was never favourited changes nothing.
	user.RemoveFavourite(99)
	assert.Len(t, user.Favourites, 1)
}

func TestNewReviewValidatesRating(t *testing.T) {
	user := NewUser("alice", "hash")
	recipe := &Recipe{ID: 1}

	review, err := NewReview(user, recipe, 4.5, "Very good.")
	require.NoError(t, err)
	assert.Zero(t, review.ID)
	assert.False(t, review.Date.IsZero())

	_, err = NewReview(user, recipe, 5.1, "Too good.")
	assert.ErrorIs(t, err, ErrRatingOutOfRange)

	_, err = NewReview(user, recipe, -0.1, "Impossible.")
	assert.ErrorIs(t, err, ErrRatingOutOfRange)

	// The bounds themselves are valid ratings.
	_, err = NewReview(user, recipe, 0.0, "Awful.")
	assert.NoError(t, err)
	_, err = NewReview(user, recipe, 5.0, "Flawless.")
	assert.NoError(t, err)
}
