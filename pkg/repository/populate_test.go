package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(hash, password string) bool { return hash == "hashed:"+password }

func TestPopulate(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, Populate(ctx, "testdata", repo, plainHasher{}))

			count, err := repo.CountRecipes(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			soup, err := repo.GetRecipeByID(ctx, 201)
			require.NoError(t, err)
			require.NotNil(t, soup)
			assert.Equal(t, "Tomato Soup", soup.Name)
			assert.Equal(t, "Cara Stone", soup.Author.Name)
			assert.Equal(t, []string{"tomatoes", "onions"}, soup.Ingredients)

			bread, err := repo.GetRecipeByID(ctx, 202)
			require.NoError(t, err)
			require.NotNil(t, bread)
			assert.Equal(t, "Not specified", bread.Yield)

			author, err := repo.GetAuthorByID(ctx, 31)
			require.NoError(t, err)
			assert.Equal(t, "Dan Reed", author.Name)

			category, err := repo.GetCategoryByName(ctx, "Soups")
			require.NoError(t, err)
			assert.Equal(t, "Soups", category.Name)

			// Seed users arrive with hashed passwords.
			alice, err := repo.GetUser(ctx, "alice")
			require.NoError(t, err)
			require.NotNil(t, alice)
			assert.Equal(t, "hashed:correct horse", alice.PasswordHash)

			bob, err := repo.GetUser(ctx, "bob")
			require.NoError(t, err)
			require.NotNil(t, bob)
		})
	}
}

func TestPopulateMissingDataset(t *testing.T) {
	repo := NewMemoryRepository()
	err := Populate(context.Background(), "testdata/does-not-exist", repo, plainHasher{})
	assert.Error(t, err)
}
