package datareader

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDataset(t *testing.T) {
	reader := NewCSVDataReader(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, reader.Read())

	// The malformed fourth row is skipped, the rest load.
	require.Len(t, reader.Recipes, 3)
	assert.Len(t, reader.Authors, 2)
	assert.Len(t, reader.Categories, 2)

	brownies := reader.Recipes[0]
	assert.Equal(t, 101, brownies.ID)
	assert.Equal(t, "Brownies", brownies.Name)
	assert.Equal(t, 35, brownies.CookTime)
	assert.Equal(t, 15, brownies.PrepTime)
	assert.Equal(t, time.Date(2009, 8, 9, 0, 0, 0, 0, time.UTC), brownies.DatePublished)
	assert.Equal(t, []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"}, brownies.Images)
	assert.Equal(t, []string{"dark chocolate", "flour", "eggs"}, brownies.Ingredients)
	assert.Equal(t, []string{"200g", "100g", "3"}, brownies.IngredientQuantities)
	assert.Equal(t, []string{"Melt the chocolate.", "Fold in the flour.", "Bake."}, brownies.Instructions)
	assert.Equal(t, "1 tray", brownies.Yield)
	require.NotNil(t, brownies.Nutrition)
	assert.Equal(t, 320, brownies.Nutrition.Calories)
	assert.Equal(t, 60, brownies.Nutrition.Cholesterol)
	assert.InDelta(t, 2.5, brownies.Nutrition.Fiber, 0.001)
}

func TestReadHandlesSparseRows(t *testing.T) {
	reader := NewCSVDataReader(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, reader.Read())

	latte := reader.Recipes[1]
	assert.Equal(t, 102, latte.ID)
	// Blank numerics degrade to zero, a missing yield gets the default.
	assert.Equal(t, 0, latte.CookTime)
	assert.Equal(t, 0, latte.Nutrition.Calories)
	assert.Equal(t, "Not specified", latte.Yield)
	assert.Empty(t, latte.Images)
	// Bracketed lists and bare single values both decode.
	assert.Equal(t, []string{"espresso", "milk"}, latte.Ingredients)
	assert.Equal(t, []string{"Pull the shots and pour over ice."}, latte.Instructions)
}

func TestReadDeduplicatesAuthorsAndCategories(t *testing.T) {
	reader := NewCSVDataReader(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, reader.Read())

	// Rows 1 and 3 share author id 10 under different spellings; the first
	// occurrence wins and both recipes hang off the one instance.
	ann, ok := reader.Authors[10]
	require.True(t, ok)
	assert.Equal(t, "Ann Baker", ann.Name)
	assert.Len(t, ann.Recipes, 2)
	assert.Same(t, ann, reader.Recipes[0].Author)
	assert.Same(t, ann, reader.Recipes[2].Author)

	dessert, ok := reader.Categories["Dessert"]
	require.True(t, ok)
	assert.Len(t, dessert.Recipes, 2)
}

func TestReadMissingFile(t *testing.T) {
	reader := NewCSVDataReader(filepath.Join("testdata", "absent.csv"))
	assert.Error(t, reader.Read())
}

func TestParseListField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"r vector", `c("a", "b")`, []string{"a", "b"}},
		{"bracketed", `['a', 'b']`, []string{"a", "b"}},
		{"bare value", `just one`, []string{"just one"}},
		{"quoted bare value", `"just one"`, []string{"just one"}},
		{"empty vector", `character(0)`, nil},
		{"blank", ``, nil},
		{"na", `NA`, nil},
		{"comma inside quotes", `c("salt, to taste", "pepper")`, []string{"salt, to taste", "pepper"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseListField(tt.raw))
		})
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, time.Date(2009, 8, 9, 0, 0, 0, 0, time.UTC), parseDate("9th Aug 2009"))
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), parseDate("1st Mar 2021"))
	assert.Equal(t, time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC), parseDate("2012-06-01"))
	assert.True(t, parseDate("not a date").IsZero())
	assert.True(t, parseDate("").IsZero())
}
