package datareader

import (
	"RecipeBook/domain"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CSVDataReader parses the recipe dataset into domain entities, deduplicating
// authors by their source id and categories by trimmed name. A malformed row
// is skipped with a logged warning instead of aborting the whole load.
type CSVDataReader struct {
	path string

	Recipes    []*domain.Recipe
	Authors    map[int]*domain.Author
	Categories map[string]*domain.Category
}

func NewCSVDataReader(path string) *CSVDataReader {
	return &CSVDataReader{
		path:       path,
		Authors:    make(map[int]*domain.Author),
		Categories: make(map[string]*domain.Category),
	}
}

func (r *CSVDataReader) Read() error {
	file, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("datareader: skipping malformed row at line %d: %v", line, err)
			continue
		}
		if err := r.parseRow(columns, row); err != nil {
			log.Printf("datareader: skipping row at line %d: %v", line, err)
		}
	}
	return nil
}

func (r *CSVDataReader) parseRow(columns map[string]int, row []string) error {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	recipeID, err := strconv.Atoi(field("RecipeId"))
	if err != nil {
		return fmt.Errorf("invalid RecipeId %q", field("RecipeId"))
	}
	name := field("Name")
	if name == "" {
		return fmt.Errorf("recipe %d has no name", recipeID)
	}

	authorID, err := strconv.Atoi(field("AuthorId"))
	if err != nil {
		return fmt.Errorf("invalid AuthorId %q", field("AuthorId"))
	}
	// First occurrence of an author id wins; later rows reuse the instance.
	author, ok := r.Authors[authorID]
	if !ok {
		author = domain.NewAuthor(authorID, field("AuthorName"))
		r.Authors[authorID] = author
	}

	categoryName := field("RecipeCategory")
	if categoryName == "" {
		return fmt.Errorf("recipe %d has no category", recipeID)
	}
	category, ok := r.Categories[categoryName]
	if !ok {
		category = domain.NewCategory(categoryName)
		r.Categories[categoryName] = category
	}

	recipe := &domain.Recipe{
		ID:                   recipeID,
		Name:                 name,
		Author:               author,
		Category:             category,
		CookTime:             intOrZero(field("CookTime")),
		PrepTime:             intOrZero(field("PrepTime")),
		DatePublished:        parseDate(field("DatePublished")),
		Description:          field("Description"),
		Images:               ParseListField(field("Images")),
		IngredientQuantities: ParseListField(field("RecipeIngredientQuantities")),
		Ingredients:          ParseListField(field("RecipeIngredientParts")),
		Instructions:         ParseListField(field("RecipeInstructions")),
		Servings:             field("RecipeServings"),
		Yield:                yieldOrDefault(field("RecipeYield")),
		Nutrition: &domain.Nutrition{
			Calories:      intOrZero(field("Calories")),
			Fat:           floatOrZero(field("FatContent")),
			SaturatedFat:  floatOrZero(field("SaturatedFatContent")),
			Cholesterol:   intOrZero(field("CholesterolContent")),
			Sodium:        intOrZero(field("SodiumContent")),
			Carbohydrates: floatOrZero(field("CarbohydrateContent")),
			Fiber:         floatOrZero(field("FiberContent")),
			Sugar:         floatOrZero(field("SugarContent")),
			Protein:       floatOrZero(field("ProteinContent")),
		},
	}

	author.AddRecipe(recipe)
	category.AddRecipe(recipe)
	r.Recipes = append(r.Recipes, recipe)
	return nil
}

// ParseListField decodes the dataset's nested-list textual encodings, either
// the R form `c("a", "b")` or the bracketed form `['a', 'b']`. Blank values
// and the empty-vector sentinel `character(0)` decode to an empty list; a
// bare unwrapped value decodes to a single-element list.
func ParseListField(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "character(0)" || raw == "NA" {
		return nil
	}

	switch {
	case strings.HasPrefix(raw, "c(") && strings.HasSuffix(raw, ")"):
		raw = raw[2 : len(raw)-1]
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		raw = raw[1 : len(raw)-1]
	default:
		return []string{trimQuotes(raw)}
	}

	var items []string
	var current strings.Builder
	var quote rune
	for _, ch := range raw {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current.WriteRune(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ',':
			if item := strings.TrimSpace(current.String()); item != "" {
				items = append(items, item)
			}
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if item := strings.TrimSpace(current.String()); item != "" {
		items = append(items, item)
	}
	return items
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// parseDate handles dates written like "9th Aug 2009". An unparseable date
// degrades to the zero time rather than failing the row.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	cleaned := ordinalSuffix.ReplaceAllString(raw, "$1")
	for _, layout := range []string{"2 Jan 2006", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t
		}
	}
	return time.Time{}
}

// intOrZero also accepts decimal text, the dataset writes whole-number
// nutrition values with a fractional part.
func intOrZero(raw string) int {
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func floatOrZero(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.0
	}
	return v
}

func yieldOrDefault(raw string) string {
	if raw == "" || raw == "NA" {
		return "Not specified"
	}
	return raw
}
