package text

import (
	"context"
	"testing"

	"flavorcraft/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze(context.Background(), "   \n\t ")
	assert.Equal(t, common.AnalysisUnavailable, result.Status)
	assert.Nil(t, result.Text)
}

func TestAnalyzeBulletedList(t *testing.T) {
	analyzer := NewAnalyzer()

	input := "Here is what I have:\n- 2 cups basmati rice\n- 1 chicken breast\n- 3 tablespoons curry powder"
	result := analyzer.Analyze(context.Background(), input)

	assert.Equal(t, common.AnalysisSuccess, result.Status)
	// 行首的符號與數量會被一併剝除
	assert.Equal(t, []string{
		"cups basmati rice",
		"chicken breast",
		"tablespoons curry powder",
	}, result.Text.Ingredients)
	assert.Equal(t, "Indian", result.Text.Cuisine)
}

func TestAnalyzeNumberedList(t *testing.T) {
	analyzer := NewAnalyzer()

	input := "1. fresh mozzarella\n2. tomato sauce\n3. basil leaves"
	result := analyzer.Analyze(context.Background(), input)

	assert.Equal(t, common.AnalysisSuccess, result.Status)
	assert.Equal(t, []string{"fresh mozzarella", "tomato sauce", "basil leaves"}, result.Text.Ingredients)
	assert.Equal(t, "Italian", result.Text.Cuisine)
}

func TestAnalyzeCommaSeparatedList(t *testing.T) {
	analyzer := NewAnalyzer()

	input := "2 lbs chicken breast, onion, garlic, coconut milk, curry powder"
	result := analyzer.Analyze(context.Background(), input)

	assert.Equal(t, common.AnalysisSuccess, result.Status)
	// 數量與計量單位會被剝除，五項食材全數保留
	assert.Equal(t, []string{
		"chicken breast",
		"onion",
		"garlic",
		"coconut milk",
		"curry powder",
	}, result.Text.Ingredients)
}

func TestExtractIngredientsCommaDedupsContained(t *testing.T) {
	// coconut milk 已涵蓋 milk，較短者應被丟棄
	ingredients := ExtractIngredients("coconut milk, milk, onion")
	assert.Equal(t, []string{"coconut milk", "onion"}, ingredients)
}

func TestExtractIngredientsLexiconDedupsContained(t *testing.T) {
	ingredients := ExtractIngredients("a stew of coconut milk and chicken")
	assert.Contains(t, ingredients, "coconut milk")
	assert.Contains(t, ingredients, "chicken")
	assert.NotContains(t, ingredients, "milk")
}

func TestAnalyzeFreeTextFallsBackToLexicon(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze(context.Background(), "I have some chicken and rice and want to make a curry")

	assert.Equal(t, common.AnalysisSuccess, result.Status)
	assert.Contains(t, result.Text.Ingredients, "chicken")
	assert.Contains(t, result.Text.Ingredients, "rice")
	assert.Equal(t, "Indian", result.Text.Cuisine)
}

func TestAnalyzeDietaryTags(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze(context.Background(), "I need a vegetarian and gluten-free dish with tofu")

	assert.Equal(t, common.AnalysisSuccess, result.Status)
	assert.Equal(t, []string{"vegetarian", "gluten_free"}, result.Text.DietaryTags)
}

func TestAnalyzeCookingMethods(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze(context.Background(), "I want to grill the chicken and steam the broccoli")

	assert.Equal(t, common.AnalysisSuccess, result.Status)
	assert.Contains(t, result.Text.CookingMethods, "grill")
	assert.Contains(t, result.Text.CookingMethods, "steam")
}

func TestExtractIngredientsCap(t *testing.T) {
	input := ""
	for i := 0; i < 15; i++ {
		input += "- ingredient number " + string(rune('a'+i)) + "\n"
	}

	ingredients := ExtractIngredients(input)
	assert.Len(t, ingredients, 10)
}

func TestDetectCuisine(t *testing.T) {
	assert.Equal(t, "Italian", DetectCuisine("spaghetti with parmesan and basil"))
	assert.Equal(t, "Mexican", DetectCuisine("tacos with salsa and guacamole"))
	assert.Equal(t, "Thai", DetectCuisine("green curry with coconut milk and lemongrass"))
	assert.Equal(t, "", DetectCuisine("just plain water"))
}
