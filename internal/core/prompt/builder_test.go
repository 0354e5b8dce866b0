package prompt

import (
	"testing"

	"flavorcraft/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func testContext() *common.RequestContext {
	return &common.RequestContext{
		Cuisine:     "Thai",
		ServingSize: 2,
		Ingredients: []string{"coconut milk", "lemongrass"},
		Keywords:    []string{"vegetarian", "mild_spice"},
		DishLabel:   "green curry",
	}
}

func TestBuildIncludesContext(t *testing.T) {
	spec := Build(testContext())

	assert.False(t, spec.Simplified)
	assert.Contains(t, spec.Text, "green curry")
	assert.Contains(t, spec.Text, "Thai")
	assert.Contains(t, spec.Text, "coconut milk, lemongrass")
	assert.Contains(t, spec.Text, "SERVINGS: 2")
	assert.Contains(t, spec.Text, "vegetarian, mild_spice")
}

func TestBuildIncludesSchemaFields(t *testing.T) {
	spec := Build(testContext())

	// 欄位名稱必須與前端約定一致
	for _, field := range []string{
		`"name"`, `"cuisine"`, `"difficulty"`, `"totalTime"`, `"prepTime"`,
		`"cookTime"`, `"servings"`, `"description"`, `"ingredients"`,
		`"instructions"`, `"tags"`, `"tips"`, `"cooking_methods"`,
		`"nutritional_highlights"`, `"variations"`,
	} {
		assert.Contains(t, spec.Text, field)
	}
	assert.Contains(t, spec.Text, "at least 3 steps")
	assert.Contains(t, spec.Text, "RETURN ONLY THE JSON OBJECT")
}

func TestSimplifyDropsPreferences(t *testing.T) {
	spec := Simplify(testContext())

	assert.True(t, spec.Simplified)
	assert.NotContains(t, spec.Text, "USER PREFERENCES")
	assert.NotContains(t, spec.Text, "mild_spice")
	// 核心脈絡仍須保留
	assert.Contains(t, spec.Text, "green curry")
	assert.Contains(t, spec.Text, "Thai")
}

func TestBuildWithoutInputs(t *testing.T) {
	spec := Build(&common.RequestContext{
		Cuisine:     common.DefaultCuisine,
		ServingSize: common.DefaultServings,
	})

	assert.Contains(t, spec.Text, "use common ingredients")
	assert.Contains(t, spec.Text, common.DefaultCuisine)
}
