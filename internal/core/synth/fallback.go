package synth

import (
	"fmt"
	"strings"

	"flavorcraft/internal/pkg/common"
)

// HeuristicRecipe 模型完全不可用時的保底食譜
// 以通用的炒煮骨架組出一份保證完整的食譜，所有欄位都有值
func HeuristicRecipe(rc *common.RequestContext) *common.Recipe {
	name := "Custom Recipe"
	if rc.DishLabel != "" {
		name = titleCase(rc.DishLabel)
	}

	ingredients := []string{
		"2 tablespoons cooking oil",
		"1 medium onion, chopped",
		"2 cloves garlic, minced",
	}
	if len(rc.Ingredients) > 0 {
		ingredients = append(ingredients, rc.Ingredients...)
	}
	ingredients = append(ingredients,
		"Salt and black pepper to taste",
		"Fresh herbs for garnish",
	)

	return &common.Recipe{
		Name:        name,
		Cuisine:     rc.Cuisine,
		Difficulty:  common.DifficultyEasy,
		PrepTime:    "10 minutes",
		CookTime:    "25 minutes",
		TotalTime:   "35 minutes",
		Servings:    rc.ServingSize,
		Description: fmt.Sprintf("A delicious %s made with fresh ingredients and your available items.", strings.ToLower(name)),
		Ingredients: ingredients,
		Instructions: []string{
			"Heat oil in a large pan over medium heat",
			"Add chopped onion and cook until soft and translucent (about 5 minutes)",
			"Add minced garlic and cook for 1 minute until fragrant",
			"Add your main ingredients and cook according to their requirements",
			"Season generously with salt and pepper",
			"Cook until everything is heated through and flavors are well combined",
			"Taste and adjust seasoning as needed",
			"Garnish with fresh herbs and serve hot",
		},
		Tags: []string{"homemade", "easy", "customizable"},
		Tips: []string{
			"Use the freshest ingredients available for best flavor",
			"Don't rush the cooking process - let flavors develop",
			"Taste and adjust seasonings throughout cooking",
			"Serve immediately while hot for best experience",
		},
		CookingMethods:        []string{"sauté", "simmer"},
		NutritionalHighlights: []string{"Customizable nutrition", "Fresh ingredients"},
		Variations: []string{
			"Add your favorite vegetables for extra nutrition",
			"Adjust spice levels to your preference",
			"Substitute ingredients based on dietary needs",
		},
		Vegetarian: IsVegetarian(ingredients),
	}
}

// titleCase 將菜名標籤轉為標題格式，底線視為空格
func titleCase(label string) string {
	words := strings.Fields(strings.ReplaceAll(label, "_", " "))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
