package prompt

import (
	"fmt"
	"strings"

	"flavorcraft/internal/pkg/common"
)

// recipeSchema 模型必須遵守的輸出格式，欄位名稱與前端約定一致
const recipeSchema = `{
  "name": "<dish name>",
  "cuisine": "<cuisine>",
  "difficulty": "Easy|Medium|Hard",
  "totalTime": "<e.g. 45 minutes>",
  "prepTime": "<e.g. 15 minutes>",
  "cookTime": "<e.g. 30 minutes>",
  "servings": <number>,
  "description": "<one or two sentences>",
  "ingredients": ["<quantity and ingredient>", "..."],
  "instructions": ["<step>", "..."],
  "tags": ["<tag>", "..."],
  "tips": ["<tip>", "..."],
  "cooking_methods": ["<method>", "..."],
  "nutritional_highlights": ["<highlight>", "..."],
  "variations": ["<variation>", "..."]
}`

// Build 依請求上下文組出完整的食譜生成指令
func Build(rc *common.RequestContext) common.PromptSpec {
	return common.PromptSpec{Text: render(rc, false), Simplified: false}
}

// Simplify 組出重試用的簡化指令，省略偏好關鍵字並放寬描述性要求
// 重試時不得原樣重送同一份 prompt
func Simplify(rc *common.RequestContext) common.PromptSpec {
	return common.PromptSpec{Text: render(rc, true), Simplified: true}
}

func render(rc *common.RequestContext, simplified bool) string {
	var b strings.Builder

	b.WriteString("You are a professional chef creating a detailed recipe. Use this information:\n\n")

	dish := rc.DishLabel
	if dish == "" {
		dish = "a dish based on the available ingredients"
	}
	fmt.Fprintf(&b, "DISH IDENTIFIED: %s\n", dish)
	fmt.Fprintf(&b, "CUISINE: %s\n", rc.Cuisine)

	if len(rc.Ingredients) > 0 {
		fmt.Fprintf(&b, "INGREDIENTS AVAILABLE: %s\n", common.StringSliceToString(rc.Ingredients))
	} else {
		b.WriteString("INGREDIENTS AVAILABLE: use common ingredients\n")
	}

	fmt.Fprintf(&b, "SERVINGS: %d\n", rc.ServingSize)

	if !simplified && len(rc.Keywords) > 0 {
		fmt.Fprintf(&b, "USER PREFERENCES: %s\n", common.StringSliceToString(rc.Keywords))
	}

	b.WriteString("\nCreate a complete recipe in EXACT JSON format with these EXACT field names:\n\n")
	b.WriteString(recipeSchema)
	b.WriteString("\n\nThe instructions array must contain at least 3 steps.\n")
	if simplified {
		b.WriteString("Keep the recipe simple and short.\n")
	}
	b.WriteString("RETURN ONLY THE JSON OBJECT WITH NO OTHER TEXT.")

	return b.String()
}
