package text

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
)

const maxIngredients = 10
const maxCookingMethods = 5

var (
	bulletPrefix = regexp.MustCompile(`^[-•*\d.\s]+`)
	numberedLine = regexp.MustCompile(`^\d+\.`)
)

// Analyzer 文字模態分析器：從自由文字中抽取食材、飲食標籤、菜系與烹飪手法
type Analyzer struct{}

// NewAnalyzer 創建文字分析器
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze 分析文字輸入，空白輸入回傳 unavailable
func (a *Analyzer) Analyze(ctx context.Context, input string) common.AnalysisResult {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return common.UnavailableResult("no text provided")
	}

	payload := &common.TextPayload{
		Ingredients:    ExtractIngredients(trimmed),
		DietaryTags:    extractDietaryTags(trimmed),
		Cuisine:        DetectCuisine(trimmed),
		CookingMethods: extractCookingMethods(trimmed),
	}

	common.LogDebug("文字分析完成",
		zap.Int("食材數", len(payload.Ingredients)),
		zap.String("菜系", payload.Cuisine),
	)

	return common.TextResult(payload)
}

// ExtractIngredients 從文字中抽取食材，最多回傳 10 項
// 依序嘗試條列式清單、逗號分隔清單，最後比對食材詞庫
func ExtractIngredients(input string) []string {
	ingredients := extractBulleted(input)
	if len(ingredients) == 0 {
		ingredients = extractCommaSeparated(input)
	}
	if len(ingredients) == 0 {
		ingredients = matchLexicon(input)
	}

	if len(ingredients) > maxIngredients {
		ingredients = ingredients[:maxIngredients]
	}
	return ingredients
}

// extractBulleted 解析條列式清單（-、•、* 或編號開頭的行）
func extractBulleted(input string) []string {
	var ingredients []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") ||
			strings.HasPrefix(line, "*") || numberedLine.MatchString(line) {
			clean := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
			if len(clean) > 2 {
				ingredients = append(ingredients, clean)
			}
		}
	}
	return ingredients
}

// extractCommaSeparated 解析逗號分隔的食材清單
func extractCommaSeparated(input string) []string {
	if !strings.Contains(input, ",") {
		return nil
	}
	var ingredients []string
	for _, line := range strings.Split(input, "\n") {
		for _, token := range strings.Split(line, ",") {
			clean := cleanIngredientToken(token)
			if len(clean) > 2 && !stopWords[strings.ToLower(clean)] {
				ingredients = append(ingredients, clean)
			}
		}
	}
	return dedupContained(ingredients)
}

// cleanIngredientToken 剝除前導數量與計量單位，
// 例如 "2 lbs chicken breast" → "chicken breast"
func cleanIngredientToken(token string) string {
	clean := strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(token), ""))
	fields := strings.Fields(clean)
	for len(fields) > 0 && measurementUnits[strings.ToLower(fields[0])] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// matchLexicon 比對食材詞庫
func matchLexicon(input string) []string {
	lower := strings.ToLower(input)
	seen := make(map[string]bool)
	var ingredients []string
	for _, category := range sortedCategories() {
		for _, ingredient := range ingredientDatabase[category] {
			if strings.Contains(lower, ingredient) && !seen[ingredient] {
				seen[ingredient] = true
				ingredients = append(ingredients, ingredient)
			}
		}
	}
	return dedupContained(ingredients)
}

// dedupContained 丟棄被其他項目包含的較短食材，
// 例如已有 coconut milk 時不再保留 milk
func dedupContained(ingredients []string) []string {
	result := make([]string, 0, len(ingredients))
	for i, candidate := range ingredients {
		lc := strings.ToLower(candidate)
		contained := false
		for j, other := range ingredients {
			if i == j {
				continue
			}
			lo := strings.ToLower(other)
			if lc == lo {
				if i > j {
					contained = true
					break
				}
				continue
			}
			if strings.Contains(lo, lc) {
				contained = true
				break
			}
		}
		if !contained {
			result = append(result, candidate)
		}
	}
	return result
}

// sortedCategories 固定類別迭代順序
func sortedCategories() []string {
	categories := make([]string, 0, len(ingredientDatabase))
	for c := range ingredientDatabase {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// extractDietaryTags 抽取飲食限制標籤
func extractDietaryTags(input string) []string {
	lower := strings.ToLower(input)
	tags := make([]string, 0, 2)
	for _, tag := range dietaryTagOrder {
		for _, keyword := range dietaryKeywords[tag] {
			if strings.Contains(lower, keyword) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// extractCookingMethods 抽取烹飪與備料手法，最多回傳 5 項
func extractCookingMethods(input string) []string {
	lower := strings.ToLower(input)
	seen := make(map[string]bool)
	var methods []string
	for _, method := range append(append([]string{}, cookingMethods...), preparationMethods...) {
		if strings.Contains(lower, method) && !seen[method] {
			seen[method] = true
			methods = append(methods, method)
			if len(methods) >= maxCookingMethods {
				break
			}
		}
	}
	return methods
}

// DetectCuisine 從文字推斷菜系，取關鍵字命中數最高者，無命中回傳空字串
// 同分時按菜系名稱排序取第一個，確保結果穩定
func DetectCuisine(input string) string {
	lower := strings.ToLower(input)

	best := ""
	bestScore := 0
	names := make([]string, 0, len(cuisineKeywords))
	for name := range cuisineKeywords {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		score := 0
		for _, keyword := range cuisineKeywords[name] {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best
}
