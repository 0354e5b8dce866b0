package synth

import (
	"context"
	"fmt"
	"strings"

	"flavorcraft/internal/core/prompt"
	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 生成模型調用介面，由 ai/service 實作
type Generator interface {
	ProcessRequest(ctx context.Context, prompt string, imageData string) (string, error)
}

// Synthesizer 食譜合成器：先走模型生成，解析失敗重試一次簡化 prompt，
// 仍失敗才退回啟發式保底食譜，因此永遠會產出一份完整食譜
type Synthesizer struct {
	generator  Generator
	maxRetries int
}

// NewSynthesizer 創建食譜合成器，generator 為 nil 時一律走保底食譜
func NewSynthesizer(generator Generator, maxRetries int) *Synthesizer {
	return &Synthesizer{
		generator:  generator,
		maxRetries: maxRetries,
	}
}

// Synthesize 依請求上下文合成食譜，回傳食譜與生成路徑
// 生成路徑為 model_generated / model_repaired / heuristic_fallback 之一
func (s *Synthesizer) Synthesize(ctx context.Context, rc *common.RequestContext) (*common.Recipe, string) {
	// 三種模態全數落空時上下文為空，直接走保底食譜，不調用模型
	if rc.Empty {
		common.LogWarn("請求上下文為空，使用保底食譜")
		return HeuristicRecipe(rc), common.MethodHeuristicFallback
	}
	if s.generator == nil {
		common.LogWarn("生成模型未啟用，使用保底食譜")
		return HeuristicRecipe(rc), common.MethodHeuristicFallback
	}

	specs := []common.PromptSpec{prompt.Build(rc)}
	for i := 0; i < s.maxRetries; i++ {
		specs = append(specs, prompt.Simplify(rc))
	}

	for attempt, ps := range specs {
		recipe, repaired, err := s.generateOnce(ctx, rc, ps)
		if err != nil {
			common.LogWarn("模型生成失敗",
				zap.Int("嘗試次數", attempt+1),
				zap.Bool("簡化prompt", ps.Simplified),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		method := common.MethodModelGenerated
		if repaired > 0 {
			method = common.MethodModelRepaired
			common.LogDebug("模型回應經過修補",
				zap.Int("補齊欄位數", repaired),
			)
		}
		return recipe, method
	}

	common.LogWarn("模型生成全數失敗，使用保底食譜")
	return HeuristicRecipe(rc), common.MethodHeuristicFallback
}

// generateOnce 執行單次模型調用並解析回應
// 回傳補齊的欄位數，必要欄位缺失或步驟不足視為失敗
func (s *Synthesizer) generateOnce(ctx context.Context, rc *common.RequestContext, ps common.PromptSpec) (*common.Recipe, int, error) {
	content, err := s.generator.ProcessRequest(ctx, ps.Text, "")
	if err != nil {
		return nil, 0, err
	}

	raw := common.ExtractJSONObject(content)
	if raw == "" {
		return nil, 0, fmt.Errorf("no JSON object in model response")
	}

	var recipe common.Recipe
	if err := common.ParseJSON(raw, &recipe); err != nil {
		// 模型偶爾輸出未加引號的鍵，補上後再試一次
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &recipe); err2 != nil {
			return nil, 0, fmt.Errorf("failed to parse recipe JSON: %w", err)
		}
	}

	// 必要欄位檢查，缺一即視為無效回應
	if strings.TrimSpace(recipe.Name) == "" {
		return nil, 0, fmt.Errorf("recipe missing name")
	}
	if len(recipe.Ingredients) == 0 {
		return nil, 0, fmt.Errorf("recipe missing ingredients")
	}
	if len(recipe.Instructions) < 3 {
		return nil, 0, fmt.Errorf("recipe has fewer than 3 instructions")
	}

	repaired := s.backfill(&recipe, rc)
	return &recipe, repaired, nil
}

// backfill 為缺失的可選欄位補上預設值，回傳補齊的欄位數
// 素食標記一律重新計算，不計入修補
func (s *Synthesizer) backfill(recipe *common.Recipe, rc *common.RequestContext) int {
	repaired := 0

	if recipe.Cuisine == "" {
		recipe.Cuisine = rc.Cuisine
		repaired++
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = common.DifficultyEasy
		repaired++
	} else {
		normalized := common.NormalizeDifficulty(string(recipe.Difficulty))
		if normalized != recipe.Difficulty {
			recipe.Difficulty = normalized
			repaired++
		}
	}
	if recipe.PrepTime == "" {
		recipe.PrepTime = "15 minutes"
		repaired++
	}
	if recipe.CookTime == "" {
		recipe.CookTime = "30 minutes"
		repaired++
	}
	if recipe.TotalTime == "" {
		recipe.TotalTime = "45 minutes"
		repaired++
	}
	if recipe.Servings <= 0 {
		recipe.Servings = rc.ServingSize
		repaired++
	}
	if recipe.Description == "" {
		recipe.Description = fmt.Sprintf("A delicious %s recipe.", strings.ToLower(recipe.Name))
		repaired++
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{"homemade", strings.ToLower(recipe.Cuisine)}
		repaired++
	}
	if recipe.Tips == nil {
		recipe.Tips = []string{}
		repaired++
	}
	if recipe.CookingMethods == nil {
		recipe.CookingMethods = []string{}
		repaired++
	}
	if recipe.NutritionalHighlights == nil {
		recipe.NutritionalHighlights = []string{}
		repaired++
	}
	if recipe.Variations == nil {
		recipe.Variations = []string{}
		repaired++
	}

	recipe.Vegetarian = IsVegetarian(recipe.Ingredients)

	return repaired
}
