package fusion

import (
	"strings"

	"flavorcraft/internal/core/analysis/text"
	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
)

// Merge 將三種模態的分析結果合併為單一請求上下文
// 菜系依 text > image > audio 的優先序決定，全部落空時使用預設菜系
// 任一模態失敗只會讓對應欄位缺席，不影響其他模態的貢獻
func Merge(textRes, imageRes, audioRes common.AnalysisResult, confidenceThreshold float64) *common.RequestContext {
	rc := &common.RequestContext{
		Text:        textRes,
		Image:       imageRes,
		Audio:       audioRes,
		ServingSize: common.DefaultServings,
	}

	if textRes.Succeeded() && textRes.Text != nil {
		rc.Ingredients = textRes.Text.Ingredients
	}

	if imageRes.Succeeded() && imageRes.Image != nil {
		rc.DishLabel = imageRes.Image.DishLabel
	}

	if audioRes.Succeeded() && audioRes.Audio != nil && audioRes.Audio.ServingSize > 0 {
		rc.ServingSize = audioRes.Audio.ServingSize
	}

	rc.Cuisine, rc.CuisineSource = resolveCuisine(textRes, imageRes, audioRes, confidenceThreshold)
	rc.Keywords = mergeKeywords(audioRes, textRes)
	rc.Empty = !textRes.Succeeded() && !imageRes.Succeeded() && !audioRes.Succeeded()

	common.LogDebug("模態融合完成",
		zap.String("菜系", rc.Cuisine),
		zap.String("菜系來源", rc.CuisineSource),
		zap.Int("食材數", len(rc.Ingredients)),
		zap.Int("關鍵字數", len(rc.Keywords)),
		zap.Bool("空上下文", rc.Empty),
	)

	return rc
}

// resolveCuisine 依優先序決定菜系：
// 文字線索最優先，其次是信心值達標的圖片分類，再其次是語音轉錄文字，
// 最後退回預設菜系
func resolveCuisine(textRes, imageRes, audioRes common.AnalysisResult, confidenceThreshold float64) (string, string) {
	if textRes.Succeeded() && textRes.Text != nil && textRes.Text.Cuisine != "" {
		return textRes.Text.Cuisine, common.CuisineFromText
	}

	if imageRes.Succeeded() && imageRes.Image != nil &&
		imageRes.Image.Cuisine != "" && imageRes.Image.Confidence >= confidenceThreshold {
		return imageRes.Image.Cuisine, common.CuisineFromImage
	}

	if audioRes.Succeeded() && audioRes.Audio != nil {
		if cuisine := text.DetectCuisine(audioRes.Audio.Transcript); cuisine != "" {
			return cuisine, common.CuisineFromAudio
		}
	}

	return common.DefaultCuisine, common.CuisineFromDefault
}

// mergeKeywords 合併語音關鍵字與文字飲食標籤
// 不分大小寫去重，保留首次出現的順序與寫法
func mergeKeywords(audioRes, textRes common.AnalysisResult) []string {
	keywords := []string{}
	seen := make(map[string]bool)

	add := func(values []string) {
		for _, v := range values {
			key := strings.ToLower(strings.TrimSpace(v))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			keywords = append(keywords, v)
		}
	}

	if audioRes.Succeeded() && audioRes.Audio != nil {
		add(audioRes.Audio.Keywords)
	}
	if textRes.Succeeded() && textRes.Text != nil {
		add(textRes.Text.DietaryTags)
	}

	return keywords
}
