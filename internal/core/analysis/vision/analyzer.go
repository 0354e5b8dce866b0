package vision

import (
	"bytes"
	"context"
	"errors"
	"image"

	// 註冊可解碼的圖片格式
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"flavorcraft/internal/core/analysis/text"
	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
)

// Analyzer 圖片模態分析器：驗證並解碼圖片後交給分類後端
type Analyzer struct {
	classifier Classifier
}

// NewAnalyzer 創建圖片分析器
func NewAnalyzer(classifier Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Analyze 分析圖片輸入，未提供圖片回傳 unavailable
// 解碼與推論錯誤只降級此模態，不會讓整個請求失敗
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte) common.AnalysisResult {
	if len(imageData) == 0 {
		return common.UnavailableResult("no image provided")
	}

	// 先驗證圖片可被解碼，避免把壞檔送進分類後端
	format, err := decodeConfig(imageData)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			common.LogWarn("不支持的圖片格式", zap.Error(err))
			return common.FailedResult(common.ErrCodeUnsupportedFormat)
		}
		common.LogWarn("圖片解碼失敗", zap.String("格式", format), zap.Error(err))
		return common.FailedResult(common.ErrCodeDecodeError)
	}

	classification, err := a.classifier.Classify(ctx, imageData)
	if err != nil {
		common.LogWarn("圖片分類推論失敗", zap.Error(err))
		return common.FailedResult(common.ErrCodeInferenceError)
	}

	// 信心值超出範圍視為推論異常，不做截斷
	if classification.Confidence < 0 || classification.Confidence > 1 {
		common.LogWarn("分類信心值超出範圍",
			zap.Float64("confidence", classification.Confidence),
		)
		return common.FailedResult(common.ErrCodeInferenceError)
	}

	cuisine := classification.Cuisine
	if cuisine == "" {
		// 後端未給菜系時，從菜名標籤推斷
		cuisine = text.DetectCuisine(classification.Label)
	}

	common.LogDebug("圖片分類完成",
		zap.String("菜名", classification.Label),
		zap.String("菜系", cuisine),
		zap.Float64("信心值", classification.Confidence),
	)

	return common.ImageResult(&common.ImagePayload{
		DishLabel:  classification.Label,
		Cuisine:    cuisine,
		Confidence: classification.Confidence,
	})
}

func decodeConfig(imageData []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	return format, err
}
