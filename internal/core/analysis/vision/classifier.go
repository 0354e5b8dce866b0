package vision

import "context"

// Classification 圖片分類結果
type Classification struct {
	Label      string  // 菜名標籤，例如 "margherita pizza"
	Cuisine    string  // 推斷菜系，可為空
	Confidence float64 // 信心值，必須落在 [0,1]
}

// Classifier 菜餚分類後端
type Classifier interface {
	Classify(ctx context.Context, imageData []byte) (*Classification, error)
}
