package common

import (
	"strings"
)

// RawInputs 單次請求的原始輸入，三種模態皆為可選，至少需提供一種
type RawInputs struct {
	Text  string
	Image []byte
	Audio []byte
}

// HasAny 檢查是否至少提供一種輸入
func (in RawInputs) HasAny() bool {
	return strings.TrimSpace(in.Text) != "" || len(in.Image) > 0 || len(in.Audio) > 0
}

// AnalysisStatus 單一模態分析的終態
type AnalysisStatus string

const (
	AnalysisSuccess     AnalysisStatus = "success"
	AnalysisUnavailable AnalysisStatus = "unavailable"
	AnalysisFailed      AnalysisStatus = "failed"
)

// TextPayload 文字分析結果
type TextPayload struct {
	Ingredients    []string `json:"ingredients"`
	DietaryTags    []string `json:"dietary_tags"`
	Cuisine        string   `json:"cuisine,omitempty"`
	CookingMethods []string `json:"cooking_methods,omitempty"`
}

// ImagePayload 圖片分類結果，Confidence 必須落在 [0,1]
type ImagePayload struct {
	DishLabel  string  `json:"dish_label"`
	Cuisine    string  `json:"cuisine"`
	Confidence float64 `json:"confidence"`
}

// AudioPayload 語音轉錄結果與抽取出的偏好關鍵字
type AudioPayload struct {
	Transcript  string   `json:"transcript"`
	Keywords    []string `json:"keywords"`
	ServingSize int      `json:"serving_size,omitempty"`
	SpiceLevel  string   `json:"spice_level,omitempty"`
}

// AnalysisResult 單一模態的帶標籤結果：success / unavailable / failed
// 只有對應模態的 payload 欄位會被填入
type AnalysisResult struct {
	Status AnalysisStatus `json:"status"`
	Reason string         `json:"reason,omitempty"` // unavailable 的原因
	Error  string         `json:"error,omitempty"`  // failed 的錯誤代碼
	Text   *TextPayload   `json:"text,omitempty"`
	Image  *ImagePayload  `json:"image,omitempty"`
	Audio  *AudioPayload  `json:"audio,omitempty"`
}

// Succeeded 回報此模態是否成功
func (r AnalysisResult) Succeeded() bool {
	return r.Status == AnalysisSuccess
}

// TextResult 建立文字模態的成功結果
func TextResult(p *TextPayload) AnalysisResult {
	return AnalysisResult{Status: AnalysisSuccess, Text: p}
}

// ImageResult 建立圖片模態的成功結果
func ImageResult(p *ImagePayload) AnalysisResult {
	return AnalysisResult{Status: AnalysisSuccess, Image: p}
}

// AudioResult 建立語音模態的成功結果
func AudioResult(p *AudioPayload) AnalysisResult {
	return AnalysisResult{Status: AnalysisSuccess, Audio: p}
}

// UnavailableResult 建立 unavailable 結果
func UnavailableResult(reason string) AnalysisResult {
	return AnalysisResult{Status: AnalysisUnavailable, Reason: reason}
}

// FailedResult 建立 failed 結果，code 取自 errors.go 的錯誤代碼
func FailedResult(code string) AnalysisResult {
	return AnalysisResult{Status: AnalysisFailed, Error: code}
}

// 菜系判定的來源，依優先序 text > image > audio > default
const (
	CuisineFromText    = "text"
	CuisineFromImage   = "image"
	CuisineFromAudio   = "audio"
	CuisineFromDefault = "default"
)

// DefaultCuisine 無任何線索時的固定菜系
const DefaultCuisine = "International"

// DefaultServings 預設份量
const DefaultServings = 4

// RequestContext 三種模態分析的合併結果，建立後唯讀
type RequestContext struct {
	Text  AnalysisResult `json:"text_analysis"`
	Image AnalysisResult `json:"image_classification"`
	Audio AnalysisResult `json:"audio_transcription"`

	Ingredients   []string `json:"ingredients"`
	Cuisine       string   `json:"cuisine"`
	CuisineSource string   `json:"cuisine_source"`
	Keywords      []string `json:"keywords"`
	DishLabel     string   `json:"dish_label,omitempty"`
	ServingSize   int      `json:"serving_size"`
	Empty         bool     `json:"empty"`
}

// PromptSpec 送往生成模型的指令，重試時以簡化版重建而非原樣重送
type PromptSpec struct {
	Text       string
	Simplified bool
}

// Difficulty 食譜難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// NormalizeDifficulty 將模型輸出的難度正規化為合法值
func NormalizeDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium", "moderate", "intermediate":
		return DifficultyMedium
	case "hard", "difficult", "advanced":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// Recipe 最終輸出的食譜實體，所有欄位都有固定預設值，構建後不可變
// 注意：欄位名稱需與前端約定完全一致
type Recipe struct {
	Name                  string     `json:"name"`
	Cuisine               string     `json:"cuisine"`
	Difficulty            Difficulty `json:"difficulty"`
	PrepTime              string     `json:"prepTime"`
	CookTime              string     `json:"cookTime"`
	TotalTime             string     `json:"totalTime"`
	Servings              int        `json:"servings"`
	Description           string     `json:"description"`
	Ingredients           []string   `json:"ingredients"`
	Instructions          []string   `json:"instructions"`
	Tags                  []string   `json:"tags"`
	Tips                  []string   `json:"tips"`
	CookingMethods        []string   `json:"cooking_methods"`
	NutritionalHighlights []string   `json:"nutritional_highlights"`
	Variations            []string   `json:"variations"`
	Vegetarian            bool       `json:"vegetarian"`
}

// 生成路徑，記錄於 GenerationInfo.Method
const (
	MethodModelGenerated    = "model_generated"
	MethodModelRepaired     = "model_repaired"
	MethodHeuristicFallback = "heuristic_fallback"
)

// InputsUsed 各模態是否實際參與生成
type InputsUsed struct {
	Text  bool `json:"text"`
	Image bool `json:"image"`
	Audio bool `json:"audio"`
}

// GenerationInfo 診斷資訊，附於回應而非 Recipe 本身
type GenerationInfo struct {
	Method         string     `json:"method"`
	DishIdentified string     `json:"dish_identified"`
	InputsUsed     InputsUsed `json:"inputs_used"`
	ProcessingTime float64    `json:"processing_time"` // 秒
}
