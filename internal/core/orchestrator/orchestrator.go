package orchestrator

import (
	"context"
	"time"

	"flavorcraft/internal/core/fusion"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TextAnalyzer 文字模態分析器
type TextAnalyzer interface {
	Analyze(ctx context.Context, input string) common.AnalysisResult
}

// ImageAnalyzer 圖片模態分析器
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageData []byte) common.AnalysisResult
}

// AudioAnalyzer 語音模態分析器
type AudioAnalyzer interface {
	Analyze(ctx context.Context, audioData []byte) common.AnalysisResult
}

// Synthesizer 食譜合成器
type Synthesizer interface {
	Synthesize(ctx context.Context, rc *common.RequestContext) (*common.Recipe, string)
}

// Result 單次生成請求的完整結果
type Result struct {
	Recipe         *common.Recipe        `json:"recipe"`
	GenerationInfo common.GenerationInfo `json:"generation_info"`
	Text           common.AnalysisResult `json:"text_analysis"`
	Image          common.AnalysisResult `json:"image_classification"`
	Audio          common.AnalysisResult `json:"audio_transcription"`
}

// Orchestrator 多模態食譜生成的調度者
// 三個模態分析並行執行，互不影響，單一模態超時或失敗只會降級該模態
type Orchestrator struct {
	config      *config.Config
	text        TextAnalyzer
	image       ImageAnalyzer
	audio       AudioAnalyzer
	synthesizer Synthesizer
}

// New 創建調度者
func New(cfg *config.Config, text TextAnalyzer, image ImageAnalyzer, audio AudioAnalyzer, synthesizer Synthesizer) *Orchestrator {
	return &Orchestrator{
		config:      cfg,
		text:        text,
		image:       image,
		audio:       audio,
		synthesizer: synthesizer,
	}
}

// Generate 執行一次完整的生成流程：並行分析、融合、合成
// 三種模態皆未提供時回傳 NO_INPUT_PROVIDED，不會進入合成階段
func (o *Orchestrator) Generate(ctx context.Context, inputs common.RawInputs) (*Result, error) {
	if !inputs.HasAny() {
		return nil, common.ErrNoInputProvided
	}

	start := time.Now()
	timeout := o.config.Analysis.ModalityTimeout

	var textRes, imageRes, audioRes common.AnalysisResult

	// 各模態各自回收錯誤為 failed 結果，closure 一律回傳 nil，
	// 讓三個分析不會互相取消
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		textRes = runWithTimeout(gctx, timeout, func(mctx context.Context) common.AnalysisResult {
			return o.text.Analyze(mctx, inputs.Text)
		})
		return nil
	})
	g.Go(func() error {
		imageRes = runWithTimeout(gctx, timeout, func(mctx context.Context) common.AnalysisResult {
			return o.image.Analyze(mctx, inputs.Image)
		})
		return nil
	})
	g.Go(func() error {
		audioRes = runWithTimeout(gctx, timeout, func(mctx context.Context) common.AnalysisResult {
			return o.audio.Analyze(mctx, inputs.Audio)
		})
		return nil
	})
	_ = g.Wait()

	rc := fusion.Merge(textRes, imageRes, audioRes, o.config.Analysis.ConfidenceThreshold)

	recipe, method := o.synthesizer.Synthesize(ctx, rc)

	dishIdentified := rc.DishLabel
	if dishIdentified == "" {
		dishIdentified = recipe.Name
	}

	result := &Result{
		Recipe: recipe,
		GenerationInfo: common.GenerationInfo{
			Method:         method,
			DishIdentified: dishIdentified,
			InputsUsed: common.InputsUsed{
				Text:  textRes.Succeeded(),
				Image: imageRes.Succeeded(),
				Audio: audioRes.Succeeded(),
			},
			ProcessingTime: time.Since(start).Seconds(),
		},
		Text:  textRes,
		Image: imageRes,
		Audio: audioRes,
	}

	common.LogInfo("食譜生成完成",
		zap.String("生成路徑", method),
		zap.String("菜系", rc.Cuisine),
		zap.Float64("耗時秒數", result.GenerationInfo.ProcessingTime),
	)

	return result, nil
}

// runWithTimeout 在獨立的超時範圍內執行單一模態分析
// 分析逾時不會中斷其他模態，該模態記為 failed(MODALITY_TIMEOUT)
func runWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) common.AnalysisResult) common.AnalysisResult {
	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan common.AnalysisResult, 1)
	go func() {
		done <- fn(mctx)
	}()

	select {
	case res := <-done:
		return res
	case <-mctx.Done():
		return common.FailedResult(common.ErrCodeModalityTimeout)
	}
}
