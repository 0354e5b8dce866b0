package orchestrator

import (
	"context"
	"testing"
	"time"

	"flavorcraft/internal/core/synth"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

type fakeTextAnalyzer struct {
	result common.AnalysisResult
	delay  time.Duration
}

func (f *fakeTextAnalyzer) Analyze(ctx context.Context, input string) common.AnalysisResult {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	return f.result
}

type fakeImageAnalyzer struct {
	result common.AnalysisResult
}

func (f *fakeImageAnalyzer) Analyze(ctx context.Context, imageData []byte) common.AnalysisResult {
	return f.result
}

type fakeAudioAnalyzer struct {
	result common.AnalysisResult
}

func (f *fakeAudioAnalyzer) Analyze(ctx context.Context, audioData []byte) common.AnalysisResult {
	return f.result
}

type fakeSynthesizer struct {
	called bool
	rc     *common.RequestContext
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, rc *common.RequestContext) (*common.Recipe, string) {
	f.called = true
	f.rc = rc
	return &common.Recipe{Name: "Test Recipe", Servings: rc.ServingSize}, common.MethodModelGenerated
}

func testConfig() *config.Config {
	return &config.Config{
		Analysis: config.AnalysisConfig{
			ModalityTimeout:     200 * time.Millisecond,
			ConfidenceThreshold: 0.4,
		},
	}
}

func unavailableAll() (*fakeTextAnalyzer, *fakeImageAnalyzer, *fakeAudioAnalyzer) {
	return &fakeTextAnalyzer{result: common.UnavailableResult("no text provided")},
		&fakeImageAnalyzer{result: common.UnavailableResult("no image provided")},
		&fakeAudioAnalyzer{result: common.UnavailableResult("no audio provided")}
}

func TestGenerateNoInput(t *testing.T) {
	text, image, audio := unavailableAll()
	synth := &fakeSynthesizer{}
	orch := New(testConfig(), text, image, audio, synth)

	result, err := orch.Generate(context.Background(), common.RawInputs{})

	assert.Nil(t, result)
	assert.Equal(t, common.ErrCodeNoInputProvided, common.ErrorCode(err))
	assert.False(t, synth.called, "合成器不應被呼叫")
}

func TestGenerateImageOnly(t *testing.T) {
	text, _, audio := unavailableAll()
	image := &fakeImageAnalyzer{result: common.ImageResult(&common.ImagePayload{
		DishLabel:  "lasagna",
		Cuisine:    "Italian",
		Confidence: 0.8,
	})}
	synth := &fakeSynthesizer{}
	orch := New(testConfig(), text, image, audio, synth)

	result, err := orch.Generate(context.Background(), common.RawInputs{Image: []byte{0x01}})

	assert.NoError(t, err)
	assert.True(t, synth.called)
	assert.Equal(t, "Italian", synth.rc.Cuisine)
	assert.Equal(t, "lasagna", synth.rc.DishLabel)
	assert.Equal(t, "lasagna", result.GenerationInfo.DishIdentified)
	assert.Equal(t, common.InputsUsed{Image: true}, result.GenerationInfo.InputsUsed)
	assert.Equal(t, common.MethodModelGenerated, result.GenerationInfo.Method)
}

func TestGenerateModalityTimeout(t *testing.T) {
	// 文字分析逾時，其餘模態照常貢獻，整體請求仍成功
	text := &fakeTextAnalyzer{
		result: common.TextResult(&common.TextPayload{Cuisine: "Thai"}),
		delay:  time.Second,
	}
	image := &fakeImageAnalyzer{result: common.ImageResult(&common.ImagePayload{
		DishLabel:  "pad thai",
		Cuisine:    "Thai",
		Confidence: 0.9,
	})}
	audio := &fakeAudioAnalyzer{result: common.UnavailableResult("no audio provided")}
	synth := &fakeSynthesizer{}
	orch := New(testConfig(), text, image, audio, synth)

	result, err := orch.Generate(context.Background(), common.RawInputs{
		Text:  "slow input",
		Image: []byte{0x01},
	})

	assert.NoError(t, err)
	assert.Equal(t, common.AnalysisFailed, result.Text.Status)
	assert.Equal(t, common.ErrCodeModalityTimeout, result.Text.Error)
	assert.Equal(t, common.AnalysisSuccess, result.Image.Status)
	assert.False(t, result.GenerationInfo.InputsUsed.Text)
	assert.True(t, result.GenerationInfo.InputsUsed.Image)
	assert.NotNil(t, result.Recipe)
}

type stubGenerator struct {
	calls int
}

func (s *stubGenerator) ProcessRequest(ctx context.Context, prompt string, imageData string) (string, error) {
	s.calls++
	return `{"name": "Model Dish", "ingredients": ["x"], "instructions": ["a", "b", "c"]}`, nil
}

func TestGenerateAllModalitiesFailedUsesHeuristic(t *testing.T) {
	// 三種模態全數失敗時走保底食譜，不調用模型，請求仍成功
	text := &fakeTextAnalyzer{result: common.FailedResult(common.ErrCodeInferenceError)}
	image := &fakeImageAnalyzer{result: common.FailedResult(common.ErrCodeDecodeError)}
	audio := &fakeAudioAnalyzer{result: common.FailedResult(common.ErrCodeTranscriptionUnavailable)}
	gen := &stubGenerator{}
	orch := New(testConfig(), text, image, audio, synth.NewSynthesizer(gen, 1))

	result, err := orch.Generate(context.Background(), common.RawInputs{
		Text:  "anything",
		Image: []byte{0x01},
		Audio: []byte{0x02},
	})

	assert.NoError(t, err)
	assert.Equal(t, common.MethodHeuristicFallback, result.GenerationInfo.Method)
	assert.Equal(t, 0, gen.calls)
	assert.GreaterOrEqual(t, len(result.Recipe.Ingredients), 1)
	assert.GreaterOrEqual(t, len(result.Recipe.Instructions), 3)
	assert.Equal(t, common.InputsUsed{}, result.GenerationInfo.InputsUsed)
}

func TestGenerateRecordsProcessingTime(t *testing.T) {
	text, image, audio := unavailableAll()
	synth := &fakeSynthesizer{}
	orch := New(testConfig(), text, image, audio, synth)

	result, err := orch.Generate(context.Background(), common.RawInputs{Text: "rice"})

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, result.GenerationInfo.ProcessingTime, 0.0)
	// 全模態落空時以食譜名稱作為辨識結果
	assert.Equal(t, "Test Recipe", result.GenerationInfo.DishIdentified)
}
