package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"flavorcraft/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

type fakeClassifier struct {
	classification *Classification
	err            error
}

func (f *fakeClassifier) Classify(ctx context.Context, imageData []byte) (*Classification, error) {
	return f.classification, f.err
}

func validImageBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	assert.NoError(t, gif.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestAnalyzeNoImage(t *testing.T) {
	analyzer := NewAnalyzer(&fakeClassifier{})

	result := analyzer.Analyze(context.Background(), nil)
	assert.Equal(t, common.AnalysisUnavailable, result.Status)
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	analyzer := NewAnalyzer(&fakeClassifier{})

	result := analyzer.Analyze(context.Background(), []byte("definitely not an image"))
	assert.Equal(t, common.AnalysisFailed, result.Status)
	assert.Equal(t, common.ErrCodeUnsupportedFormat, result.Error)
}

func TestAnalyzeTruncatedImage(t *testing.T) {
	analyzer := NewAnalyzer(&fakeClassifier{})

	// GIF 魔術數字正確但檔頭不完整
	result := analyzer.Analyze(context.Background(), []byte("GIF89a"))
	assert.Equal(t, common.AnalysisFailed, result.Status)
	assert.Equal(t, common.ErrCodeDecodeError, result.Error)
}

func TestAnalyzeClassifierError(t *testing.T) {
	analyzer := NewAnalyzer(&fakeClassifier{err: errors.New("backend down")})

	result := analyzer.Analyze(context.Background(), validImageBytes(t))
	assert.Equal(t, common.AnalysisFailed, result.Status)
	assert.Equal(t, common.ErrCodeInferenceError, result.Error)
}

func TestAnalyzeConfidenceOutOfRange(t *testing.T) {
	analyzer := NewAnalyzer(&fakeClassifier{
		classification: &Classification{Label: "pizza", Cuisine: "Italian", Confidence: 1.2},
	})

	result := analyzer.Analyze(context.Background(), validImageBytes(t))
	assert.Equal(t, common.AnalysisFailed, result.Status)
	assert.Equal(t, common.ErrCodeInferenceError, result.Error)
}

func TestAnalyzeSuccess(t *testing.T) {
	analyzer := NewAnalyzer(&fakeClassifier{
		classification: &Classification{Label: "chicken biryani", Cuisine: "Indian", Confidence: 0.87},
	})

	result := analyzer.Analyze(context.Background(), validImageBytes(t))
	assert.Equal(t, common.AnalysisSuccess, result.Status)
	assert.Equal(t, "chicken biryani", result.Image.DishLabel)
	assert.Equal(t, "Indian", result.Image.Cuisine)
	assert.InDelta(t, 0.87, result.Image.Confidence, 1e-9)
}

func TestAnalyzeCuisineDerivedFromLabel(t *testing.T) {
	// 後端未給菜系時，從菜名標籤推斷
	analyzer := NewAnalyzer(&fakeClassifier{
		classification: &Classification{Label: "margherita pizza", Confidence: 0.7},
	})

	result := analyzer.Analyze(context.Background(), validImageBytes(t))
	assert.Equal(t, common.AnalysisSuccess, result.Status)
	assert.Equal(t, "Italian", result.Image.Cuisine)
}
