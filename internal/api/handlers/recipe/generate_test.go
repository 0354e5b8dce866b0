package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"flavorcraft/internal/core/orchestrator"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeOrchestrator struct {
	result *orchestrator.Result
	err    error
	inputs common.RawInputs
}

func (f *fakeOrchestrator) Generate(ctx context.Context, inputs common.RawInputs) (*orchestrator.Result, error) {
	f.inputs = inputs
	return f.result, f.err
}

func setupRouter(fake *fakeOrchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(fake, config.UploadConfig{
		ImageMaxBytes: 1 << 20,
		AudioMaxBytes: 1 << 20,
	})
	router.POST("/api/v1/recipe/generate", handler.HandleGenerate)
	return router
}

func multipartBody(t *testing.T, text string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if text != "" {
		assert.NoError(t, writer.WriteField("text", text))
	}
	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+sampleExt(field))
		assert.NoError(t, err)
		_, err = part.Write(data)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func sampleExt(field string) string {
	if field == "audio" {
		return ".wav"
	}
	return ".png"
}

func TestHandleGenerateTextOnly(t *testing.T) {
	fake := &fakeOrchestrator{
		result: &orchestrator.Result{
			Recipe: &common.Recipe{Name: "Fried Rice", Servings: 4},
			GenerationInfo: common.GenerationInfo{
				Method:         common.MethodModelGenerated,
				DishIdentified: "fried rice",
			},
			Text:  common.TextResult(&common.TextPayload{Ingredients: []string{"rice"}}),
			Image: common.UnavailableResult("no image provided"),
			Audio: common.UnavailableResult("no audio provided"),
		},
	}
	router := setupRouter(fake)

	body, contentType := multipartBody(t, "rice and eggs", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipe/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rice and eggs", fake.inputs.Text)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotNil(t, resp["recipe"])
	assert.NotNil(t, resp["analysis_results"])
	assert.NotNil(t, resp["generation_info"])
}

func TestHandleGenerateNoInput(t *testing.T) {
	fake := &fakeOrchestrator{err: common.ErrNoInputProvided}
	router := setupRouter(fake)

	body, contentType := multipartBody(t, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipe/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, common.ErrCodeNoInputProvided, resp["code"])
}

func TestHandleGenerateRejectsBadExtension(t *testing.T) {
	fake := &fakeOrchestrator{}
	router := setupRouter(fake)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "payload.exe")
	assert.NoError(t, err)
	_, err = part.Write([]byte{0x01})
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipe/generate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeUnsupportedFormat, resp["code"])
}

func TestHandleGenerateForwardsUploads(t *testing.T) {
	fake := &fakeOrchestrator{
		result: &orchestrator.Result{
			Recipe:         &common.Recipe{Name: "Dish"},
			GenerationInfo: common.GenerationInfo{Method: common.MethodHeuristicFallback},
		},
	}
	router := setupRouter(fake)

	imageData := []byte{0x89, 0x50, 0x4e, 0x47}
	audioData := []byte{0x52, 0x49, 0x46, 0x46}
	body, contentType := multipartBody(t, "", map[string][]byte{
		"image": imageData,
		"audio": audioData,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipe/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, imageData, fake.inputs.Image)
	assert.Equal(t, audioData, fake.inputs.Audio)
}
