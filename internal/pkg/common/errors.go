package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 讓 errors.Is / errors.As 可以穿透原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ErrorCode 取出錯誤代碼，非 CustomError 時回傳 INTERNAL_ERROR
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternalError
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503

	// 請求層級錯誤
	ErrCodeNoInputProvided = "NO_INPUT_PROVIDED" // 三種模態皆未提供

	// 模態層級錯誤（局部恢復，不會升級為請求失敗）
	ErrCodeDecodeError              = "DECODE_ERROR"
	ErrCodeUnsupportedFormat        = "UNSUPPORTED_FORMAT"
	ErrCodeInferenceError           = "INFERENCE_ERROR"
	ErrCodeModalityTimeout          = "MODALITY_TIMEOUT"
	ErrCodeTranscriptionUnavailable = "TRANSCRIPTION_UNAVAILABLE"

	// 生成模型錯誤（先重試再退回啟發式食譜）
	ErrCodeModelTimeout           = "MODEL_TIMEOUT"
	ErrCodeModelQuotaExceeded     = "MODEL_QUOTA_EXCEEDED"
	ErrCodeModelMalformedResponse = "MODEL_MALFORMED_RESPONSE"
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)

	// 業務錯誤
	ErrNoInputProvided = NewError(ErrCodeNoInputProvided, "請至少提供文字、圖片或語音其中一種輸入", http.StatusBadRequest, nil)

	ErrDecodeError       = NewError(ErrCodeDecodeError, "無法解碼圖片", http.StatusBadRequest, nil)
	ErrUnsupportedFormat = NewError(ErrCodeUnsupportedFormat, "不支持的圖片格式", http.StatusBadRequest, nil)
	ErrInferenceError    = NewError(ErrCodeInferenceError, "圖片分類推論失敗", http.StatusServiceUnavailable, nil)

	ErrTranscriptionUnavailable = NewError(ErrCodeTranscriptionUnavailable, "語音轉錄服務不可用", http.StatusServiceUnavailable, nil)

	ErrModelTimeout           = NewError(ErrCodeModelTimeout, "生成模型請求超時", http.StatusGatewayTimeout, nil)
	ErrModelQuotaExceeded     = NewError(ErrCodeModelQuotaExceeded, "生成模型額度已用盡", http.StatusTooManyRequests, nil)
	ErrModelMalformedResponse = NewError(ErrCodeModelMalformedResponse, "生成模型回應格式無效", http.StatusBadGateway, nil)

	ErrCacheFull     = NewError("CACHE_FULL", "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled = NewError("CACHE_DISABLED", "緩存已禁用", http.StatusServiceUnavailable, nil)
	ErrCacheMiss     = NewError("CACHE_MISS", "緩存未命中", http.StatusServiceUnavailable, nil)
)
