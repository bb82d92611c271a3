package gemini

import (
	"StyleSnap-Backend/domain"
	"StyleSnap-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	// GeminiService wraps the Gemini generateContent REST API. It is
	// constructed once at startup and injected wherever model calls are
	// needed; there is no package-level client state.
	GeminiService interface {
		GenerateText(ctx context.Context, prompt string) (string, error)
		GenerateFromImage(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error)
		GenerateImage(ctx context.Context, prompt string) (string, error)
	}

	geminiService struct {
		apiKey     string
		model      string
		imageModel string
		baseURL    string
		httpClient *http.Client
		logger     *zap.Logger
	}
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

func NewGeminiService(logger *zap.Logger) GeminiService {
	return &geminiService{
		apiKey:     utils.GetConfig("GEMINI_API_KEY"),
		model:      utils.GetConfig("GEMINI_MODEL"),
		imageModel: utils.GetConfig("GEMINI_IMAGE_MODEL"),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

func (s *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	parts := []map[string]interface{}{
		{"text": prompt},
	}
	return s.generateContent(ctx, s.model, parts, nil)
}

func (s *geminiService) GenerateFromImage(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []map[string]interface{}{
		{"text": prompt},
		{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(imageData),
			},
		},
	}
	return s.generateContent(ctx, s.model, parts, nil)
}

// GenerateImage asks the image-generation model for a single synthesized
// image and returns it as a data URL.
func (s *geminiService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	parts := []map[string]interface{}{
		{"text": prompt},
	}
	generationConfig := map[string]interface{}{
		"responseModalities": []string{"TEXT", "IMAGE"},
	}

	body, err := s.doRequest(ctx, s.imageModel, parts, generationConfig)
	if err != nil {
		return "", err
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					InlineData *struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return fmt.Sprintf("data:%s;base64,%s", part.InlineData.MimeType, part.InlineData.Data), nil
			}
		}
	}

	return "", domain.ErrGeminiAPIFailed
}

func (s *geminiService) generateContent(ctx context.Context, model string, parts []map[string]interface{}, generationConfig map[string]interface{}) (string, error) {
	if generationConfig == nil {
		generationConfig = map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		}
	}

	body, err := s.doRequest(ctx, model, parts, generationConfig)
	if err != nil {
		return "", err
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiAPIFailed
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (s *geminiService) doRequest(ctx context.Context, model string, parts []map[string]interface{}, generationConfig map[string]interface{}) ([]byte, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
	}
	if generationConfig != nil {
		requestBody["generationConfig"] = generationConfig
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("gemini API error",
			zap.String("model", model),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	return bodyBytes, nil
}
