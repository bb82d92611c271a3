package fashion

import (
	"StyleSnap-Backend/domain"
	"StyleSnap-Backend/internal/utils"
	"StyleSnap-Backend/pkg/gemini"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// imageSynthesisBudgetFraction bounds how much of the request time budget the
// sequential image-generation loop may consume before remaining outfits fall
// back to the placeholder.
const imageSynthesisBudgetFraction = 0.75

type (
	FashionService interface {
		GetRecommendations(ctx context.Context, req domain.FashionRequest) (domain.FashionResponse, error)
	}

	fashionService struct {
		gemini     gemini.GeminiService
		timeBudget time.Duration
		logger     *zap.Logger
	}
)

func NewFashionService(geminiService gemini.GeminiService, logger *zap.Logger) FashionService {
	seconds, err := strconv.Atoi(utils.GetConfig("REQUEST_TIME_BUDGET"))
	if err != nil || seconds <= 0 {
		seconds = 60
	}

	return &fashionService{
		gemini:     geminiService,
		timeBudget: time.Duration(seconds) * time.Second,
		logger:     logger,
	}
}

func (s *fashionService) GetRecommendations(ctx context.Context, req domain.FashionRequest) (domain.FashionResponse, error) {
	if req.Image == nil && req.Prompt == "" {
		return domain.FashionResponse{}, domain.ErrInvalidInput
	}

	start := time.Now()
	prompt := buildFashionPrompt(req)

	var rawOutput string
	var err error
	if req.Image != nil {
		var imageBytes []byte
		var mimeType string
		imageBytes, mimeType, err = readUpload(req)
		if err != nil {
			return domain.FashionResponse{}, domain.ErrInvalidInput
		}
		rawOutput, err = s.gemini.GenerateFromImage(ctx, prompt, imageBytes, mimeType)
	} else {
		rawOutput, err = s.gemini.GenerateText(ctx, prompt)
	}
	if err != nil {
		return domain.FashionResponse{}, fmt.Errorf("%w: %v", domain.ErrGeminiAPIFailed, err)
	}

	jsonStr, err := gemini.ExtractJSONObject(rawOutput)
	if err != nil {
		return domain.FashionResponse{}, err
	}

	var result domain.FashionResponse
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return domain.FashionResponse{}, &domain.ExtractionError{Raw: jsonStr, Err: domain.ErrExtractionFailed}
	}

	if result.ItemType == "" || result.ItemDescription == "" ||
		len(result.Outfits) == 0 || len(result.StylingTips) == 0 {
		return domain.FashionResponse{}, &domain.ExtractionError{Raw: jsonStr, Err: domain.ErrExtractionFailed}
	}

	for i := range result.Outfits {
		if result.Outfits[i].ImagePrompt == "" {
			result.Outfits[i].ImagePrompt = buildOutfitImagePrompt(result.Outfits[i], req.Gender)
		}
	}

	s.synthesizeOutfitImages(ctx, start, result.Outfits)

	return result, nil
}

// synthesizeOutfitImages generates one image per outfit in sequence. Each
// outfit fails in isolation: on a generation error, on an exhausted time
// budget, or on cancellation it gets the placeholder and the rest of the
// response is unaffected.
func (s *fashionService) synthesizeOutfitImages(ctx context.Context, start time.Time, outfits []domain.Outfit) {
	softDeadline := start.Add(time.Duration(float64(s.timeBudget) * imageSynthesisBudgetFraction))

	for i := range outfits {
		if ctx.Err() != nil || time.Now().After(softDeadline) {
			outfits[i].ImageURL = domain.PlaceholderOutfitImage
			continue
		}

		imageURL, err := s.gemini.GenerateImage(ctx, outfits[i].ImagePrompt)
		if err != nil {
			s.logger.Warn("outfit image synthesis failed",
				zap.String("outfit", outfits[i].Name),
				zap.Error(err),
			)
			outfits[i].ImageURL = domain.PlaceholderOutfitImage
			continue
		}
		outfits[i].ImageURL = imageURL
	}
}

func readUpload(req domain.FashionRequest) ([]byte, string, error) {
	file, err := req.Image.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	mimeType := req.Image.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return imageBytes, mimeType, nil
}
