package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessGetRecommendations = "outfit recommendations generated successfully"

	MessageFailedGetRecommendations = "failed to generate outfit recommendations"
	MessageFailedMissingInput       = "either an image or a description is required"

	ErrInvalidInput     = errors.New("neither image nor text supplied")
	ErrExtractionFailed = errors.New("model output not parseable as JSON")
	ErrGeminiAPIFailed  = errors.New("gemini API processing failed")
)

// PlaceholderOutfitImage is substituted when image synthesis fails for a
// single outfit. One outfit's failure never fails the batch.
const PlaceholderOutfitImage = "https://placehold.co/512x768?text=Outfit+Preview"

type (
	FashionRequest struct {
		Image           *multipart.FileHeader `json:"image" form:"image"`
		Prompt          string                `json:"prompt" form:"prompt"`
		Gender          string                `json:"gender" form:"gender" validate:"omitempty,oneof=male female cat"`
		HalalMode       bool                  `json:"halalMode" form:"halalMode"`
		StylePreference string                `json:"stylePreference" form:"stylePreference"`
		Season          string                `json:"season" form:"season"`
		Occasion        string                `json:"occasion" form:"occasion"`
	}

	Outfit struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Items       []string `json:"items"`
		ImagePrompt string   `json:"imagePrompt,omitempty"`
		ImageURL    string   `json:"imageUrl,omitempty"`
	}

	FashionResponse struct {
		ItemType        string   `json:"itemType"`
		ItemDescription string   `json:"itemDescription"`
		Outfits         []Outfit `json:"outfits"`
		StylingTips     []string `json:"stylingTips"`
	}
)
