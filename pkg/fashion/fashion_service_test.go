package fashion

import (
	"StyleSnap-Backend/domain"
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeGemini struct {
	textOutput   string
	textErr      error
	imageOutputs []string
	imageErrs    []error
	imageCalls   int
}

func (f *fakeGemini) GenerateText(_ context.Context, _ string) (string, error) {
	return f.textOutput, f.textErr
}

func (f *fakeGemini) GenerateFromImage(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	return f.textOutput, f.textErr
}

func (f *fakeGemini) GenerateImage(_ context.Context, _ string) (string, error) {
	i := f.imageCalls
	f.imageCalls++
	if i < len(f.imageErrs) && f.imageErrs[i] != nil {
		return "", f.imageErrs[i]
	}
	if i < len(f.imageOutputs) {
		return f.imageOutputs[i], nil
	}
	return "data:image/png;base64,aW1n", nil
}

const recommendationOutput = `{
	"itemType": "denim jacket",
	"itemDescription": "A classic medium-wash denim jacket with button front.",
	"outfits": [
		{"name": "Casual Weekend", "description": "Relaxed layering.", "items": ["white tee", "black jeans"], "imagePrompt": "photo of casual weekend outfit"},
		{"name": "Smart Casual", "description": "Dressed-up denim.", "items": ["oxford shirt", "chinos"], "imagePrompt": "photo of smart casual outfit"},
		{"name": "Street", "description": "Streetwear take.", "items": ["hoodie", "cargo pants"]}
	],
	"stylingTips": ["Roll the sleeves.", "Keep colors neutral.", "Add white sneakers."]
}`

func newTestService(ai *fakeGemini) FashionService {
	return NewFashionService(ai, zap.NewNop())
}

func TestGetRecommendationsRequiresInput(t *testing.T) {
	service := newTestService(&fakeGemini{})

	_, err := service.GetRecommendations(context.Background(), domain.FashionRequest{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetRecommendationsTextOnly(t *testing.T) {
	ai := &fakeGemini{textOutput: recommendationOutput}
	service := newTestService(ai)

	result, err := service.GetRecommendations(context.Background(), domain.FashionRequest{
		Prompt: "outfits around my denim jacket",
		Gender: "male",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemType != "denim jacket" {
		t.Errorf("item type = %q", result.ItemType)
	}
	if len(result.Outfits) != 3 {
		t.Fatalf("got %d outfits, want 3", len(result.Outfits))
	}
	for i, outfit := range result.Outfits {
		if outfit.ImageURL == "" {
			t.Errorf("outfit %d has no image", i)
		}
		if outfit.ImagePrompt == "" {
			t.Errorf("outfit %d has no image prompt", i)
		}
	}
	if ai.imageCalls != 3 {
		t.Errorf("image generation called %d times, want 3", ai.imageCalls)
	}
}

func TestGetRecommendationsSynthesizesMissingImagePrompt(t *testing.T) {
	service := newTestService(&fakeGemini{textOutput: recommendationOutput})

	result, err := service.GetRecommendations(context.Background(), domain.FashionRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Third outfit came back without an imagePrompt.
	if result.Outfits[2].ImagePrompt == "" {
		t.Error("missing image prompt was not synthesized")
	}
}

func TestGetRecommendationsOutfitImageFailureIsIsolated(t *testing.T) {
	ai := &fakeGemini{
		textOutput:   recommendationOutput,
		imageOutputs: []string{"data:image/png;base64,b25l", "", "data:image/png;base64,dGhyZWU="},
		imageErrs:    []error{nil, errors.New("image model overloaded"), nil},
	}
	service := newTestService(ai)

	result, err := service.GetRecommendations(context.Background(), domain.FashionRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("one outfit's image failure must not fail the batch: %v", err)
	}

	if result.Outfits[0].ImageURL != "data:image/png;base64,b25l" {
		t.Errorf("outfit 0 image = %q", result.Outfits[0].ImageURL)
	}
	if result.Outfits[1].ImageURL != domain.PlaceholderOutfitImage {
		t.Errorf("failed outfit must get the placeholder, got %q", result.Outfits[1].ImageURL)
	}
	if result.Outfits[2].ImageURL != "data:image/png;base64,dGhyZWU=" {
		t.Errorf("outfit 2 image = %q", result.Outfits[2].ImageURL)
	}
}

func TestGetRecommendationsUnparseableOutput(t *testing.T) {
	service := newTestService(&fakeGemini{textOutput: "I can't help with that."})

	_, err := service.GetRecommendations(context.Background(), domain.FashionRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestGetRecommendationsIncompleteShape(t *testing.T) {
	service := newTestService(&fakeGemini{
		textOutput: `{"itemType": "jacket", "itemDescription": "a jacket", "outfits": [], "stylingTips": ["tip"]}`,
	})

	_, err := service.GetRecommendations(context.Background(), domain.FashionRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed for empty outfits, got %v", err)
	}
}

func TestGetRecommendationsModelFailure(t *testing.T) {
	service := newTestService(&fakeGemini{textErr: errors.New("quota exceeded")})

	_, err := service.GetRecommendations(context.Background(), domain.FashionRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrGeminiAPIFailed) {
		t.Fatalf("expected ErrGeminiAPIFailed, got %v", err)
	}
}

func TestGetRecommendationsCancelledSkipsImageSynthesis(t *testing.T) {
	ai := &fakeGemini{textOutput: recommendationOutput}
	service := newTestService(ai)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := service.GetRecommendations(ctx, domain.FashionRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ai.imageCalls != 0 {
		t.Errorf("image generation called %d times after cancellation", ai.imageCalls)
	}
	for i, outfit := range result.Outfits {
		if outfit.ImageURL != domain.PlaceholderOutfitImage {
			t.Errorf("outfit %d image = %q, want placeholder", i, outfit.ImageURL)
		}
	}
}
