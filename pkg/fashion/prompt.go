package fashion

import (
	"StyleSnap-Backend/domain"
	"fmt"
	"strings"
)

const responseShape = `Respond ONLY with a single valid JSON object, no markdown, no code fences, no text before or after:
{
  "itemType": "<what kind of clothing item or request this is>",
  "itemDescription": "<one paragraph describing the analyzed item or request>",
  "outfits": [
    {
      "name": "<short outfit name>",
      "description": "<how the outfit works and why>",
      "items": ["<piece 1>", "<piece 2>"],
      "imagePrompt": "<a self-contained prompt for generating a photo of this full outfit on a model>"
    }
  ],
  "stylingTips": ["<tip 1>", "<tip 2>"]
}

Always return at least 3 outfits and at least 3 styling tips.`

// buildFashionPrompt turns the request fields into the guideline-conditioned
// instruction for the recommendation call.
func buildFashionPrompt(req domain.FashionRequest) string {
	var b strings.Builder

	b.WriteString("You are a professional fashion stylist. ")
	if req.Image != nil {
		b.WriteString("Analyze the clothing item in the attached image and recommend complete outfits built around it.\n")
	} else {
		b.WriteString("Recommend complete outfits for the following request.\n")
	}

	if req.Prompt != "" {
		fmt.Fprintf(&b, "User request: %s\n", req.Prompt)
	}

	switch req.Gender {
	case "male":
		b.WriteString("Style the outfits for men.\n")
	case "female":
		b.WriteString("Style the outfits for women.\n")
	case "cat":
		b.WriteString("Style the outfits for a cat. Treat this seriously and recommend real cat apparel.\n")
	}

	if req.HalalMode {
		b.WriteString("STRICT MODESTY RULES: all outfits must be modest and halal-appropriate. Cover aurat: long sleeves, loose fits, no tight or revealing pieces, ankle-length bottoms. For women include a hijab-friendly composition.\n")
	}

	if req.StylePreference != "" {
		fmt.Fprintf(&b, "Preferred style: %s.\n", req.StylePreference)
	}
	if req.Season != "" {
		fmt.Fprintf(&b, "Season: %s.\n", req.Season)
	}
	if req.Occasion != "" {
		fmt.Fprintf(&b, "Occasion: %s.\n", req.Occasion)
	}

	b.WriteString("\n")
	b.WriteString(responseShape)
	return b.String()
}

// buildOutfitImagePrompt synthesizes an image prompt for outfits the model
// returned without one.
func buildOutfitImagePrompt(outfit domain.Outfit, gender string) string {
	subject := "a person"
	switch gender {
	case "male":
		subject = "a male model"
	case "female":
		subject = "a female model"
	case "cat":
		subject = "a cat"
	}

	return fmt.Sprintf(
		"Full-body fashion photograph of %s wearing: %s. %s Studio lighting, neutral background, photorealistic.",
		subject,
		strings.Join(outfit.Items, ", "),
		outfit.Description,
	)
}
