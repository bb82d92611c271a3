package handlers

import (
	"StyleSnap-Backend/domain"
	"StyleSnap-Backend/internal/api/presenters"
	"StyleSnap-Backend/pkg/fashion"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FashionHandler interface {
		GetRecommendations(c *fiber.Ctx) error
	}

	fashionHandler struct {
		fashionService fashion.FashionService
		validator      *validator.Validate
	}
)

func NewFashionHandler(fashionService fashion.FashionService, validator *validator.Validate) FashionHandler {
	return &fashionHandler{
		fashionService: fashionService,
		validator:      validator,
	}
}

func (h *fashionHandler) GetRecommendations(c *fiber.Ctx) error {
	req := new(domain.FashionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Image is optional; missing file is not an error here.
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecommendations, err)
	}

	resp, err := h.fashionService.GetRecommendations(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMissingInput, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendations, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetRecommendations)
}
