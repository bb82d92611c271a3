package handlers

import (
	"StyleSnap-Backend/domain"
	"StyleSnap-Backend/internal/api/presenters"
	"StyleSnap-Backend/pkg/receipt"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		ProcessReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetReceiptByID(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) ProcessReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidImageFormat)
	}

	req := domain.ProcessReceiptRequest{ReceiptImage: file}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessReceipt, err)
	}

	resp, err := h.receiptService.ProcessReceipt(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, receiptErrorStatus(err), domain.MessageFailedProcessReceipt, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessProcessReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	receipts, count, err := h.receiptService.GetReceipts(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"receipts": receipts,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) GetReceiptByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	resp, err := h.receiptService.GetReceiptByID(c.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReceiptNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReceipt, err)
		case errors.Is(err, domain.ErrUnauthorizedAccess):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetReceipt, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipt, err)
		}
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetReceipt)
}

// receiptErrorStatus maps pipeline failures onto HTTP statuses. Client-side
// problems (bad upload, not a receipt, unreadable receipt) are 4xx; upstream
// dependency failures are 5xx.
func receiptErrorStatus(err error) int {
	var notReceipt *domain.NotAReceiptError
	var extraction *domain.ExtractionError

	switch {
	case errors.Is(err, domain.ErrInvalidImageFormat), errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.As(err, &notReceipt), errors.Is(err, domain.ErrIncompleteReceipt):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAborted):
		return fiber.StatusRequestTimeout
	case errors.Is(err, domain.ErrConversionUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &extraction):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
