package receipt

import (
	"StyleSnap-Backend/domain"
	"StyleSnap-Backend/entities"
	"StyleSnap-Backend/internal/utils"
	"StyleSnap-Backend/internal/utils/storage"
	"StyleSnap-Backend/pkg/currency"
	"StyleSnap-Backend/pkg/gemini"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		ProcessReceipt(ctx context.Context, req domain.ProcessReceiptRequest, userID string) (domain.ReceiptResponse, error)
		GetReceipts(ctx context.Context, userID string, page, limit int) ([]domain.ReceiptResponse, int64, error)
		GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error)
	}

	receiptService struct {
		receiptRepository  ReceiptRepository
		s3                 storage.AwsS3
		gemini             gemini.GeminiService
		currency           currency.CurrencyService
		settlementCurrency string
		logger             *zap.Logger
	}
)

func NewReceiptService(
	receiptRepository ReceiptRepository,
	s3 storage.AwsS3,
	geminiService gemini.GeminiService,
	currencyService currency.CurrencyService,
	logger *zap.Logger,
) ReceiptService {
	return &receiptService{
		receiptRepository:  receiptRepository,
		s3:                 s3,
		gemini:             geminiService,
		currency:           currencyService,
		settlementCurrency: utils.GetConfig("SETTLEMENT_CURRENCY"),
		logger:             logger,
	}
}

// ProcessReceipt runs the whole pipeline for one uploaded receipt image:
// temp upload, model extraction, sanitization, validation, currency
// normalization and conversion, tax-relief classification, persistence, and
// promotion of the temp upload. Cancellation is honored at stage boundaries,
// and the temp upload is deleted on every failure path.
func (s *receiptService) ProcessReceipt(ctx context.Context, req domain.ProcessReceiptRequest, userID string) (_ domain.ReceiptResponse, retErr error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ReceiptResponse{}, domain.ErrParseUUID
	}

	if err := stageCheckpoint(ctx); err != nil {
		return domain.ReceiptResponse{}, err
	}

	receiptID := uuid.New()
	tempKey, imageBytes, mimeType, err := s.uploadTemp(req, userID, receiptID)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	// Compensating cleanup: a failed pipeline must not leave the temp
	// upload behind, and a failed deletion must not mask the primary error.
	defer func() {
		if retErr != nil && tempKey != "" {
			if err := s.s3.DeleteFile(tempKey); err != nil {
				s.logger.Warn("failed to delete temporary receipt upload",
					zap.String("object_key", tempKey),
					zap.Error(err),
				)
			}
		}
	}()

	if err := stageCheckpoint(ctx); err != nil {
		return domain.ReceiptResponse{}, err
	}

	rawOutput, err := s.gemini.GenerateFromImage(ctx, extractionPrompt, imageBytes, mimeType)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ReceiptResponse{}, domain.ErrAborted
		}
		return domain.ReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrReceiptProcessingFailed, err)
	}

	if err := stageCheckpoint(ctx); err != nil {
		return domain.ReceiptResponse{}, err
	}

	jsonStr, err := gemini.ExtractJSONObject(rawOutput)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	extracted, err := ParseExtraction(jsonStr)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	currencyContext := domain.CurrencyContext{
		StoreLocation: extracted.StoreLocation,
		Language:      extracted.Language,
	}
	originCode := NormalizeCurrency(extracted.Currency, currencyContext)

	converted := false
	if extracted.CurrencyConverted && originCode != "" && originCode != s.settlementCurrency {
		if err := s.convertReceipt(ctx, extracted, originCode); err != nil {
			return domain.ReceiptResponse{}, err
		}
		converted = true
	}

	taxReliefCategory := s.classifyTaxRelief(ctx, extracted)

	if err := stageCheckpoint(ctx); err != nil {
		return domain.ReceiptResponse{}, err
	}

	imageKey := s.promoteUpload(tempKey, userID, receiptID)

	record := s.buildRecord(receiptID, userUUID, extracted, converted, originCode, taxReliefCategory, imageKey)
	if err := s.receiptRepository.CreateReceipt(ctx, record); err != nil {
		if imageKey != tempKey {
			// Promotion already happened; point cleanup at the new key.
			tempKey = imageKey
		}
		return domain.ReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	return toReceiptResponse(record), nil
}

func (s *receiptService) GetReceipts(ctx context.Context, userID string, page, limit int) ([]domain.ReceiptResponse, int64, error) {
	receipts, count, err := s.receiptRepository.GetReceipts(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		response = append(response, toReceiptResponse(r))
	}
	return response, count, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	if receipt.UserID.String() != userID {
		return domain.ReceiptResponse{}, domain.ErrUnauthorizedAccess
	}

	return toReceiptResponse(receipt), nil
}

func (s *receiptService) uploadTemp(req domain.ProcessReceiptRequest, userID string, receiptID uuid.UUID) (string, []byte, string, error) {
	file, err := req.ReceiptImage.Open()
	if err != nil {
		return "", nil, "", domain.ErrInvalidImageFormat
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return "", nil, "", domain.ErrInvalidImageFormat
	}

	mimeType := req.ReceiptImage.Header.Get("Content-Type")

	fileName := fmt.Sprintf("receipt-%s", receiptID.String())
	tempDir := fmt.Sprintf("receipts/tmp/%s", userID)
	tempKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, tempDir, storage.AllowImage...)
	if err != nil {
		return "", nil, "", err
	}

	return tempKey, imageBytes, mimeType, nil
}

// promoteUpload moves the temp object to its permanent location. Promotion
// failure is non-critical: the record keeps the temp URL.
func (s *receiptService) promoteUpload(tempKey string, userID string, receiptID uuid.UUID) string {
	ext := ".jpg"
	if idx := strings.LastIndex(tempKey, "."); idx != -1 {
		ext = tempKey[idx:]
	}
	permanentKey := fmt.Sprintf("receipts/%s/receipt-%s%s", userID, receiptID.String(), ext)

	if err := s.s3.MoveFile(tempKey, permanentKey); err != nil {
		s.logger.Warn("failed to promote receipt upload",
			zap.String("temp_key", tempKey),
			zap.Error(err),
		)
		return tempKey
	}
	return permanentKey
}

// convertReceipt applies one exchange rate to every monetary field in a
// single all-or-nothing pass. A failed rate lookup aborts the whole pass so
// no partially converted record can be persisted.
func (s *receiptService) convertReceipt(ctx context.Context, extracted *ExtractedReceipt, originCode string) error {
	rate, err := s.currency.GetRate(ctx, originCode, s.settlementCurrency)
	if err != nil {
		return err
	}

	for i := range extracted.Items {
		extracted.Items[i].Price = currency.Round2(extracted.Items[i].Price * rate)
	}
	extracted.Subtotal = currency.Round2(extracted.Subtotal * rate)
	if extracted.Tax != nil {
		extracted.Tax.Amount = currency.Round2(extracted.Tax.Amount * rate)
	}
	for i := range extracted.Discounts {
		extracted.Discounts[i].Amount = currency.Round2(extracted.Discounts[i].Amount * rate)
	}
	extracted.Total = currency.Round2(extracted.Total * rate)

	s.logger.Info("receipt currency converted",
		zap.String("from", originCode),
		zap.String("to", s.settlementCurrency),
		zap.Float64("rate", rate),
	)
	return nil
}

// classifyTaxRelief runs the secondary classification call. It is explicitly
// non-critical: any failure degrades to "no category".
func (s *receiptService) classifyTaxRelief(ctx context.Context, extracted *ExtractedReceipt) *string {
	prompt := buildTaxClassificationPrompt(extracted.StoreName, extracted.Items)

	rawOutput, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("tax relief classification failed", zap.Error(err))
		return nil
	}

	jsonStr, err := gemini.ExtractJSONObject(rawOutput)
	if err != nil {
		s.logger.Warn("tax relief classification returned no JSON", zap.Error(err))
		return nil
	}

	var result struct {
		Category *string `json:"category"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		s.logger.Warn("tax relief classification unparseable", zap.Error(err))
		return nil
	}

	if result.Category == nil || strings.TrimSpace(*result.Category) == "" {
		return nil
	}

	category := strings.ToLower(strings.TrimSpace(*result.Category))
	for _, valid := range taxReliefCategories {
		if category == valid {
			return &category
		}
	}
	return nil
}

func (s *receiptService) buildRecord(
	receiptID uuid.UUID,
	userUUID uuid.UUID,
	extracted *ExtractedReceipt,
	converted bool,
	originCode string,
	taxReliefCategory *string,
	imageKey string,
) *entities.Receipt {
	storeName := extracted.StoreName
	if storeName == "" {
		storeName = domain.UnknownStoreName
	}

	category := extracted.Category
	if category == "" {
		category = "Other"
	}

	record := &entities.Receipt{
		ID:     receiptID,
		UserID: userUUID,
		// The extracted date is not trusted; the processing date is
		// authoritative.
		TransactionDate:   time.Now(),
		StoreName:         storeName,
		Subtotal:          extracted.Subtotal,
		Total:             extracted.Total,
		ImageURL:          s.s3.GetPublicLinkKey(imageKey),
		Category:          category,
		TaxReliefCategory: taxReliefCategory,
		CurrencyConverted: converted,
	}
	if converted {
		record.OriginalCurrency = originCode
	}
	if extracted.Tax != nil {
		record.TaxRate = extracted.Tax.Rate
		record.TaxAmount = extracted.Tax.Amount
	}

	for _, item := range extracted.Items {
		record.Items = append(record.Items, &entities.ReceiptItem{
			ID:        uuid.New(),
			ReceiptID: receiptID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	for _, d := range extracted.Discounts {
		record.Discounts = append(record.Discounts, &entities.ReceiptDiscount{
			ID:          uuid.New(),
			ReceiptID:   receiptID,
			Description: d.Description,
			Amount:      d.Amount,
		})
	}

	return record
}

func stageCheckpoint(ctx context.Context) error {
	if ctx.Err() != nil {
		return domain.ErrAborted
	}
	return nil
}

func toReceiptResponse(record *entities.Receipt) domain.ReceiptResponse {
	response := domain.ReceiptResponse{
		ID:                record.ID.String(),
		StoreName:         record.StoreName,
		TransactionDate:   record.TransactionDate,
		Subtotal:          record.Subtotal,
		TaxRate:           record.TaxRate,
		TaxAmount:         record.TaxAmount,
		Total:             record.Total,
		ImageURL:          record.ImageURL,
		Category:          record.Category,
		TaxReliefCategory: record.TaxReliefCategory,
		CurrencyConverted: record.CurrencyConverted,
		OriginalCurrency:  record.OriginalCurrency,
		CreatedAt:         record.CreatedAt,
	}
	for _, item := range record.Items {
		response.Items = append(response.Items, domain.ReceiptItemResponse{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	for _, d := range record.Discounts {
		response.Discounts = append(response.Discounts, domain.ReceiptDiscountResponse{
			Description: d.Description,
			Amount:      d.Amount,
		})
	}
	return response
}
