package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/fulfillment"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/pricing"
	"equipment-rental-backend/internal/repository"

	"github.com/google/uuid"
)

// quoteTransitions lists the statuses a quote may move to from each status.
var quoteTransitions = map[domain.QuoteStatus][]domain.QuoteStatus{
	domain.QuoteStatusPending:  {domain.QuoteStatusAccepted, domain.QuoteStatusRejected},
	domain.QuoteStatusAccepted: {domain.QuoteStatusFulfilled},
}

type quoteService struct {
	quoteRepo     repository.QuoteRepository
	equipmentRepo repository.EquipmentRepository
	inventoryRepo repository.InventoryRepository
	emailSvc      EmailService
	rates         pricing.Rates

	defaultPageSize int32
	maxPageSize     int32
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	equipmentRepo repository.EquipmentRepository,
	inventoryRepo repository.InventoryRepository,
	emailSvc EmailService,
	rates pricing.Rates,
	defaultPageSize, maxPageSize int32,
) QuoteService {
	return &quoteService{
		quoteRepo:       quoteRepo,
		equipmentRepo:   equipmentRepo,
		inventoryRepo:   inventoryRepo,
		emailSvc:        emailSvc,
		rates:           rates,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (s *quoteService) PreviewQuote(ctx context.Context, req QuoteRequest) (*QuotePreview, error) {
	logger.EnterMethod("quoteService.PreviewQuote", "items", len(req.Items))
	preview, err := s.price(ctx, req)
	if err != nil {
		logger.ExitMethodWithError("quoteService.PreviewQuote", err)
		return nil, err
	}
	logger.ExitMethod("quoteService.PreviewQuote", "total", preview.Result.Breakdown.Total, "final", preview.Result.IsFinal())
	return preview, nil
}

// price snapshots catalog rates for the cart and runs the calculator. Client
// supplied rates are never trusted.
func (s *quoteService) price(ctx context.Context, req QuoteRequest) (*QuotePreview, error) {
	period, err := pricing.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	items, err := s.snapshotItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	result, err := pricing.ComputeQuote(items, period, req.DeliveryRequired, req.DeliveryCost, s.rates)
	if err != nil {
		return nil, err
	}
	return &QuotePreview{Items: items, Period: period, Result: result}, nil
}

func (s *quoteService) snapshotItems(ctx context.Context, cart []CartItem) ([]domain.LineItem, error) {
	if len(cart) == 0 {
		return []domain.LineItem{}, nil
	}

	ids := make([]string, 0, len(cart))
	seen := make(map[string]bool, len(cart))
	for _, c := range cart {
		if strings.TrimSpace(c.EquipmentID) == "" {
			return nil, fmt.Errorf("%w: equipment id is required", ErrInvalidRequest)
		}
		if !validID(c.EquipmentID) {
			return nil, fmt.Errorf("%w: equipment %s is not in the catalog", ErrInvalidRequest, c.EquipmentID)
		}
		if !seen[c.EquipmentID] {
			seen[c.EquipmentID] = true
			ids = append(ids, c.EquipmentID)
		}
	}

	equipment, err := s.equipmentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Equipment, len(equipment))
	for _, e := range equipment {
		byID[e.ID] = e
	}

	items := make([]domain.LineItem, 0, len(cart))
	for _, c := range cart {
		e, ok := byID[c.EquipmentID]
		if !ok {
			return nil, fmt.Errorf("%w: equipment %s is not in the catalog", ErrInvalidRequest, c.EquipmentID)
		}
		items = append(items, domain.LineItem{
			EquipmentID:   e.ID,
			SKU:           e.SKU,
			Name:          e.Name,
			Category:      e.Category,
			UnitDailyRate: e.RetailPrice,
			Quantity:      c.Quantity,
		})
	}
	return items, nil
}

func (s *quoteService) SubmitQuote(ctx context.Context, req QuoteRequest) (*domain.Quote, error) {
	logger.EnterMethod("quoteService.SubmitQuote", "items", len(req.Items))

	client, err := validateClient(req.Client)
	if err != nil {
		logger.ExitMethodWithError("quoteService.SubmitQuote", err)
		return nil, err
	}
	if len(req.Items) == 0 {
		logger.ExitMethodWithError("quoteService.SubmitQuote", ErrEmptyQuote)
		return nil, ErrEmptyQuote
	}

	preview, err := s.price(ctx, req)
	if err != nil {
		logger.ExitMethodWithError("quoteService.SubmitQuote", err)
		return nil, err
	}

	id := uuid.New()
	q := &domain.Quote{
		ID:                 id.String(),
		Reference:          quoteReference(id),
		Client:             client,
		StartDate:          preview.Period.StartDate.Format(pricing.DateLayout),
		EndDate:            preview.Period.EndDate.Format(pricing.DateLayout),
		DurationDays:       preview.Result.DurationDays,
		DeliveryRequired:   req.DeliveryRequired,
		Items:              make([]domain.QuoteItem, len(preview.Items)),
		Pricing:            preview.Result.Breakdown,
		PricingUnavailable: preview.Result.PricingUnavailable,
		Notes:              strings.TrimSpace(req.Notes),
		Status:             domain.QuoteStatusPending,
	}
	for i, item := range preview.Items {
		q.Items[i] = domain.QuoteItem{LineItem: item, LineTotal: preview.Result.Lines[i].Total}
	}

	if err := s.quoteRepo.Create(ctx, q); err != nil {
		logger.ExitMethodWithError("quoteService.SubmitQuote", err)
		return nil, err
	}

	// Delivery problems never fail a stored quote.
	if err := s.emailSvc.SendQuoteConfirmation(ctx, q); err != nil {
		logger.Warn("Failed to send quote confirmation", "quoteID", q.ID, "error", err)
	}
	if err := s.emailSvc.SendQuoteNotification(ctx, q); err != nil {
		logger.Warn("Failed to send quote notification", "quoteID", q.ID, "error", err)
	}

	logger.ExitMethod("quoteService.SubmitQuote", "quoteID", q.ID, "reference", q.Reference)
	return q, nil
}

func validateClient(c domain.Client) (domain.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)

	if c.Name == "" {
		return c, fmt.Errorf("%w: client name is required", ErrInvalidRequest)
	}
	if c.Email == "" {
		return c, fmt.Errorf("%w: client email is required", ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, fmt.Errorf("%w: client email %q is not valid", ErrInvalidRequest, c.Email)
	}
	return c, nil
}

func quoteReference(id uuid.UUID) string {
	return "Q-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: quote %s", ErrNotFound, id)
	}
	q, err := s.quoteRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: quote %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, status domain.QuoteStatus, page, limit int32) ([]domain.Quote, Pagination, error) {
	if status != "" && !knownStatus(status) {
		return nil, Pagination{}, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status)
	}
	page, limit = normalizePage(page, limit, s.defaultPageSize, s.maxPageSize)

	quotes, total, err := s.quoteRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	return quotes, NewPagination(page, limit, total), nil
}

func knownStatus(status domain.QuoteStatus) bool {
	switch status {
	case domain.QuoteStatusPending, domain.QuoteStatusAccepted, domain.QuoteStatusRejected,
		domain.QuoteStatusFulfilled, domain.QuoteStatusExpired:
		return true
	}
	return false
}

func (s *quoteService) UpdateQuoteStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error) {
	logger.EnterMethod("quoteService.UpdateQuoteStatus", "quoteID", id, "status", status)

	q, err := s.GetQuote(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("quoteService.UpdateQuoteStatus", err)
		return nil, err
	}
	if !canTransition(q.Status, status) {
		err := fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, q.Status, status)
		logger.ExitMethodWithError("quoteService.UpdateQuoteStatus", err)
		return nil, err
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, q.Status, status); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			err = fmt.Errorf("%w: quote %s changed status concurrently", ErrInvalidStatusTransition, id)
		}
		logger.ExitMethodWithError("quoteService.UpdateQuoteStatus", err)
		return nil, err
	}

	q.Status = status
	logger.ExitMethod("quoteService.UpdateQuoteStatus", "quoteID", id, "status", status)
	return q, nil
}

func canTransition(from, to domain.QuoteStatus) bool {
	for _, allowed := range quoteTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *quoteService) FulfillmentForQuote(ctx context.Context, id string) (*fulfillment.Result, error) {
	q, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuoteStatusAccepted && q.Status != domain.QuoteStatusFulfilled {
		return nil, fmt.Errorf("%w: quote %s is %s", ErrQuoteNotAccepted, id, q.Status)
	}
	return s.FulfillmentForItems(ctx, q.LineItems())
}

// FulfillmentForItems fetches inventory for all items in one query and splits
// them into the owned pull list and the partner order list.
func (s *quoteService) FulfillmentForItems(ctx context.Context, items []domain.LineItem) (*fulfillment.Result, error) {
	logger.EnterMethod("quoteService.FulfillmentForItems", "items", len(items))

	if err := pricing.ValidateLineItems(items); err != nil {
		logger.ExitMethodWithError("quoteService.FulfillmentForItems", err)
		return nil, err
	}

	// A malformed id cannot have an inventory record; it is left out of the
	// lookup and lands on the partner list.
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if validID(item.EquipmentID) && !seen[item.EquipmentID] {
			seen[item.EquipmentID] = true
			ids = append(ids, item.EquipmentID)
		}
	}

	var records []domain.InventoryRecord
	if len(ids) > 0 {
		var err error
		records, err = s.inventoryRepo.GetByCatalogIDs(ctx, ids)
		if err != nil {
			logger.ExitMethodWithError("quoteService.FulfillmentForItems", err)
			return nil, err
		}
	}

	result, err := fulfillment.Split(ctx, items, fulfillment.MapLookup(records))
	if err != nil {
		logger.ExitMethodWithError("quoteService.FulfillmentForItems", err)
		return nil, err
	}

	logger.ExitMethod("quoteService.FulfillmentForItems", "owned", result.Summary.OwnedItemCount, "partner", result.Summary.PartnerItemCount)
	return &result, nil
}

func (s *quoteService) ExpireStaleQuotes(ctx context.Context, today time.Time) ([]string, error) {
	logger.EnterMethod("quoteService.ExpireStaleQuotes", "today", today.Format(pricing.DateLayout))
	ids, err := s.quoteRepo.ExpirePending(ctx, today.Format(pricing.DateLayout))
	if err != nil {
		logger.ExitMethodWithError("quoteService.ExpireStaleQuotes", err)
		return nil, err
	}
	logger.ExitMethod("quoteService.ExpireStaleQuotes", "expired", len(ids))
	return ids, nil
}
