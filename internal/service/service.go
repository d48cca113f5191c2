package service

import (
	"context"
	"errors"
	"time"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/fulfillment"
	"equipment-rental-backend/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrEmptyQuote              = errors.New("quote has no items")
	ErrQuoteNotAccepted        = errors.New("quote has not been accepted")
	ErrInvalidStatusTransition = errors.New("invalid quote status transition")
)

// validID reports whether id is a canonical UUID, the key format of every
// table. Malformed ids never reach the database.
func validID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

type CatalogFilter struct {
	Category     string
	Search       string
	Availability domain.Availability
	Page         int32
	Limit        int32
}

type Pagination struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	TotalCount int32 `json:"total_count"`
	TotalPages int32 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPagination(page, limit, total int32) Pagination {
	pages := int32(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}

type CatalogService interface {
	ListEquipment(ctx context.Context, filter CatalogFilter) ([]domain.Equipment, Pagination, error)
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// InventoryInput is an owner-entered stock record. Empty StorageLocation
// clears the location.
type InventoryInput struct {
	CatalogID       string
	QuantityOwned   int32
	StorageLocation string
	SerialNumbers   []string
	PurchasePrice   decimal.NullDecimal
}

type InventoryService interface {
	ListInventory(ctx context.Context) ([]domain.InventoryRecord, error)
	GetInventory(ctx context.Context, catalogID string) (*domain.InventoryRecord, error)
	UpsertInventory(ctx context.Context, input InventoryInput) (*domain.InventoryRecord, error)
	RemoveInventory(ctx context.Context, catalogID string) error
	Summary(ctx context.Context) (domain.InventorySummary, error)
}

type CartItem struct {
	EquipmentID string
	Quantity    int32
}

type QuoteRequest struct {
	Client           domain.Client
	StartDate        string
	EndDate          string
	DeliveryRequired bool
	DeliveryCost     decimal.Decimal
	Items            []CartItem
	Notes            string
}

// QuotePreview is a priced cart that has not been stored.
type QuotePreview struct {
	Items  []domain.LineItem
	Period pricing.RentalPeriod
	Result pricing.Result
}

type QuoteService interface {
	PreviewQuote(ctx context.Context, req QuoteRequest) (*QuotePreview, error)
	SubmitQuote(ctx context.Context, req QuoteRequest) (*domain.Quote, error)
	GetQuote(ctx context.Context, id string) (*domain.Quote, error)
	ListQuotes(ctx context.Context, status domain.QuoteStatus, page, limit int32) ([]domain.Quote, Pagination, error)
	UpdateQuoteStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error)
	FulfillmentForQuote(ctx context.Context, id string) (*fulfillment.Result, error)
	FulfillmentForItems(ctx context.Context, items []domain.LineItem) (*fulfillment.Result, error)
	// ExpireStaleQuotes expires pending quotes whose rental already started.
	ExpireStaleQuotes(ctx context.Context, today time.Time) ([]string, error)
}

type EmailService interface {
	SendQuoteConfirmation(ctx context.Context, quote *domain.Quote) error
	SendQuoteNotification(ctx context.Context, quote *domain.Quote) error
}
