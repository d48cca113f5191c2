package http

import (
	"context"
	"time"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/fulfillment"
	"equipment-rental-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListEquipment(ctx context.Context, filter service.CatalogFilter) ([]domain.Equipment, service.Pagination, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Get(1).(service.Pagination), args.Error(2)
}
func (m *MockCatalogService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockCatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}
func (m *MockInventoryService) GetInventory(ctx context.Context, catalogID string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}
func (m *MockInventoryService) UpsertInventory(ctx context.Context, input service.InventoryInput) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}
func (m *MockInventoryService) RemoveInventory(ctx context.Context, catalogID string) error {
	args := m.Called(ctx, catalogID)
	return args.Error(0)
}
func (m *MockInventoryService) Summary(ctx context.Context) (domain.InventorySummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.InventorySummary), args.Error(1)
}

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) PreviewQuote(ctx context.Context, req service.QuoteRequest) (*service.QuotePreview, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuotePreview), args.Error(1)
}
func (m *MockQuoteService) SubmitQuote(ctx context.Context, req service.QuoteRequest) (*domain.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteService) ListQuotes(ctx context.Context, status domain.QuoteStatus, page, limit int32) ([]domain.Quote, service.Pagination, error) {
	args := m.Called(ctx, status, page, limit)
	return args.Get(0).([]domain.Quote), args.Get(1).(service.Pagination), args.Error(2)
}
func (m *MockQuoteService) UpdateQuoteStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteService) FulfillmentForQuote(ctx context.Context, id string) (*fulfillment.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Result), args.Error(1)
}
func (m *MockQuoteService) FulfillmentForItems(ctx context.Context, items []domain.LineItem) (*fulfillment.Result, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Result), args.Error(1)
}
func (m *MockQuoteService) ExpireStaleQuotes(ctx context.Context, today time.Time) ([]string, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]string), args.Error(1)
}
