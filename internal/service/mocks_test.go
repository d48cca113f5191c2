package service

import (
	"context"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Ids are UUIDs like the real catalog keys.
const (
	cameraID       = "3b6f0c1e-8a2d-4f7e-9c11-5d0a7e2b4c01"
	craneID        = "3b6f0c1e-8a2d-4f7e-9c11-5d0a7e2b4c02"
	unownedID      = "3b6f0c1e-8a2d-4f7e-9c11-5d0a7e2b4c09"
	unknownID      = "00000000-0000-4000-8000-000000000404"
	quoteID        = "9e4d2c70-51aa-4b38-8f06-2c7b1d9e0a01"
	pendingQuoteID = "9e4d2c70-51aa-4b38-8f06-2c7b1d9e0a02"
)

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) List(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) CountActive(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}
func (m *MockInventoryRepo) GetByCatalogID(ctx context.Context, catalogID string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}
func (m *MockInventoryRepo) GetByCatalogIDs(ctx context.Context, catalogIDs []string) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx, catalogIDs)
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}
func (m *MockInventoryRepo) Upsert(ctx context.Context, record *domain.InventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockInventoryRepo) Delete(ctx context.Context, catalogID string) error {
	args := m.Called(ctx, catalogID)
	return args.Error(0)
}

type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
func (m *MockQuoteRepo) List(ctx context.Context, status domain.QuoteStatus, page, pageSize int32) ([]domain.Quote, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Quote), args.Get(1).(int32), args.Error(2)
}
func (m *MockQuoteRepo) UpdateStatus(ctx context.Context, id string, from, to domain.QuoteStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockQuoteRepo) ExpirePending(ctx context.Context, before string) ([]string, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]string), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendQuoteConfirmation(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
func (m *MockEmailService) SendQuoteNotification(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}
