package repository

import (
	"context"
	"errors"

	"equipment-rental-backend/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a conditional update matched no row
	// because the record changed underneath the caller.
	ErrConflict = errors.New("record was modified concurrently")
)

// EquipmentFilter narrows a catalog listing. Zero values mean "no filter".
type EquipmentFilter struct {
	Category     string
	Search       string // Matches name or SKU, case-insensitive
	Availability domain.Availability
	Page         int32
	PageSize     int32
}

type EquipmentRepository interface {
	List(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, int32, error)
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error)
	CountActive(ctx context.Context) (int32, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type InventoryRepository interface {
	List(ctx context.Context) ([]domain.InventoryRecord, error)
	// GetByCatalogID returns nil, nil when the business does not own the item.
	GetByCatalogID(ctx context.Context, catalogID string) (*domain.InventoryRecord, error)
	GetByCatalogIDs(ctx context.Context, catalogIDs []string) ([]domain.InventoryRecord, error)
	Upsert(ctx context.Context, record *domain.InventoryRecord) error
	Delete(ctx context.Context, catalogID string) error
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, status domain.QuoteStatus, page, pageSize int32) ([]domain.Quote, int32, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.QuoteStatus) error
	// ExpirePending moves pending quotes starting before the given yyyy-mm-dd
	// date to EXPIRED and returns their ids.
	ExpirePending(ctx context.Context, before string) ([]string, error)
}
