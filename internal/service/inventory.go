package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/repository"
)

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	equipmentRepo repository.EquipmentRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, equipmentRepo repository.EquipmentRepository) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		equipmentRepo: equipmentRepo,
	}
}

func (s *inventoryService) ListInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	records, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.InventoryRecord{}
	}
	return records, nil
}

func (s *inventoryService) GetInventory(ctx context.Context, catalogID string) (*domain.InventoryRecord, error) {
	if !validID(catalogID) {
		return nil, fmt.Errorf("%w: no in-house inventory for %s", ErrNotFound, catalogID)
	}
	rec, err := s.inventoryRepo.GetByCatalogID(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: no in-house inventory for %s", ErrNotFound, catalogID)
	}
	return rec, nil
}

func (s *inventoryService) UpsertInventory(ctx context.Context, input InventoryInput) (*domain.InventoryRecord, error) {
	logger.EnterMethod("inventoryService.UpsertInventory", "catalogID", input.CatalogID, "quantityOwned", input.QuantityOwned)

	if err := validateInventoryInput(input); err != nil {
		logger.ExitMethodWithError("inventoryService.UpsertInventory", err)
		return nil, err
	}

	// The catalog item must exist; inventory for unknown SKUs is rejected.
	if !validID(input.CatalogID) {
		err := fmt.Errorf("%w: equipment %s", ErrNotFound, input.CatalogID)
		logger.ExitMethodWithError("inventoryService.UpsertInventory", err)
		return nil, err
	}
	if _, err := s.equipmentRepo.GetByID(ctx, input.CatalogID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = fmt.Errorf("%w: equipment %s", ErrNotFound, input.CatalogID)
		}
		logger.ExitMethodWithError("inventoryService.UpsertInventory", err)
		return nil, err
	}

	rec := &domain.InventoryRecord{
		CatalogID:     input.CatalogID,
		QuantityOwned: input.QuantityOwned,
		SerialNumbers: cleanSerialNumbers(input.SerialNumbers),
		PurchasePrice: input.PurchasePrice,
	}
	if loc := strings.TrimSpace(input.StorageLocation); loc != "" {
		rec.StorageLocation = &loc
	}

	if err := s.inventoryRepo.Upsert(ctx, rec); err != nil {
		logger.ExitMethodWithError("inventoryService.UpsertInventory", err)
		return nil, err
	}

	logger.ExitMethod("inventoryService.UpsertInventory", "inventoryID", rec.ID)
	return rec, nil
}

func validateInventoryInput(input InventoryInput) error {
	if strings.TrimSpace(input.CatalogID) == "" {
		return fmt.Errorf("%w: catalog id is required", ErrInvalidRequest)
	}
	if input.QuantityOwned < 0 {
		return fmt.Errorf("%w: quantity owned must be >= 0, got %d", ErrInvalidRequest, input.QuantityOwned)
	}
	if input.PurchasePrice.Valid && input.PurchasePrice.Decimal.IsNegative() {
		return fmt.Errorf("%w: purchase price must be >= 0", ErrInvalidRequest)
	}
	return nil
}

// cleanSerialNumbers trims entries and drops blanks. Order is preserved.
func cleanSerialNumbers(serials []string) []string {
	cleaned := make([]string, 0, len(serials))
	for _, sn := range serials {
		if sn = strings.TrimSpace(sn); sn != "" {
			cleaned = append(cleaned, sn)
		}
	}
	return cleaned
}

func (s *inventoryService) RemoveInventory(ctx context.Context, catalogID string) error {
	logger.EnterMethod("inventoryService.RemoveInventory", "catalogID", catalogID)
	if !validID(catalogID) {
		err := fmt.Errorf("%w: no in-house inventory for %s", ErrNotFound, catalogID)
		logger.ExitMethodWithError("inventoryService.RemoveInventory", err)
		return err
	}
	err := s.inventoryRepo.Delete(ctx, catalogID)
	if errors.Is(err, repository.ErrNotFound) {
		err = fmt.Errorf("%w: no in-house inventory for %s", ErrNotFound, catalogID)
	}
	if err != nil {
		logger.ExitMethodWithError("inventoryService.RemoveInventory", err)
		return err
	}
	logger.ExitMethod("inventoryService.RemoveInventory", "catalogID", catalogID)
	return nil
}

// Summary counts catalog SKUs by fulfillment source. Every active SKU without
// an inventory record is a partner SKU.
func (s *inventoryService) Summary(ctx context.Context) (domain.InventorySummary, error) {
	total, err := s.equipmentRepo.CountActive(ctx)
	if err != nil {
		return domain.InventorySummary{}, err
	}
	records, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return domain.InventorySummary{}, err
	}

	inHouse := int32(len(records))
	partner := total - inHouse
	if partner < 0 {
		partner = 0
	}
	return domain.InventorySummary{
		TotalSKUs:   total,
		InHouseSKUs: inHouse,
		PartnerSKUs: partner,
	}, nil
}
