// Package fulfillment partitions a quote's line items into what is pulled
// from owned stock and what must be ordered from a rental partner.
package fulfillment

import (
	"context"
	"fmt"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/pricing"
)

// Lookup resolves a catalog id to its inventory record. A nil record with a
// nil error means the business does not own the item.
type Lookup func(ctx context.Context, catalogID string) (*domain.InventoryRecord, error)

type Entry struct {
	EquipmentID     string   `json:"equipment_id"`
	SKU             string   `json:"sku"`
	Name            string   `json:"name"`
	Quantity        int32    `json:"quantity"`
	StorageLocation *string  `json:"storage_location,omitempty"`
	SerialNumbers   []string `json:"serial_numbers,omitempty"`
}

type Summary struct {
	OwnedItemCount   int `json:"owned_item_count"`
	PartnerItemCount int `json:"partner_item_count"`
	TotalItemCount   int `json:"total_item_count"`
}

type Result struct {
	OwnedPullList    []Entry `json:"owned_pull_list"`
	PartnerOrderList []Entry `json:"partner_order_list"`
	Summary          Summary `json:"summary"`
}

// Split classifies every item exactly once, keeping input order within each
// list. Requested quantities are not checked against available stock and
// serial numbers are reported, not allocated.
func Split(ctx context.Context, items []domain.LineItem, lookup Lookup) (Result, error) {
	if err := validate(items); err != nil {
		return Result{}, err
	}

	result := Result{
		OwnedPullList:    []Entry{},
		PartnerOrderList: []Entry{},
	}

	for _, item := range items {
		record, err := lookup(ctx, item.EquipmentID)
		if err != nil {
			return Result{}, fmt.Errorf("looking up inventory for %s: %w", item.EquipmentID, err)
		}

		entry := Entry{
			EquipmentID: item.EquipmentID,
			SKU:         item.SKU,
			Name:        item.Name,
			Quantity:    item.Quantity,
		}
		if record == nil {
			result.PartnerOrderList = append(result.PartnerOrderList, entry)
			continue
		}

		if record.StorageLocation != nil {
			loc := *record.StorageLocation
			entry.StorageLocation = &loc
		}
		if len(record.SerialNumbers) > 0 {
			entry.SerialNumbers = append([]string(nil), record.SerialNumbers...)
		}
		result.OwnedPullList = append(result.OwnedPullList, entry)
	}

	result.Summary = Summary{
		OwnedItemCount:   len(result.OwnedPullList),
		PartnerItemCount: len(result.PartnerOrderList),
		TotalItemCount:   len(items),
	}
	return result, nil
}

func validate(items []domain.LineItem) error {
	for i, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d (%s): quantity must be positive, got %d", pricing.ErrInvalidInput, i, item.EquipmentID, item.Quantity)
		}
	}
	return nil
}

// MapLookup serves lookups from records fetched up front in one batch.
func MapLookup(records []domain.InventoryRecord) Lookup {
	byCatalogID := make(map[string]*domain.InventoryRecord, len(records))
	for i := range records {
		byCatalogID[records[i].CatalogID] = &records[i]
	}
	return func(_ context.Context, catalogID string) (*domain.InventoryRecord, error) {
		return byCatalogID[catalogID], nil
	}
}
