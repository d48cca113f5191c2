package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord describes stock the business owns for one catalog item.
// A catalog item without a record is fulfilled through a rental partner.
type InventoryRecord struct {
	ID                string              `json:"id"`
	CatalogID         string              `json:"catalog_id"`
	QuantityOwned     int32               `json:"quantity_owned"`
	QuantityAvailable int32               `json:"quantity_available"`
	StorageLocation   *string             `json:"storage_location,omitempty"`
	SerialNumbers     []string            `json:"serial_numbers"`
	PurchasePrice     decimal.NullDecimal `json:"purchase_price"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type InventorySummary struct {
	TotalSKUs   int32 `json:"total_skus"`
	InHouseSKUs int32 `json:"in_house_skus"`
	PartnerSKUs int32 `json:"partner_skus"`
}
