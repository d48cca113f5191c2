package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Availability string

const (
	AvailabilityInHouse Availability = "in-house"
	AvailabilityPartner Availability = "partner"
)

type Equipment struct {
	ID           string              `json:"id"`
	SKU          string              `json:"sku"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	SubCategory  string              `json:"sub_category"`
	PartnerPrice decimal.NullDecimal `json:"partner_price"`
	RetailPrice  decimal.NullDecimal `json:"retail_price"` // per day; null means call for pricing
	ImageURL     string              `json:"image_url"`
	Tags         []string            `json:"tags"`
	IsActive     bool                `json:"is_active"`
	CreatedAt    time.Time           `json:"created_at"`
	InHouse      *InventoryRecord    `json:"in_house"` // Populated when joined with in-house inventory
	Availability Availability        `json:"availability"`
}

// ResolveAvailability marks the item in-house only when stock is on the shelf.
func (e *Equipment) ResolveAvailability() {
	if e.InHouse != nil && e.InHouse.QuantityAvailable > 0 {
		e.Availability = AvailabilityInHouse
		return
	}
	e.Availability = AvailabilityPartner
}

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int32  `json:"display_order"`
}
