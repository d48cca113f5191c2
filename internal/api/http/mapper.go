package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/pricing"
	"equipment-rental-backend/internal/service"

	"github.com/shopspring/decimal"
)

type priceDisplay struct {
	LineItemsTotal string `json:"line_items_total"`
	Insurance      string `json:"insurance"`
	Delivery       string `json:"delivery"`
	Subtotal       string `json:"subtotal"`
	Tax            string `json:"tax"`
	Total          string `json:"total"`
}

type pricingResponse struct {
	domain.PriceBreakdown
	Display priceDisplay `json:"display"`
}

func mapBreakdown(b domain.PriceBreakdown) pricingResponse {
	return pricingResponse{
		PriceBreakdown: b,
		Display: priceDisplay{
			LineItemsTotal: pricing.FormatCurrency(b.LineItemsTotal),
			Insurance:      pricing.FormatCurrency(b.Insurance),
			Delivery:       pricing.FormatCurrency(b.Delivery),
			Subtotal:       pricing.FormatCurrency(b.Subtotal),
			Tax:            pricing.FormatCurrency(b.Tax),
			Total:          pricing.FormatCurrency(b.Total),
		},
	}
}

type previewLine struct {
	domain.LineItem
	LineTotal          decimal.Decimal `json:"line_total"`
	PricingUnavailable bool            `json:"pricing_unavailable"`
}

type previewResponse struct {
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	DurationDays       int32           `json:"duration_days"`
	Items              []previewLine   `json:"items"`
	Pricing            pricingResponse `json:"pricing"`
	PricingUnavailable []string        `json:"pricing_unavailable"`
	Empty              bool            `json:"empty"`
	Final              bool            `json:"final"`
}

func mapPreview(p *service.QuotePreview) previewResponse {
	lines := make([]previewLine, len(p.Items))
	for i, item := range p.Items {
		lines[i] = previewLine{
			LineItem:           item,
			LineTotal:          p.Result.Lines[i].Total,
			PricingUnavailable: p.Result.Lines[i].PricingUnavailable,
		}
	}
	return previewResponse{
		StartDate:          p.Period.StartDate.Format(pricing.DateLayout),
		EndDate:            p.Period.EndDate.Format(pricing.DateLayout),
		DurationDays:       p.Result.DurationDays,
		Items:              lines,
		Pricing:            mapBreakdown(p.Result.Breakdown),
		PricingUnavailable: p.Result.PricingUnavailable,
		Empty:              p.Result.Empty,
		Final:              p.Result.IsFinal(),
	}
}

// quoteResponse replaces the raw breakdown with one carrying a display block.
type quoteResponse struct {
	*domain.Quote
	Pricing pricingResponse `json:"pricing"`
}

func mapQuote(q *domain.Quote) quoteResponse {
	if q.Items == nil {
		q.Items = []domain.QuoteItem{}
	}
	if q.PricingUnavailable == nil {
		q.PricingUnavailable = []string{}
	}
	return quoteResponse{Quote: q, Pricing: mapBreakdown(q.Pricing)}
}

func mapQuotes(quotes []domain.Quote) []quoteResponse {
	out := make([]quoteResponse, len(quotes))
	for i := range quotes {
		out[i] = mapQuote(&quotes[i])
	}
	return out
}

// Responses are snake_case throughout. Request bodies keep the camelCase
// field names the storefront forms post.

type cartItemRequest struct {
	EquipmentID string `json:"equipmentId"`
	Quantity    int32  `json:"quantity"`
}

type quoteRequest struct {
	ClientName       string            `json:"clientName"`
	ClientEmail      string            `json:"clientEmail"`
	ClientPhone      string            `json:"clientPhone"`
	ClientCompany    string            `json:"clientCompany"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	DeliveryRequired bool              `json:"deliveryRequired"`
	DeliveryCost     decimal.Decimal   `json:"deliveryCost"`
	Items            []cartItemRequest `json:"items"`
	Notes            string            `json:"notes"`
}

func (req quoteRequest) toService() service.QuoteRequest {
	items := make([]service.CartItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.CartItem{EquipmentID: it.EquipmentID, Quantity: it.Quantity}
	}
	return service.QuoteRequest{
		Client: domain.Client{
			Name:    req.ClientName,
			Email:   req.ClientEmail,
			Phone:   req.ClientPhone,
			Company: req.ClientCompany,
		},
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		DeliveryRequired: req.DeliveryRequired,
		DeliveryCost:     req.DeliveryCost,
		Items:            items,
		Notes:            req.Notes,
	}
}

type statusRequest struct {
	Status domain.QuoteStatus `json:"status"`
}

type fulfillmentItemRequest struct {
	EquipmentID string `json:"equipmentId"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int32  `json:"quantity"`
}

type fulfillmentRequest struct {
	Items []fulfillmentItemRequest `json:"items"`
}

func (req fulfillmentRequest) lineItems() []domain.LineItem {
	items := make([]domain.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.LineItem{
			EquipmentID: it.EquipmentID,
			SKU:         it.SKU,
			Name:        it.Name,
			Quantity:    it.Quantity,
		}
	}
	return items
}

// serialList accepts either a JSON array or the comma separated text the
// inventory form submits.
type serialList []string

func (s *serialList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("serialNumbers must be an array or a comma separated string")
	}
	*s = strings.Split(text, ",")
	return nil
}

type inventoryRequest struct {
	CatalogID       string              `json:"catalogId"`
	QuantityOwned   int32               `json:"quantityOwned"`
	StorageLocation string              `json:"storageLocation"`
	SerialNumbers   serialList          `json:"serialNumbers"`
	PurchasePrice   decimal.NullDecimal `json:"purchasePrice"`
}

func (req inventoryRequest) toService() service.InventoryInput {
	return service.InventoryInput{
		CatalogID:       req.CatalogID,
		QuantityOwned:   req.QuantityOwned,
		StorageLocation: req.StorageLocation,
		SerialNumbers:   req.SerialNumbers,
		PurchasePrice:   req.PurchasePrice,
	}
}
