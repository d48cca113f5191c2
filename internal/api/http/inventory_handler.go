package http

import (
	"net/http"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type InventoryHandler struct {
	inventorySvc service.InventoryService
	quoteSvc     service.QuoteService
}

func NewInventoryHandler(inventorySvc service.InventoryService, quoteSvc service.QuoteService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc, quoteSvc: quoteSvc}
}

type inventoryListResponse struct {
	Records []domain.InventoryRecord `json:"records"`
	Summary domain.InventorySummary  `json:"summary"`
}

func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	records, err := h.inventorySvc.ListInventory(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	summary, err := h.inventorySvc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, inventoryListResponse{Records: records, Summary: summary})
}

func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	rec, err := h.inventorySvc.GetInventory(r.Context(), mux.Vars(r)["catalogId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, rec)
}

func (h *InventoryHandler) UpsertInventory(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	rec, err := h.inventorySvc.UpsertInventory(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, rec)
}

func (h *InventoryHandler) RemoveInventory(w http.ResponseWriter, r *http.Request) {
	if err := h.inventorySvc.RemoveInventory(r.Context(), mux.Vars(r)["catalogId"]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FulfillmentLists handles POST /api/inventory/fulfillment-lists for an
// ad-hoc item list, e.g. a cart that has not been quoted yet.
func (h *InventoryHandler) FulfillmentLists(w http.ResponseWriter, r *http.Request) {
	var req fulfillmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	result, err := h.quoteSvc.FulfillmentForItems(r.Context(), req.lineItems())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, result)
}
