package http

import (
	"net/http"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	catalogSvc service.CatalogService
}

func NewEquipmentHandler(catalogSvc service.CatalogService) *EquipmentHandler {
	return &EquipmentHandler{catalogSvc: catalogSvc}
}

// ListEquipment handles GET /api/equipment?category=&search=&availability=&page=&limit=
func (h *EquipmentHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt32(r, "page")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	limit, err := queryInt32(r, "limit")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	items, pagination, err := h.catalogSvc.ListEquipment(r.Context(), service.CatalogFilter{
		Category:     q.Get("category"),
		Search:       q.Get("search"),
		Availability: domain.Availability(q.Get("availability")),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonPage(w, items, pagination)
}

func (h *EquipmentHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	e, err := h.catalogSvc.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, e)
}

func (h *EquipmentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogSvc.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, categories)
}
