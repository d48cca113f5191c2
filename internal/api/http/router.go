package http

import (
	"net/http"

	"equipment-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type Services struct {
	Catalog   service.CatalogService
	Inventory service.InventoryService
	Quotes    service.QuoteService
}

// RegisterRoutes mounts the storefront API under /api.
func RegisterRoutes(router *mux.Router, svcs Services) {
	equipment := NewEquipmentHandler(svcs.Catalog)
	inventory := NewInventoryHandler(svcs.Inventory, svcs.Quotes)
	quotes := NewQuoteHandler(svcs.Quotes)

	// Routes sit on the root router with full paths. Inside a subrouter a
	// method mismatch is reported as 404 instead of 405.
	router.HandleFunc("/api/health", health).Methods("GET")

	// categories is registered before {id} so it is not taken for an id.
	router.HandleFunc("/api/equipment", equipment.ListEquipment).Methods("GET")
	router.HandleFunc("/api/equipment/categories", equipment.ListCategories).Methods("GET")
	router.HandleFunc("/api/equipment/{id}", equipment.GetEquipment).Methods("GET")

	router.HandleFunc("/api/inventory", inventory.ListInventory).Methods("GET")
	router.HandleFunc("/api/inventory", inventory.UpsertInventory).Methods("POST")
	router.HandleFunc("/api/inventory/fulfillment-lists", inventory.FulfillmentLists).Methods("POST")
	router.HandleFunc("/api/inventory/{catalogId}", inventory.GetInventory).Methods("GET")
	router.HandleFunc("/api/inventory/{catalogId}", inventory.RemoveInventory).Methods("DELETE")

	router.HandleFunc("/api/quotes/preview", quotes.PreviewQuote).Methods("POST")
	router.HandleFunc("/api/quotes", quotes.SubmitQuote).Methods("POST")
	router.HandleFunc("/api/quotes", quotes.ListQuotes).Methods("GET")
	router.HandleFunc("/api/quotes/{id}", quotes.GetQuote).Methods("GET")
	router.HandleFunc("/api/quotes/{id}/status", quotes.UpdateQuoteStatus).Methods("PATCH")
	router.HandleFunc("/api/quotes/{id}/fulfillment", quotes.Fulfillment).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// NewHandler builds the full HTTP stack: routes, CORS and request logging.
func NewHandler(svcs Services, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, svcs)
	return RequestLogger(CORS(allowedOrigins)(router))
}

func health(w http.ResponseWriter, r *http.Request) {
	jsonData(w, http.StatusOK, map[string]string{"status": "ok"})
}
