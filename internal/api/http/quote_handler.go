package http

import (
	"net/http"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type QuoteHandler struct {
	quoteSvc service.QuoteService
}

func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

func (h *QuoteHandler) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	preview, err := h.quoteSvc.PreviewQuote(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, mapPreview(preview))
}

func (h *QuoteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	q, err := h.quoteSvc.SubmitQuote(r.Context(), req.toService())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/quotes/"+q.ID)
	jsonData(w, http.StatusCreated, mapQuote(q))
}

func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
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
	status := domain.QuoteStatus(r.URL.Query().Get("status"))

	quotes, pagination, err := h.quoteSvc.ListQuotes(r.Context(), status, page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonPage(w, mapQuotes(quotes), pagination)
}

func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.quoteSvc.GetQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, mapQuote(q))
}

func (h *QuoteHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	q, err := h.quoteSvc.UpdateQuoteStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, mapQuote(q))
}

func (h *QuoteHandler) Fulfillment(w http.ResponseWriter, r *http.Request) {
	result, err := h.quoteSvc.FulfillmentForQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, result)
}
