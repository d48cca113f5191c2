package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/pricing"
	"equipment-rental-backend/internal/service"
)

// maxBodyBytes bounds request bodies; carts and inventory edits are small.
const maxBodyBytes = 1 << 20

type envelope struct {
	Data       any                 `json:"data"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func jsonData(w http.ResponseWriter, status int, data any) {
	jsonResponse(w, status, envelope{Data: data})
}

func jsonPage(w http.ResponseWriter, data any, page service.Pagination) {
	jsonResponse(w, http.StatusOK, envelope{Data: data, Pagination: &page})
}

func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

// writeServiceError maps domain errors to status codes. Unknown errors are
// logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrEmptyQuote),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidDateRange):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrQuoteNotAccepted),
		errors.Is(err, service.ErrInvalidStatusTransition):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
	}
}

// queryInt32 reads an optional positive integer query parameter.
func queryInt32(r *http.Request, name string) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidRequest, name)
	}
	return int32(v), nil
}
