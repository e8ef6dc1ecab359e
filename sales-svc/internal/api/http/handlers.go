package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pizzaria-veneza/sales-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Reports service.ReportsInterface
}

func NewHandler(reports service.ReportsInterface) *Handler {
	return &Handler{Reports: reports}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "sales-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/sales/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/sales/revenue-today", h.getRevenueToday).Methods("GET")
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	data, err := h.Reports.TopToday(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) getRevenueToday(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.Reports.RevenueToday(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(revenue)
}
