package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/pricing"
	"pizzaria-veneza/pos-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Handler exposes one point-of-sale session over HTTP. Every request that
// touches the session runs under a single lock, one event at a time.
type Handler struct {
	Session    *service.Session
	Calculator *pricing.Calculator
	QR         service.QRGenerator

	mu sync.Mutex
}

func NewHandler(session *service.Session, calc *pricing.Calculator, qr service.QRGenerator) *Handler {
	return &Handler{
		Session:    session,
		Calculator: calc,
		QR:         qr,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/pricing/quote", h.quote).Methods("POST")

	r.HandleFunc("/api/cart", h.serial(h.getCart)).Methods("GET")
	r.HandleFunc("/api/cart", h.serial(h.clearCart)).Methods("DELETE")
	r.HandleFunc("/api/cart/identification", h.serial(h.setIdentification)).Methods("PUT")
	r.HandleFunc("/api/cart/items", h.serial(h.addCartItem)).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.serial(h.updateCartItem)).Methods("PATCH")
	r.HandleFunc("/api/cart/items/{itemId}", h.serial(h.removeCartItem)).Methods("DELETE")

	r.HandleFunc("/api/orders", h.serial(h.createOrder)).Methods("POST")
	r.HandleFunc("/api/orders", h.serial(h.getOrders)).Methods("GET")
	r.HandleFunc("/api/orders/board", h.serial(h.getBoard)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.serial(h.getOrder)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.serial(h.updateOrder)).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}", h.serial(h.deleteOrder)).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/status", h.serial(h.setStatus)).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/advance", h.serial(h.advanceStatus)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/items", h.serial(h.addOrderItem)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/items/{itemId}", h.serial(h.updateOrderItem)).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/items/{itemId}", h.serial(h.deleteOrderItem)).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/qrcode", h.serial(h.getOrderQRCode)).Methods("GET")
}

// serial holds the session lock for the whole request and answers 503
// until the stored state has been loaded.
func (h *Handler) serial(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Session.Ready() {
			http.Error(w, "Session is still loading", http.StatusServiceUnavailable)
			return
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		next(w, r)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.Session.Ready() {
		status = "loading"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"service":   "pos-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Calculator.Catalog())
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var sel pricing.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.Calculator.Quote(sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type cartView struct {
	Items     []domain.LineItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
	Table     string            `json:"table,omitempty"`
	Customer  string            `json:"customer,omitempty"`
}

func (h *Handler) cartView() cartView {
	cart := h.Session.Cart
	table, customer := cart.Identification()
	return cartView{
		Items:     cart.Items(),
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		Table:     table,
		Customer:  customer,
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Session.Cart.Clear()
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) setIdentification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Table    string `json:"table"`
		Customer string `json:"customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Session.Cart.SetIdentification(body.Table, body.Customer)
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.buildItem(w, r)
	if !ok {
		return
	}
	added, err := h.Session.Cart.AddItem(item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var update service.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	found, err := h.Session.Cart.UpdateItem(mux.Vars(r)["itemId"], update)
	if !found {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if !h.Session.Cart.RemoveItem(mux.Vars(r)["itemId"]) {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Session.Orders.CreateFromCart(h.Session.Cart)
	if !ok {
		http.Error(w, "Cart is empty", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		writeJSON(w, http.StatusOK, h.Session.Orders.Orders())
		return
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.Session.Orders.ByStatus(status))
}

func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Orders.Board())
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Session.Orders.GetByID(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// updateOrder accepts a partial order; a "total" field is ignored because
// the total always follows the items.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var update service.OrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respondWithOrder(w, r, func(id string) (bool, error) {
		return h.Session.Orders.UpdateOrder(id, update)
	})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if !h.Session.Orders.DeleteOrder(mux.Vars(r)["id"]) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !body.Status.Valid() {
		writeError(w, domain.ErrUnknownStatus)
		return
	}
	h.respondWithOrder(w, r, func(id string) (bool, error) {
		return h.Session.Orders.SetStatus(id, body.Status)
	})
}

func (h *Handler) advanceStatus(w http.ResponseWriter, r *http.Request) {
	h.respondWithOrder(w, r, func(id string) (bool, error) {
		_, found := h.Session.Orders.AdvanceStatus(id)
		return found, nil
	})
}

func (h *Handler) addOrderItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.buildItem(w, r)
	if !ok {
		return
	}
	h.respondWithOrder(w, r, func(id string) (bool, error) {
		_, found, err := h.Session.Orders.AddOrderItem(id, item)
		return found, err
	})
}

func (h *Handler) updateOrderItem(w http.ResponseWriter, r *http.Request) {
	var update service.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemID := mux.Vars(r)["itemId"]
	h.respondWithOrder(w, r, func(id string) (bool, error) {
		return h.Session.Orders.UpdateOrderItem(id, itemID, update)
	})
}

func (h *Handler) deleteOrderItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	h.respondWithOrder(w, r, func(id string) (bool, error) {
		return h.Session.Orders.DeleteOrderItem(id, itemID), nil
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if _, ok := h.Session.Orders.GetByID(orderID); !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	qrCode, err := h.QR.Generate(orderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(qrCode)
}

// respondWithOrder runs a mutation on the order named in the path and
// answers with the order as it stands afterwards.
func (h *Handler) respondWithOrder(w http.ResponseWriter, r *http.Request, mutate func(id string) (bool, error)) {
	id := mux.Vars(r)["id"]
	found, err := mutate(id)
	if !found {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	order, _ := h.Session.Orders.GetByID(id)
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) buildItem(w http.ResponseWriter, r *http.Request) (domain.LineItem, bool) {
	var sel pricing.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return domain.LineItem{}, false
	}
	item, err := h.Calculator.Build(sel)
	if err != nil {
		writeError(w, err)
		return domain.LineItem{}, false
	}
	return item, true
}

var badRequestErrors = []error{
	pricing.ErrUnknownPizza,
	pricing.ErrUnknownSize,
	pricing.ErrUnknownCrust,
	pricing.ErrUnknownAddOn,
	pricing.ErrDuplicateAddOn,
	pricing.ErrUnknownItem,
	pricing.ErrUnknownFlavor,
	pricing.ErrNotCustomizable,
	pricing.ErrUnknownSelection,
	service.ErrNegativePrice,
	domain.ErrUnknownStatus,
	domain.ErrUnknownKind,
}

func writeError(w http.ResponseWriter, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
