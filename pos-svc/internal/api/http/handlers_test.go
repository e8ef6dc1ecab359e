package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/menu"
	"pizzaria-veneza/pos-svc/internal/mocks"
	"pizzaria-veneza/pos-svc/internal/pricing"
	"pizzaria-veneza/pos-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pizzaBody = `{"kind":"pizza","pizza_id":"05","size":"medium","crust":"Catupiry","add_ons":["Bacon"],"quantity":2}`

type harness struct {
	router  *mux.Router
	session *service.Session
	qr      *mocks.QRGenerator
}

func newHarness(t *testing.T, load bool) harness {
	t.Helper()
	log, _ := test.NewNullLogger()
	calc := pricing.NewCalculator(menu.Default())
	session := service.NewSession(calc, nil, log)
	if load {
		session.Load(context.Background())
	}
	qr := mocks.NewQRGenerator(t)

	r := mux.NewRouter()
	NewHandler(session, calc, qr).RegisterRoutes(r)
	return harness{router: r, session: session, qr: qr}
}

func (h harness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestHealthCheck(t *testing.T) {
	h := newHarness(t, true)
	w := h.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, "pos-svc", body["service"])
	assert.Equal(t, "healthy", body["status"])
}

func TestSessionNotLoadedAnswers503(t *testing.T) {
	h := newHarness(t, false)

	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/api/cart", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/menu", "").Code)
}

func TestQuoteHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantTotal string
	}{
		{name: "pizza", body: pizzaBody, wantCode: http.StatusOK, wantTotal: "152.00"},
		{name: "invalid JSON", body: `{invalid}`, wantCode: http.StatusBadRequest},
		{name: "unknown pizza", body: `{"kind":"pizza","pizza_id":"77","size":"small"}`, wantCode: http.StatusBadRequest},
		{name: "size on a drink", body: `{"kind":"drink","catalog_id":"refri-01","size":"large"}`, wantCode: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			h := newHarness(t, true)
			w := h.do(t, http.MethodPost, "/api/pricing/quote", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantTotal != "" {
				item := decode[domain.LineItem](t, w)
				assert.Equal(t, testCase.wantTotal, item.LineTotal.StringFixed(2))
				assert.Empty(t, item.ID)
				assert.Equal(t, 0, h.session.Cart.Len())
			}
		})
	}
}

func TestCartHandlers(t *testing.T) {
	h := newHarness(t, true)

	w := h.do(t, http.MethodPost, "/api/cart/items", pizzaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	added := decode[domain.LineItem](t, w)

	w = h.do(t, http.MethodPut, "/api/cart/identification", `{"table":"5","customer":"Bia"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPatch, "/api/cart/items/"+added.ID, `{"quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[cartView](t, w)
	assert.Equal(t, "228.00", view.Total.StringFixed(2))
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, "5", view.Table)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPatch, "/api/cart/items/"+added.ID, `{"add_ons":["Bacon","Bacon"]}`).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPatch, "/api/cart/items/nope", `{"quantity":1}`).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodDelete, "/api/cart/items/nope", "").Code)

	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/cart/items/"+added.ID, "").Code)
	view = decode[cartView](t, h.do(t, http.MethodGet, "/api/cart", ""))
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestOrderFlow(t *testing.T) {
	h := newHarness(t, true)

	assert.Equal(t, http.StatusUnprocessableEntity, h.do(t, http.MethodPost, "/api/orders", "").Code)

	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/cart/items", pizzaBody).Code)
	w := h.do(t, http.MethodPost, "/api/orders", "")
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[domain.Order](t, w)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "152.00", order.Total.StringFixed(2))
	assert.Equal(t, 0, h.session.Cart.Len())

	w = h.do(t, http.MethodPost, "/api/orders/"+order.ID+"/advance", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(t, http.MethodPost, "/api/orders/"+order.ID+"/advance", "")
	assert.Equal(t, domain.StatusReady, decode[domain.Order](t, w).Status)

	w = h.do(t, http.MethodGet, "/api/orders?status=ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Order](t, w), 1)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/orders?status=lost", "").Code)

	w = h.do(t, http.MethodPost, "/api/orders/"+order.ID+"/items", `{"kind":"caipirinha","base":"Pinga","fruit":"Limão"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "182.00", decode[domain.Order](t, w).Total.StringFixed(2))

	w = h.do(t, http.MethodDelete, "/api/orders/"+order.ID+"/items/"+order.Items[0].ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[domain.Order](t, w)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, "30.00", updated.Total.StringFixed(2))

	w = h.do(t, http.MethodPatch, "/api/orders/"+order.ID+"/items/"+updated.Items[0].ID, `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated = decode[domain.Order](t, w)
	assert.Empty(t, updated.Items)
	assert.Equal(t, "0.00", updated.Total.StringFixed(2))

	w = h.do(t, http.MethodGet, "/api/orders/board", "")
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[[]service.Column](t, w)
	require.Len(t, board, 4)
	assert.Len(t, board[2].Orders, 1)

	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/orders/"+order.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/orders/"+order.ID, "").Code)
}

func TestUpdateOrderHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantStatus domain.Status
		wantTable  string
		wantTotal  string
	}{
		{
			name:       "status and table",
			body:       `{"status":"delivered","table":"8"}`,
			wantCode:   http.StatusOK,
			wantStatus: domain.StatusDelivered,
			wantTable:  "8",
			wantTotal:  "152.00",
		},
		{
			name:       "caller total is ignored",
			body:       `{"total":"1.00","customer":"Leo"}`,
			wantCode:   http.StatusOK,
			wantStatus: domain.StatusPending,
			wantTotal:  "152.00",
		},
		{
			name:     "unknown status",
			body:     `{"status":"lost"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid JSON",
			body:     `{`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			h := newHarness(t, true)
			require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/cart/items", pizzaBody).Code)
			order := decode[domain.Order](t, h.do(t, http.MethodPost, "/api/orders", ""))

			w := h.do(t, http.MethodPatch, "/api/orders/"+order.ID, testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantCode != http.StatusOK {
				return
			}
			updated := decode[domain.Order](t, w)
			assert.Equal(t, testCase.wantStatus, updated.Status)
			assert.Equal(t, testCase.wantTable, updated.Table)
			assert.Equal(t, testCase.wantTotal, updated.Total.StringFixed(2))
		})
	}
}

func TestSetStatusHandler(t *testing.T) {
	h := newHarness(t, true)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/cart/items", pizzaBody).Code)
	order := decode[domain.Order](t, h.do(t, http.MethodPost, "/api/orders", ""))

	w := h.do(t, http.MethodPut, "/api/orders/"+order.ID+"/status", `{"status":"ready"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusReady, decode[domain.Order](t, w).Status)

	w = h.do(t, http.MethodPut, "/api/orders/"+order.ID+"/status", `{"status":"pending"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusPending, decode[domain.Order](t, w).Status)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPut, "/api/orders/"+order.ID+"/status", `{"status":"pronto"}`).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPut, "/api/orders/PED-NOPE/status", `{"status":"ready"}`).Code)
}

func TestGetOrderQRCodeHandler(t *testing.T) {
	h := newHarness(t, true)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/cart/items", pizzaBody).Code)
	order := decode[domain.Order](t, h.do(t, http.MethodPost, "/api/orders", ""))

	h.qr.On("Generate", order.ID).Return([]byte{0x89, 'P', 'N', 'G'}, nil).Once()

	w := h.do(t, http.MethodGet, "/api/orders/"+order.ID+"/qrcode", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes())

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/orders/PED-NOPE/qrcode", "").Code)
}

func TestGetMenuHandler(t *testing.T) {
	h := newHarness(t, true)
	w := h.do(t, http.MethodGet, "/api/menu", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body, "crusts")
	assert.Contains(t, body, "caipirinha")
}
