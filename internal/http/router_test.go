package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcsolar/pos/internal/activity"
	activityStore "github.com/fcsolar/pos/internal/activity/store"
	"github.com/fcsolar/pos/internal/auth"
	posHttp "github.com/fcsolar/pos/internal/http"
	authHandler "github.com/fcsolar/pos/internal/http/auth"
	orderHandler "github.com/fcsolar/pos/internal/http/order"
	reportHandler "github.com/fcsolar/pos/internal/http/report"
	saleHandler "github.com/fcsolar/pos/internal/http/sale"
	"github.com/fcsolar/pos/internal/identifier"
	"github.com/fcsolar/pos/internal/order"
	orderStore "github.com/fcsolar/pos/internal/order/store"
	"github.com/fcsolar/pos/internal/receipt"
	"github.com/fcsolar/pos/internal/report"
	"github.com/fcsolar/pos/internal/sale"
	saleStore "github.com/fcsolar/pos/internal/sale/store"
	"github.com/fcsolar/pos/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	blob := storage.NewMemStore()
	ids := identifier.New()

	activityService := activity.NewService(activityStore.New(ctx, blob))
	saleService := sale.NewService(saleStore.New(ctx, blob), ids, activityService, "Port-au-Prince")
	orderService := order.NewService(orderStore.New(ctx, blob), saleService, activityService, ids)
	reportService := report.NewService(orderService, saleService, activityService)
	authService := auth.NewService("test-secret", "1234", time.Hour)

	receipts := receipt.NewRenderer(receipt.StoreInfo{Name: "FC SOLAR"})

	router := posHttp.New(
		authService,
		authHandler.NewHandler(authService, activityService),
		orderHandler.NewHandler(orderService),
		saleHandler.NewHandler(saleService, receipts),
		reportHandler.NewHandler(reportService),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"pin":"1234"}`, username)

	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotEmpty(t, result.Token)

	return result.Token
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func TestLogin_WrongPIN(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"username":"jbaptiste","pin":"0000"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/orders")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderCompletionOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "jbaptiste")

	createBody := `{
		"customerName": "Jean Baptiste",
		"items": [{"productId": "PANEL-300W", "quantity": 2, "price": 50000}],
		"totalAmount": 100000,
		"finalAmount": 95000,
		"discount": 5000,
		"advancePayment": 20000,
		"paymentMethod": "cash"
	}`

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/orders", token, createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created order.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	assert.Equal(t, order.StatusPending, created.Status)
	assert.Regexp(t, `^ORD-\d+$`, created.ID)

	// Completing the order materializes exactly one sale.
	resp = doJSON(t, srv, http.MethodPatch, "/api/v1/orders/"+created.ID, token, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var completed order.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&completed))
	resp.Body.Close()

	assert.Equal(t, order.StatusCompleted, completed.Status)
	assert.Equal(t, "jbaptiste", completed.CompletedBy)
	require.NotEmpty(t, completed.SaleID)

	// Retrying the completion keeps the same sale.
	resp = doJSON(t, srv, http.MethodPatch, "/api/v1/orders/"+created.ID, token, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var retried order.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&retried))
	resp.Body.Close()

	assert.Equal(t, completed.SaleID, retried.SaleID)

	resp = doJSON(t, srv, http.MethodGet, "/api/v1/sales/"+completed.SaleID, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var materialized sale.Sale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&materialized))
	resp.Body.Close()

	assert.Equal(t, sale.TypeOrder, materialized.Type)
	assert.Equal(t, created.ID, materialized.OrderID)
	assert.Equal(t, int64(95000), materialized.Total)
	assert.Equal(t, int64(20000), materialized.PaymentReceived)
}

func TestCheckoutAndReceiptOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "mpierre")

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/sales", token, `{
		"items": [{"productId": "CABLE-10M", "quantity": 3, "price": 2500}],
		"discount": 500,
		"paymentReceived": 10000
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sold sale.Sale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sold))
	resp.Body.Close()

	assert.Equal(t, sale.TypeDirect, sold.Type)
	assert.Equal(t, "mpierre", sold.Cashier)
	assert.Equal(t, int64(7000), sold.Total)
	assert.Equal(t, int64(3000), sold.Change)
	assert.Equal(t, "Walk-in Customer", sold.CustomerName)

	resp = doJSON(t, srv, http.MethodGet, "/api/v1/sales/"+sold.ID+"/receipt", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestCheckout_InsufficientPayment(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "mpierre")

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/sales", token, `{
		"items": [{"productId": "CABLE-10M", "quantity": 1, "price": 2500}],
		"paymentReceived": 1000
	}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportExportOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "jbaptiste")

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/sales", token, `{
		"items": [{"productId": "PANEL-300W", "quantity": 1, "price": 50000}],
		"paymentReceived": 50000
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, srv, http.MethodGet, "/api/v1/reports", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep report.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	resp.Body.Close()

	assert.Equal(t, "jbaptiste", rep.User)
	assert.Equal(t, 1, rep.Summary.Transactions)

	resp = doJSON(t, srv, http.MethodGet, "/api/v1/reports/export", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "user_report_jbaptiste_")
}
