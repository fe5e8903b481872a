package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"amat_hosting/internal/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Store:              config.Store{Driver: config.StoreDriverMemory},
		Cache:              config.Cache{Driver: config.CacheDriverNoop},
		Messaging:          config.Messaging{Driver: config.MessagingDriverNoop},
		Panel:              config.Panel{Timeout: time.Second},
		PaymentGatewayMock: true,
	}
	reg := prometheus.NewRegistry()
	h, cleanup, err := buildHandlers(context.Background(), cfg, zap.NewNop(), reg)
	if err != nil {
		t.Fatalf("build handlers: %v", err)
	}
	t.Cleanup(cleanup)
	h.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return NewRouter(h)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestRouter_Ping(t *testing.T) {
	r := newTestRouter(t)
	w, body := do(t, r, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusOK || body["message"] != "pong" {
		t.Fatalf("unexpected ping response: %d %v", w.Code, body)
	}
}

func TestRouter_OrderLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w, checkout := do(t, r, http.MethodPost, "/order/price-quote-and-deposit", map[string]any{
		"username":      "alice",
		"phoneNumber":   "62812",
		"packageId":     "bot-sentinel",
		"totalPrice":    500,
		"taxPercentage": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	orderID, _ := checkout["orderId"].(string)
	depositRef, _ := checkout["depositRef"].(string)
	if !strings.HasPrefix(orderID, "AMAT-") || depositRef == "" {
		t.Fatalf("unexpected checkout response: %v", checkout)
	}

	w, status := do(t, r, http.MethodGet, "/order/status?deposit_id="+depositRef, nil)
	if w.Code != http.StatusOK || status["orderStatus"] != "awaiting_payment" || status["terminal"] != false {
		t.Fatalf("unexpected status response: %d %v", w.Code, status)
	}

	w, pending := do(t, r, http.MethodGet, "/order/server-details?order_id="+orderID, nil)
	if w.Code != http.StatusOK || pending["server"] != nil {
		t.Fatalf("expected pending server details, got %d %v", w.Code, pending)
	}

	w, hook := do(t, r, http.MethodPost, "/webhook/payment-provider-a", map[string]any{
		"deposit_id": depositRef,
		"status":     "SUCCESS",
		"nominal":    500,
	})
	if w.Code != http.StatusOK || hook["orderStatus"] != "active" {
		t.Fatalf("webhook: expected active order, got %d %v", w.Code, hook)
	}

	w, again := do(t, r, http.MethodPost, "/webhook/payment-provider-a", map[string]any{
		"deposit_id": depositRef,
		"status":     "SUCCESS",
	})
	if w.Code != http.StatusOK || again["outcome"] != "already_processed" {
		t.Fatalf("redelivery: expected already_processed, got %d %v", w.Code, again)
	}

	w, details := do(t, r, http.MethodGet, "/order/server-details?order_id="+orderID, nil)
	if w.Code != http.StatusOK || details["orderStatus"] != "active" || details["terminal"] != true {
		t.Fatalf("unexpected server details: %d %v", w.Code, details)
	}
	server, ok := details["server"].(map[string]any)
	if !ok || server["name"] == "" || server["password"] == "" {
		t.Fatalf("expected server credentials, got %v", details["server"])
	}
}

func TestRouter_UnknownOrder(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/order/server-details?order_id=AMAT-404", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/ping", nil)

	w, _ := do(t, r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `amat_hosting_http_requests_total{method="GET",route="/ping",status="200"} 1`) {
		t.Fatalf("ping request not counted:\n%s", w.Body.String())
	}
}
