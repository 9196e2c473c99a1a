package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/pkg/session"
	"github.com/kakigori/storefront/internal/server/http/handlers"
	"github.com/kakigori/storefront/internal/server/http/middleware"
	testhelpers "github.com/kakigori/storefront/internal/test"
	"github.com/kakigori/storefront/internal/test/facades"
	"github.com/kakigori/storefront/internal/usecase"
)

func newEngine(t *testing.T, facade *facades.StorefrontFacadeStub) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(facade, session.NewSigner("router-test-secret", session.Options{}), logger)
	gin.SetMode(gin.TestMode)
	t.Cleanup(facade.Close)
	return engine
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("expected session cookie")
	return nil
}

func TestSetupRoutes(t *testing.T) {
	var seen []string
	facade := &facades.StorefrontFacadeStub{
		SaveConfigFn: func(_ context.Context, sessionID, storeID, apiKey string) (model.StoreConfig, error) {
			seen = append(seen, sessionID)
			return model.StoreConfig{StoreID: storeID, APIKey: apiKey}, nil
		},
		ConfigFn: func(_ context.Context, sessionID string) model.StoreConfig {
			seen = append(seen, sessionID)
			return model.StoreConfig{StoreID: "store-001", APIKey: "key"}
		},
		Gateway: &testhelpers.OrderGatewayStub{},
	}
	engine := newEngine(t, facade)

	body, _ := json.Marshal(map[string]string{"store_id": "store-001", "api_key": "key"})
	req := httptest.NewRequest(http.MethodPut, "/store/credentials", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for save, got %d", resp.Code)
	}
	cookie := sessionCookie(t, resp)
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http only")
	}

	req = httptest.NewRequest(http.MethodGet, "/store", nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for store, got %d", resp.Code)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("valid session must not be reissued")
	}
	if len(seen) != 2 || seen[0] == "" || seen[0] != seen[1] {
		t.Fatalf("expected same session across requests, got %v", seen)
	}

	for _, path := range []string{"/store/board", "/store/public", "/order/store-001", "/order/store-001/receipt/order-1", "/healthz"} {
		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		resp = httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, resp.Code)
		}
	}
}

func TestForgedSessionIsReplaced(t *testing.T) {
	engine := newEngine(t, &facades.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "forged"})
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if c := sessionCookie(t, resp); c.Value == "forged" {
		t.Fatal("expected a fresh session token")
	}
}

func TestHealthSkipsSession(t *testing.T) {
	engine := newEngine(t, &facades.StorefrontFacadeStub{})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("health check must not start a session")
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestCompressedResponses(t *testing.T) {
	engine := newEngine(t, &facades.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/order/store-001", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %q", resp.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var flow map[string]any
	if err := json.NewDecoder(zr).Decode(&flow); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if flow["store_id"] != "store-001" {
		t.Fatalf("unexpected body %v", flow)
	}
}

func TestCompressedRequests(t *testing.T) {
	var gotKey string
	engine := newEngine(t, &facades.StorefrontFacadeStub{
		SaveConfigFn: func(_ context.Context, _, storeID, apiKey string) (model.StoreConfig, error) {
			gotKey = apiKey
			return model.StoreConfig{StoreID: storeID, APIKey: apiKey}, nil
		},
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(`{"store_id":"store-001","api_key":"zipped"}`))
	_ = zw.Close()

	req := httptest.NewRequest(http.MethodPut, "/store/credentials", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotKey != "zipped" {
		t.Fatalf("expected decompressed body, got key %q", gotKey)
	}
}

func TestPathLikeIDsAreRejected(t *testing.T) {
	reached := 0
	engine := newEngine(t, &facades.StorefrontFacadeStub{
		StateFn: func(context.Context, string, string) (usecase.FlowState, error) {
			reached++
			return usecase.FlowState{}, nil
		},
		PlaceFn: func(context.Context, string, string, string) (*model.Order, error) {
			reached++
			return nil, nil
		},
		ReceiptFn: func(context.Context, string, string) (*model.Order, error) {
			reached++
			return nil, nil
		},
	})

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/order/../receipt/.."},
		{http.MethodGet, "/order/../receipt/x"},
		{http.MethodGet, "/order/store-001/receipt/.."},
		{http.MethodPost, "/order/../orders"},
		{http.MethodPost, "/order/./flow/next"},
		{http.MethodGet, "/order/store.*"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/", nil)
		req.URL.Path = tc.path
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s %s: expected status 422, got %d", tc.method, tc.path, resp.Code)
		}
	}
	if reached != 0 {
		t.Fatalf("expected no facade calls, got %d", reached)
	}
}

func TestUnknownRoute(t *testing.T) {
	engine := newEngine(t, &facades.StorefrontFacadeStub{})
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/user/orders", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

var _ handlers.StorefrontFacade = (*facades.StorefrontFacadeStub)(nil)
