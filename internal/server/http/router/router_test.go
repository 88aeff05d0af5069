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
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/handlers"
	"github.com/polkiloo/marketplace/internal/test/facades"
	"github.com/polkiloo/marketplace/internal/usecase"
)

func newEngine(facade *facades.MarketplaceFacadeStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{TokenTTL: time.Hour, StreamBuffer: 4, StreamKeepAlive: time.Hour}
	return Setup(facade, cfg, logger)
}

func newFacade() *facades.MarketplaceFacadeStub {
	return &facades.MarketplaceFacadeStub{StreamFacadeStub: facades.NewStreamFacadeStub()}
}

func do(engine *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	facade := newFacade()
	facade.OrderFacadeStub.ListFn = func(context.Context, model.Identity) ([]model.Order, error) {
		return []model.Order{{ID: "o1", Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
	}
	engine := newEngine(facade)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   []byte
		status int
	}{
		{"buyer register", http.MethodPost, "/api/auth/buyer/register", "", []byte(`{"name":"a","email":"a@b.c","password":"p"}`), http.StatusCreated},
		{"seller register", http.MethodPost, "/api/auth/seller/register", "", []byte(`{"name":"a","email":"a@b.c","password":"p"}`), http.StatusCreated},
		{"buyer login", http.MethodPost, "/api/auth/buyer/login", "", []byte(`{"email":"a@b.c","password":"p"}`), http.StatusOK},
		{"seller login", http.MethodPost, "/api/auth/seller/login", "", []byte(`{"email":"a@b.c","password":"p"}`), http.StatusOK},
		{"products", http.MethodGet, "/api/products", "", nil, http.StatusOK},
		{"health", http.MethodGet, "/api/health", "", nil, http.StatusOK},
		{"my orders anonymous", http.MethodGet, "/api/orders/my-orders", "", nil, http.StatusUnauthorized},
		{"my orders", http.MethodGet, "/api/orders/my-orders", "token", nil, http.StatusOK},
		{"create order", http.MethodPost, "/api/orders", "token", []byte(`{"items":[{"product":"p1","quantity":1}],"totalAmount":5}`), http.StatusCreated},
		{"cancel", http.MethodPatch, "/api/orders/o1/cancel", "token", nil, http.StatusOK},
		{"buyer status", http.MethodPatch, "/api/orders/o1/status", "token", []byte(`{"status":"Shipped"}`), http.StatusForbidden},
		{"seller status", http.MethodPatch, "/api/orders/o1/status", "seller-token", []byte(`{"status":"Shipped"}`), http.StatusOK},
		{"buyer invoice", http.MethodGet, "/api/orders/o1/invoice", "token", nil, http.StatusOK},
		{"seller stats", http.MethodGet, "/api/seller/stats", "seller-token", nil, http.StatusOK},
		{"buyer stats", http.MethodGet, "/api/seller/stats", "token", nil, http.StatusForbidden},
		{"seller orders", http.MethodGet, "/api/seller/orders", "seller-token", nil, http.StatusOK},
		{"seller order status", http.MethodPatch, "/api/seller/orders/o1/status", "seller-token", []byte(`{"status":"Packing"}`), http.StatusOK},
		{"seller invoice", http.MethodGet, "/api/seller/orders/o1/invoice", "seller-token", nil, http.StatusOK},
		{"seller product", http.MethodPost, "/api/seller/products", "seller-token", []byte(`{"name":"Lamp","price":1}`), http.StatusCreated},
		{"buyer product", http.MethodPost, "/api/seller/products", "token", []byte(`{"name":"Lamp","price":1}`), http.StatusForbidden},
		{"buyer events", http.MethodGet, EventsPath, "token", nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(engine, tc.method, tc.path, tc.token, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestSetupCreateOrderPassesItems(t *testing.T) {
	facade := newFacade()
	var got usecase.CreateOrderInput
	facade.OrderFacadeStub.PlaceFn = func(_ context.Context, identity model.Identity, in usecase.CreateOrderInput) (*model.Order, error) {
		got = in
		return &model.Order{ID: "o1", BuyerID: identity.UserID, Status: model.OrderStatusPending}, nil
	}
	engine := newEngine(facade)

	resp := do(engine, http.MethodPost, "/api/orders", "token", []byte(`{"items":[{"product":"p1","quantity":3}],"totalAmount":9}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("unexpected input %+v", got)
	}
	var order model.Order
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil || order.BuyerID != "u1" {
		t.Fatalf("unexpected order %s: %v", resp.Body.String(), err)
	}
}

func TestSetupCompressesResponses(t *testing.T) {
	engine := newEngine(newFacade())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got headers %v", resp.Header())
	}
	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("invalid gzip body: %v", err)
	}
	body, _ := io.ReadAll(reader)
	if string(bytes.TrimSpace(body)) != "[]" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSetupAcceptsCompressedRequests(t *testing.T) {
	facade := newFacade()
	var gotName string
	facade.ProductFacadeStub.CreateFn = func(_ context.Context, identity model.Identity, in usecase.CreateProductInput) (*model.Product, error) {
		gotName = in.Name
		return &model.Product{ID: "p1", SellerID: identity.UserID, Name: in.Name}, nil
	}
	engine := newEngine(facade)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"name":"Lamp","price":5}`))
	_ = gz.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/seller/products", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Authorization", "Bearer seller-token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if gotName != "Lamp" {
		t.Fatalf("expected decompressed payload, got %q", gotName)
	}
}

var _ handlers.MarketplaceFacade = (*facades.MarketplaceFacadeStub)(nil)
