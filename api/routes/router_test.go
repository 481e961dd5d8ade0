package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/ownshop-backend/api/middleware"
	"github.com/angelmondragon/ownshop-backend/internal/auth"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
	"github.com/angelmondragon/ownshop-backend/pkg/metrics"
)

// readyResolver waits for the catalog so listings are deterministic.
type readyResolver struct {
	registry *store.Registry
}

func (r readyResolver) Get(ctx context.Context, deviceID string) (*store.Store, error) {
	st, err := r.registry.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	select {
	case <-st.Ready():
	case <-time.After(2 * time.Second):
	}
	return st, nil
}

type testServer struct {
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mem := kv.NewMemory()
	reg := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(reg)
	registry, err := store.NewRegistry(store.RegistryParams{
		Factory: func(deviceID string) (*store.Store, error) {
			st, err := store.New(store.Options{
				DeviceID:    deviceID,
				Catalog:     catalog.SeedSource{},
				KV:          mem.Scope(deviceID),
				Credentials: auth.SentinelChecker{Password: store.SentinelPassword},
			})
			if err != nil {
				return nil, err
			}
			st.Subscribe(store.MetricsListener(storeMetrics))
			return st, nil
		},
		OnSizeChange: storeMetrics.SetActiveDevices,
	})
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "ownshop", DeviceTokenTTL: time.Hour},
		RateLimit: config.RateLimitConfig{
			SignInWindow:     time.Minute,
			SignInIPLimit:    20,
			SignInEmailLimit: 5,
		},
	}
	return &testServer{handler: NewRouter(Params{
		Config:   cfg,
		Logger:   logger.Nop(),
		Stores:   readyResolver{registry: registry},
		Gatherer: reg,
	})}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if s.token != "" {
		req.Header.Set(middleware.DeviceTokenHeader, s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if issued := rec.Header().Get(middleware.DeviceTokenHeader); issued != "" {
		s.token = issued
	}
	return rec
}

func TestHealthLive(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-OwnShop-Env"))
}

func TestHealthReadyWithoutDependencies(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeviceTokenIsIssuedOnce(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := rec.Header().Get(middleware.DeviceTokenHeader)
	require.NotEmpty(t, first)

	rec = srv.do(t, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get(middleware.DeviceTokenHeader))
}

func TestStatePersistsAcrossRequestsForOneDevice(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/signin", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/cart/items", `{"productId":"1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data store.CartSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Data.ItemCount)

	other := newTestServer(t)
	rec = other.do(t, http.MethodGet, "/api/v1/cart", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Zero(t, body.Data.ItemCount)
}

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPut, "/api/v1/admin/banner", `{"title":"Sale"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/verifications", `{"businessType":"influencer","companyName":"Acme"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/auth/signin", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/seller/products", `{"name":"A","price":"1","category":"tools-industrial"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/auth/signin", `{"email":"seller@example.com","password":"password"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/seller/products", `{"name":"A","price":"1","category":"tools-industrial"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPut, "/api/v1/admin/banner", `{"title":"Sale"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicCatalogRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/products?category=superdeals", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/business-options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "wholesaler")
}

func TestMetricsEndpointExposesStoreMetrics(t *testing.T) {
	srv := newTestServer(t)
	srv.do(t, http.MethodPost, "/api/v1/auth/signin", `{"email":"user@example.com"}`)

	rec := srv.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "store_operations_total")
	require.Contains(t, rec.Body.String(), "store_active_devices 1")
}
