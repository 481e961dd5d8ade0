package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/ownshop-backend/api/middleware"
	"github.com/angelmondragon/ownshop-backend/internal/auth"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newReadyStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(store.Options{
		DeviceID:    "device-1",
		Catalog:     catalog.SeedSource{},
		KV:          kv.NewMemory().Scope("device-1"),
		Credentials: auth.SentinelChecker{Password: store.SentinelPassword},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(st.Close)
	st.Activate(context.Background())
	select {
	case <-st.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("store never became ready")
	}
	return st
}

func signIn(t *testing.T, st *store.Store, email string) {
	t.Helper()
	if out := st.SignIn(context.Background(), email, nil); !out.OK {
		t.Fatalf("sign in %s failed: %+v", email, out.Notification)
	}
}

// serve runs handler with st attached the way the Device middleware would.
func serve(t *testing.T, st *store.Store, handler http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if st != nil {
		req = req.WithContext(middleware.WithDevice(req.Context(), st.DeviceID(), st))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dest any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("decode data %s: %v", string(env.Data), err)
	}
}

var testLogger = logger.Nop()
