package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniblox/ecommerce-store/internal/admin"
	"github.com/uniblox/ecommerce-store/internal/cart"
	"github.com/uniblox/ecommerce-store/internal/catalog"
	"github.com/uniblox/ecommerce-store/internal/checkout"
	"github.com/uniblox/ecommerce-store/internal/discount"
	"github.com/uniblox/ecommerce-store/internal/orders"
	"github.com/uniblox/ecommerce-store/internal/sessions"
)

// testEnv wires the full router the way cmd/api does, with a cookie-keeping
// client so requests share one session.
type testEnv struct {
	srv       *httptest.Server
	client    *http.Client
	carts     *cart.Store
	discounts *discount.Store
	orders    *orders.Store
	sessions  *sessions.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop().Sugar()
	env := &testEnv{
		carts:     cart.NewStore(),
		discounts: discount.NewStore(),
		orders:    orders.NewStore(),
		sessions:  sessions.NewStore(),
	}

	workflow := checkout.New(env.carts, env.discounts, env.orders, nil, logger, checkout.Options{
		ServiceName:      "store-api-test",
		NthOrderDiscount: 3,
		DiscountPercent:  10,
		DiscountPrefix:   "SAVE10",
		DiscountCodeLen:  8,
	})
	reporter := &admin.Reporter{Orders: env.orders, Discounts: env.discounts, Sessions: env.sessions}

	cartHandler := &CartHandler{Carts: env.carts, Log: logger}
	checkoutHandler := &CheckoutHandler{Workflow: workflow, Log: logger}
	adminHandler := &AdminHandler{
		Reporter:        reporter,
		Discounts:       env.discounts,
		Log:             logger,
		DiscountPercent: 10,
		DiscountPrefix:  "SAVE10",
		DiscountCodeLen: 8,
	}
	productsHandler := &ProductsHandler{Catalog: catalog.NewStore()}

	router := NewRouter("store-api-test")
	router.Route(APIPrefix, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(env.sessions, "session_id"))
			cartHandler.Register(r)
			checkoutHandler.Register(r)
		})
		adminHandler.Register(r)
		productsHandler.Register(r)
	})

	env.srv = httptest.NewServer(router)
	t.Cleanup(env.srv.Close)
	env.client = newClient(t)
	return env
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) do(t *testing.T, c *http.Client, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// sessionID returns the session cookie the server handed this client.
func (e *testEnv) sessionID(t *testing.T, c *http.Client) string {
	t.Helper()
	u, err := url.Parse(e.srv.URL)
	require.NoError(t, err)
	for _, ck := range c.Jar.Cookies(u) {
		if ck.Name == "session_id" {
			return ck.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}
