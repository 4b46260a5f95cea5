package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	cartsvc "github.com/quatet/storefront-api/internal/cart"
	"github.com/quatet/storefront-api/internal/gateway"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCartGateway struct {
	payload *gateway.CartPayload
	count   int
	err     error
}

func (s *stubCartGateway) FetchCart(ctx context.Context) (*gateway.CartPayload, error) {
	return s.payload, s.err
}

func (s *stubCartGateway) CartCount(ctx context.Context) (int, error) {
	return s.count, s.err
}

func (s *stubCartGateway) AddCartItem(ctx context.Context, productID int64, quantity int) (*gateway.CartPayload, error) {
	return s.payload, s.err
}

func (s *stubCartGateway) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*gateway.CartPayload, error) {
	return s.payload, s.err
}

func (s *stubCartGateway) RemoveCartItem(ctx context.Context, cartItemID int64) (*gateway.CartPayload, error) {
	return s.payload, s.err
}

func (s *stubCartGateway) ClearCart(ctx context.Context) error {
	return s.err
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := pkgauth.WithToken(req.Context(), "tok")
	ctx = pkgauth.WithUserID(ctx, 42)
	return req.WithContext(ctx)
}

func TestCartAddItemReturnsMirrorView(t *testing.T) {
	t.Parallel()

	gw := &stubCartGateway{payload: &gateway.CartPayload{
		Items: []gateway.CartItemPayload{{
			ID:          11,
			ProductID:   7,
			ProductName: "Tet gift box",
			Price:       decimal.NewFromInt(100000),
			Quantity:    2,
		}},
		TotalItem: 2,
	}}
	manager, err := cartsvc.NewManager(gw, nil)
	require.NoError(t, err)

	handler := CartAddItem(manager, nil)
	req := authedRequest(http.MethodPost, "/api/cart/items", `{"productId":7,"quantity":2}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data cartView `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, int64(7), envelope.Data.Items[0].ProductID)
	assert.Equal(t, 2, envelope.Data.TotalItems)
	assert.True(t, envelope.Data.OpenPanel)
	assert.True(t, envelope.Data.TotalPrice.Equal(decimal.NewFromInt(200000)))
}

func TestCartAddItemRejectsBadBody(t *testing.T) {
	t.Parallel()

	manager, err := cartsvc.NewManager(&stubCartGateway{}, nil)
	require.NoError(t, err)

	handler := CartAddItem(manager, nil)
	req := authedRequest(http.MethodPost, "/api/cart/items", `{"quantity":2}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartRemoveItemUnknownLineConflicts(t *testing.T) {
	t.Parallel()

	manager, err := cartsvc.NewManager(&stubCartGateway{}, nil)
	require.NoError(t, err)

	handler := CartRemoveItem(manager, nil)
	req := authedRequest(http.MethodDelete, "/api/cart/items/99", "")

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "99")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartCountAsksPlatformOnColdMirror(t *testing.T) {
	t.Parallel()

	gw := &stubCartGateway{count: 3}
	manager, err := cartsvc.NewManager(gw, nil)
	require.NoError(t, err)

	handler := CartCount(manager, nil)
	req := authedRequest(http.MethodGet, "/api/cart/count", "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, 3, envelope.Data.Count)
}

func TestCartFetchRequiresUser(t *testing.T) {
	t.Parallel()

	manager, err := cartsvc.NewManager(&stubCartGateway{}, nil)
	require.NoError(t, err)

	handler := CartFetch(manager, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
