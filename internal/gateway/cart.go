package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// CartItemPayload is one cart line exactly as the platform reports it.
type CartItemPayload struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity"`
}

// CartPayload is the authoritative cart snapshot returned after every
// mutation. The platform computes totalItem itself; it is not re-derived
// client-side.
type CartPayload struct {
	Items     []CartItemPayload `json:"items"`
	TotalItem int               `json:"totalItem"`
}

type cartCountPayload struct {
	TotalItem int `json:"totalItem"`
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	CartItemID int64 `json:"cartItemId"`
	Quantity   int   `json:"quantity"`
}

// FetchCart returns the full authoritative cart.
func (c *Client) FetchCart(ctx context.Context) (*CartPayload, error) {
	var payload CartPayload
	if err := c.call(ctx, http.MethodGet, "/api/cart", "cart.fetch", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CartCount returns the lightweight item count used by the header badge.
func (c *Client) CartCount(ctx context.Context) (int, error) {
	var payload cartCountPayload
	if err := c.call(ctx, http.MethodGet, "/api/cart/count", "cart.count", nil, &payload); err != nil {
		return 0, err
	}
	return payload.TotalItem, nil
}

// AddCartItem adds a product and returns the resulting snapshot.
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (*CartPayload, error) {
	var payload CartPayload
	body := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.call(ctx, http.MethodPost, "/api/cart/items", "cart.add", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateCartItem changes a line quantity and returns the resulting snapshot.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*CartPayload, error) {
	var payload CartPayload
	body := updateCartItemRequest{CartItemID: cartItemID, Quantity: quantity}
	if err := c.call(ctx, http.MethodPut, "/api/cart/items", "cart.update", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RemoveCartItem deletes a line and returns the resulting snapshot.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int64) (*CartPayload, error) {
	var payload CartPayload
	path := fmt.Sprintf("/api/cart/items/%d", cartItemID)
	if err := c.call(ctx, http.MethodDelete, path, "cart.remove", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ClearCart empties the server cart. The platform returns no snapshot for
// this call.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/cart", "cart.clear", nil, nil)
}
