package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Product is the storefront projection of a catalog entry.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Description string          `json:"description,omitempty"`
	CategoryID  int64           `json:"categoryId,omitempty"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	TotalItems int       `json:"totalItems"`
}

// Category is a product grouping used for browse navigation.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductListParams filters the catalog listing.
type ProductListParams struct {
	Page       int
	Limit      int
	CategoryID int64
	Search     string
}

// Products fetches one catalog page.
func (c *Client) Products(ctx context.Context, params ProductListParams) (*ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))
	if params.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	var payload ProductPage
	path := "/api/products?" + query.Encode()
	if err := c.call(ctx, http.MethodGet, path, "catalog.products", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ProductByID fetches a single product detail.
func (c *Client) ProductByID(ctx context.Context, id int64) (*Product, error) {
	var payload Product
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.call(ctx, http.MethodGet, path, "catalog.product", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ProductImage returns the thumbnail URL for a product, used to enrich
// quotation lines that carry only product ids.
func (c *Client) ProductImage(ctx context.Context, id int64) (string, error) {
	product, err := c.ProductByID(ctx, id)
	if err != nil {
		return "", err
	}
	return product.ImageURL, nil
}

// Categories fetches every product category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var payload []Category
	if err := c.call(ctx, http.MethodGet, "/api/categories", "catalog.categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
