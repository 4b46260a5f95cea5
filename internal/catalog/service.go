package catalog

import (
	"context"
	"fmt"

	"github.com/quatet/storefront-api/internal/gateway"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/pagination"
)

type gatewayAPI interface {
	Products(ctx context.Context, params gateway.ProductListParams) (*gateway.ProductPage, error)
	ProductByID(ctx context.Context, id int64) (*gateway.Product, error)
	Categories(ctx context.Context) ([]gateway.Category, error)
}

// Service exposes the browse surface: product listings, product detail, and
// category navigation. Everything is a read-through to the platform.
type Service struct {
	gw gatewayAPI
}

func NewService(gw gatewayAPI) (*Service, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &Service{gw: gw}, nil
}

// Products fetches one catalog page with normalized pagination.
func (s *Service) Products(ctx context.Context, params gateway.ProductListParams) (*gateway.ProductPage, error) {
	norm := pagination.Normalize(pagination.Params{Page: params.Page, Limit: params.Limit})
	params.Page = norm.Page
	params.Limit = norm.Limit
	return s.gw.Products(ctx, params)
}

// Product fetches one product detail.
func (s *Service) Product(ctx context.Context, id int64) (*gateway.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.gw.ProductByID(ctx, id)
}

// Categories fetches the navigation categories.
func (s *Service) Categories(ctx context.Context) ([]gateway.Category, error) {
	return s.gw.Categories(ctx)
}
