package blog

import (
	"context"
	"fmt"

	"github.com/quatet/storefront-api/internal/gateway"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/pagination"
)

type gatewayAPI interface {
	BlogPosts(ctx context.Context, page, limit int) (*gateway.BlogPage, error)
	BlogPostByID(ctx context.Context, id int64) (*gateway.BlogPost, error)
}

// Service is the marketing-article read-through.
type Service struct {
	gw gatewayAPI
}

func NewService(gw gatewayAPI) (*Service, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &Service{gw: gw}, nil
}

// Posts fetches one page of articles with normalized pagination.
func (s *Service) Posts(ctx context.Context, page, limit int) (*gateway.BlogPage, error) {
	norm := pagination.Normalize(pagination.Params{Page: page, Limit: limit})
	return s.gw.BlogPosts(ctx, norm.Page, norm.Limit)
}

// Post fetches one article with full content.
func (s *Service) Post(ctx context.Context, id int64) (*gateway.BlogPost, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	return s.gw.BlogPostByID(ctx, id)
}
