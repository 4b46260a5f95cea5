package blog

import (
	"context"
	"testing"

	"github.com/quatet/storefront-api/internal/gateway"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
)

type stubBlogGateway struct {
	lastPage  int
	lastLimit int
}

func (s *stubBlogGateway) BlogPosts(ctx context.Context, page, limit int) (*gateway.BlogPage, error) {
	s.lastPage, s.lastLimit = page, limit
	return &gateway.BlogPage{Page: page}, nil
}

func (s *stubBlogGateway) BlogPostByID(ctx context.Context, id int64) (*gateway.BlogPost, error) {
	return &gateway.BlogPost{ID: id}, nil
}

func TestPostsNormalizesPagination(t *testing.T) {
	t.Parallel()

	gw := &stubBlogGateway{}
	svc, err := NewService(gw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Posts(context.Background(), 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastPage != 1 || gw.lastLimit != 25 {
		t.Fatalf("expected defaults 1/25, got %d/%d", gw.lastPage, gw.lastLimit)
	}
}

func TestPostRequiresID(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubBlogGateway{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Post(context.Background(), -1); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
