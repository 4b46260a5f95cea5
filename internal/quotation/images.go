package quotation

import (
	"context"
	"sync"

	"github.com/quatet/storefront-api/pkg/logger"
)

type imageSource interface {
	ProductImage(ctx context.Context, productID int64) (string, error)
}

// ImageCache memoizes product image URLs for quotation line rendering.
// Each product id is resolved at most once per cache lifetime: a failed
// lookup stores the empty string permanently, so the client falls back to
// its placeholder instead of hammering the catalog on every re-render.
type ImageCache struct {
	source imageSource
	logg   *logger.Logger

	mu   sync.Mutex
	urls map[int64]string
}

func NewImageCache(source imageSource, logg *logger.Logger) *ImageCache {
	return &ImageCache{
		source: source,
		logg:   logg,
		urls:   map[int64]string{},
	}
}

// ImageURL returns the cached image URL for a product, fetching it on first
// use. The empty string means "no image" whether the product genuinely has
// none or the lookup failed.
func (c *ImageCache) ImageURL(ctx context.Context, productID int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if url, ok := c.urls[productID]; ok {
		return url
	}

	url, err := c.source.ProductImage(ctx, productID)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "product_id", productID), "product image lookup failed, caching placeholder")
		}
		url = ""
	}
	c.urls[productID] = url
	return url
}
