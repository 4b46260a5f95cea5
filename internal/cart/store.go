package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/quatet/storefront-api/internal/gateway"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Line is one mirrored cart line. LineID is the server-assigned identifier
// used to address mutations; ProductID is the unique key within the cart.
type Line struct {
	LineID      int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	ImageURL    string
	SKU         string
	Quantity    int
}

// Snapshot is the full authoritative cart state as last confirmed by the
// platform. It is replaced wholesale, never patched.
type Snapshot struct {
	Lines     []Line
	ItemCount int
}

// Result is what a successful mutation hands back to the caller: the applied
// snapshot plus whether the UI should open its cart panel.
type Result struct {
	Snapshot  Snapshot
	OpenPanel bool
}

type gatewayAPI interface {
	FetchCart(ctx context.Context) (*gateway.CartPayload, error)
	CartCount(ctx context.Context) (int, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (*gateway.CartPayload, error)
	UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*gateway.CartPayload, error)
	RemoveCartItem(ctx context.Context, cartItemID int64) (*gateway.CartPayload, error)
	ClearCart(ctx context.Context) error
}

// Store mirrors one user's server-side cart. The platform is the single
// source of truth: every mutation round-trips through the gateway and the
// returned snapshot replaces local state wholesale. On failure the previous
// snapshot is preserved so the UI degrades to last-known-good.
//
// The mutex guards only snapshot application, never the network call itself.
// Two rapid mutations may therefore race and the last response to arrive
// wins, not the last one sent; that matches the platform contract's observed
// behavior and is an accepted weakness, not a guarantee.
type Store struct {
	gw   gatewayAPI
	logg *logger.Logger

	mu        sync.Mutex
	lines     []Line
	itemCount int
	inflight  int
}

// NewStore builds a cart mirror over the provided gateway.
func NewStore(gw gatewayAPI, logg *logger.Logger) (*Store, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &Store{gw: gw, logg: logg}, nil
}

// AddItem adds quantity units of a product and applies the returned snapshot.
// Anonymous users cannot add to the server cart.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int) (*Result, error) {
	if pkgauth.TokenFromContext(ctx) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeAuthRequired, "sign in to add items to your cart")
	}
	if quantity < 1 {
		quantity = 1
	}

	s.beginCall()
	defer s.endCall()

	payload, err := s.gw.AddCartItem(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	snapshot := s.apply(payload)
	return &Result{Snapshot: snapshot, OpenPanel: true}, nil
}

// RemoveItem deletes the line holding the given product. The server-assigned
// line id is resolved from the current mirror; a miss means local state is
// stale relative to the server.
func (s *Store) RemoveItem(ctx context.Context, productID int64) (*Result, error) {
	lineID, ok := s.lineIDFor(productID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeLineNotFound, "product is not in the cart").
			WithDetails(map[string]any{"product_id": productID})
	}

	s.beginCall()
	defer s.endCall()

	payload, err := s.gw.RemoveCartItem(ctx, lineID)
	if err != nil {
		return nil, err
	}

	snapshot := s.apply(payload)
	return &Result{Snapshot: snapshot}, nil
}

// UpdateQuantity sets a line's quantity. Anything below 1 deletes the line
// instead; the cart never holds a zero-quantity line.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) (*Result, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}

	lineID, ok := s.lineIDFor(productID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeLineNotFound, "product is not in the cart").
			WithDetails(map[string]any{"product_id": productID})
	}

	s.beginCall()
	defer s.endCall()

	payload, err := s.gw.UpdateCartItem(ctx, lineID, quantity)
	if err != nil {
		return nil, err
	}

	snapshot := s.apply(payload)
	return &Result{Snapshot: snapshot}, nil
}

// Clear empties the server cart. The platform returns no snapshot for this
// call, so local state is forced empty directly; the target state is
// unambiguous.
func (s *Store) Clear(ctx context.Context) error {
	if pkgauth.TokenFromContext(ctx) == "" {
		return pkgerrors.New(pkgerrors.CodeAuthRequired, "sign in to manage your cart")
	}

	s.beginCall()
	defer s.endCall()

	if err := s.gw.ClearCart(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.lines = nil
	s.itemCount = 0
	s.mu.Unlock()
	return nil
}

// Sync re-fetches the authoritative cart. Anonymous users have no server
// cart, so their mirror is forced empty without touching the network. Fetch
// failures are logged and swallowed: a stale cached view beats blocking the
// UI on a passive refresh.
func (s *Store) Sync(ctx context.Context) {
	if pkgauth.TokenFromContext(ctx) == "" {
		s.mu.Lock()
		s.lines = nil
		s.itemCount = 0
		s.mu.Unlock()
		return
	}

	s.beginCall()
	defer s.endCall()

	payload, err := s.gw.FetchCart(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart sync failed, keeping last known snapshot", err)
		}
		return
	}
	s.apply(payload)
}

// RefreshCount asks the platform for its lightweight item count and applies
// it as the server-reported total, so a cold mirror still reports the real
// badge number. Anonymous users are forced to zero without touching the
// network; fetch failures are logged and swallowed like Sync, returning the
// last known count.
func (s *Store) RefreshCount(ctx context.Context) int {
	if pkgauth.TokenFromContext(ctx) == "" {
		s.mu.Lock()
		s.lines = nil
		s.itemCount = 0
		s.mu.Unlock()
		return 0
	}

	s.beginCall()
	defer s.endCall()

	count, err := s.gw.CartCount(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart count refresh failed, keeping last known count", err)
		}
		return s.TotalItems()
	}

	s.mu.Lock()
	s.itemCount = count
	s.mu.Unlock()
	return count
}

// Snapshot returns a copy of the current mirror.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalPrice recomputes Σ unitPrice × quantity over the current lines on
// every call, so it can never drift from the mirror itself.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// TotalItems returns the last server-reported count. Deliberately not a local
// recomputation: the header badge is fed by a count-only endpoint and both
// must show the same number.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount
}

// Loading reports whether any cart call is currently in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *Store) beginCall() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) endCall() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *Store) lineIDFor(productID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.ProductID == productID {
			return line.LineID, true
		}
	}
	return 0, false
}

// apply replaces the mirror with the server-confirmed payload and returns a
// copy of the applied snapshot.
func (s *Store) apply(payload *gateway.CartPayload) Snapshot {
	lines := make([]Line, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, Line{
			LineID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.Price,
			ImageURL:    item.ImageURL,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	s.itemCount = payload.TotalItem
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return Snapshot{Lines: lines, ItemCount: s.itemCount}
}
