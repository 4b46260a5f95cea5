package controllers

import (
	"net/http"

	"github.com/quatet/storefront-api/api/responses"
	"github.com/quatet/storefront-api/api/validators"
	cartsvc "github.com/quatet/storefront-api/internal/cart"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type cartLineView struct {
	LineID      int64           `json:"lineId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity"`
}

type cartView struct {
	Items      []cartLineView  `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	OpenPanel  bool            `json:"openPanel,omitempty"`
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"min=0"`
}

type updateCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

func newCartView(store *cartsvc.Store, snapshot cartsvc.Snapshot, openPanel bool) cartView {
	view := cartView{
		Items:      make([]cartLineView, 0, len(snapshot.Lines)),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
		OpenPanel:  openPanel,
	}
	for _, line := range snapshot.Lines {
		view.Items = append(view.Items, cartLineView{
			LineID:      line.LineID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			ImageURL:    line.ImageURL,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
		})
	}
	return view
}

func storeForRequest(r *http.Request, manager *cartsvc.Manager) (*cartsvc.Store, error) {
	userID := pkgauth.UserIDFromContext(r.Context())
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeAuthRequired, "sign in to use the cart")
	}
	return manager.StoreFor(userID)
}

// CartFetch syncs the mirror against the platform and returns it.
func CartFetch(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Sync(r.Context())
		responses.WriteSuccess(w, newCartView(store, store.Snapshot(), false))
	}
}

// CartAddItem adds a product to the cart.
func CartAddItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.AddItem(r.Context(), payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store, result.Snapshot, result.OpenPanel))
	}
}

// CartUpdateItem changes a line's quantity; zero or less removes the line.
func CartUpdateItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.UpdateQuantity(r.Context(), payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store, result.Snapshot, result.OpenPanel))
	}
}

// CartRemoveItem removes a product's line.
func CartRemoveItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.RemoveItem(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store, result.Snapshot, result.OpenPanel))
	}
}

// CartClear empties the cart on both sides.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store, store.Snapshot(), false))
	}
}

// CartCount answers the header badge from the platform's count-only
// endpoint, applying the result to the mirror so both stay in step.
func CartCount(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"count": store.RefreshCount(r.Context())})
	}
}
