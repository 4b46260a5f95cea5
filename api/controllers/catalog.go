package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/quatet/storefront-api/api/responses"
	"github.com/quatet/storefront-api/api/validators"
	catalogsvc "github.com/quatet/storefront-api/internal/catalog"
	"github.com/quatet/storefront-api/internal/gateway"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
	"github.com/quatet/storefront-api/pkg/pagination"
)

// ProductList serves one page of the browsable catalog.
func ProductList(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := gateway.ProductListParams{
			Page:   page,
			Limit:  limit,
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
			categoryID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || categoryID <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "categoryId must be a positive id"))
				return
			}
			params.CategoryID = categoryID
		}

		result, err := svc.Products(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail serves one product.
func ProductDetail(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Product(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CategoryList serves the browse navigation categories.
func CategoryList(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
