package controllers

import (
	"net/http"

	"github.com/quatet/storefront-api/api/responses"
	"github.com/quatet/storefront-api/api/validators"
	"github.com/quatet/storefront-api/internal/gateway"
	quotationsvc "github.com/quatet/storefront-api/internal/quotation"
	"github.com/quatet/storefront-api/pkg/enums"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
	"github.com/quatet/storefront-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

type createQuotationRequest struct {
	CompanyName  string                       `json:"companyName" validate:"required"`
	ContactName  string                       `json:"contactName" validate:"required"`
	ContactEmail string                       `json:"contactEmail" validate:"required,email"`
	ContactPhone string                       `json:"contactPhone" validate:"required"`
	Note         string                       `json:"note"`
	Items        []createQuotationLineRequest `json:"items" validate:"required,min=1,dive"`
}

type createQuotationLineRequest struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type quotationActionRequest struct {
	Action  string `json:"action" validate:"required"`
	Message string `json:"message"`
}

type quotationFeeRequest struct {
	IsSubtracted int             `json:"isSubtracted" validate:"min=0,max=1"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Description  string          `json:"description" validate:"required"`
}

// QuotationList serves the listing for one party's scope.
func QuotationList(svc *quotationsvc.Service, scope gateway.QuotationListScope, logg *logger.Logger) http.HandlerFunc {
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

		views, err := svc.List(r.Context(), scope, r.URL.Query().Get("status"), page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// QuotationDetail serves one quotation's full view.
func QuotationDetail(svc *quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// QuotationCreate opens a new quotation request.
func QuotationCreate(svc *quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createQuotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := gateway.CreateQuotationInput{
			CompanyName:  payload.CompanyName,
			ContactName:  payload.ContactName,
			ContactEmail: payload.ContactEmail,
			ContactPhone: payload.ContactPhone,
			Note:         payload.Note,
			Lines:        make([]gateway.CreateQuotationLineInput, len(payload.Items)),
		}
		for i, item := range payload.Items {
			input.Lines[i] = gateway.CreateQuotationLineInput{ProductID: item.ProductID, Quantity: item.Quantity}
		}

		view, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// QuotationAct performs one negotiation action and returns the refreshed view.
func QuotationAct(svc *quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quotationActionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseQuotationAction(payload.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown action"))
			return
		}

		view, err := svc.Act(r.Context(), id, action, payload.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// QuotationFeeAdd attaches a fee to a quotation line.
func QuotationFeeAdd(svc *quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotationID, lineID, _, err := feePathIDs(r, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quotationFeeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddFee(r.Context(), quotationID, lineID, feeInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// QuotationFeeUpdate rewrites an existing fee.
func QuotationFeeUpdate(svc *quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotationID, lineID, feeID, err := feePathIDs(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quotationFeeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateFee(r.Context(), quotationID, lineID, feeID, feeInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// QuotationFeeDelete removes a fee from a quotation line.
func QuotationFeeDelete(svc *quotationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotationID, lineID, feeID, err := feePathIDs(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.DeleteFee(r.Context(), quotationID, lineID, feeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func feePathIDs(r *http.Request, withFee bool) (quotationID, lineID, feeID int64, err error) {
	if quotationID, err = validators.ParsePathID(r, "quotationId"); err != nil {
		return
	}
	if lineID, err = validators.ParsePathID(r, "lineId"); err != nil {
		return
	}
	if withFee {
		feeID, err = validators.ParsePathID(r, "feeId")
	}
	return
}

func feeInput(payload quotationFeeRequest) gateway.QuotationFeeInput {
	return gateway.QuotationFeeInput{
		IsSubtracted: payload.IsSubtracted,
		Amount:       payload.Amount,
		Description:  payload.Description,
	}
}
