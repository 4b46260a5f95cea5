package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// QuotationSummary is the list-view projection of a quotation.
type QuotationSummary struct {
	ID               int64            `json:"id"`
	Status           string           `json:"status"`
	RequestDate      time.Time        `json:"requestDate"`
	CounterpartyName string           `json:"counterpartyName"`
	TotalPrice       *decimal.Decimal `json:"totalPrice,omitempty"`
}

// QuotationFee is a single discount or surcharge attached to a line.
type QuotationFee struct {
	ID           int64           `json:"id"`
	IsSubtracted int             `json:"isSubtracted"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

// QuotationLine is one negotiated line item. finalTotal is expected to equal
// originalTotal - subtractTotal + addTotal, but the platform owns that math.
type QuotationLine struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"productId"`
	ProductName   string          `json:"productName"`
	SKU           string          `json:"sku,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	OriginalTotal decimal.Decimal `json:"originalTotal"`
	SubtractTotal decimal.Decimal `json:"subtractTotal"`
	AddTotal      decimal.Decimal `json:"addTotal"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
	Fees          []QuotationFee  `json:"fees,omitempty"`
}

// QuotationMessage is one entry of the append-only negotiation audit trail.
type QuotationMessage struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuotationDetail is the full server-side projection of one quotation.
type QuotationDetail struct {
	QuotationSummary
	Revision int                `json:"revision"`
	Lines    []QuotationLine    `json:"lines"`
	Messages []QuotationMessage `json:"messages,omitempty"`
}

// QuotationListScope selects which party's listing endpoint is queried.
type QuotationListScope string

const (
	QuotationScopeCustomer QuotationListScope = "customer"
	QuotationScopeStaff    QuotationListScope = "staff"
	QuotationScopeAdmin    QuotationListScope = "admin"
)

// CreateQuotationLineInput is one requested line on a new manual quotation.
type CreateQuotationLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateQuotationInput carries the company/contact fields and requested lines.
type CreateQuotationInput struct {
	CompanyName  string                     `json:"companyName"`
	ContactName  string                     `json:"contactName"`
	ContactEmail string                     `json:"contactEmail"`
	ContactPhone string                     `json:"contactPhone"`
	Note         string                     `json:"note,omitempty"`
	Lines        []CreateQuotationLineInput `json:"items"`
}

// QuotationFeeInput creates or updates a fee on a quotation line.
type QuotationFeeInput struct {
	IsSubtracted int             `json:"isSubtracted"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

type actionRequest struct {
	Message string `json:"message,omitempty"`
}

func quotationBasePath(scope QuotationListScope) string {
	switch scope {
	case QuotationScopeStaff:
		return "/api/staff/quotations"
	case QuotationScopeAdmin:
		return "/api/admin/quotations"
	default:
		return "/api/quotations"
	}
}

// ListQuotations fetches the scope-appropriate listing, optionally filtered
// by status string (forwarded verbatim; the platform validates it).
func (c *Client) ListQuotations(ctx context.Context, scope QuotationListScope, status string, page, limit int) ([]QuotationSummary, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if status != "" {
		query.Set("status", status)
	}

	var payload []QuotationSummary
	path := quotationBasePath(scope) + "?" + query.Encode()
	if err := c.call(ctx, http.MethodGet, path, "quotation.list", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// QuotationByID fetches the full detail.
func (c *Client) QuotationByID(ctx context.Context, id int64) (*QuotationDetail, error) {
	var payload QuotationDetail
	path := fmt.Sprintf("/api/quotations/%d", id)
	if err := c.call(ctx, http.MethodGet, path, "quotation.detail", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateQuotation opens a new draft quotation.
func (c *Client) CreateQuotation(ctx context.Context, input CreateQuotationInput) (*QuotationDetail, error) {
	var payload QuotationDetail
	if err := c.call(ctx, http.MethodPost, "/api/quotations", "quotation.create", input, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmitQuotation moves a draft into review.
func (c *Client) SubmitQuotation(ctx context.Context, id int64, message string) error {
	path := fmt.Sprintf("/api/quotations/%d/submit", id)
	return c.call(ctx, http.MethodPost, path, "quotation.submit", actionRequest{Message: message}, nil)
}

// CustomerAcceptQuotation records the customer's acceptance.
func (c *Client) CustomerAcceptQuotation(ctx context.Context, id int64, message string) error {
	path := fmt.Sprintf("/api/quotations/%d/customer-accept", id)
	return c.call(ctx, http.MethodPost, path, "quotation.customer_accept", actionRequest{Message: message}, nil)
}

// CustomerRejectQuotation records the customer's rejection.
func (c *Client) CustomerRejectQuotation(ctx context.Context, id int64, message string) error {
	path := fmt.Sprintf("/api/quotations/%d/customer-reject", id)
	return c.call(ctx, http.MethodPost, path, "quotation.customer_reject", actionRequest{Message: message}, nil)
}

// AdminApproveQuotation records the admin's approval.
func (c *Client) AdminApproveQuotation(ctx context.Context, id int64, message string) error {
	path := fmt.Sprintf("/api/admin/quotations/%d/approve", id)
	return c.call(ctx, http.MethodPost, path, "quotation.admin_approve", actionRequest{Message: message}, nil)
}

// AdminRejectQuotation records the admin's rejection.
func (c *Client) AdminRejectQuotation(ctx context.Context, id int64, message string) error {
	path := fmt.Sprintf("/api/admin/quotations/%d/reject", id)
	return c.call(ctx, http.MethodPost, path, "quotation.admin_reject", actionRequest{Message: message}, nil)
}

// AddQuotationFee attaches a fee to a quotation line. Staff only.
func (c *Client) AddQuotationFee(ctx context.Context, quotationID, lineID int64, input QuotationFeeInput) error {
	path := fmt.Sprintf("/api/staff/quotations/%d/items/%d/fees", quotationID, lineID)
	return c.call(ctx, http.MethodPost, path, "quotation.fee_add", input, nil)
}

// UpdateQuotationFee rewrites an existing fee. Staff only.
func (c *Client) UpdateQuotationFee(ctx context.Context, quotationID, lineID, feeID int64, input QuotationFeeInput) error {
	path := fmt.Sprintf("/api/staff/quotations/%d/items/%d/fees/%d", quotationID, lineID, feeID)
	return c.call(ctx, http.MethodPut, path, "quotation.fee_update", input, nil)
}

// DeleteQuotationFee removes a fee. Staff only.
func (c *Client) DeleteQuotationFee(ctx context.Context, quotationID, lineID, feeID int64) error {
	path := fmt.Sprintf("/api/staff/quotations/%d/items/%d/fees/%d", quotationID, lineID, feeID)
	return c.call(ctx, http.MethodDelete, path, "quotation.fee_delete", nil, nil)
}
