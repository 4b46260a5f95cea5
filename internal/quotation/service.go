package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/quatet/storefront-api/internal/gateway"
	"github.com/quatet/storefront-api/pkg/enums"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type gatewayAPI interface {
	ListQuotations(ctx context.Context, scope gateway.QuotationListScope, status string, page, limit int) ([]gateway.QuotationSummary, error)
	QuotationByID(ctx context.Context, id int64) (*gateway.QuotationDetail, error)
	CreateQuotation(ctx context.Context, input gateway.CreateQuotationInput) (*gateway.QuotationDetail, error)
	SubmitQuotation(ctx context.Context, id int64, message string) error
	CustomerAcceptQuotation(ctx context.Context, id int64, message string) error
	CustomerRejectQuotation(ctx context.Context, id int64, message string) error
	AdminApproveQuotation(ctx context.Context, id int64, message string) error
	AdminRejectQuotation(ctx context.Context, id int64, message string) error
	AddQuotationFee(ctx context.Context, quotationID, lineID int64, input gateway.QuotationFeeInput) error
	UpdateQuotationFee(ctx context.Context, quotationID, lineID, feeID int64, input gateway.QuotationFeeInput) error
	DeleteQuotationFee(ctx context.Context, quotationID, lineID, feeID int64) error
}

// SummaryView is a quotation row decorated for display.
type SummaryView struct {
	ID               int64                  `json:"id"`
	Status           enums.QuotationStatus  `json:"status"`
	StatusLabel      string                 `json:"statusLabel"`
	StatusStyle      BadgeStyle             `json:"statusStyle"`
	StageIndex       int                    `json:"stageIndex"`
	RequestDate      time.Time              `json:"requestDate"`
	CounterpartyName string                 `json:"counterpartyName"`
	TotalPrice       *decimal.Decimal       `json:"totalPrice,omitempty"`
}

// LineView is a negotiated line decorated with its product image.
type LineView struct {
	ID            int64                  `json:"id"`
	ProductID     int64                  `json:"productId"`
	ProductName   string                 `json:"productName"`
	SKU           string                 `json:"sku,omitempty"`
	ImageURL      string                 `json:"imageUrl,omitempty"`
	Quantity      int                    `json:"quantity"`
	UnitPrice     decimal.Decimal        `json:"unitPrice"`
	OriginalTotal decimal.Decimal        `json:"originalTotal"`
	SubtractTotal decimal.Decimal        `json:"subtractTotal"`
	AddTotal      decimal.Decimal        `json:"addTotal"`
	FinalTotal    decimal.Decimal        `json:"finalTotal"`
	Fees          []gateway.QuotationFee `json:"fees,omitempty"`
}

// DetailView is the full quotation page model: track state, permitted
// actions, decorated lines, and the negotiation trail.
type DetailView struct {
	SummaryView
	Revision      int                        `json:"revision"`
	StageStates   [StageCount]bool           `json:"stageStates"`
	Actions       []enums.QuotationAction    `json:"actions"`
	TotalQuantity int                        `json:"totalQuantity"`
	Lines         []LineView                 `json:"lines"`
	Messages      []gateway.QuotationMessage `json:"messages,omitempty"`
}

// Service builds display-ready quotation views over the platform gateway.
// It never mutates quotation state locally: every action round-trips and the
// refreshed detail is re-fetched afterwards, so the view always reflects the
// platform's decision rather than an optimistic guess.
type Service struct {
	gw     gatewayAPI
	images *ImageCache
	logg   *logger.Logger
}

func NewService(gw gatewayAPI, images *ImageCache, logg *logger.Logger) (*Service, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if images == nil {
		return nil, fmt.Errorf("image cache is required")
	}
	return &Service{gw: gw, images: images, logg: logg}, nil
}

// List fetches the scope-appropriate quotation listing. An invalid status
// filter is rejected before the network call.
func (s *Service) List(ctx context.Context, scope gateway.QuotationListScope, statusFilter string, page, limit int) ([]SummaryView, error) {
	if statusFilter != "" {
		if _, err := enums.ParseQuotationStatus(statusFilter); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown status filter")
		}
	}

	summaries, err := s.gw.ListQuotations(ctx, scope, statusFilter, page, limit)
	if err != nil {
		return nil, err
	}

	views := make([]SummaryView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, summaryView(summary))
	}
	return views, nil
}

// Get fetches one quotation and decorates it for display.
func (s *Service) Get(ctx context.Context, id int64) (*DetailView, error) {
	detail, err := s.gw.QuotationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detailView(ctx, detail), nil
}

// Create submits a new manual quotation request and returns its detail view.
func (s *Service) Create(ctx context.Context, input gateway.CreateQuotationInput) (*DetailView, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a quotation needs at least one line")
	}
	for _, line := range input.Lines {
		if line.ProductID <= 0 || line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "each line needs a product and a positive quantity")
		}
	}

	detail, err := s.gw.CreateQuotation(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.detailView(ctx, detail), nil
}

// Act performs a negotiation action and re-fetches the quotation. The action
// must be one the current status allows; the re-fetch after success keeps the
// platform authoritative over the resulting status.
func (s *Service) Act(ctx context.Context, id int64, action enums.QuotationAction, message string) (*DetailView, error) {
	detail, err := s.gw.QuotationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := enums.QuotationStatus(detail.Status)
	if !actionAllowed(status, action) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("action %q is not available while the quotation is %s", action, Label(status)))
	}

	switch action {
	case enums.QuotationActionSubmit:
		err = s.gw.SubmitQuotation(ctx, id, message)
	case enums.QuotationActionAccept:
		err = s.gw.CustomerAcceptQuotation(ctx, id, message)
	case enums.QuotationActionApprove:
		err = s.gw.AdminApproveQuotation(ctx, id, message)
	case enums.QuotationActionReject:
		if status == enums.QuotationStatusWaitingAdmin {
			err = s.gw.AdminRejectQuotation(ctx, id, message)
		} else {
			err = s.gw.CustomerRejectQuotation(ctx, id, message)
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
	}
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// AddFee attaches a discount or surcharge to a line and returns the
// refreshed quotation.
func (s *Service) AddFee(ctx context.Context, quotationID, lineID int64, input gateway.QuotationFeeInput) (*DetailView, error) {
	if err := validateFee(input); err != nil {
		return nil, err
	}
	if err := s.gw.AddQuotationFee(ctx, quotationID, lineID, input); err != nil {
		return nil, err
	}
	return s.Get(ctx, quotationID)
}

// UpdateFee rewrites an existing fee and returns the refreshed quotation.
func (s *Service) UpdateFee(ctx context.Context, quotationID, lineID, feeID int64, input gateway.QuotationFeeInput) (*DetailView, error) {
	if err := validateFee(input); err != nil {
		return nil, err
	}
	if err := s.gw.UpdateQuotationFee(ctx, quotationID, lineID, feeID, input); err != nil {
		return nil, err
	}
	return s.Get(ctx, quotationID)
}

// DeleteFee removes a fee and returns the refreshed quotation.
func (s *Service) DeleteFee(ctx context.Context, quotationID, lineID, feeID int64) (*DetailView, error) {
	if err := s.gw.DeleteQuotationFee(ctx, quotationID, lineID, feeID); err != nil {
		return nil, err
	}
	return s.Get(ctx, quotationID)
}

func validateFee(input gateway.QuotationFeeInput) error {
	if input.IsSubtracted != 0 && input.IsSubtracted != 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "isSubtracted must be 0 or 1")
	}
	if input.Amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "fee amount cannot be negative")
	}
	return nil
}

func actionAllowed(status enums.QuotationStatus, action enums.QuotationAction) bool {
	for _, allowed := range ActionsFor(status) {
		if allowed == action {
			return true
		}
	}
	return false
}

func summaryView(summary gateway.QuotationSummary) SummaryView {
	status := enums.QuotationStatus(summary.Status)
	return SummaryView{
		ID:               summary.ID,
		Status:           status,
		StatusLabel:      Label(status),
		StatusStyle:      Style(status),
		StageIndex:       StageIndex(status),
		RequestDate:      summary.RequestDate,
		CounterpartyName: summary.CounterpartyName,
		TotalPrice:       summary.TotalPrice,
	}
}

func (s *Service) detailView(ctx context.Context, detail *gateway.QuotationDetail) *DetailView {
	status := enums.QuotationStatus(detail.Status)

	view := &DetailView{
		SummaryView: summaryView(detail.QuotationSummary),
		Revision:    detail.Revision,
		StageStates: StageStates(status),
		Actions:     ActionsFor(status),
		Lines:       make([]LineView, 0, len(detail.Lines)),
		Messages:    detail.Messages,
	}

	for _, line := range detail.Lines {
		view.TotalQuantity += line.Quantity
		view.Lines = append(view.Lines, LineView{
			ID:            line.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			SKU:           line.SKU,
			ImageURL:      s.images.ImageURL(ctx, line.ProductID),
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			OriginalTotal: line.OriginalTotal,
			SubtractTotal: line.SubtractTotal,
			AddTotal:      line.AddTotal,
			FinalTotal:    line.FinalTotal,
			Fees:          line.Fees,
		})
	}
	return view
}
