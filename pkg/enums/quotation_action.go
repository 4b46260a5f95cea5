package enums

import "fmt"

// QuotationAction names the operations a viewer can invoke on a quotation.
type QuotationAction string

const (
	QuotationActionSubmit  QuotationAction = "submit"
	QuotationActionAccept  QuotationAction = "accept"
	QuotationActionReject  QuotationAction = "reject"
	QuotationActionApprove QuotationAction = "approve"
)

var validQuotationActions = []QuotationAction{
	QuotationActionSubmit,
	QuotationActionAccept,
	QuotationActionReject,
	QuotationActionApprove,
}

// String implements fmt.Stringer.
func (q QuotationAction) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuotationAction.
func (q QuotationAction) IsValid() bool {
	for _, candidate := range validQuotationActions {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuotationAction converts raw input into a QuotationAction.
func ParseQuotationAction(value string) (QuotationAction, error) {
	for _, candidate := range validQuotationActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation action %q", value)
}
