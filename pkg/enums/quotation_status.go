package enums

import "fmt"

// QuotationStatus tracks the lifecycle of a bulk-order quotation as reported
// by the platform. The platform owns the state machine; new statuses may ship
// server-side at any time, so callers must treat ParseQuotationStatus errors
// as a displayable unknown, never as fatal.
type QuotationStatus string

const (
	QuotationStatusDraft            QuotationStatus = "DRAFT"
	QuotationStatusSubmitted        QuotationStatus = "SUBMITTED"
	QuotationStatusStaffReviewing   QuotationStatus = "STAFF_REVIEWING"
	QuotationStatusWaitingAdmin     QuotationStatus = "WAITING_ADMIN"
	QuotationStatusAdminRejected    QuotationStatus = "ADMIN_REJECTED"
	QuotationStatusWaitingCustomer  QuotationStatus = "WAITING_CUSTOMER"
	QuotationStatusCustomerRejected QuotationStatus = "CUSTOMER_REJECTED"
	QuotationStatusCustomerAccepted QuotationStatus = "CUSTOMER_ACCEPTED"
	QuotationStatusConverted        QuotationStatus = "CONVERTED_TO_ORDER"
	QuotationStatusCancelled        QuotationStatus = "CANCELLED"
)

var validQuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSubmitted,
	QuotationStatusStaffReviewing,
	QuotationStatusWaitingAdmin,
	QuotationStatusAdminRejected,
	QuotationStatusWaitingCustomer,
	QuotationStatusCustomerRejected,
	QuotationStatusCustomerAccepted,
	QuotationStatusConverted,
	QuotationStatusCancelled,
}

// KnownQuotationStatuses returns the full observed vocabulary.
func KnownQuotationStatuses() []QuotationStatus {
	out := make([]QuotationStatus, len(validQuotationStatuses))
	copy(out, validQuotationStatuses)
	return out
}

// String implements fmt.Stringer.
func (q QuotationStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuotationStatus.
func (q QuotationStatus) IsValid() bool {
	for _, candidate := range validQuotationStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuotationStatus converts raw input into a QuotationStatus.
func ParseQuotationStatus(value string) (QuotationStatus, error) {
	for _, candidate := range validQuotationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation status %q", value)
}
