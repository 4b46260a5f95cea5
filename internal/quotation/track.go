package quotation

import "github.com/quatet/storefront-api/pkg/enums"

// StageCount is the number of steps on the negotiation progress track.
const StageCount = 6

// BadgeStyle is the visual treatment a client should give a status badge.
type BadgeStyle string

const (
	BadgeNeutral BadgeStyle = "neutral"
	BadgeInfo    BadgeStyle = "info"
	BadgeWarning BadgeStyle = "warning"
	BadgeDanger  BadgeStyle = "danger"
	BadgeSuccess BadgeStyle = "success"
)

// StageIndex maps a status onto the progress track. Several statuses share a
// stage: review-side statuses collapse onto stage 2 and customer-side ones
// onto stage 3, so the track moves forward through the negotiation even when
// a party rejects and the quotation loops back for revision. Cancelled and
// unrecognized statuses render at the start of the track.
func StageIndex(status enums.QuotationStatus) int {
	switch status {
	case enums.QuotationStatusDraft:
		return 0
	case enums.QuotationStatusSubmitted:
		return 1
	case enums.QuotationStatusStaffReviewing,
		enums.QuotationStatusWaitingAdmin,
		enums.QuotationStatusAdminRejected:
		return 2
	case enums.QuotationStatusWaitingCustomer,
		enums.QuotationStatusCustomerRejected:
		return 3
	case enums.QuotationStatusCustomerAccepted:
		return 4
	case enums.QuotationStatusConverted:
		return 5
	default:
		return 0
	}
}

// Label returns the display name for a status. Unrecognized statuses get a
// generic label rather than leaking the raw wire value.
func Label(status enums.QuotationStatus) string {
	switch status {
	case enums.QuotationStatusDraft:
		return "Draft"
	case enums.QuotationStatusSubmitted:
		return "Submitted"
	case enums.QuotationStatusStaffReviewing:
		return "Under Review"
	case enums.QuotationStatusWaitingAdmin:
		return "Awaiting Approval"
	case enums.QuotationStatusAdminRejected:
		return "Returned for Revision"
	case enums.QuotationStatusWaitingCustomer:
		return "Awaiting Your Response"
	case enums.QuotationStatusCustomerRejected:
		return "Changes Requested"
	case enums.QuotationStatusCustomerAccepted:
		return "Accepted"
	case enums.QuotationStatusConverted:
		return "Ordered"
	case enums.QuotationStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Style returns the badge treatment for a status.
func Style(status enums.QuotationStatus) BadgeStyle {
	switch status {
	case enums.QuotationStatusSubmitted, enums.QuotationStatusStaffReviewing:
		return BadgeInfo
	case enums.QuotationStatusWaitingAdmin, enums.QuotationStatusWaitingCustomer:
		return BadgeWarning
	case enums.QuotationStatusAdminRejected, enums.QuotationStatusCustomerRejected:
		return BadgeDanger
	case enums.QuotationStatusCustomerAccepted, enums.QuotationStatusConverted:
		return BadgeSuccess
	default:
		return BadgeNeutral
	}
}

// StageStates expands a status into per-stage completion flags for the
// progress track: every stage up to and including the current one is marked
// complete.
func StageStates(status enums.QuotationStatus) [StageCount]bool {
	var states [StageCount]bool
	current := StageIndex(status)
	for i := 0; i <= current; i++ {
		states[i] = true
	}
	return states
}

// ActionsFor returns the negotiation actions available in a given status.
// It is a pure function of the status: role enforcement happens at the HTTP
// layer, so a customer never sees approve even though it is listed here for
// WAITING_ADMIN.
func ActionsFor(status enums.QuotationStatus) []enums.QuotationAction {
	switch status {
	case enums.QuotationStatusDraft:
		return []enums.QuotationAction{enums.QuotationActionSubmit}
	case enums.QuotationStatusWaitingCustomer:
		return []enums.QuotationAction{enums.QuotationActionAccept, enums.QuotationActionReject}
	case enums.QuotationStatusWaitingAdmin:
		return []enums.QuotationAction{enums.QuotationActionApprove, enums.QuotationActionReject}
	default:
		return nil
	}
}
