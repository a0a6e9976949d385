package withdrawal

import (
	"time"

	"github.com/google/uuid"
)

// Status of a withdrawal request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusPaid     Status = "PAID"
)

// CanTransition encodes the withdrawal state machine:
// PENDING → APPROVED | REJECTED, APPROVED → PAID.
// REJECTED and PAID are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusPaid
	default:
		return false
	}
}

// Withdrawal is a creative's request to cash out tokens. Funds move only
// at MARK_PAID; rejection has no ledger effect because nothing was
// debited at request time.
type Withdrawal struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	CreativeID        uuid.UUID  `db:"creative_id" json:"creative_id"`
	AmountTokens      int64      `db:"amount_tokens" json:"amount_tokens"`
	Status            Status     `db:"status" json:"status"`
	AdminRejectReason *string    `db:"admin_reject_reason" json:"admin_reject_reason,omitempty"`
	RequestedAt       time.Time  `db:"requested_at" json:"requested_at"`
	ApprovedAt        *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	RejectedAt        *time.Time `db:"rejected_at" json:"rejected_at,omitempty"`
	PaidAt            *time.Time `db:"paid_at" json:"paid_at,omitempty"`
}

// InFlight reports whether the withdrawal still reserves balance
func (w *Withdrawal) InFlight() bool {
	return w.Status == StatusPending || w.Status == StatusApproved
}
