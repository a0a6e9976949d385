package ledger

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType distinguishes the two balance-holding parties.
type OwnerType string

const (
	OwnerCompany OwnerType = "COMPANY"
	OwnerUser    OwnerType = "USER"
)

// Direction of a token movement.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Owner identifies a balance holder.
type Owner struct {
	Type OwnerType
	ID   uuid.UUID
}

// CompanyOwner builds a company-side owner
func CompanyOwner(id uuid.UUID) Owner { return Owner{Type: OwnerCompany, ID: id} }

// UserOwner builds a creative-side owner
func UserOwner(id uuid.UUID) Owner { return Owner{Type: OwnerUser, ID: id} }

// Entry is one immutable token movement. Entries are append-only;
// corrections are issued as new offsetting entries.
type Entry struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OwnerType     OwnerType  `db:"owner_type" json:"owner_type"`
	OwnerID       uuid.UUID  `db:"owner_id" json:"owner_id"`
	Direction     Direction  `db:"direction" json:"direction"`
	Amount        int64      `db:"amount" json:"amount"`
	BalanceBefore int64      `db:"balance_before" json:"balance_before"`
	BalanceAfter  int64      `db:"balance_after" json:"balance_after"`
	Reason        string     `db:"reason" json:"reason"`
	TicketID      *uuid.UUID `db:"ticket_id" json:"ticket_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Signed returns the amount with the direction applied
func (e *Entry) Signed() int64 {
	if e.Direction == DirectionDebit {
		return -e.Amount
	}
	return e.Amount
}
