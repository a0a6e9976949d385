package company

import (
	"time"

	"github.com/google/uuid"
)

// CompanyRole is a member's role inside their company.
type CompanyRole string

const (
	RoleOwner   CompanyRole = "OWNER"
	RolePM      CompanyRole = "PM"
	RoleBilling CompanyRole = "BILLING"
	RoleMember  CompanyRole = "MEMBER"
)

// Company is a customer tenant. Its token balance lives in the ledger's
// cached balance table; the field here is populated on read.
type Company struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	PlanID    *uuid.UUID `db:"plan_id" json:"plan_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	TokenBalance int64 `db:"-" json:"token_balance"`
}

// Member ties a user to a company with a company-scoped role.
type Member struct {
	CompanyID   uuid.UUID   `db:"company_id" json:"company_id"`
	UserID      uuid.UUID   `db:"user_id" json:"user_id"`
	CompanyRole CompanyRole `db:"company_role" json:"company_role"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`

	// Joined from users for the members page.
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
