package company

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/ledger"
)

type Service struct {
	repo   *Repository
	ledger *ledger.Service
}

func NewService(repo *Repository, ledgerSvc *ledger.Service) *Service {
	return &Service{repo: repo, ledger: ledgerSvc}
}

// Get returns a company with its current token balance
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.Balance(ctx, ledger.CompanyOwner(id))
	if err != nil {
		return nil, err
	}
	c.TokenBalance = balance
	return c, nil
}

// Tokens returns the balance plus recent ledger history for the
// customer tokens page
func (s *Service) Tokens(ctx context.Context, companyID uuid.UUID, limit, offset int) (int64, []ledger.Entry, error) {
	balance, err := s.ledger.Balance(ctx, ledger.CompanyOwner(companyID))
	if err != nil {
		return 0, nil, err
	}

	history, err := s.ledger.History(ctx, ledger.CompanyOwner(companyID), limit, offset)
	if err != nil {
		return 0, nil, err
	}
	return balance, history, nil
}

// GrantTokens credits a company's balance (admin action, e.g. a plan's
// monthly grant or a manual top-up)
func (s *Service) GrantTokens(ctx context.Context, companyID uuid.UUID, amount int64, reason string) (*ledger.Entry, error) {
	if _, err := s.repo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	entry, err := s.ledger.Credit(ctx, ledger.CompanyOwner(companyID), amount, reason, nil)
	if err != nil {
		return nil, err
	}

	log.Info().Str("company_id", companyID.String()).Int64("amount", amount).Msg("company tokens granted")
	return entry, nil
}

func (s *Service) Update(ctx context.Context, c *Company) error {
	return s.repo.Update(ctx, c)
}

func (s *Service) ListMembers(ctx context.Context, companyID uuid.UUID) ([]Member, error) {
	return s.repo.ListMembers(ctx, companyID)
}
