package payout

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// TierRepo is the storage the calculator needs.
type TierRepo interface {
	ListTiers(ctx context.Context) ([]Tier, error)
	GetTier(ctx context.Context, id uuid.UUID) (*Tier, error)
	CreateTier(ctx context.Context, t *Tier) error
	UpdateTier(ctx context.Context, t *Tier) error
	DeleteTier(ctx context.Context, id uuid.UUID) error
	CountCompletedSince(ctx context.Context, creativeID uuid.UUID, since time.Time) (int, error)
}

type Service struct {
	repo        TierRepo
	basePercent int
}

func NewService(repo TierRepo, basePercent int) *Service {
	if basePercent <= 0 {
		basePercent = 60
	}
	return &Service{repo: repo, basePercent: basePercent}
}

// BasePercent returns the fallback percent applied when no tier qualifies
func (s *Service) BasePercent() int {
	return s.basePercent
}

// CurrentPercent recomputes the creative's payout percent on demand.
// Never cached: completions age out of the rolling window as the
// boundary moves with "now".
func (s *Service) CurrentPercent(ctx context.Context, creativeID uuid.UUID) (int, error) {
	percent, _, err := s.evaluate(ctx, creativeID, nil)
	return percent, err
}

// CurrentStatus returns the full tier picture for the creative's payout page
func (s *Service) CurrentStatus(ctx context.Context, creativeID uuid.UUID) (*Status, error) {
	counts := make(map[string]int)
	percent, qualified, err := s.evaluate(ctx, creativeID, counts)
	if err != nil {
		return nil, err
	}

	tiers, err := s.repo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{
		CurrentPercent: percent,
		BasePercent:    s.basePercent,
		QualifiedTier:  qualified,
		Tiers:          tiers,
		WindowCounts:   counts,
	}, nil
}

func (s *Service) evaluate(ctx context.Context, creativeID uuid.UUID, counts map[string]int) (int, *Tier, error) {
	tiers, err := s.repo.ListTiers(ctx)
	if err != nil {
		return 0, nil, err
	}

	now := time.Now()
	// Window counts are identical for tiers sharing a window size.
	byWindow := make(map[int]int)

	var best *Tier
	for i := range tiers {
		tier := &tiers[i]

		count, ok := byWindow[tier.TimeWindowDays]
		if !ok {
			since := now.AddDate(0, 0, -tier.TimeWindowDays)
			count, err = s.repo.CountCompletedSince(ctx, creativeID, since)
			if err != nil {
				return 0, nil, err
			}
			byWindow[tier.TimeWindowDays] = count
		}
		if counts != nil {
			counts[tier.ID.String()] = count
		}

		if count < tier.MinCompletedTickets {
			continue
		}
		// Strictly-greater keeps the earliest-created tier on percent ties.
		if best == nil || tier.PayoutPercent > best.PayoutPercent {
			best = tier
		}
	}

	if best == nil {
		return s.basePercent, nil, nil
	}
	return best.PayoutPercent, best, nil
}

// ScaleTokens converts a job's base creative payout into the amount
// actually credited under the given percent:
// round(tokens × percent ÷ basePercent).
func (s *Service) ScaleTokens(baseTokens int64, percent int) int64 {
	return int64(math.Round(float64(baseTokens) * float64(percent) / float64(s.basePercent)))
}

// CreateTier validates and stores a new tier
func (s *Service) CreateTier(ctx context.Context, t *Tier) error {
	if t.PayoutPercent <= 0 || t.PayoutPercent > 100 {
		return ErrInvalidPercent
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return s.repo.CreateTier(ctx, t)
}

// UpdateTier validates and updates an existing tier
func (s *Service) UpdateTier(ctx context.Context, t *Tier) error {
	if t.PayoutPercent <= 0 || t.PayoutPercent > 100 {
		return ErrInvalidPercent
	}
	return s.repo.UpdateTier(ctx, t)
}

func (s *Service) DeleteTier(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTier(ctx, id)
}

func (s *Service) ListTiers(ctx context.Context) ([]Tier, error) {
	return s.repo.ListTiers(ctx)
}
