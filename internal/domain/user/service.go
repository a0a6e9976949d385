package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListCreatives(ctx context.Context) ([]User, error) {
	return s.repo.ListCreatives(ctx)
}

// Pause marks a creative unavailable, optionally until a given time.
// Expiry is checked lazily when the user is read back.
func (s *Service) Pause(ctx context.Context, id uuid.UUID, until *time.Time) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleCreative {
		return nil, ErrNotACreative
	}

	if err := s.repo.SetPause(ctx, id, until); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", id.String()).Msg("creative paused")
	return s.repo.GetByID(ctx, id)
}

// Resume clears a creative's pause.
func (s *Service) Resume(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleCreative {
		return nil, ErrNotACreative
	}

	if err := s.repo.ClearPause(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
