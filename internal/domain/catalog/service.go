package catalog

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

func (s *Service) ListJobTypes(ctx context.Context, activeOnly bool) ([]JobType, error) {
	return s.repo.ListJobTypes(ctx, activeOnly)
}

func (s *Service) GetJobType(ctx context.Context, id uuid.UUID) (*JobType, error) {
	return s.repo.GetJobType(ctx, id)
}

// CreateJobType derives token costs and stores the job type
func (s *Service) CreateJobType(ctx context.Context, jt *JobType) error {
	if jt.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *jt.CategoryID); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	jt.ID = uuid.New()
	jt.CreatedAt = now
	jt.UpdatedAt = now
	jt.DeriveCosts()

	return s.repo.CreateJobType(ctx, jt)
}

// UpdateJobType re-derives token costs on every update so they stay
// consistent with estimated hours
func (s *Service) UpdateJobType(ctx context.Context, jt *JobType) error {
	if jt.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *jt.CategoryID); err != nil {
			return err
		}
	}

	jt.DeriveCosts()
	return s.repo.UpdateJobType(ctx, jt)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c := &Category{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, c *Category) error {
	return s.repo.UpdateCategory(ctx, c)
}

// MigrateCategory moves all job types from one category to another and
// deactivates the source
func (s *Service) MigrateCategory(ctx context.Context, sourceID, targetID uuid.UUID) (int, error) {
	if sourceID == targetID {
		return 0, ErrSameCategory
	}
	if _, err := s.repo.GetCategory(ctx, sourceID); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetCategory(ctx, targetID); err != nil {
		return 0, err
	}

	moved, err := s.repo.MigrateCategory(ctx, sourceID, targetID)
	if err != nil {
		return 0, err
	}

	log.Info().Str("source", sourceID.String()).Str("target", targetID.String()).Int("moved", moved).Msg("job type category migrated")
	return moved, nil
}
