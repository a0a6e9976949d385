package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/user"
	"github.com/brandbite/brandbite-api/internal/middleware"
	"github.com/brandbite/brandbite-api/internal/pkg/jwt"
	"github.com/brandbite/brandbite-api/internal/pkg/password"
)

const refreshKeyPrefix = "auth:refresh:"

// MembershipRepo resolves the company scope for customer accounts.
type MembershipRepo interface {
	CompanyIDForUser(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}

type Service struct {
	users      *user.Repository
	jwtService *jwt.Service
	redis      *redis.Client
	members    MembershipRepo
	demoMode   bool
}

func NewService(users *user.Repository, jwtService *jwt.Service, redisClient *redis.Client, members MembershipRepo, demoMode bool) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		redis:      redisClient,
		members:    members,
		demoMode:   demoMode,
	}
}

// Login verifies credentials and issues a token pair
func (s *Service) Login(ctx context.Context, email, plaintext string) (*TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plaintext, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("user logged in")
	return pair, nil
}

// Refresh rotates a refresh token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	if s.redis != nil {
		stored, err := s.redis.Get(ctx, refreshKeyPrefix+claims.ID).Result()
		if err != nil || stored != jwt.HashRefreshToken(refreshToken) {
			return nil, ErrInvalidRefresh
		}
		// Rotation: the old token is single-use.
		s.redis.Del(ctx, refreshKeyPrefix+claims.ID)
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	return s.issuePair(ctx, u)
}

// Logout revokes a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil // already unusable
	}
	if s.redis != nil {
		s.redis.Del(ctx, refreshKeyPrefix+claims.ID)
	}
	return nil
}

// Me describes the account behind a session
func (s *Service) Me(ctx context.Context, sess *middleware.Session) (*MeResponse, error) {
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	resp := &MeResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		IsPaused: u.IsPaused(),
	}
	if sess.CompanyID != nil {
		id := sess.CompanyID.String()
		resp.CompanyID = &id
	}
	return resp, nil
}

// ResolvePersona maps a demo cookie value to a session. Personas are plain
// user rows flagged with a demo_persona key; they only work in demo mode.
func (s *Service) ResolvePersona(ctx context.Context, persona string) (*middleware.Session, error) {
	if !s.demoMode {
		return nil, ErrDemoDisabled
	}

	u, err := s.users.GetByDemoPersona(ctx, persona)
	if err != nil {
		return nil, err
	}

	companyID, err := s.companyScope(ctx, u)
	if err != nil {
		return nil, err
	}

	return &middleware.Session{UserID: u.ID, Role: string(u.Role), CompanyID: companyID}, nil
}

func (s *Service) issuePair(ctx context.Context, u *user.User) (*TokenPair, error) {
	companyID, err := s.companyScope(ctx, u)
	if err != nil {
		return nil, err
	}

	access, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, jti, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if s.redis != nil {
		ttl := time.Until(expiresAt)
		if err := s.redis.Set(ctx, refreshKeyPrefix+jti, jwt.HashRefreshToken(refresh), ttl).Err(); err != nil {
			return nil, fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) companyScope(ctx context.Context, u *user.User) (*uuid.UUID, error) {
	if u.Role != user.RoleCustomer || s.members == nil {
		return nil, nil
	}
	return s.members.CompanyIDForUser(ctx, u.ID)
}
