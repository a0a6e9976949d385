package asset

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/ticket"
	"github.com/brandbite/brandbite-api/internal/domain/user"
	"github.com/brandbite/brandbite-api/internal/pkg/imaging"
	"github.com/brandbite/brandbite-api/internal/pkg/storage"
)

// PresignTTL bounds how long an issued upload or download URL stays
// valid.
const PresignTTL = 15 * time.Minute

// TicketSource resolves tickets for scope checks.
type TicketSource interface {
	Get(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error)
}

type Service struct {
	repo    *Repository
	store   storage.Storage
	tickets TicketSource
	thumbs  *imaging.Processor
}

func NewService(repo *Repository, store storage.Storage, tickets TicketSource, thumbs *imaging.Processor) *Service {
	return &Service{repo: repo, store: store, tickets: tickets, thumbs: thumbs}
}

type PresignResult struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Presign validates the declared upload and issues a short-lived PUT
// URL under the company's key prefix.
func (s *Service) Presign(ctx context.Context, companyID uuid.UUID, fileName, contentType string, size int64) (*PresignResult, error) {
	if err := storage.ValidateUpload(contentType, size); err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = storage.ExtensionForMime(contentType)
	}
	key := fmt.Sprintf("assets/%s/%s%s", companyID, uuid.New(), ext)

	url, err := s.store.PresignPut(ctx, key, contentType, size, PresignTTL)
	if err != nil {
		return nil, err
	}

	return &PresignResult{
		URL:       url,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(PresignTTL),
	}, nil
}

type RegisterInput struct {
	TicketID   uuid.UUID
	UploadedBy uuid.UUID
	ObjectKey  string
	FileName   string
}

// Register records a completed upload against a ticket. Image uploads
// get a thumbnail rendered and stored next to the original; a failed
// render is logged and skipped rather than failing the registration.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Asset, error) {
	t, err := s.tickets.Get(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(in.ObjectKey, fmt.Sprintf("assets/%s/", t.CompanyID)) {
		return nil, ErrKeyNotIssued
	}

	info, err := s.store.Head(ctx, in.ObjectKey)
	if err != nil {
		return nil, ErrObjectMissing
	}

	a := &Asset{
		ID:          uuid.New(),
		TicketID:    t.ID,
		CompanyID:   t.CompanyID,
		UploadedBy:  in.UploadedBy,
		ObjectKey:   in.ObjectKey,
		FileName:    in.FileName,
		ContentType: info.ContentType,
		Size:        info.Size,
		CreatedAt:   time.Now(),
	}

	if storage.IsImage(info.ContentType) {
		if key, err := s.renderThumbnail(ctx, in.ObjectKey); err != nil {
			log.Warn().Err(err).Str("object_key", in.ObjectKey).Msg("thumbnail render failed")
		} else {
			a.ThumbnailKey = &key
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().
		Str("asset_id", a.ID.String()).
		Str("ticket_id", a.TicketID.String()).
		Int64("size", a.Size).
		Msg("asset registered")
	return a, nil
}

func (s *Service) renderThumbnail(ctx context.Context, objectKey string) (string, error) {
	body, err := s.store.Get(ctx, objectKey)
	if err != nil {
		return "", err
	}
	defer body.Close()

	thumb, err := s.thumbs.Render(body)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(objectKey)
	if wantExt := storage.ExtensionForMime(thumb.ContentType); wantExt != "" {
		ext = wantExt
	}
	key := strings.TrimSuffix(objectKey, filepath.Ext(objectKey)) + "_thumb" + ext

	if err := s.store.Put(ctx, key, bytes.NewReader(thumb.Data), thumb.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

type DownloadResult struct {
	URL       string    `json:"url"`
	FileName  string    `json:"file_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Download authorizes access to an asset and returns a short-lived GET
// URL. Customers are limited to their company's assets, creatives to
// tickets assigned to them.
func (s *Service) Download(ctx context.Context, id, actorID uuid.UUID, role user.Role, companyID *uuid.UUID) (*DownloadResult, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case user.RoleSiteOwner, user.RoleSiteAdmin:
	case user.RoleCustomer:
		if companyID == nil || *companyID != a.CompanyID {
			return nil, ErrAccessDenied
		}
	case user.RoleCreative:
		t, err := s.tickets.Get(ctx, a.TicketID)
		if err != nil {
			return nil, err
		}
		if t.DesignerID == nil || *t.DesignerID != actorID {
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	url, err := s.store.PresignGet(ctx, a.ObjectKey, PresignTTL)
	if err != nil {
		return nil, err
	}
	return &DownloadResult{
		URL:       url,
		FileName:  a.FileName,
		ExpiresAt: time.Now().Add(PresignTTL),
	}, nil
}

// ListForTicket returns a ticket's assets after a company scope check.
func (s *Service) ListForTicket(ctx context.Context, ticketID, companyID uuid.UUID) ([]Asset, error) {
	t, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.CompanyID != companyID {
		return nil, ticket.ErrNotFound
	}
	return s.repo.ListByTicket(ctx, ticketID)
}
