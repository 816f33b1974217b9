package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type announcementGateway interface {
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, payload gateway.AnnouncementPayload) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, announcementID string, payload gateway.AnnouncementPayload) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID string) error
}

// AnnouncementService manages school-wide announcements.
type AnnouncementService struct {
	gateway   announcementGateway
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(gw announcementGateway, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{gateway: gw, validator: validate, logger: logger}
}

// List returns announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	announcements, err := s.gateway.ListAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})
	return announcements, nil
}

// Create publishes an announcement.
func (s *AnnouncementService) Create(ctx context.Context, form dto.AnnouncementForm) (*models.Announcement, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	return s.gateway.CreateAnnouncement(ctx, announcementPayload(form))
}

// Update edits an announcement.
func (s *AnnouncementService) Update(ctx context.Context, announcementID string, form dto.AnnouncementForm) (*models.Announcement, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	return s.gateway.UpdateAnnouncement(ctx, announcementID, announcementPayload(form))
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, announcementID string) error {
	return s.gateway.DeleteAnnouncement(ctx, announcementID)
}

func (s *AnnouncementService) validateForm(form dto.AnnouncementForm) error {
	if err := s.validator.Struct(form); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "title, content and category are required")
	}
	for _, category := range models.AnnouncementCategories {
		if form.Category == category {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "unknown announcement category")
}

func announcementPayload(form dto.AnnouncementForm) gateway.AnnouncementPayload {
	return gateway.AnnouncementPayload{
		Title:    form.Title,
		Content:  form.Content,
		Category: form.Category,
	}
}
