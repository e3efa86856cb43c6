package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/settings"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
)

type SettingsServiceImpl struct {
	repo        settings.SettingsRepository
	fileService file.FileService
	publisher   sse.Publisher
}

func NewSettingsService(repo settings.SettingsRepository, fileService file.FileService, publisher sse.Publisher) settings.SettingsService {
	return &SettingsServiceImpl{
		repo:        repo,
		fileService: fileService,
		publisher:   publisher,
	}
}

func requireManager(ctx context.Context) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.CanManage() {
		return user.ErrManagerAccessRequired
	}
	return nil
}

func (s *SettingsServiceImpl) currentLogo(ctx context.Context) (settings.Logo, error) {
	values, err := s.repo.GetMany(ctx, settings.LogoKeys)
	if err != nil {
		return settings.Logo{}, fmt.Errorf("failed to load logo settings: %w", err)
	}
	return settings.ResolveLogo(values), nil
}

func (s *SettingsServiceImpl) store(ctx context.Context, logo settings.Logo) error {
	err := s.repo.Upsert(ctx, map[string]string{
		settings.KeyLogoExpanded:  logo.Expanded,
		settings.KeyLogoCollapsed: logo.Collapsed,
	})
	if err != nil {
		return fmt.Errorf("failed to save logo settings: %w", err)
	}

	s.publisher.Publish(sse.Event{
		Topic: sse.TopicLogoUpdated,
		Data:  sse.LogoUpdated{Expanded: logo.Expanded, Collapsed: logo.Collapsed},
	})
	slog.Info("Company logo updated", "expanded", logo.Expanded, "collapsed", logo.Collapsed)
	return nil
}

// GetLogo implements settings.SettingsService.
func (s *SettingsServiceImpl) GetLogo(ctx context.Context) (settings.LogoResponse, error) {
	logo, err := s.currentLogo(ctx)
	if err != nil {
		return settings.LogoResponse{}, err
	}
	return logo.ToResponse(), nil
}

// UpdateLogo implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateLogo(ctx context.Context, req settings.UpdateLogoRequest) (settings.LogoResponse, error) {
	if err := requireManager(ctx); err != nil {
		return settings.LogoResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.LogoResponse{}, err
	}

	logo := req.Logo()
	if err := s.store(ctx, logo); err != nil {
		return settings.LogoResponse{}, err
	}
	return logo.ToResponse(), nil
}

// UploadLogo implements settings.SettingsService.
func (s *SettingsServiceImpl) UploadLogo(ctx context.Context, req settings.UploadLogoRequest) (settings.LogoResponse, error) {
	if err := requireManager(ctx); err != nil {
		return settings.LogoResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.LogoResponse{}, err
	}

	url, err := s.fileService.UploadLogo(ctx, req.Variant, req.File, req.Filename)
	if err != nil {
		return settings.LogoResponse{}, fmt.Errorf("failed to upload company logo: %w", err)
	}

	logo, err := s.currentLogo(ctx)
	if err != nil {
		return settings.LogoResponse{}, err
	}
	switch req.Variant {
	case settings.VariantCollapsed:
		logo.Collapsed = url
	default:
		logo.Expanded = url
	}

	if err := s.store(ctx, logo); err != nil {
		return settings.LogoResponse{}, err
	}
	return logo.ToResponse(), nil
}
