package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
	"golang.org/x/crypto/bcrypt"
)

type ProfileServiceImpl struct {
	userRepo    user.UserRepository
	fileService file.FileService
	publisher   sse.Publisher
}

func NewProfileService(userRepo user.UserRepository, fileService file.FileService, publisher sse.Publisher) user.ProfileService {
	return &ProfileServiceImpl{
		userRepo:    userRepo,
		fileService: fileService,
		publisher:   publisher,
	}
}

func (s *ProfileServiceImpl) me(ctx context.Context) (user.User, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.User{}, err
	}
	u, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *ProfileServiceImpl) save(ctx context.Context, id, name string, avatarURL *string) (user.UserResponse, error) {
	updated, err := s.userRepo.UpdateProfile(ctx, id, name, avatarURL)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.publisher.Publish(sse.Event{
		Topic:  sse.TopicProfileUpdated,
		UserID: updated.ID,
		Data: sse.ProfileUpdated{
			UserID:    updated.ID,
			Name:      updated.Name,
			AvatarURL: updated.AvatarURL,
		},
	})
	return user.ToResponse(updated), nil
}

// GetMe implements user.ProfileService.
func (s *ProfileServiceImpl) GetMe(ctx context.Context) (user.UserResponse, error) {
	u, err := s.me(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// UpdateMe implements user.ProfileService.
func (s *ProfileServiceImpl) UpdateMe(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	u, err := s.me(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	resp, err := s.save(ctx, u.ID, req.Name, req.AvatarURL)
	if err != nil {
		return user.UserResponse{}, err
	}
	slog.Info("Profile updated", "user_id", u.ID)
	return resp, nil
}

// ChangePassword implements user.ProfileService.
func (s *ProfileServiceImpl) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	u, err := s.me(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("Password changed", "user_id", u.ID)
	return nil
}

// UploadAvatar implements user.ProfileService.
func (s *ProfileServiceImpl) UploadAvatar(ctx context.Context, file io.Reader, filename string) (user.UserResponse, error) {
	u, err := s.me(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	url, err := s.fileService.UploadAvatar(ctx, u.ID, file, filename)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to upload avatar: %w", err)
	}
	return s.save(ctx, u.ID, u.Name, &url)
}
