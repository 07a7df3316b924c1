package users

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes profile reads and updates for the authenticated user.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, dto UpdateProfileDTO) (*UserDTO, error)
}

type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("users service requires a repository")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing user identity")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to load user")
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, dto UpdateProfileDTO) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing user identity")
	}
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		if trimmed == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "name cannot be empty")
		}
		dto.Name = &trimmed
	}
	if err := s.repo.UpdateProfile(ctx, userID, dto); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to update profile")
	}
	return s.GetProfile(ctx, userID)
}
