package address

import (
	"context"
	"strings"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/google/uuid"
)

// NewAddressInput carries the fields accepted when adding an address.
type NewAddressInput struct {
	AddressLine string
	City        *string
	State       *string
	Pincode     *string
}

// Service exposes delivery address management for a user.
type Service interface {
	AddAddress(ctx context.Context, userID uuid.UUID, input NewAddressInput) (*models.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds an address service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) AddAddress(ctx context.Context, userID uuid.UUID, input NewAddressInput) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	if strings.TrimSpace(input.AddressLine) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address line is required")
	}

	address := &models.Address{
		UserID:      userID,
		AddressLine: strings.TrimSpace(input.AddressLine),
		City:        input.City,
		State:       input.State,
		Pincode:     input.Pincode,
	}
	created, err := s.repo.Create(ctx, address)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving address")
	}
	return created, nil
}

func (s *service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing addresses")
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	return addresses, nil
}

func (s *service) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	if addressID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	affected, err := s.repo.Delete(ctx, userID, addressID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing address")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}
