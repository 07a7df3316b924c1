package cart

import (
	"context"
	"errors"

	"github.com/feastlane/feastlane-backend/internal/products"
	"github.com/feastlane/feastlane-backend/pkg/db/models"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxLineQuantity = 50

// Service exposes cart management. Quantities are absolute: setting a line
// replaces its quantity instead of incrementing it.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	SetItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, cartItemID uuid.UUID) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    *Repository
	ProductRepo *products.Repository
}

type service struct {
	cartRepo    *Repository
	productRepo *products.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{cartRepo: params.CartRepo, productRepo: params.ProductRepo}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if lines == nil {
		lines = []models.CartItem{}
	}
	return lines, nil
}

func (s *service) SetItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 || quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity out of range")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	line, err := s.cartRepo.Upsert(ctx, userID, productID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart line")
	}
	return line, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, cartItemID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	if cartItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	affected, err := s.cartRepo.Delete(ctx, userID, cartItemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}
