package wishlist

import (
	"context"
	"errors"

	"github.com/feastlane/feastlane-backend/internal/products"
	"github.com/feastlane/feastlane-backend/pkg/db/models"
	apperrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service manages a user's saved products.
type Service interface {
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *products.Repository
}

type service struct {
	wishlistRepo *Repository
	productRepo  *products.Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, errors.New("wishlist service requires a wishlist repository")
	}
	if params.ProductRepo == nil {
		return nil, errors.New("wishlist service requires a product repository")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
	}, nil
}

func (s *service) GetWishlist(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	if userID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing user identity")
	}
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to load wishlist")
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	return items, nil
}

// AddItem ensures the product exists before saving it. Re-adding a product
// already on the wishlist succeeds without creating a second row.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.New(apperrors.CodeUnauthorized, "missing user identity")
	}
	if productID == uuid.Nil {
		return apperrors.New(apperrors.CodeValidation, "product id is required")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "product not found")
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to verify product")
	}
	if err := s.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to add wishlist item")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.New(apperrors.CodeUnauthorized, "missing user identity")
	}
	if productID == uuid.Nil {
		return apperrors.New(apperrors.CodeValidation, "product id is required")
	}
	affected, err := s.wishlistRepo.Remove(ctx, userID, productID)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to remove wishlist item")
	}
	if affected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "wishlist item not found")
	}
	return nil
}
