package products

import (
	"context"
	"errors"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// Service exposes catalog browsing and search.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	ListByCuisine(ctx context.Context, cuisine string) ([]models.Product, error)
	FilterProducts(ctx context.Context, params FilterParams) ([]models.Product, error)
	Search(ctx context.Context, query string, sort SortOrder) ([]models.Product, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return items, nil
}

func (s *service) ListByCuisine(ctx context.Context, cuisine string) ([]models.Product, error) {
	if cuisine == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cuisine is required")
	}
	items, err := s.repo.ListByCuisine(ctx, cuisine)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products by cuisine")
	}
	return items, nil
}

func (s *service) FilterProducts(ctx context.Context, params FilterParams) ([]models.Product, error) {
	if !params.Price.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid price range")
	}
	items, err := s.repo.Filter(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "filtering products")
	}
	return items, nil
}

func (s *service) Search(ctx context.Context, query string, sort SortOrder) ([]models.Product, error) {
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	items, err := s.repo.SearchByName(ctx, query, sort)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching products")
	}
	return items, nil
}
