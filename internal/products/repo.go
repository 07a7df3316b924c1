package products

import (
	"context"
	"strings"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceRange is the coarse price bucket the catalog filter accepts.
type PriceRange string

const (
	PriceRangeNone     PriceRange = ""
	PriceRangeUnder300 PriceRange = "lt300"
	PriceRange300To600 PriceRange = "300to600"
)

func (p PriceRange) IsValid() bool {
	switch p {
	case PriceRangeNone, PriceRangeUnder300, PriceRange300To600:
		return true
	default:
		return false
	}
}

// FilterParams narrows the catalog listing.
type FilterParams struct {
	Tag       string
	Price     PriceRange
	MinRating float64
}

// SortOrder orders search results by price.
type SortOrder string

const (
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

// Repository owns catalog reads. The catalog is read-only from the API;
// products are seeded out of band.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a product repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var items []models.Product
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) ListByCuisine(ctx context.Context, cuisine string) ([]models.Product, error) {
	var items []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(cuisine) = LOWER(?)", cuisine).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) Filter(ctx context.Context, params FilterParams) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if params.Tag != "" {
		// text[] membership; tags are stored as a Postgres array
		q = q.Where("? = ANY(tags)", params.Tag)
	}
	switch params.Price {
	case PriceRangeUnder300:
		q = q.Where("price < ?", 300)
	case PriceRange300To600:
		q = q.Where("price >= ? AND price <= ?", 300, 600)
	}
	if params.MinRating > 0 {
		q = q.Where("rating >= ?", params.MinRating)
	}

	var items []models.Product
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) SearchByName(ctx context.Context, query string, sort SortOrder) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.WithContext(ctx).Where("LOWER(name) LIKE ?", pattern)
	switch sort {
	case SortPriceDesc:
		q = q.Order("price DESC")
	default:
		q = q.Order("price ASC")
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
