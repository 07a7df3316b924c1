package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  image_url TEXT,
  price NUMERIC NOT NULL,
  cuisine TEXT,
  tags TEXT NOT NULL DEFAULT '{}',
  rating NUMERIC,
  stock INTEGER,
  availability INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, product_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, db.Exec(`DELETE FROM wishlist_items`).Error)
	return db
}

func seedWishlistProduct(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, name, price, tags, availability) VALUES (?, 'Masala Dosa', '180.00', '{}', 1)`,
		id.String(),
	).Error)
	return id
}

func TestRepositoryAddIsIdempotent(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedWishlistProduct(t, db)

	require.NoError(t, repo.Add(ctx, userID, productID))
	require.NoError(t, repo.Add(ctx, userID, productID), "duplicate add must be a no-op")

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product, "expected product join")
	assert.Equal(t, "Masala Dosa", items[0].Product.Name)
}

func TestRepositoryRemoveScopedToOwner(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	productID := seedWishlistProduct(t, db)
	require.NoError(t, repo.Add(ctx, owner, productID))

	affected, err := repo.Remove(ctx, uuid.New(), productID)
	require.NoError(t, err)
	assert.Zero(t, affected, "foreign user must not remove the item")

	affected, err = repo.Remove(ctx, owner, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	items, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, items)
}
