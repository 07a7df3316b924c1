package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedCartProduct(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, name, price, tags, availability) VALUES (?, 'Biryani', '300.00', '{}', 1)`,
		id.String(),
	).Error)
	return id
}

func TestRepositoryUpsertCreatesThenReplacesQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedCartProduct(t, db)

	line, err := repo.Upsert(ctx, userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	updated, err := repo.Upsert(ctx, userID, productID, 5)
	require.NoError(t, err)
	assert.Equal(t, line.ID, updated.ID, "upsert must reuse the existing line")
	assert.Equal(t, 5, updated.Quantity)

	lines, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	require.NotNil(t, lines[0].Product, "expected product join")
}

func TestRepositoryDeleteScopedToOwner(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	productID := seedCartProduct(t, db)
	line, err := repo.Upsert(ctx, owner, productID, 1)
	require.NoError(t, err)

	affected, err := repo.Delete(ctx, uuid.New(), line.ID)
	require.NoError(t, err)
	assert.Zero(t, affected, "foreign user must not delete the line")

	affected, err = repo.Delete(ctx, owner, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	lines, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
