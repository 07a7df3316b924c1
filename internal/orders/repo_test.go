package orders

import (
	"context"
	"testing"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  address_id TEXT NOT NULL,
  total_price NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  total_price NUMERIC NOT NULL,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func insertTestProduct(t *testing.T, db *gorm.DB, id uuid.UUID, name string, price string) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, name, price, tags, availability) VALUES (?, ?, ?, '{}', 1)`,
		id.String(), name, price,
	).Error)
}

func TestRepositoryAssemblyRoundTrip(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	addressID := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()
	insertTestProduct(t, db, p1, "Paneer Tikka", "150.00")
	insertTestProduct(t, db, p2, "Biryani", "300.00")

	require.NoError(t, db.Exec(
		`INSERT INTO cart_items (id, user_id, product_id, quantity) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), userID.String(), p1.String(), 2,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO cart_items (id, user_id, product_id, quantity) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), userID.String(), p2.String(), 1,
	).Error)

	lines, err := repo.LoadCartLines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	prices, err := repo.LoadProductPrices(ctx, []uuid.UUID{p1, p2})
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.True(t, prices[p1].Equal(decimal.NewFromInt(150)))
	assert.True(t, prices[p2].Equal(decimal.NewFromInt(300)))

	order, err := repo.CreateOrder(ctx, &models.Order{
		UserID:     userID,
		AddressID:  addressID,
		TotalPrice: decimal.NewFromInt(600),
		Status:     enums.OrderStatusPending,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, order.ID)

	require.NoError(t, repo.CreateOrderItems(ctx, []models.OrderItem{
		{OrderID: order.ID, ProductID: p1, Quantity: 2, TotalPrice: decimal.NewFromInt(300)},
		{OrderID: order.ID, ProductID: p2, Quantity: 1, TotalPrice: decimal.NewFromInt(300)},
	}))

	require.NoError(t, repo.ClearCart(ctx, userID))
	remaining, err := repo.LoadCartLines(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, found.TotalPrice.Equal(decimal.NewFromInt(600)))
	require.Len(t, found.Items, 2)
	for _, item := range found.Items {
		require.NotNil(t, item.Product, "expected live product join")
	}
}

func TestRepositoryLoadProductPricesSkipsMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	present := uuid.New()
	insertTestProduct(t, db, present, "Dal", "120.00")

	prices, err := repo.LoadProductPrices(context.Background(), []uuid.UUID{present, uuid.New()})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	_, ok := prices[present]
	assert.True(t, ok)
}

func TestRepositoryUpdateOrderStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.CreateOrder(ctx, &models.Order{
		UserID:     uuid.New(),
		AddressID:  uuid.New(),
		TotalPrice: decimal.NewFromInt(100),
		Status:     enums.OrderStatusPending,
	})
	require.NoError(t, err)

	affected, err := repo.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// blind overwrite: same terminal value, still one matched row
	affected, err = repo.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateOrderStatus(ctx, uuid.New(), enums.OrderStatusPaid)
	require.NoError(t, err)
	assert.Zero(t, affected)

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, found.Status)
}

func TestRepositoryFindOrdersByUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := repo.CreateOrder(ctx, &models.Order{
			UserID:     userID,
			AddressID:  uuid.New(),
			TotalPrice: decimal.NewFromInt(int64(100 * (i + 1))),
			Status:     enums.OrderStatusPending,
		})
		require.NoError(t, err)
	}
	_, err := repo.CreateOrder(ctx, &models.Order{
		UserID:     uuid.New(),
		AddressID:  uuid.New(),
		TotalPrice: decimal.NewFromInt(50),
		Status:     enums.OrderStatusPending,
	})
	require.NoError(t, err)

	orders, err := repo.FindOrdersByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	none, err := repo.FindOrdersByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
