package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	pkgerrors "github.com/feastlane/feastlane-backend/pkg/errors"
	"github.com/feastlane/feastlane-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the order workflow: cart-to-order assembly with server-side
// pricing, the idempotent paid transition, and the read projections.
type Service interface {
	CreateOrderFromCart(ctx context.Context, userID, addressID uuid.UUID) (*CreatedOrder, error)
	ConfirmPayment(ctx context.Context, orderID uuid.UUID) error
	ClientConfirm(ctx context.Context, orderID uuid.UUID) (enums.OrderStatus, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderDetail, error)
	OrderAmount(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

// ServiceParams wires the order service dependencies.
type ServiceParams struct {
	Repo   Repository
	Tx     txRunner
	Logger *logger.Logger

	// TrustClientConfirm lets ClientConfirm mutate order state on the
	// caller's word. Off by default; the webhook is the source of truth.
	TrustClientConfirm bool
}

type service struct {
	repo               Repository
	tx                 txRunner
	logg               *logger.Logger
	trustClientConfirm bool
}

// NewService builds the order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:               params.Repo,
		tx:                 params.Tx,
		logg:               params.Logger,
		trustClientConfirm: params.TrustClientConfirm,
	}, nil
}

// CreateOrderFromCart converts the caller's cart into a durable order.
// Pricing is authoritative here: every line is re-priced from the product
// table and client-supplied amounts are never consulted. The whole sequence
// runs in one transaction so a failed step leaves no partial state and two
// concurrent checkouts for the same user collapse to first-wins.
func (s *service) CreateOrderFromCart(ctx context.Context, userID, addressID uuid.UUID) (*CreatedOrder, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	if addressID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}

	var created *CreatedOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		lines, err := repo.LoadCartLines(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		productIDs := make([]uuid.UUID, 0, len(lines))
		seen := make(map[uuid.UUID]struct{}, len(lines))
		for _, line := range lines {
			if _, ok := seen[line.ProductID]; ok {
				continue
			}
			seen[line.ProductID] = struct{}{}
			productIDs = append(productIDs, line.ProductID)
		}

		prices, err := repo.LoadProductPrices(ctx, productIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product prices")
		}

		// A cart line whose product vanished contributes zero rather than
		// aborting the assembly.
		total := decimal.Zero
		lineTotals := make([]decimal.Decimal, len(lines))
		for i, line := range lines {
			price, ok := prices[line.ProductID]
			if !ok {
				s.logg.Warn(s.logg.WithField(ctx, "product_id", line.ProductID.String()),
					"cart references missing product, pricing line at zero")
				price = decimal.Zero
			}
			lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			lineTotals[i] = lineTotal
			total = total.Add(lineTotal)
		}

		order := &models.Order{
			UserID:     userID,
			AddressID:  addressID,
			TotalPrice: total,
			Status:     enums.OrderStatusPending,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		items := make([]models.OrderItem, len(lines))
		for i, line := range lines {
			items[i] = models.OrderItem{
				OrderID:    order.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				TotalPrice: lineTotals[i],
			}
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}

		if err := repo.ClearCart(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}

		created = &CreatedOrder{OrderID: order.ID, TotalPrice: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ConfirmPayment marks the order paid. The transition is a blind idempotent
// overwrite: a second confirm re-asserts the same terminal state.
func (s *service) ConfirmPayment(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	affected, err := s.repo.UpdateOrderStatus(ctx, orderID, enums.OrderStatusPaid)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

// ClientConfirm is the client-initiated confirmation path. Unless the trust
// flag is set it performs no writes and just reports the current status, so
// the webhook stays the source of truth.
func (s *service) ClientConfirm(ctx context.Context, orderID uuid.UUID) (enums.OrderStatus, error) {
	if s.trustClientConfirm {
		if err := s.ConfirmPayment(ctx, orderID); err != nil {
			return "", err
		}
		return enums.OrderStatusPaid, nil
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// GetOrder returns the order with its items and live product joins.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDetail(order), nil
}

// ListUserOrders returns the caller's order history, newest first. The result
// is always a slice, never nil.
func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderDetail, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	records, err := s.repo.FindOrdersByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	details := make([]OrderDetail, 0, len(records))
	for i := range records {
		details = append(details, *toOrderDetail(&records[i]))
	}
	return details, nil
}

// OrderAmount returns the frozen total for an existing order.
func (s *service) OrderAmount(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return order.TotalPrice, nil
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding order")
	}
	return order, nil
}
