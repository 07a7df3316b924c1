package orders

import (
	"time"

	"github.com/feastlane/feastlane-backend/pkg/db/models"
	"github.com/feastlane/feastlane-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatedOrder is returned by order assembly.
type CreatedOrder struct {
	OrderID    uuid.UUID       `json:"orderId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// ProductSnapshot carries the live product fields joined into order views.
// The charge is frozen on the order item; this join is display-only and may
// show a different unit price if the product was repriced since.
type ProductSnapshot struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"imageUrl,omitempty"`
}

// OrderItemView is one frozen order line plus its live product join.
type OrderItemView struct {
	ID         uuid.UUID        `json:"id"`
	ProductID  uuid.UUID        `json:"productId"`
	Quantity   int              `json:"quantity"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	Product    *ProductSnapshot `json:"product,omitempty"`
}

// OrderDetail is the full order projection returned by the query surface.
type OrderDetail struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"userId"`
	AddressID  uuid.UUID         `json:"addressId"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	Status     enums.OrderStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	Items      []OrderItemView   `json:"items"`
}

func toOrderDetail(order *models.Order) *OrderDetail {
	detail := &OrderDetail{
		ID:         order.ID,
		UserID:     order.UserID,
		AddressID:  order.AddressID,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		Items:      make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view := OrderItemView{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			TotalPrice: item.TotalPrice,
		}
		if item.Product != nil {
			view.Product = &ProductSnapshot{
				ID:       item.Product.ID,
				Name:     item.Product.Name,
				Price:    item.Product.Price,
				ImageURL: item.Product.ImageURL,
			}
		}
		detail.Items = append(detail.Items, view)
	}
	return detail
}
