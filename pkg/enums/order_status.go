package enums

// OrderStatus tracks the payment lifecycle of an order. The only defined
// transition is pending -> paid; a paid order never reverts.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid:
		return true
	default:
		return false
	}
}
