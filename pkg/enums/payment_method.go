package enums

// PaymentMethod distinguishes hosted-checkout payments from cash settled at
// delivery time.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodOnline, PaymentMethodCOD:
		return true
	default:
		return false
	}
}
