package entity

// OrderStatus is the persisted lifecycle stage of an order. It is set
// exclusively by the order-management backend and treated as opaque input
// here; unknown codes must degrade gracefully, never crash the order view.
type OrderStatus string

const (
	StatusPending            OrderStatus = "pending"
	StatusProcessing         OrderStatus = "processing"
	StatusPaid               OrderStatus = "paid"
	StatusShipped            OrderStatus = "shipped"
	StatusOnDelivery         OrderStatus = "on_delivery"
	StatusInTransit          OrderStatus = "in_transit"
	StatusInCustoms          OrderStatus = "in_customs"
	StatusCompleted          OrderStatus = "completed"
	StatusCancelled          OrderStatus = "cancelled"
	StatusPendingPayment     OrderStatus = "pending_payment"
	StatusOrderCancelRequest OrderStatus = "order_cancel_request"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Order is the normalized record the lifecycle engine consumes.
type Order struct {
	ID            string
	Status        OrderStatus
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
}
