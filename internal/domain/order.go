package domain

import "time"

// Order status labels, in forward fulfillment order
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatusRank maps each status to its position in the fulfillment flow.
// Cancelled sits outside the forward chain.
var OrderStatusRank = map[string]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusPreparing: 2,
	OrderStatusShipped:   3,
	OrderStatusDelivered: 4,
}

// ValidOrderStatus reports whether s is a known status label
func ValidOrderStatus(s string) bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := OrderStatusRank[s]
	return ok
}

// AllowedStatusTransition implements the back-office convention: status moves
// forward one or more steps, or sideways to cancelled from any non-terminal
// state. The data layer itself does not enforce this.
func AllowedStatusTransition(from, to string) bool {
	if !ValidOrderStatus(from) || !ValidOrderStatus(to) {
		return false
	}
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return OrderStatusRank[to] > OrderStatusRank[from]
}

// OrderItem is a snapshot of a cart line at the time the order was placed
type OrderItem struct {
	ProductID      string  `json:"id"`
	Name           string  `json:"name"`
	NameAr         string  `json:"nameAr,omitempty"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	SelectedFlavor string  `json:"selectedFlavor,omitempty"`
	Image          string  `json:"image,omitempty"`
}

// CustomerInfo captures the checkout contact form. The payment method is a
// label only, no transaction processing happens here.
type CustomerInfo struct {
	FullName      string `gorm:"size:200" json:"fullName"`
	Address       string `gorm:"size:500" json:"address"`
	PhoneNumber   string `gorm:"size:50" json:"phoneNumber"`
	PaymentMethod string `gorm:"size:50" json:"paymentMethod"`
}

// OrderSummary is the pricing breakdown computed at checkout, in whole
// currency units.
type OrderSummary struct {
	Subtotal       int64  `json:"subtotal"`
	DeliveryFee    int64  `json:"deliveryFee"`
	CouponDiscount int64  `json:"couponDiscount"`
	TotalCost      int64  `json:"totalCost"`
	CouponCode     string `gorm:"size:64" json:"couponCode,omitempty"`
}

// Order is created once at checkout submission. Items and summary never
// change afterwards; only the status label is mutated by the back office.
type Order struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id"`
	Items        OrderItems   `gorm:"type:text" json:"items"`
	CustomerInfo CustomerInfo `gorm:"embedded" json:"customerInfo"`
	OrderSummary OrderSummary `gorm:"embedded" json:"orderSummary"`
	Status       string       `gorm:"index;size:20;default:'pending'" json:"status"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Order) TableName() string {
	return "shop_order"
}
