package domain

import "time"

// Coupon provides a checkout-time percentage discount on the cart subtotal.
// Codes are unique case-insensitively; matching is done on the lowercased code.
type Coupon struct {
	ID                 string    `gorm:"primaryKey;size:64" json:"id" form:"id"`
	Code               string    `gorm:"uniqueIndex;size:64" json:"code" form:"code"`
	DiscountPercentage int       `json:"discountPercentage" form:"discount_percentage"`
	IsActive           bool      `gorm:"index;default:true" json:"isActive" form:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Coupon) TableName() string {
	return "shop_coupon"
}
