package domain

import "time"

// Offer is an admin defined discounted bundle of existing products.
// Price, when set above zero, is a flat bundle price that overrides the
// computed sum-minus-discount price.
type Offer struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id" form:"id"`
	Title              string     `gorm:"index;size:200" json:"title" form:"title"`
	TitleAr            string     `gorm:"size:200" json:"titleAr" form:"title_ar"`
	Description        string     `gorm:"type:text" json:"description" form:"description"`
	DescriptionAr      string     `gorm:"type:text" json:"descriptionAr" form:"description_ar"`
	DiscountPercentage int        `json:"discountPercentage" form:"discount_percentage"`
	ProductIds         StringList `gorm:"type:text" json:"productIds"`
	Price              float64    `json:"price,omitempty" form:"price"`
	ImageURL           string     `gorm:"size:1024" json:"imageUrl" form:"image_url"`
	IsActive           bool       `gorm:"index;default:true" json:"isActive" form:"is_active"`
	ValidUntil         time.Time  `gorm:"index" json:"validUntil" form:"valid_until"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Offer) TableName() string {
	return "shop_offer"
}

// Expired reports whether the offer is past its validity timestamp
func (o *Offer) Expired(now time.Time) bool {
	return !o.ValidUntil.IsZero() && now.After(o.ValidUntil)
}
