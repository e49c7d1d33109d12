package domain

import "time"

// Product categories used by the storefront menu
const (
	CategoryAll      = "allProducts"
	CategoryOffer    = "special-offer"
	CategoryProtein  = "protein"
	CategoryGainer   = "massGainer"
	CategoryCreatine = "creatine"
	CategoryEnergy   = "energyProducts"
)

// Product represents a catalog item with bilingual naming.
// Once fetched by the storefront it is treated as an immutable snapshot.
type Product struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id" form:"id"`
	Name               string     `gorm:"index;size:200" json:"name" form:"name"`
	NameAr             string     `gorm:"size:200" json:"nameAr" form:"name_ar"`
	Price              float64    `json:"price" form:"price"`
	Category           string     `gorm:"index;size:64" json:"category" form:"category"`
	Image              string     `gorm:"size:1024" json:"image" form:"image"`
	Description        string     `gorm:"type:text" json:"description" form:"description"`
	DescriptionAr      string     `gorm:"type:text" json:"descriptionAr" form:"description_ar"`
	Flavors            StringList `gorm:"type:text" json:"flavors"`
	InStock            bool       `gorm:"default:true" json:"inStock" form:"in_stock"`
	IsOffer            bool       `gorm:"index;default:false" json:"isOffer" form:"is_offer"`
	OriginalPrice      float64    `json:"originalPrice,omitempty" form:"original_price"`
	DiscountPercentage int        `json:"discountPercentage,omitempty" form:"discount_percentage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Product) TableName() string {
	return "shop_product"
}
