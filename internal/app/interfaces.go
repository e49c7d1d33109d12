package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/config"
	"github.com/AhmadEkramy/elitesupps/internal/cart"
	"github.com/AhmadEkramy/elitesupps/internal/checkout"
	"github.com/AhmadEkramy/elitesupps/internal/store"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// StoreProvider provides the persistent shop stores and their change feed
type StoreProvider interface {
	Feed() *store.Feed
	Products() store.ProductStore
	Offers() store.OfferStore
	Coupons() store.CouponStore
	Orders() store.OrderStore
}

// CartProvider provides per-session cart ledgers
type CartProvider interface {
	Carts() *cart.Manager
}

// CheckoutProvider provides the checkout pricing engine
type CheckoutProvider interface {
	Checkout() *checkout.Engine
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	StoreProvider
	CartProvider
	CheckoutProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
