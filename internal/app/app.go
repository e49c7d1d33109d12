package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/config"
	"github.com/AhmadEkramy/elitesupps/internal/cart"
	"github.com/AhmadEkramy/elitesupps/internal/checkout"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/store"
	"github.com/AhmadEkramy/elitesupps/pkg/metrics"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	settings  *SettingsManager

	feed     *store.Feed
	products store.ProductStore
	offers   store.OfferStore
	coupons  store.CouponStore
	orders   store.OrderStore

	carts    *cart.Manager
	checkout *checkout.Engine
}

// Ensure Application implements all interfaces
var (
	_ DBProvider       = (*Application)(nil)
	_ ConfigProvider   = (*Application)(nil)
	_ SettingsProvider = (*Application)(nil)
	_ StoreProvider    = (*Application)(nil)
	_ CartProvider     = (*Application)(nil)
	_ CheckoutProvider = (*Application)(nil)
	_ AppContext       = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("failed to initialize metrics:", err)
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database, cfg.System.Workdir)
	zap.S().Infof("database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.settings = NewSettingsManager(a)
	a.initStores()

	// wait for database initialization to complete
	go func() {
		time.Sleep(3 * time.Second)
		a.checkSuper()
		a.checkSettings()
		a.checkProducts()
	}()

	a.initJob()
}

// initStores builds the change feed, repositories, cart registry and the
// checkout engine on top of the shared DB handle.
func (a *Application) initStores() {
	a.feed = store.NewFeed()
	a.products = store.NewGormProductStore(a.gormDB, a.feed)
	a.offers = store.NewGormOfferStore(a.gormDB, a.feed)
	a.coupons = store.NewGormCouponStore(a.gormDB, a.feed)
	a.orders = store.NewGormOrderStore(a.gormDB, a.feed)
	a.carts = cart.NewManager()
	a.checkout = checkout.NewEngine(a.coupons, a.orders)
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Feed() *store.Feed {
	return a.feed
}

func (a *Application) Products() store.ProductStore {
	return a.products
}

func (a *Application) Offers() store.OfferStore {
	return a.offers
}

func (a *Application) Coupons() store.CouponStore {
	return a.coupons
}

func (a *Application) Orders() store.OrderStore {
	return a.orders
}

func (a *Application) Carts() *cart.Manager {
	return a.carts
}

func (a *Application) Checkout() *checkout.Engine {
	return a.checkout
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settings.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.settings.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.settings.GetBool(category, key)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
