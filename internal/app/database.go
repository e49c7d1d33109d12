package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AhmadEkramy/elitesupps/config"
)

func getDatabase(dbcfg config.DBConfig, workdir string) *gorm.DB {
	gormcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if dbcfg.Debug {
		gormcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch dbcfg.Type {
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(filepath.Join(workdir, "data", dbcfg.Name+".db"))
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			dbcfg.Host, dbcfg.User, dbcfg.Passwd, dbcfg.Name, dbcfg.Port)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormcfg)
	if err != nil {
		zap.S().Panicf("database connect error: %s", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("database handle error: %s", err)
	}
	if dbcfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(dbcfg.MaxConn)
	}
	if dbcfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(dbcfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
