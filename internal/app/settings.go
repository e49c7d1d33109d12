package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

const settingsCacheTTL = 30 * time.Second

// SettingsManager reads runtime settings from the sys_config table with a
// short lived in-memory cache.
type SettingsManager struct {
	app      *Application
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewSettingsManager(app *Application) *SettingsManager {
	return &SettingsManager{
		app:   app,
		cache: make(map[string]string),
	}
}

func (m *SettingsManager) reloadIfStale() {
	m.mu.RLock()
	fresh := time.Since(m.loadedAt) < settingsCacheTTL
	m.mu.RUnlock()
	if fresh {
		return
	}

	var rows []domain.SysConfig
	if err := m.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Warn("settings reload failed", zap.Error(err))
		return
	}

	next := make(map[string]string, len(rows))
	for _, row := range rows {
		next[row.Type+"."+row.Name] = row.Value
	}

	m.mu.Lock()
	m.cache = next
	m.loadedAt = time.Now()
	m.mu.Unlock()
}

func (m *SettingsManager) GetString(category, key string) string {
	m.reloadIfStale()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache[category+"."+key]
}

func (m *SettingsManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.GetString(category, key))
}

func (m *SettingsManager) GetBool(category, key string) bool {
	return cast.ToBool(m.GetString(category, key))
}
