package app

import (
	"sync"
	"time"

	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/pkg/common"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ConfigManager reads and writes sys_config settings rows with a small
// read-through cache.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{
		app:   app,
		cache: make(map[string]string),
	}
}

func cacheKey(category, name string) string {
	return category + "." + name
}

func (m *ConfigManager) lookup(category, name string) string {
	m.mu.RLock()
	if v, ok := m.cache[cacheKey(category, name)]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	err := m.app.gormDB.
		Where("type = ? and name = ?", category, name).
		First(&cfg).Error
	if err != nil {
		return ""
	}

	m.mu.Lock()
	m.cache[cacheKey(category, name)] = cfg.Value
	m.mu.Unlock()
	return cfg.Value
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.lookup(category, name)
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.lookup(category, name))
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.lookup(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.lookup(category, name))
}

// Set writes one setting value, creating the row when missing.
func (m *ConfigManager) Set(category, name, value string) error {
	var cfg domain.SysConfig
	err := m.app.gormDB.
		Where("type = ? and name = ?", category, name).
		First(&cfg).Error
	if err != nil {
		err = m.app.gormDB.Create(&domain.SysConfig{
			ID:    common.UUIDint64(),
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	} else {
		err = m.app.gormDB.Model(&domain.SysConfig{}).
			Where("id = ?", cfg.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		return errors.Wrap(err, "save setting")
	}

	m.mu.Lock()
	m.cache[cacheKey(category, name)] = value
	m.mu.Unlock()
	return nil
}

// StorefrontSettings is the admin-editable settings payload.
type StorefrontSettings struct {
	SiteTitle           string `json:"site_title" mapstructure:"site_title"`
	ContactEmail        string `json:"contact_email" mapstructure:"contact_email"`
	Currency            string `json:"currency" mapstructure:"currency"`
	OprLogRetentionDays int    `json:"opr_log_retention_days" mapstructure:"opr_log_retention_days"`
	LowStockLevel       int    `json:"low_stock_level" mapstructure:"low_stock_level"`
}

// Storefront returns the current admin-editable settings.
func (m *ConfigManager) Storefront() StorefrontSettings {
	return StorefrontSettings{
		SiteTitle:           m.GetString("system", "SiteTitle"),
		ContactEmail:        m.GetString("system", "ContactEmail"),
		Currency:            m.GetString("system", "Currency"),
		OprLogRetentionDays: m.GetInt("system", "OprLogRetentionDays"),
		LowStockLevel:       m.GetInt("catalog", "LowStockLevel"),
	}
}

// SaveSettings decodes a loose settings map and persists the recognized
// fields. Unknown keys are ignored.
func (m *ConfigManager) SaveSettings(settings map[string]interface{}) error {
	var payload StorefrontSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &payload,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "settings decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "decode settings")
	}

	type entry struct {
		category, name, value string
		present               bool
	}
	entries := []entry{
		{"system", "SiteTitle", payload.SiteTitle, payload.SiteTitle != ""},
		{"system", "ContactEmail", payload.ContactEmail, payload.ContactEmail != ""},
		{"system", "Currency", payload.Currency, payload.Currency != ""},
		{"system", "OprLogRetentionDays", cast.ToString(payload.OprLogRetentionDays), payload.OprLogRetentionDays > 0},
		{"catalog", "LowStockLevel", cast.ToString(payload.LowStockLevel), payload.LowStockLevel > 0},
	}
	for _, e := range entries {
		if !e.present {
			continue
		}
		if err := m.Set(e.category, e.name, e.value); err != nil {
			zap.L().Error("failed to save setting",
				zap.String("category", e.category), zap.String("name", e.name), zap.Error(err))
			return err
		}
	}
	return nil
}
