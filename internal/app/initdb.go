package app

import (
	"errors"
	"strings"
	"time"

	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	superUsername = "admin"
	superEmail    = "admin@greenhaven.com"
)

func (a *Application) checkSuper() {
	const defaultPassword = "admin123"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     superEmail,
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var settingSchemas = []settingSchema{
	{Key: "system.SiteTitle", Default: "GreenHaven", Description: "Storefront display name"},
	{Key: "system.ContactEmail", Default: "admin@greenhaven.com", Description: "Contact email shown on the storefront"},
	{Key: "system.Currency", Default: "TND", Description: "Display currency code"},
	{Key: "system.OprLogRetentionDays", Default: "365", Description: "Days to keep admin action logs"},
	{Key: "catalog.LowStockLevel", Default: "5", Description: "Stock level at or below which a product counts as low stock"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}
		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

var defaultCatalog = []domain.Product{
	{Name: "Monstera Deliciosa", Price: 145, Category: "indoor-plants", Stock: 15, Image: "/monstera-deliciosa-modern-pot.png", Description: "Perfect for beginners"},
	{Name: "Snake Plant", Price: 105, Category: "indoor-plants", Stock: 8, Image: "/snake-plant-ceramic-pot.png", Description: "Low maintenance beauty"},
	{Name: "Fiddle Leaf Fig", Price: 180, Category: "indoor-plants", Stock: 6, Image: "/fiddle-leaf-fig-lush.png", Description: "Statement plant for bright spaces"},
	{Name: "Peace Lily", Price: 85, Category: "indoor-plants", Stock: 12, Image: "/peace-lily.png", Description: "Air-purifying flowering plant"},
	{Name: "Rubber Plant", Price: 120, Category: "indoor-plants", Stock: 10, Image: "/rubber-plant.png", Description: "Glossy leaves, easy care"},
	{Name: "Bougainvillea", Price: 95, Category: "outdoor-plants", Stock: 8, Image: "/vibrant-bougainvillea.png", Description: "Colorful flowering vine"},
	{Name: "Olive Tree", Price: 250, Category: "outdoor-plants", Stock: 4, Image: "/solitary-olive-tree.png", Description: "Mediterranean classic"},
	{Name: "Lavender", Price: 65, Category: "outdoor-plants", Stock: 15, Image: "/lavender-plant.png", Description: "Fragrant herb with purple flowers"},
	{Name: "Ceramic Planter Set", Price: 95, Category: "accessories", Stock: 25, Image: "/modern-ceramic-plant-pots.png", Description: "Set of 3 modern planters"},
	{Name: "Plant Care Kit", Price: 65, Category: "accessories", Stock: 12, Image: "/plant-care-kit.png", Description: "Essential care tools & fertilizer"},
	{Name: "Watering Can", Price: 45, Category: "accessories", Stock: 20, Image: "/metal-watering-can.png", Description: "Stylish copper watering can"},
	{Name: "Plant Stand", Price: 85, Category: "accessories", Stock: 8, Image: "/elegant-plant-stand.png", Description: "Wooden plant display stand"},
	{Name: "Organic Fertilizer", Price: 35, Category: "care-products", Stock: 30, Image: "/organic-fertilizer-mix.png", Description: "Natural plant food"},
	{Name: "Pruning Shears", Price: 55, Category: "care-products", Stock: 15, Image: "/placeholder-12v9x.png", Description: "Professional gardening scissors"},
	{Name: "Soil Mix", Price: 25, Category: "care-products", Stock: 40, Image: "/potting-soil.png", Description: "Premium potting soil blend"},
}

// checkDefaultCatalog seeds the demo catalog when the products table is
// empty.
func (a *Application) checkDefaultCatalog() {
	var count int64
	if err := a.gormDB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		zap.L().Error("failed to count products", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}
	for i := range defaultCatalog {
		p := defaultCatalog[i]
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to seed product", zap.String("name", p.Name), zap.Error(err))
		}
	}
	zap.L().Info("seeded default catalog", zap.Int("products", len(defaultCatalog)))
}
