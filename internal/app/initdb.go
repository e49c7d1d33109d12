package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "elitesupps"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
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
	key         string
	value       string
	description string
}

var defaultSettings = []settingSchema{
	{"shop.CurrencyLabel", "EGP", "Currency label shown in pricing breakdowns"},
	{"shop.OrderNotifyEnable", "false", "Send an email notification for each placed order"},
	{"system.OprLogRetentionDays", "365", "Days to keep operator action logs"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		parts := strings.SplitN(schema.key, ".", 2)
		if len(parts) != 2 {
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
				Value:  schema.value,
				Remark: schema.description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.key),
				zap.String("default", schema.value))
		}
	}
}

// checkProducts seeds the sample bilingual catalog on first boot
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{
			Name:          "Elite Whey Protein",
			NameAr:        "بروتين إليت واي",
			Price:         850,
			Category:      domain.CategoryProtein,
			Image:         "/images/products/elite-whey.png",
			Description:   "Premium whey protein isolate for maximum muscle growth",
			DescriptionAr: "بروتين واي عالي الجودة لنمو العضلات الأقصى",
			Flavors:       domain.StringList{"Chocolate", "Vanilla", "Strawberry", "Cookies & Cream"},
			InStock:       true,
		},
		{
			Name:               "Elite Mass Gainer",
			NameAr:             "إليت لزيادة الكتلة",
			Price:              1200,
			Category:           domain.CategoryGainer,
			Image:              "/images/products/elite-gainer.png",
			Description:        "High-calorie mass gainer for serious size gains",
			DescriptionAr:      "مكمل عالي السعرات لزيادة الكتلة",
			Flavors:            domain.StringList{"Chocolate", "Vanilla", "Banana"},
			InStock:            true,
			IsOffer:            true,
			OriginalPrice:      1400,
			DiscountPercentage: 20,
		},
		{
			Name:          "Elite Pre-Workout",
			NameAr:        "إليت ما قبل التمرين",
			Price:         650,
			Category:      domain.CategoryEnergy,
			Image:         "/images/products/elite-preworkout.png",
			Description:   "Explosive energy and focus for intense workouts",
			DescriptionAr: "طاقة انفجارية وتركيز للتمارين المكثفة",
			Flavors:       domain.StringList{"Fruit Punch", "Blue Raspberry", "Green Apple"},
			InStock:       true,
		},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUID()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
