package config

import (
	"os"

	"delivery-platform/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs session tokens — read from env or fallback
var JWTSecret []byte

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads .env if present and wires env-derived globals.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "delivery_platform_secret_2024"))
}

// InitLogger configures the process-wide logrus logger. Release mode
// switches to JSON output for log shippers.
func InitLogger() {
	if getEnv("GIN_MODE", "") == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stdout)
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "delivery.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	if err := Seed(DB); err != nil {
		logrus.WithError(err).Fatal("failed to seed database")
	}

	logrus.Info("database connected and migrated")
}

// Migrate applies the schema. Split out so tests can run it against their
// own in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Session{},
		&models.Category{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderTrackingEvent{},
		&models.SpecialOffer{},
		&models.SystemSetting{},
		&models.Notification{},
	)
}

// Seed creates the default admin, a demo driver, and the baseline system
// settings if they are missing. Idempotent.
func Seed(db *gorm.DB) error {
	adminEmail := getEnv("ADMIN_EMAIL", "admin@example.com")
	var count int64
	db.Model(&models.Account{}).Where("email = ?", adminEmail).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(getEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.Account{
			Email:        &adminEmail,
			PasswordHash: string(hash),
			Name:         "مدير النظام",
			Role:         models.RoleAdmin,
			IsActive:     true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logrus.WithField("email", adminEmail).Info("created default admin")
	}

	driverPhone := getEnv("DEMO_DRIVER_PHONE", "+967771234567")
	db.Model(&models.Account{}).Where("phone = ?", driverPhone).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		driver := models.Account{
			Phone:        &driverPhone,
			PasswordHash: string(hash),
			Name:         "سائق تجريبي",
			Role:         models.RoleDriver,
			IsActive:     true,
		}
		if err := db.Create(&driver).Error; err != nil {
			return err
		}
		logrus.WithField("phone", driverPhone).Info("created demo driver")
	}

	return SeedSettings(db)
}

// SeedSettings inserts the default system settings that the fee and
// earnings policy reads. Existing keys are left untouched.
func SeedSettings(db *gorm.DB) error {
	defaults := []models.SystemSetting{
		{Key: "app_name", Value: "السريع ون", Description: "اسم التطبيق", Category: "general", IsPublic: true},
		{Key: "currency", Value: "YER", Description: "العملة المستخدمة", Category: "general", IsPublic: true},
		{Key: "delivery_fee", Value: "500", Description: "رسوم التوصيل الافتراضية", Category: "delivery", IsPublic: true},
		{Key: "minimum_order", Value: "1000", Description: "الحد الأدنى للطلب", Category: "orders", IsPublic: true},
		{Key: "service_fee_percentage", Value: "5", Description: "نسبة رسوم الخدمة", Category: "fees", IsPublic: false},
		{Key: "tax_percentage", Value: "0", Description: "نسبة الضريبة", Category: "fees", IsPublic: false},
		{Key: "driver_fee_share_percent", Value: "80", Description: "نسبة السائق من رسوم التوصيل", Category: "fees", IsPublic: false},
		{Key: "delivery_time_minutes", Value: "45", Description: "مدة التوصيل المتوقعة بالدقائق", Category: "delivery", IsPublic: true},
	}
	for _, s := range defaults {
		var count int64
		db.Model(&models.SystemSetting{}).Where("key = ?", s.Key).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
