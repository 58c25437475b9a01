package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

type Config struct {
	AppEnv      string
	Port        string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	JWT_SECRET  string
	TokenTTL    time.Duration
	UploadDir   string

	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		AppEnv:      getenv("APP_ENV", "development"),
		Port:        getenv("PORT", "8080"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     getenv("DB_PORT", "5432"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),
		JWT_SECRET:  os.Getenv("JWT_SECRET"),
		TokenTTL:    time.Duration(getenvInt("TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		UploadDir:   getenv("UPLOAD_DIR", "uploads"),

		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),

		MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxIdleTime: time.Duration(getenvInt("DB_CONN_MAX_IDLE_MINUTES", 5)) * time.Minute,
	}

	return config, nil
}

func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func InitDB(configuration *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER, configuration.DB_PASSWORD,
		configuration.DB_HOST, configuration.DB_PORT, configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(configuration.MaxOpenConns)
	sqlDB.SetMaxIdleConns(configuration.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(configuration.ConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema and seeds the fixed role set.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.BusinessInformation{},
		&models.TailorDateAvailability{},
		&models.TailorItemPrice{},
		&models.Brand{},
		&models.Category{},
		&models.ProductType{},
		&models.Product{},
		&models.ProductPrice{},
		&models.ProductCompliance{},
		&models.ProductImage{},
		&models.UserProduct{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryAddress{},
		&models.OrderDeliveryAddressMapping{},
		&models.Measurement{},
		&models.OrderMeasurementBoyAssignment{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	for _, name := range models.AllRoles {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
	}
	return nil
}
