package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	AppPort        string
	AppEnv         string
	JWTSecret      string
	StorageURL     string
	StorageKey     string
	StorageBucket  string
	ShopTimezone   string
	AdminEmail     string
	AdminPassword  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		AppPort:       os.Getenv("APP_PORT"),
		AppEnv:        os.Getenv("APP_ENV"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		StorageURL:    os.Getenv("STORAGE_URL"),
		StorageKey:    os.Getenv("STORAGE_SERVICE_KEY"),
		StorageBucket: os.Getenv("STORAGE_BUCKET"),
		ShopTimezone:  os.Getenv("SHOP_TIMEZONE"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	// Shops on this platform operate on Indian local time unless told otherwise.
	if cfg.ShopTimezone == "" {
		cfg.ShopTimezone = "Asia/Kolkata"
	}
	if cfg.StorageBucket == "" {
		cfg.StorageBucket = "order-files"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
