package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database from environment configuration. MySQL is the
// production driver; DB_DRIVER=sqlite switches to a file-backed SQLite
// database for local development.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "restaurant.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		envOr("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_HOST", "127.0.0.1"),
		envOr("DB_PORT", "3306"),
		envOr("DB_NAME", "sanisidro"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
