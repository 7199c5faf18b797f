package Models

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// LoadEnv reads the .env file if one is present. Missing file is fine in
// deployments that configure through the process environment.
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "picquest.db"
	}

	connection, err := gorm.Open(sqlite.Open(path))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	// 1. Base entities first
	DB.AutoMigrate(
		&User{},
		&FCMToken{},
	)

	// 2. Then everything referencing users
	DB.AutoMigrate(
		&Post{},
		&PostLike{},
		&Follow{},
		&Notification{},
		&UserTaskProgress{},
	)
}
