package database

import (
	"fmt"
	"log"

	config "github.com/rlumactod/boarding_house/configs"
	"github.com/rlumactod/boarding_house/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedLandlord creates the landlord login from the environment on first boot.
func SeedLandlord() {
	username := config.Config("LANDLORD_USERNAME")
	password := config.Config("LANDLORD_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for landlord user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Landlord user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash landlord password: %v", err)
		return
	}

	landlord := models.User{
		Username: username,
		Password: string(hashedPassword),
		Name:     config.Config("LANDLORD_NAME"),
		Role:     models.RoleLandlord,
	}

	if err := DB.Create(&landlord).Error; err != nil {
		log.Fatalf("🔥 Failed to seed landlord user: %v", err)
		return
	}

	log.Println("✅ Landlord user seeded successfully")
}
