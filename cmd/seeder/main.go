package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/CHH01/runipet/internal/config"
	"github.com/CHH01/runipet/internal/database"
	"github.com/CHH01/runipet/internal/models"
	"github.com/CHH01/runipet/internal/services"
	"github.com/CHH01/runipet/pkg/utils"
)

// Seeds a demo account with the default challenge set. For local
// development only.
func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Pet{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	var demo models.User
	err := database.DB.Where("username = ?", "demo").First(&demo).Error
	if err == nil {
		log.Println("Demo user already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	demo = models.User{
		ID:           utils.GenerateID(),
		Username:     "demo",
		Email:        "demo@runipet.dev",
		Nickname:     "Demo Runner",
		PasswordHash: string(hashed),
	}
	if err := database.DB.Create(&demo).Error; err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	if _, err := services.InitChallenges(demo.ID); err != nil {
		log.Fatalf("Failed to seed default challenges: %v", err)
	}

	pet := models.Pet{
		ID:     utils.GenerateID(),
		UserID: demo.ID,
		Name:   "Runi",
	}
	if err := database.DB.Create(&pet).Error; err != nil {
		log.Fatalf("Failed to create demo pet: %v", err)
	}

	log.Println("Seeded demo user (demo / demo1234!) with default challenges")
}
