package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/config"
	"github.com/postboard/postboard/internal/database"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/utils"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	seedAdmin()
	seedDemoData()
}

func seedAdmin() {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Println("Skipping admin seed: ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD not set")
		return
	}

	var admin models.User
	result := database.DB.Where("email = ?", adminEmail).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Username)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		ID:           uuid.New(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created:", admin.Username)
}

// seedDemoData creates a couple of demo users with posts and likes so a
// fresh database has a feed to look at.
func seedDemoData() {
	var count int64
	database.DB.Model(&models.Post{}).Count(&count)
	if count > 0 {
		log.Println("Skipping demo seed: posts already exist")
		return
	}

	passwordHash, err := utils.HashPassword("demo-password-123")
	if err != nil {
		log.Fatal("Failed to hash demo password:", err)
	}

	users := make([]*models.User, 0, 3)
	for i := 1; i <= 3; i++ {
		user := &models.User{
			ID:           uuid.New(),
			Username:     fmt.Sprintf("demo%d", i),
			Email:        fmt.Sprintf("demo%d@example.com", i),
			PasswordHash: passwordHash,
			Role:         models.RoleUser,
		}
		if err := database.DB.Create(user).Error; err != nil {
			log.Fatal("Failed to create demo user:", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, 6)
	for _, user := range users {
		for j := 1; j <= 2; j++ {
			post := &models.Post{
				ID:      uuid.New(),
				UserID:  user.ID,
				Content: fmt.Sprintf("Hello from %s, post %d", user.Username, j),
			}
			if err := database.DB.Create(post).Error; err != nil {
				log.Fatal("Failed to create demo post:", err)
			}
			posts = append(posts, post)
		}
	}

	// Everyone likes everyone else's posts.
	for _, user := range users {
		for _, post := range posts {
			if post.UserID == user.ID {
				continue
			}
			like := &models.Like{
				ID:     uuid.New(),
				PostID: post.ID,
				UserID: user.ID,
			}
			if err := database.DB.Create(like).Error; err != nil {
				log.Fatal("Failed to create demo like:", err)
			}
		}
	}

	log.Println("Demo data seeded: 3 users, 6 posts, likes")
}
