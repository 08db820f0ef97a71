package main

import (
	"fmt"

	"nutrigram/pkg/config"
	"nutrigram/pkg/database"
	"nutrigram/pkg/logger"
	"nutrigram/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		fullName string
		password string
	}{
		{"alice@test.com", "alice_fit", "Alice Anderson", "password123"},
		{"bob@test.com", "bob_keto", "Bob Baker", "password123"},
		{"charlie@test.com", "charlie_vegan", "Charlie Cooper", "password123"},
		{"diana@test.com", "diana_paleo", "Diana Dawson", "password123"},
		{"eve@test.com", "eve_runner", "Eve Evans", "password123"},
	}

	samplePosts := []string{
		"Week one of the Mediterranean plan done. Feeling lighter already!",
		"Meal prep Sunday: overnight oats, grilled chicken, and a lot of broccoli.",
		"Down 2kg this month. Slow and steady.",
		"Today's lunch: lentil salad with feta. Ten minutes, zero regrets.",
		"Cheat day confession: one slice of cake. Back on track tomorrow.",
	}
	samplePostTypes := []string{
		models.PostTypeText,
		models.PostTypeRecipe,
		models.PostTypeProgress,
		models.PostTypeRecipe,
		models.PostTypeText,
	}

	userIDs := make([]string, 0, len(testUsers))

	for idx, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:    userData.email,
			Username: userData.username,
			FullName: userData.fullName,
			Password: string(hashedPassword),
			IsActive: true,
		}

		if err := user.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}

		var existingUser models.User
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)

		postsCount := 2 + (idx % 2)
		for i := 0; i < postsCount; i++ {
			post := &models.Post{
				UserID:   user.ID,
				Content:  fmt.Sprintf("%s (by %s)", samplePosts[(idx+i)%len(samplePosts)], user.Username),
				PostType: samplePostTypes[(idx+i)%len(samplePostTypes)],
			}
			if err := post.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate post ID: %w", err)
			}
			if err := db.Create(post).Error; err != nil {
				log.Error("Failed to create post for user %s: %v", user.Username, err)
				continue
			}
			log.Info("Created post %s by %s", post.ID, user.Username)
		}
	}

	for i := 0; i < len(userIDs); i++ {
		for j := i + 1; j < len(userIDs); j++ {
			followerID := userIDs[i]
			followeeID := userIDs[j]

			var existingFollow models.Follow
			result := db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existingFollow)
			if result.Error == nil {
				continue
			}

			follow := &models.Follow{
				FollowerID: followerID,
				FolloweeID: followeeID,
			}
			if err := follow.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate follow ID: %w", err)
			}

			if err := db.Create(follow).Error; err != nil {
				log.Error("Failed to create follow: %v", err)
				continue
			}
		}
	}

	log.Info("Created test follow edges")
	return nil
}
