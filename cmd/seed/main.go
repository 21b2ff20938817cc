package main

import (
	"fmt"

	"carhive/internal/model"
	"carhive/pkg/config"
	"carhive/pkg/database"
	"carhive/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.New(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if cfg.PostgresDSN() == "" {
		if err := db.AutoMigrate(
			&model.UserModel{},
			&model.PostModel{},
			&model.PostImageModel{},
			&model.LikeModel{},
			&model.SaveModel{},
			&model.PostViewModel{},
			&model.UserViewModel{},
			&model.BannerModel{},
			&model.NotificationModel{},
		); err != nil {
			log.Error("Failed to migrate sqlite schema: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		username string
		city     string
	}{
		{"alice_drives", "Berlin"},
		{"bob_garage", "Munich"},
		{"charlie_v8", "Berlin"},
		{"diana_turbo", "Hamburg"},
		{"eve_classic", "Munich"},
	}

	testCars := []struct {
		carName string
		city    string
		year    int
		price   int64
	}{
		{"BMW M3", "Berlin", 2019, 52000},
		{"Audi RS6", "Munich", 2021, 98000},
		{"Porsche 911", "Hamburg", 2018, 110000},
		{"VW Golf GTI", "Berlin", 2020, 31000},
		{"Mercedes C63", "Munich", 2017, 58000},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		var existing model.UserModel
		result := db.Where("username = ?", userData.username).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", userData.username)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		user := &model.UserModel{
			ID:       uuid.New().String(),
			Username: userData.username,
			City:     userData.city,
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.City)
		userIDs = append(userIDs, user.ID)

		postsCount := 1 + (len(userIDs) % 3)
		for i := 0; i < postsCount; i++ {
			car := testCars[(len(userIDs)+i)%len(testCars)]
			post := &model.PostModel{
				ID:          uuid.New().String(),
				OwnerID:     user.ID,
				CarName:     car.carName,
				Description: fmt.Sprintf("%s in great condition, offered by %s", car.carName, user.Username),
				City:        car.city,
				Year:        car.year,
				Price:       car.price,
			}
			if err := db.Create(post).Error; err != nil {
				log.Error("Failed to create post for user %s: %v", user.Username, err)
				continue
			}
			log.Info("Created post: %s by %s", post.CarName, user.Username)
		}
	}

	// Cross-engage the seed users so the popular feed has an ordering to show.
	var posts []model.PostModel
	if err := db.Find(&posts).Error; err != nil {
		return fmt.Errorf("failed to load seeded posts: %w", err)
	}

	for i, post := range posts {
		for j, userID := range userIDs {
			if userID == post.OwnerID {
				continue
			}

			// Everyone views the first posts, fewer view the later ones.
			if j <= len(posts)-i {
				view := &model.PostViewModel{ID: uuid.New().String(), UserID: userID, PostID: post.ID}
				if err := db.Where("user_id = ? AND post_id = ?", userID, post.ID).FirstOrCreate(view).Error; err != nil {
					log.Error("Failed to create seed view: %v", err)
				}
			}
			if (i+j)%2 == 0 {
				like := &model.LikeModel{ID: uuid.New().String(), UserID: userID, PostID: post.ID}
				if err := db.Where("user_id = ? AND post_id = ?", userID, post.ID).FirstOrCreate(like).Error; err != nil {
					log.Error("Failed to create seed like: %v", err)
				}
			}
		}
	}

	banners := []model.BannerModel{
		{ID: uuid.New().String(), Title: "Summer meets", ImageURL: "https://cdn.carhive.dev/banners/summer.jpg", LinkURL: "https://carhive.dev/meets", Position: 0, Active: true},
		{ID: uuid.New().String(), Title: "Sell your car", ImageURL: "https://cdn.carhive.dev/banners/sell.jpg", LinkURL: "https://carhive.dev/sell", Position: 1, Active: true},
	}
	for _, banner := range banners {
		var existing model.BannerModel
		if db.Where("title = ?", banner.Title).First(&existing).Error == nil {
			continue
		}
		if err := db.Create(&banner).Error; err != nil {
			log.Error("Failed to create banner %s: %v", banner.Title, err)
		}
	}

	log.Info("Created seed engagement and banners")
	return nil
}
