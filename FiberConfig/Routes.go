package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"PicQuest/Controllers"
	"PicQuest/Models"
	"PicQuest/TaskGen"
	"PicQuest/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, store TaskGen.TaskStore) {
	// Initialize handlers
	taskHandler := Controllers.NewTaskHandler(db, store)
	feedHandler := Controllers.NewFeedHandler(db)
	followHandler := Controllers.NewFollowHandler(db)
	leaderboardHandler := Controllers.NewLeaderboardHandler(db)
	notificationHandler := Controllers.NewNotificationHandler(db)

	// Auth
	app.Post("/api/Register", Controllers.Register)
	app.Post("/api/Login", Controllers.Login)
	app.Post("/api/Logout", Controllers.Logout)
	app.Get("/api/User", middleware.Verify(), Controllers.CurrentUser)
	app.Post("/api/UpdateToken", middleware.Verify(), Models.UpdateToken)

	// Daily tasks
	app.Get("/api/GetDailyTasks", middleware.Verify(), taskHandler.GetDailyTasks)
	app.Post("/api/CompleteTaskStep", middleware.Verify(), taskHandler.CompleteTaskStep)

	// Feed
	app.Post("/api/CreatePost", middleware.Verify(), feedHandler.CreatePost)
	app.Get("/api/GetFeed", middleware.Verify(), feedHandler.GetFeed)
	app.Get("/api/GetFollowingFeed", middleware.Verify(), feedHandler.GetFollowingFeed)
	app.Post("/api/LikePost/:id", middleware.Verify(), feedHandler.LikePost)
	app.Post("/api/UnlikePost/:id", middleware.Verify(), feedHandler.UnlikePost)

	// Follow graph
	app.Post("/api/FollowUser/:id", middleware.Verify(), followHandler.FollowUser)
	app.Post("/api/UnfollowUser/:id", middleware.Verify(), followHandler.UnfollowUser)
	app.Get("/api/GetFollowers/:id", middleware.Verify(), followHandler.GetFollowers)
	app.Get("/api/GetFollowing/:id", middleware.Verify(), followHandler.GetFollowing)

	// Leaderboard
	app.Get("/api/GetLeaderboard", middleware.Verify(), leaderboardHandler.GetLeaderboard)
	app.Get("/api/ExportLeaderboard", middleware.Verify(), leaderboardHandler.ExportLeaderboard)

	// Notifications
	app.Get("/api/GetNotifications", middleware.Verify(), notificationHandler.GetNotifications)
	app.Post("/api/MarkNotificationRead/:id", middleware.Verify(), notificationHandler.MarkNotificationRead)
	app.Post("/api/MarkAllNotificationsRead", middleware.Verify(), notificationHandler.MarkAllNotificationsRead)
}

func FiberConfig(store TaskGen.TaskStore) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB, store)
	app.Static("/static", "static/")

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
