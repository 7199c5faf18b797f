package Controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"PicQuest/Models"
	"PicQuest/TaskGen"
	"PicQuest/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global Models.DB at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Models.User{},
		&Models.FCMToken{},
		&Models.Post{},
		&Models.PostLike{},
		&Models.Follow{},
		&Models.Notification{},
		&Models.UserTaskProgress{},
	))

	Models.DB = db
	return db
}

func setupTestApp(t *testing.T, store TaskGen.TaskStore) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	taskHandler := NewTaskHandler(db, store)
	feedHandler := NewFeedHandler(db)
	followHandler := NewFollowHandler(db)
	leaderboardHandler := NewLeaderboardHandler(db)
	notificationHandler := NewNotificationHandler(db)

	app := fiber.New()
	app.Post("/api/Register", Register)
	app.Post("/api/Login", Login)
	app.Get("/api/User", middleware.Verify(), CurrentUser)
	app.Get("/api/GetDailyTasks", middleware.Verify(), taskHandler.GetDailyTasks)
	app.Post("/api/CompleteTaskStep", middleware.Verify(), taskHandler.CompleteTaskStep)
	app.Get("/api/GetFeed", middleware.Verify(), feedHandler.GetFeed)
	app.Post("/api/FollowUser/:id", middleware.Verify(), followHandler.FollowUser)
	app.Post("/api/UnfollowUser/:id", middleware.Verify(), followHandler.UnfollowUser)
	app.Get("/api/GetFollowers/:id", middleware.Verify(), followHandler.GetFollowers)
	app.Get("/api/GetLeaderboard", middleware.Verify(), leaderboardHandler.GetLeaderboard)
	app.Get("/api/ExportLeaderboard", middleware.Verify(), leaderboardHandler.ExportLeaderboard)
	app.Get("/api/GetNotifications", middleware.Verify(), notificationHandler.GetNotifications)
	app.Post("/api/MarkNotificationRead/:id", middleware.Verify(), notificationHandler.MarkNotificationRead)

	return app, db
}

// createUser inserts a user directly and returns it with a valid jwt cookie.
func createUser(t *testing.T, db *gorm.DB, name string) (Models.User, string) {
	t.Helper()

	user := Models.User{
		Name:  name,
		Email: strings.ToLower(name) + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	require.NoError(t, err)

	return user, "jwt=" + token
}

func doRequest(t *testing.T, app *fiber.App, method, target, cookie string, body *strings.Reader) *http.Response {
	t.Helper()

	if body == nil {
		body = strings.NewReader("")
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}
