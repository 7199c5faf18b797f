package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"PicQuest/Models"
	"PicQuest/Notifications"
	"PicQuest/TaskGen"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	uploadDir     = "static/uploads"
	maxPhotoWidth = 1080
	feedPageSize  = 20
)

// FeedHandler contains handler methods for the photo feed
type FeedHandler struct {
	DB *gorm.DB
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(db *gorm.DB) *FeedHandler {
	return &FeedHandler{
		DB: db,
	}
}

// CreatePost accepts a multipart photo upload, normalizes the image and
// publishes it to the feed.
func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "No photo provided",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Uploaded file is not a valid image",
		})
	}

	// Downscale large captures before storing
	if img.Bounds().Dx() > maxPhotoWidth {
		img = imaging.Resize(img, maxPhotoWidth, 0, imaging.Lanczos)
	}

	imagePath := filepath.Join(uploadDir, fmt.Sprintf("%s.jpg", uuid.NewString()))
	if err := imaging.Save(img, imagePath, imaging.JPEGQuality(85)); err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store photo",
		})
	}

	post := Models.Post{
		UserID:    user.ID,
		Caption:   c.FormValue("caption"),
		ImagePath: imagePath,
		TaskID:    c.FormValue("task_id"),
		DateKey:   TaskGen.TodayKey(),
	}

	if err := h.DB.Create(&post).Error; err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create post",
		})
	}

	return c.Status(http.StatusCreated).JSON(post)
}

// GetFeed returns the global feed, newest first, paged via ?page=
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	var posts []Models.Post
	err := h.DB.Preload("User").
		Order("created_at desc").
		Limit(feedPageSize).
		Offset((page - 1) * feedPageSize).
		Find(&posts).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load feed",
		})
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
	})
}

// GetFollowingFeed returns posts from users the caller follows
func (h *FeedHandler) GetFollowingFeed(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	var posts []Models.Post
	err := h.DB.Preload("User").
		Where("user_id IN (?)", h.DB.Model(&Models.Follow{}).
			Select("followee_id").
			Where("follower_id = ?", user.ID)).
		Order("created_at desc").
		Limit(feedPageSize).
		Offset((page - 1) * feedPageSize).
		Find(&posts).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load feed",
		})
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
	})
}

// LikePost likes a post; liking twice is a no-op
func (h *FeedHandler) LikePost(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var post Models.Post
	if err := h.DB.First(&post, postID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}

	var like Models.PostLike
	result := h.DB.Where("post_id = ? AND user_id = ?", post.ID, user.ID).
		FirstOrCreate(&like, Models.PostLike{PostID: post.ID, UserID: user.ID})
	if result.Error != nil {
		log.Println(result.Error)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to like post",
		})
	}

	if result.RowsAffected > 0 {
		h.DB.Model(&post).Update("like_count", gorm.Expr("like_count + 1"))

		if post.UserID != user.ID {
			Notifications.Notify(h.DB, post.UserID, Models.NotificationTypeLike,
				"New like",
				fmt.Sprintf("%s liked your photo", user.Name),
				map[string]string{"post_id": strconv.Itoa(int(post.ID))})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Post liked",
	})
}

// UnlikePost removes the caller's like from a post
func (h *FeedHandler) UnlikePost(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	result := h.DB.Unscoped().
		Where("post_id = ? AND user_id = ?", postID, user.ID).
		Delete(&Models.PostLike{})
	if result.Error != nil {
		log.Println(result.Error)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unlike post",
		})
	}

	if result.RowsAffected > 0 {
		h.DB.Model(&Models.Post{}).Where("id = ?", postID).
			Update("like_count", gorm.Expr("like_count - 1"))
	}

	return c.JSON(fiber.Map{
		"message": "Post unliked",
	})
}
