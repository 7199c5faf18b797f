package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"PicQuest/Models"
	"PicQuest/Notifications"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FollowHandler contains handler methods for the follow graph
type FollowHandler struct {
	DB *gorm.DB
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(db *gorm.DB) *FollowHandler {
	return &FollowHandler{
		DB: db,
	}
}

// FollowUser creates a follow edge from the caller to :id
func (h *FollowHandler) FollowUser(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	if uint(targetID) == user.ID {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot follow yourself",
		})
	}

	var target Models.User
	if err := h.DB.First(&target, targetID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var follow Models.Follow
	result := h.DB.Where("follower_id = ? AND followee_id = ?", user.ID, target.ID).
		FirstOrCreate(&follow, Models.Follow{FollowerID: user.ID, FolloweeID: target.ID})
	if result.Error != nil {
		log.Println(result.Error)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to follow user",
		})
	}

	if result.RowsAffected > 0 {
		Notifications.Notify(h.DB, target.ID, Models.NotificationTypeFollow,
			"New follower",
			fmt.Sprintf("%s started following you", user.Name),
			map[string]string{"follower_id": strconv.Itoa(int(user.ID))})
	}

	return c.JSON(fiber.Map{
		"message": "Now following " + target.Name,
	})
}

// UnfollowUser removes the follow edge from the caller to :id
func (h *FollowHandler) UnfollowUser(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	result := h.DB.Unscoped().
		Where("follower_id = ? AND followee_id = ?", user.ID, targetID).
		Delete(&Models.Follow{})
	if result.Error != nil {
		log.Println(result.Error)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unfollow user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Unfollowed",
	})
}

// GetFollowers lists users following :id
func (h *FollowHandler) GetFollowers(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	var followers []Models.User
	err = h.DB.Where("id IN (?)", h.DB.Model(&Models.Follow{}).
		Select("follower_id").
		Where("followee_id = ?", targetID)).
		Find(&followers).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load followers",
		})
	}

	return c.JSON(fiber.Map{
		"followers": followers,
		"total":     len(followers),
	})
}

// GetFollowing lists users that :id follows
func (h *FollowHandler) GetFollowing(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	var following []Models.User
	err = h.DB.Where("id IN (?)", h.DB.Model(&Models.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", targetID)).
		Find(&following).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load following",
		})
	}

	return c.JSON(fiber.Map{
		"following": following,
		"total":     len(following),
	})
}
