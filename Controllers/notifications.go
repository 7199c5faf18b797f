package Controllers

import (
	"log"
	"net/http"
	"strconv"

	"PicQuest/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationHandler contains handler methods for in-app notifications
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		DB: db,
	}
}

// GetNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	var notifications []Models.Notification
	err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at desc").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load notifications",
		})
	}

	var unread int64
	h.DB.Model(&Models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Count(&unread)

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification id",
		})
	}

	result := h.DB.Model(&Models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("read", true)
	if result.Error != nil {
		log.Println(result.Error)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notification",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead marks every unread notification of the caller
func (h *NotificationHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	err := h.DB.Model(&Models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Update("read", true).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notifications",
		})
	}

	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}
