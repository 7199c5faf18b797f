package Controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"PicQuest/Models"
	"PicQuest/Notifications"
	"PicQuest/TaskGen"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TaskHandler serves today's generated tasks and per-user progress
type TaskHandler struct {
	DB    *gorm.DB
	Store TaskGen.TaskStore
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(db *gorm.DB, store TaskGen.TaskStore) *TaskHandler {
	return &TaskHandler{
		DB:    db,
		Store: store,
	}
}

// DailyTaskView is a task from today's set merged with the user's progress
type DailyTaskView struct {
	TaskGen.DailyTask
	UserCompletedCount int  `json:"user_completed_count"`
	UserCompleted      bool `json:"user_completed"`
}

// GetDailyTasks returns today's task set with the caller's progress merged in
func (h *TaskHandler) GetDailyTasks(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)
	dateKey := TaskGen.TodayKey()

	set, err := h.Store.Get(c.Context(), dateKey)
	if err != nil {
		if errors.Is(err, TaskGen.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": "Today's tasks are not ready yet",
			})
		}
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load daily tasks",
		})
	}

	var progress []Models.UserTaskProgress
	if err := h.DB.Where("user_id = ? AND date_key = ?", user.ID, dateKey).Find(&progress).Error; err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load task progress",
		})
	}

	progressByTask := make(map[string]Models.UserTaskProgress, len(progress))
	for _, p := range progress {
		progressByTask[p.TaskID] = p
	}

	views := make([]DailyTaskView, 0, len(set.Tasks))
	for _, task := range set.Tasks {
		view := DailyTaskView{DailyTask: task}
		if p, ok := progressByTask[task.ID]; ok {
			view.UserCompletedCount = p.CompletedCount
			view.UserCompleted = p.IsCompleted
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"date_key": set.DateKey,
		"tasks":    views,
	})
}

// CompleteTaskStep records one captured photo against a task. Completing the
// final step awards the task's points and emits a notification.
func (h *TaskHandler) CompleteTaskStep(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(Models.User)

	var req Models.TaskStepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	dateKey := TaskGen.TodayKey()
	set, err := h.Store.Get(c.Context(), dateKey)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Today's tasks are not ready yet",
		})
	}

	var task *TaskGen.DailyTask
	for i := range set.Tasks {
		if set.Tasks[i].ID == req.TaskID {
			task = &set.Tasks[i]
			break
		}
	}
	if task == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found in today's set",
		})
	}

	var progress Models.UserTaskProgress
	err = h.DB.Where("user_id = ? AND date_key = ? AND task_id = ?", user.ID, dateKey, req.TaskID).
		FirstOrCreate(&progress, Models.UserTaskProgress{
			UserID:  user.ID,
			DateKey: dateKey,
			TaskID:  req.TaskID,
		}).Error
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load task progress",
		})
	}

	if progress.IsCompleted {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": "Task already completed",
		})
	}

	progress.CompletedCount++
	if progress.CompletedCount >= task.TotalCount {
		progress.CompletedCount = task.TotalCount
		progress.IsCompleted = true
	}

	if err := h.DB.Save(&progress).Error; err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save task progress",
		})
	}

	if progress.IsCompleted {
		user.Points += task.Points
		user.TasksCompleted++
		if err := h.DB.Save(&user).Error; err != nil {
			log.Printf("Failed to award points to user %d: %v", user.ID, err)
		}

		Notifications.Notify(h.DB, user.ID, Models.NotificationTypeTaskComplete,
			"Task complete!",
			fmt.Sprintf("You finished \"%s\" and earned %d points", task.Title, task.Points),
			map[string]string{"task_id": task.ID, "date_key": dateKey})
	}

	return c.JSON(fiber.Map{
		"progress": progress,
		"points":   user.Points,
	})
}
