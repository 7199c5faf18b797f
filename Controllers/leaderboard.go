package Controllers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"PicQuest/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// LeaderboardHandler contains handler methods for leaderboard routes
type LeaderboardHandler struct {
	DB *gorm.DB
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(db *gorm.DB) *LeaderboardHandler {
	return &LeaderboardHandler{
		DB: db,
	}
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	AvatarURL      string `json:"avatar_url"`
	Points         int    `json:"points"`
	TasksCompleted int    `json:"tasks_completed"`
}

func (h *LeaderboardHandler) topUsers(limit int) ([]LeaderboardEntry, error) {
	var users []Models.User
	if err := h.DB.Order("points desc, tasks_completed desc, id asc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:           i + 1,
			UserID:         user.ID,
			Name:           user.Name,
			AvatarURL:      user.AvatarURL,
			Points:         user.Points,
			TasksCompleted: user.TasksCompleted,
		})
	}
	return entries, nil
}

// GetLeaderboard returns the top users by points
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.topUsers(limit)
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load leaderboard",
		})
	}

	return c.JSON(fiber.Map{
		"leaderboard": entries,
		"total":       len(entries),
	})
}

// ExportLeaderboard streams the leaderboard as an Excel workbook
func (h *LeaderboardHandler) ExportLeaderboard(c *fiber.Ctx) error {
	entries, err := h.topUsers(200)
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load leaderboard",
		})
	}

	excelBuffer, err := leaderboardToExcel(entries)
	if err != nil {
		log.Println(err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate export",
		})
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("leaderboard_%s.xlsx", timestamp)

	// Set headers for file download
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Set("Content-Length", fmt.Sprintf("%d", excelBuffer.Len()))

	return c.Send(excelBuffer.Bytes())
}

func leaderboardToExcel(entries []LeaderboardEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Leaderboard"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Rank", "Name", "Points", "Tasks Completed"}

	// Set headers in the first row
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	// Style the header row
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	// Populate data rows
	for rowIndex, entry := range entries {
		row := rowIndex + 2
		values := []interface{}{
			entry.Rank,
			entry.Name,
			entry.Points,
			entry.TasksCompleted,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return &buf, nil
}
