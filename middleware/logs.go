package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"PicQuest/Models"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Enable file logging
	File bool
	// Log file path
	LogFilePath string
	// Include user ID in logs
	IncludeUserID bool
	// Skip logging for specific paths
	SkipPaths []string
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	Error     string        `json:"error,omitempty"`
	UserID    interface{}   `json:"user_id,omitempty"`
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:       true,
		File:          true,
		LogFilePath:   "logs/requests.log",
		IncludeUserID: true,
		SkipPaths:     []string{"/health", "/static"},
	}
}

// LoggingMiddleware creates a new logging middleware with the given configuration
func LoggingMiddleware(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	// Ensure logs directory exists
	if cfg.File {
		if err := os.MkdirAll("logs", 0755); err != nil {
			log.Printf("Error creating logs directory: %v\n", err)
			cfg.File = false
		}
	}

	return func(c *fiber.Ctx) error {
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(c.Path(), skip) {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
		if err != nil {
			data.Error = err.Error()
		}
		if cfg.IncludeUserID {
			if user, ok := c.Locals("user").(Models.User); ok {
				data.UserID = user.ID
			}
		}

		if cfg.Console {
			log.Printf("%s %s [%d] %v %s", data.Method, data.Path, data.Status, data.Latency, data.IP)
		}
		if cfg.File {
			writeLogEntry(cfg.LogFilePath, data)
		}

		return err
	}
}

func writeLogEntry(path string, data LogData) {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}
	defer logFile.Close()

	line, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintln(logFile, string(line))
}

// RequestLogger creates a middleware that logs detailed request information
func RequestLogger() fiber.Handler {
	return LoggingMiddleware()
}
