package interfaces

// Logger defines the interface for logging throughout the application.
// Core code only depends on this interface; the logrus implementation lives
// in infrastructure/logger.
//
// Example usage:
//
//	logger.Info("Feed fetched", map[string]interface{}{
//		"url":   "http://feeds.abcnews.com/abcnews/topstories",
//		"bytes": 48213,
//	})
//
//	logger.Error("Failed to read cached feed", map[string]interface{}{
//		"path":  "/home/user/.cache/rssreader/news",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warnings indicate failures that were absorbed, such as cache errors.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. It is the default when no logger is injected.
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields map[string]interface{}) {}
func (NopLogger) Info(msg string, fields map[string]interface{})  {}
func (NopLogger) Warn(msg string, fields map[string]interface{})  {}
func (NopLogger) Error(msg string, fields map[string]interface{}) {}
