// Package logger provides a structured logging interface for the atlas scraper.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output
// - Optional mirroring into a log file
// - Global logger instance for easy access
//
// Basic Usage:
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("Scrape started")
//	logger.WithField("case_number", "12").Info("Case processed")
//	logger.WithError(err).Error("Failed to download image")
package logger
