package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogRotationConfig holds configuration for log rotation
type LogRotationConfig struct {
	MaxAge     int  `json:"maxAge" toml:"maxAge"`         // Maximum number of days to retain log files
	MaxSize    int  `json:"maxSize" toml:"maxSize"`       // Maximum size in megabytes before rotation
	MaxBackups int  `json:"maxBackups" toml:"maxBackups"` // Maximum number of backup files to retain
	Compress   bool `json:"compress" toml:"compress"`     // Whether to compress rotated files
}

// DefaultLogRotationConfig returns sensible defaults for log rotation
func DefaultLogRotationConfig() LogRotationConfig {
	return LogRotationConfig{
		MaxAge:     30,   // 30 days default retention
		MaxSize:    10,   // 10MB per file
		MaxBackups: 5,    // Keep 5 backup files
		Compress:   true, // Compress old files
	}
}

// SetupLogRotation configures log rotation for a given log file path
func SetupLogRotation(logPath string, config LogRotationConfig) *lumberjack.Logger {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return nil
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true, // Use local time for timestamps
	}
}

// CleanupOldLogs manually removes log files older than the specified number of days
// This provides additional cleanup beyond lumberjack's built-in MaxAge
func CleanupOldLogs(logDir string, maxAgeDays int) error {
	if maxAgeDays <= 0 {
		return nil // No cleanup if maxAge is 0 or negative
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)

	return filepath.Walk(logDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		// Only consider .log files and compressed log files
		if filepath.Ext(path) == ".log" || filepath.Ext(path) == ".gz" {
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err != nil {
					log.Printf("Failed to remove old log file %s: %v", path, err)
				}
			}
		}
		return nil
	})
}

// Logging format constants
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// IsValidLoggingFormat returns true if the provided format is supported.
func IsValidLoggingFormat(f string) bool {
	return f == LoggingFormatJSONL || f == LoggingFormatPretty
}

// LogEntry is one structured scan event.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Event     string                 `json:"event"`
	Path      string                 `json:"path,omitempty"`
	Rule      string                 `json:"rule,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// EventLogger appends scan events to a writer, one JSON document per line
// (or indented when the pretty format is selected).
type EventLogger struct {
	w      io.Writer
	format string
}

// NewEventLogger creates an event logger writing to w.
func NewEventLogger(w io.Writer, format string) *EventLogger {
	if !IsValidLoggingFormat(format) {
		format = LoggingFormatJSONL
	}
	return &EventLogger{w: w, format: format}
}

// Log writes one event. Failures are reported to stderr and never fail the
// scan: a logging problem must not change the gate's verdict.
func (l *EventLogger) Log(event, path, rule string, details map[string]interface{}) {
	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Event:     event,
		Path:      path,
		Rule:      rule,
		Details:   details,
	}

	var data []byte
	var err error
	if l.format == LoggingFormatPretty {
		data, err = json.MarshalIndent(entry, "", "  ")
	} else {
		data, err = json.Marshal(entry)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal log entry: %v\n", err)
		return
	}

	if _, err := l.w.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log entry: %v\n", err)
	}
}
