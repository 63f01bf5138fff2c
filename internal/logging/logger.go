// Package logging provides categorized file-based logging for codescope.
// Each category writes to its own file under <workspace>/logs. Before
// Initialize is called (and in tests) every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup and wiring
	CategoryPartition Category = "partition" // CST traversal, unit extraction
	CategoryGraph     Category = "graph"     // Dependency resolution
	CategoryAPI       Category = "api"       // LLM backend calls
	CategoryAnalysis  Category = "analysis"  // Category orchestration
	CategoryChunker   Category = "chunker"   // Token budgeting, map-reduce
	CategoryStore     Category = "store"     // Artifact reads/writes
)

var (
	mu      sync.RWMutex
	loggers = make(map[Category]*zap.SugaredLogger)
	logsDir string
	level   = zapcore.InfoLevel
)

// Initialize sets the log directory and level. Call once at startup;
// loggers created before Initialize stay no-ops.
func Initialize(workspace string, debug bool) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}
	dir := filepath.Join(workspace, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logsDir = dir
	if debug {
		level = zapcore.DebugLevel
	}
	// Reset any no-op loggers handed out before initialization.
	loggers = make(map[Category]*zap.SugaredLogger)
	return nil
}

// Get returns the logger for a category, creating it on first use.
func Get(cat Category) *zap.SugaredLogger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}

	l := zap.NewNop().Sugar()
	if logsDir != "" {
		path := filepath.Join(logsDir, string(cat)+".log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			enc := zap.NewProductionEncoderConfig()
			enc.EncodeTime = zapcore.ISO8601TimeEncoder
			core := zapcore.NewCore(
				zapcore.NewConsoleEncoder(enc),
				zapcore.Lock(f),
				level,
			)
			l = zap.New(core).Named(string(cat)).Sugar()
		}
	}
	loggers[cat] = l
	return l
}

// Sync flushes all category loggers. Safe to call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
}

// Convenience helpers, one per high-traffic category.

func PartitionDebug(format string, args ...interface{}) {
	Get(CategoryPartition).Debugf(format, args...)
}

func GraphDebug(format string, args ...interface{}) {
	Get(CategoryGraph).Debugf(format, args...)
}

func APIDebug(format string, args ...interface{}) {
	Get(CategoryAPI).Debugf(format, args...)
}

func AnalysisDebug(format string, args ...interface{}) {
	Get(CategoryAnalysis).Debugf(format, args...)
}

func ChunkerDebug(format string, args ...interface{}) {
	Get(CategoryChunker).Debugf(format, args...)
}

func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debugf(format, args...)
}
