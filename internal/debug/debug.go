package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "15:04:05.000"

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	console = newLogger(os.Stderr)
	file    *log.Logger
	sink    *lumberjack.Logger
)

// FileOptions configures the rotating debug log file.
type FileOptions struct {
	// Path is the log file location. Empty disables the file sink.
	Path string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
	// MaxAgeDays is the age after which rotated files are deleted.
	MaxAgeDays int
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           log.DebugLevel,
	})
	return l
}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	if disable {
		console.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects console debug output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	console = newLogger(w)
	if noColor {
		console.SetColorProfile(termenv.Ascii)
	}
}

// SetFile starts teeing debug output into a rotating log file. The file
// receives messages even when console debug output is disabled.
func SetFile(opts FileOptions) {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		_ = sink.Close()
		sink, file = nil, nil
	}
	if opts.Path == "" {
		return
	}

	sink = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	file = newLogger(sink)
	file.SetColorProfile(termenv.Ascii)
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink, file = nil, nil
	return err
}

// emit writes msg to every active destination.
func emit(msg string, keyvals ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if enabled {
		console.Debug(msg, keyvals...)
	}
	if file != nil {
		file.Debug(msg, keyvals...)
	}
}

func active() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled || file != nil
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !active() {
		return
	}
	emit(fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !active() {
		return
	}
	emit(fmt.Sprintf("=== %s ===", section))
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !active() {
		return
	}
	emit(key, "value", value)
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !active() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(fmt.Sprintf("%s:\n%s", key, jsonBytes))
}
