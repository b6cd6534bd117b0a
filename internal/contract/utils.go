package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/arcadecab/cabcheck/schema"
)

// Color variables for console output.
var (
	NativeColor      = color.New(color.FgGreen, color.Bold) // NativeColor marks a perfect fit.
	GoodColor        = color.New(color.FgGreen)             // GoodColor marks a near perfect fit.
	OKColor          = color.New(color.FgYellow)            // OKColor marks a playable compromise.
	BadColor         = color.New(color.FgMagenta, color.Bold)
	UnsupportedColor = color.New(color.FgRed, color.Bold)
	UnknownColor     = color.New(color.FgCyan)
)

// GetPlainLabel returns the plain status name used for CSV, JSON, and table printing.
func GetPlainLabel(status schema.OverallStatus) string {
	return status.String()
}

// GetColorLabel returns a colored status name for console output (table).
func GetColorLabel(status schema.OverallStatus) string {
	return GetLabel(GetPlainLabel(status), status, true)
}

// GetLabel picks the colored or plain label for a status of any lattice. The color
// follows the overall status the value maps to, the text keeps the original name.
func GetLabel(name string, overall schema.OverallStatus, useColors bool) string {
	if !useColors {
		return name
	}
	switch overall {
	case schema.OverallNative:
		return NativeColor.Sprint(name)
	case schema.OverallGood:
		return GoodColor.Sprint(name)
	case schema.OverallOK:
		return OKColor.Sprint(name)
	case schema.OverallBad:
		return BadColor.Sprint(name)
	case schema.OverallUnsupported:
		return UnsupportedColor.Sprint(name)
	default:
		return UnknownColor.Sprint(name)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// NormalizeGameName is the lookup key of a game name: trimmed and lowercased.
func NormalizeGameName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for modeline cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cabcheck_cache.db"
	}
	return filepath.Join(homeDir, ".cabcheck_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for check history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cabcheck_history.db"
	}
	return filepath.Join(homeDir, ".cabcheck_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
