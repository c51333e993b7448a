package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/athome/schema"
)

// Color variables for console output, one per category.
var (
	FullDayColor      = color.New(color.FgGreen, color.Bold)
	AfterWorkColor    = color.New(color.FgCyan, color.Bold)
	EveningOnlyColor  = color.New(color.FgYellow)
	WeekendsOnlyColor = color.New(color.FgMagenta)
	VeryLimitedColor  = color.New(color.FgRed, color.Bold)
)

// GetColorLabel returns a colored category label for console output (table).
func GetColorLabel(c schema.Category) string {
	switch c.Key {
	case schema.FullDayCategory:
		return FullDayColor.Sprint(c.Label)
	case schema.AfterWorkCategory:
		return AfterWorkColor.Sprint(c.Label)
	case schema.EveningOnlyCategory:
		return EveningOnlyColor.Sprint(c.Label)
	case schema.WeekendsOnlyCategory:
		return WeekendsOnlyColor.Sprint(c.Label)
	default:
		return VeryLimitedColor.Sprint(c.Label)
	}
}

// GetLabel returns the category label, colored and prefixed with its emoji as configured.
func GetLabel(c schema.Category, useColors, useEmojis bool) string {
	label := c.Label
	if useColors {
		label = GetColorLabel(c)
	}
	if useEmojis && c.Hint.Emoji != "" {
		label = c.Hint.Emoji + " " + label
	}
	return label
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for profile storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".athome_profiles.db"
	}
	return filepath.Join(homeDir, ".athome_profiles.db")
}

// GetLogFilePath returns the default location of the rotating log file.
func GetLogFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("logs", "athome.log")
	}
	return filepath.Join(dir, "athome", "logs", "athome.log")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
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

// ValidateWindows returns one problem description per window that can never match.
func ValidateWindows(windows []schema.TimeWindow) []string {
	var problems []string
	for i, w := range windows {
		switch {
		case len(w.Days) == 0:
			problems = append(problems, fmt.Sprintf("window %d has no days", i+1))
		case w.From >= w.To:
			problems = append(problems, fmt.Sprintf("window %d starts at %s but ends at %s", i+1, w.From, w.To))
		}
	}
	return problems
}
