package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mquintal/graphlens/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.CriticalValue:
		return CriticalColor.Sprint(text)
	case schema.HighValue:
		return HighColor.Sprint(text)
	case schema.ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnoreNode returns true if the node matches any of the exclude
// patterns. Patterns match against the node id and label. Glob patterns
// (using filepath.Match) are supported when the pattern contains wildcard
// characters (*, ?, [ ]); "type:" prefixed patterns match the node type.
// A user can provide patterns like "bot-*", "type:document", "svc-auth".
func ShouldIgnoreNode(node schema.Node, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if typeName, ok := strings.CutPrefix(ex, "type:"); ok {
			if strings.EqualFold(typeName, string(node.Type)) {
				return true
			}
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			if ok, err := filepath.Match(ex, node.ID); err == nil && ok {
				return true
			}
			if ok, err := filepath.Match(ex, node.Label); err == nil && ok {
				return true
			}
			continue
		}

		if node.ID == ex || node.Label == ex {
			return true
		}
	}
	return false
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

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".graphlens_cache.db"
	}
	return filepath.Join(homeDir, ".graphlens_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".graphlens_analysis.db"
	}
	return filepath.Join(homeDir, ".graphlens_analysis.db")
}

// TruncateLabel truncates a node label to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is space for both the "..." and at least one
// character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
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
