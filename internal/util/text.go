package util

import (
	"path/filepath"
	"strings"
)

var filenameReplacer = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", "/", "_", "\\", "_",
	"|", "_", "?", "_", "*", "_", "\"", "_", " ", "_",
)

// SanitizeFilename strips any directory component and replaces characters
// that are unsafe in filenames. Result is capped at 120 characters.
func SanitizeFilename(input string) string {
	out := filepath.Base(strings.TrimSpace(input))
	out = filenameReplacer.Replace(out)
	out = strings.Trim(out, "._")
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}

// ReplaceExt swaps the extension of path for ext (ext includes the dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
