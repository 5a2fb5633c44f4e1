package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Common utilities used across tuneful

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SecureFilename reduces a client supplied filename to a flat ASCII name that
// is safe to join onto the upload directory. The result may be empty.
func SecureFilename(name string) string {
	// NFKD splits accented letters so the ASCII base survives the filter
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" && windowsDeviceNames[strings.ToUpper(strings.Split(name, ".")[0])] {
		name = "_" + name
	}

	return name
}

// GetFileExtension extracts and normalizes the file extension
func GetFileExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// GetFileExtensionFromHeader extracts extension from multipart file header
func GetFileExtensionFromHeader(file *multipart.FileHeader) string {
	return GetFileExtension(file.Filename)
}

// ParseSizeString converts human-readable size strings to bytes
func ParseSizeString(sizeStr string) (int64, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))

	units := []struct {
		suffix string
		factor float64
	}{
		{"TB", 1024 * 1024 * 1024 * 1024},
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
	}
	for _, unit := range units {
		if strings.HasSuffix(sizeStr, unit.suffix) {
			value := strings.TrimSpace(strings.TrimSuffix(sizeStr, unit.suffix))
			if size, err := strconv.ParseFloat(value, 64); err == nil && size >= 0 {
				return int64(size * unit.factor), nil
			}
			return 0, fmt.Errorf("invalid size format: %s", sizeStr)
		}
	}

	// Handle bytes
	sizeStr = strings.TrimSpace(strings.TrimSuffix(sizeStr, "B"))
	if size, err := strconv.ParseInt(sizeStr, 10, 64); err == nil && size >= 0 {
		return size, nil
	}

	return 0, fmt.Errorf("invalid size format: %s", sizeStr)
}

// FormatFileSize formats bytes into human-readable format
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ParseFileMode parses an octal permission string such as "0644"
func ParseFileMode(perm string, fallback uint32) uint32 {
	if perm == "" {
		return fallback
	}
	mode, err := strconv.ParseUint(perm, 8, 32)
	if err != nil {
		return fallback
	}
	return uint32(mode)
}
