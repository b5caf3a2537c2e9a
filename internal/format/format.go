// Package format turns raw file metadata into the strings shown in listings.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
)

// TimeLayout is the modification-time layout used in every listing.
const TimeLayout = "2006-01-02 15:04"

// Size renders a byte count with binary thresholds: "B" below 1 KiB, then
// one decimal of KB, MB or GB. GB is the largest unit.
func Size(bytes int64) string {
	switch {
	case bytes < kib:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mib:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kib)
	case bytes < gib:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mib)
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gib)
	}
}

// Time renders t in local time.
func Time(t time.Time) string {
	return t.In(time.Local).Format(TimeLayout)
}

// Icon names handed to the presentation layer.
const (
	IconFolder  = "folder"
	IconGeneric = "text-x-generic"
	IconImage   = "image-x-generic"
	IconAudio   = "audio-x-generic"
	IconVideo   = "video-x-generic"
	IconText    = "text-x-generic"
)

var contentPrefixIcons = []struct {
	prefix string
	icon   string
}{
	{"image/", IconImage},
	{"text/", IconText},
	{"audio/", IconAudio},
	{"video/", IconVideo},
}

var extensionIcons = map[string]string{
	".pdf":  "application-pdf",
	".doc":  "x-office-document",
	".docx": "x-office-document",
	".odt":  "x-office-document",
	".xls":  "x-office-spreadsheet",
	".xlsx": "x-office-spreadsheet",
	".ods":  "x-office-spreadsheet",
	".ppt":  "x-office-presentation",
	".pptx": "x-office-presentation",
	".odp":  "x-office-presentation",
	".zip":  "package-x-generic",
	".tar":  "package-x-generic",
	".gz":   "package-x-generic",
	".xz":   "package-x-generic",
	".7z":   "package-x-generic",
	".rar":  "package-x-generic",
	".go":   "text-x-script",
	".py":   "text-x-script",
	".sh":   "text-x-script",
	".js":   "text-x-script",
	".c":    "text-x-script",
	".rs":   "text-x-script",
	".html": "text-html",
	".htm":  "text-html",
	".exe":  "application-x-executable",
}

// IconHint picks an icon name for an entry. Content type wins over the
// extension table; directories are always folders.
func IconHint(isDir bool, contentType, name string) string {
	if isDir {
		return IconFolder
	}
	for _, p := range contentPrefixIcons {
		if strings.HasPrefix(contentType, p.prefix) {
			// plain text with a known extension keeps the more specific icon
			if p.prefix == "text/" {
				if icon, ok := extensionIcons[strings.ToLower(filepath.Ext(name))]; ok {
					return icon
				}
			}
			return p.icon
		}
	}
	if icon, ok := extensionIcons[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return IconGeneric
}
