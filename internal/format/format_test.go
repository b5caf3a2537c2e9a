package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048575, "1024.0 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576, "5.0 MB"},
		{1073741824, "1.0 GB"},
		{2048 * 1073741824, "2048.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Size(tt.bytes))
		})
	}
}

func TestTime(t *testing.T) {
	orig := time.Local
	time.Local = time.UTC
	defer func() { time.Local = orig }()

	ts := time.Date(2024, 3, 9, 7, 5, 59, 0, time.FixedZone("X", 2*3600))
	assert.Equal(t, "2024-03-09 05:05", Time(ts))
}

func TestIconHint(t *testing.T) {
	tests := []struct {
		name        string
		isDir       bool
		contentType string
		file        string
		want        string
	}{
		{"directory", true, "", "photos", IconFolder},
		{"image", false, "image/png", "a.png", IconImage},
		{"audio", false, "audio/mpeg", "a.mp3", IconAudio},
		{"video", false, "video/mp4", "a.mp4", IconVideo},
		{"plain text", false, "text/plain; charset=utf-8", "notes.txt", IconText},
		{"source as text", false, "text/plain; charset=utf-8", "main.go", "text-x-script"},
		{"pdf by extension", false, "application/pdf", "doc.PDF", "application-pdf"},
		{"unknown", false, "application/octet-stream", "blob", IconGeneric},
		{"no content type", false, "", "archive.zip", "package-x-generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IconHint(tt.isDir, tt.contentType, tt.file))
		})
	}
}
