package storage

import (
	"context"
	"testing"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ext      string
		expected string
	}{
		{
			name:     "Расширение из mimetype",
			ext:      ".png",
			expected: "2026/03/1772618400000-abc.png",
		},
		{
			name:     "Неизвестный тип",
			ext:      "",
			expected: "2026/03/1772618400000-abc.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ObjectName(now, "abc", tt.ext))
		})
	}
}

func TestPublicURL(t *testing.T) {
	client := &MinIOClient{bucket: "evidence", baseURL: "http://localhost:9000"}

	assert.Equal(t, "http://localhost:9000/evidence/2026/03/x.png", client.PublicURL("2026/03/x.png"))
}

func TestUploadEvidence_Empty(t *testing.T) {
	client := &MinIOClient{bucket: "evidence", baseURL: "http://localhost:9000"}

	_, _, err := client.UploadEvidence(context.Background(), nil)

	assert.ErrorIs(t, err, ErrEmptyObject)
}

func TestDetectEvidenceType(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

	mtype := mimetype.Detect(png)

	assert.Equal(t, "image/png", mtype.String())
	assert.Equal(t, ".png", mtype.Extension())
}
