package domain

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpadImage(t *testing.T) {
	payload := []byte("\x89PNG payload")
	padded := make([]byte, 4, 4+len(payload)+16)
	binary.BigEndian.PutUint32(padded, uint32(len(payload)))
	padded = append(padded, payload...)
	padded = append(padded, make([]byte, 16)...)

	got, err := UnpadImage(padded)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 1}},
		{"zero length", []byte{0, 0, 0, 0, 1, 2}},
		{"length exceeds data", []byte{0, 0, 0, 9, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnpadImage(tt.data)
			assert.True(t, errors.Is(err, ErrInvalidPadding))
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{"https ok", "https://cdn.example.com/a.jpg", false},
		{"http ok", "http://cdn.example.com/a.jpg", false},
		{"empty", "  ", true},
		{"ftp scheme", "ftp://cdn.example.com/a.jpg", true},
		{"no host", "https:///a.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateImageURL(tt.rawURL)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidImageContentType(t *testing.T) {
	assert.True(t, IsValidImageContentType("image/webp", false))
	assert.True(t, IsValidImageContentType(" Image/PNG ", false))
	assert.False(t, IsValidImageContentType("text/html", false))
	assert.False(t, IsValidImageContentType("application/octet-stream", false))
	assert.True(t, IsValidImageContentType("application/octet-stream", true))
	assert.True(t, IsValidImageContentType("", true))
	assert.False(t, IsValidImageContentType("", false))
}

func TestImageReference_IsSet(t *testing.T) {
	assert.False(t, ImageReference{}.IsSet())
	assert.False(t, PlainImageURL(" ").IsSet())
	assert.True(t, PaddedImageURL("https://pcdn.example.com/x.pad").IsSet())
}
