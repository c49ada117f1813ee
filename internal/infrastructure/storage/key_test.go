package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"My Holiday Photo.JPG", "My-Holiday-Photo.JPG"},
		{"Café déjà vu.jpeg", "Cafe-deja-vu.jpeg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\cv final.pdf`, "cv-final.pdf"},
		{"??##!!", "file"},
		{"", "file"},
		{"  spaced   out  .png", "spaced-out-.png"},
		{"snake_case-name.webp", "snake_case-name.webp"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestObjectKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	assert.Equal(t, "blogImages/1700000000123_cover.png", ObjectKey("blogImages", "cover.png", at))
	assert.Equal(t, "cv/1700000000123_portfolio.pdf", ObjectKey("/cv/", "portfolio.pdf", at))
	assert.Equal(t, "blogImages/1700000000123_Ecole.png", ObjectKey("blogImages", "École.png", at))
}
