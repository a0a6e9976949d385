package storage

import (
	"errors"
	"testing"
)

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int64
		wantErr     error
	}{
		{"small jpeg", "image/jpeg", 1024, nil},
		{"max image", "image/png", MaxImageSize, nil},
		{"oversized image", "image/png", MaxImageSize + 1, ErrFileTooLarge},
		{"pdf", "application/pdf", 20 * 1024 * 1024, nil},
		{"oversized pdf", "application/pdf", MaxFileSize + 1, ErrFileTooLarge},
		{"executable", "application/x-msdownload", 1024, ErrContentTypeBlocked},
		{"html", "text/html", 1024, ErrContentTypeBlocked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUpload(tc.contentType, tc.size)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateUpload(%q, %d) = %v, want %v", tc.contentType, tc.size, err, tc.wantErr)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/jpeg") || !IsImage("image/png") {
		t.Fatal("jpeg and png should be images")
	}
	if IsImage("application/pdf") {
		t.Fatal("pdf is not an image")
	}
}
