package storage

import (
	"context"
	"testing"
	"time"
)

func TestPresignGet_PublicBucketDomain(t *testing.T) {
	store, err := NewR2Storage(R2Config{
		AccountID:       "test",
		AccessKeyID:     "key",
		AccessKeySecret: "secret",
		BucketName:      "assets",
		PublicURL:       "https://cdn.example.com",
	})
	if err != nil {
		t.Fatalf("NewR2Storage: %v", err)
	}

	url, err := store.PresignGet(context.Background(), "assets/abc/file.png", 15*time.Minute)
	if err != nil {
		t.Fatalf("PresignGet: %v", err)
	}
	if url != "https://cdn.example.com/assets/abc/file.png" {
		t.Errorf("url = %q, want public domain URL", url)
	}
}
