package storage

import (
	"strings"
	"testing"
	"time"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	a := ObjectName("Чек №5.PDF", now)
	b := ObjectName("Чек №5.PDF", now)

	if !strings.HasPrefix(a, "receipts/2024/03/") {
		t.Errorf("name %s has wrong prefix", a)
	}
	if !strings.HasSuffix(a, ".pdf") {
		t.Errorf("name %s lost extension", a)
	}
	if a == b {
		t.Error("object names must be unique")
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"receipt.pdf", "application/pdf"},
		{"photo.JPG", "image/jpeg"},
		{"scan.png", "image/png"},
		{"archive.zip", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ContentType(tt.name); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
