package drivers

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalFSDriver_Fanout(t *testing.T) {
	tempDir := t.TempDir()

	driver, err := NewLocalFSDriver(tempDir, "/attachments")
	if err != nil {
		t.Fatalf("failed to create driver: %v", err)
	}

	ctx := context.Background()
	key := "abcdef123456.pdf"
	content := []byte("candidate cv content")

	// Put
	err = driver.Put(ctx, key, bytes.NewReader(content), "application/pdf")
	if err != nil {
		t.Errorf("Put failed: %v", err)
	}

	// Verify fanout: key "abcdef123456.pdf" should be at ab/cd/abcdef123456.pdf
	expectedSubPath := filepath.Join("ab", "cd", key)
	fullPath := filepath.Join(tempDir, expectedSubPath)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		t.Errorf("file not found at fanout path: %s", fullPath)
	}

	// Open
	reader, contentType, err := driver.Open(ctx, key)
	if err != nil {
		t.Errorf("Open failed: %v", err)
	}
	defer reader.Close()

	if contentType != "application/pdf" {
		t.Errorf("expected content type application/pdf, got %s", contentType)
	}
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Errorf("read failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content mismatch: got %q", got)
	}

	// URL
	url, err := driver.PublicURL(ctx, key, 0)
	if err != nil {
		t.Errorf("PublicURL failed: %v", err)
	}
	if !strings.HasSuffix(url, key) || !strings.Contains(url, "/attachments") {
		t.Errorf("unexpected URL: %s", url)
	}

	// Remove
	err = driver.Remove(ctx, key)
	if err != nil {
		t.Errorf("Remove failed: %v", err)
	}

	if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
		t.Error("file still exists after removal")
	}

	// Removing a missing key is not an error
	if err := driver.Remove(ctx, key); err != nil {
		t.Errorf("Remove of missing key failed: %v", err)
	}
}

func TestLocalFSDriver_ShortKeySkipsFanout(t *testing.T) {
	tempDir := t.TempDir()

	driver, err := NewLocalFSDriver(tempDir, "")
	if err != nil {
		t.Fatalf("failed to create driver: %v", err)
	}

	ctx := context.Background()
	if err := driver.Put(ctx, "abc", bytes.NewReader([]byte("x")), "text/plain"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "abc")); err != nil {
		t.Errorf("short key not stored flat: %v", err)
	}

	// Without a public base URL the key itself is returned
	url, err := driver.PublicURL(ctx, "abc", 0)
	if err != nil {
		t.Errorf("PublicURL failed: %v", err)
	}
	if url != "abc" {
		t.Errorf("expected bare key, got %s", url)
	}
}
