package drivers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LocalFSDriver stores attachment binaries on local disk. Keys are fanned
// out into two directory levels to keep any single directory small.
type LocalFSDriver struct {
	BaseDir   string
	PublicBaseURL string
}

// NewLocalFSDriver creates a LocalFSDriver rooted at baseDir. publicBaseURL is
// the base URL used when building download links.
func NewLocalFSDriver(baseDir, publicBaseURL string) (*LocalFSDriver, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalFSDriver{BaseDir: baseDir, PublicBaseURL: publicBaseURL}, nil
}

func (d *LocalFSDriver) fanoutPath(key string) string {
	if len(key) < 4 {
		return key
	}
	return filepath.Join(key[0:2], key[2:4], key)
}

func (d *LocalFSDriver) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	fullPath := filepath.Join(d.BaseDir, d.fanoutPath(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create fanout directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file content: %w", err)
	}

	// Content type sidecar, read back on Open.
	metaPath := fullPath + ".meta"
	if err := os.WriteFile(metaPath, []byte(contentType), 0644); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

func (d *LocalFSDriver) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	fullPath := filepath.Join(d.BaseDir, d.fanoutPath(key))
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, "", err
	}

	contentType := "application/octet-stream"
	if metaBytes, err := os.ReadFile(fullPath + ".meta"); err == nil {
		contentType = string(metaBytes)
	}

	return f, contentType, nil
}

func (d *LocalFSDriver) Remove(ctx context.Context, key string) error {
	fullPath := filepath.Join(d.BaseDir, d.fanoutPath(key))
	os.Remove(fullPath + ".meta")
	err := os.Remove(fullPath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (d *LocalFSDriver) PublicURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if d.PublicBaseURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", d.PublicBaseURL, key), nil
}
