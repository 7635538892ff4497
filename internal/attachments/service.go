package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUnsupportedFileType is returned when an upload's extension is not in
// the allow list.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrAttachmentNotFound is returned when no attachment exists for an id.
var ErrAttachmentNotFound = errors.New("attachment not found")

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// AttachmentService stores attachment binaries through a BlobDriver and
// tracks their metadata in the database.
type AttachmentService struct {
	db     *gorm.DB
	driver BlobDriver
}

func NewAttachmentService(db *gorm.DB, driver BlobDriver) *AttachmentService {
	return &AttachmentService{db: db, driver: driver}
}

// Upload validates and stores a candidate file, then records its metadata.
// The stored key is derived from a fresh uuid so candidate-supplied names
// never reach the filesystem.
func (s *AttachmentService) Upload(ctx context.Context, processID uuid.UUID, candidateEmail, filename string, reader io.Reader, size int64, contentType string) (*Attachment, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.New()
	key := id.String() + ext

	if err := s.driver.Put(ctx, key, reader, contentType); err != nil {
		return nil, fmt.Errorf("storage driver failed: %w", err)
	}

	url, err := s.driver.PublicURL(ctx, key, 0)
	if err != nil {
		if delErr := s.driver.Remove(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned file", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to generate URL: %w", err)
	}

	attachment := &Attachment{
		ID:             id,
		ProcessID:      processID,
		CandidateEmail: candidateEmail,
		FileName:       filename,
		Key:            key,
		URL:            url,
		SizeBytes:      size,
		ContentType:    contentType,
	}

	if err := s.db.WithContext(ctx).Create(attachment).Error; err != nil {
		if delErr := s.driver.Remove(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned file", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	slog.InfoContext(ctx, "Attachment uploaded", "id", id, "key", key, "candidate", candidateEmail)
	return attachment, nil
}

// Download streams an attachment's content by id.
func (s *AttachmentService) Download(ctx context.Context, attachmentID uuid.UUID) (io.ReadCloser, *Attachment, error) {
	var attachment Attachment
	if err := s.db.WithContext(ctx).First(&attachment, "id = ?", attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAttachmentNotFound
		}
		return nil, nil, fmt.Errorf("failed to load attachment: %w", err)
	}

	reader, _, err := s.driver.Open(ctx, attachment.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment content: %w", err)
	}
	return reader, &attachment, nil
}

// ListByCandidate returns a candidate's attachments for a process, newest
// first.
func (s *AttachmentService) ListByCandidate(ctx context.Context, processID uuid.UUID, candidateEmail string) ([]Attachment, error) {
	var list []Attachment
	err := s.db.WithContext(ctx).
		Where("process_id = ? AND candidate_email = ?", processID, candidateEmail).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return list, nil
}

// Delete removes an attachment's metadata and its stored content.
func (s *AttachmentService) Delete(ctx context.Context, attachmentID uuid.UUID) error {
	var attachment Attachment
	if err := s.db.WithContext(ctx).First(&attachment, "id = ?", attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to load attachment: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&attachment).Error; err != nil {
		return fmt.Errorf("failed to delete attachment record: %w", err)
	}
	if err := s.driver.Remove(ctx, attachment.Key); err != nil {
		slog.WarnContext(ctx, "failed to remove attachment content", "key", attachment.Key, "error", err)
	}
	return nil
}
