// Package receipts stores uploaded receipt files on the local filesystem.
package receipts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Open for unknown receipt files.
var ErrNotFound = errors.New("receipt not found")

// imageTypes are the content types a receipt may have.
var imageTypes = []string{"image/jpeg", "image/png"}

// IsImage reports whether mime is a jpeg or png content type.
func IsImage(mime string) bool {
	return mimetype.EqualsAny(mime, imageTypes...)
}

// IsImageContent reports whether content sniffs as a jpeg or png image.
func IsImageContent(content []byte) bool {
	return IsImage(mimetype.Detect(content).String())
}

// Receipt describes a stored receipt file.
type Receipt struct {
	// Key identifies the receipt and doubles as the ID of the bill it backs.
	Key string

	// FileName is the name the employee uploaded.
	FileName string

	// StoredName is the file name on disk: Key plus the lower-cased extension.
	StoredName string

	// MIME is the sniffed content type.
	MIME string
}

// FileStore keeps receipts in a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create receipts directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes content under a new key.
func (s *FileStore) Save(ctx context.Context, fileName string, content []byte) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := uuid.New().String()
	stored := key + strings.ToLower(filepath.Ext(fileName))

	if err := os.WriteFile(filepath.Join(s.dir, stored), content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write receipt: %w", err)
	}

	return &Receipt{
		Key:        key,
		FileName:   fileName,
		StoredName: stored,
		MIME:       mimetype.Detect(content).String(),
	}, nil
}

// Open returns the stored file and its sniffed content type. The caller
// closes the file.
func (s *FileStore) Open(storedName string) (*os.File, string, error) {
	// Stored names never contain separators.
	if storedName == "" || storedName != filepath.Base(storedName) || strings.HasPrefix(storedName, ".") {
		return nil, "", ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, storedName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open receipt: %w", err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to sniff receipt: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to rewind receipt: %w", err)
	}

	return f, mtype.String(), nil
}
