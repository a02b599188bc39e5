package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
)

// LocalStorage keeps uploads on the local disk under root/users/<ownerID>/.
type LocalStorage struct {
	root string
	now  func() time.Time
}

var _ contract.IFileStorage = (*LocalStorage)(nil)

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root, now: time.Now}
}

// SaveFile writes data to a millisecond-timestamped file and returns its path.
func (s *LocalStorage) SaveFile(ctx context.Context, data []byte, originalName, ownerID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ownerID == "" || strings.ContainsAny(ownerID, `/\`) || ownerID == "." || ownerID == ".." {
		return "", fmt.Errorf("invalid owner id %q", ownerID)
	}
	dir := filepath.Join(s.root, "users", ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := strconv.FormatInt(s.now().UnixMilli(), 10)
	if ext := fileExtension(originalName); ext != "" {
		name += "." + ext
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return target, nil
}

// ReadFile returns the bytes stored at location, which must lie under the storage root.
func (s *LocalStorage) ReadFile(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(s.root, location)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("location %q is outside the upload directory", location)
	}
	return os.ReadFile(location)
}

func fileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
