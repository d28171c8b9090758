package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/service"
	"github.com/wavegram/wavegram/pkg/config"
)

// Subdirectories for the two upload kinds
const (
	postsDir    = "posts"
	profilesDir = "profiles"
)

// Saver stores uploaded image files on disk
type Saver struct {
	dir      string
	maxBytes int64
}

// NewSaver creates a saver and ensures the destination directories exist
func NewSaver(cfg config.UploadConfig) (*Saver, error) {
	for _, sub := range []string{postsDir, profilesDir} {
		if err := os.MkdirAll(filepath.Join(cfg.Dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &Saver{
		dir:      cfg.Dir,
		maxBytes: int64(cfg.MaxSizeMB) * 1024 * 1024,
	}, nil
}

// SavePostImages stores the uploaded post attachments and returns their
// stored filenames in upload order
func (s *Saver) SavePostImages(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, file := range files {
		name, err := s.save(c, file, postsDir)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// SaveProfilePicture stores a single profile picture and returns its
// stored filename
func (s *Saver) SaveProfilePicture(c *gin.Context, file *multipart.FileHeader) (string, error) {
	return s.save(c, file, profilesDir)
}

func (s *Saver) save(c *gin.Context, file *multipart.FileHeader, sub string) (string, error) {
	// Only image files are accepted
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", service.NewBadRequest("Invalid file format")
	}
	if file.Size > s.maxBytes {
		return "", service.NewBadRequest("File too large")
	}

	// Timestamp prefix keeps stored names unique
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dest := filepath.Join(s.dir, sub, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return name, nil
}
