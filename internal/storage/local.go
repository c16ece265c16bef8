package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrForeignURL      = errors.New("url does not belong to this store")
)

// invoice files: scans and PDFs only
var allowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type StoredFile struct {
	URL      string
	MimeType string
	Size     int64
}

// FileStore keeps uploaded files and hands back a durable URL for each.
type FileStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error)
	Delete(ctx context.Context, url string) error
}

// LocalStore writes files under baseDir/YYYY/MM/DD and serves them from staticBase.
type LocalStore struct {
	baseDir    string
	staticBase string
	maxSize    int64
	now        func() time.Time
}

func NewLocalStore(baseDir, staticBase string, maxSize int64) *LocalStore {
	return &LocalStore{
		baseDir:    baseDir,
		staticBase: strings.TrimRight(staticBase, "/"),
		maxSize:    maxSize,
		now:        time.Now,
	}
}

func (s *LocalStore) Save(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := io.ReadFull(file, buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s%s", uuid.NewString(), sanitizeName(fh.Filename), ext)
	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &StoredFile{
		URL:      s.staticBase + "/" + relDir + "/" + filename,
		MimeType: mimeType,
		Size:     written,
	}, nil
}

// Delete removes a file previously returned by Save. Missing files are not an error.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	prefix := s.staticBase + "/"
	if !strings.HasPrefix(url, prefix) {
		return ErrForeignURL
	}
	rel := filepath.FromSlash(strings.TrimPrefix(url, prefix))
	if strings.Contains(rel, "..") {
		return ErrForeignURL
	}

	err := os.Remove(filepath.Join(s.baseDir, rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "file"
	}
	return name
}
