package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize caps each evidence image at 5MB.
const MaxFileSize = 5 << 20

var ErrFileTooLarge = errors.New("file exceeds the 5MB limit")

// Storage writes uploaded evidence files under a single directory. Records
// reference files by generated name only, never by path.
type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("can't create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxFileSize+1)); err != nil {
		return "", fmt.Errorf("can't write upload file: %w", err)
	}
	return name, nil
}
