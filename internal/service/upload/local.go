// internal/service/upload/local.go
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"jobportal-service/internal/domain/user"
	xerrors "jobportal-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
)

const maxResumeSize = 5 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// LocalStore keeps resumes on the local filesystem and serves them under
// urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir is the directory files are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// SaveResume copies the uploaded file under a generated key.
func (s *LocalStore) SaveResume(ctx context.Context, fh *multipart.FileHeader) (*user.Resume, error) {
	if fh.Size > maxResumeSize {
		return nil, xerrors.Invalid("Resume must be 5MB or smaller.")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return nil, xerrors.Invalid(fmt.Sprintf("Resume type %q is not supported.", ext))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := ulid.Make().String() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write resume: %w", err)
	}

	return &user.Resume{
		Key:      key,
		URL:      s.urlPrefix + "/" + key,
		FileName: filepath.Base(fh.Filename),
	}, nil
}

// DeleteResume removes a stored resume. A missing file is not an error.
func (s *LocalStore) DeleteResume(ctx context.Context, key string) error {
	if key == "" || key != filepath.Base(key) {
		return xerrors.Invalid(fmt.Sprintf("Invalid resume key %q.", key))
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
