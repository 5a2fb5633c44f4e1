package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pkgErrors "github.com/kerimovok/go-pkg-utils/errors"
)

// Local stores files in a directory on the local filesystem
type Local struct {
	dir      string
	fileMode os.FileMode
}

// NewLocal creates a local backend rooted at dir
func NewLocal(dir string, createDirs bool, fileMode, dirMode os.FileMode) (*Local, error) {
	if createDirs {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return nil, pkgErrors.InternalError("DIR_CREATION_ERROR", fmt.Sprintf("Failed to create upload directory: %v", err))
		}
	}

	return &Local{dir: dir, fileMode: fileMode}, nil
}

// Path returns where name is stored on disk
func (l *Local) Path(name string) string {
	return filepath.Join(l.dir, name)
}

// Save writes r to the upload directory, replacing any file with the same name
func (l *Local) Save(_ context.Context, name string, r io.Reader, _ int64) error {
	if !flat(name) {
		return pkgErrors.BadRequestError("INVALID_FILE_NAME", fmt.Sprintf("Invalid file name %q", name))
	}

	dst, err := os.OpenFile(l.Path(name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, l.fileMode)
	if err != nil {
		return pkgErrors.InternalError("FILE_CREATION_ERROR", fmt.Sprintf("Failed to create destination file: %v", err))
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(l.Path(name))
		return pkgErrors.InternalError("FILE_COPY_ERROR", fmt.Sprintf("Failed to copy file content: %v", err))
	}

	if err := dst.Close(); err != nil {
		return pkgErrors.InternalError("FILE_CLOSE_ERROR", fmt.Sprintf("Failed to close destination file: %v", err))
	}
	return nil
}

// Open opens a stored file for reading
func (l *Local) Open(_ context.Context, name string) (*Object, error) {
	if !flat(name) {
		return nil, ErrNotExist
	}

	f, err := os.Open(l.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotExist
	}

	return &Object{ReadCloser: f, Size: info.Size(), ContentType: contentType(name)}, nil
}

// Exists reports whether name is stored
func (l *Local) Exists(_ context.Context, name string) (bool, error) {
	if !flat(name) {
		return false, nil
	}

	info, err := os.Stat(l.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
