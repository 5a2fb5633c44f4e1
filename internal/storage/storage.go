package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"tuneful/internal/config"
	"tuneful/internal/utils"
)

// ErrNotExist is returned when no object is stored under a name
var ErrNotExist = errors.New("storage: object does not exist")

// Object is an open stored file. Callers must Close it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// Storage keeps uploaded bytes under flat, already sanitized names
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64) error
	Open(ctx context.Context, name string) (*Object, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// New builds the backend selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(
			cfg.UploadDir,
			cfg.CreateDirs,
			os.FileMode(utils.ParseFileMode(cfg.FilePermissions, 0644)),
			os.FileMode(utils.ParseFileMode(cfg.DirPermissions, 0755)),
		)
	case "minio":
		return NewMinio(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Audio types missing from the builtin table on minimal systems
var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
}

func init() {
	for ext, typ := range audioTypes {
		_ = mime.AddExtensionType(ext, typ)
	}
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// flat reports whether name can be used as a single path element
func flat(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}
