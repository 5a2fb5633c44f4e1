package services

import (
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"

	"tuneful/internal/config"
	"tuneful/internal/database"
	"tuneful/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "tuneful.db")))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestFileService(t *testing.T, cfg config.MainConfig) (*FileService, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocal(dir, true, 0644, 0755)
	require.NoError(t, err)

	svc, err := NewFileService(cfg, store)
	require.NoError(t, err)
	return svc, dir
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}
