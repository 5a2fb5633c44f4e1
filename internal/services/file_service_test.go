package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"tuneful/internal/config"
	"tuneful/internal/models"
	"tuneful/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	storage.Storage
}

func (failingStorage) Save(context.Context, string, io.Reader, int64) error {
	return errors.New("disk full")
}

func TestNewFileServiceRejectsBadSize(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.MaxFileSize = "lots"

	_, err := NewFileService(cfg, failingStorage{})
	assert.ErrorContains(t, err, "validation.max_file_size")
}

func TestValidateFile(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.MaxFileSize = "1KB"
	cfg.Validation.AllowedExtensions = []string{"mp3", "wav"}
	cfg.Validation.BlockedExtensions = []string{"exe"}
	svc, _ := newTestFileService(t, cfg)

	assert.NoError(t, svc.ValidateFile(fileHeader(t, "ok.MP3", []byte("ID3"))))

	cases := map[string]struct {
		name    string
		content []byte
		reason  string
	}{
		"too large":    {"big.mp3", make([]byte, 2048), "File size 2.0 KB exceeds maximum allowed size of 1.0 KB"},
		"blocked":      {"setup.exe", []byte("MZ"), "File type .exe is not allowed"},
		"not allowed":  {"notes.txt", []byte("hi"), "File type .txt is not allowed"},
		"no extension": {"README", []byte("hi"), "File must have a valid extension"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := svc.ValidateFile(fileHeader(t, tc.name, tc.content))

			var rejected *FileRejectedError
			require.True(t, errors.As(err, &rejected))
			assert.Equal(t, tc.reason, rejected.Reason)
		})
	}
}

func TestValidateFileWithoutAllowList(t *testing.T) {
	svc, _ := newTestFileService(t, config.Default())

	assert.NoError(t, svc.ValidateFile(fileHeader(t, "anything.bin", []byte{0x00})))
	assert.NoError(t, svc.ValidateFile(fileHeader(t, "README", []byte("hi"))))
}

func TestGenerateFileName(t *testing.T) {
	uuidName := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	t.Run("original", func(t *testing.T) {
		svc, _ := newTestFileService(t, config.Default())

		name, err := svc.GenerateFileName("My Song (demo).mp3")
		require.NoError(t, err)
		assert.Equal(t, "My_Song_demo.mp3", name)
	})

	t.Run("original without extension", func(t *testing.T) {
		cfg := config.Default()
		cfg.Naming.PreserveExtension = false
		svc, _ := newTestFileService(t, cfg)

		name, err := svc.GenerateFileName("My Song.mp3")
		require.NoError(t, err)
		assert.Equal(t, "My_Song", name)
	})

	t.Run("original falls back to uuid", func(t *testing.T) {
		svc, _ := newTestFileService(t, config.Default())

		name, err := svc.GenerateFileName("日本語")
		require.NoError(t, err)
		assert.Regexp(t, uuidName, name)
	})

	t.Run("uuid", func(t *testing.T) {
		cfg := config.Default()
		cfg.Naming.Strategy = "uuid"
		svc, _ := newTestFileService(t, cfg)

		name, err := svc.GenerateFileName("track.wav")
		require.NoError(t, err)
		assert.Regexp(t, uuidName, name)
		assert.True(t, strings.HasSuffix(name, ".wav"))
	})

	t.Run("timestamp", func(t *testing.T) {
		cfg := config.Default()
		cfg.Naming.Strategy = "timestamp"
		svc, _ := newTestFileService(t, cfg)

		name, err := svc.GenerateFileName("track.ogg")
		require.NoError(t, err)
		assert.Regexp(t, `^\d+\.ogg$`, name)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := config.Default()
		cfg.Naming.Strategy = "random"
		svc, _ := newTestFileService(t, cfg)

		_, err := svc.GenerateFileName("track.ogg")
		assert.Error(t, err)
	})
}

func TestUploadStoresRowAndBytes(t *testing.T) {
	db := newTestDB(t)
	svc, dir := newTestFileService(t, config.Default())

	record, err := svc.Upload(context.Background(), db, fileHeader(t, "first take.wav", []byte("RIFF")))
	require.NoError(t, err)

	assert.NotZero(t, record.ID)
	assert.Equal(t, "first_take.wav", record.Name)

	data, err := os.ReadFile(filepath.Join(dir, "first_take.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	var stored models.File
	require.NoError(t, db.First(&stored, record.ID).Error)
	assert.Equal(t, "first_take.wav", stored.Name)
}

func TestUploadRollsBackWhenStorageFails(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewFileService(config.Default(), failingStorage{})
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), db, fileHeader(t, "lost.mp3", []byte("ID3")))
	assert.ErrorContains(t, err, "disk full")

	var count int64
	require.NoError(t, db.Model(&models.File{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpenOnlyServesSanitizedNames(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestFileService(t, config.Default())
	ctx := context.Background()

	_, err := svc.Upload(ctx, db, fileHeader(t, "clip.mp3", []byte("ID3")))
	require.NoError(t, err)

	obj, err := svc.Open(ctx, "clip.mp3")
	require.NoError(t, err)
	obj.Close()

	for _, name := range []string{"../clip.mp3", "", "missing.mp3", "with space.mp3"} {
		_, err := svc.Open(ctx, name)
		assert.ErrorIs(t, err, storage.ErrNotExist, name)
	}
}

func TestFindOrCreateByName(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestFileService(t, config.Default())

	first, err := svc.FindOrCreateByName(db, "Just a sample file")
	require.NoError(t, err)

	again, err := svc.FindOrCreateByName(db, "Just a sample file")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := svc.FindOrCreateByName(db, "Another file")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestFindByID(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestFileService(t, config.Default())

	file := models.File{Name: "known.mp3"}
	require.NoError(t, db.Create(&file).Error)

	found, err := svc.FindByID(db, int64(file.ID))
	require.NoError(t, err)
	assert.Equal(t, "known.mp3", found.Name)

	for _, id := range []int64{0, -1, 999} {
		_, err := svc.FindByID(db, id)
		assert.ErrorIs(t, err, ErrFileNotFound)
	}
}
