package services

import (
	"context"
	"testing"

	"tuneful/internal/config"
	"tuneful/internal/models"
	"tuneful/internal/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSongService(t *testing.T) (*SongService, *gorm.DB) {
	t.Helper()

	files, _ := newTestFileService(t, config.Default())
	return NewSongService(files), newTestDB(t)
}

func byName(name string) requests.CreateSongRequest {
	return requests.CreateSongRequest{File: requests.FileReference{Name: &name}}
}

func byID(id int64) requests.CreateSongRequest {
	return requests.CreateSongRequest{File: requests.FileReference{ID: &id}}
}

func TestCreateSongByName(t *testing.T) {
	svc, db := newTestSongService(t)
	ctx := context.Background()

	song, err := svc.Create(ctx, db, byName("Just a sample file"))
	require.NoError(t, err)

	assert.Equal(t, uint(1), song.ID)
	assert.Equal(t, "Just a sample file", song.File.Name)
	assert.Equal(t, song.File.ID, song.FileID)

	// a second song with the same name reuses the file
	second, err := svc.Create(ctx, db, byName("Just a sample file"))
	require.NoError(t, err)
	assert.Equal(t, song.FileID, second.FileID)

	var files int64
	require.NoError(t, db.Model(&models.File{}).Count(&files).Error)
	assert.Equal(t, int64(1), files)
}

func TestCreateSongByID(t *testing.T) {
	svc, db := newTestSongService(t)

	file := models.File{Name: "uploaded.mp3"}
	require.NoError(t, db.Create(&file).Error)

	song, err := svc.Create(context.Background(), db, byID(int64(file.ID)))
	require.NoError(t, err)
	assert.Equal(t, file.ID, song.FileID)
	assert.Equal(t, "uploaded.mp3", song.File.Name)
}

func TestCreateSongIDTakesPrecedence(t *testing.T) {
	svc, db := newTestSongService(t)

	file := models.File{Name: "by-id.mp3"}
	require.NoError(t, db.Create(&file).Error)

	id := int64(file.ID)
	name := "by-name.mp3"
	song, err := svc.Create(context.Background(), db, requests.CreateSongRequest{
		File: requests.FileReference{ID: &id, Name: &name},
	})
	require.NoError(t, err)
	assert.Equal(t, "by-id.mp3", song.File.Name)
}

func TestCreateSongUnknownFile(t *testing.T) {
	svc, db := newTestSongService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, db, byID(42))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = svc.Create(ctx, db, requests.CreateSongRequest{})
	assert.ErrorIs(t, err, ErrFileNotFound)

	count, err := svc.Count(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListSongsOrderedByID(t *testing.T) {
	svc, db := newTestSongService(t)
	ctx := context.Background()

	songs, err := svc.List(ctx, db)
	require.NoError(t, err)
	assert.NotNil(t, songs)
	assert.Empty(t, songs)

	for _, name := range []string{"Example Song A", "Example Song B", "Example Song C"} {
		_, err := svc.Create(ctx, db, byName(name))
		require.NoError(t, err)
	}

	songs, err = svc.List(ctx, db)
	require.NoError(t, err)
	require.Len(t, songs, 3)

	assert.Equal(t, "Example Song A", songs[0].File.Name)
	assert.Equal(t, "Example Song B", songs[1].File.Name)
	assert.Equal(t, "Example Song C", songs[2].File.Name)
	assert.Less(t, songs[0].ID, songs[1].ID)
	assert.Less(t, songs[1].ID, songs[2].ID)
}

func TestGetSong(t *testing.T) {
	svc, db := newTestSongService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, db, byName("Example Song B"))
	require.NoError(t, err)

	song, err := svc.Get(ctx, db, int64(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Example Song B", song.File.Name)

	for _, id := range []int64{0, -3, 1000} {
		_, err := svc.Get(ctx, db, id)
		assert.ErrorIs(t, err, ErrSongNotFound)
	}
}

func TestDeleteSongKeepsFile(t *testing.T) {
	svc, db := newTestSongService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, db, byName("Example Song A"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, db, byName("Example Song B"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, db, int64(b.ID)))

	count, err := svc.Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.Get(ctx, db, int64(a.ID))
	assert.NoError(t, err)

	var file models.File
	assert.NoError(t, db.First(&file, b.FileID).Error)

	assert.ErrorIs(t, svc.Delete(ctx, db, int64(b.ID)), ErrSongNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, db, 0), ErrSongNotFound)
}
