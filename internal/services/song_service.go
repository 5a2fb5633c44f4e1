package services

import (
	"context"
	"errors"
	"fmt"

	"tuneful/internal/logger"
	"tuneful/internal/models"
	"tuneful/internal/requests"

	"gorm.io/gorm"
)

// ErrSongNotFound is returned when no song has the requested id
var ErrSongNotFound = errors.New("song not found")

// SongService handles song persistence
type SongService struct {
	files *FileService
}

// NewSongService creates a song service resolving file references through files
func NewSongService(files *FileService) *SongService {
	return &SongService{files: files}
}

// List returns every song with its file, ordered by id
func (s *SongService) List(ctx context.Context, db *gorm.DB) ([]models.Song, error) {
	songs := make([]models.Song, 0)
	if err := db.WithContext(ctx).Preload("File").Order("id asc").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// Get loads one song with its file
func (s *SongService) Get(ctx context.Context, db *gorm.DB, id int64) (*models.Song, error) {
	if id <= 0 {
		return nil, ErrSongNotFound
	}

	var song models.Song
	if err := db.WithContext(ctx).Preload("File").First(&song, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to fetch song %d: %w", id, err)
	}
	return &song, nil
}

// Create stores a song for the referenced file. A file id must exist; a bare
// name references the oldest file with that name or creates it.
func (s *SongService) Create(ctx context.Context, db *gorm.DB, req requests.CreateSongRequest) (*models.Song, error) {
	var song models.Song

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			file *models.File
			err  error
		)
		switch {
		case req.File.ID != nil:
			file, err = s.files.FindByID(tx, *req.File.ID)
		case req.File.Name != nil:
			file, err = s.files.FindOrCreateByName(tx, *req.File.Name)
		default:
			err = ErrFileNotFound
		}
		if err != nil {
			return err
		}

		song = models.Song{FileID: file.ID}
		if err := tx.Omit("File").Create(&song).Error; err != nil {
			return fmt.Errorf("failed to create song: %w", err)
		}
		song.File = *file
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Created song", logger.Uint("song_id", song.ID), logger.Uint("file_id", song.FileID))
	return &song, nil
}

// Delete removes a song, leaving its file in place
func (s *SongService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	if id <= 0 {
		return ErrSongNotFound
	}

	result := db.WithContext(ctx).Delete(&models.Song{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete song %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSongNotFound
	}

	logger.Info("Deleted song", logger.Int64("song_id", id))
	return nil
}

// Count returns the number of stored songs
func (s *SongService) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Song{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
