package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"tuneful/internal/config"
	"tuneful/internal/logger"
	"tuneful/internal/models"
	"tuneful/internal/storage"
	"tuneful/internal/utils"

	"github.com/google/uuid"
	pkgErrors "github.com/kerimovok/go-pkg-utils/errors"
	"gorm.io/gorm"
)

// ErrFileNotFound is returned when a referenced file row does not exist
var ErrFileNotFound = errors.New("file not found")

// FileRejectedError reports an upload refused by the validation settings
type FileRejectedError struct {
	Reason string
}

func (e *FileRejectedError) Error() string {
	return e.Reason
}

// FileService handles file operations
type FileService struct {
	validation config.FileValidationConfig
	naming     config.FileNamingConfig
	maxSize    int64
	storage    storage.Storage
}

// NewFileService creates a new file service instance
func NewFileService(cfg config.MainConfig, store storage.Storage) (*FileService, error) {
	var maxSize int64
	if cfg.Validation.MaxFileSize != "" {
		size, err := utils.ParseSizeString(cfg.Validation.MaxFileSize)
		if err != nil {
			return nil, fmt.Errorf("validation.max_file_size: %w", err)
		}
		maxSize = size
	}

	return &FileService{
		validation: cfg.Validation,
		naming:     cfg.Naming,
		maxSize:    maxSize,
		storage:    store,
	}, nil
}

// ValidateFile validates the uploaded file against the size and extension limits
func (s *FileService) ValidateFile(file *multipart.FileHeader) error {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return &FileRejectedError{Reason: fmt.Sprintf("File size %s exceeds maximum allowed size of %s",
			utils.FormatFileSize(file.Size), utils.FormatFileSize(s.maxSize))}
	}

	ext := utils.GetFileExtensionFromHeader(file)

	for _, blocked := range s.validation.BlockedExtensions {
		if strings.EqualFold(ext, blocked) {
			return &FileRejectedError{Reason: fmt.Sprintf("File type .%s is not allowed", ext)}
		}
	}

	if len(s.validation.AllowedExtensions) == 0 {
		return nil
	}
	if ext == "" {
		return &FileRejectedError{Reason: "File must have a valid extension"}
	}
	for _, allowed := range s.validation.AllowedExtensions {
		if strings.EqualFold(ext, allowed) {
			return nil
		}
	}
	return &FileRejectedError{Reason: fmt.Sprintf("File type .%s is not allowed", ext)}
}

// GenerateFileName derives the stored name for a client supplied filename
func (s *FileService) GenerateFileName(originalName string) (string, error) {
	safe := utils.SecureFilename(originalName)
	ext := filepath.Ext(safe)

	switch s.naming.Strategy {
	case "", "original":
		if safe == "" || safe == ext {
			// nothing usable survived sanitizing
			return uuid.New().String() + ext, nil
		}
		if s.naming.PreserveExtension {
			return safe, nil
		}
		return strings.TrimSuffix(safe, ext), nil

	case "uuid":
		id, err := uuid.NewRandom()
		if err != nil {
			return "", pkgErrors.InternalError("UUID_GENERATION_ERROR", "Failed to generate UUID")
		}
		if s.naming.PreserveExtension {
			return id.String() + ext, nil
		}
		return id.String(), nil

	case "timestamp":
		timestamp := time.Now().UnixNano()
		if s.naming.PreserveExtension {
			return fmt.Sprintf("%d%s", timestamp, ext), nil
		}
		return fmt.Sprintf("%d", timestamp), nil

	default:
		return "", pkgErrors.InternalError("INVALID_NAMING_STRATEGY", "Invalid file naming strategy")
	}
}

// Upload records the file and writes its bytes. The row is rolled back when
// the bytes cannot be stored.
func (s *FileService) Upload(ctx context.Context, db *gorm.DB, header *multipart.FileHeader) (*models.File, error) {
	name, err := s.GenerateFileName(header.Filename)
	if err != nil {
		return nil, err
	}

	record := &models.File{Name: name}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create file record: %w", err)
		}

		src, err := header.Open()
		if err != nil {
			return pkgErrors.InternalError("FILE_OPEN_ERROR", fmt.Sprintf("Failed to open source file: %v", err))
		}
		defer src.Close()

		return s.storage.Save(ctx, name, src, header.Size)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stored uploaded file",
		logger.Uint("file_id", record.ID),
		logger.String("name", record.Name),
		logger.Int64("size", header.Size),
	)
	return record, nil
}

// Open returns the stored bytes for a public file name
func (s *FileService) Open(ctx context.Context, name string) (*storage.Object, error) {
	safe := utils.SecureFilename(name)
	if safe == "" || safe != name {
		return nil, storage.ErrNotExist
	}
	return s.storage.Open(ctx, safe)
}

// FindByID loads a file row
func (s *FileService) FindByID(db *gorm.DB, id int64) (*models.File, error) {
	if id <= 0 {
		return nil, ErrFileNotFound
	}

	var file models.File
	if err := db.First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to fetch file %d: %w", id, err)
	}
	return &file, nil
}

// FindOrCreateByName returns the oldest file row with name, creating one when none exists
func (s *FileService) FindOrCreateByName(db *gorm.DB, name string) (*models.File, error) {
	var file models.File
	err := db.Where("name = ?", name).Order("id asc").First(&file).Error
	if err == nil {
		return &file, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up file %q: %w", name, err)
	}

	file = models.File{Name: name}
	if err := db.Create(&file).Error; err != nil {
		return nil, fmt.Errorf("failed to create file %q: %w", name, err)
	}
	return &file, nil
}
