package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/tuneful.yaml"

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	BodyLimit  string `yaml:"body_limit"`
	UploadPath string `yaml:"upload_path"`
}

// FileValidationConfig holds upload validation settings
type FileValidationConfig struct {
	MaxFileSize       string   `yaml:"max_file_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	BlockedExtensions []string `yaml:"blocked_extensions"`
}

// FileNamingConfig holds file naming strategy settings
type FileNamingConfig struct {
	Strategy          string `yaml:"strategy"`
	PreserveExtension bool   `yaml:"preserve_extension"`
}

// MinioConfig holds object storage settings for the minio driver
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// StorageConfig holds upload storage settings
type StorageConfig struct {
	Driver          string      `yaml:"driver"`
	UploadDir       string      `yaml:"upload_dir"`
	CreateDirs      bool        `yaml:"create_dirs"`
	FilePermissions string      `yaml:"file_permissions"`
	DirPermissions  string      `yaml:"dir_permissions"`
	Minio           MinioConfig `yaml:"minio"`
}

// LoggingConfig holds zap logger settings
type LoggingConfig struct {
	Level      string `yaml:"level"`
	OutputPath string `yaml:"output_path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// MainConfig holds the root configuration
type MainConfig struct {
	Server     ServerConfig         `yaml:"server"`
	Storage    StorageConfig        `yaml:"storage"`
	Validation FileValidationConfig `yaml:"validation"`
	Naming     FileNamingConfig     `yaml:"naming"`
	Logging    LoggingConfig        `yaml:"logging"`
}

var (
	Config = Default()
)

// Default returns the configuration used when the YAML file leaves a key unset
func Default() MainConfig {
	return MainConfig{
		Server: ServerConfig{
			BodyLimit:  "100MB",
			UploadPath: "/uploads",
		},
		Storage: StorageConfig{
			Driver:          "local",
			UploadDir:       "uploads",
			CreateDirs:      true,
			FilePermissions: "0644",
			DirPermissions:  "0755",
			Minio: MinioConfig{
				Bucket: "tuneful",
			},
		},
		Validation: FileValidationConfig{
			MaxFileSize: "50MB",
		},
		Naming: FileNamingConfig{
			Strategy:          "original",
			PreserveExtension: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// LoadConfig loads .env and the YAML configuration named by CONFIG_PATH
func LoadConfig() error {
	// .env is optional; the environment may already be populated
	envErr := godotenv.Load()

	path := config.GetEnv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}

	applyEnvOverrides(&cfg)

	Config = cfg

	if envErr != nil && config.GetEnv("GO_ENV") != "production" {
		fmt.Fprintln(os.Stderr, "Warning: Failed to load .env file")
	}
	return nil
}

// applyEnvOverrides lets deployments pick the backend, credentials and log
// level without editing the YAML file
func applyEnvOverrides(cfg *MainConfig) {
	overrides := map[string]*string{
		"STORAGE_DRIVER":   &cfg.Storage.Driver,
		"MINIO_ENDPOINT":   &cfg.Storage.Minio.Endpoint,
		"MINIO_ACCESS_KEY": &cfg.Storage.Minio.AccessKey,
		"MINIO_SECRET_KEY": &cfg.Storage.Minio.SecretKey,
		"MINIO_BUCKET":     &cfg.Storage.Minio.Bucket,
		"LOG_LEVEL":        &cfg.Logging.Level,
	}
	for name, field := range overrides {
		if v := config.GetEnv(name); v != "" {
			*field = v
		}
	}
}

// LoadFile reads a YAML config file on top of the defaults.
// A missing file is not an error.
func LoadFile(path string) (MainConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// GetConfig returns the current configuration
func GetConfig() MainConfig {
	return Config
}
