// Package config holds the process configuration. It is built once in main
// from VIDSERVE_* environment variables and passed to every component that
// needs it; nothing reads configuration from ambient globals.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vidserve/logger"
	"vidserve/utils"
)

// Config holds all server settings in concrete types.
type Config struct {
	ListenAddr string
	DataDir    string // pebble stores (credentials, history)
	UploadDir  string // per-identity saved inputs
	OutputDir  string // per-identity encode outputs
	FFmpegPath string
	LogLevel   string
	LogFile    string

	TokenSecret    []byte
	TokenTTL       time.Duration
	MaxUploadBytes int64

	// SeedUsers provisions credentials at startup: "alice:secret,bob:hunter2".
	// Identity creation is otherwise out-of-band.
	SeedUsers string

	Archive ArchiveConfig
}

// ArchiveConfig selects an optional remote backend that finished outputs are
// replicated to. An empty Backend disables archival.
type ArchiveConfig struct {
	Backend string // "", "s3", "gcs" or "sftp"

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	GCSBucket          string
	GCSCredentialsJSON string // base64-encoded service account key

	SFTPHost       string
	SFTPPort       string
	SFTPUser       string
	SFTPPassword   string
	SFTPPrivateKey string
	SFTPRemoteDir  string
}

// Load builds the configuration from the environment and ensures the local
// directories exist.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:     getEnv("VIDSERVE_LISTEN_ADDR", ":8080"),
		DataDir:        getEnv("VIDSERVE_DATA_DIR", "./data"),
		UploadDir:      getEnv("VIDSERVE_UPLOAD_DIR", "./uploads"),
		OutputDir:      getEnv("VIDSERVE_OUTPUT_DIR", "./outputs"),
		FFmpegPath:     getEnv("VIDSERVE_FFMPEG", "ffmpeg"),
		LogLevel:       getEnv("VIDSERVE_LOG_LEVEL", "info"),
		LogFile:        getEnv("VIDSERVE_LOG_FILE", ""),
		TokenTTL:       time.Duration(getEnvAsInt("VIDSERVE_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		MaxUploadBytes: int64(getEnvAsInt("VIDSERVE_MAX_UPLOAD_MB", 512)) << 20,
		SeedUsers:      getEnv("VIDSERVE_USERS", ""),
		Archive: ArchiveConfig{
			Backend:            getEnv("VIDSERVE_ARCHIVE_BACKEND", ""),
			S3Region:           getEnv("VIDSERVE_ARCHIVE_S3_REGION", ""),
			S3Bucket:           getEnv("VIDSERVE_ARCHIVE_S3_BUCKET", ""),
			S3AccessKey:        getEnv("VIDSERVE_ARCHIVE_S3_ACCESS_KEY", ""),
			S3SecretKey:        getEnv("VIDSERVE_ARCHIVE_S3_SECRET_KEY", ""),
			GCSBucket:          getEnv("VIDSERVE_ARCHIVE_GCS_BUCKET", ""),
			GCSCredentialsJSON: getEnv("VIDSERVE_ARCHIVE_GCS_CREDENTIALS", ""),
			SFTPHost:           getEnv("VIDSERVE_ARCHIVE_SFTP_HOST", ""),
			SFTPPort:           getEnv("VIDSERVE_ARCHIVE_SFTP_PORT", "22"),
			SFTPUser:           getEnv("VIDSERVE_ARCHIVE_SFTP_USER", ""),
			SFTPPassword:       getEnv("VIDSERVE_ARCHIVE_SFTP_PASSWORD", ""),
			SFTPPrivateKey:     getEnv("VIDSERVE_ARCHIVE_SFTP_PRIVATE_KEY", ""),
			SFTPRemoteDir:      getEnv("VIDSERVE_ARCHIVE_SFTP_REMOTE_DIR", "vidserve"),
		},
	}

	secret := getEnv("VIDSERVE_TOKEN_SECRET", "")
	if secret == "" {
		generated, err := utils.GenerateRandomHex(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		logger.Warn("VIDSERVE_TOKEN_SECRET not set; generated a random secret, sessions will not survive a restart")
		secret = generated
	}
	cfg.TokenSecret = []byte(secret)

	for _, dir := range []string{cfg.DataDir, cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// CredentialsDBPath returns the pebble path for the credential store.
func (c *Config) CredentialsDBPath() string {
	return filepath.Join(c.DataDir, "credentials.db")
}

// HistoryDBPath returns the pebble path for the encode history store.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if val, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return val
	}
	return fallback
}
