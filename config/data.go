package config

import (
	"os"
	"path/filepath"
)

// GetDataDir returns the directory where the service keeps its data
// (the consumer key database). Checked at call time so tests and
// operators can repoint it without a restart.
// Priority: FILECONV_DATA_DIR environment variable > "./data" default
func GetDataDir() string {
	if dir := os.Getenv("FILECONV_DATA_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// GetKeysDBPath returns the full path to the consumer key database.
// Path: {DATA_DIR}/api_keys.db
func GetKeysDBPath() string {
	return filepath.Join(GetDataDir(), "api_keys.db")
}

// GetMasterKey returns the deployment master key, or "" when none is
// configured. With no master key and no consumer keys the service runs
// in open mode; key management stays disabled until one is set.
func GetMasterKey() string {
	return os.Getenv("API_KEY")
}

// GetListenAddr returns the HTTP listen address.
// Priority: FILECONV_ADDR environment variable > ":8080" default
func GetListenAddr() string {
	if addr := os.Getenv("FILECONV_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

// GetLogFile returns the log file path, or "" for console-only logging.
func GetLogFile() string {
	return os.Getenv("FILECONV_LOG_FILE")
}
