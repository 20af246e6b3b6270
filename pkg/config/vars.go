package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "parkphotos"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/parkphotos by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/parkphotos by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/parkphotos/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(LocalShareDir(homeDir), "logs")
}

// LocalShareDir returns the directory for application data.
func LocalShareDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/parkphotos/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RegionsFilePath returns the full path to the regions.yaml file.
// Returns ~/.config/parkphotos/regions.yaml by default.
func RegionsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "regions.yaml")
}
