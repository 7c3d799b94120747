package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appName = "mess"
	orgName = "peacememories"
)

// DefaultDataDir returns the platform application-data directory mess keeps
// its buckets in when no base path is configured.
func DefaultDataDir() (string, error) {
	var home, appData string
	var err error
	switch runtime.GOOS {
	case "windows":
		appData, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve application data directory: %w", err)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); runtime.GOOS != "darwin" && filepath.IsAbs(xdg) {
			return dataDir(runtime.GOOS, "", "", xdg), nil
		}
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}
	return dataDir(runtime.GOOS, home, appData, ""), nil
}

// dataDir lays out the per-platform directory so buckets created by earlier
// releases are found: %AppData%\peacememories\mess\data on Windows, the
// peacememories.mess bundle id under Application Support on macOS and the
// XDG data home elsewhere.
func dataDir(goos, home, appData, xdgDataHome string) string {
	switch goos {
	case "windows":
		return filepath.Join(appData, orgName, appName, "data")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", orgName+"."+appName)
	}
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}

		if path == "~" {
			return home, nil
		}

		return filepath.Join(home, path[2:]), nil
	}

	return path, nil
}

func NormalizePath(path string) (string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	if expanded == "" {
		return "", fmt.Errorf("path is required")
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	return filepath.Clean(abs), nil
}
