package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataDir(t *testing.T) {
	home := filepath.FromSlash("/home/user")
	appData := filepath.FromSlash("/Users/user/AppData/Roaming")

	tests := []struct {
		name    string
		goos    string
		xdgData string
		want    string
	}{
		{
			name: "windows keeps the organization folder",
			goos: "windows",
			want: filepath.Join(appData, "peacememories", "mess", "data"),
		},
		{
			name: "macOS uses the bundle id",
			goos: "darwin",
			want: filepath.Join(home, "Library", "Application Support", "peacememories.mess"),
		},
		{
			name:    "linux honours XDG_DATA_HOME",
			goos:    "linux",
			xdgData: filepath.FromSlash("/data"),
			want:    filepath.Join(filepath.FromSlash("/data"), "mess"),
		},
		{
			name: "linux falls back to ~/.local/share",
			goos: "linux",
			want: filepath.Join(home, ".local", "share", "mess"),
		},
		{
			name: "other unixes follow linux",
			goos: "freebsd",
			want: filepath.Join(home, ".local", "share", "mess"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataDir(tt.goos, home, appData, tt.xdgData))
		})
	}
}
