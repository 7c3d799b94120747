package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local) // 2024 week 11

func clock() time.Time { return testNow }

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, clock)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// isolate keeps the developer's config file and MESS_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MESS_BASE_PATH", "")
	t.Setenv("MESS_TARGET_PATH", "")
	t.Setenv("MESS_COLOR", "")
	t.Setenv("MESS_VERBOSE", "")
}

func seed(t *testing.T, base string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(base, filepath.FromSlash(p)), 0o755))
	}
}

func TestNewCommand(t *testing.T) {
	t.Run("prints this week's bucket", func(t *testing.T) {
		isolate(t)
		base := t.TempDir()

		res := runCLI(t, "-b", base, "new")
		require.Equal(t, 0, res.code, res.stderr)
		want := filepath.Join(base, "2024", "11")
		assert.Equal(t, want+"\n", res.stdout)
		assert.DirExists(t, want)
	})

	t.Run("creates named project", func(t *testing.T) {
		isolate(t)
		base := t.TempDir()

		res := runCLI(t, "--basepath", base, "new", "spike")
		require.Equal(t, 0, res.code, res.stderr)
		want := filepath.Join(base, "2024", "11", "spike")
		assert.Equal(t, want+"\n", res.stdout)
		assert.DirExists(t, want)
	})

	t.Run("is idempotent", func(t *testing.T) {
		isolate(t)
		base := t.TempDir()

		first := runCLI(t, "-b", base, "new", "spike")
		second := runCLI(t, "-b", base, "new", "spike")
		require.Equal(t, 0, first.code)
		require.Equal(t, 0, second.code, second.stderr)
		assert.Equal(t, first.stdout, second.stdout)
	})

	t.Run("rejects names with a separator", func(t *testing.T) {
		isolate(t)
		base := t.TempDir()

		res := runCLI(t, "-b", base, "new", "a/b")
		assert.Equal(t, 1, res.code)
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "Directory name cannot contain path separator")

		entries, err := os.ReadDir(base)
		require.NoError(t, err)
		assert.Empty(t, entries, "nothing may be created")
	})

	t.Run("base path from environment", func(t *testing.T) {
		isolate(t)
		base := t.TempDir()
		t.Setenv("MESS_BASE_PATH", base)

		res := runCLI(t, "new")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, filepath.Join(base, "2024", "11")+"\n", res.stdout)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		isolate(t)
		fromEnv := t.TempDir()
		fromFlag := t.TempDir()
		t.Setenv("MESS_BASE_PATH", fromEnv)

		res := runCLI(t, "-b", fromFlag, "new")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, filepath.Join(fromFlag, "2024", "11")+"\n", res.stdout)
	})

	t.Run("too many arguments", func(t *testing.T) {
		isolate(t)

		res := runCLI(t, "-b", t.TempDir(), "new", "a", "b")
		assert.Equal(t, 1, res.code)
	})

	t.Run("verbose logs to stderr", func(t *testing.T) {
		isolate(t)
		base := t.TempDir()

		res := runCLI(t, "-v", "-b", base, "new")
		require.Equal(t, 0, res.code)
		assert.Contains(t, res.stderr, "created directory")
		assert.Equal(t, filepath.Join(base, "2024", "11")+"\n", res.stdout)
	})
}

func TestRescueCommand(t *testing.T) {
	newBase := func(t *testing.T) string {
		t.Helper()
		base := t.TempDir()
		seed(t, base,
			"2024/11/current",
			"2024/10/alpha",
			"2024/10/banana",
			"2024/10/grape",
			"2024/10/.hidden",
			"2024/9",
		)
		return base
	}

	t.Run("lists past weeks", func(t *testing.T) {
		isolate(t)
		base := newBase(t)

		res := runCLI(t, "-b", base, "--color", "never", "rescue")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "2024/10\n\talpha\n\tbanana\n\tgrape\n", res.stdout)
		assert.NotContains(t, res.stdout, "current")
		assert.NotContains(t, res.stdout, ".hidden")
	})

	t.Run("fuzzy search", func(t *testing.T) {
		isolate(t)
		base := newBase(t)

		res := runCLI(t, "-b", base, "--color", "never", "rescue", "ban")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "2024/10\n\tbanana\n", res.stdout)
	})

	t.Run("no matches prints nothing", func(t *testing.T) {
		isolate(t)
		base := newBase(t)

		res := runCLI(t, "-b", base, "rescue", "zzz")
		assert.Equal(t, 0, res.code)
		assert.Empty(t, res.stdout)
	})

	t.Run("accepts reserved --to", func(t *testing.T) {
		isolate(t)
		base := newBase(t)

		res := runCLI(t, "-b", base, "--color", "never", "-v", "rescue", "--to", t.TempDir(), "grape")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "2024/10\n\tgrape\n", res.stdout)
		assert.Contains(t, res.stderr, "reserved")
	})

	t.Run("missing base fails", func(t *testing.T) {
		isolate(t)

		res := runCLI(t, "-b", filepath.Join(t.TempDir(), "absent"), "rescue")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "read base directory")
	})

	t.Run("invalid color mode", func(t *testing.T) {
		isolate(t)

		res := runCLI(t, "-b", t.TempDir(), "--color", "rainbow", "rescue")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "invalid color mode")
	})
}

func TestUnimplementedCommands(t *testing.T) {
	for _, name := range []string{"prune", "install"} {
		t.Run(name, func(t *testing.T) {
			isolate(t)

			res := runCLI(t, "-b", t.TempDir(), name)
			assert.Equal(t, exitNotImplemented, res.code)
			assert.Contains(t, res.stderr, name+": not implemented")
			assert.Empty(t, res.stdout)
		})

		t.Run(name+" ignores a broken config file", func(t *testing.T) {
			isolate(t)
			cfgFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgFile, []byte("base_path: [unterminated\n"), 0o644))

			res := runCLI(t, "--config", cfgFile, name)
			assert.Equal(t, exitNotImplemented, res.code)
			assert.Contains(t, res.stderr, name+": not implemented")
			assert.NotContains(t, res.stderr, "parse config file")
		})
	}
}
