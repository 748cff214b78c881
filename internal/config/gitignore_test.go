package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/prefs"
)

func TestGitignoreEntries(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".contentlist")
	base := []string{
		prefs.DefaultFileName,
		prefs.DefaultFileName + prefs.TempSuffix,
		config.CacheDirName + "/",
		"*.log",
	}

	tests := []struct {
		name     string
		cacheDir string
		want     []string
	}{
		{"no cache dir", "", base},
		{"default cache dir", filepath.Join(dir, config.CacheDirName), base},
		{"custom cache dir inside", filepath.Join(dir, "state", "pages"), append(append([]string{}, base...), "state/pages/")},
		{"cache dir outside", filepath.Join(t.TempDir(), "pages"), base},
		{"cache dir is the directory itself", dir, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.GitignoreEntries(dir, tt.cacheDir))
		})
	}
}

func TestGitignoreContent(t *testing.T) {
	t.Parallel()

	content := config.GitignoreContent([]string{"a.json", "b/"})
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Equal(t, []string{"a.json", "b/"}, lines[1:])
}

func TestEnsureGitignore(t *testing.T) {
	t.Parallel()

	t.Run("writes entries once", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "sub", ".contentlist")
		cacheDir := filepath.Join(dir, "pages")

		created, err := config.EnsureGitignore(dir, cacheDir)
		require.NoError(t, err)
		assert.True(t, created)

		data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		require.NoError(t, err)
		assert.Equal(t, config.GitignoreContent(config.GitignoreEntries(dir, cacheDir)), string(data))
		assert.Contains(t, string(data), "pages/\n")
		assert.NotContains(t, string(data), "config.yaml")

		created, err = config.EnsureGitignore(dir, cacheDir)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("keeps an existing file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, ".gitignore")
		custom := "*.secret\n"
		require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

		created, err := config.EnsureGitignore(dir, "")
		require.NoError(t, err)
		assert.False(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, custom, string(data))
	})

	t.Run("read-only directory", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not enforced on Windows")
		}
		if os.Geteuid() == 0 {
			t.Skip("root ignores directory permissions")
		}

		dir := filepath.Join(t.TempDir(), "readonly")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		created, err := config.EnsureGitignore(dir, "")
		require.Error(t, err)
		assert.False(t, created)
	})
}
