package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/contentlist/internal/prefs"
)

// CacheDirName is the cache directory under the configuration directory.
const CacheDirName = "cache"

const gitignoreHeader = "# contentlist per-user state (written by config init)\n"

// GitignoreEntries returns the patterns that keep per-user state in a
// .contentlist directory out of version control: the page size preferences,
// their in-flight temp file, cached pages and log files. A cacheDir inside
// dir is added as well; one outside dir needs no entry.
func GitignoreEntries(dir, cacheDir string) []string {
	entries := []string{
		prefs.DefaultFileName,
		prefs.DefaultFileName + prefs.TempSuffix,
		CacheDirName + "/",
		"*.log",
	}
	if cacheDir == "" {
		return entries
	}
	rel, err := filepath.Rel(dir, cacheDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return entries
	}
	if entry := filepath.ToSlash(rel) + "/"; entry != CacheDirName+"/" {
		entries = append(entries, entry)
	}
	return entries
}

// GitignoreContent renders entries as a .gitignore file.
func GitignoreContent(entries []string) string {
	var b strings.Builder
	b.WriteString(gitignoreHeader)
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// EnsureGitignore writes dir/.gitignore with GitignoreEntries(dir, cacheDir)
// unless a .gitignore is already there, and reports whether it wrote one.
// dir is created if needed.
func EnsureGitignore(dir, cacheDir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")
	switch _, err := os.Stat(path); {
	case err == nil:
		return false, nil
	case !os.IsNotExist(err):
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}
	content := GitignoreContent(GitignoreEntries(dir, cacheDir))
	//nolint:gosec // .gitignore is meant to be readable by everyone.
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
