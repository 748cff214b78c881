package cli_test

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/contentlist/internal/cli"
	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/pagination"
	"github.com/rshade/contentlist/internal/prefs"
	"github.com/rshade/contentlist/internal/remote"
)

type listJSON struct {
	State string `json:"state"`
	Meta  struct {
		CurrentPage int  `json:"current_page"`
		PageSize    int  `json:"page_size"`
		TotalPages  int  `json:"total_pages"`
		TotalItems  int  `json:"total_items"`
		HasNext     bool `json:"has_next"`
	} `json:"meta"`
	Data []listing.Item `json:"data"`
}

func decodeList(t *testing.T, out string) listJSON {
	t.Helper()
	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got
}

func TestListCmd_DemoTable(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--demo", "list")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "NAME")
	assert.Contains(t, res.stdout, "STATUS")
	assert.Contains(t, res.stdout, "URL")
	assert.Contains(t, res.stdout, "epel-x86_64-000")
	assert.Contains(t, res.stdout, remote.DemoItems(1)[0].URL)
	assert.NotContains(t, res.stdout, "epel-x86_64-020")
	assert.NotContains(t, res.stdout, "demo-account")
	assert.Contains(t, res.stdout, "Showing 1-20 of 137 · page 1 of 7 · 20 per page")
}

func TestListCmd_WideTable(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--demo", "list", "--wide", "--page-size", "10")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "ACCOUNT ID")
	assert.Contains(t, res.stdout, "ORG ID")
	assert.Contains(t, res.stdout, "demo-account")
	assert.Contains(t, res.stdout, "demo-org")
	assert.Contains(t, res.stdout, "https://mirror.example.com/")
}

func TestListCmd_JSON(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--demo", "list", "--output", "json", "--page", "7")
	require.NoError(t, res.err)

	got := decodeList(t, res.stdout)
	assert.Equal(t, "populated", got.State)
	assert.Equal(t, 137, got.Meta.TotalItems)
	assert.Equal(t, 7, got.Meta.CurrentPage)
	assert.Equal(t, 7, got.Meta.TotalPages)
	assert.False(t, got.Meta.HasNext)
	assert.Len(t, got.Data, 17)
}

func TestListCmd_YAML(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--demo", "list", "-o", "yaml")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "state: populated")
	assert.Contains(t, res.stdout, "total_items: 137")
	assert.Contains(t, res.stdout, "name: epel-x86_64-000")
}

func TestListCmd_PageSizeRemembered(t *testing.T) {
	home := setupCLITest(t)

	res := runCLI(t, "", "--demo", "list", "--page-size", "50", "-o", "json")
	require.NoError(t, res.err)
	assert.Len(t, decodeList(t, res.stdout).Data, 50)

	_, err := os.Stat(filepath.Join(home, prefs.DefaultFileName))
	require.NoError(t, err, "page size preference should be persisted")

	res = runCLI(t, "", "--demo", "list", "-o", "json")
	require.NoError(t, res.err)
	got := decodeList(t, res.stdout)
	assert.Equal(t, 50, got.Meta.PageSize)
	assert.Len(t, got.Data, 50)
}

func TestListCmd_ConfiguredDefaultPageSize(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("listing:\n  default_page_size: 50\n"), 0o600))

	res := runCLI(t, "", "--demo", "list", "-o", "json")
	require.NoError(t, res.err)
	got := decodeList(t, res.stdout)
	assert.Equal(t, 50, got.Meta.PageSize)
	assert.Len(t, got.Data, 50)

	// A remembered page size still wins.
	res = runCLI(t, "", "--demo", "list", "--page-size", "10", "-o", "json")
	require.NoError(t, res.err)
	res = runCLI(t, "", "--demo", "list", "-o", "json")
	require.NoError(t, res.err)
	assert.Equal(t, 10, decodeList(t, res.stdout).Meta.PageSize)
}

func TestListCmd_CorruptPreferencesAreLogged(t *testing.T) {
	home := setupCLITest(t)
	logFile := filepath.Join(t.TempDir(), "contentlist.log")
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvLogFile, logFile)
	require.NoError(t, os.WriteFile(filepath.Join(home, prefs.DefaultFileName), []byte("{not json"), 0o600))

	res := runCLI(t, "", "--demo", "list", "-o", "json")
	require.NoError(t, res.err)
	assert.Equal(t, pagination.DefaultPageSize, decodeList(t, res.stdout).Meta.PageSize)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "preferences file is unreadable")
	assert.Contains(t, string(data), prefs.DefaultFileName)
}

func TestListCmd_Filters(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--demo", "list", "--status", "invalid", "--arch", "x86_64", "-o", "json")
	require.NoError(t, res.err)

	got := decodeList(t, res.stdout)
	require.NotEmpty(t, got.Data)
	for _, it := range got.Data {
		assert.Equal(t, "Invalid", it.Status)
		assert.Equal(t, "x86_64", it.DistributionArch)
	}
}

func TestListCmd_EmptyStates(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--demo", "list", "--search", "no-such-repository")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No repositories match the current filters.")

	api := newFakeAPI(t, nil)
	res = runCLI(t, "", "--api-url", api.baseURL(), "list", "--no-cache")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No content repositories yet.")
}

func TestListCmd_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown status", []string{"--status", "broken"}, cli.ErrUnknownStatus},
		{"unknown output", []string{"--output", "xml"}, cli.ErrInvalidOutput},
		{"page size not allowed", []string{"--page-size", "15"}, pagination.ErrInvalidPageSize},
		{"page zero", []string{"--page", "0"}, pagination.ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)

			res := runCLI(t, "", append([]string{"--demo", "list"}, tt.args...)...)
			require.Error(t, res.err)
			require.ErrorIs(t, res.err, tt.wantErr)
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
		})
	}
}

func TestListCmd_HTTPQueryAndCache(t *testing.T) {
	setupCLITest(t)
	api := newFakeAPI(t, remote.DemoItems(60))

	args := []string{
		"--api-url", api.baseURL(), "list",
		"--page", "2", "--page-size", "10",
		"--search", "epel", "--version", "9,8", "--status", "Valid",
		"-o", "json",
	}
	res := runCLI(t, "", args...)
	require.NoError(t, res.err)

	q, err := url.ParseQuery(api.lastQuery())
	require.NoError(t, err)
	assert.Equal(t, "10", q.Get("offset"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "epel", q.Get("search"))
	assert.Equal(t, "8,9", q.Get("version"))
	assert.Equal(t, "Valid", q.Get("status"))
	assert.Empty(t, q.Get("arch"))
	assert.EqualValues(t, 1, api.listHits.Load())

	// Same descriptor is served from the file cache.
	res = runCLI(t, "", args...)
	require.NoError(t, res.err)
	assert.EqualValues(t, 1, api.listHits.Load())

	// --no-cache always asks the API.
	res = runCLI(t, "", append(args, "--no-cache")...)
	require.NoError(t, res.err)
	assert.EqualValues(t, 2, api.listHits.Load())
}

func TestListCmd_HTTPFailure(t *testing.T) {
	setupCLITest(t)

	res := runCLI(t, "", "--api-url", "http://127.0.0.1:1/api", "list", "--no-cache")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitRemote, cli.ExitCode(res.err))
	assert.True(t, strings.Contains(res.err.Error(), "127.0.0.1:1"), res.err.Error())
}
