package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/cli"
	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/pagination"
	"github.com/rshade/contentlist/internal/remote"
)

// setupCLITest isolates a test from the user's config, preferences and
// cache. It returns the temporary CONTENTLIST_HOME.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvOrgID, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv(cache.EnvCacheDir, "")
	t.Setenv(cache.EnvCacheEnabled, "")
	t.Setenv(cache.EnvTTLSeconds, "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with args and stdin.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// fakeAPI is a content-sources API over a MemorySource.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	src      *remote.MemorySource
	queries  []string
	listHits atomic.Int32
	deletes  atomic.Int32
}

func newFakeAPI(t *testing.T, items []listing.Item) *fakeAPI {
	t.Helper()
	api := &fakeAPI{src: remote.NewMemorySource(items...)}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/repositories/"
	switch {
	case r.Method == http.MethodGet && r.URL.Path == prefix:
		a.listHits.Add(1)
		a.mu.Lock()
		a.queries = append(a.queries, r.URL.RawQuery)
		a.mu.Unlock()
		a.list(w, r)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, prefix):
		a.deletes.Add(1)
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix), "/")
		if err := a.src.Delete(r.Context(), id); err != nil {
			http.Error(w, `{"errors":[{"detail":"not found"}]}`, http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && r.URL.Path == "/api/repository_parameters/":
		_, _ = io.WriteString(w, `{"distribution_versions":[{"name":"8","label":"el8"}],"distribution_arches":[{"name":"x86_64","label":"x86_64"}]}`)
	default:
		http.NotFound(w, r)
	}
}

func (a *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = pagination.DefaultPageSize
	}
	criteria := filter.Criteria{
		SearchQuery:   q.Get("search"),
		Versions:      splitQuery(q.Get("version")),
		Architectures: splitQuery(q.Get("arch")),
		Statuses:      splitQuery(q.Get("status")),
	}
	page := pagination.PageState{Page: offset/limit + 1, PageSize: limit}
	res, err := a.src.List(r.Context(), listing.BuildQueryDescriptor(criteria, page))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": res.Items,
		"meta": map[string]int{"count": res.TotalCount, "limit": limit, "offset": offset},
	})
}

func splitQuery(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func (a *fakeAPI) lastQuery() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queries) == 0 {
		return ""
	}
	return a.queries[len(a.queries)-1]
}

// baseURL is the API root to pass to --api-url.
func (a *fakeAPI) baseURL() string {
	return a.URL + "/api"
}
