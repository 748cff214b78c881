package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/logging"
)

// Defaults for HTTPSource.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10.0
	DefaultBurst     = 5
	OrgIDHeader      = "X-Org-ID"
	userAgent        = "contentlist"
	repositoriesPath = "repositories/"
	parametersPath   = "repository_parameters/"
)

// ErrNoBaseURL is returned by NewHTTPSource without a base URL.
var ErrNoBaseURL = errors.New("api base url is required")

// HTTPOptions configure an HTTPSource.
type HTTPOptions struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// OrgID is sent in the X-Org-ID header when set.
	OrgID   string
	Timeout time.Duration
	// RateLimit is the request rate in requests per second. Zero uses the
	// default; a negative value disables limiting.
	RateLimit float64
	Burst     int
}

// HTTPSource is a listing.Source backed by the content REST API.
type HTTPSource struct {
	HTTPClient *http.Client

	base    *url.URL
	token   string
	orgID   string
	limiter *rate.Limiter
}

type listResponse struct {
	Data []listing.Item `json:"data"`
	Meta struct {
		Count  int `json:"count"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	} `json:"meta"`
}

type parameterValue struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type parametersResponse struct {
	DistributionVersions []parameterValue `json:"distribution_versions"`
	DistributionArches   []parameterValue `json:"distribution_arches"`
}

// NewHTTPSource creates a source for the API rooted at opts.BaseURL.
func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Limit(opts.RateLimit)
	switch {
	case opts.RateLimit == 0:
		limit = rate.Limit(DefaultRateLimit)
	case opts.RateLimit < 0:
		limit = rate.Inf
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = DefaultBurst
	}

	return &HTTPSource{
		HTTPClient: &http.Client{Timeout: timeout},
		base:       base,
		token:      opts.Token,
		orgID:      opts.OrgID,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// BaseURL returns the API root.
func (s *HTTPSource) BaseURL() string {
	return s.base.String()
}

// List fetches one page of repositories.
func (s *HTTPSource) List(ctx context.Context, d listing.QueryDescriptor) (listing.ListResult, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(d.Offset()))
	q.Set("limit", strconv.Itoa(d.PageSize))
	if d.Filters.SearchQuery != "" {
		q.Set("search", d.Filters.SearchQuery)
	}
	if len(d.Filters.Versions) > 0 {
		q.Set("version", strings.Join(d.Filters.Versions, ","))
	}
	if len(d.Filters.Architectures) > 0 {
		q.Set("arch", strings.Join(d.Filters.Architectures, ","))
	}
	if len(d.Filters.Statuses) > 0 {
		q.Set("status", strings.Join(d.Filters.Statuses, ","))
	}

	var resp listResponse
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint(repositoriesPath, q), &resp); err != nil {
		return listing.ListResult{}, err
	}
	if resp.Data == nil {
		resp.Data = []listing.Item{}
	}
	return listing.ListResult{Items: resp.Data, TotalCount: resp.Meta.Count}, nil
}

// Delete removes the repository with the given UUID.
func (s *HTTPSource) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidUUID, id)
	}
	return s.doJSON(ctx, http.MethodDelete, s.endpoint(repositoriesPath+parsed.String()+"/", nil), nil)
}

// Parameters fetches the versions and architectures the API knows about.
// Versions come back in version order, architectures sorted by name.
func (s *HTTPSource) Parameters(ctx context.Context) (listing.Parameters, error) {
	var resp parametersResponse
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint(parametersPath, nil), &resp); err != nil {
		return listing.Parameters{}, err
	}

	params := listing.Parameters{}
	for _, v := range resp.DistributionVersions {
		if name := parameterName(v); name != "" {
			params.Versions = append(params.Versions, name)
		}
	}
	for _, a := range resp.DistributionArches {
		if name := parameterName(a); name != "" {
			params.Architectures = append(params.Architectures, name)
		}
	}
	SortVersions(params.Versions)
	slices.Sort(params.Architectures)
	return params, nil
}

func parameterName(v parameterValue) string {
	if v.Name != "" {
		return v.Name
	}
	return v.Label
}

// SortVersions orders versions that parse as semantic versions numerically,
// ahead of the rest in lexical order.
func SortVersions(versions []string) {
	slices.SortStableFunc(versions, func(a, b string) int {
		va, errA := semver.NewVersion(a)
		vb, errB := semver.NewVersion(b)
		switch {
		case errA == nil && errB == nil:
			if c := va.Compare(vb); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}

func (s *HTTPSource) endpoint(path string, q url.Values) string {
	u := s.base.JoinPath(path)
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (s *HTTPSource) doJSON(ctx context.Context, method, target string, out any) error {
	log := logging.FromContext(ctx)

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if s.orgID != "" {
		req.Header.Set(OrgIDHeader, s.orgID)
	}
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Request-ID", traceID)
	}

	start := time.Now()
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		log.Debug().Ctx(ctx).
			Str("component", "remote").
			Str("method", method).
			Str("url", target).
			Err(err).
			Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("component", "remote").
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", target, err)
	}
	return nil
}
