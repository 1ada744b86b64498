// Copyright 2026 Ghiscrape Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ghiscrape/ghiscrape/internal/apierror"
	gherrors "github.com/ghiscrape/ghiscrape/internal/errors"
	"github.com/ghiscrape/ghiscrape/pkg/version"
	gh "github.com/google/go-github/v69/github"
	"github.com/rs/zerolog"
)

// RESTFetcher walks the repos/{owner}/{repo}/issues list endpoint with
// state=all and a fixed page size of 100. Items are decoded as opaque maps
// so the full payload survives to disk untouched.
//
// Continuation rule: an empty page terminates; a short page is the last
// page; a page of exactly 100 items always triggers one further request,
// which may turn out empty.
type RESTFetcher struct {
	client   *gh.Client
	owner    string
	repo     string
	since    *time.Time
	pageSize int
	log      zerolog.Logger
}

// NewRESTFetcher creates a fetcher for the list-style issues API. The
// endpoint is the REST API root (e.g. "https://api.github.com"); a custom
// value points the fetcher at GitHub Enterprise or a test server. A nil
// since fetches the full history.
func NewRESTFetcher(token, endpoint, owner, repo string, since *time.Time, log zerolog.Logger) (*RESTFetcher, error) {
	client := gh.NewClient(nil).WithAuthToken(token)
	client.UserAgent = fmt.Sprintf("ghiscrape/%s", version.Version)

	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid API endpoint %q: %w", endpoint, err)
	}
	client.BaseURL = base

	return &RESTFetcher{
		client:   client,
		owner:    owner,
		repo:     repo,
		since:    since,
		pageSize: restPageSize,
		log:      log,
	}, nil
}

// FetchPage retrieves one page of the issue list. The token is the 1-based
// page index of the previous page plus one; empty means page 1.
func (f *RESTFetcher) FetchPage(ctx context.Context, token string) (*Page, error) {
	page := 1
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid page token %q: %w", token, err)
		}
		page = n
	}

	f.log.Info().Int("page", page).Msg("scraping page")

	q := url.Values{}
	q.Set("state", "all")
	q.Set("per_page", strconv.Itoa(f.pageSize))
	q.Set("page", strconv.Itoa(page))
	if f.since != nil {
		q.Set("since", f.since.UTC().Format(time.RFC3339))
	}

	u := fmt.Sprintf("repos/%s/%s/issues?%s", f.owner, f.repo, q.Encode())
	req, err := f.client.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var raw json.RawMessage
	if _, err := f.client.Do(ctx, req, &raw); err != nil {
		return nil, f.mapError(err)
	}

	items, err := decodeItemList(raw)
	if err != nil {
		return nil, err
	}

	result := &Page{Items: items}
	if len(items) == f.pageSize {
		result.HasMore = true
		result.NextToken = strconv.Itoa(page + 1)
	}

	if len(items) > 0 {
		f.log.Info().Int("count", len(items)).Msg("found items")
	}

	return result, nil
}

// decodeItemList parses a 2xx response body from the list endpoint. The
// endpoint's contract is a JSON array; null and non-array bodies are fatal.
// Null needs an explicit check because it unmarshals into a nil slice
// without error.
func decodeItemList(raw json.RawMessage) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("issue list endpoint did not return an array: %w", gherrors.ErrBadResponse)
	}
	if items == nil {
		return nil, fmt.Errorf("issue list endpoint returned null instead of an array: %w", gherrors.ErrBadResponse)
	}
	return items, nil
}

// mapError maps go-github errors to our domain errors with actionable messages.
func (f *RESTFetcher) mapError(err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", gherrors.ErrRateLimit)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", gherrors.ErrInvalidToken)
		case http.StatusNotFound:
			return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", f.owner, f.repo, gherrors.ErrRepoNotFound)
		}
	}

	switch apierror.Classify(err) {
	case apierror.KindRateLimit:
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", gherrors.ErrRateLimit)
	case apierror.KindAuth:
		return fmt.Errorf("GitHub API authentication failed: %w", gherrors.ErrInvalidToken)
	case apierror.KindNotFound:
		return fmt.Errorf("repository '%s/%s' not found: %w", f.owner, f.repo, gherrors.ErrRepoNotFound)
	case apierror.KindNetwork:
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", gherrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to fetch issues: %w", err)
}
