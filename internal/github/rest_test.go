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
	"net/http/httptest"
	"testing"
	"time"

	gherrors "github.com/ghiscrape/ghiscrape/internal/errors"
	"github.com/rs/zerolog"
)

// makeIssues generates n issue records with sequential numbers.
func makeIssues(n int) []map[string]any {
	issues := make([]map[string]any, n)
	for i := range issues {
		issues[i] = map[string]any{
			"number": i + 1,
			"title":  fmt.Sprintf("Issue %d", i+1),
			"state":  "open",
		}
	}
	return issues
}

func newTestRESTFetcher(t *testing.T, handler http.Handler, since *time.Time) *RESTFetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher, err := NewRESTFetcher("test-token", server.URL, "octo", "demo", since, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRESTFetcher failed: %v", err)
	}
	return fetcher
}

func TestRESTFetcher_PaginationBoundary(t *testing.T) {
	tests := []struct {
		name          string
		itemCount     int
		wantHasMore   bool
		wantNextToken string
	}{
		{
			name:          "full page triggers another request",
			itemCount:     100,
			wantHasMore:   true,
			wantNextToken: "2",
		},
		{
			name:        "short page is the last page",
			itemCount:   99,
			wantHasMore: false,
		},
		{
			name:        "single item",
			itemCount:   1,
			wantHasMore: false,
		},
		{
			name:        "empty page",
			itemCount:   0,
			wantHasMore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(makeIssues(tt.itemCount)); err != nil {
					t.Errorf("failed to encode response: %v", err)
				}
			}), nil)

			page, err := fetcher.FetchPage(context.Background(), "")
			if err != nil {
				t.Fatalf("FetchPage failed: %v", err)
			}

			if len(page.Items) != tt.itemCount {
				t.Errorf("got %d items, want %d", len(page.Items), tt.itemCount)
			}
			if page.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", page.HasMore, tt.wantHasMore)
			}
			if page.NextToken != tt.wantNextToken {
				t.Errorf("NextToken = %q, want %q", page.NextToken, tt.wantNextToken)
			}
		})
	}
}

func TestRESTFetcher_RequestParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotAuth string

	fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, "[]")
	}), nil)

	if _, err := fetcher.FetchPage(context.Background(), ""); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if gotPath != "/repos/octo/demo/issues" {
		t.Errorf("path = %q, want /repos/octo/demo/issues", gotPath)
	}
	if gotQuery["state"] != "all" {
		t.Errorf("state = %q, want all", gotQuery["state"])
	}
	if gotQuery["per_page"] != "100" {
		t.Errorf("per_page = %q, want 100", gotQuery["per_page"])
	}
	if gotQuery["page"] != "1" {
		t.Errorf("page = %q, want 1", gotQuery["page"])
	}
	if _, ok := gotQuery["since"]; ok {
		t.Error("since param should be absent when no since is configured")
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
}

func TestRESTFetcher_SinceParam(t *testing.T) {
	since := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	var gotSince string

	fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSince = r.URL.Query().Get("since")
		fmt.Fprint(w, "[]")
	}), &since)

	if _, err := fetcher.FetchPage(context.Background(), ""); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if gotSince != "2024-06-01T10:30:00Z" {
		t.Errorf("since = %q, want 2024-06-01T10:30:00Z", gotSince)
	}
}

func TestRESTFetcher_TokenThreading(t *testing.T) {
	var gotPage string

	fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		if err := json.NewEncoder(w).Encode(makeIssues(100)); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}), nil)

	page, err := fetcher.FetchPage(context.Background(), "3")
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if gotPage != "3" {
		t.Errorf("requested page = %q, want 3", gotPage)
	}
	if page.NextToken != "4" {
		t.Errorf("NextToken = %q, want 4", page.NextToken)
	}
}

func TestRESTFetcher_BadToken(t *testing.T) {
	fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}), nil)

	if _, err := fetcher.FetchPage(context.Background(), "not-a-number"); err == nil {
		t.Error("expected error for non-numeric page token")
	}
}

func TestRESTFetcher_NonArrayResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "object",
			body: `{"message": "this is not an array"}`,
		},
		{
			name: "null",
			body: `null`,
		},
		{
			name: "string",
			body: `"unexpected"`,
		},
		{
			name: "number",
			body: `42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}), nil)

			_, err := fetcher.FetchPage(context.Background(), "")
			if err == nil {
				t.Fatal("expected error for non-array response")
			}
			if !errors.Is(err, gherrors.ErrBadResponse) {
				t.Errorf("error = %v, want ErrBadResponse", err)
			}
		})
	}
}

func TestRESTFetcher_OpaquePayload(t *testing.T) {
	fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 7, "title": "Fix bug", "pull_request": {"url": "https://example.com/pr/7"}, "custom_field": {"nested": true}}]`)
	}), nil)

	page, err := fetcher.FetchPage(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(page.Items))
	}

	item := page.Items[0]
	if num, ok := item.Number(); !ok || num != 7 {
		t.Errorf("Number() = %d, %v; want 7, true", num, ok)
	}
	if !item.IsPullRequest() {
		t.Error("item should carry the pull_request marker")
	}
	// Fields the scraper does not interpret must survive untouched.
	custom, ok := item["custom_field"].(map[string]any)
	if !ok || custom["nested"] != true {
		t.Errorf("custom_field not preserved: %v", item["custom_field"])
	}
}

func TestRESTFetcher_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		headers      map[string]string
		body         string
		wantSentinel error
	}{
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			body:         `{"message": "Bad credentials"}`,
			wantSentinel: gherrors.ErrInvalidToken,
		},
		{
			name:         "not found",
			status:       http.StatusNotFound,
			body:         `{"message": "Not Found"}`,
			wantSentinel: gherrors.ErrRepoNotFound,
		},
		{
			name:   "rate limited",
			status: http.StatusForbidden,
			headers: map[string]string{
				"X-RateLimit-Limit":     "60",
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1750000000",
			},
			body:         `{"message": "API rate limit exceeded"}`,
			wantSentinel: gherrors.ErrRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newTestRESTFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}), nil)

			_, err := fetcher.FetchPage(context.Background(), "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantSentinel) {
				t.Errorf("error = %v, want %v", err, tt.wantSentinel)
			}
		})
	}
}
