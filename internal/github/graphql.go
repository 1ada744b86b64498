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
	"fmt"
	"net/http"
	"time"

	"github.com/ghiscrape/ghiscrape/internal/apierror"
	gherrors "github.com/ghiscrape/ghiscrape/internal/errors"
	"github.com/rs/zerolog"
	"github.com/shurcooL/graphql"
)

// DateTime maps to GitHub's DateTime scalar. The type name is significant:
// the graphql library derives the variable's GraphQL type from it.
type DateTime struct {
	time.Time
}

// actor is the author of an issue or comment.
type actor struct {
	Login graphql.String `json:"login"`
	URL   graphql.String `json:"url"`
}

// issueNode mirrors one node of the issues connection. The json tags
// reproduce the GraphQL field names so the persisted payload matches the
// raw query response.
type issueNode struct {
	Number    graphql.Int    `json:"number"`
	Title     graphql.String `json:"title"`
	URL       graphql.String `json:"url"`
	Body      graphql.String `json:"body"`
	State     graphql.String `json:"state"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Author    *actor         `json:"author"`
	Labels    struct {
		Nodes []struct {
			Name graphql.String `json:"name"`
		} `json:"nodes"`
	} `json:"labels" graphql:"labels(first: 20)"`
	Comments struct {
		Nodes []struct {
			Author       *actor         `json:"author"`
			CreatedAt    time.Time      `json:"createdAt"`
			LastEditedAt *time.Time     `json:"lastEditedAt"`
			Body         graphql.String `json:"body"`
		} `json:"nodes"`
	} `json:"comments" graphql:"comments(first: 100)"`
}

// GraphQLFetcher walks the cursor-based issues connection of GitHub's
// GraphQL API, fetching 20 issues per call together with their author,
// labels, and comments. Pull requests are not part of this connection, so
// every item belongs to the "issues" category.
type GraphQLFetcher struct {
	client    *graphql.Client
	owner     string
	repo      string
	since     *time.Time
	batchSize int
	log       zerolog.Logger
}

// NewGraphQLFetcher creates a fetcher for the graph-query API. The endpoint
// is the full GraphQL URL (e.g. "https://api.github.com/graphql"). A nil
// since fetches the full history.
func NewGraphQLFetcher(token, endpoint, owner, repo string, since *time.Time, log zerolog.Logger) *GraphQLFetcher {
	// Optimized transport with connection pooling
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &GraphQLFetcher{
		client:    graphql.NewClient(endpoint, httpClient),
		owner:     owner,
		repo:      repo,
		since:     since,
		batchSize: graphqlBatchSize,
		log:       log,
	}
}

// FetchPage retrieves one batch of issues. The token is the endCursor from
// the previous page; empty means start from the beginning. Continuation is
// driven by the server's hasNextPage flag, never by batch fill.
func (f *GraphQLFetcher) FetchPage(ctx context.Context, token string) (*Page, error) {
	f.log.Info().Str("cursor", token).Msg("scraping page")

	var query struct {
		Repository struct {
			Issues struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []issueNode
			} `graphql:"issues(first: $first, after: $after, filterBy: {since: $since})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	// Nullable variables are always passed as pointers so the declared
	// GraphQL types stay nullable; nil marshals to null.
	var after *graphql.String
	if token != "" {
		cursor := graphql.String(token)
		after = &cursor
	}
	var since *DateTime
	if f.since != nil {
		since = &DateTime{*f.since}
	}

	variables := map[string]interface{}{
		"owner": graphql.String(f.owner),
		"name":  graphql.String(f.repo),
		"first": graphql.Int(int32(f.batchSize)), // #nosec G115 - batch size is a small constant
		"after": after,
		"since": since,
	}

	if err := f.client.Query(ctx, &query, variables); err != nil {
		return nil, f.mapError(err)
	}

	page := &Page{
		Items:   make([]Item, 0, len(query.Repository.Issues.Nodes)),
		HasMore: bool(query.Repository.Issues.PageInfo.HasNextPage),
	}
	if page.HasMore {
		page.NextToken = string(query.Repository.Issues.PageInfo.EndCursor)
	}

	for i := range query.Repository.Issues.Nodes {
		item, err := nodeToItem(&query.Repository.Issues.Nodes[i])
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, item)
	}

	if len(page.Items) > 0 {
		f.log.Info().Int("count", len(page.Items)).Msg("found items")
	}

	return page, nil
}

// nodeToItem converts a typed issue node into the opaque Item map used by
// the writer. Round-tripping through JSON keeps the persisted shape in sync
// with the node's json tags.
func nodeToItem(node *issueNode) (Item, error) {
	data, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("failed to encode issue node: %w", err)
	}
	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode issue node: %w", err)
	}
	return item, nil
}

// mapError maps GraphQL errors to our domain errors with actionable messages.
func (f *GraphQLFetcher) mapError(err error) error {
	switch apierror.Classify(err) {
	case apierror.KindRateLimit:
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", gherrors.ErrRateLimit)
	case apierror.KindAuth:
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", gherrors.ErrInvalidToken)
	case apierror.KindNotFound:
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", f.owner, f.repo, gherrors.ErrRepoNotFound)
	case apierror.KindNetwork:
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", gherrors.ErrNetworkFailure)
	}
	return fmt.Errorf("failed to fetch issues: %w", err)
}
