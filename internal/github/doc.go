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

// Package github provides clients for fetching issue and pull request
// metadata from GitHub, one page at a time, behind a single Fetcher
// contract.
//
// Two implementations exist:
//   - RESTFetcher walks the paginated repos/{owner}/{repo}/issues list
//     endpoint (page number + fixed page size of 100).
//   - GraphQLFetcher walks the cursor-based issues connection of the
//     GraphQL API, pulling richer nested data (author, labels, comments)
//     in a single query with a batch size of 20.
//
// Both return pages of opaque Item records plus a continuation token, so
// the scrape loop is written once and parameterized over the Fetcher.
//
// Basic usage:
//
//	fetcher, err := github.NewRESTFetcher(token, "https://api.github.com", "golang", "go", nil, logger)
//	if err != nil {
//	    // handle error
//	}
//	page, err := fetcher.FetchPage(ctx, "")
//	for _, item := range page.Items {
//	    // process item
//	}
package github
