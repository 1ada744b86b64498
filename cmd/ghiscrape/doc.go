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

// Package main implements the ghiscrape command-line interface.
// This tool fetches issue and pull request metadata from a GitHub
// repository and writes one pretty-printed JSON file per item into
// <out-dir>/<issues|pulls>/<number>.json.
//
// The CLI supports:
//   - Two fetch strategies via --api: the paginated REST issue list or
//     the cursor-based GraphQL issues query
//   - Incremental scraping with --since (absolute date or relative
//     offsets like 3d, 2w, 12h)
//   - GitHub token authentication via flag or environment variable
//   - Custom endpoints for GitHub Enterprise via config file or
//     environment variables
//
// Usage:
//
//	ghiscrape scrape <owner>/<repo> <out-dir> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	ghiscrape scrape golang/go ./out --since 2w
//
// Exit codes:
//   - 0: Success (including no items found)
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
