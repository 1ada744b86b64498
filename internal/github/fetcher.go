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

import "context"

// Fetcher is the common contract for both pagination styles. This interface
// allows the scrape loop to be written once and makes mocking easy in tests.
type Fetcher interface {
	// FetchPage retrieves one page of items. The token is the continuation
	// token from the previous page's Page.NextToken; the empty string
	// requests the first page. Implementations keep no state between calls
	// beyond what the token carries.
	FetchPage(ctx context.Context, token string) (*Page, error)
}
