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

import "encoding/json"

// Item is one scraped issue or pull request record. The payload is opaque:
// the scraper persists whatever the API returned and only interprets the
// number, the pull request marker, and the title (for logging).
type Item map[string]any

// Number returns the item's unique number within the project. The second
// return value is false when the field is missing or not numeric.
func (it Item) Number() (int, bool) {
	switch v := it["number"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Title returns the item's title, or the empty string if absent.
func (it Item) Title() string {
	s, _ := it["title"].(string)
	return s
}

// IsPullRequest reports whether the record carries the REST API's pull
// request marker field.
func (it Item) IsPullRequest() bool {
	_, ok := it["pull_request"]
	return ok
}

// Page is one page of results from a Fetcher. HasMore signals whether a
// further request should be made; NextToken is only meaningful when HasMore
// is true. Items may be empty on a terminal page.
type Page struct {
	Items     []Item
	NextToken string
	HasMore   bool
}

// Fixed request sizes. The REST list endpoint uses full pages of 100; the
// GraphQL query fetches 20 parent items per call with nested sub-selections
// capped at 20 labels and 100 comments.
const (
	restPageSize     = 100
	graphqlBatchSize = 20
)
