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

package output

import "github.com/ghiscrape/ghiscrape/internal/github"

// ItemWriter defines the interface for persisting scraped items. This
// abstraction keeps the scrape loop independent of the storage layout and
// allows a failing writer to be injected in tests.
type ItemWriter interface {
	// Write persists a single item. The write must be durable before the
	// call returns; any error aborts the whole run.
	Write(item github.Item) error

	// Count returns the number of items written so far.
	Count() int
}
