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

// Package scrape runs the scrape loop: fetch a page, write every item,
// follow the continuation token until the fetcher reports no more data.
// The loop is strictly sequential with one request in flight at a time and
// every item written before the next request is issued. Any error from the
// fetcher or the writer is fatal; items already on disk stay there.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/ghiscrape/ghiscrape/internal/github"
	"github.com/ghiscrape/ghiscrape/internal/output"
	"github.com/rs/zerolog"
)

// Request describes one scrape run. It is assembled and validated at
// startup and immutable afterwards.
type Request struct {
	// Owner and Repo identify the project, both non-empty.
	Owner string
	Repo  string

	// OutDir is the output root. It must exist before the run starts.
	OutDir string

	// Since restricts the fetch to items updated after this instant. The
	// filter is applied server-side; nil fetches the full history.
	Since *time.Time
}

// Scraper drives one Fetcher and forwards every returned item to the
// writer. The continuation token is the only state it carries.
type Scraper struct {
	fetcher github.Fetcher
	writer  output.ItemWriter
	log     zerolog.Logger
}

// New creates a Scraper over the given fetcher and writer.
func New(fetcher github.Fetcher, writer output.ItemWriter, log zerolog.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		writer:  writer,
		log:     log,
	}
}

// Run executes the loop until the fetcher reports no further page or an
// error occurs. It returns nil when the remote data is exhausted, including
// the case of zero items. Cancellation is observed between pages; a run
// interrupted mid-flight leaves already-written files intact.
func (s *Scraper) Run(ctx context.Context) error {
	token := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := s.fetcher.FetchPage(ctx, token)
		if err != nil {
			return err
		}

		for _, item := range page.Items {
			if err := s.writer.Write(item); err != nil {
				return fmt.Errorf("failed to write item: %w", err)
			}
		}

		if !page.HasMore {
			s.log.Info().Int("items", s.writer.Count()).Msg("done")
			return nil
		}
		token = page.NextToken
	}
}
