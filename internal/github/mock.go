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
	"fmt"
)

// MockFetcher is a scripted implementation of the Fetcher interface for
// testing. Each call to FetchPage returns the next entry from Pages.
type MockFetcher struct {
	// Pages returned in order, one per call.
	Pages []*Page

	// Err, if set, is returned by every call.
	Err error

	// Track calls for verification
	CallCount int
	Tokens    []string
}

// NewMockFetcher creates a mock that serves the given pages in order.
func NewMockFetcher(pages ...*Page) *MockFetcher {
	return &MockFetcher{Pages: pages}
}

// FetchPage implements the Fetcher interface.
func (m *MockFetcher) FetchPage(ctx context.Context, token string) (*Page, error) {
	m.CallCount++
	m.Tokens = append(m.Tokens, token)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if m.CallCount > len(m.Pages) {
		return nil, fmt.Errorf("unexpected fetch call %d, only %d pages scripted", m.CallCount, len(m.Pages))
	}

	return m.Pages[m.CallCount-1], nil
}
