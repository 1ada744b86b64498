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

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ghiscrape/ghiscrape/internal/github"
	"github.com/rs/zerolog"
)

// Category subdirectory names under the output root.
const (
	CategoryIssues = "issues"
	CategoryPulls  = "pulls"
)

// FormatKey is the reserved field stamped into graph-query records, and
// FormatVersion its current value.
const (
	FormatKey     = "_format"
	FormatVersion = 2
)

// FileWriter writes one pretty-printed JSON file per item under
// <root>/<category>/<number>.json. Category subdirectories are created
// lazily on the first write to that category; the root itself must already
// exist.
type FileWriter struct {
	root          string
	fixedCategory string
	formatVersion int
	made          map[string]bool
	count         int
	log           zerolog.Logger
}

// Option configures a FileWriter.
type Option func(*FileWriter)

// WithFixedCategory routes every item into the given category instead of
// classifying by the pull request marker. The graph-query variant uses this
// because its issues connection never contains pull requests.
func WithFixedCategory(category string) Option {
	return func(w *FileWriter) {
		w.fixedCategory = category
	}
}

// WithFormatVersion stamps the given schema version into every record under
// FormatKey before serialization.
func WithFormatVersion(v int) Option {
	return func(w *FileWriter) {
		w.formatVersion = v
	}
}

// NewFileWriter creates a writer rooted at the given directory.
func NewFileWriter(root string, log zerolog.Logger, opts ...Option) *FileWriter {
	w := &FileWriter{
		root: root,
		made: make(map[string]bool),
		log:  log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write persists one item. The destination file is truncated and replaced
// unconditionally; a later item with the same number wins. Any filesystem
// error is returned as-is for the caller to treat as fatal.
func (w *FileWriter) Write(item github.Item) error {
	number, ok := item.Number()
	if !ok {
		return fmt.Errorf("item has no usable number field")
	}

	category := w.fixedCategory
	if category == "" {
		if item.IsPullRequest() {
			category = CategoryPulls
		} else {
			category = CategoryIssues
		}
	}

	dir := filepath.Join(w.root, category)
	if !w.made[dir] {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", category, err)
		}
		w.made[dir] = true
	}

	// Stamp a copy so the caller's map is left untouched.
	record := item
	if w.formatVersion != 0 {
		record = make(github.Item, len(item)+1)
		for k, v := range item {
			record[k] = v
		}
		record[FormatKey] = w.formatVersion
	}

	// encoding/json sorts map keys, so identical input yields identical bytes.
	data, err := json.MarshalIndent(map[string]any(record), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode item %d: %w", number, err)
	}

	path := filepath.Join(dir, strconv.Itoa(number)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.count++
	w.log.Info().
		Str("category", category).
		Int("number", number).
		Str("title", item.Title()).
		Msg("wrote item")

	return nil
}

// Count returns the number of items written.
func (w *FileWriter) Count() int {
	return w.count
}

var _ ItemWriter = (*FileWriter)(nil)
