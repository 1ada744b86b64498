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

// Package output persists scraped items as JSON documents on local disk,
// one file per item number, partitioned into "issues" and "pulls"
// subdirectories under the output root.
//
// Files are written with sorted keys and 2-space indentation, so two runs
// over identical remote data produce byte-identical output. Writes are
// last-write-wins: an existing file for the same number is truncated and
// replaced, with no merging or deduplication.
//
// Example usage:
//
//	w := output.NewFileWriter("./out", logger)
//	for _, item := range page.Items {
//	    if err := w.Write(item); err != nil {
//	        // any filesystem error aborts the run
//	    }
//	}
//	fmt.Printf("wrote %d items\n", w.Count())
package output
