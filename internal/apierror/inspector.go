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

// Package apierror classifies raw GitHub API errors by kind so the fetchers
// can wrap them with the matching sentinel error. Both the REST and GraphQL
// clients surface failures as opaque error strings, so classification is
// substring based.
package apierror

import "strings"

// Kind identifies the category of an API failure.
type Kind int

const (
	// KindUnknown is any failure that matches no other category.
	KindUnknown Kind = iota
	// KindAuth covers authentication and authorization failures.
	KindAuth
	// KindNotFound covers missing or inaccessible repositories.
	KindNotFound
	// KindRateLimit covers primary and secondary rate limits.
	KindRateLimit
	// KindNetwork covers connectivity failures below the HTTP layer.
	KindNetwork
)

// Classify inspects an error and returns its Kind. Rate limits are checked
// before auth because GitHub reports both through 403 responses.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	msg := strings.ToLower(err.Error())

	switch {
	case isRateLimit(msg):
		return KindRateLimit
	case isAuth(msg):
		return KindAuth
	case isNotFound(msg):
		return KindNotFound
	case isNetwork(msg):
		return KindNetwork
	default:
		return KindUnknown
	}
}

func isAuth(msg string) bool {
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "bad credentials") ||
		strings.Contains(msg, "authentication")
}

func isNotFound(msg string) bool {
	return strings.Contains(msg, "404") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "could not resolve to a repository")
}

func isRateLimit(msg string) bool {
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429")
}

func isNetwork(msg string) bool {
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "temporary failure") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "tls handshake") ||
		strings.Contains(msg, "network is unreachable")
}
