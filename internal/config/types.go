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

package config

// API variant names accepted by Defaults.API and the --api flag.
const (
	APIRest    = "rest"
	APIGraphQL = "graphql"
)

// Config represents the complete configuration for ghiscrape. It is
// populated once at startup from defaults, an optional YAML file, and
// environment overrides, then passed down explicitly; library code never
// reads the environment on its own.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`

	// Token is the bearer token used for both API variants. It is resolved
	// at startup from the --token flag or the GitHub.TokenEnv environment
	// variable, never from the config file.
	Token string `yaml:"-"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and the name of the environment variable holding the token. Custom
// endpoints allow pointing at GitHub Enterprise deployments or test servers.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every scrape
// unless overridden by command-line flags.
type DefaultsConfig struct {
	// API selects the fetch strategy: "rest" walks the paginated issue
	// list endpoint, "graphql" walks the cursor-based issues query.
	API string `yaml:"api"`
}

// DefaultConfig returns a Config with sensible defaults for public
// GitHub.com usage.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			API: APIRest,
		},
	}
}
