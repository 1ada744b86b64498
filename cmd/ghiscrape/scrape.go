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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ghiscrape/ghiscrape/internal/config"
	gherrors "github.com/ghiscrape/ghiscrape/internal/errors"
	"github.com/ghiscrape/ghiscrape/internal/github"
	"github.com/ghiscrape/ghiscrape/internal/output"
	"github.com/ghiscrape/ghiscrape/internal/scrape"
	"github.com/ghiscrape/ghiscrape/internal/timespec"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// scrapeOptions carries the scrape command's flag values.
type scrapeOptions struct {
	since      string
	api        string
	token      string
	configPath string
}

// newScrapeCommand builds the scrape subcommand.
func newScrapeCommand() *cobra.Command {
	var opts scrapeOptions

	cmd := &cobra.Command{
		Use:   "scrape <owner>/<repo> <out-dir>",
		Short: "Scrape issues and pull requests into JSON files",
		Long: `Scrape issue and pull request metadata from a GitHub repository into
<out-dir>, one JSON file per item at <out-dir>/<issues|pulls>/<number>.json.
The output directory must already exist.

The repository must be specified in the format: <owner>/<repo>
For example: golang/go, kubernetes/kubernetes

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd.Context(), newLogger(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.since, "since", "", "Only fetch items updated since DATE: an ISO8601 timestamp or a number followed by 'w', 'd', 'h', 'M' (weeks, days, hours, minutes)")
	cmd.Flags().StringVar(&opts.api, "api", "", "API variant to use: rest or graphql (default from config)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file")

	return cmd
}

// newLogger constructs the process logger. It is created once here and
// passed down explicitly; no package keeps global logger state.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

// runScrape executes the scrape command.
func runScrape(ctx context.Context, logger zerolog.Logger, repoArg, outDir string, opts scrapeOptions) error {
	owner, repo, err := parseRepository(repoArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.api != "" {
		cfg.Defaults.API = opts.api
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Resolve the token before any client is constructed.
	cfg.Token = opts.token
	if cfg.Token == "" {
		cfg.Token = os.Getenv(cfg.GitHub.TokenEnv)
	}
	if cfg.Token == "" {
		return fmt.Errorf("GitHub token not found. Set %s or use --token flag: %w", cfg.GitHub.TokenEnv, gherrors.ErrInvalidToken)
	}

	info, err := os.Stat(outDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", outDir)
	}

	var since *time.Time
	if opts.since != "" {
		t, err := timespec.Parse(opts.since)
		if err != nil {
			return err
		}
		since = &t
	}

	req := scrape.Request{
		Owner:  owner,
		Repo:   repo,
		OutDir: outDir,
		Since:  since,
	}

	var fetcher github.Fetcher
	var writerOpts []output.Option
	switch cfg.Defaults.API {
	case config.APIRest:
		rf, err := github.NewRESTFetcher(cfg.Token, cfg.GitHub.APIEndpoint, req.Owner, req.Repo, req.Since, logger)
		if err != nil {
			return err
		}
		fetcher = rf
	case config.APIGraphQL:
		fetcher = github.NewGraphQLFetcher(cfg.Token, cfg.GitHub.GraphQLEndpoint, req.Owner, req.Repo, req.Since, logger)
		// The issues connection carries no pull requests; records get the
		// schema version stamp.
		writerOpts = append(writerOpts,
			output.WithFixedCategory(output.CategoryIssues),
			output.WithFormatVersion(output.FormatVersion),
		)
	}

	writer := output.NewFileWriter(req.OutDir, logger, writerOpts...)

	start := logger.Info().Str("project", repoArg)
	if req.Since != nil {
		start = start.Time("since", *req.Since)
	}
	start.Msg("starting scrape")

	return scrape.New(fetcher, writer, logger).Run(ctx)
}

// parseRepository parses an owner/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, gherrors.ErrInvalidToken) ||
		errors.Is(err, gherrors.ErrRepoNotFound) ||
		errors.Is(err, gherrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, gherrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
