// Copyright 2025 SirSeer, LLC
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
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sirseerhq/sirseer-audit/internal/auth"
	"github.com/sirseerhq/sirseer-audit/internal/batch"
	"github.com/sirseerhq/sirseer-audit/internal/config"
	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
	"github.com/sirseerhq/sirseer-audit/internal/github"
	"github.com/sirseerhq/sirseer-audit/internal/logging"
	"github.com/sirseerhq/sirseer-audit/internal/metadata"
	"github.com/sirseerhq/sirseer-audit/internal/output"
	"github.com/sirseerhq/sirseer-audit/internal/page"
	"github.com/sirseerhq/sirseer-audit/internal/retry"
	"github.com/sirseerhq/sirseer-audit/internal/state"
)

// exportFlags holds the persistent flags shared by all export subcommands.
type exportFlags struct {
	configPath string
	org        string
	outputFile string
	noCache    bool
}

// newExportCommand builds the export command tree.
func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export installation metadata as CSV",
		Long: `Export metadata visible to the GitHub App installation as CSV.

Authentication requires the App identity:
  - github.app_id / GITHUB_APP_ID
  - github.installation_id / GITHUB_APP_INSTALLATION_ID
  - github.private_key_path / GITHUB_APP_PRIVATE_KEY`,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file path (default: standard locations)")
	cmd.PersistentFlags().StringVar(&flags.org, "org", "", "Target organization")
	cmd.PersistentFlags().StringVar(&flags.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "Ignore the cached installation token")

	cmd.AddCommand(
		newReposCommand(flags),
		newTeamsCommand(flags),
		newWebhooksCommand(flags),
		newSecretsCommand(flags),
		newVariablesCommand(flags),
	)

	return cmd
}

// exportEnv bundles everything a running export needs.
type exportEnv struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   github.Client
	tracker  *metadata.Tracker
	writer   *output.Writer
	limiter  *rate.Limiter
	retryCfg *retry.Config
}

// setupExport wires the full stack for one export run: config, logger,
// signer, clock, token manager (primed from the on-disk cache), REST client
// with call counting, and the output writer.
func setupExport(command string, flags *exportFlags) (*exportEnv, error) {
	cfg, err := config.LoadConfigForOrg(flags.configPath, flags.org)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	pemKey, err := os.ReadFile(cfg.GitHub.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read app private key: %w", err)
	}
	signer, err := auth.NewSigner(cfg.GitHub.AppID, pemKey)
	if err != nil {
		return nil, err
	}

	clock := auth.NewServerClock(cfg.GitHub.APIEndpoint, nil)
	appClient := github.NewAppClient(cfg.GitHub.APIEndpoint, cfg.GitHub.InstallationID, nil)

	store := &credentialStore{
		path:           state.CredentialFilePath(cfg.Defaults.StateDir, cfg.GitHub.AppID, cfg.GitHub.InstallationID),
		appID:          cfg.GitHub.AppID,
		installationID: cfg.GitHub.InstallationID,
	}

	manager := auth.NewManager(signer, clock, appClient, store)
	if !flags.noCache {
		if cached, loadErr := state.LoadCredentialState(store.path); loadErr == nil {
			manager.Prime(auth.Credential{
				Token:       cached.Token,
				ExpiresAt:   cached.ExpiresAt,
				RefreshedAt: cached.RefreshedAt,
			})
			logger.Debug("primed credential from cache",
				zap.Time("expires_at", cached.ExpiresAt))
		}
	}

	tracker := metadata.New(command, flags.org)
	client := github.NewRESTClient(cfg.GitHub.APIEndpoint, manager,
		github.WithAPICallObserver(tracker.IncrementAPICall))

	var writer *output.Writer
	if flags.outputFile == "" {
		writer = output.NewWriter(os.Stdout)
	} else {
		writer, err = output.NewFileWriter(flags.outputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
	}

	return &exportEnv{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		tracker:  tracker,
		writer:   writer,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Defaults.RequestsPerSec), 1),
		retryCfg: retry.DefaultConfig(),
	}, nil
}

// finish closes the writer, logs the run summary, and writes the metadata
// record next to the output file when one was given.
func (e *exportEnv) finish(flags *exportFlags, entityCount, degradedCount int) error {
	if err := e.writer.Close(); err != nil {
		return err
	}

	meta := e.tracker.Finalize(entityCount, degradedCount)
	e.logger.Info("export complete",
		zap.String("run_id", meta.RunID),
		zap.Int("entities", meta.EntityCount),
		zap.Int("degraded", meta.DegradedCount),
		zap.Int("api_calls", meta.APICallCount),
		zap.Float64("seconds", meta.DurationSeconds))

	if flags.outputFile != "" {
		metaPath := flags.outputFile + ".meta.json"
		if err := meta.WriteFile(metaPath); err != nil {
			// The export itself succeeded; a metadata write failure is
			// worth a warning, not a failed run.
			e.logger.Warn("failed to write run metadata", zap.Error(err))
		}
	}
	return nil
}

// enrichOptions builds the batch engine options for this run, wiring the
// progress observer to the structured logger.
func (e *exportEnv) enrichOptions(total int) batch.Options {
	return batch.Options{
		GroupSize:  e.cfg.Defaults.EnrichGroup,
		GroupDelay: e.cfg.Defaults.EnrichDelay(),
		Limiter:    e.limiter,
		Progress: func(processed, totalEntities int) {
			e.logger.Debug("enrichment progress",
				zap.Int("processed", processed),
				zap.Int("total", totalEntities))
		},
	}
}

// reportDegraded logs the aggregate degradation warning once per batch, never
// per entity.
func (e *exportEnv) reportDegraded(kind string, degraded, total int) {
	if degraded == 0 {
		return
	}
	e.logger.Warn("some enrichments degraded to empty results",
		zap.String("kind", kind),
		zap.Int("degraded", degraded),
		zap.Int("total", total))
}

// credentialStore persists refreshed credentials through the state package.
// It implements auth.Store.
type credentialStore struct {
	path           string
	appID          string
	installationID int64
}

func (s *credentialStore) SaveCredential(cred auth.Credential) error {
	return state.SaveCredentialState(&state.CredentialState{
		AppID:          s.appID,
		InstallationID: s.installationID,
		Token:          cred.Token,
		ExpiresAt:      cred.ExpiresAt,
		RefreshedAt:    cred.RefreshedAt,
	}, s.path)
}

// drainPages composes the pagination engine with the retry decorator: each
// page fetch is retried on transient failures before Drain sees it.
func drainPages[T any](
	ctx context.Context,
	pageSize int,
	retryCfg *retry.Config,
	fetch func(ctx context.Context, cursor, size int) ([]T, error),
) ([]T, error) {
	wrapped := func(ctx context.Context, cursor, size int) ([]T, error) {
		return retry.Do(ctx, func(ctx context.Context) ([]T, error) {
			return fetch(ctx, cursor, size)
		}, retryCfg)
	}
	return page.Drain(ctx, wrapped, pageSize)
}

// runRepoDetailExport drives the common shape of the webhook, secret, and
// variable exports: list every installation repository, fan out one detail
// listing per repository through the batch engine, and emit one row per
// detail item. Repositories whose detail call fails degrade to zero rows.
func runRepoDetailExport[T any](
	ctx context.Context,
	env *exportEnv,
	flags *exportFlags,
	kind string,
	columns []string,
	list func(ctx context.Context, owner, repo string, cursor, size int) ([]T, error),
	row func(repo github.Repository, item T) []string,
) error {
	repos, err := drainPages(ctx, env.cfg.Defaults.PageSize, env.retryCfg, env.client.ListInstallationRepositories)
	if err != nil {
		return fmt.Errorf("failed to list installation repositories: %w", err)
	}

	fetch := func(ctx context.Context, repo github.Repository) ([]T, error) {
		return drainPages(ctx, env.cfg.Defaults.PageSize, env.retryCfg,
			func(ctx context.Context, cursor, size int) ([]T, error) {
				return list(ctx, repo.Owner(), repo.Name, cursor, size)
			})
	}
	fallback := func(repo github.Repository, err error) []T { return nil }

	results, degraded, err := batch.EnrichAll(ctx, repos, fetch, fallback, env.enrichOptions(len(repos)))
	if err != nil {
		return err
	}
	env.reportDegraded(kind, degraded, len(repos))

	if err := env.writer.WriteHeader(columns); err != nil {
		return err
	}
	for _, result := range results {
		for _, item := range result.Detail {
			if err := env.writer.Write(row(result.Entity, item)); err != nil {
				return err
			}
		}
	}

	return env.finish(flags, len(repos), degraded)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, auditerrors.ErrInvalidCredentials) ||
		errors.Is(err, auditerrors.ErrNotFound) ||
		errors.Is(err, auditerrors.ErrRateLimit) ||
		errors.Is(err, auditerrors.ErrCredentialExchange) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, auditerrors.ErrNetworkFailure) ||
		errors.Is(err, auditerrors.ErrClockSkew) {
		return 3 // Network errors
	}

	return 1 // General error
}

// commandContext derives the run context. Exports of large organizations can
// legitimately take a while; the ceiling exists so a hung connection cannot
// wedge the process forever.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Minute)
}
