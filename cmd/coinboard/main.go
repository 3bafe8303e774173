package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/glabrego/coinboard/internal/app"
	"github.com/glabrego/coinboard/internal/config"
	"github.com/glabrego/coinboard/internal/fetch"
	"github.com/glabrego/coinboard/internal/logging"
	"github.com/glabrego/coinboard/internal/market"
	"github.com/glabrego/coinboard/internal/prefs"
	"github.com/glabrego/coinboard/internal/remote"
	"github.com/glabrego/coinboard/internal/storage"
	"github.com/glabrego/coinboard/internal/tui"
	"github.com/glabrego/coinboard/internal/tui/actions"
)

const (
	startupTimeout = 15 * time.Second
	apiKeyHeader   = "x-cg-demo-api-key"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// deps is everything a command needs, opened once per invocation.
type deps struct {
	cfg    config.Config
	logger *logrus.Logger
	closer io.Closer
	repo   *storage.Repository
	redis  *redis.Client
	docs   *remote.Documents
	store  *prefs.Store
}

func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.LoadFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logging init: %w", err)
	}
	d := &deps{cfg: cfg, logger: logger, closer: closer}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("storage init: %w", err)
	}
	d.repo = repo
	if err := repo.Init(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("storage schema: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("storage write check failed (%v); verify COINBOARD_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	var doc prefs.RemoteDocument
	if cfg.Redis.Enabled() {
		client, err := remote.Connect(ctx, remote.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Remote sync is optional; the app works from the local cache.
			logger.WithError(err).Warn("remote sync disabled")
		} else {
			d.redis = client
			d.docs = remote.NewDocuments(client, logging.WithComponent(logger, "remote"))
			doc = d.docs
		}
	}

	d.store = prefs.NewStore(repo, doc, logging.WithComponent(logger, "prefs"))
	if err := d.store.LoadLocal(ctx); err != nil {
		logger.WithError(err).Warn("could not load hidden coins, starting empty")
	}
	return d, nil
}

// resolveIdentity attaches the anonymous user to the store so CLI commands
// reach the same remote document as the TUI.
func (d *deps) resolveIdentity(ctx context.Context) {
	if d.docs == nil {
		return
	}
	userID, err := remote.AnonymousIdentity(ctx, d.repo)
	if err != nil {
		d.logger.WithError(err).Warn("remote identity unavailable")
		return
	}
	d.store.SetIdentity(userID)
}

func (d *deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.repo != nil {
		_ = d.repo.Close()
	}
	if d.closer != nil {
		_ = d.closer.Close()
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "coinboard",
		Short:        "Browse crypto markets in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newExcludedCmd(),
	)
	return root
}

func runTUI(ctx context.Context) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	d, err := setup(startCtx)
	if err != nil {
		return err
	}
	defer d.Close()
	cfg := d.cfg

	opts := []fetch.Option{
		fetch.WithMaxDelay(cfg.Fetch.MaxDelay),
		fetch.WithLogger(logging.WithComponent(d.logger, "fetch")),
	}
	if cfg.APIKey != "" {
		opts = append(opts, fetch.WithHeader(apiKeyHeader, cfg.APIKey))
	}
	fetcher := fetch.New(&http.Client{Timeout: cfg.HTTPTimeout}, opts...)
	client := market.NewClient(cfg.APIBaseURL, fetcher, cfg.Fetch.BaseDelay)
	service := app.NewService(client, d.repo, cfg.Fetch.Attempts)

	model := tui.NewModel(service, d.store)
	model.SetLogger(logging.WithComponent(d.logger, "tui"))
	model.SetQuoteAsset(cfg.QuoteAsset)
	model.SetExportDir(cfg.ExportDir)
	model.SetPreferencesSaver(service)
	if d.docs != nil {
		model.SetRemote(d.repo, d.docs)
	}

	prefCtx, prefCancel := context.WithTimeout(ctx, 5*time.Second)
	uiPrefs, err := service.LoadUIPreferences(prefCtx)
	prefCancel()
	if err != nil {
		d.logger.WithError(err).Warn("could not load UI preferences, using defaults")
	} else {
		model.ApplyPreferences(uiPrefs)
	}

	d.logger.WithFields(logrus.Fields{
		"api":    cfg.APIBaseURL,
		"remote": d.docs != nil,
		"hidden": d.store.Len(),
	}).Info("starting coinboard")

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write hidden coins to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			now := time.Now()
			if len(args) == 0 {
				path, count, err := actions.ExportToDir(d.store, d.cfg.ExportDir, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d hidden coin(s) to %s\n", count, path)
				return nil
			}

			count, err := actions.ExportToFile(d.store, args[0], now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d hidden coin(s) to %s\n", count, args[0])
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add hidden coins from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := setup(ctx)
			if err != nil {
				return err
			}
			defer d.Close()
			d.resolveIdentity(ctx)

			added, err := actions.ImportFile(ctx, d.store, args[0])
			if err != nil {
				return err
			}
			if err := d.store.PushRemote(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new hidden coin(s), %d total\n", added, d.store.Len())
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Show all hidden coins again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset clears every hidden coin; pass --yes to confirm")
			}
			ctx := cmd.Context()
			d, err := setup(ctx)
			if err != nil {
				return err
			}
			defer d.Close()
			d.resolveIdentity(ctx)

			if err := d.store.Reset(ctx); err != nil {
				return err
			}
			if err := d.store.ClearRemote(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All coins are visible again")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newExcludedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "excluded",
		Short: "List hidden coin ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()
			for _, id := range d.store.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
