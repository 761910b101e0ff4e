package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/HomeQuote/internal/config"
	"github.com/yildizm/HomeQuote/internal/emoji"
	"github.com/yildizm/HomeQuote/internal/form"
	"github.com/yildizm/HomeQuote/internal/logger"
	"github.com/yildizm/HomeQuote/internal/monitor"
	"github.com/yildizm/HomeQuote/internal/ui"
	"gopkg.in/yaml.v3"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [listing.yaml]",
		Short: "Re-estimate a listing file whenever it changes",
		Long: `Watch a YAML listing file and print a fresh estimate every time it is saved.

The file holds the four form inputs:

  location: Whitefield
  bhk: 2
  bath: 2
  sqft: 1200

Saving the file with the same contents does not send another request.
Press Ctrl+C to stop watching.

Examples:
  homequote watch listing.yaml
  homequote watch -o json listing.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	path, err := validateListingPath(args[0])
	if err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}
	cmd.SilenceUsage = true

	log := newLogger(cfg)
	log.SetOutput(cmd.ErrOrStderr())

	client, err := newEstimatorClient(cfg, log)
	if err != nil {
		return err
	}

	watcher, err := createWatcher(path)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := monitor.NewCollector()
	defer func() {
		fmt.Fprint(cmd.ErrOrStderr(), collector.Snapshot().Summary())
	}()

	w := newListingWatcher(path, monitor.Track(client, collector), cfg, cmd.OutOrStdout(), log.WithComponent("watch"))

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s (Ctrl+C to stop)\n", emoji.GetEmoji("watch"), path)
	if err := w.evaluate(ctx); err != nil {
		w.log.Warn("failed to evaluate listing", logger.Error(err))
	}

	return w.run(ctx, watcher)
}

// listingWatcher estimates a listing file each time its contents change
type listingWatcher struct {
	path   string
	client ui.Estimator
	cfg    *config.Config
	out    io.Writer
	log    *logger.Logger

	// last successfully quoted inputs
	last *form.State
}

func newListingWatcher(path string, client ui.Estimator, cfg *config.Config, out io.Writer, log *logger.Logger) *listingWatcher {
	return &listingWatcher{
		path:   path,
		client: client,
		cfg:    cfg,
		out:    out,
		log:    log,
	}
}

// run processes watcher events until ctx is cancelled
func (w *listingWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			if err := w.evaluate(ctx); err != nil {
				w.log.Warn("failed to evaluate listing", logger.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error", logger.Error(err))
		}
	}
}

// relevant filters directory events down to writes of the listing file.
// Editors often replace the file, which shows up as a create.
func (w *listingWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// evaluate reads the listing and prints an estimate or the form's error message
func (w *listingWatcher) evaluate(ctx context.Context) error {
	state, err := loadListing(w.path)
	if err != nil {
		return err
	}

	if w.last != nil && *w.last == state {
		w.log.Debug("listing unchanged", logger.F("path", w.path))
		return nil
	}

	quote, err := requestQuote(ctx, w.client, state, w.cfg, w.log)
	if err != nil {
		fmt.Fprintf(w.out, "%s %s\n", emoji.GetEmoji("error"), err)
		return nil
	}

	w.last = &state
	return writeQuote(w.out, w.cfg, quote)
}

// loadListing parses a YAML listing file into raw form inputs
func loadListing(path string) (form.State, error) {
	// #nosec G304 - path is validated by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return form.State{}, fmt.Errorf("failed to read listing: %w", err)
	}

	var state form.State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return form.State{}, fmt.Errorf("failed to parse listing: %w", err)
	}

	state.Location = strings.TrimSpace(state.Location)
	state.BHK = strings.TrimSpace(state.BHK)
	state.Bath = strings.TrimSpace(state.Bath)
	state.Sqft = strings.TrimSpace(state.Sqft)

	return state, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher watches the directory holding path so replaced files keep being seen
func createWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// validateListingPath checks the listing is a readable regular file and
// returns its absolute, cleaned path
func validateListingPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty file path")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", path)
		}
		return "", fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("cannot watch directory, must be a file")
	}

	return absPath, nil
}
