package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/coinboard/internal/fetch"
	"github.com/glabrego/coinboard/internal/market"
	"github.com/glabrego/coinboard/internal/prefs"
	"github.com/glabrego/coinboard/internal/remote"
	"github.com/glabrego/coinboard/internal/storage"
	"github.com/glabrego/coinboard/internal/tui/paging"
	"github.com/glabrego/coinboard/internal/tui/preview"
)

const (
	// PageTimeout bounds a page fetch including every retry wait.
	PageTimeout    = 90 * time.Second
	PreviewTimeout = 15 * time.Second
	RemoteTimeout  = 10 * time.Second
	StatusTimeout  = 4 * time.Second
)

type Service interface {
	LoadPage(ctx context.Context, page int) ([]market.Item, error)
	PreviewPage(ctx context.Context, page int) ([]market.Item, error)
}

type PreferenceSaver interface {
	SaveUIPreferences(ctx context.Context, prefs storage.UIPreferences) error
}

// RemoteSyncer is the part of the exclusion store that talks to the remote
// document.
type RemoteSyncer interface {
	PushRemote(ctx context.Context) error
	ClearRemote(ctx context.Context) error
}

type RemoteWatcher interface {
	Watch(ctx context.Context, userID string) (<-chan []string, error)
}

type SnapshotStore interface {
	ExportSnapshot(now time.Time) prefs.Snapshot
	ImportSnapshot(ctx context.Context, snap prefs.Snapshot) (int, error)
	Len() int
}

type PageLoadedMsg struct {
	Gen      uint64
	Page     int
	Items    []market.Item
	Err      error
	Duration time.Duration
}

type PreviewDebounceMsg struct {
	Gen uint64
}

type PreviewLoadedMsg struct {
	Gen   uint64
	Page  int
	Items []market.Item
	Err   error
}

type IdentityResolvedMsg struct {
	UserID string
}

type RemoteWatchStartedMsg struct {
	Updates <-chan []string
}

type RemoteUpdateMsg struct {
	IDs     []string
	Updates <-chan []string
}

type RemoteClosedMsg struct{}

type RemoteSyncedMsg struct {
	Op string
}

type RemoteSyncErrorMsg struct {
	Op  string
	Err error
}

type ExportDoneMsg struct {
	Path  string
	Count int
}

type ExportErrorMsg struct {
	Err error
}

type ImportDoneMsg struct {
	Path  string
	Added int
	Total int
}

type ImportErrorMsg struct {
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type PreferenceSaveErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

// LoadPageCmd runs the fetch described by req. A deadline hit while req is
// still current is reported as a failure rather than a cancellation, so the
// page does not stay loading forever.
func LoadPageCmd(service Service, req paging.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(req.Ctx, PageTimeout)
		defer cancel()
		start := time.Now()

		items, err := service.LoadPage(ctx, req.Page)
		err = timeoutAware(req.Ctx, err, PageTimeout)
		return PageLoadedMsg{Gen: req.Gen, Page: req.Page, Items: items, Err: err, Duration: time.Since(start)}
	}
}

func DebouncePreviewCmd(gen uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return PreviewDebounceMsg{Gen: gen}
	})
}

func LoadPreviewCmd(service Service, req preview.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(req.Ctx, PreviewTimeout)
		defer cancel()

		items, err := service.PreviewPage(ctx, req.Page)
		err = timeoutAware(req.Ctx, err, PreviewTimeout)
		return PreviewLoadedMsg{Gen: req.Gen, Page: req.Page, Items: items, Err: err}
	}
}

func timeoutAware(parent context.Context, err error, timeout time.Duration) error {
	if fetch.IsCancelled(err) && parent.Err() == nil {
		return fmt.Errorf("request timed out after %s: %w", timeout, context.DeadlineExceeded)
	}
	return err
}

func ResolveIdentityCmd(store remote.IdentityStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RemoteTimeout)
		defer cancel()

		userID, err := remote.AnonymousIdentity(ctx, store)
		if err != nil {
			return RemoteSyncErrorMsg{Op: "identity", Err: err}
		}
		return IdentityResolvedMsg{UserID: userID}
	}
}

// WatchRemoteCmd subscribes to the user's document. The subscription lives
// as long as ctx.
func WatchRemoteCmd(ctx context.Context, watcher RemoteWatcher, userID string) tea.Cmd {
	return func() tea.Msg {
		updates, err := watcher.Watch(ctx, userID)
		if err != nil {
			return RemoteSyncErrorMsg{Op: "watch", Err: err}
		}
		return RemoteWatchStartedMsg{Updates: updates}
	}
}

// WaitRemoteCmd blocks for the next remote snapshot. The model re-issues it
// after every RemoteUpdateMsg.
func WaitRemoteCmd(updates <-chan []string) tea.Cmd {
	return func() tea.Msg {
		ids, ok := <-updates
		if !ok {
			return RemoteClosedMsg{}
		}
		return RemoteUpdateMsg{IDs: ids, Updates: updates}
	}
}

func PushRemoteCmd(syncer RemoteSyncer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RemoteTimeout)
		defer cancel()

		if err := syncer.PushRemote(ctx); err != nil {
			return RemoteSyncErrorMsg{Op: "push", Err: err}
		}
		return RemoteSyncedMsg{Op: "push"}
	}
}

func ClearRemoteCmd(syncer RemoteSyncer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RemoteTimeout)
		defer cancel()

		if err := syncer.ClearRemote(ctx); err != nil {
			return RemoteSyncErrorMsg{Op: "clear", Err: err}
		}
		return RemoteSyncedMsg{Op: "clear"}
	}
}

func ExportCmd(store SnapshotStore, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, count, err := ExportToDir(store, dir, now)
		if err != nil {
			return ExportErrorMsg{Err: err}
		}
		return ExportDoneMsg{Path: path, Count: count}
	}
}

// ExportToDir writes the current snapshot under its default name in dir.
func ExportToDir(store SnapshotStore, dir string, now time.Time) (string, int, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, prefs.SnapshotFilename(now))
	count, err := ExportToFile(store, path, now)
	if err != nil {
		return "", 0, err
	}
	return path, count, nil
}

// ExportToFile writes the current snapshot to path and reports how many ids
// it holds.
func ExportToFile(store SnapshotStore, path string, now time.Time) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	snap := store.ExportSnapshot(now)
	if err := prefs.WriteSnapshot(f, snap); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close export file: %w", err)
	}
	return len(snap.ExcludedIDs), nil
}

func ImportCmd(store SnapshotStore, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RemoteTimeout)
		defer cancel()

		added, err := ImportFile(ctx, store, path)
		if err != nil {
			return ImportErrorMsg{Err: err}
		}
		return ImportDoneMsg{Path: path, Added: added, Total: store.Len()}
	}
}

// ImportFile decodes a snapshot file and unions it into store. A file that
// fails validation leaves the store untouched.
func ImportFile(ctx context.Context, store SnapshotStore, path string) (int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("import: no file given")
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	snap, err := prefs.DecodeSnapshot(f)
	if err != nil {
		return 0, err
	}
	return store.ImportSnapshot(ctx, snap)
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened chart in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, chart URL copied to clipboard", Opened: false}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open chart URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Chart URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy chart URL to clipboard")}
	}
}

func PersistPreferencesCmd(saver PreferenceSaver, p storage.UIPreferences) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := saver.SaveUIPreferences(ctx, p); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}

func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
