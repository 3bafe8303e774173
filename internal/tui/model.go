package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/glabrego/coinboard/internal/app"
	"github.com/glabrego/coinboard/internal/logging"
	"github.com/glabrego/coinboard/internal/market"
	"github.com/glabrego/coinboard/internal/prefs"
	"github.com/glabrego/coinboard/internal/remote"
	"github.com/glabrego/coinboard/internal/storage"
	"github.com/glabrego/coinboard/internal/tui/actions"
	"github.com/glabrego/coinboard/internal/tui/paging"
	"github.com/glabrego/coinboard/internal/tui/platform"
	"github.com/glabrego/coinboard/internal/tui/preview"
	"github.com/glabrego/coinboard/internal/tui/state"
	tuitheme "github.com/glabrego/coinboard/internal/tui/theme"
	"github.com/glabrego/coinboard/internal/tui/view"
)

const (
	// pagerRow is the screen row the pager is drawn on; mouse hit-testing
	// depends on it.
	pagerRow  = 2
	pagerSpan = 9

	storeTimeout = 5 * time.Second
)

const (
	remoteConnecting = "connecting"
	remoteOn         = "on"
	remoteOff        = "off"
	remoteError      = "error"
)

type Model struct {
	service   actions.Service
	store     *prefs.Store
	paging    *paging.Controller
	preview   *preview.Controller
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *logrus.Entry
	theme     tuitheme.Theme
	keys      keyMap
	spinner   spinner.Model
	input     textinput.Model
	importing bool

	items        []market.Item
	cursor       int
	inDetail     bool
	detailTop    int
	showHelp     bool
	pagerFocused bool
	pagerFocus   int
	hoverPage    int
	resetArmed   bool
	width        int
	height       int
	status       string
	statusID     int
	err          error

	interval      string
	logScale      bool
	compact       bool
	quoteAsset    string
	exportDir     string
	debounceDelay time.Duration
	statusTimeout time.Duration
	nowFn         func() time.Time
	openURLFn     func(string) error
	copyURLFn     func(string) error
	prefsSaver    actions.PreferenceSaver

	identity    remote.IdentityStore
	watcher     actions.RemoteWatcher
	remoteState string
}

func NewModel(service actions.Service, store *prefs.Store) Model {
	if store == nil {
		store = prefs.NewStore(nil, nil, nil)
	}
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "Import file: "
	input.Placeholder = "coinboard-excluded.json"
	input.CharLimit = 4096

	return Model{
		service:       service,
		store:         store,
		paging:        paging.New(app.DisplayCount),
		preview:       preview.New(),
		ctx:           ctx,
		cancel:        cancel,
		logger:        logging.Discard(),
		theme:         tuitheme.Default(),
		keys:          defaultKeyMap(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:         input,
		interval:      "D",
		quoteAsset:    "USDT",
		exportDir:     ".",
		debounceDelay: preview.DebounceDelay,
		statusTimeout: actions.StatusTimeout,
		nowFn:         time.Now,
		openURLFn:     platform.OpenURLInBrowser,
		copyURLFn:     platform.CopyToClipboard,
	}
}

func (m *Model) SetLogger(logger *logrus.Entry) {
	if logger == nil {
		return
	}
	m.logger = logger.WithField("component", "tui")
}

// SetRemote enables the live per-user document. Both halves are needed:
// identity resolves the user, watcher follows their document.
func (m *Model) SetRemote(identity remote.IdentityStore, watcher actions.RemoteWatcher) {
	m.identity = identity
	m.watcher = watcher
}

func (m *Model) SetQuoteAsset(quote string) {
	if q := strings.TrimSpace(quote); q != "" {
		m.quoteAsset = strings.ToUpper(q)
	}
}

func (m *Model) SetExportDir(dir string) {
	if d := strings.TrimSpace(dir); d != "" {
		m.exportDir = d
	}
}

func (m *Model) ApplyPreferences(p storage.UIPreferences) {
	if p.ChartInterval != "" {
		m.interval = p.ChartInterval
	}
	m.logScale = p.LogScale
	m.compact = p.Compact
}

func (m *Model) SetPreferencesSaver(saver actions.PreferenceSaver) {
	m.prefsSaver = saver
}

func (m Model) preferences() storage.UIPreferences {
	return storage.UIPreferences{
		ChartInterval: m.interval,
		LogScale:      m.logScale,
		Compact:       m.compact,
	}
}

func (m Model) remoteConfigured() bool {
	return m.identity != nil && m.watcher != nil && m.store.RemoteEnabled()
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.service != nil {
		req := m.paging.Begin(m.ctx, m.paging.Page())
		cmds = append(cmds, actions.LoadPageCmd(m.service, req))
	}
	if m.remoteConfigured() {
		cmds = append(cmds, actions.ResolveIdentityCmd(m.identity))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actions.PageLoadedMsg:
		return m.pageLoaded(msg)
	case actions.PreviewDebounceMsg:
		if m.service == nil {
			return m, nil
		}
		req, ok := m.preview.Elapsed(m.ctx, msg.Gen, m.paging.Loading())
		if !ok {
			return m, nil
		}
		return m, tea.Batch(actions.LoadPreviewCmd(m.service, req), m.spinner.Tick)
	case actions.PreviewLoadedMsg:
		if m.preview.Resolve(msg.Gen, msg.Items, msg.Err) && msg.Err != nil {
			m.logger.WithError(msg.Err).WithField("page", msg.Page).Debug("preview fetch failed")
		}
		return m, nil
	case actions.IdentityResolvedMsg:
		m.store.SetIdentity(msg.UserID)
		m.remoteState = remoteConnecting
		m.logger.WithField("user", msg.UserID).Info("remote identity resolved")
		return m, tea.Batch(
			actions.PushRemoteCmd(m.store),
			actions.WatchRemoteCmd(m.ctx, m.watcher, msg.UserID),
		)
	case actions.RemoteWatchStartedMsg:
		m.remoteState = remoteOn
		return m, actions.WaitRemoteCmd(msg.Updates)
	case actions.RemoteUpdateMsg:
		return m.remoteUpdate(msg)
	case actions.RemoteClosedMsg:
		m.remoteState = remoteOff
		return m, nil
	case actions.RemoteSyncedMsg:
		m.logger.WithField("op", msg.Op).Debug("remote sync done")
		return m, nil
	case actions.RemoteSyncErrorMsg:
		m.remoteState = remoteError
		m.logger.WithError(msg.Err).WithField("op", msg.Op).Warn("remote sync failed")
		return m, nil
	case actions.ExportDoneMsg:
		m.err = nil
		m.logger.WithFields(logrus.Fields{"path": msg.Path, "count": msg.Count}).Info("exported exclusions")
		return m, m.setStatus(fmt.Sprintf("Exported %d hidden coin(s) to %s", msg.Count, msg.Path))
	case actions.ExportErrorMsg:
		m.status = ""
		m.err = fmt.Errorf("export failed: %w", msg.Err)
		m.logger.WithError(msg.Err).Warn("export failed")
		return m, nil
	case actions.ImportDoneMsg:
		return m.imported(msg)
	case actions.ImportErrorMsg:
		m.status = ""
		m.err = fmt.Errorf("import failed: %w", msg.Err)
		m.logger.WithError(msg.Err).Warn("import failed")
		return m, nil
	case actions.OpenURLSuccessMsg:
		m.err = nil
		return m, m.setStatus(msg.Status)
	case actions.OpenURLErrorMsg:
		m.err = nil
		return m, m.setStatus(msg.Err.Error())
	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	case actions.PreferenceSaveErrorMsg:
		m.err = msg.Err
		m.status = "Could not persist UI preferences"
		m.logger.WithError(msg.Err).Warn("saving UI preferences failed")
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.importing {
		return m.handleImportKey(msg)
	}
	if !key.Matches(msg, m.keys.Reset) {
		m.resetArmed = false
	}
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}
	if m.inDetail {
		return m.handleDetailKey(msg)
	}
	if m.pagerFocused {
		return m.handlePagerKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = state.ClampCursor(len(m.items)-1, len(m.items))
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-state.PageStep(m.height, false))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(state.PageStep(m.height, false))
	case key.Matches(msg, m.keys.NextPage):
		return m.goToPage(m.paging.Page() + 1)
	case key.Matches(msg, m.keys.PrevPage):
		if m.paging.Page() > 1 {
			return m.goToPage(m.paging.Page() - 1)
		}
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Pager):
		return m.focusPager(m.paging.Page())
	case key.Matches(msg, m.keys.PagerLeft):
		return m.focusPager(m.paging.Page() - 1)
	case key.Matches(msg, m.keys.PagerRight):
		return m.focusPager(m.paging.Page() + 1)
	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			m.inDetail = true
			m.detailTop = 0
		}
	case key.Matches(msg, m.keys.Hide):
		return m.hideCurrent()
	case key.Matches(msg, m.keys.Reset):
		return m.resetExcluded()
	case key.Matches(msg, m.keys.Open):
		return m.openChart()
	case key.Matches(msg, m.keys.Copy):
		return m.copyChart()
	case key.Matches(msg, m.keys.Interval):
		return m.cycleInterval()
	case key.Matches(msg, m.keys.LogScale):
		return m.toggleLogScale()
	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
		return m, tea.Batch(m.setStatus("Compact table: "+onOff(m.compact)), m.persistPreferences())
	case key.Matches(msg, m.keys.Export):
		return m, actions.ExportCmd(m.store, m.exportDir, m.nowFn())
	case key.Matches(msg, m.keys.Import):
		m.importing = true
		m.input.Reset()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.inDetail = false
		m.detailTop = 0
	case key.Matches(msg, m.keys.Up):
		if m.detailTop > 0 {
			m.detailTop--
		}
	case key.Matches(msg, m.keys.Down):
		if m.detailTop < m.maxDetailTop() {
			m.detailTop++
		}
	case msg.String() == "[":
		if m.cursor > 0 {
			m.cursor--
			m.detailTop = 0
		}
	case msg.String() == "]":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.detailTop = 0
		}
	case key.Matches(msg, m.keys.Hide):
		return m.hideCurrent()
	case key.Matches(msg, m.keys.Open):
		return m.openChart()
	case key.Matches(msg, m.keys.Copy):
		return m.copyChart()
	case key.Matches(msg, m.keys.Interval):
		return m.cycleInterval()
	case key.Matches(msg, m.keys.LogScale):
		return m.toggleLogScale()
	}
	return m, nil
}

func (m Model) handlePagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.PagerLeft):
		if m.pagerFocus > 1 {
			return m.focusPager(m.pagerFocus - 1)
		}
	case key.Matches(msg, m.keys.PagerRight):
		return m.focusPager(m.pagerFocus + 1)
	case key.Matches(msg, m.keys.Select):
		page := m.pagerFocus
		m.leavePager()
		return m.goToPage(page)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Pager):
		m.leavePager()
	}
	return m, nil
}

func (m Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		m.importing = false
		m.input.Blur()
		return m, m.setStatus("Import cancelled")
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		m.importing = false
		m.input.Blur()
		if path == "" {
			return m, m.setStatus("Import cancelled")
		}
		return m, actions.ImportCmd(m.store, path)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.importing {
		return m, nil
	}
	hit := 0
	if msg.Y == pagerRow {
		hit = view.PagerHit(m.pagerPages(), msg.X)
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if hit == 0 {
			return m, nil
		}
		if m.pagerFocused {
			m.leavePager()
		}
		return m.goToPage(hit)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.scroll(1)
	case msg.Action == tea.MouseActionMotion:
		return m.hover(hit)
	}
	return m, nil
}

// hover tracks the pointer over the pager. Leaving the pager row drops the
// preview unless the keyboard owns the pager.
func (m Model) hover(page int) (tea.Model, tea.Cmd) {
	if page > 0 {
		if page == m.hoverPage {
			return m, nil
		}
		m.hoverPage = page
		return m, m.enterPreview(page)
	}
	if m.pagerFocused || m.hoverPage == 0 {
		return m, nil
	}
	m.hoverPage = 0
	m.preview.Leave()
	return m, nil
}

func (m *Model) scroll(delta int) {
	if m.inDetail {
		m.detailTop = state.ClampCursor(m.detailTop+delta, m.maxDetailTop()+1)
		return
	}
	m.moveCursor(delta)
}

func (m Model) focusPager(page int) (tea.Model, tea.Cmd) {
	if page < 1 {
		page = 1
	}
	m.pagerFocused = true
	m.pagerFocus = page
	m.hoverPage = page
	return m, m.enterPreview(page)
}

func (m *Model) leavePager() {
	m.pagerFocused = false
	m.pagerFocus = 0
	m.hoverPage = 0
	m.preview.Leave()
}

func (m Model) pagerPages() []int {
	return state.PagerPages(m.paging.Page(), m.pagerFocus, pagerSpan)
}

func (m *Model) enterPreview(page int) tea.Cmd {
	action := m.preview.Enter(page, m.paging.Page(), m.paging.Loading(), m.items)
	if action.Kind != preview.ActionDebounce {
		return nil
	}
	return actions.DebouncePreviewCmd(action.Gen, m.debounceDelay)
}

// syncPreview keeps the preview consistent after the page or the exclusion
// set changed: a preview of the displayed page is recomputed from the
// visible list and a preview held back by a loading page is started.
func (m *Model) syncPreview() tea.Cmd {
	if m.paging.Status() == paging.Ready && m.preview.SyncCurrentPage(m.paging.Page(), m.items) {
		return nil
	}
	if m.preview.Status() == preview.Waiting && !m.paging.Loading() {
		return m.enterPreview(m.preview.Target())
	}
	return nil
}

func (m Model) goToPage(page int) (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	if page < 1 {
		page = 1
	}
	if page != m.paging.Page() {
		m.cursor = 0
		m.detailTop = 0
		m.inDetail = false
	}
	req := m.paging.Begin(m.ctx, page)
	return m.startLoad(req)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	return m.startLoad(m.paging.Retry(m.ctx))
}

func (m Model) startLoad(req paging.Request) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""
	m.refreshVisible(state.AnchorID(m.items, m.cursor))
	m.logger.WithField("page", req.Page).Debug("loading market page")
	return m, tea.Batch(actions.LoadPageCmd(m.service, req), m.spinner.Tick)
}

func (m Model) pageLoaded(msg actions.PageLoadedMsg) (tea.Model, tea.Cmd) {
	anchor := state.AnchorID(m.items, m.cursor)
	if !m.paging.Resolve(msg.Gen, msg.Items, msg.Err) {
		return m, nil
	}

	entry := m.logger.WithFields(logrus.Fields{"page": msg.Page, "duration": msg.Duration.Round(time.Millisecond)})
	if err := m.paging.Err(); err != nil {
		entry.WithError(err).Warn("market page failed")
	} else {
		entry.WithField("items", len(m.paging.Buffer())).Debug("market page loaded")
	}
	m.refreshVisible(anchor)
	return m, m.syncPreview()
}

func (m *Model) refreshVisible(anchor string) {
	m.items = m.paging.Visible(m.store.Has)
	m.cursor = state.RestoreCursor(m.items, anchor, m.cursor)
	if len(m.items) == 0 {
		m.inDetail = false
		m.detailTop = 0
	}
}

func (m Model) hideCurrent() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}
	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()

	m.err = nil
	if err := m.store.Exclude(ctx, item.ID); err != nil {
		m.err = err
		m.logger.WithError(err).WithField("coin", item.ID).Warn("persisting hidden coin failed")
	}
	m.detailTop = 0
	m.refreshVisible("")

	cmds := []tea.Cmd{
		m.setStatus(fmt.Sprintf("Hidden %s (%s)", strings.ToUpper(item.Symbol), item.Name)),
		m.syncPreview(),
	}
	if m.store.RemoteEnabled() {
		cmds = append(cmds, actions.PushRemoteCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// resetExcluded needs two presses of R in a row.
func (m Model) resetExcluded() (tea.Model, tea.Cmd) {
	if !m.resetArmed {
		m.resetArmed = true
		return m, m.setStatus("Press R again to show all hidden coins")
	}
	m.resetArmed = false

	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()

	anchor := state.AnchorID(m.items, m.cursor)
	m.err = nil
	if err := m.store.Reset(ctx); err != nil {
		m.err = err
		m.logger.WithError(err).Warn("resetting hidden coins failed")
	}
	m.refreshVisible(anchor)

	cmds := []tea.Cmd{m.setStatus("Showing all coins again"), m.syncPreview()}
	if m.store.RemoteEnabled() {
		cmds = append(cmds, actions.ClearRemoteCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) remoteUpdate(msg actions.RemoteUpdateMsg) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()

	m.remoteState = remoteOn
	anchor := state.AnchorID(m.items, m.cursor)
	added, err := m.store.Merge(ctx, msg.IDs)
	if err != nil {
		m.logger.WithError(err).Warn("persisting remote exclusions failed")
	}
	var cmd tea.Cmd
	if added > 0 {
		m.logger.WithField("added", added).Info("merged remote exclusions")
		m.refreshVisible(anchor)
		cmd = m.syncPreview()
	}
	return m, tea.Batch(cmd, actions.WaitRemoteCmd(msg.Updates))
}

func (m Model) imported(msg actions.ImportDoneMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.refreshVisible(state.AnchorID(m.items, m.cursor))
	m.logger.WithFields(logrus.Fields{"path": msg.Path, "added": msg.Added}).Info("imported exclusions")

	cmds := []tea.Cmd{
		m.setStatus(fmt.Sprintf("Imported %d new hidden coin(s) from %s", msg.Added, msg.Path)),
		m.syncPreview(),
	}
	if m.store.RemoteEnabled() {
		cmds = append(cmds, actions.PushRemoteCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) chartURL() (string, error) {
	item, ok := m.currentItem()
	if !ok {
		return "", fmt.Errorf("no coin selected")
	}
	return platform.ValidateChartURL(market.NewChartConfig(item, m.quoteAsset, m.interval, m.logScale).URL())
}

func (m Model) openChart() (tea.Model, tea.Cmd) {
	url, err := m.chartURL()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	return m, actions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) copyChart() (tea.Model, tea.Cmd) {
	url, err := m.chartURL()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	return m, actions.CopyURLCmd(url, m.copyURLFn)
}

func (m Model) cycleInterval() (tea.Model, tea.Cmd) {
	m.interval = market.NextInterval(m.interval)
	return m, tea.Batch(m.setStatus("Chart interval: "+market.IntervalLabel(m.interval)), m.persistPreferences())
}

func (m Model) toggleLogScale() (tea.Model, tea.Cmd) {
	m.logScale = !m.logScale
	return m, tea.Batch(m.setStatus("Chart log scale: "+onOff(m.logScale)), m.persistPreferences())
}

func (m Model) persistPreferences() tea.Cmd {
	if m.prefsSaver == nil {
		return nil
	}
	return actions.PersistPreferencesCmd(m.prefsSaver, m.preferences())
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.status = status
	m.statusID++
	return actions.ClearStatusCmd(m.statusID, m.statusTimeout)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.paging.Shutdown()
	m.preview.Leave()
	m.cancel()
	return m, tea.Quit
}

func (m Model) busy() bool {
	return m.paging.Loading() || m.preview.Loading()
}

func (m Model) currentItem() (market.Item, bool) {
	if len(m.items) == 0 {
		return market.Item{}, false
	}
	return m.items[state.ClampCursor(m.cursor, len(m.items))], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor = state.ClampCursor(m.cursor+delta, len(m.items))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
