package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/contentlist/internal/display"
	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/logging"
	"github.com/rshade/contentlist/internal/pagination"
	listview "github.com/rshade/contentlist/internal/tui/list"
)

// DefaultSearchDebounce is how long typing must pause before a search runs.
const DefaultSearchDebounce = 300 * time.Millisecond

// chromeHeight is the number of lines around the table.
const chromeHeight = 10

// ViewState is the interaction mode of the browser.
type ViewState int

const (
	// ViewStateList is plain navigation.
	ViewStateList ViewState = iota
	// ViewStateSearch routes keys to the search box.
	ViewStateSearch
	// ViewStateMenu shows a filter value menu.
	ViewStateMenu
	// ViewStateConfirmDelete waits for delete confirmation.
	ViewStateConfirmDelete
	// ViewStateQuitting is set just before the program exits.
	ViewStateQuitting
)

// ListFetchedMsg carries a fetch outcome back to Update.
type ListFetchedMsg struct {
	Ticket listing.Ticket
	Result listing.ListResult
	Err    error
}

// SearchDebouncedMsg fires when typing has paused. Only the message matching
// the latest keystroke sequence is acted on.
type SearchDebouncedMsg struct {
	Seq  int
	Text string
}

// ItemDeletedMsg carries a delete outcome back to Update.
type ItemDeletedMsg struct {
	UUID string
	Name string
	Err  error
}

// ParametersLoadedMsg carries the filter values offered by the source.
type ParametersLoadedMsg struct {
	Params listing.Parameters
	Err    error
}

// BrowseOptions configure NewBrowseModel.
type BrowseOptions struct {
	// Debounce is the search debounce; zero uses DefaultSearchDebounce and
	// a negative value searches on every keystroke.
	Debounce time.Duration
	Width    int
	Height   int
}

type filterMenu struct {
	category filter.Category
	options  []string
	cursor   int
}

// BrowseModel is the interactive repository browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowseModel struct {
	ctx    context.Context
	engine *listing.Engine

	state   ViewState
	view    listing.View
	rows    *listview.VirtualListModel[listing.Item]
	search  textinput.Model
	pager   paginator.Model
	help    help.Model
	keys    keyMap
	loading *LoadingState

	debounce  time.Duration
	searchSeq int

	params        listing.Parameters
	menu          filterMenu
	pendingDelete *listing.Item
	deleting      int

	status    string
	statusErr bool

	width  int
	height int
}

// NewBrowseModel creates a browser over engine. ctx is passed to every
// fetch and delete.
func NewBrowseModel(ctx context.Context, engine *listing.Engine, opts BrowseOptions) BrowseModel {
	debounce := opts.Debounce
	switch {
	case debounce == 0:
		debounce = DefaultSearchDebounce
	case debounce < 0:
		debounce = 0
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	ti := textinput.New()
	ti.Placeholder = "name or url"
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.SetValue(engine.Criteria().SearchQuery)

	pager := paginator.New()
	pager.Type = paginator.Arabic

	m := BrowseModel{
		ctx:      ctx,
		engine:   engine,
		state:    ViewStateList,
		search:   ti,
		pager:    pager,
		help:     help.New(),
		keys:     defaultKeyMap(),
		loading:  NewLoadingState(),
		debounce: debounce,
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.rows = listview.NewVirtualListModel[listing.Item](nil, tableHeight(height), width, m.renderRow)
	m.syncView()
	return m
}

// Init starts the spinner, the first fetch and the parameter lookup.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetch(), m.loadParameters())
}

// Update handles messages (Bubble Tea interface).
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rows.SetSize(msg.Width, tableHeight(msg.Height))
		return m, nil

	case ListFetchedMsg:
		if !m.engine.Apply(msg.Ticket, msg.Result, msg.Err) {
			return m, nil
		}
		m.syncView()
		return m, nil

	case SearchDebouncedMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		return m.applySearch(msg.Text)

	case ItemDeletedMsg:
		if m.deleting > 0 {
			m.deleting--
		}
		if msg.Err != nil {
			m.setStatus(true, "Delete failed: %v", msg.Err)
			return m, nil
		}
		m.setStatus(false, "Deleted %s", displayName(msg.Name, msg.UUID))
		m.syncView()
		return m, m.fetch()

	case ParametersLoadedMsg:
		if msg.Err != nil {
			logging.FromContext(m.ctx).Warn().Ctx(m.ctx).
				Str("component", "tui").
				Err(msg.Err).
				Msg("failed to load filter parameters")
			return m, nil
		}
		m.params = msg.Params
		return m, nil

	case spinner.TickMsg:
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == ViewStateSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	switch m.state {
	case ViewStateSearch:
		return m.handleSearchKey(msg)
	case ViewStateMenu:
		return m.handleMenuKey(msg)
	case ViewStateConfirmDelete:
		return m.handleConfirmKey(msg)
	case ViewStateList, ViewStateQuitting:
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.state = ViewStateSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Versions):
		return m.openMenu(filter.CategoryVersion, m.params.Versions), nil

	case key.Matches(msg, m.keys.Arches):
		return m.openMenu(filter.CategoryArchitecture, m.params.Architectures), nil

	case key.Matches(msg, m.keys.Statuses):
		return m.openMenu(filter.CategoryStatus, filter.KnownStatuses), nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.search.SetValue("")
		m.searchSeq++
		return m.afterChange(m.engine.ClearFilters())

	case key.Matches(msg, m.keys.NextPage):
		if !m.view.Meta.HasNext {
			return m, nil
		}
		return m.gotoPage(m.view.Page + 1)

	case key.Matches(msg, m.keys.PrevPage):
		if m.view.Page <= pagination.MinPage {
			return m, nil
		}
		return m.gotoPage(m.view.Page - 1)

	case key.Matches(msg, m.keys.BiggerPage):
		next := pagination.NextPageSize(m.view.PageSize)
		if next <= m.view.PageSize {
			return m, nil
		}
		return m.changePageSize(next)

	case key.Matches(msg, m.keys.SmallerPage):
		prev := pagination.PrevPageSize(m.view.PageSize)
		if prev >= m.view.PageSize {
			return m, nil
		}
		return m.changePageSize(prev)

	case key.Matches(msg, m.keys.Refresh):
		m.engine.Invalidate()
		m.syncView()
		return m, m.fetch()

	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete(), nil
	}

	m.rows.Update(msg)
	return m, nil
}

func (m BrowseModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // Remaining keys go to the text input.
	switch msg.Type {
	case tea.KeyEsc:
		m.state = ViewStateList
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.state = ViewStateList
		m.search.Blur()
		m.searchSeq++
		return m.applySearch(m.search.Value())
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceSearch(m.debounce, m.searchSeq, m.search.Value()))
}

func (m BrowseModel) applySearch(text string) (tea.Model, tea.Cmd) {
	return m.afterChange(m.engine.SetSearchQuery(text))
}

func (m BrowseModel) openMenu(category filter.Category, options []string) BrowseModel {
	if len(options) == 0 {
		m.setStatus(true, "No %s values available", category)
		return m
	}
	m.menu = filterMenu{category: category, options: slices.Clone(options)}
	m.state = ViewStateMenu
	return m
}

func (m BrowseModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
		return m, nil
	case "down", "j":
		if m.menu.cursor < len(m.menu.options)-1 {
			m.menu.cursor++
		}
		return m, nil
	case " ", "enter", "x":
		value := m.menu.options[m.menu.cursor]
		var changed bool
		switch m.menu.category {
		case filter.CategoryVersion:
			changed = m.engine.ToggleVersion(value)
		case filter.CategoryArchitecture:
			changed = m.engine.ToggleArchitecture(value)
		case filter.CategoryStatus:
			changed = m.engine.ToggleStatus(value)
		case filter.CategorySearch:
		}
		return m.afterChange(changed)
	case "esc", "q", "v", "a", "s":
		m.state = ViewStateList
		return m, nil
	}
	return m, nil
}

func (m BrowseModel) requestDelete() BrowseModel {
	if m.actionTakingPlace() {
		m.setStatus(true, "Wait for the current update to finish")
		return m
	}
	item := m.rows.GetSelectedItem()
	if item == nil {
		return m
	}
	selected := *item
	m.pendingDelete = &selected
	m.state = ViewStateConfirmDelete
	return m
}

func (m BrowseModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.pendingDelete
	m.pendingDelete = nil
	m.state = ViewStateList
	if item == nil || !key.Matches(msg, m.keys.Confirm) {
		m.setStatus(false, "Delete cancelled")
		return m, nil
	}

	m.deleting++
	m.setStatus(false, "Deleting %s...", displayName(item.Name, item.UUID))
	ctx, engine := m.ctx, m.engine
	uuid, name := item.UUID, item.Name
	return m, func() tea.Msg {
		err := engine.DeleteItem(ctx, uuid)
		return ItemDeletedMsg{UUID: uuid, Name: name, Err: err}
	}
}

func (m BrowseModel) gotoPage(page int) (tea.Model, tea.Cmd) {
	if err := m.engine.SetPage(page); err != nil {
		m.setStatus(true, "%v", err)
		return m, nil
	}
	m.rows.SetSelected(0)
	return m.afterChange(true)
}

func (m BrowseModel) changePageSize(size int) (tea.Model, tea.Cmd) {
	if err := m.engine.ChangePageSize(size); err != nil {
		m.setStatus(true, "%v", err)
		return m, nil
	}
	return m.afterChange(true)
}

// afterChange refetches when the descriptor changed.
func (m BrowseModel) afterChange(changed bool) (tea.Model, tea.Cmd) {
	if !changed {
		return m, nil
	}
	m.syncView()
	return m, m.fetch()
}

// fetch issues a ticket now and fetches in a command.
func (m BrowseModel) fetch() tea.Cmd {
	t := m.engine.BeginFetch()
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		res, err := engine.Fetch(ctx, t)
		return ListFetchedMsg{Ticket: t, Result: res, Err: err}
	}
}

func (m BrowseModel) loadParameters() tea.Cmd {
	ps, ok := m.engine.Source().(listing.ParameterSource)
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		params, err := ps.Parameters(ctx)
		return ParametersLoadedMsg{Params: params, Err: err}
	}
}

func debounceSearch(d time.Duration, seq int, text string) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return SearchDebouncedMsg{Seq: seq, Text: text} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SearchDebouncedMsg{Seq: seq, Text: text}
	})
}

// syncView copies the engine snapshot into the view components.
func (m *BrowseModel) syncView() {
	m.view = m.engine.Snapshot()
	m.rows.SetItems(m.view.Items)
	m.pager.PerPage = max(m.view.PageSize, 1)
	m.pager.SetTotalPages(m.view.TotalCount)
	m.pager.Page = max(m.view.Page-1, 0)
}

func (m *BrowseModel) setStatus(isErr bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr
}

// actionTakingPlace reports whether a fetch or delete is in flight.
func (m BrowseModel) actionTakingPlace() bool {
	return m.deleting > 0 || m.view.Fetching || m.view.State == display.Loading
}

// View renders the browser (Bubble Tea interface).
func (m BrowseModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")

	if m.view.State.ShowPagination() {
		b.WriteString("\n")
		b.WriteString(m.renderPagination())
		b.WriteString("\n")
	}

	switch m.state {
	case ViewStateMenu:
		b.WriteString("\n")
		b.WriteString(m.renderMenu())
		b.WriteString("\n")
	case ViewStateConfirmDelete:
		if m.pendingDelete != nil {
			b.WriteString("\n")
			b.WriteString(WarningStyle.Render(fmt.Sprintf("Delete %s? (y/N)",
				displayName(m.pendingDelete.Name, m.pendingDelete.UUID))))
			b.WriteString("\n")
		}
	case ViewStateList, ViewStateSearch, ViewStateQuitting:
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(CriticalStyle.Render(m.status))
		} else {
			b.WriteString(OKStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m BrowseModel) renderHeader() string {
	title := HeaderStyle.Render("Content repositories")
	if m.view.State == display.Populated || m.view.State == display.EmptyFiltered {
		title += SubtleStyle.Render(fmt.Sprintf("  %d total", m.view.TotalCount))
	}
	if m.actionTakingPlace() && m.view.State != display.Loading {
		title += "  " + m.loading.Spinner()
	}
	return title
}

func (m BrowseModel) renderChips() string {
	chips := m.view.Criteria.Chips()
	if len(chips) == 0 {
		return SubtleStyle.Render("No filters")
	}
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		parts = append(parts, ChipStyle.Render(fmt.Sprintf("%s: %s", c.Category, c.Value)))
	}
	return strings.Join(parts, " ") + SubtleStyle.Render("  (c to clear)")
}

func (m BrowseModel) renderBody() string {
	switch m.view.State {
	case display.Loading:
		return RenderLoading(m.loading)
	case display.Error:
		return CriticalStyle.Render(fmt.Sprintf("Failed to load repositories: %v", m.view.Err)) +
			"\n" + SubtleStyle.Render("Press r to retry.")
	case display.EmptyNoFilter:
		return InfoStyle.Render("No content repositories yet.")
	case display.EmptyFiltered:
		return InfoStyle.Render("No repositories match the current filters.") +
			"\n" + SubtleStyle.Render("Press c to clear filters.")
	case display.Populated:
		return TableHeaderStyle.Render(formatRow("NAME", "ARCH", "VERSIONS", "STATUS", "PACKAGES", "URL")) +
			"\n" + m.rows.View()
	}
	return ""
}

func (m BrowseModel) renderPagination() string {
	meta := m.view.Meta
	return SubtleStyle.Render(fmt.Sprintf("%d-%d of %d · %d per page  page ",
		meta.FirstItem(), meta.LastItem(), meta.TotalItems, meta.PageSize)) + m.pager.View()
}

func (m BrowseModel) renderMenu() string {
	var selected []string
	switch m.menu.category {
	case filter.CategoryVersion:
		selected = m.view.Criteria.Versions
	case filter.CategoryArchitecture:
		selected = m.view.Criteria.Architectures
	case filter.CategoryStatus:
		selected = m.view.Criteria.Statuses
	case filter.CategorySearch:
	}

	lines := []string{LabelStyle.Render(fmt.Sprintf("Filter by %s (space to toggle, esc to close)", m.menu.category))}
	for i, opt := range m.menu.options {
		mark := "[ ]"
		if slices.Contains(selected, opt) {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s", mark, opt)
		if i == m.menu.cursor {
			line = MenuCursorStyle.Render("> " + line[2:])
		}
		lines = append(lines, line)
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func (m BrowseModel) renderRow(item listing.Item, selected bool) string {
	row := formatRow(
		item.Name,
		item.DistributionArch,
		strings.Join(item.DistributionVersions, ","),
		statusIcon(item.Status)+" "+item.Status,
		fmt.Sprintf("%d", item.PackageCount),
		item.URL,
	)
	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

func formatRow(name, arch, versions, status, packages, url string) string {
	return fmt.Sprintf("%-32s %-9s %-9s %-13s %8s  %s",
		truncate(name, 32), truncate(arch, 9), truncate(versions, 9),
		truncate(status, 13), truncate(packages, 8), url)
}

func statusIcon(status string) string {
	switch status {
	case filter.StatusValid:
		return OKStyle.Render(IconValid)
	case filter.StatusInvalid:
		return CriticalStyle.Render(IconInvalid)
	case filter.StatusPending:
		return WarningStyle.Render(IconPending)
	default:
		return SubtleStyle.Render(IconUnavailable)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func displayName(name, uuid string) string {
	if name != "" {
		return name
	}
	return uuid
}

func tableHeight(height int) int {
	return max(height-chromeHeight, 3)
}

// State returns the interaction mode.
func (m BrowseModel) State() ViewState {
	return m.state
}

// Snapshot returns the listing view currently shown.
func (m BrowseModel) Snapshot() listing.View {
	return m.view
}
