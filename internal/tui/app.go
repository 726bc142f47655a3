package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// CatalogService aggregates categories and runs searches
type CatalogService interface {
	Aggregate(ctx context.Context, category domain.Category, policy domain.SortPolicy) ([]domain.CatalogItem, error)
	Search(ctx context.Context, query string) ([]domain.CatalogItem, error)
	Invalidate()
}

// DetailsService loads the detail view of an item
type DetailsService interface {
	Details(ctx context.Context, item domain.CatalogItem) (*domain.ItemDetails, error)
}

// TrailerLauncher opens a URL in an external player
type TrailerLauncher interface {
	Launch(url string) error
}

// Screen is the view currently shown
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenSearch
	ScreenWatchlist
	ScreenDetail
)

// Layout
const (
	HeaderHeight = 2
	FooterHeight = 1

	statusTimeout = 3 * time.Second
)

// Options configures the initial state of the model
type Options struct {
	Category domain.Category
	Sort     domain.SortPolicy
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Catalog  CatalogService
	Details  DetailsService
	Launcher TrailerLauncher
	Prefs    domain.PreferenceStore
	logger   *slog.Logger
	latest   *catalog.Latest

	// Navigation
	Screen      Screen
	prevScreen  Screen // Screen to return to from details
	categoryIdx int
	Policy      domain.SortPolicy

	// UI Components
	Browse      *components.ItemList
	Results     *components.ItemList
	Watchlist   *components.ItemList
	Detail      components.DetailView
	SearchInput textinput.Model
	Spinner     spinner.Model
	Help        help.Model

	// Request sequence numbers; results carrying an older number are stale
	seq        uint64
	browseSeq  uint64
	searchSeq  uint64
	detailsSeq uint64

	// UI state
	Width       int
	Height      int
	Ready       bool
	Loading     bool
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
	LastQuery   string
}

// NewModel creates a new application model
func NewModel(
	catalogSvc CatalogService,
	detailsSvc DetailsService,
	launcher TrailerLauncher,
	prefs domain.PreferenceStore,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	categoryIdx := 0
	for i, c := range domain.Categories {
		if c == opts.Category {
			categoryIdx = i
		}
	}

	policy := opts.Sort
	if policy == domain.SortByRelevance {
		policy = domain.SortByTitle
	}

	si := textinput.New()
	si.Placeholder = "search movies and shows..."
	si.Prompt = "Search: "
	si.PromptStyle = styles.FilterPromptStyle
	si.TextStyle = styles.FilterStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		Catalog:     catalogSvc,
		Details:     detailsSvc,
		Launcher:    launcher,
		Prefs:       prefs,
		logger:      logger,
		latest:      catalog.NewLatest(),
		Screen:      ScreenBrowse,
		categoryIdx: categoryIdx,
		Policy:      policy,
		Browse:      components.NewItemList(prefs, "Nothing here yet"),
		Results:     components.NewItemList(prefs, "No results"),
		Watchlist:   components.NewItemList(prefs, "Your watchlist is empty. Press w on any title to add it."),
		Detail:      components.NewDetailView(prefs),
		SearchInput: si,
		Spinner:     sp,
		Help:        h,
	}
}

// Category returns the category shown on the browse screen
func (m Model) Category() domain.Category {
	return domain.Categories[m.categoryIdx]
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return m.loadCategory()
}

// Shutdown cancels every in-flight load
func (m Model) Shutdown() {
	m.latest.CancelAll()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case CategoryLoadedMsg:
		if msg.Seq != m.browseSeq {
			m.logger.Debug("dropping stale category result", "category", msg.Category.Tag())
			return m, nil
		}
		m.Loading = false
		m.Browse.SetItems(msg.Items)
		m.Browse.Home()
		return m, m.setStatus(fmt.Sprintf("%d titles in %s", len(msg.Items), msg.Category), false)

	case SearchResultsMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		m.Loading = false
		m.LastQuery = msg.Query
		m.Results.SetItems(msg.Results)
		m.Results.Home()
		return m, m.setStatus(fmt.Sprintf("%d results for %q", len(msg.Results), msg.Query), false)

	case DetailsLoadedMsg:
		if msg.Seq != m.detailsSeq {
			return m, nil
		}
		m.Loading = false
		m.Detail.SetDetails(msg.Details)
		return m, nil

	case TrailerLaunchedMsg:
		return m, m.setStatus("Opening trailer for "+msg.Title, false)

	case ErrMsg:
		m.Loading = false
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case cancelledMsg:
		return m, nil
	}

	return m, nil
}

// activeList returns the list shown on the current screen, nil on the detail screen
func (m *Model) activeList() *components.ItemList {
	switch m.Screen {
	case ScreenBrowse:
		return m.Browse
	case ScreenSearch:
		return m.Results
	case ScreenWatchlist:
		return m.Watchlist
	default:
		return nil
	}
}

// currentItem returns the item the preference keys act on
func (m *Model) currentItem() (domain.CatalogItem, bool) {
	if m.Screen == ScreenDetail {
		if d := m.Detail.Details(); d != nil {
			return d.Item, true
		}
		return domain.CatalogItem{}, false
	}
	if l := m.activeList(); l != nil {
		return l.Selected()
	}
	return domain.CatalogItem{}, false
}

func (m *Model) nextSeq() uint64 {
	m.seq++
	return m.seq
}

func (m *Model) loadCategory() tea.Cmd {
	m.browseSeq = m.nextSeq()
	m.Loading = true
	return tea.Batch(
		LoadCategoryCmd(m.Catalog, m.latest, m.browseSeq, m.Category(), m.Policy),
		m.Spinner.Tick,
	)
}

func (m *Model) runSearch(query string) tea.Cmd {
	m.searchSeq = m.nextSeq()
	m.Loading = true
	return tea.Batch(
		SearchCmd(m.Catalog, m.latest, m.searchSeq, query),
		m.Spinner.Tick,
	)
}

func (m *Model) openDetails(item domain.CatalogItem) tea.Cmd {
	if m.Screen != ScreenDetail {
		m.prevScreen = m.Screen
	}
	m.Screen = ScreenDetail
	m.Detail.SetDetails(&domain.ItemDetails{Item: item})
	m.detailsSeq = m.nextSeq()
	m.Loading = true
	return tea.Batch(
		LoadDetailsCmd(m.Details, m.latest, m.detailsSeq, item),
		m.Spinner.Tick,
	)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

func (m *Model) updateLayout() {
	bodyHeight := max(m.Height-HeaderHeight-FooterHeight, 1)
	m.Browse.SetSize(m.Width, bodyHeight)
	m.Results.SetSize(m.Width, bodyHeight)
	m.Watchlist.SetSize(m.Width, bodyHeight)
	m.Detail.SetSize(m.Width, bodyHeight)
	m.SearchInput.Width = max(m.Width-12, 10)
	m.Help.Width = m.Width
}
