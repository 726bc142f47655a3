package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

type fakeCatalog struct {
	items       []domain.CatalogItem
	invalidated int
	waitForCtx  bool
}

func (f *fakeCatalog) Aggregate(ctx context.Context, category domain.Category, policy domain.SortPolicy) ([]domain.CatalogItem, error) {
	if f.waitForCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.items, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	return catalog.FilterByTitle(f.items, query), nil
}

func (f *fakeCatalog) Invalidate() { f.invalidated++ }

type fakeDetails struct{}

func (fakeDetails) Details(ctx context.Context, item domain.CatalogItem) (*domain.ItemDetails, error) {
	return &domain.ItemDetails{
		Item:    item,
		Trailer: &domain.Video{Key: "abc", Site: "YouTube", Type: "Trailer"},
	}, nil
}

type fakeLauncher struct{ urls []string }

func (f *fakeLauncher) Launch(url string) error {
	f.urls = append(f.urls, url)
	return nil
}

var testItems = []domain.CatalogItem{
	{ID: 1, Title: "Alien", Popularity: 10},
	{ID: 2, Title: "Heat", Popularity: 30},
	{ID: 3, Title: "Aliens", Popularity: 20},
}

func newTestModel(t *testing.T) (Model, *fakeCatalog, *fakeLauncher) {
	t.Helper()
	cat := &fakeCatalog{items: testItems}
	launcher := &fakeLauncher{}
	prefs := store.NewPreferences(store.NewMemoryStorage(), nil)

	m := NewModel(cat, fakeDetails{}, launcher, prefs, Options{Category: domain.AllMovies}, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Browse.SetItems(append([]domain.CatalogItem(nil), testItems...))
	return m, cat, launcher
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestStaleCategoryResultIsDropped(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	stale := m.browseSeq
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotEqual(t, stale, m.browseSeq)
	assert.Equal(t, domain.Categories[2], m.Category())

	m = update(t, m, CategoryLoadedMsg{Seq: stale, Items: []domain.CatalogItem{{ID: 99, Title: "Old"}}})
	assert.True(t, m.Loading)
	assert.Len(t, m.Browse.Items(), 3)

	m = update(t, m, CategoryLoadedMsg{Seq: m.browseSeq, Category: m.Category(), Items: []domain.CatalogItem{{ID: 42, Title: "New"}}})
	assert.False(t, m.Loading)
	require.Len(t, m.Browse.Items(), 1)
	assert.Equal(t, 42, m.Browse.Items()[0].ID)
}

func TestNewLoadCancelsSupersededCommand(t *testing.T) {
	cat := &fakeCatalog{waitForCtx: true}
	latest := catalog.NewLatest()

	first := LoadCategoryCmd(cat, latest, 1, domain.PopularMovies, domain.SortByTitle)
	_ = LoadCategoryCmd(cat, latest, 2, domain.TopRatedMovies, domain.SortByTitle)

	assert.IsType(t, cancelledMsg{}, first())
}

func TestLoadCategoryCmdReturnsItems(t *testing.T) {
	cat := &fakeCatalog{items: testItems}
	msg := LoadCategoryCmd(cat, catalog.NewLatest(), 7, domain.AllTV, domain.SortByTitle)()

	loaded, ok := msg.(CategoryLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(7), loaded.Seq)
	assert.Equal(t, domain.AllTV, loaded.Category)
	assert.Len(t, loaded.Items, 3)
}

func TestWatchlistToggleAndScreen(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "w")
	assert.True(t, m.Prefs.IsInWatchlist(testItems[0]))

	m = press(t, m, "W")
	assert.Equal(t, ScreenWatchlist, m.Screen)
	require.Len(t, m.Watchlist.Items(), 1)

	m = press(t, m, "w")
	assert.False(t, m.Prefs.IsInWatchlist(testItems[0]))
	assert.Empty(t, m.Watchlist.Items())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenBrowse, m.Screen)
}

func TestLikeDislikeKeys(t *testing.T) {
	m, _, _ := newTestModel(t)
	alien := testItems[0]

	m = press(t, m, "l")
	assert.True(t, m.Prefs.IsLiked(alien))

	m = press(t, m, "d")
	assert.False(t, m.Prefs.IsLiked(alien))
	assert.True(t, m.Prefs.IsDisliked(alien))

	m = press(t, m, "xx")
	assert.False(t, m.Prefs.IsWatched(alien))
	assert.NotEmpty(t, m.StatusMsg)
}

func TestSortToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Browse.Sort(domain.SortByTitle)
	assert.Equal(t, []int{1, 3, 2}, itemIDs(m.Browse.Items()))

	m = press(t, m, "s")
	assert.Equal(t, domain.SortByPopularity, m.Policy)
	assert.Equal(t, []int{2, 3, 1}, itemIDs(m.Browse.Items()))

	m = press(t, m, "s")
	assert.Equal(t, domain.SortByTitle, m.Policy)
}

func TestLocalFilter(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "/ali")
	assert.True(t, m.Browse.FilterFocused())
	assert.Equal(t, 2, m.Browse.Len())

	// Keys typed into the filter must not toggle preferences
	m = press(t, m, "w")
	assert.False(t, m.Prefs.IsInWatchlist(testItems[0]))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Browse.IsFiltering())
	assert.Equal(t, 3, m.Browse.Len())
}

func TestDetailsAndTrailer(t *testing.T) {
	m, _, launcher := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ScreenDetail, m.Screen)
	assert.True(t, m.Loading)

	details, _ := fakeDetails{}.Details(context.Background(), testItems[0])
	m = update(t, m, DetailsLoadedMsg{Seq: m.detailsSeq, Details: details})
	assert.False(t, m.Loading)

	m = press(t, m, "l")
	assert.True(t, m.Prefs.IsLiked(testItems[0]))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	require.NotNil(t, cmd)
	assert.IsType(t, TrailerLaunchedMsg{}, cmd())
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=abc"}, launcher.urls)

	m = update(t, next.(Model), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenBrowse, m.Screen)
}

func TestSearchFlow(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "S")
	require.Equal(t, ScreenSearch, m.Screen)
	require.True(t, m.SearchInput.Focused())

	m = press(t, m, "heat")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)

	msg := SearchCmd(m.Catalog, catalog.NewLatest(), m.searchSeq, "heat")()
	m = update(t, m, msg)
	assert.Equal(t, "heat", m.LastQuery)
	assert.Equal(t, []int{2}, itemIDs(m.Results.Items()))
}

func TestRefreshInvalidates(t *testing.T) {
	m, cat, _ := newTestModel(t)
	m = press(t, m, "r")
	assert.Equal(t, 1, cat.invalidated)
	assert.True(t, m.Loading)
}

func itemIDs(items []domain.CatalogItem) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
