package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for item lists
const (
	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Rating + badge columns on the right of each row
	rowMetaWidth = 14
)

// PreferenceReader is the read side of the preference store the list needs
// to decorate rows
type PreferenceReader interface {
	Preference(id int) domain.Preference
}

// ItemList is a scrollable, filterable list of catalog items
type ItemList struct {
	items []domain.CatalogItem
	prefs PreferenceReader

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	// Message shown when there is nothing to list
	emptyText string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewItemList creates an empty list
func NewItemList(prefs PreferenceReader, emptyText string) *ItemList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ItemList{
		prefs:       prefs,
		emptyText:   emptyText,
		filterInput: ti,
	}
}

// SetItems replaces the list contents, keeping the active filter
func (l *ItemList) SetItems(items []domain.CatalogItem) {
	l.items = items
	if l.filterQuery != "" {
		l.applyFilter()
	}
	l.clampCursor()
}

// Items returns the unfiltered contents
func (l *ItemList) Items() []domain.CatalogItem {
	return l.items
}

// Sort reorders the contents by policy
func (l *ItemList) Sort(policy domain.SortPolicy) {
	var selectedID int
	sel, ok := l.Selected()
	if ok {
		selectedID = sel.ID
	}

	sorted := append([]domain.CatalogItem(nil), l.items...)
	catalog.SortItems(sorted, policy)
	l.SetItems(sorted)

	// Keep the cursor on the same item
	if ok {
		for i := 0; i < l.Len(); i++ {
			if l.at(i).ID == selectedID {
				l.cursor = i
				l.adjustOffset()
				break
			}
		}
	}
}

// SetSize sets the list dimensions
func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.filterInput.Width = max(width-4, 10)
	l.recalcMaxVisible()
}

func (l *ItemList) recalcMaxVisible() {
	h := l.height - ScrollIndicatorLines
	if l.filterActive {
		h--
	}
	l.maxVisible = max(h, 1)
	l.adjustOffset()
}

// Len returns the number of visible (post-filter) rows
func (l *ItemList) Len() int {
	if l.filterQuery != "" {
		return len(l.filteredIdx)
	}
	return len(l.items)
}

func (l *ItemList) at(i int) domain.CatalogItem {
	if l.filterQuery != "" {
		return l.items[l.filteredIdx[i]]
	}
	return l.items[i]
}

// Selected returns the item under the cursor
func (l *ItemList) Selected() (domain.CatalogItem, bool) {
	if l.cursor < 0 || l.cursor >= l.Len() {
		return domain.CatalogItem{}, false
	}
	return l.at(l.cursor), true
}

// Cursor returns the cursor position among visible rows
func (l *ItemList) Cursor() int {
	return l.cursor
}

// === Movement ===

func (l *ItemList) MoveUp() { l.moveBy(-1) }
func (l *ItemList) MoveDown() { l.moveBy(1) }
func (l *ItemList) PageUp() { l.moveBy(-l.maxVisible) }
func (l *ItemList) PageDown() { l.moveBy(l.maxVisible) }
func (l *ItemList) Home() { l.moveBy(-l.Len()) }
func (l *ItemList) End() { l.moveBy(l.Len()) }

func (l *ItemList) moveBy(delta int) {
	l.cursor += delta
	l.clampCursor()
}

func (l *ItemList) clampCursor() {
	if l.cursor >= l.Len() {
		l.cursor = l.Len() - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.adjustOffset()
}

func (l *ItemList) adjustOffset() {
	// Don't adjust offset if size hasn't been set yet
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// === Filter ===

// StartFilter opens the filter input
func (l *ItemList) StartFilter() tea.Cmd {
	l.filterActive = true
	l.recalcMaxVisible()
	return l.filterInput.Focus()
}

// IsFiltering reports whether a filter is shown
func (l *ItemList) IsFiltering() bool {
	return l.filterActive
}

// FilterFocused reports whether keystrokes go to the filter input
func (l *ItemList) FilterFocused() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter removes the filter and shows every item again
func (l *ItemList) ClearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

// Update handles typing while the filter input is focused
func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	if !l.FilterFocused() {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			l.ClearFilter()
			return nil
		case "enter":
			// Accept filter, blur input to allow navigation
			l.filterInput.Blur()
			if l.filterInput.Value() == "" {
				l.ClearFilter()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	l.filterInput, cmd = l.filterInput.Update(msg)
	if l.filterInput.Value() != l.filterQuery {
		l.applyFilter()
	}
	return cmd
}

func (l *ItemList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(l.items))
	for i, item := range l.items {
		lowerTitles[i] = strings.ToLower(item.DisplayTitle())
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

// === Rendering ===

// View renders the list
func (l *ItemList) View() string {
	var b strings.Builder

	if l.filterActive {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	if l.Len() == 0 {
		text := l.emptyText
		if l.filterQuery != "" {
			text = fmt.Sprintf("No matches for %q", l.filterQuery)
		}
		b.WriteString(styles.DimStyle.Render("  " + text))
		return b.String()
	}

	if l.offset > 0 {
		b.WriteString(styles.DimStyle.Render("  ↑ more"))
	}
	b.WriteString("\n")

	end := min(l.offset+l.maxVisible, l.Len())
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(l.at(i), i == l.cursor))
		b.WriteString("\n")
	}

	if end < l.Len() {
		b.WriteString(styles.DimStyle.Render("  ↓ more"))
	}
	return b.String()
}

func (l *ItemList) renderRow(item domain.CatalogItem, selected bool) string {
	title := item.DisplayTitle()
	if year := item.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	titleWidth := max(l.width-rowMetaWidth-4, 10)
	if item.MediaType() == domain.MediaTypeShow {
		titleWidth -= 3
		title = styles.Truncate(title, titleWidth) + " " + styles.DimStyle.Render("TV")
		title = styles.Pad(title, titleWidth+3)
	} else {
		title = styles.Pad(styles.Truncate(title, titleWidth), titleWidth)
	}

	var pref domain.Preference
	if l.prefs != nil {
		pref = l.prefs.Preference(item.ID)
	}
	row := title + " " + styles.RenderRating(item.Rating()) + "  " + Badges(pref)

	if selected {
		return styles.SelectedItemStyle.Render("▸ " + row)
	}
	return styles.NormalItemStyle.Render("  " + row)
}

// Badges renders the preference markers of an item in fixed slots so
// columns line up across rows
func Badges(p domain.Preference) string {
	slot := func(on bool, badge string) string {
		if on {
			return badge
		}
		return " "
	}

	opinion := " "
	switch {
	case p.Liked:
		opinion = styles.LikedBadge
	case p.Disliked:
		opinion = styles.DislikedBadge
	}

	return slot(p.InWatchlist, styles.WatchlistBadge) + opinion + slot(p.Watched, styles.WatchedBadge)
}
