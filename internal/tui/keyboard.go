package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay swallows everything but its close keys
	if m.ShowHelp {
		if key.Matches(msg, Keys.Help, Keys.Back, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Route typing to the focused text input
	if m.Screen == ScreenSearch && m.SearchInput.Focused() {
		return m.handleSearchInput(msg)
	}
	if l := m.activeList(); l != nil && l.FilterFocused() {
		return m, l.Update(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Watchlist):
		return m, m.togglePreference(prefWatchlist)
	case key.Matches(msg, Keys.Like):
		return m, m.togglePreference(prefLike)
	case key.Matches(msg, Keys.Dislike):
		return m, m.togglePreference(prefDislike)
	case key.Matches(msg, Keys.ToggleWatch):
		return m, m.togglePreference(prefWatched)

	case key.Matches(msg, Keys.MyList):
		m.Screen = ScreenWatchlist
		m.Watchlist.SetItems(m.Prefs.Watchlist())
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Screen = ScreenSearch
		m.SearchInput.SetValue(m.LastQuery)
		m.SearchInput.CursorEnd()
		return m, m.SearchInput.Focus()
	}

	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey handles keys on the browse, search and watchlist screens
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()

	switch {
	case key.Matches(msg, Keys.Up):
		list.MoveUp()
	case key.Matches(msg, Keys.Down):
		list.MoveDown()
	case key.Matches(msg, Keys.PageUp):
		list.PageUp()
	case key.Matches(msg, Keys.PageDown):
		list.PageDown()
	case key.Matches(msg, Keys.Home):
		list.Home()
	case key.Matches(msg, Keys.End):
		list.End()

	case key.Matches(msg, Keys.Filter):
		return m, list.StartFilter()

	case key.Matches(msg, Keys.Enter):
		if item, ok := list.Selected(); ok {
			return m, m.openDetails(item)
		}

	case key.Matches(msg, Keys.Back):
		if list.IsFiltering() {
			list.ClearFilter()
			return m, nil
		}
		if m.Screen != ScreenBrowse {
			m.Screen = ScreenBrowse
		}

	case key.Matches(msg, Keys.Sort):
		if m.Screen == ScreenBrowse {
			if m.Policy == domain.SortByTitle {
				m.Policy = domain.SortByPopularity
			} else {
				m.Policy = domain.SortByTitle
			}
			m.Browse.Sort(m.Policy)
			return m, m.setStatus("Sorted by "+m.Policy.String(), false)
		}

	case key.Matches(msg, Keys.NextTab):
		if m.Screen == ScreenBrowse {
			m.categoryIdx = (m.categoryIdx + 1) % len(domain.Categories)
			m.Browse.ClearFilter()
			return m, m.loadCategory()
		}

	case key.Matches(msg, Keys.PrevTab):
		if m.Screen == ScreenBrowse {
			m.categoryIdx = (m.categoryIdx - 1 + len(domain.Categories)) % len(domain.Categories)
			m.Browse.ClearFilter()
			return m, m.loadCategory()
		}

	case key.Matches(msg, Keys.Refresh):
		switch m.Screen {
		case ScreenBrowse:
			m.Catalog.Invalidate()
			return m, m.loadCategory()
		case ScreenSearch:
			if m.LastQuery != "" {
				return m, m.runSearch(m.LastQuery)
			}
		case ScreenWatchlist:
			m.Watchlist.SetItems(m.Prefs.Watchlist())
		}
	}

	return m, nil
}

// handleDetailKey handles keys on the detail screen
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.Screen = m.prevScreen
		m.Loading = false
		if m.Screen == ScreenWatchlist {
			m.Watchlist.SetItems(m.Prefs.Watchlist())
		}
		return m, nil

	case key.Matches(msg, Keys.OpenTrailer):
		d := m.Detail.Details()
		if d == nil || d.Trailer == nil {
			return m, m.setStatus("No trailer available", true)
		}
		return m, LaunchTrailerCmd(m.Launcher, *d.Trailer, d.Item.DisplayTitle())

	case key.Matches(msg, Keys.Refresh):
		if d := m.Detail.Details(); d != nil {
			return m, m.openDetails(d.Item)
		}
		return m, nil
	}

	return m, m.Detail.Update(msg)
}

// handleSearchInput handles typing in the search box
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.SearchInput.Blur()
		if m.LastQuery == "" && len(m.Results.Items()) == 0 {
			m.Screen = ScreenBrowse
		}
		return m, nil
	case "enter":
		m.SearchInput.Blur()
		return m, m.runSearch(m.SearchInput.Value())
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

type preferenceKind int

const (
	prefWatchlist preferenceKind = iota
	prefLike
	prefDislike
	prefWatched
)

// togglePreference flips one facet of the current item
func (m *Model) togglePreference(kind preferenceKind) tea.Cmd {
	item, ok := m.currentItem()
	if !ok {
		return nil
	}
	title := item.DisplayTitle()

	var status string
	switch kind {
	case prefWatchlist:
		if m.Prefs.IsInWatchlist(item) {
			m.Prefs.RemoveFromWatchlist(item)
			status = "Removed " + title + " from watchlist"
		} else {
			m.Prefs.AddToWatchlist(item)
			status = "Added " + title + " to watchlist"
		}
		if m.Screen == ScreenWatchlist {
			m.Watchlist.SetItems(m.Prefs.Watchlist())
		}
	case prefLike:
		m.Prefs.ToggleLike(item)
		status = "Liked " + title
		if !m.Prefs.IsLiked(item) {
			status = "Cleared like on " + title
		}
	case prefDislike:
		m.Prefs.ToggleDislike(item)
		status = "Disliked " + title
		if !m.Prefs.IsDisliked(item) {
			status = "Cleared dislike on " + title
		}
	case prefWatched:
		m.Prefs.ToggleWatched(item)
		status = "Marked " + title + " as watched"
		if !m.Prefs.IsWatched(item) {
			status = "Marked " + title + " as unwatched"
		}
	}

	if m.Screen == ScreenDetail {
		m.Detail.Refresh()
	}
	return m.setStatus(status, false)
}
