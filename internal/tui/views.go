package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	body := m.renderBody()
	bodyHeight := max(m.Height-HeaderHeight-FooterHeight, 1)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	var line string
	switch m.Screen {
	case ScreenBrowse:
		line = m.renderTabs()
	case ScreenSearch:
		line = m.SearchInput.View()
	case ScreenWatchlist:
		line = styles.TitleStyle.Render(fmt.Sprintf("Watchlist (%d)", len(m.Watchlist.Items())))
	case ScreenDetail:
		title := "Details"
		if d := m.Detail.Details(); d != nil {
			title = d.Item.DisplayTitle()
		}
		line = styles.TitleStyle.Render(title)
	}

	if m.Loading {
		line += " " + m.Spinner.View()
	}
	return line + "\n"
}

// renderTabs renders the category bar, scrolled so the active tab is visible
func (m Model) renderTabs() string {
	tabs := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		if i == m.categoryIdx {
			tabs[i] = styles.ActiveTabStyle.Render(c.String())
		} else {
			tabs[i] = styles.TabStyle.Render(c.String())
		}
	}

	start := 0
	for start < m.categoryIdx && lipgloss.Width(strings.Join(tabs[start:m.categoryIdx+1], "")) > m.Width-4 {
		start++
	}
	bar := strings.Join(tabs[start:], "")
	if start > 0 {
		bar = styles.DimStyle.Render("‹ ") + bar
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(bar)
}

func (m Model) renderBody() string {
	if m.Screen == ScreenDetail {
		return m.Detail.View()
	}
	return m.activeListView()
}

func (m Model) activeListView() string {
	switch m.Screen {
	case ScreenSearch:
		if m.LastQuery == "" && len(m.Results.Items()) == 0 {
			return styles.DimStyle.Render("  Type a title and press enter")
		}
		return m.Results.View()
	case ScreenWatchlist:
		return m.Watchlist.View()
	default:
		return m.Browse.View()
	}
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	left := m.Help.View(Keys)
	if m.Screen == ScreenBrowse {
		right := styles.DimBadgeStyle.Render("sort: " + m.Policy.String())
		gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap > 0 {
			return left + strings.Repeat(" ", gap) + right
		}
	}
	return left
}

func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	legend := strings.Join([]string{
		styles.WatchlistBadge + " watchlist",
		styles.LikedBadge + " liked",
		styles.DislikedBadge + " disliked",
		styles.WatchedBadge + " watched",
	}, "   ")

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Keyboard Shortcuts"),
		"",
		h.View(Keys),
		"",
		legend,
		"",
		styles.DimStyle.Render("Press ? or esc to close"),
	)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 2).Render(content))
}
