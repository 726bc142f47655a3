package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	maxCast    = 10
	maxSimilar = 8
)

// DetailView shows one item's details in a scrollable viewport
type DetailView struct {
	viewport viewport.Model
	details  *domain.ItemDetails
	prefs    PreferenceReader
	width    int
	height   int
}

// NewDetailView creates an empty detail view
func NewDetailView(prefs PreferenceReader) DetailView {
	return DetailView{
		viewport: viewport.New(0, 0),
		prefs:    prefs,
	}
}

// SetDetails shows details and scrolls to the top
func (d *DetailView) SetDetails(details *domain.ItemDetails) {
	d.details = details
	d.Refresh()
	d.viewport.GotoTop()
}

// Details returns what is currently shown
func (d *DetailView) Details() *domain.ItemDetails {
	return d.details
}

// Refresh re-renders the content, e.g. after a preference change
func (d *DetailView) Refresh() {
	if d.details == nil {
		d.viewport.SetContent("")
		return
	}
	var pref domain.Preference
	if d.prefs != nil {
		pref = d.prefs.Preference(d.details.Item.ID)
	}
	d.viewport.SetContent(RenderDetails(d.details, pref, d.width))
}

// SetSize sets the view dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = height
	d.Refresh()
}

// Update scrolls the viewport
func (d *DetailView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the detail view
func (d DetailView) View() string {
	return d.viewport.View()
}

// RenderDetails formats an item's details as wrapped text
func RenderDetails(details *domain.ItemDetails, pref domain.Preference, width int) string {
	item := details.Item
	wrap := lipgloss.NewStyle().Width(max(width-2, 20))

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(item.DisplayTitle()))
	if year := item.Year(); year > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" (%d)", year)))
	}
	b.WriteString("\n")

	var meta []string
	if date := item.FormattedDate(); date != "" {
		meta = append(meta, date)
	}
	if runtime := item.FormattedRuntime(); runtime != "" {
		meta = append(meta, runtime)
	}
	if seasons := item.FormattedSeasonsEpisodes(); seasons != "" {
		meta = append(meta, seasons)
	}
	meta = append(meta, item.GenreText())
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " • ")))
	b.WriteString("\n")
	b.WriteString(styles.RenderRating(item.Rating()))
	b.WriteString("  ")
	b.WriteString(preferenceLine(pref))
	b.WriteString("\n\n")

	if item.Overview != "" {
		b.WriteString(wrap.Render(item.Overview))
		b.WriteString("\n\n")
	}

	if len(details.Providers) > 0 {
		names := make([]string, len(details.Providers))
		for i, p := range details.Providers {
			names[i] = p.Name
		}
		b.WriteString(section("Streaming on"))
		b.WriteString(wrap.Render(strings.Join(names, ", ")))
		b.WriteString("\n\n")
	}

	if len(details.Cast) > 0 {
		b.WriteString(section("Cast"))
		for i, c := range details.Cast {
			if i == maxCast {
				b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  and %d more", len(details.Cast)-maxCast)))
				b.WriteString("\n")
				break
			}
			b.WriteString("  " + c.Name + "\n")
		}
		b.WriteString("\n")
	}

	if len(details.Similar) > 0 {
		b.WriteString(section("Similar"))
		for i, s := range details.Similar {
			if i == maxSimilar {
				break
			}
			b.WriteString("  " + s.DisplayTitle() + "\n")
		}
		b.WriteString("\n")
	}

	if details.Trailer != nil {
		b.WriteString(styles.DimStyle.Render("Press o to watch the trailer"))
		b.WriteString("\n")
	}

	b.WriteString(styles.DimStyle.Render("Poster: " + item.PosterURL()))
	b.WriteString("\n")
	if backdrop := item.BackdropURL(); backdrop != "" {
		b.WriteString(styles.DimStyle.Render("Backdrop: " + backdrop))
		b.WriteString("\n")
	}

	return b.String()
}

func section(title string) string {
	return styles.AccentStyle.Render(title) + "\n"
}

func preferenceLine(p domain.Preference) string {
	var parts []string
	if p.InWatchlist {
		parts = append(parts, styles.WatchlistBadge+" watchlist")
	}
	if p.Liked {
		parts = append(parts, styles.LikedBadge+" liked")
	}
	if p.Disliked {
		parts = append(parts, styles.DislikedBadge+" disliked")
	}
	if p.Watched {
		parts = append(parts, styles.WatchedBadge+" watched")
	}
	return strings.Join(parts, "  ")
}
