package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
)

// Command factories for async operations.
// Each load registers with a catalog.Latest when the command is created, so
// issuing a new load cancels the one it replaces before it even runs.

const (
	loadTimeout    = 60 * time.Second
	detailsTimeout = 30 * time.Second

	keyBrowse  = "browse"
	keySearch  = "search"
	keyDetails = "details"
)

// LoadCategoryCmd aggregates a category
func LoadCategoryCmd(svc CatalogService, latest *catalog.Latest, seq uint64, category domain.Category, policy domain.SortPolicy) tea.Cmd {
	ctx, done := latest.Begin(context.Background(), keyBrowse)
	return func() tea.Msg {
		defer done()
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()

		items, err := svc.Aggregate(ctx, category, policy)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return cancelledMsg{}
			}
			return ErrMsg{Err: err, Context: "loading " + category.String()}
		}
		return CategoryLoadedMsg{Seq: seq, Category: category, Items: items}
	}
}

// SearchCmd runs a catalog search
func SearchCmd(svc CatalogService, latest *catalog.Latest, seq uint64, query string) tea.Cmd {
	ctx, done := latest.Begin(context.Background(), keySearch)
	return func() tea.Msg {
		defer done()
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()

		results, err := svc.Search(ctx, query)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return cancelledMsg{}
			}
			return ErrMsg{Err: err, Context: "searching"}
		}
		return SearchResultsMsg{Seq: seq, Query: query, Results: results}
	}
}

// LoadDetailsCmd loads the detail view of an item
func LoadDetailsCmd(svc DetailsService, latest *catalog.Latest, seq uint64, item domain.CatalogItem) tea.Cmd {
	ctx, done := latest.Begin(context.Background(), keyDetails)
	return func() tea.Msg {
		defer done()
		ctx, cancel := context.WithTimeout(ctx, detailsTimeout)
		defer cancel()

		details, err := svc.Details(ctx, item)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return cancelledMsg{}
			}
			return ErrMsg{Err: err, Context: "loading details"}
		}
		return DetailsLoadedMsg{Seq: seq, Details: details}
	}
}

// LaunchTrailerCmd opens a trailer in the external player
func LaunchTrailerCmd(launcher TrailerLauncher, trailer domain.Video, title string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Launch(trailer.WatchURL()); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerLaunchedMsg{Title: title}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
