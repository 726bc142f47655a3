package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CategoryLoadedMsg carries an aggregated category. Seq identifies the
// request so results of superseded loads can be dropped.
type CategoryLoadedMsg struct {
	Seq      uint64
	Category domain.Category
	Items    []domain.CatalogItem
}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Seq     uint64
	Query   string
	Results []domain.CatalogItem
}

// DetailsLoadedMsg carries the detail view of one item
type DetailsLoadedMsg struct {
	Seq     uint64
	Details *domain.ItemDetails
}

// TrailerLaunchedMsg signals that the external player was started
type TrailerLaunchedMsg struct {
	Title string
}

// ClearStatusMsg clears the status bar
type ClearStatusMsg struct{}

// cancelledMsg is returned by a load whose context was superseded
type cancelledMsg struct{}
