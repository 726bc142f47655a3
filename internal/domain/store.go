package domain

// PreferenceStore tracks the user's watchlist, likes, dislikes and watched
// flags. Screens read it to decorate items and mutate it on key presses.
type PreferenceStore interface {
	// === Watchlist ===
	AddToWatchlist(item CatalogItem)
	RemoveFromWatchlist(item CatalogItem)
	IsInWatchlist(item CatalogItem) bool
	Watchlist() []CatalogItem

	// === Like / Dislike (mutually exclusive) ===
	ToggleLike(item CatalogItem)
	ToggleDislike(item CatalogItem)
	IsLiked(item CatalogItem) bool
	IsDisliked(item CatalogItem) bool

	// === Watched ===
	ToggleWatched(item CatalogItem)
	IsWatched(item CatalogItem) bool

	// Preference returns all facets for one item
	Preference(id int) Preference

	Close() error
}
