package store

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/mmcdole/marquee/internal/domain"
)

// Preferences implements domain.PreferenceStore on top of a SlotStorage.
// Memory is authoritative: every mutation is written through to storage and
// write failures are logged and otherwise ignored.
type Preferences struct {
	mu      sync.Mutex
	storage SlotStorage
	logger  *slog.Logger

	watchlist map[int]domain.CatalogItem
	order     []int // Watchlist insertion order
	liked     map[int]struct{}
	disliked  map[int]struct{}
	watched   map[int]struct{}
}

var _ domain.PreferenceStore = (*Preferences)(nil)

// NewPreferences loads every slot from storage. A slot that is missing or
// fails to decode starts empty without affecting the others.
func NewPreferences(storage SlotStorage, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Preferences{
		storage:   storage,
		logger:    logger,
		watchlist: make(map[int]domain.CatalogItem),
		liked:     make(map[int]struct{}),
		disliked:  make(map[int]struct{}),
		watched:   make(map[int]struct{}),
	}

	var items []domain.CatalogItem
	if p.load(SlotWatchlist, &items) {
		for _, item := range items {
			if _, ok := p.watchlist[item.ID]; !ok {
				p.order = append(p.order, item.ID)
			}
			p.watchlist[item.ID] = item
		}
	}
	p.loadIDs(SlotLiked, p.liked)
	p.loadIDs(SlotDisliked, p.disliked)
	p.loadIDs(SlotWatched, p.watched)

	// A hand-edited store could violate like/dislike exclusion; like wins
	for id := range p.liked {
		delete(p.disliked, id)
	}

	p.logger.Debug("preferences loaded",
		"watchlist", len(p.watchlist), "liked", len(p.liked),
		"disliked", len(p.disliked), "watched", len(p.watched))
	return p
}

// load decodes one slot into dest and reports whether it held valid data
func (p *Preferences) load(slot string, dest interface{}) bool {
	data, err := p.storage.Load(slot)
	if err != nil {
		p.logger.Warn("failed to read preference slot", "slot", slot, "error", err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		p.logger.Warn("discarding malformed preference slot", "slot", slot, "error", err)
		return false
	}
	return true
}

func (p *Preferences) loadIDs(slot string, dest map[int]struct{}) {
	var ids []int
	if !p.load(slot, &ids) {
		return
	}
	for _, id := range ids {
		dest[id] = struct{}{}
	}
}

// === Watchlist ===

func (p *Preferences) AddToWatchlist(item domain.CatalogItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.watchlist[item.ID]; !ok {
		p.order = append(p.order, item.ID)
	}
	p.watchlist[item.ID] = item
	p.saveWatchlist()
}

func (p *Preferences) RemoveFromWatchlist(item domain.CatalogItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.watchlist[item.ID]; !ok {
		return
	}
	delete(p.watchlist, item.ID)
	for i, id := range p.order {
		if id == item.ID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.saveWatchlist()
}

func (p *Preferences) IsInWatchlist(item domain.CatalogItem) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.watchlist[item.ID]
	return ok
}

// Watchlist returns the watchlisted items in the order they were added
func (p *Preferences) Watchlist() []domain.CatalogItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.watchlistItems()
}

func (p *Preferences) watchlistItems() []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(p.order))
	for _, id := range p.order {
		items = append(items, p.watchlist[id])
	}
	return items
}

// === Like / Dislike ===

func (p *Preferences) ToggleLike(item domain.CatalogItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toggleExclusive(item.ID, p.liked, p.disliked)
}

func (p *Preferences) ToggleDislike(item domain.CatalogItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toggleExclusive(item.ID, p.disliked, p.liked)
}

// toggleExclusive flips id in set and, when setting it, clears it from other
func (p *Preferences) toggleExclusive(id int, set, other map[int]struct{}) {
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
		delete(other, id)
	}
	p.saveIDs(SlotLiked, p.liked)
	p.saveIDs(SlotDisliked, p.disliked)
}

func (p *Preferences) IsLiked(item domain.CatalogItem) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.liked[item.ID]
	return ok
}

func (p *Preferences) IsDisliked(item domain.CatalogItem) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.disliked[item.ID]
	return ok
}

// === Watched ===

func (p *Preferences) ToggleWatched(item domain.CatalogItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.watched[item.ID]; ok {
		delete(p.watched, item.ID)
	} else {
		p.watched[item.ID] = struct{}{}
	}
	p.saveIDs(SlotWatched, p.watched)
}

func (p *Preferences) IsWatched(item domain.CatalogItem) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.watched[item.ID]
	return ok
}

// Preference returns every facet for id in one locked read
func (p *Preferences) Preference(id int) domain.Preference {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, inWatchlist := p.watchlist[id]
	_, liked := p.liked[id]
	_, disliked := p.disliked[id]
	_, watched := p.watched[id]
	return domain.Preference{
		ItemID:      id,
		InWatchlist: inWatchlist,
		Liked:       liked,
		Disliked:    disliked,
		Watched:     watched,
	}
}

func (p *Preferences) Close() error {
	return p.storage.Close()
}

// === Persistence ===

func (p *Preferences) saveWatchlist() {
	p.save(SlotWatchlist, p.watchlistItems())
}

func (p *Preferences) saveIDs(slot string, set map[int]struct{}) {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	p.save(slot, ids)
}

func (p *Preferences) save(slot string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("failed to encode preference slot", "slot", slot, "error", err)
		return
	}
	if err := p.storage.Save(slot, data); err != nil {
		p.logger.Warn("failed to persist preference slot", "slot", slot, "error", err)
	}
}
