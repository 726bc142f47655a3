package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func item(id int) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Title: "Item"}
}

// failingStorage loads from a fixed table and rejects every save
type failingStorage struct {
	slots map[string][]byte
	saves int
}

func (f *failingStorage) Load(slot string) ([]byte, error) { return f.slots[slot], nil }
func (f *failingStorage) Close() error                     { return nil }
func (f *failingStorage) Save(slot string, data []byte) error {
	f.saves++
	return errors.New("disk full")
}

func TestLikeDislikeMutualExclusion(t *testing.T) {
	p := NewPreferences(NewMemoryStorage(), nil)
	seven := item(7)

	p.ToggleLike(seven)
	assert.True(t, p.IsLiked(seven))
	assert.False(t, p.IsDisliked(seven))

	p.ToggleDislike(seven)
	assert.False(t, p.IsLiked(seven))
	assert.True(t, p.IsDisliked(seven))

	p.ToggleLike(seven)
	assert.True(t, p.IsLiked(seven))
	assert.False(t, p.IsDisliked(seven))

	p.ToggleLike(seven)
	assert.False(t, p.IsLiked(seven))
	assert.False(t, p.IsDisliked(seven))
}

func TestWatchlistIdempotence(t *testing.T) {
	p := NewPreferences(NewMemoryStorage(), nil)

	p.AddToWatchlist(item(1))
	p.AddToWatchlist(item(1))
	p.AddToWatchlist(item(2))
	assert.Len(t, p.Watchlist(), 2)
	assert.True(t, p.IsInWatchlist(item(1)))

	p.RemoveFromWatchlist(item(1))
	p.RemoveFromWatchlist(item(1))
	p.RemoveFromWatchlist(item(99))
	assert.False(t, p.IsInWatchlist(item(1)))
	assert.Equal(t, []domain.CatalogItem{item(2)}, p.Watchlist())
}

func TestWatchlistKeepsInsertionOrderAndLatestRecord(t *testing.T) {
	p := NewPreferences(NewMemoryStorage(), nil)

	p.AddToWatchlist(domain.CatalogItem{ID: 3, Title: "C"})
	p.AddToWatchlist(domain.CatalogItem{ID: 1, Title: "A"})
	p.AddToWatchlist(domain.CatalogItem{ID: 3, Title: "C (richer)", Runtime: 120})

	list := p.Watchlist()
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].ID)
	assert.Equal(t, "C (richer)", list[0].Title)
	assert.Equal(t, 1, list[1].ID)
}

func TestToggleWatchedTwiceRestores(t *testing.T) {
	p := NewPreferences(NewMemoryStorage(), nil)
	p.ToggleLike(item(4))

	before := p.Preference(4)
	p.ToggleWatched(item(4))
	assert.True(t, p.IsWatched(item(4)))
	p.ToggleWatched(item(4))
	assert.Equal(t, before, p.Preference(4))
}

func TestFacetsAreIndependent(t *testing.T) {
	p := NewPreferences(NewMemoryStorage(), nil)
	x := item(5)

	p.AddToWatchlist(x)
	p.ToggleDislike(x)
	p.ToggleWatched(x)
	p.RemoveFromWatchlist(x)

	assert.Equal(t, domain.Preference{ItemID: 5, Disliked: true, Watched: true}, p.Preference(5))
	assert.Equal(t, domain.Preference{ItemID: 6}, p.Preference(6))
}

func TestBoltRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.db")

	storage, err := OpenBoltStorage(path)
	require.NoError(t, err)
	p := NewPreferences(storage, nil)
	p.AddToWatchlist(domain.CatalogItem{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25"})
	p.AddToWatchlist(domain.CatalogItem{ID: 2, Name: "Dark", NumberOfSeasons: 3})
	p.ToggleLike(item(1))
	p.ToggleDislike(item(3))
	p.ToggleWatched(item(2))
	p.ToggleWatched(item(8))
	require.NoError(t, p.Close())

	storage, err = OpenBoltStorage(path)
	require.NoError(t, err)
	reloaded := NewPreferences(storage, nil)
	defer reloaded.Close()

	assert.Equal(t, p.Watchlist(), reloaded.Watchlist())
	for _, id := range []int{1, 2, 3, 8, 42} {
		assert.Equal(t, p.Preference(id), reloaded.Preference(id), "id %d", id)
	}
	assert.Equal(t, domain.MediaTypeShow, reloaded.Watchlist()[1].MediaType())
}

func TestMalformedSlotLoadsEmptyWithoutAffectingOthers(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(SlotWatchlist, []byte(`[{"id": 1, "title": `)))
	require.NoError(t, storage.Save(SlotLiked, []byte(`[7, 9]`)))
	require.NoError(t, storage.Save(SlotWatched, []byte(`"not an array"`)))

	p := NewPreferences(storage, nil)

	assert.Empty(t, p.Watchlist())
	assert.True(t, p.IsLiked(item(7)))
	assert.True(t, p.IsLiked(item(9)))
	assert.False(t, p.IsWatched(item(7)))
}

func TestLoadRepairsOverlappingLikeAndDislike(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(SlotLiked, []byte(`[1]`)))
	require.NoError(t, storage.Save(SlotDisliked, []byte(`[1, 2]`)))

	p := NewPreferences(storage, nil)
	assert.True(t, p.IsLiked(item(1)))
	assert.False(t, p.IsDisliked(item(1)))
	assert.True(t, p.IsDisliked(item(2)))
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	storage := &failingStorage{slots: map[string][]byte{SlotWatched: []byte(`[3]`)}}
	p := NewPreferences(storage, nil)

	p.AddToWatchlist(item(1))
	p.ToggleLike(item(2))
	p.ToggleWatched(item(3))

	assert.True(t, p.IsInWatchlist(item(1)))
	assert.True(t, p.IsLiked(item(2)))
	assert.False(t, p.IsWatched(item(3)))
	assert.Positive(t, storage.saves)
}

func TestMutationsAreWrittenThrough(t *testing.T) {
	storage := NewMemoryStorage()
	p := NewPreferences(storage, nil)

	p.ToggleLike(item(5))
	p.ToggleLike(item(2))
	p.ToggleDislike(item(5))

	liked, err := storage.Load(SlotLiked)
	require.NoError(t, err)
	assert.JSONEq(t, `[2]`, string(liked))

	disliked, err := storage.Load(SlotDisliked)
	require.NoError(t, err)
	assert.JSONEq(t, `[5]`, string(disliked))

	watched, err := storage.Load(SlotWatched)
	require.NoError(t, err)
	assert.Nil(t, watched)
}

func TestConcurrentCallersAreSerialized(t *testing.T) {
	storage := NewMemoryStorage()
	p := NewPreferences(storage, nil)

	const workers, rounds, items = 8, 200, 10

	var wg conc.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for r := 0; r < rounds; r++ {
				it := item((w+r)%items + 1)
				switch r % 4 {
				case 0:
					p.ToggleLike(it)
				case 1:
					p.ToggleDislike(it)
				case 2:
					p.AddToWatchlist(it)
				case 3:
					p.ToggleWatched(it)
				}
				pref := p.Preference(it.ID)
				assert.False(t, pref.Liked && pref.Disliked, "item %d both liked and disliked", it.ID)
			}
		})
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, w := range p.Watchlist() {
		assert.False(t, seen[w.ID], "item %d listed twice", w.ID)
		seen[w.ID] = true
	}
	assert.Len(t, seen, items)

	// What was persisted matches what is in memory
	reloaded := NewPreferences(storage, nil)
	for id := 1; id <= items; id++ {
		assert.Equal(t, p.Preference(id), reloaded.Preference(id))
	}
}

func TestMemoryStorageClosed(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Close())

	_, err := storage.Load(SlotLiked)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, storage.Save(SlotLiked, []byte(`[]`)), ErrClosed)
}
