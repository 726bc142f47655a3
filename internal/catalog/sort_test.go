package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestSortByTitle(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 4, Title: "beta"},
		{ID: 2, Title: "Alpha"},
		{ID: 3, Name: "Gamma"},
		{ID: 1, Title: "Beta"},
		{ID: 5},
	}
	SortItems(items, domain.SortByTitle)
	// Titles compare case-insensitively; ties go to the lower ID
	assert.Equal(t, []int{2, 1, 4, 3, 5}, ids(items))
}

func TestSortByPopularity(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Title: "a", Popularity: 10},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c", Popularity: 99.5},
		{ID: 4, Title: "d", Popularity: 10},
	}
	SortItems(items, domain.SortByPopularity)
	assert.Equal(t, []int{3, 1, 4, 2}, ids(items))
}

func TestSortIsRepeatable(t *testing.T) {
	base := []domain.CatalogItem{
		{ID: 9, Title: "Same", Popularity: 1},
		{ID: 3, Title: "Same", Popularity: 1},
		{ID: 7, Title: "Other", Popularity: 5},
		{ID: 1, Title: "Same", Popularity: 1},
		{ID: 5, Name: "Show", Popularity: 5},
	}

	for _, policy := range []domain.SortPolicy{domain.SortByTitle, domain.SortByPopularity} {
		want := append([]domain.CatalogItem(nil), base...)
		SortItems(want, policy)

		r := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			shuffled := append([]domain.CatalogItem(nil), base...)
			r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			SortItems(shuffled, policy)
			assert.Equal(t, ids(want), ids(shuffled), "policy %s", policy)
		}
	}
}

func TestFilterByTitle(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Title: "The Dark Knight"},
		{ID: 2, Name: "Dark"},
		{ID: 3, Title: "Heat"},
	}

	assert.Equal(t, []int{1, 2}, ids(FilterByTitle(items, "DARK")))
	assert.Empty(t, FilterByTitle(items, "xyz"))
	assert.Len(t, FilterByTitle(items, "  "), 3)
}

func TestSortItemsForQuery(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Title: "Star Wars: A New Hope"},
		{ID: 2, Title: "Lone Star"},
		{ID: 3, Title: "Star"},
		{ID: 4, Title: "A Star Is Born"},
	}
	SortItemsForQuery(items, "star")
	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 1, items[1].ID)
	assert.ElementsMatch(t, []int{2, 4}, ids(items[2:]))
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 0, matchScore("alien", "alien"))
	assert.Equal(t, 10, matchScore("aliens", "alien"))
	assert.Less(t, matchScore("the alien", "alien"), matchScore("xyz", "alien"))
}
