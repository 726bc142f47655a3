package tmdb

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// MapItems converts API results to domain items, dropping records without an ID
func MapItems(results []Result) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(results))
	for _, r := range results {
		if r.ID == 0 {
			continue
		}
		items = append(items, MapItem(r))
	}
	return items
}

// MapItem converts a single API result to a domain item
func MapItem(r Result) domain.CatalogItem {
	item := domain.CatalogItem{
		ID:               r.ID,
		Title:            str(r.Title),
		Name:             str(r.Name),
		Overview:         r.Overview,
		PosterPath:       str(r.PosterPath),
		BackdropPath:     str(r.BackdropPath),
		ReleaseDate:      str(r.ReleaseDate),
		FirstAirDate:     str(r.FirstAirDate),
		VoteAverage:      float(r.VoteAverage),
		Runtime:          integer(r.Runtime),
		NumberOfSeasons:  integer(r.NumberOfSeasons),
		NumberOfEpisodes: integer(r.NumberOfEpisodes),
		Popularity:       float(r.Popularity),
	}

	if len(r.Genres) > 0 {
		item.Genres = make([]domain.Genre, len(r.Genres))
		for i, g := range r.Genres {
			item.Genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
		}
	}

	return item
}

// MapCast converts credits to domain cast members
func MapCast(cast []CastMember) []domain.CastMember {
	members := make([]domain.CastMember, 0, len(cast))
	for _, c := range cast {
		members = append(members, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			ProfilePath: str(c.ProfilePath),
		})
	}
	return members
}

// MapProviders converts the flat-rate providers of one region
func MapProviders(resp ProvidersResponse, region string) []domain.Provider {
	entry, ok := resp.Results[region]
	if !ok {
		return nil
	}
	providers := make([]domain.Provider, 0, len(entry.Flatrate))
	for _, p := range entry.Flatrate {
		providers = append(providers, domain.Provider{
			ID:       p.ProviderID,
			Name:     p.ProviderName,
			LogoPath: str(p.LogoPath),
		})
	}
	return providers
}

// MapVideos converts clips to domain videos
func MapVideos(videos []Video) []domain.Video {
	out := make([]domain.Video, len(videos))
	for i, v := range videos {
		out[i] = domain.Video{Key: v.Key, Site: v.Site, Type: v.Type}
	}
	return out
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func integer(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
