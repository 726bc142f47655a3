package domain

import (
	"fmt"
	"strings"
	"time"
)

// Image endpoints used by the catalog. Paths from the API are appended as-is.
const (
	ImageBaseURL      = "https://image.tmdb.org/t/p"
	DefaultPosterURL  = "https://www.content.numetro.co.za/ui_images/no_poster.png"
	posterWidth       = "w500"
	backdropWidth     = "w780"
	thumbnailWidth    = "w200"
	unknownTitle      = "Unknown Title"
	unknownGenre      = "Unknown Genre"
	apiDateLayout     = "2006-01-02"
	displayDateLayout = "Jan 2, 2006"
)

// MediaType distinguishes catalog content types
type MediaType int

const (
	MediaTypeMovie MediaType = iota
	MediaTypeShow
)

// String returns the API path segment for the media type
func (t MediaType) String() string {
	if t == MediaTypeShow {
		return "tv"
	}
	return "movie"
}

// Genre is an id+name pair attached to an item
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CatalogItem is a movie or TV show from the remote catalog.
// Identity is the ID alone: two records with the same ID are the same item.
// Absent optional fields hold their zero value.
type CatalogItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"` // Movies
	Name             string  `json:"name,omitempty"`  // Shows
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
	Genres           []Genre `json:"genres,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
}

// DisplayTitle returns the title, falling back to the show name
func (c CatalogItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if c.Name != "" {
		return c.Name
	}
	return unknownTitle
}

// MediaType reports whether the record describes a movie or a show
func (c CatalogItem) MediaType() MediaType {
	if c.Title == "" && (c.Name != "" || c.FirstAirDate != "" || c.NumberOfSeasons > 0) {
		return MediaTypeShow
	}
	return MediaTypeMovie
}

// Date returns the release date, or the first air date for shows
func (c CatalogItem) Date() string {
	if c.ReleaseDate != "" {
		return c.ReleaseDate
	}
	return c.FirstAirDate
}

// Year returns the year of Date, or 0 when unknown
func (c CatalogItem) Year() int {
	t, err := time.Parse(apiDateLayout, c.Date())
	if err != nil {
		return 0
	}
	return t.Year()
}

// FormattedDate renders Date as "Jan 2, 2006", empty if missing or malformed
func (c CatalogItem) FormattedDate() string {
	t, err := time.Parse(apiDateLayout, c.Date())
	if err != nil {
		return ""
	}
	return t.Format(displayDateLayout)
}

// Rating returns the average vote (0-10), 0 when absent
func (c CatalogItem) Rating() float64 {
	return c.VoteAverage
}

// PosterURL returns the full poster URL or the placeholder poster
func (c CatalogItem) PosterURL() string {
	if c.PosterPath == "" {
		return DefaultPosterURL
	}
	return imageURL(posterWidth, c.PosterPath)
}

// BackdropURL returns the full backdrop URL, empty when there is none
func (c CatalogItem) BackdropURL() string {
	if c.BackdropPath == "" {
		return ""
	}
	return imageURL(backdropWidth, c.BackdropPath)
}

// FormattedRuntime returns e.g. "2h 15m" for movies with a known runtime
func (c CatalogItem) FormattedRuntime() string {
	if c.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", c.Runtime/60, c.Runtime%60)
}

// FormattedSeasonsEpisodes returns e.g. "2 Seasons • 16 Episodes"
func (c CatalogItem) FormattedSeasonsEpisodes() string {
	if c.NumberOfSeasons <= 0 || c.NumberOfEpisodes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d %s • %d %s",
		c.NumberOfSeasons, plural(c.NumberOfSeasons, "Season"),
		c.NumberOfEpisodes, plural(c.NumberOfEpisodes, "Episode"))
}

// GenreText joins genre names for display
func (c CatalogItem) GenreText() string {
	if len(c.Genres) == 0 {
		return unknownGenre
	}
	names := make([]string, len(c.Genres))
	for i, g := range c.Genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

// CastMember is one entry of an item's credits
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// ProfileURL returns the headshot URL, empty when there is none
func (m CastMember) ProfileURL() string {
	if m.ProfilePath == "" {
		return ""
	}
	return imageURL(thumbnailWidth, m.ProfilePath)
}

// Provider is a streaming platform offering an item
type Provider struct {
	ID       int    `json:"provider_id"`
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// LogoURL returns the provider logo URL, empty when there is none
func (p Provider) LogoURL() string {
	if p.LogoPath == "" {
		return ""
	}
	return imageURL(thumbnailWidth, p.LogoPath)
}

// Video is a clip attached to an item (trailers, teasers, featurettes)
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// IsYouTubeTrailer reports whether the video is a trailer hosted on YouTube
func (v Video) IsYouTubeTrailer() bool {
	return v.Site == "YouTube" && v.Type == "Trailer"
}

// WatchURL returns a browser URL for YouTube videos
func (v Video) WatchURL() string {
	if v.Site != "YouTube" || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// FirstTrailer returns the first YouTube trailer, or nil when there is none
func FirstTrailer(videos []Video) *Video {
	for i := range videos {
		if videos[i].IsYouTubeTrailer() {
			v := videos[i]
			return &v
		}
	}
	return nil
}

// ItemDetails bundles everything the detail screen shows for one item
type ItemDetails struct {
	Item      CatalogItem
	Cast      []CastMember
	Similar   []CatalogItem
	Providers []Provider
	Trailer   *Video
}

// Preference is a snapshot of the user's facets for one item
type Preference struct {
	ItemID      int
	InWatchlist bool
	Liked       bool
	Disliked    bool
	Watched     bool
}

func imageURL(width, path string) string {
	return ImageBaseURL + "/" + width + path
}

func plural(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}
