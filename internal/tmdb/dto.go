package tmdb

// PageResponse is the envelope of every ranked listing endpoint
type PageResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages,omitempty"`
	TotalResults int      `json:"total_results,omitempty"`
}

// Result is a movie or TV show record. Movies carry Title/ReleaseDate,
// shows carry Name/FirstAirDate. Nullable fields are pointers.
type Result struct {
	ID               int      `json:"id"`
	Title            *string  `json:"title"`
	Name             *string  `json:"name"`
	Overview         string   `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
	ReleaseDate      *string  `json:"release_date"`
	FirstAirDate     *string  `json:"first_air_date"`
	VoteAverage      *float64 `json:"vote_average"`
	Runtime          *int     `json:"runtime"`
	Genres           []Genre  `json:"genres"`
	NumberOfSeasons  *int     `json:"number_of_seasons"`
	NumberOfEpisodes *int     `json:"number_of_episodes"`
	Popularity       *float64 `json:"popularity"`
}

// Genre is an id+name pair
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreditsResponse is the body of /{type}/{id}/credits
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}

// CastMember is one cast entry
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ProfilePath *string `json:"profile_path"`
}

// ProvidersResponse is the body of /{type}/{id}/watch/providers.
// Results are keyed by ISO 3166-1 country code.
type ProvidersResponse struct {
	ID      int                       `json:"id"`
	Results map[string]RegionProvider `json:"results"`
}

// RegionProvider lists providers for one country
type RegionProvider struct {
	Link     string     `json:"link,omitempty"`
	Flatrate []Provider `json:"flatrate"`
}

// Provider is one streaming platform
type Provider struct {
	ProviderID   int     `json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	LogoPath     *string `json:"logo_path"`
}

// VideosResponse is the body of /{type}/{id}/videos
type VideosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Video is one clip
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// ErrorResponse is the body TMDB returns alongside non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
