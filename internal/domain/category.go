package domain

import "fmt"

// Category is a logical catalog listing. Simple categories map to a single
// remote path; composite categories expand to several paths whose results
// are unioned.
type Category int

const (
	AllMovies Category = iota
	AllTV
	PopularMovies
	NowPlayingMovies
	TopRatedMovies
	UpcomingMovies
	TrendingMoviesDay
	TrendingMoviesWeek
	PopularTV
	OnTheAirTV
	TopRatedTV
	AiringTodayTV
	TrendingTVWeek
)

// Categories lists every category in display order
var Categories = []Category{
	AllMovies,
	PopularMovies,
	NowPlayingMovies,
	TopRatedMovies,
	UpcomingMovies,
	TrendingMoviesDay,
	TrendingMoviesWeek,
	AllTV,
	PopularTV,
	OnTheAirTV,
	TopRatedTV,
	AiringTodayTV,
	TrendingTVWeek,
}

// Paths returns the concrete remote paths the category expands to
func (c Category) Paths() []string {
	switch c {
	case AllMovies:
		return []string{
			PopularMovies.Tag(),
			NowPlayingMovies.Tag(),
			TopRatedMovies.Tag(),
			UpcomingMovies.Tag(),
			TrendingMoviesWeek.Tag(),
		}
	case AllTV:
		return []string{
			PopularTV.Tag(),
			OnTheAirTV.Tag(),
			TopRatedTV.Tag(),
			AiringTodayTV.Tag(),
			TrendingTVWeek.Tag(),
		}
	default:
		if c.Tag() == "" {
			return nil
		}
		return []string{c.Tag()}
	}
}

// IsComposite reports whether the category unions several remote paths
func (c Category) IsComposite() bool {
	return c == AllMovies || c == AllTV
}

// Tag returns the stable identifier of the category. For simple categories
// this is the remote path itself.
func (c Category) Tag() string {
	switch c {
	case AllMovies:
		return "all_movies"
	case AllTV:
		return "all_tv"
	case PopularMovies:
		return "movie/popular"
	case NowPlayingMovies:
		return "movie/now_playing"
	case TopRatedMovies:
		return "movie/top_rated"
	case UpcomingMovies:
		return "movie/upcoming"
	case TrendingMoviesDay:
		return "trending/movie/day"
	case TrendingMoviesWeek:
		return "trending/movie/week"
	case PopularTV:
		return "tv/popular"
	case OnTheAirTV:
		return "tv/on_the_air"
	case TopRatedTV:
		return "tv/top_rated"
	case AiringTodayTV:
		return "tv/airing_today"
	case TrendingTVWeek:
		return "trending/tv/week"
	default:
		return ""
	}
}

// String returns the display label
func (c Category) String() string {
	switch c {
	case AllMovies:
		return "All Movies"
	case AllTV:
		return "All TV"
	case PopularMovies:
		return "Popular"
	case NowPlayingMovies:
		return "Now Playing"
	case TopRatedMovies:
		return "Top Rated"
	case UpcomingMovies:
		return "Upcoming"
	case TrendingMoviesDay:
		return "Trending Today"
	case TrendingMoviesWeek:
		return "Trending"
	case PopularTV:
		return "Popular TV"
	case OnTheAirTV:
		return "On The Air"
	case TopRatedTV:
		return "Top Rated TV"
	case AiringTodayTV:
		return "Airing Today"
	case TrendingTVWeek:
		return "Trending TV"
	default:
		return "Unknown"
	}
}

// ParseCategory resolves a tag produced by Tag
func ParseCategory(tag string) (Category, error) {
	for _, c := range Categories {
		if c.Tag() == tag {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, tag)
}

// SortPolicy selects the order of an aggregated collection
type SortPolicy int

const (
	// SortByTitle orders by display title, ties broken by ID
	SortByTitle SortPolicy = iota
	// SortByPopularity orders by descending popularity (absent = 0), ties broken by ID
	SortByPopularity
	// SortByRelevance orders search matches: exact, prefix, substring, then edit distance
	SortByRelevance
)

// String returns the config/display name of the policy
func (p SortPolicy) String() string {
	switch p {
	case SortByPopularity:
		return "popularity"
	case SortByRelevance:
		return "relevance"
	default:
		return "title"
	}
}

// ParseSortPolicy resolves a name produced by String; unknown names yield SortByTitle
func ParseSortPolicy(name string) SortPolicy {
	switch name {
	case "popularity":
		return SortByPopularity
	case "relevance":
		return SortByRelevance
	default:
		return SortByTitle
	}
}
