package domain

import (
	"context"
)

// CatalogRepository fetches ranked listings from the remote catalog
type CatalogRepository interface {
	// FetchPage returns one page of a remote listing path (e.g. "movie/popular").
	// Pages are 1-based.
	FetchPage(ctx context.Context, path string, page int) ([]CatalogItem, error)
}

// DetailsRepository fetches the per-item detail endpoints
type DetailsRepository interface {
	// GetDetails returns the full record (runtime, genres, season counts)
	GetDetails(ctx context.Context, mediaType MediaType, id int) (*CatalogItem, error)

	// GetCredits returns the cast list
	GetCredits(ctx context.Context, mediaType MediaType, id int) ([]CastMember, error)

	// GetSimilar returns items similar to the given one
	GetSimilar(ctx context.Context, mediaType MediaType, id int) ([]CatalogItem, error)

	// GetWatchProviders returns flat-rate streaming providers for a region (e.g. "US")
	GetWatchProviders(ctx context.Context, mediaType MediaType, id int, region string) ([]Provider, error)

	// GetVideos returns trailers, teasers and other clips
	GetVideos(ctx context.Context, mediaType MediaType, id int) ([]Video, error)
}

// CatalogSource combines everything a catalog backend must implement
type CatalogSource interface {
	CatalogRepository
	DetailsRepository
}
