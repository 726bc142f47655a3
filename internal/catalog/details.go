package catalog

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/mmcdole/marquee/internal/domain"
)

const defaultRegion = "US"

// DetailsLoader assembles the detail view of one item from several
// independent endpoints fetched in parallel
type DetailsLoader struct {
	repo   domain.DetailsRepository
	region string
	logger *slog.Logger
}

// NewDetailsLoader creates a loader that reports watch providers for region
func NewDetailsLoader(repo domain.DetailsRepository, region string, logger *slog.Logger) *DetailsLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if region == "" {
		region = defaultRegion
	}
	return &DetailsLoader{repo: repo, region: region, logger: logger}
}

// Details fetches the full record, cast, similar items, providers and trailer
// for item. A failing part is logged and left empty; item itself stands in
// for the full record when that request fails. The only error is
// context.Canceled.
func (d *DetailsLoader) Details(ctx context.Context, item domain.CatalogItem) (*domain.ItemDetails, error) {
	mediaType := item.MediaType()
	details := &domain.ItemDetails{Item: item}

	var (
		full   *domain.CatalogItem
		videos []domain.Video
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		res, err := d.repo.GetDetails(ctx, mediaType, item.ID)
		if d.logFailure(ctx, "details", item.ID, err) {
			return
		}
		full = res
	})
	wg.Go(func() {
		res, err := d.repo.GetCredits(ctx, mediaType, item.ID)
		if d.logFailure(ctx, "credits", item.ID, err) {
			return
		}
		details.Cast = res
	})
	wg.Go(func() {
		res, err := d.repo.GetSimilar(ctx, mediaType, item.ID)
		if d.logFailure(ctx, "similar", item.ID, err) {
			return
		}
		details.Similar = res
	})
	wg.Go(func() {
		res, err := d.repo.GetWatchProviders(ctx, mediaType, item.ID, d.region)
		if d.logFailure(ctx, "providers", item.ID, err) {
			return
		}
		details.Providers = res
	})
	wg.Go(func() {
		res, err := d.repo.GetVideos(ctx, mediaType, item.ID)
		if d.logFailure(ctx, "videos", item.ID, err) {
			return
		}
		videos = res
	})
	wg.Wait()

	if superseded(ctx) {
		return nil, ctx.Err()
	}

	if full != nil {
		details.Item = *full
	}
	details.Trailer = domain.FirstTrailer(videos)
	return details, nil
}

// logFailure logs err unless the call was cancelled and reports whether the
// part should be skipped
func (d *DetailsLoader) logFailure(ctx context.Context, part string, id int, err error) bool {
	if err == nil {
		return false
	}
	if !superseded(ctx) {
		d.logger.Warn("failed to load item part", "part", part, "id", id, "error", err)
	}
	return true
}
