package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/marquee/marquee/internal/observe"
	"github.com/marquee/marquee/internal/uistate"
)

// DetailsView is a point-in-time snapshot of a movie's four detail streams.
type DetailsView struct {
	ID      int                         `json:"id"`
	Movie   uistate.State[Movie]        `json:"movie"`
	Credits uistate.State[[]CastMember] `json:"credits"`
	Reviews uistate.State[[]Review]     `json:"reviews"`
	Videos  uistate.State[[]Video]      `json:"videos"`
}

// Details loads everything shown for one movie. Each stream moves from
// Loading to its own terminal state independently.
type Details struct {
	service *Service
	id      int

	// seq numbers loads; only the latest one may publish.
	mu  sync.Mutex
	seq uint64

	movie   *observe.Value[uistate.State[Movie]]
	credits *observe.Value[uistate.State[[]CastMember]]
	reviews *observe.Value[uistate.State[[]Review]]
	videos  *observe.Value[uistate.State[[]Video]]
}

// NewDetails creates a details coordinator for the movie id.
func NewDetails(service *Service, id int) *Details {
	return &Details{
		service: service,
		id:      id,
		movie:   observe.NewValue(uistate.Loading[Movie]()),
		credits: observe.NewValue(uistate.Loading[[]CastMember]()),
		reviews: observe.NewValue(uistate.Loading[[]Review]()),
		videos:  observe.NewValue(uistate.Loading[[]Video]()),
	}
}

// Load fetches the four streams concurrently and waits for all of them.
// Results of a load superseded by a later Load or Retry are dropped.
func (d *Details) Load(ctx context.Context) {
	d.mu.Lock()
	d.seq++
	gen := d.seq
	d.mu.Unlock()

	publishDetail(d, gen, d.movie, uistate.Loading[Movie]())
	publishDetail(d, gen, d.credits, uistate.Loading[[]CastMember]())
	publishDetail(d, gen, d.reviews, uistate.Loading[[]Review]())
	publishDetail(d, gen, d.videos, uistate.Loading[[]Video]())

	var g errgroup.Group
	g.Go(func() error {
		publishDetail(d, gen, d.movie, uistate.From(d.service.Details(ctx, d.id)))
		return nil
	})
	g.Go(func() error {
		publishDetail(d, gen, d.credits, uistate.From(d.service.Credits(ctx, d.id)))
		return nil
	})
	g.Go(func() error {
		publishDetail(d, gen, d.reviews, uistate.From(d.service.Reviews(ctx, d.id, 1)))
		return nil
	})
	g.Go(func() error {
		publishDetail(d, gen, d.videos, uistate.From(d.service.Videos(ctx, d.id)))
		return nil
	})
	_ = g.Wait()
}

func publishDetail[T any](d *Details, gen uint64, v *observe.Value[uistate.State[T]], s uistate.State[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == gen {
		v.Set(s)
	}
}

// Retry reloads every stream.
func (d *Details) Retry(ctx context.Context) {
	d.Load(ctx)
}

// View returns the current state of every stream.
func (d *Details) View() DetailsView {
	return DetailsView{
		ID:      d.id,
		Movie:   d.movie.Get(),
		Credits: d.credits.Get(),
		Reviews: d.reviews.Get(),
		Videos:  d.videos.Get(),
	}
}

// WatchMovie streams the movie envelope until ctx ends.
func (d *Details) WatchMovie(ctx context.Context) <-chan uistate.State[Movie] {
	return d.movie.Subscribe(ctx)
}

// WatchCredits streams the credits envelope until ctx ends.
func (d *Details) WatchCredits(ctx context.Context) <-chan uistate.State[[]CastMember] {
	return d.credits.Subscribe(ctx)
}

// WatchReviews streams the reviews envelope until ctx ends.
func (d *Details) WatchReviews(ctx context.Context) <-chan uistate.State[[]Review] {
	return d.reviews.Subscribe(ctx)
}

// WatchVideos streams the videos envelope until ctx ends.
func (d *Details) WatchVideos(ctx context.Context) <-chan uistate.State[[]Video] {
	return d.videos.Subscribe(ctx)
}
