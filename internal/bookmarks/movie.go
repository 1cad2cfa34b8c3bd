package bookmarks

import (
	"database/sql"
	"time"

	"github.com/marquee/marquee/internal/catalog"
	"github.com/marquee/marquee/internal/database/sqlc"
)

// BookmarkedMovie is the persisted subset of a movie the user saved.
type BookmarkedMovie struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	PosterPath   string    `json:"posterPath"`
	VoteAverage  float64   `json:"voteAverage"`
	ReleaseDate  string    `json:"releaseDate"`
	Runtime      *int      `json:"runtime,omitempty"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// FromMovie projects a catalog movie onto its bookmark form.
func FromMovie(m catalog.Movie) BookmarkedMovie {
	return BookmarkedMovie{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		VoteAverage: m.VoteAverage,
		ReleaseDate: m.ReleaseDate,
		Runtime:     m.Runtime,
	}
}

func fromRow(row sqlc.BookmarkedMovie) BookmarkedMovie {
	m := BookmarkedMovie{
		ID:           int(row.ID),
		Title:        row.Title,
		PosterPath:   row.PosterPath,
		VoteAverage:  row.VoteAverage,
		ReleaseDate:  row.ReleaseDate,
		BookmarkedAt: row.BookmarkedAt,
	}
	if row.Runtime.Valid {
		runtime := int(row.Runtime.Int64)
		m.Runtime = &runtime
	}
	return m
}

func toParams(m BookmarkedMovie, at time.Time) sqlc.UpsertBookmarkParams {
	p := sqlc.UpsertBookmarkParams{
		ID:           int64(m.ID),
		Title:        m.Title,
		PosterPath:   m.PosterPath,
		VoteAverage:  m.VoteAverage,
		ReleaseDate:  m.ReleaseDate,
		BookmarkedAt: at,
	}
	if m.Runtime != nil {
		p.Runtime = sql.NullInt64{Int64: int64(*m.Runtime), Valid: true}
	}
	return p
}
