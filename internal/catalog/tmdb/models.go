package tmdb

// MovieListResponse is the paged response of the movie list and search endpoints.
type MovieListResponse struct {
	Page         int           `json:"page"`
	TotalResults int           `json:"total_results"`
	TotalPages   int           `json:"total_pages"`
	Results      []MovieResult `json:"results"`
}

// MovieResult is a movie as returned inside list and search responses.
// Genres are only available as ids here.
type MovieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

// MovieDetails is the full movie record from /movie/{id}.
type MovieDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Runtime      *int    `json:"runtime"`
	Tagline      string  `json:"tagline"`
	Status       string  `json:"status"`
	Genres       []Genre `json:"genres"`
}

// Genre is a named genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreditsResponse is the response from /movie/{id}/credits.
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}

// CastMember is one entry of a credits cast list.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath *string `json:"profile_path"`
}

// ReviewsResponse is the paged response from /movie/{id}/reviews.
type ReviewsResponse struct {
	ID           int      `json:"id"`
	Page         int      `json:"page"`
	TotalResults int      `json:"total_results"`
	TotalPages   int      `json:"total_pages"`
	Results      []Review `json:"results"`
}

// Review is a user review.
type Review struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

// VideosResponse is the response from /movie/{id}/videos.
type VideosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Video is a trailer, teaser, clip or similar hosted on an external site.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// ErrorResponse is the body TMDB sends with non-2xx statuses.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
