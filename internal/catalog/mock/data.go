package mock

import "github.com/marquee/marquee/internal/catalog/tmdb"

func str(s string) *string { return &s }

func minutes(n int) *int { return &n }

var mockMovies = []tmdb.MovieDetails{
	{ID: 603, Title: "The Matrix", Overview: "A computer hacker learns about the true nature of reality and his role in the war against its controllers.", ReleaseDate: "1999-03-31", PosterPath: str("/p96dm7sCMn4VYAStA6siNz30G1r.jpg"), BackdropPath: str("/tlm8UkiQsitc8rSuIAscQDCnP8d.jpg"), VoteAverage: 8.2, VoteCount: 25000, Runtime: minutes(136), Genres: []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}},
	{ID: 550, Title: "Fight Club", Overview: "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression into a shocking new form of therapy.", ReleaseDate: "1999-10-15", PosterPath: str("/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"), BackdropPath: str("/5TiwfWEaPSwD20uwXjCTUqpQX70.jpg"), VoteAverage: 8.4, VoteCount: 29000, Runtime: minutes(139), Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 53, Name: "Thriller"}}},
	{ID: 155, Title: "The Dark Knight", Overview: "Batman raises the stakes in his war on crime with the help of Lt. Jim Gordon and District Attorney Harvey Dent.", ReleaseDate: "2008-07-16", PosterPath: str("/qJ2tW6WMUDux911r6m7haRef0WH.jpg"), BackdropPath: str("/cfT29Im5VDvjE0RpyKOSdCKZal7.jpg"), VoteAverage: 8.5, VoteCount: 32000, Runtime: minutes(152), Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 28, Name: "Action"}, {ID: 80, Name: "Crime"}}},
	{ID: 278, Title: "The Shawshank Redemption", Overview: "Imprisoned in the 1940s for a double murder, banker Andy Dufresne begins a new life at the Shawshank prison.", ReleaseDate: "1994-09-23", PosterPath: str("/9cqNxx0GxF0bflZmeSMuL5tnGzr.jpg"), BackdropPath: str("/zfbjgQE1uSd9wiPTX4VzsLi0rGG.jpg"), VoteAverage: 8.7, VoteCount: 26000, Runtime: minutes(142), Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 80, Name: "Crime"}}},
	{ID: 27205, Title: "Inception", Overview: "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets, is offered a chance to regain his old life.", ReleaseDate: "2010-07-15", PosterPath: str("/xlaY2zyzMfkhk0HSC5VUwzoZPU1.jpg"), BackdropPath: str("/ii8QGacT3MXESqBckQlyrATY0lT.jpg"), VoteAverage: 8.4, VoteCount: 36000, Runtime: minutes(148), Genres: []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}, {ID: 12, Name: "Adventure"}}},
	{ID: 157336, Title: "Interstellar", Overview: "A group of explorers make use of a newly discovered wormhole to surpass the limitations on human space travel.", ReleaseDate: "2014-11-05", PosterPath: str("/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg"), BackdropPath: str("/5XNQBqnBwPA9yT0jZ0p3s8bbLh0.jpg"), VoteAverage: 8.4, VoteCount: 34000, Runtime: minutes(169), Genres: []tmdb.Genre{{ID: 12, Name: "Adventure"}, {ID: 18, Name: "Drama"}, {ID: 878, Name: "Science Fiction"}}},
	{ID: 438631, Title: "Dune", Overview: "Paul Atreides, a brilliant and gifted young man born into a great destiny, must travel to the most dangerous planet in the universe.", ReleaseDate: "2021-09-15", PosterPath: str("/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"), BackdropPath: str("/jYEW5xZkZk2WTrdbMGAPFuBqbDc.jpg"), VoteAverage: 7.8, VoteCount: 12000, Runtime: minutes(155), Genres: []tmdb.Genre{{ID: 878, Name: "Science Fiction"}, {ID: 12, Name: "Adventure"}}},
	{ID: 693134, Title: "Dune: Part Two", Overview: "Paul Atreides unites with Chani and the Fremen while on a path of revenge against the conspirators who destroyed his family.", ReleaseDate: "2024-02-27", PosterPath: str("/1pdfLvkbY9ohJlCjQH2CZjjYVvJ.jpg"), BackdropPath: str("/xOMo8BRK7PfcJv9JCnx7s5hj0PX.jpg"), VoteAverage: 8.2, VoteCount: 6000, Runtime: minutes(167), Genres: []tmdb.Genre{{ID: 878, Name: "Science Fiction"}, {ID: 12, Name: "Adventure"}}},
	{ID: 872585, Title: "Oppenheimer", Overview: "The story of J. Robert Oppenheimer's role in the development of the atomic bomb during World War II.", ReleaseDate: "2023-07-19", PosterPath: str("/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg"), BackdropPath: str("/7CENyUim29IEsaJhUxIGymCRvPu.jpg"), VoteAverage: 8.1, VoteCount: 9000, Runtime: minutes(181), Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 36, Name: "History"}}},
	{ID: 346698, Title: "Barbie", Overview: "Barbie and Ken are having the time of their lives in the colorful and seemingly perfect world of Barbie Land.", ReleaseDate: "2023-07-19", PosterPath: str("/iuFNMS8U5cb6xfzi51Dbkovj7vM.jpg"), BackdropPath: nil, VoteAverage: 7.0, VoteCount: 8000, Runtime: minutes(114), Genres: []tmdb.Genre{{ID: 35, Name: "Comedy"}, {ID: 12, Name: "Adventure"}}},
	{ID: 1022789, Title: "Inside Out 2", Overview: "Teenager Riley's mind headquarters is undergoing a sudden demolition to make room for new Emotions.", ReleaseDate: "2024-06-11", PosterPath: str("/vpnVM9B6NMmQpWeZvzLvDESb2QY.jpg"), BackdropPath: str("/p5ozvmdgsmbWe0H8Xk7Rc8SCwAB.jpg"), VoteAverage: 7.6, VoteCount: 4000, Runtime: minutes(97), Genres: []tmdb.Genre{{ID: 16, Name: "Animation"}, {ID: 10751, Name: "Family"}}},
	{ID: 533535, Title: "Deadpool & Wolverine", Overview: "A listless Wade Wilson toils away in civilian life until his homeworld faces an existential threat.", ReleaseDate: "2024-07-24", PosterPath: str("/8cdWjvZQUExUUTzyp4t6EDMubfO.jpg"), BackdropPath: str("/ufpeVEM64uZHPpzzeiDNIAdaeOD.jpg"), VoteAverage: 7.7, VoteCount: 5000, Runtime: minutes(128), Genres: []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}},
}

var mockLists = map[string][]int{
	tmdb.ListNowPlaying: {533535, 1022789, 693134},
	tmdb.ListUpcoming:   {346698, 872585},
	tmdb.ListTopRated:   {278, 155, 550, 27205},
	tmdb.ListPopular:    {27205, 157336, 603, 438631},
}

var defaultCast = []tmdb.CastMember{
	{ID: 1, Name: "Leonardo DiCaprio", Character: "Dom Cobb", Order: 0, ProfilePath: str("/wo2hJpn04vbtmh0B9utCFdsQhxM.jpg")},
	{ID: 2, Name: "Joseph Gordon-Levitt", Character: "Arthur", Order: 1, ProfilePath: str("/zvwJpU44vs1FfkBpCf5chCRfJo8.jpg")},
	{ID: 3, Name: "Elliot Page", Character: "Ariadne", Order: 2},
}

var mockCast = map[int][]tmdb.CastMember{
	603: {
		{ID: 6384, Name: "Keanu Reeves", Character: "Neo", Order: 0, ProfilePath: str("/4D0PpNI0kmP58hgrwGC3wCjxhnm.jpg")},
		{ID: 2975, Name: "Laurence Fishburne", Character: "Morpheus", Order: 1},
	},
}
