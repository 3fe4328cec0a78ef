package model

// Movie is a normalized movie record assembled from TMDB data.
type Movie struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	PosterURL *string  `json:"poster_url"`
	Rating    float64  `json:"rating"`
	Overview  string   `json:"overview"`
	Genres    []string `json:"genres"`
}

// MovieLookup is the result of a title lookup. Found is false when the
// search returned no candidates; Movie is only set when Found is true.
type MovieLookup struct {
	Found   bool   `json:"found"`
	Movie   *Movie `json:"movie,omitempty"`
	Message string `json:"message,omitempty"`
}
