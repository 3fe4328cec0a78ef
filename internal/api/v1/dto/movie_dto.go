package dto

// MovieSearchRequestDTO is the body of POST /search-movie.
type MovieSearchRequestDTO struct {
	Title string `json:"title" validate:"required"`
	Year  *int   `json:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
}

// HealthResponseDTO is the static payload of GET /health.
type HealthResponseDTO struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	Model             string `json:"model"`
	MovieDBConfigured bool   `json:"movie_db_configured"`
}
