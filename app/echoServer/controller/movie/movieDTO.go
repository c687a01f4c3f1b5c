package movie

type CreateMovieReq struct {
	Title       string   `json:"title" validate:"required"`
	ReleaseYear *int     `json:"release_year,omitempty" validate:"omitempty,gte=1888"`
	RuntimeMin  *int     `json:"runtime_min,omitempty" validate:"omitempty,gt=0"`
	Rating      *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Summary     *string  `json:"summary,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

type ReviewReq struct {
	Rating     int     `json:"rating" validate:"required,gte=1,lte=10"`
	Body       *string `json:"body,omitempty"`
	CustomerID *int64  `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
}
