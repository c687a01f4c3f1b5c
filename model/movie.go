// model/movie.go
package model

import "time"

type Movie struct {
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	ReleaseYear *int     `json:"releaseYear,omitempty"`
	RuntimeMin  *int     `json:"runtimeMin,omitempty"`
	Rating      *int     `json:"rating,omitempty"` // 1-10
	Summary     *string  `json:"summary,omitempty"`
	Genres      []string `json:"genres"`
	Reviews     []Review `json:"reviews"`
}

// Review belongs to exactly one movie by embedding. CustomerID is a weak
// reference, lookup-only.
type Review struct {
	ReviewID   int64     `json:"reviewId"`
	MovieID    int64     `json:"movieId"`
	Rating     int       `json:"rating"` // 1-10
	Body       *string   `json:"body,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	CustomerID *int64    `json:"customerId,omitempty"`
}
