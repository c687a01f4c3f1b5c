// repository/movie/repo.go
package movierepo

import (
	"context"
	"database/sql"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Repo interface {
	Create(ctx context.Context, m *model.Movie) (int64, error)
	Get(ctx context.Context, id int64) (*model.Movie, error)
	List(ctx context.Context, genre *string, releaseYear *int) ([]model.Movie, error)

	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movie, error)
	SaveReviews(ctx context.Context, tx *sql.Tx, movieID int64, reviews []model.Review) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, m *model.Movie) (int64, error) {
	genres, err := json.Marshal(orEmptyStrings(m.Genres))
	if err != nil {
		return 0, err
	}
	reviews, err := json.Marshal(orEmptyReviews(m.Reviews))
	if err != nil {
		return 0, err
	}
	const q = `
		INSERT INTO movies (title, release_year, runtime_min, rating, summary, genres, reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING movie_id`
	var id int64
	err = r.db.QueryRowContext(ctx, q,
		m.Title, m.ReleaseYear, m.RuntimeMin, m.Rating, m.Summary, genres, reviews,
	).Scan(&id)
	return id, err
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Movie, error) {
	const q = `
		SELECT movie_id, title, release_year, runtime_min, rating, summary, genres, reviews
		FROM movies
		WHERE movie_id = $1`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) List(ctx context.Context, genre *string, releaseYear *int) ([]model.Movie, error) {
	// Genre filter uses JSONB containment against the genre-name array.
	const q = `
		SELECT movie_id, title, release_year, runtime_min, rating, summary, genres, reviews
		FROM movies
		WHERE ($1::TEXT IS NULL OR genres @> to_jsonb(ARRAY[$1::TEXT]))
		  AND ($2::INT IS NULL OR release_year = $2)
		ORDER BY movie_id`
	rows, err := r.db.QueryContext(ctx, q, genre, releaseYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movie, error) {
	const q = `
		SELECT movie_id, title, release_year, runtime_min, rating, summary, genres, reviews
		FROM movies
		WHERE movie_id = $1
		FOR UPDATE`
	m, err := scanMovie(tx.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) SaveReviews(ctx context.Context, tx *sql.Tx, movieID int64, reviews []model.Review) error {
	b, err := json.Marshal(orEmptyReviews(reviews))
	if err != nil {
		return err
	}
	const q = `UPDATE movies SET reviews = $2 WHERE movie_id = $1`
	_, err = tx.ExecContext(ctx, q, movieID, b)
	return err
}

func scanMovie(scan func(...any) error) (*model.Movie, error) {
	var m model.Movie
	var genres, reviews []byte
	if err := scan(&m.MovieID, &m.Title, &m.ReleaseYear, &m.RuntimeMin, &m.Rating, &m.Summary, &genres, &reviews); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(genres, &m.Genres); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reviews, &m.Reviews); err != nil {
		return nil, err
	}
	return &m, nil
}

func orEmptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyReviews(s []model.Review) []model.Review {
	if s == nil {
		return []model.Review{}
	}
	return s
}
