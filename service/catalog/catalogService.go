package catalogsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

type ErrCode string

const (
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrSchemaViolation ErrCode = "SCHEMA_VIOLATION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type CreateMovieReq struct {
	Title       string
	ReleaseYear *int
	RuntimeMin  *int
	Rating      *int
	Summary     *string
	Genres      []string
}

type ReviewReq struct {
	Rating     int
	Body       *string
	CustomerID *int64
}

type Repo interface {
	Create(ctx context.Context, m *model.Movie) (int64, error)
	Get(ctx context.Context, id int64) (*model.Movie, error)
	List(ctx context.Context, genre *string, releaseYear *int) ([]model.Movie, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movie, error)
	SaveReviews(ctx context.Context, tx *sql.Tx, movieID int64, reviews []model.Review) error
}

type GenreRepo interface {
	ListGenres(ctx context.Context) ([]model.Genre, error)
}

type CustomerRepo interface {
	Get(ctx context.Context, id int64) (*model.Customer, error)
}

type Service interface {
	CreateMovie(ctx context.Context, req CreateMovieReq) (int64, error)
	GetMovie(ctx context.Context, id int64) (*model.Movie, error)
	ListMovies(ctx context.Context, genre *string, releaseYear *int) ([]model.Movie, error)

	// AddReview embeds a review in its movie. The optional customer id is
	// a weak reference: it is resolved at write time but carries no
	// ownership.
	AddReview(ctx context.Context, movieID int64, req ReviewReq) (*model.Review, error)
}

type service struct {
	db *sql.DB
	r  Repo
	gr GenreRepo
	cr CustomerRepo
}

func New(db *sql.DB, r Repo, gr GenreRepo, cr CustomerRepo) Service {
	return &service{db: db, r: r, gr: gr, cr: cr}
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieReq) (int64, error) {
	if req.Title == "" {
		return 0, makeErr(ErrSchemaViolation)
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		return 0, makeErr(ErrSchemaViolation)
	}

	// Genre names must exist in the lookup.
	if len(req.Genres) > 0 {
		known, err := s.gr.ListGenres(ctx)
		if err != nil {
			return 0, err
		}
		names := make(map[string]bool, len(known))
		for _, g := range known {
			names[g.Name] = true
		}
		for _, g := range req.Genres {
			if !names[g] {
				return 0, makeErr(ErrSchemaViolation)
			}
		}
	}

	return s.r.Create(ctx, &model.Movie{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		RuntimeMin:  req.RuntimeMin,
		Rating:      req.Rating,
		Summary:     req.Summary,
		Genres:      req.Genres,
	})
}

func (s *service) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	m, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, makeErr(ErrNotFound)
	}
	return m, nil
}

func (s *service) ListMovies(ctx context.Context, genre *string, releaseYear *int) ([]model.Movie, error) {
	return s.r.List(ctx, genre, releaseYear)
}

func (s *service) AddReview(ctx context.Context, movieID int64, req ReviewReq) (_ *model.Review, err error) {
	if req.Rating < 1 || req.Rating > 10 {
		return nil, makeErr(ErrSchemaViolation)
	}
	if req.CustomerID != nil {
		c, err := s.cr.Get(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, makeErr(ErrNotFound)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.GetForUpdate(ctx, tx, movieID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, makeErr(ErrNotFound)
	}

	review := model.Review{
		ReviewID:   nextReviewID(m.Reviews),
		MovieID:    movieID,
		Rating:     req.Rating,
		Body:       req.Body,
		CreatedAt:  time.Now().UTC(),
		CustomerID: req.CustomerID,
	}
	if err = s.r.SaveReviews(ctx, tx, movieID, append(m.Reviews, review)); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &review, nil
}

func nextReviewID(reviews []model.Review) int64 {
	var max int64
	for _, r := range reviews {
		if r.ReviewID > max {
			max = r.ReviewID
		}
	}
	return max + 1
}
