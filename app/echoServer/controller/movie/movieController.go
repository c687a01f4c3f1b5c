package movie

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/jwtx"
	catalogsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/movies  (admin)
func (h *Controller) Create(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req CreateMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreateMovie(c.Request().Context(), catalogsvc.CreateMovieReq{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		RuntimeMin:  req.RuntimeMin,
		Rating:      req.Rating,
		Summary:     req.Summary,
		Genres:      req.Genres,
	})
	if err != nil {
		if catalogsvc.Code(err) == catalogsvc.ErrSchemaViolation {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
		}
		h.Log.Error("movie create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/movies?genre=&release_year=
func (h *Controller) List(c echo.Context) error {
	var genre *string
	if g := c.QueryParam("genre"); g != "" {
		genre = &g
	}
	var year *int
	if y := c.QueryParam("release_year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid release_year"})
		}
		year = &n
	}
	rows, err := h.Svc.ListMovies(c.Request().Context(), genre, year)
	if err != nil {
		h.Log.Error("movie list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/movies/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	m, err := h.Svc.GetMovie(c.Request().Context(), id)
	if err != nil {
		if catalogsvc.Code(err) == catalogsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("movie detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, m)
}

// POST /v1/movies/:id/reviews
func (h *Controller) AddReview(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	review, err := h.Svc.AddReview(c.Request().Context(), id, catalogsvc.ReviewReq{
		Rating:     req.Rating,
		Body:       req.Body,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		switch catalogsvc.Code(err) {
		case catalogsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case catalogsvc.ErrSchemaViolation:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
		default:
			h.Log.Error("review create error", "err", err, "movie_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, review)
}
