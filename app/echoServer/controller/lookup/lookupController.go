package lookup

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/jwtx"
	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	lookupsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/lookup"
)

type Controller struct {
	Svc lookupsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/membership-types
func (h *Controller) ListMembershipTypes(c echo.Context) error {
	rows, err := h.Svc.MembershipTypes(c.Request().Context())
	if err != nil {
		h.Log.Error("membership types list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/membership-types  (admin)
func (h *Controller) CreateMembershipType(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req MembershipTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreateMembershipType(c.Request().Context(), model.MembershipLevel(req.Type), req.MonthlyCostDkk)
	if err != nil {
		return h.mapCreateErr(c, err, "membership type")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/fee-types
func (h *Controller) ListFeeTypes(c echo.Context) error {
	rows, err := h.Svc.FeeTypes(c.Request().Context())
	if err != nil {
		h.Log.Error("fee types list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/fee-types  (admin)
func (h *Controller) CreateFeeType(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req FeeTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreateFeeType(c.Request().Context(), model.FeeKind(req.FeeType), req.DefaultAmountDkk)
	if err != nil {
		return h.mapCreateErr(c, err, "fee type")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/genres
func (h *Controller) ListGenres(c echo.Context) error {
	rows, err := h.Svc.Genres(c.Request().Context())
	if err != nil {
		h.Log.Error("genres list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/genres  (admin)
func (h *Controller) CreateGenre(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req GenreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreateGenre(c.Request().Context(), req.Name)
	if err != nil {
		return h.mapCreateErr(c, err, "genre")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/formats
func (h *Controller) ListFormats(c echo.Context) error {
	rows, err := h.Svc.Formats(c.Request().Context())
	if err != nil {
		h.Log.Error("formats list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/formats  (admin)
func (h *Controller) CreateFormat(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req FormatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreateFormat(c.Request().Context(), req.Type)
	if err != nil {
		return h.mapCreateErr(c, err, "format")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/promo-codes
func (h *Controller) ListPromoCodes(c echo.Context) error {
	rows, err := h.Svc.PromoCodes(c.Request().Context())
	if err != nil {
		h.Log.Error("promo codes list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/promo-codes  (admin)
func (h *Controller) CreatePromoCode(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req PromoCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreatePromoCode(c.Request().Context(), lookupsvc.PromoReq{
		Code:         req.Code,
		Description:  req.Description,
		PercentOff:   req.PercentOff,
		AmountOffDkk: req.AmountOffDkk,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	})
	if err != nil {
		return h.mapCreateErr(c, err, "promo code")
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (h *Controller) mapCreateErr(c echo.Context, err error, what string) error {
	switch lookupsvc.Code(err) {
	case lookupsvc.ErrDuplicate:
		return c.JSON(http.StatusConflict, echo.Map{"message": what + " already exists"})
	case lookupsvc.ErrSchemaViolation:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
	default:
		h.Log.Error("lookup create error", "err", err, "what", what)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
