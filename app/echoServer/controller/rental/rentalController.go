package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	rs "github.com/DBD-Movie-Rental/movie-rental-main/service/rental"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rentals/reserve
func (h *Controller) Reserve(c echo.Context) error {
	var req ReserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Reserve(c.Request().Context(), rs.ReserveReq{
		CustomerID:       req.CustomerID,
		LocationID:       req.LocationID,
		InventoryItemIDs: req.InventoryItemIDs,
		PromoCode:        req.PromoCode,
	})
	if err != nil {
		h.Log.Error("rental reserve", "err", err)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /v1/rentals/:id/checkout
func (h *Controller) CheckOut(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CheckOutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.CheckOut(c.Request().Context(), id, req.EmployeeID)
	if err != nil {
		h.Log.Error("rental checkout", "err", err, "rental_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	returnedAt := time.Now().UTC()
	if req.ReturnedAt != nil {
		returnedAt = req.ReturnedAt.UTC()
	}

	out, err := h.Svc.Return(c.Request().Context(), id, returnedAt, req.DamagedItemIDs)
	if err != nil {
		h.Log.Error("rental return", "err", err, "rental_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/rentals/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("rental cancel", "err", err, "rental_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/rentals/:id/fees
func (h *Controller) AssessFee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req FeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.AssessFee(c.Request().Context(), id, model.FeeKind(req.FeeType), req.Amount)
	if err != nil {
		h.Log.Error("rental fee", "err", err, "rental_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /v1/rentals/:id/payments
func (h *Controller) RecordPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req PaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}

	out, err := h.Svc.RecordPayment(c.Request().Context(), id, req.Amount)
	if err != nil {
		h.Log.Error("rental payment", "err", err, "rental_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /v1/rentals/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) mapErr(c echo.Context, err error) error {
	switch rs.Code(err) {
	case rs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case rs.ErrStateConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "state conflict"})
	case rs.ErrAvailabilityConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "item not available"})
	case rs.ErrSchemaViolation:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
