package report

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	reportsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/report"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /v1/reports/overdue-rentals
func (h *Controller) Overdue(c echo.Context) error {
	rows, err := h.Svc.Overdue(c.Request().Context())
	if err != nil {
		h.Log.Error("overdue report error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/reports/customer-summaries
func (h *Controller) Summaries(c echo.Context) error {
	rows, err := h.Svc.Summaries(c.Request().Context())
	if err != nil {
		h.Log.Error("summary report error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/reports/customer-summaries/:id
func (h *Controller) SummaryForCustomer(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.SummaryForCustomer(c.Request().Context(), id)
	if err != nil {
		if reportsvc.Code(err) == reportsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("summary report error", "err", err, "customer_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// GET /v1/reports/customer-addresses
func (h *Controller) Addresses(c echo.Context) error {
	rows, err := h.Svc.Addresses(c.Request().Context())
	if err != nil {
		h.Log.Error("address report error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/reports/customer-address-rentals?customer_id=7
func (h *Controller) AddressRentals(c echo.Context) error {
	var customerID *int64
	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid customer_id"})
		}
		customerID = &id
	}
	rows, err := h.Svc.AddressRentals(c.Request().Context(), customerID)
	if err != nil {
		h.Log.Error("address rental report error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/reports/customer-memberships
func (h *Controller) Memberships(c echo.Context) error {
	rows, err := h.Svc.Memberships(c.Request().Context())
	if err != nil {
		h.Log.Error("membership report error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
