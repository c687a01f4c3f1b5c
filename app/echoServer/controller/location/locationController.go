package location

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/jwtx"
	facilitysvc "github.com/DBD-Movie-Rental/movie-rental-main/service/facility"
)

type Controller struct {
	Svc facilitysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/locations  (admin)
func (h *Controller) Create(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req CreateLocationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.CreateLocation(c.Request().Context(), req.Address, req.City)
	if err != nil {
		h.Log.Error("location create error", "err", err)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/locations
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("location list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/locations/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	loc, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, loc)
}

// POST /v1/locations/:id/employees  (admin)
func (h *Controller) AddEmployee(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req EmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	emp, err := h.Svc.AddEmployee(c.Request().Context(), id, facilitysvc.EmployeeReq{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.Log.Error("employee add error", "err", err, "location_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, emp)
}

// DELETE /v1/locations/:id/employees/:employeeId  (admin)
func (h *Controller) DeactivateEmployee(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	empID, ok := paramID(c, "employeeId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid employee id"})
	}
	if err := h.Svc.DeactivateEmployee(c.Request().Context(), id, empID); err != nil {
		h.Log.Error("employee deactivate error", "err", err, "location_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deactivated"})
}

// POST /v1/locations/:id/inventory  (admin)
func (h *Controller) AddInventory(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddInventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	added, err := h.Svc.AddInventory(c.Request().Context(), id, req.MovieID, req.FormatID, req.Count)
	if err != nil {
		h.Log.Error("inventory add error", "err", err, "location_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"added": added})
}

// POST /v1/locations/:id/inventory/:itemId/retire  (admin)
func (h *Controller) RetireItem(c echo.Context) error {
	return h.itemAction(c, h.Svc.RetireItem, "retired")
}

// POST /v1/locations/:id/inventory/:itemId/damage  (admin)
func (h *Controller) DamageItem(c echo.Context) error {
	return h.itemAction(c, h.Svc.DamageItem, "damaged")
}

// POST /v1/locations/:id/inventory/:itemId/repair  (admin)
func (h *Controller) RepairItem(c echo.Context) error {
	return h.itemAction(c, h.Svc.RepairItem, "repaired")
}

func (h *Controller) itemAction(c echo.Context, do func(ctx context.Context, locationID, itemID int64) error, msg string) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}
	if err := do(c.Request().Context(), id, itemID); err != nil {
		h.Log.Error("inventory item update error", "err", err, "location_id", id, "item_id", itemID)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// GET /v1/inventory/availability?movie_id=&format_id=&location_id=
func (h *Controller) Availability(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.QueryParam("movie_id"), 10, 64)
	if err != nil || movieID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "movie_id is required"})
	}
	var formatID, locationID *int64
	if v := c.QueryParam("format_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid format_id"})
		}
		formatID = &n
	}
	if v := c.QueryParam("location_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid location_id"})
		}
		locationID = &n
	}
	rows, err := h.Svc.Availability(c.Request().Context(), movieID, formatID, locationID)
	if err != nil {
		h.Log.Error("availability error", "err", err, "movie_id", movieID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func (h *Controller) mapErr(c echo.Context, err error) error {
	switch facilitysvc.Code(err) {
	case facilitysvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case facilitysvc.ErrStateConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "state conflict"})
	case facilitysvc.ErrSchemaViolation:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
