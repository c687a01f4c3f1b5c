package customer

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	customersvc "github.com/DBD-Movie-Rental/movie-rental-main/service/customer"
)

type Controller struct {
	Svc customersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/customers
func (h *Controller) Create(c echo.Context) error {
	var req CreateCustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	cust, err := h.Svc.Create(c.Request().Context(), customersvc.CreateReq{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		PostCode:    req.PostCode,
	})
	if err != nil {
		switch customersvc.Code(err) {
		case customersvc.ErrEmailTaken:
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		case customersvc.ErrSchemaViolation:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
		default:
			h.Log.Error("customer create error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, cust)
}

// GET /v1/customers/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	cust, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// PUT /v1/customers/:id/address
func (h *Controller) UpdateAddress(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.UpdateAddress(c.Request().Context(), id, customersvc.AddressReq{
		Address:  req.Address,
		City:     req.City,
		PostCode: req.PostCode,
	}); err != nil {
		h.Log.Error("address update error", "err", err, "customer_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "address updated"})
}

// POST /v1/customers/:id/membership
func (h *Controller) Subscribe(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SubscribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	plan, err := h.Svc.Subscribe(c.Request().Context(), id, model.MembershipLevel(req.MembershipType))
	if err != nil {
		h.Log.Error("subscribe error", "err", err, "customer_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, plan)
}

// POST /v1/customers/:id/recent-rentals/rebuild
func (h *Controller) RebuildRecentRentals(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	cache, err := h.Svc.RebuildRecentRentals(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("recent rentals rebuild error", "err", err, "customer_id", id)
		return h.mapErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"recent_rentals": cache})
}

func (h *Controller) mapErr(c echo.Context, err error) error {
	switch customersvc.Code(err) {
	case customersvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case customersvc.ErrSchemaViolation:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "schema violation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
