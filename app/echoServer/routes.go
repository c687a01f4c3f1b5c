package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/auth"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/customer"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/location"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/lookup"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/movie"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/rental"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/report"
)

type C struct {
	Auth      *auth.Controller
	Movie     *movie.Controller
	Location  *location.Controller
	Customer  *customer.Controller
	Rental    *rental.Controller
	Report    *report.Controller
	Lookup    *lookup.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction from verified claims
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenObj := ctx.Get("user")
			if tokenObj == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tokenObj.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", int64(sub))
			if role, ok := claims["role"].(string); ok {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})

	// Catalog
	auth.GET("/movies", c.Movie.List)
	auth.GET("/movies/:id", c.Movie.Detail)
	auth.POST("/movies/:id/reviews", c.Movie.AddReview)
	// Admin endpoints
	auth.POST("/movies", c.Movie.Create)

	// Lookups
	auth.GET("/membership-types", c.Lookup.ListMembershipTypes)
	auth.POST("/membership-types", c.Lookup.CreateMembershipType)
	auth.GET("/fee-types", c.Lookup.ListFeeTypes)
	auth.POST("/fee-types", c.Lookup.CreateFeeType)
	auth.GET("/genres", c.Lookup.ListGenres)
	auth.POST("/genres", c.Lookup.CreateGenre)
	auth.GET("/formats", c.Lookup.ListFormats)
	auth.POST("/formats", c.Lookup.CreateFormat)
	auth.GET("/promo-codes", c.Lookup.ListPromoCodes)
	auth.POST("/promo-codes", c.Lookup.CreatePromoCode)

	// Locations + inventory
	auth.GET("/locations", c.Location.List)
	auth.GET("/locations/:id", c.Location.Detail)
	auth.POST("/locations", c.Location.Create)
	auth.POST("/locations/:id/employees", c.Location.AddEmployee)
	auth.DELETE("/locations/:id/employees/:employeeId", c.Location.DeactivateEmployee)
	auth.POST("/locations/:id/inventory", c.Location.AddInventory)
	auth.POST("/locations/:id/inventory/:itemId/retire", c.Location.RetireItem)
	auth.POST("/locations/:id/inventory/:itemId/damage", c.Location.DamageItem)
	auth.POST("/locations/:id/inventory/:itemId/repair", c.Location.RepairItem)
	auth.GET("/inventory/availability", c.Location.Availability)

	// Customers
	auth.POST("/customers", c.Customer.Create)
	auth.GET("/customers/:id", c.Customer.Detail)
	auth.PUT("/customers/:id/address", c.Customer.UpdateAddress)
	auth.POST("/customers/:id/membership", c.Customer.Subscribe)
	auth.POST("/customers/:id/recent-rentals/rebuild", c.Customer.RebuildRecentRentals)

	// Rentals
	auth.POST("/rentals/reserve", c.Rental.Reserve)
	auth.GET("/rentals/:id", c.Rental.Get)
	auth.POST("/rentals/:id/checkout", c.Rental.CheckOut)
	auth.POST("/rentals/:id/return", c.Rental.Return)
	auth.POST("/rentals/:id/cancel", c.Rental.Cancel)
	auth.POST("/rentals/:id/fees", c.Rental.AssessFee)
	auth.POST("/rentals/:id/payments", c.Rental.RecordPayment)

	// Reports
	auth.GET("/reports/overdue-rentals", c.Report.Overdue)
	auth.GET("/reports/customer-summaries", c.Report.Summaries)
	auth.GET("/reports/customer-summaries/:id", c.Report.SummaryForCustomer)
	auth.GET("/reports/customer-addresses", c.Report.Addresses)
	auth.GET("/reports/customer-address-rentals", c.Report.AddressRentals)
	auth.GET("/reports/customer-memberships", c.Report.Memberships)
}
