// Package main movie rental API.
//
// @title           Movie Rental API
// @version         1.0
// @description     movie rental service (catalog, locations, customers, rentals, reports).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer"
	authctrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/auth"
	customerctrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/customer"
	locationctrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/location"
	lookupctrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/lookup"
	moviectrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/movie"
	rentalctrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/rental"
	reportctrl "github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/controller/report"
	"github.com/DBD-Movie-Rental/movie-rental-main/app/echoServer/validation"
	"github.com/DBD-Movie-Rental/movie-rental-main/config"
	customerrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/customer"
	locationrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/location"
	lookuprepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/lookup"
	movierepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/movie"
	rentalrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/rental"
	reportrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/report"
	userrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/user"
	authsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/auth"
	catalogsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/catalog"
	customersvc "github.com/DBD-Movie-Rental/movie-rental-main/service/customer"
	facilitysvc "github.com/DBD-Movie-Rental/movie-rental-main/service/facility"
	lookupsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/lookup"
	rentalsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/rental"
	reportsvc "github.com/DBD-Movie-Rental/movie-rental-main/service/report"
	"github.com/DBD-Movie-Rental/movie-rental-main/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	kr := lookuprepo.New(db)
	mr := movierepo.New(db)
	lr := locationrepo.New(db)
	cr := customerrepo.New(db)
	rr := rentalrepo.New(db)
	pr := reportrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ks := lookupsvc.New(kr)
	cats := catalogsvc.New(db, mr, kr, cr)
	fs := facilitysvc.New(db, lr, mr, kr)
	cs := customersvc.New(db, cr, rr, kr)
	rs := rentalsvc.New(db, rr, lr, cr, kr, cfg.RentalPeriodDays)
	ps := reportsvc.New(pr)

	// background late sweep
	interval, err := time.ParseDuration(cfg.LateSweepInterval)
	if err != nil {
		log.Warn("invalid LATE_SWEEP_INTERVAL, using 10m", "value", cfg.LateSweepInterval)
		interval = 10 * time.Minute
	}
	go rentalsvc.NewSweeper(rs, interval, log).Run(ctx)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	movieC := &moviectrl.Controller{Svc: cats, V: v, Log: log}
	locationC := &locationctrl.Controller{Svc: fs, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: ps, Log: log}
	lookupC := &lookupctrl.Controller{Svc: ks, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Movie:    movieC,
		Location: locationC,
		Customer: customerC,
		Rental:   rentalC,
		Report:   reportC,
		Lookup:   lookupC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "env", cfg.Env, "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
