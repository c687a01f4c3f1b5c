package config

type App struct {
	Port              string `env:"APP_PORT" default:"8080"`
	DatabaseURL       string `env:"DATABASE_URL,required"`
	JWTSecret         string `env:"JWT_SECRET,required"`
	Env               string `env:"APP_ENV" default:"dev"`
	RentalPeriodDays  int    `env:"RENTAL_PERIOD_DAYS" default:"7"`
	LateSweepInterval string `env:"LATE_SWEEP_INTERVAL" default:"10m"`
}
