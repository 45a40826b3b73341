package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/booking"
	"github.com/iliyamo/airline-booking/internal/config"
	"github.com/iliyamo/airline-booking/internal/database"
	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
	"github.com/iliyamo/airline-booking/internal/queue"
	"github.com/iliyamo/airline-booking/internal/repository"
	"github.com/iliyamo/airline-booking/internal/router"
	"github.com/iliyamo/airline-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	countries := repository.NewCountryRepo(db)
	airports := repository.NewAirportRepo(db)
	routes := repository.NewRouteRepo(db)
	airplanes := repository.NewAirplaneRepo(db)
	crews := repository.NewCrewRepo(db)
	flights := repository.NewFlightRepo(db)
	orders := repository.NewOrderRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	alloc := booking.NewAllocator(flights, orders)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(countries, airports, routes, airplanes, crews, flights)
	orderH := handler.NewOrderHandler(alloc, orders)
	orderH.Publish = service.PublishOrderCreated

	e := echo.New()
	e.HideBanner = true

	publicMW := []echo.MiddlewareFunc{
		middleware.RateLimit(rdb, config.LoadRateLimitConfig()),
		middleware.Cache(rdb, config.LoadCacheConfig()),
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, cfg.JWTSecret, publicMW...)
	router.RegisterOrders(e, orderH, cfg.JWTSecret)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
