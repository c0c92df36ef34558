package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/booking"
	"github.com/cinetix/backend/internal/config"
	"github.com/cinetix/backend/internal/database"
	"github.com/cinetix/backend/internal/handler"
	"github.com/cinetix/backend/internal/middleware"
	"github.com/cinetix/backend/internal/queue"
	"github.com/cinetix/backend/internal/repository"
	"github.com/cinetix/backend/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: rate limiting and response caching turn into
	// pass-throughs when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	theaters := repository.NewTheaterRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	bookingSvc := booking.NewService(repository.NewSQLStore(db))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewCatalogHandler(movies, theaters, showtimes, bookingSvc))
	router.RegisterCustomer(e, handler.NewBookingHandler(bookingSvc, bookings), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(movies, theaters, showtimes, bookings, payments), cfg.JWTSecret)

	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
