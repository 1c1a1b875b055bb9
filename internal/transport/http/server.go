package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"moviepicks/internal/config"
	"moviepicks/internal/database"
	"moviepicks/internal/handler"
	"moviepicks/internal/metadata"
	appredis "moviepicks/internal/redis"
	"moviepicks/internal/repository"
	"moviepicks/internal/service"
	"moviepicks/internal/session"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 3. Connect to Redis (session backing store)
	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	// 4. Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)

	sessionTTL := time.Duration(cfg.SessionMaxAge) * time.Second
	sessionStore := session.NewRedisStore(redisClient.Client, sessionTTL)
	sessions := session.NewManager(sessionStore, cfg.SessionSecret, sessionTTL)

	userService := service.NewUserService(userRepo, cfg.BcryptCost)
	movieService := service.NewMovieService(movieRepo)
	metadataClient := metadata.NewClient(cfg.OMDBBaseURL, cfg.OMDBAPIKey)

	router := NewRouter(RouterConfig{
		AuthHandler:  handler.NewAuthHandler(userService, sessions),
		MovieHandler: handler.NewMovieHandler(movieService, metadataClient, sessions),
		Sessions:     sessions,
	})

	// 5. Serve
	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)

	return stdhttp.ListenAndServe(addr, router)
}
