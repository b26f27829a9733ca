package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"funlife/internal/config"
	"funlife/internal/database"
	"funlife/internal/handler"
	"funlife/internal/repository"
	"funlife/internal/service"
	"funlife/internal/storage"
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

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// 3. Media storage: Cloudflare R2 when configured, local disk otherwise
	var sink storage.Sink
	staticDir := ""
	if cfg.UseR2() {
		r2, err := storage.NewR2Sink(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to init R2 storage: %w", err)
		}
		sink = r2
		log.Println("[Storage] Using Cloudflare R2")
	} else {
		local, err := storage.NewLocalSink(cfg.UploadDir, cfg.UploadBaseURL)
		if err != nil {
			return fmt.Errorf("failed to init local storage: %w", err)
		}
		sink = local
		staticDir = local.Dir()
		log.Printf("[Storage] Using local disk at %s", staticDir)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// 5. Services
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, videoRepo, followRepo)
	videoService := service.NewVideoService(videoRepo, userRepo, likeRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, userRepo, videoRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	// 6. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService),
		UserHandler:    handler.NewUserHandler(userService, videoService),
		VideoHandler:   handler.NewVideoHandler(videoService, sink),
		CommentHandler: handler.NewCommentHandler(commentService),
		FollowHandler:  handler.NewFollowHandler(followService),
		MediaHandler:   handler.NewMediaHandler(userService, sink),
		AuthService:    authService,
		StaticDir:      staticDir,
		StaticPrefix:   cfg.UploadBaseURL,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
