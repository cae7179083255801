package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"storynest/database"
	"storynest/internal/cache"
	"storynest/internal/config"
	"storynest/internal/http-api/handler"
	"storynest/internal/http-api/middleware"
	"storynest/internal/http-api/repository"
	"storynest/internal/http-api/service"
	"storynest/internal/logger"
	"storynest/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Get(cfg.IsDevelopment())

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	// The cache is optional: a dead redis degrades to direct reads.
	bookCache, err := cache.NewBookCache(cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, catalog caching disabled")
		bookCache = nil
	}

	bookFiles, err := storage.NewFileStore(cfg.BookDataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("book storage init failed")
	}
	userFiles, err := storage.NewFileStore(cfg.UserDataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("user storage init failed")
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	customizationRepo := repository.NewCustomizationRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)

	authService := service.NewAuthService(userRepo, refreshRepo, cfg)
	userService := service.NewUserService(userRepo)
	bookService := service.NewBookService(bookRepo, libraryRepo, bookFiles, bookCache)
	customizationService := service.NewCustomizationService(customizationRepo, bookRepo, userFiles)
	purchaseService := service.NewPurchaseService(purchaseRepo, libraryRepo, bookRepo, customizationRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)
	customizationHandler := handler.NewCustomizationHandler(customizationService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.MaxMultipartMemory = int64(cfg.UploadMaxMB) << 20

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// /user carries registration, the token endpoints and account management.
	userGroup := router.Group("/user")
	{
		authRoutes := userGroup.Group("", middleware.RateLimit(cfg.AuthRatePerSec, cfg.AuthRateBurst))
		authHandler.RegisterRoutes(authRoutes)

		profileRoutes := userGroup.Group("", middleware.AuthMiddleware(authService))
		userHandler.RegisterRoutes(profileRoutes)
	}

	// /books splits into public browsing, authenticated downloads and admin
	// catalog management; personalization rides along behind a login.
	booksGroup := router.Group("/books")
	{
		authed := booksGroup.Group("", middleware.AuthMiddleware(authService))
		admin := authed.Group("", middleware.RequireAdmin())
		bookHandler.RegisterRoutes(booksGroup, authed, admin)
		customizationHandler.RegisterRoutes(authed)
	}

	// /buy is the purchase workflow, everything behind a login.
	buyGroup := router.Group("/buy", middleware.AuthMiddleware(authService))
	purchaseHandler.RegisterRoutes(buyGroup)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		<-c
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Int("port", cfg.HTTPPort).Msg("api server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}
