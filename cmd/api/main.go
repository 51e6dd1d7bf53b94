// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ngeukam/backendmaoni/internal/auth"
	"github.com/ngeukam/backendmaoni/internal/config"
	"github.com/ngeukam/backendmaoni/internal/email"
	"github.com/ngeukam/backendmaoni/internal/handler"
	"github.com/ngeukam/backendmaoni/internal/middleware"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
	"github.com/ngeukam/backendmaoni/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	sessionStore := session.NewStore(redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}))
	defer sessionStore.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := sessionStore.Ping(pingCtx); err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}

	// Repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	codeRepo := repository.NewCodeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	contentRepo := repository.NewContentRepository(db)
	translationRepo := repository.NewTranslationRepository(db)

	// Auth primitives
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	var emailService *email.Service
	if cfg.Sendgrid.APIKey != "" {
		emailService = email.NewService(cfg.Sendgrid.APIKey, cfg.Sendgrid.From)
	}

	// Services
	codeService := service.NewCodeService(codeRepo, logger)
	authService := service.NewAuthService(userRepo, sessionStore, passwordHasher, tokenManager, cfg.Session.Lifetime, logger)
	businessService := service.NewBusinessService(businessRepo, userRepo, categoryRepo, codeService, txManager, emailService, logger)
	userService := service.NewUserService(userRepo, businessService, passwordHasher, txManager, emailService, logger)
	reviewService := service.NewReviewService(reviewRepo, commentRepo, reportRepo, businessRepo, userRepo, codeService, txManager, logger)
	categoryService := service.NewCategoryService(categoryRepo)
	contentService := service.NewContentService(contentRepo)
	translationService := service.NewTranslationService(translationRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	businessHandler := handler.NewBusinessHandler(businessService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	codeHandler := handler.NewCodeHandler(codeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	contentHandler := handler.NewContentHandler(contentService)
	translationHandler := handler.NewTranslationHandler(translationService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			r.Post("/auth/signup", authHandler.SignupHandler)
			r.Post("/auth/login", authHandler.LoginHandler)
			r.Post("/auth/refresh", authHandler.RefreshHandler)

			r.Post("/reviews", reviewHandler.CreateHandler)
		})

		r.Get("/businesses", businessHandler.ListHandler)
		r.Get("/businesses/lookup", businessHandler.LookupHandler)
		r.Get("/businesses/{id}", businessHandler.GetHandler)
		r.Get("/businesses/{id}/related", businessHandler.RelatedHandler)

		r.Get("/reviews", reviewHandler.ListHandler)
		r.Get("/reviews/recent", reviewHandler.RecentHandler)
		r.Get("/reviews/{id}", reviewHandler.GetHandler)
		r.Get("/reviews/{id}/comments", reviewHandler.CommentsHandler)

		r.Get("/codes/{token}", codeHandler.StatusHandler)

		r.Get("/categories", categoryHandler.ListHandler)
		r.Get("/categories/counts", categoryHandler.BusinessCountsHandler)
		r.Get("/categories/{id}", categoryHandler.GetHandler)

		r.Get("/banners", contentHandler.ListBannersHandler)
		r.Get("/slides", contentHandler.ListSlidesHandler)
		r.Get("/translations/{code}", translationHandler.DictionaryHandler)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager, userRepo))

			r.Post("/auth/logout", authHandler.LogoutHandler)
			r.Get("/auth/session", authHandler.SessionHandler)

			r.Get("/me", userHandler.MeHandler)
			r.Get("/me/businesses", userHandler.MyBusinessesHandler)
			r.Get("/me/colleagues", userHandler.ColleaguesHandler)
			r.Get("/me/reviews", reviewHandler.MineHandler)
			r.Get("/me/reports", reviewHandler.MyReportsHandler)
			r.Post("/me/password", userHandler.ChangePasswordHandler)

			r.Post("/collaborators", userHandler.CreateCollaboratorHandler)
			r.Post("/users/{userID}/businesses", userHandler.AttachBusinessesHandler)
			r.Delete("/memberships/{userID}/{businessID}", userHandler.RemoveMembershipHandler)

			r.Post("/businesses", businessHandler.CreateHandler)
			r.Put("/businesses/{id}", businessHandler.UpdateHandler)
			r.Get("/businesses/{id}/codes", businessHandler.CodesHandler)

			r.Delete("/reviews/{id}", reviewHandler.DeactivateHandler)
			r.Post("/reviews/{id}/comments", reviewHandler.AddCommentHandler)

			// Staff routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Post("/businesses/{id}/verify", businessHandler.VerifyHandler)
				r.Post("/reports", reviewHandler.CreateReportHandler)

				r.Post("/categories", categoryHandler.CreateHandler)
				r.Put("/categories/{id}", categoryHandler.UpdateHandler)
				r.Delete("/categories/{id}", categoryHandler.DeleteHandler)

				r.Post("/banners", contentHandler.CreateBannerHandler)
				r.Put("/banners/{id}", contentHandler.UpdateBannerHandler)
				r.Delete("/banners/{id}", contentHandler.DeleteBannerHandler)

				r.Post("/slides", contentHandler.CreateSlideHandler)
				r.Put("/slides/{id}", contentHandler.UpdateSlideHandler)
				r.Delete("/slides/{id}", contentHandler.DeleteSlideHandler)

				r.Post("/translations", translationHandler.UpsertHandler)
			})
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Business{},
		&model.UserBusiness{},
		&model.Code{},
		&model.Review{},
		&model.Comment{},
		&model.Report{},
		&model.Banner{},
		&model.Slide{},
		&model.Language{},
		&model.Translation{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
