package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/config"
	"github.com/brandbite/brandbite-api/internal/domain/analytics"
	"github.com/brandbite/brandbite-api/internal/domain/asset"
	"github.com/brandbite/brandbite-api/internal/domain/auth"
	"github.com/brandbite/brandbite-api/internal/domain/catalog"
	"github.com/brandbite/brandbite-api/internal/domain/company"
	"github.com/brandbite/brandbite-api/internal/domain/ledger"
	"github.com/brandbite/brandbite-api/internal/domain/payout"
	"github.com/brandbite/brandbite-api/internal/domain/plan"
	"github.com/brandbite/brandbite-api/internal/domain/realtime"
	"github.com/brandbite/brandbite-api/internal/domain/ticket"
	"github.com/brandbite/brandbite-api/internal/domain/user"
	"github.com/brandbite/brandbite-api/internal/domain/withdrawal"
	"github.com/brandbite/brandbite-api/internal/middleware"
	"github.com/brandbite/brandbite-api/internal/pkg/database"
	"github.com/brandbite/brandbite-api/internal/pkg/imaging"
	"github.com/brandbite/brandbite-api/internal/pkg/jwt"
	"github.com/brandbite/brandbite-api/internal/pkg/response"
	"github.com/brandbite/brandbite-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Brandbite API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	var store storage.Storage
	if cfg.R2AccountID != "" {
		r2, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
		store = r2
	} else {
		local, err := storage.NewLocalStorage("./data/assets", "http://localhost:"+cfg.Port+"/files")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		store = local
		log.Warn().Msg("R2 not configured, using local file storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	companyRepo := company.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)
	withdrawalRepo := withdrawal.NewRepository(db)
	payoutRepo := payout.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	planRepo := plan.NewRepository(db)
	ticketRepo := ticket.NewRepository(db)
	assetRepo := asset.NewRepository(db)

	// ---------- WebSocket hub ----------
	boardHub := realtime.NewHub(redisClient)
	go boardHub.Run()
	defer boardHub.Shutdown()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redisClient, companyRepo, cfg.DemoMode)
	userService := user.NewService(userRepo)
	ledgerService := ledger.NewService(ledgerRepo)
	payoutService := payout.NewService(payoutRepo, cfg.BasePayoutPercent)
	withdrawalService := withdrawal.NewService(withdrawalRepo, ledgerService)
	catalogService := catalog.NewService(catalogRepo)
	companyService := company.NewService(companyRepo, ledgerService)
	ticketService := ticket.NewService(ticketRepo, ledgerService, catalogService, payoutService, boardHub)
	assetService := asset.NewService(assetRepo, store, ticketService, imaging.NewProcessor(imaging.DefaultConfig()))
	analyticsService := analytics.NewService(userRepo, ticketRepo, payoutService, ledgerService, withdrawalService)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	payoutHandler := payout.NewHandler(payoutService)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService)
	catalogHandler := catalog.NewHandler(catalogService)
	planHandler := plan.NewHandler(planRepo)
	companyHandler := company.NewHandler(companyService)
	ticketHandler := ticket.NewHandler(ticketService)
	assetHandler := asset.NewHandler(assetService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	boardHandler := realtime.NewHandler(boardHub)

	authMiddleware := middleware.Auth(jwtService, authService, cfg.DemoMode)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws/board", func(w http.ResponseWriter, req *http.Request) {
		token := req.URL.Query().Get("token")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(boardHandler.Board)).ServeHTTP(w, req)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))

		// Uploads and assets are shared across roles; access is checked
		// per asset in the service.
		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(authMiddleware)

			r.Post("/uploads/r2/presign", assetHandler.Presign)
			r.Post("/assets/register", assetHandler.Register)
			r.Get("/assets/{id}/download", assetHandler.Download)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(authMiddleware)
			r.Use(middleware.RequireAdmin())

			r.Get("/designer-analytics", analyticsHandler.DesignerAnalytics)
			r.Mount("/plans", planHandler.AdminRoutes())
			r.Mount("/job-types", catalogHandler.AdminJobTypeRoutes())
			r.Mount("/job-type-categories", catalogHandler.AdminCategoryRoutes())
			r.Mount("/tickets", ticketHandler.AdminRoutes())
			r.Mount("/ledger", ledgerHandler.AdminRoutes())
			r.Mount("/withdrawals", withdrawalHandler.AdminRoutes())
			r.Mount("/payout-tiers", payoutHandler.AdminRoutes())

			r.Post("/companies/{id}/tokens", companyHandler.AdminGrant)
		})

		r.Route("/customer", func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(authMiddleware)
			r.Use(middleware.RequireCustomer())

			r.Get("/settings", companyHandler.Settings)
			r.Patch("/settings", companyHandler.UpdateSettings)
			r.Get("/tokens", companyHandler.Tokens)
			r.Get("/members", companyHandler.Members)
			r.Mount("/catalog", catalogHandler.CustomerRoutes())

			r.Get("/board", ticketHandler.CustomerBoard)
			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", ticketHandler.CustomerList)
				r.Post("/", ticketHandler.CustomerCreate)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", ticketHandler.CustomerGet)
					r.Patch("/", ticketHandler.CustomerMove)
					r.Get("/comments", ticketHandler.CustomerComments)
					r.Post("/comments", ticketHandler.CustomerAddComment)
					r.Get("/assets", assetHandler.TicketAssets)
				})
			})
		})

		r.Route("/creative", func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(authMiddleware)
			r.Use(middleware.RequireCreative())

			r.Get("/balance", ledgerHandler.CreativeBalance)
			r.Get("/availability", userHandler.Availability)
			r.Patch("/availability", userHandler.SetAvailability)
			r.Mount("/tickets", ticketHandler.CreativeRoutes())
			r.Mount("/withdrawals", withdrawalHandler.CreativeRoutes())
			r.Get("/payout-tier", payoutHandler.CreativeStatus)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
