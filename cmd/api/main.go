package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httphandlers "github.com/rafabene/chatconvite-backend/internal/handlers/http"
	"github.com/rafabene/chatconvite-backend/internal/handlers/middleware"
	"github.com/rafabene/chatconvite-backend/internal/handlers/ws"
	"github.com/rafabene/chatconvite-backend/internal/infrastructure/config"
	"github.com/rafabene/chatconvite-backend/internal/infrastructure/i18n"
	"github.com/rafabene/chatconvite-backend/internal/infrastructure/logging"
	"github.com/rafabene/chatconvite-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/chatconvite-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting chatconvite backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Semear o invite code inicial enquanto não houver admin
	if err := postgres.SeedInviteCode(db, cfg.Chat.SeedInviteCode, logger); err != nil {
		logger.Error("failed to seed invite code", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	codeRepo := postgres.NewInviteCodeRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	userService := services.NewUserService(userRepo, logger)
	registrationService := services.NewRegistrationService(
		userRepo, codeRepo, uow, logger, cfg.Chat.SeedInviteCode,
	)
	chatService := services.NewChatService(userRepo, messageRepo, logger)
	adminService := services.NewAdminService(userRepo, codeRepo, userService, logger)

	// Inicializar hub do chat
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := ws.NewHub(logger)
	go hub.Run(hubCtx)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(registrationService, userService)
	messageHandler := httphandlers.NewMessageHandler(chatService)
	adminHandler := httphandlers.NewAdminHandler(adminService)
	wsHandler := ws.NewHandler(hub, chatService, i18nService, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/check-code", authHandler.CheckCode)
		api.POST("/register", authHandler.Register)
		api.GET("/user/:id", authHandler.GetUser)
		api.GET("/messages", messageHandler.ListMessages)

		admin := api.Group("/admin")
		{
			admin.POST("/generate-code", adminHandler.GenerateCode)
			admin.GET("/codes", adminHandler.ListCodes)
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/ban-user", adminHandler.SetUserStatus)
		}
	}

	// Canal realtime do chat
	router.GET("/ws", wsHandler.ServeWS)

	// Fallback estático: serve o cliente SPA; rotas /api desconhecidas
	// respondem 404 JSON
	router.NoRoute(spaFallback(cfg.Server.PublicDir))

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	stopHub()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// spaFallback serve os arquivos estáticos do cliente e devolve
// index.html para qualquer rota não-API (roteamento do lado do cliente)
func spaFallback(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "not found",
			})
			return
		}

		requested := filepath.Join(publicDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		c.File(filepath.Join(publicDir, "index.html"))
	}
}
