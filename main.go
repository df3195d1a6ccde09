// File: smartsched/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartsched/config"
	"smartsched/handlers"
	"smartsched/routes"
	"smartsched/services/calendar"
	"smartsched/services/conversation"
	"smartsched/services/session"
	"smartsched/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitTokenCache()

	loc, err := time.LoadLocation(config.AppConfig.ReferenceTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid reference timezone %q: %v", config.AppConfig.ReferenceTimezone, err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	creds := calendar.NewCredentialStore(utils.GetTokenCacheClient())
	gateway := calendar.NewGoogleGateway(creds, loc,
		time.Duration(config.AppConfig.CalendarTimeoutSeconds)*time.Second)

	model, err := conversation.NewGeminiChatModel(context.Background(),
		config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize chat model: %v", err)
	}

	modelTimeout := time.Duration(config.AppConfig.ModelTimeoutSeconds) * time.Second
	registry := session.NewRegistry(func(sessionID string) conversation.ConversationService {
		return conversation.NewOrchestrator(model, conversation.NewDispatcher(gateway, loc), modelTimeout)
	}, time.Duration(config.AppConfig.SessionIdleMinutes)*time.Minute)

	handlerBundle := &handlers.HandlerBundle{
		Sessions: registry,
		Creds:    creds,
		Calendar: gateway,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	registry.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
