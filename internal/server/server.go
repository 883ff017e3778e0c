package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MyelinBots/userrank-go/config"
	"github.com/MyelinBots/userrank-go/internal/api"
	"github.com/MyelinBots/userrank-go/internal/db"
	"github.com/MyelinBots/userrank-go/internal/db/repositories/user"
	"github.com/MyelinBots/userrank-go/internal/healthcheck"
	"github.com/MyelinBots/userrank-go/internal/services/userservice"
	"github.com/gin-gonic/gin"
)

// Start wires config, store, service and routes, then serves until
// interrupted.
func Start() error {
	cfg := config.LoadConfigOrPanic()

	log.Printf("Starting %s %s on port %d", cfg.AppConfig.APPName, cfg.AppConfig.Version, cfg.AppConfig.Port)

	database, err := db.NewDatabase(cfg.DBConfig)
	if err != nil {
		return err
	}

	userRepo := user.NewUserRepository(database)
	userService := userservice.NewUserService(userRepo)
	userHandler := api.NewUserHandler(userService)

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.RequestLogger())

	router.GET("/health", healthcheck.Handler(cfg.AppConfig))
	api.RegisterRoutes(router, userHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.AppConfig.Port),
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
