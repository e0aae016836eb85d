package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leetlab/internal/api"
	"leetlab/internal/app/service"
	"leetlab/internal/app/worker"
	"leetlab/internal/common/security"
	"leetlab/internal/domain/repository"
	"leetlab/internal/platform/config"
	"leetlab/internal/platform/database"
	"leetlab/internal/platform/queue"
)

func main() {
	config.Load()
	fmt.Println("Configuration loaded.")

	security.InitJWT()
	fmt.Println("JWT initialized.")

	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background(), database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	queue.ConnectRedis()
	defer queue.CloseRedis()
	fmt.Println("Redis connected.")

	userRepo := repository.NewPgUserRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	playlistRepo := repository.NewPgPlaylistRepository(database.DB)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, submissionRepo)
	problemService := service.NewProblemService(problemRepo)
	submissionService := service.NewSubmissionService(submissionRepo, problemRepo, queue.RDB, database.DB)
	playlistService := service.NewPlaylistService(playlistRepo, problemRepo)
	webhookService := service.NewWebhookService(submissionRepo, database.DB)

	executionWorker := worker.NewExecutionWorker(queue.RDB, submissionRepo, problemRepo)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go executionWorker.Start(workerCtx)
	fmt.Println("Execution worker started.")

	router := api.NewRouter(authService, userService, problemService, submissionService, playlistService, webhookService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
