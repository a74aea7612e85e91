package main

import (
	"club_tracker/internal/api"
	"club_tracker/internal/app/service"
	"club_tracker/internal/app/worker"
	"club_tracker/internal/common/security"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/config"
	"club_tracker/internal/platform/database"
	"club_tracker/internal/platform/judge"
	"club_tracker/internal/platform/logger"
	"club_tracker/internal/platform/queue"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config.Load()
	logger.Init(config.AppConfig.LogLevel)
	defer logger.Sync()

	security.InitJWT()

	database.Connect()
	defer database.Close()

	queue.ConnectRedis()
	defer queue.CloseRedis()

	// Repositories
	adminRepo := repository.NewPgAdminRepository(database.DB)
	handleRepo := repository.NewPgHandleRepository(database.DB)
	snapshotRepo := repository.NewPgSnapshotRepository(database.DB)
	teamRepo := repository.NewPgTeamRepository(database.DB)
	requestRepo := repository.NewPgRequestRepository(database.DB)

	// Judge clients
	codeforces := judge.NewCodeforcesClient(config.AppConfig.CodeforcesBaseURL, config.AppConfig.JudgeHTTPTimeout)
	vjudge := judge.NewVjudgeClient(config.AppConfig.VjudgeBaseURL, config.AppConfig.JudgeHTTPTimeout, queue.RDB, config.AppConfig.RankCacheTTL)

	// Services
	authService := service.NewAuthService(adminRepo)
	refreshService := service.NewRefreshService(handleRepo, snapshotRepo, codeforces, queue.RDB, config.AppConfig.RefreshQueueName)
	standingsService := service.NewStandingsService(handleRepo, snapshotRepo)
	ladderService := service.NewLadderService(teamRepo, vjudge)
	handleService := service.NewHandleService(handleRepo, snapshotRepo, refreshService)
	teamService := service.NewTeamService(teamRepo)
	requestService := service.NewRequestService(requestRepo, authService, handleService, teamService)

	if err := authService.EnsureDefaults(context.Background()); err != nil {
		logger.Fatal("Failed to seed default admin credentials", "error", err)
	}

	// Background refresh: one queue consumer plus the periodic scheduler.
	refreshWorker := worker.NewRefreshWorker(queue.RDB, refreshService, config.AppConfig.RefreshQueueName)
	scheduler := worker.NewScheduler(refreshService, config.AppConfig.RefreshInterval)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go refreshWorker.Start(workerCtx)
	go scheduler.Start(workerCtx)

	router := api.NewRouter(authService, standingsService, ladderService, handleService, teamService, requestService)

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
		logger.Info("Server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Could not listen", "port", config.AppConfig.APIPort, "error", err)
		}
	}()

	<-stop

	logger.Info("Shutting down server")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server shutdown failed", "error", err)
	}

	logger.Info("Server and workers stopped gracefully")
}
