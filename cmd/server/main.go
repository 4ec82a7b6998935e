package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsonshare/jsonshare-backend/internal/conf"
	"github.com/jsonshare/jsonshare-backend/internal/data"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/jsonshare/jsonshare-backend/internal/server"
	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	sharedata "github.com/jsonshare/jsonshare-backend/internal/share/data"
	"github.com/jsonshare/jsonshare-backend/internal/share/service"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(&config.Log); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize repositories
	contentRepo := sharedata.NewContentRepo(d.DB)
	fileRepo := sharedata.NewFileRepo(d.DB)
	txManager := sharedata.NewTxManager(d.DB)

	// Initialize use cases
	shareUseCase := biz.NewShareUseCase(fileRepo, contentRepo, txManager, log)
	savedUseCase := biz.NewSavedUseCase(shareUseCase, fileRepo, contentRepo, txManager, log)

	// Initialize services
	shareService := service.NewShareService(shareUseCase, log, config.Share.MaxUploadBytes)
	savedService := service.NewSavedService(savedUseCase, log)

	// Initialize server
	httpServer := server.NewHTTPServer(config, log, d, shareService, savedService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
