package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/recati/comanda-app/config"
	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/router"
	"github.com/recati/comanda-app/store"
	"github.com/recati/comanda-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	utils.InitLogger()
}

func openGateway(cfg config.Config) (store.Gateway, error) {
	switch cfg.StorageDriver {
	case "sqlite", "mysql":
		return store.NewDBGateway(cfg.StorageDriver, cfg.DatabaseDSN)
	default:
		return store.NewFileGateway(cfg.StoragePath), nil
	}
}

func main() {
	cfg := config.Load()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gateway, err := openGateway(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("open storage gateway (%s): %v", cfg.StorageDriver, err)
	}

	var seed func() *models.Snapshot
	if cfg.SeedDemoData {
		seed = store.SeedSnapshot
	}

	st, err := store.Open(gateway, seed)
	if err != nil {
		utils.ErrorLogger.Fatalf("open store: %v", err)
	}

	r := router.SetupRouter(st)
	if err := r.SetTrustedProxies(nil); err != nil {
		utils.ErrorLogger.Fatalf("set trusted proxies: %v", err)
	}

	utils.InfoLogger.Printf("comanda engine listening on :%s (storage=%s)", cfg.Port, cfg.StorageDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
