package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/iroda0103/dastavka/configs"
	"github.com/iroda0103/dastavka/middlewares"
	"github.com/iroda0103/dastavka/pkg/logger"
	"github.com/iroda0103/dastavka/routes"
)

func main() {
	cfg := configs.LoadConfig()

	appLog := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})

	// DB
	db, err := configs.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer configs.Close(db)

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := configs.SeedAdmin(db); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	// serve uploaded files
	r.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg, appLog)

	addr := fmt.Sprintf(":%s", cfg.Port)
	appLog.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
