package main

import (
	"context"
	"log"

	"techgear-support-be/internal/bootstrap"
	"techgear-support-be/internal/config"
	"techgear-support-be/internal/server"
	"techgear-support-be/internal/tracer"
	"techgear-support-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; chatbot degrades without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Printf("[WARN] Unable to connect to GORM DB, retrieval disabled: %v", err)
		} else {
			gormDB = db
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if container.ConsumerService != nil {
		go func() {
			log.Println("Background: Starting Consumer Service...")
			if err := container.ConsumerService.Consume(context.Background()); err != nil {
				log.Printf("Background Consumer Error: %v", err)
			}
		}()
	}
	if container.NotifierService != nil {
		go func() {
			log.Println("Background: Starting Escalation Notifier...")
			if err := container.NotifierService.Start(); err != nil {
				log.Printf("Background Notifier Error: %v", err)
			}
		}()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
