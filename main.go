package main

import (
	"fmt"
	"log"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/config"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/database"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/router"
	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/store"
)

func main() {
	// load configuration
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// pick the store backend
	var st store.Store
	switch cfg.Database.Driver {
	case "memory":
		st = store.NewMemory()
	default:
		db, err := database.Init(cfg.Database)
		if err != nil {
			log.Fatalf("init database: %v", err)
		}
		if err := store.Migrate(db); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
		st = store.NewGorm(db)
	}

	// setup router
	r := router.SetupRouter(cfg, st)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
