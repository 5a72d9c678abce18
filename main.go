package main

import (
	"github.com/cppla/blogapi/config"
	"github.com/cppla/blogapi/models"
	"github.com/cppla/blogapi/routes"
	"github.com/cppla/blogapi/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	// Users first: posts reference them
	db := config.InitDatabase(&models.User{}, &models.Post{})

	r := routes.SetupRouter(cfg, db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
