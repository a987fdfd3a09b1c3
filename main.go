package main

import (
	"time"

	"github.com/kittiphat/volunteerhub/config"
	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/routes"
	"github.com/kittiphat/volunteerhub/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Admin{},
		&models.Customer{},
		&models.Event{},
		&models.AttendanceRecord{},
		&models.Reward{},
		&models.Redemption{},
	)

	r := routes.SetupRouter(db)

	// Settle dangling sessions from past days in the background.
	utils.StartSessionSweeper(db,
		time.Duration(cfg.SweepIntervalMin)*time.Minute,
		config.Location(),
		utils.PolicyFromName(cfg.PointsPolicy),
	)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
