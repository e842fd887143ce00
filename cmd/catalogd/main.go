package main

import (
	"io"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/config"
	"github.com/Williamwenda/FoodSlotMachine/internal/dataset"
	"github.com/Williamwenda/FoodSlotMachine/internal/engine"
	"github.com/Williamwenda/FoodSlotMachine/internal/handlers"
	"github.com/Williamwenda/FoodSlotMachine/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

func main() {
	cfg := config.LoadCatalog()

	lg := logger.Init("catalogd", cfg.LogVerbose, false, io.Discard)
	defer lg.Close()

	// 1. Load the catalog and fill in ratings and discounts it does not carry.
	items, err := dataset.Load(cfg.DataPath)
	if err != nil {
		logger.Fatalf("Failed to load catalog: %v", err)
	}
	rng := engine.NewRand(cfg.Seed)
	items = dataset.Enrich(items, rng, dataset.DiscountOptions{
		Mean:       cfg.DiscountMean,
		StdDev:     cfg.DiscountStdDev,
		ValidHours: cfg.DiscountValidHours,
	}, time.Now())

	// 2. Initialize the Food Service and its handler
	apiHandler := handlers.NewAPIHandler(services.NewFoodService(items, rng))

	// 3. Set up the Gin router
	r := gin.New()
	r.Use(gin.Logger(), handlers.RecoveryMiddleware())
	apiHandler.RegisterRoutes(r)

	// 4. Run the server
	logger.Infof("Food Slot Machine API Server running on http://localhost%s", cfg.Addr)
	logger.Infof("Serving %d food items", len(items))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
