package main

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/config"
	"github.com/Williamwenda/FoodSlotMachine/internal/engine"
	"github.com/Williamwenda/FoodSlotMachine/internal/handlers"
	"github.com/Williamwenda/FoodSlotMachine/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed all:assets
var assetsFS embed.FS

func main() {
	cfg := config.LoadSlot()

	lg := logger.Init("slotmachine", cfg.LogVerbose, false, io.Discard)
	defer lg.Close()

	// 1. Every session gets its own machine; the catalog request is bounded by FetchTimeout.
	client := &http.Client{Timeout: cfg.FetchTimeout}
	slotService := services.NewSlotService(func(presenter engine.Presenter) *engine.Machine {
		return engine.NewMachine(engine.Config{
			Endpoint: cfg.CatalogEndpoint,
			Client:   client,
			PoolSize: cfg.TestingPoolSize,
			Rand:     engine.NewRand(cfg.Seed),
		}, presenter)
	})

	// 2. Load HTML templates from the embedded filesystem.
	templates, err := template.New("").Funcs(handlers.TemplateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		logger.Fatalf("Failed to parse templates: %v", err)
	}

	// 3. Initialize the HTTP Handler
	httpHandler := handlers.NewHTTPHandler(slotService, templates)

	// 4. Set up the Gin router
	r := gin.Default()

	// 5. Serve static files from the embedded filesystem.
	assetsSubFS, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		logger.Fatalf("Failed to create assets sub-filesystem: %v", err)
	}
	r.StaticFS("/assets", http.FS(assetsSubFS))

	// 6. Register public routes (before middleware)
	httpHandler.RegisterPublicRoutes(r)

	// 7. Group routes that require a session and apply middleware
	tenantRoutes := r.Group("/")
	tenantRoutes.Use(httpHandler.TenantMiddleware())
	httpHandler.RegisterTenantRoutes(tenantRoutes)

	// 8. Start the background janitor to clean up inactive sessions
	go func() {
		for {
			time.Sleep(cfg.CleanupInterval)
			removed := slotService.CleanUpInactiveSessions(cfg.SessionTTL)
			logger.Infof("Performed cleanup of inactive sessions, removed %d.", removed)
		}
	}()

	// 9. Run the server
	logger.Infof("Testing pool size %d, catalog endpoint %s", cfg.TestingPoolSize, cfg.CatalogEndpoint)
	logger.Infof("Server starting on http://localhost%s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
