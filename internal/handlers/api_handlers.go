package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/Williamwenda/FoodSlotMachine/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// APIVersion is reported by the catalog service's index route.
const APIVersion = "1.0.0"

// APIHandler serves the food catalog as JSON.
type APIHandler struct {
	service *services.FoodService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(service *services.FoodService) *APIHandler {
	return &APIHandler{service: service}
}

// RegisterRoutes registers the catalog routes and the JSON 404 handler.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(CORSMiddleware())

	router.GET("/", h.Index)
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/foods", h.ListFoods)
	v1.GET("/foods/:id", h.GetFood)
	v1.GET("/splats", h.ListFoods) // alias kept for the 3D viewer
	v1.GET("/random", h.RandomFoods)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

// CORSMiddleware lets browser front ends on other origins read the catalog.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RecoveryMiddleware answers panics with a JSON 500.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("Panic serving %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// Index describes the service and its endpoints.
func (h *APIHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Food Slot Machine API Server",
		"version": APIVersion,
		"endpoints": gin.H{
			"/api/v1/foods":     "Get all food items",
			"/api/v1/foods/:id": "Get food item by ID",
			"/api/v1/splats":    "Get all food items (alias)",
			"/api/v1/random":    "Get random food items",
			"/health":           "Health check",
		},
	})
}

// ListFoods returns every food, optionally filtered by category and cuisine.
func (h *APIHandler) ListFoods(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.All(c.Query("category"), c.Query("cuisine")))
}

// GetFood returns a single food by id.
func (h *APIHandler) GetFood(c *gin.Context) {
	item, err := h.service.ByID(models.FoodID(c.Param("id")))
	if errors.Is(err, services.ErrFoodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// RandomFoods returns ?count= distinct random foods (3 by default).
func (h *APIHandler) RandomFoods(c *gin.Context) {
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil {
		count = services.DefaultRandomCount
	}
	c.JSON(http.StatusOK, h.service.Random(count))
}

// Health reports liveness and catalog size.
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"total_items": h.service.Count(),
	})
}
