package main

import (
	"log"

	"psgc_api_go/config"
	"psgc_api_go/db"
	"psgc_api_go/handlers"
	"psgc_api_go/middleware"
	"psgc_api_go/models"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Region{},
		&models.Province{},
		&models.City{},
		&models.Municipality{},
		&models.Barangay{},
		&models.ImportRun{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			c.Set("debug", cfg.Debug)
			return next(c)
		}
	})

	// The serving API is read-only; writes happen only through the
	// offline import pipeline.
	api := e.Group("/api")
	api.Use(middleware.NewAPIRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow).Middleware())
	{
		api.GET("/regions", handlers.GetRegionsHandler)
		api.GET("/regions/:code", handlers.GetRegionHandler)
		api.GET("/regions/:code/provinces", handlers.GetRegionProvincesHandler)
		api.GET("/regions/:code/cities", handlers.GetRegionCitiesHandler)
		api.GET("/regions/:code/municipalities", handlers.GetRegionMunicipalitiesHandler)
		api.GET("/regions/:code/barangays", handlers.GetRegionBarangaysHandler)

		api.GET("/provinces", handlers.GetProvincesHandler)
		api.GET("/provinces/:code", handlers.GetProvinceHandler)
		api.GET("/provinces/:code/cities", handlers.GetProvinceCitiesHandler)
		api.GET("/provinces/:code/municipalities", handlers.GetProvinceMunicipalitiesHandler)
		api.GET("/provinces/:code/barangays", handlers.GetProvinceBarangaysHandler)

		api.GET("/cities", handlers.GetCitiesHandler)
		api.GET("/cities/:code", handlers.GetCityHandler)
		api.GET("/cities/:code/barangays", handlers.GetCityBarangaysHandler)

		api.GET("/municipalities", handlers.GetMunicipalitiesHandler)
		api.GET("/municipalities/:code", handlers.GetMunicipalityHandler)
		api.GET("/municipalities/:code/barangays", handlers.GetMunicipalityBarangaysHandler)

		api.GET("/barangays", handlers.GetBarangaysHandler)
		api.GET("/barangays/:code", handlers.GetBarangayHandler)

		api.GET("/search", handlers.SearchHandler)
		api.GET("/standards", handlers.GetStandardsReportHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
