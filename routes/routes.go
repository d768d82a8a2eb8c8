package routes

import (
	"ClinicFlow/cache"
	"ClinicFlow/config"
	"ClinicFlow/controllers"
	"ClinicFlow/handlers"
	"ClinicFlow/middlewares"
	"ClinicFlow/repositories"
	"ClinicFlow/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	inventoryRepo := repositories.NewInventoryRepository(cache)
	billRepo := repositories.NewBillRepository(cache, inventoryRepo)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	doctorRepo := repositories.NewDoctorRepository(cache)

	appointmentService := services.NewAppointmentService(appointmentRepo)
	calendarService := services.NewCalendarService(appointmentRepo)
	inventoryService := services.NewInventoryService(inventoryRepo)
	billingService := services.NewBillingService(billRepo, inventoryRepo)
	patientService := services.NewPatientService(patientRepo, billRepo)
	doctorService := services.NewDoctorService(doctorRepo)

	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	billingHandler := handlers.NewBillingHandler(billingService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		patientHandler,
		doctorHandler,
		appointmentHandler,
		calendarHandler,
		inventoryHandler,
		billingHandler,
	)

	controllers.SetupRootRoute(router)

	return router
}
