package routes

import (
	"GestionClinique/cache"
	"GestionClinique/config"
	"GestionClinique/controllers"
	"GestionClinique/handlers"
	"GestionClinique/middlewares"
	"GestionClinique/repositories"
	"GestionClinique/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.gestionclinique.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	rendezVousRepo := repositories.NewRendezVousRepository(db, cache)
	factureRepo := repositories.NewFactureRepository(db, cache)
	consultationRepo := repositories.NewConsultationRepository(db, cache)
	salleRepo := repositories.NewSalleRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	utilisateurRepo := repositories.NewUtilisateurRepository(db, cache)
	statRepo := repositories.NewStatRepository(db)
	historiqueRepo := repositories.NewHistoriqueRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	historiqueService := services.NewHistoriqueService(historiqueRepo)
	notificationService := services.NewNotificationService(notificationRepo, config)
	statService := services.NewStatService(statRepo, rendezVousRepo, patientRepo, consultationRepo, factureRepo)
	factureService := services.NewFactureService(db, factureRepo, rendezVousRepo, historiqueService, statService)
	rendezVousService := services.NewRendezVousService(db, rendezVousRepo, salleRepo, patientRepo,
		utilisateurRepo, consultationRepo, factureService, historiqueService, notificationService, statService)
	consultationService := services.NewConsultationService(db, consultationRepo, rendezVousRepo, salleRepo,
		patientRepo, utilisateurRepo, factureService, historiqueService, statService)
	salleService := services.NewSalleService(salleRepo, historiqueService)
	patientService := services.NewPatientService(patientRepo, historiqueService, statService)
	utilisateurService := services.NewUtilisateurService(utilisateurRepo, historiqueService)
	authService := services.NewAuthService(utilisateurRepo, historiqueService)

	// Handlers
	rendezVousHandler := handlers.NewRendezVousHandler(rendezVousService)
	factureHandler := handlers.NewFactureHandler(factureService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	patientHandler := handlers.NewPatientHandler(patientService)
	salleHandler := handlers.NewSalleHandler(salleService)
	utilisateurHandler := handlers.NewUtilisateurHandler(utilisateurService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	historiqueHandler := handlers.NewHistoriqueHandler(historiqueService)
	statHandler := handlers.NewStatHandler(statService)
	authHandler := handlers.NewAuthHandler(authService)

	// Register routes; clinic routes require a valid PASETO token so audit
	// entries can be attributed to the authenticated user.
	protected := router.Group("", middlewares.TokenAuthMiddleware())
	controllers.SetupCliniqueRoutes(
		protected,
		rendezVousHandler,
		factureHandler,
		consultationHandler,
		patientHandler,
		salleHandler,
		utilisateurHandler,
		notificationHandler,
		historiqueHandler,
		statHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
