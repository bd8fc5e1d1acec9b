package controllers

import (
	"GestionClinique/handlers"
	"GestionClinique/middlewares"
	"GestionClinique/models"

	"github.com/gin-gonic/gin"
)

// SetupCliniqueRoutes registers the clinic routes: rendez-vous lifecycle,
// billing, consultations, directories and statistics. The group already
// carries the token middleware; role guards are added per route where an
// operation is restricted to a profession.
func SetupCliniqueRoutes(
	router *gin.RouterGroup,
	rendezVousHandler *handlers.RendezVousHandler,
	factureHandler *handlers.FactureHandler,
	consultationHandler *handlers.ConsultationHandler,
	patientHandler *handlers.PatientHandler,
	salleHandler *handlers.SalleHandler,
	utilisateurHandler *handlers.UtilisateurHandler,
	notificationHandler *handlers.NotificationHandler,
	historiqueHandler *handlers.HistoriqueHandler,
	statHandler *handlers.StatHandler,
) {
	medecinOnly := middlewares.RoleAuthMiddleware(models.RoleMedecin)
	secretaireOnly := middlewares.RoleAuthMiddleware(models.RoleSecretaire)
	adminOnly := middlewares.RoleAuthMiddleware(models.RoleAdmin)

	router.POST("/rendezvous", rendezVousHandler.Create)
	router.GET("/rendezvous", rendezVousHandler.GetAll)
	router.GET("/rendezvous/disponibilite", rendezVousHandler.CheckDisponibilite)
	router.GET("/rendezvous/:id", rendezVousHandler.GetByID)
	router.PUT("/rendezvous/:id", rendezVousHandler.Update)
	router.DELETE("/rendezvous/:id", rendezVousHandler.Delete)
	router.PUT("/rendezvous/:id/cancel", rendezVousHandler.Cancel)
	router.POST("/rendezvous/cancel-old", rendezVousHandler.CancelOld)
	router.GET("/rendezvous/jour/:jour", rendezVousHandler.GetByJour)
	router.GET("/rendezvous/month/:year/:month", rendezVousHandler.GetByMonth)
	router.GET("/rendezvous/medecin/:id", rendezVousHandler.GetConfirmesByMedecin)

	router.PATCH("/factures/payer/:id/:mode", secretaireOnly, factureHandler.Payer)
	router.GET("/factures", factureHandler.GetAll)
	router.GET("/factures/:id", factureHandler.GetByID)
	router.DELETE("/factures/:id", secretaireOnly, factureHandler.Delete)
	router.GET("/factures/statut/impayee", factureHandler.GetImpayees)
	router.GET("/factures/statut/payee", factureHandler.GetPayees)
	router.GET("/factures/rendezvous/:id", factureHandler.GetByRendezVous)

	router.POST("/consultations/start/:rendezVousId", medecinOnly, consultationHandler.Start)
	router.POST("/consultations/emergency", medecinOnly, consultationHandler.CreateUrgence)
	router.GET("/consultations", consultationHandler.GetAll)
	router.GET("/consultations/:id", consultationHandler.GetByID)
	router.PUT("/consultations/:id", medecinOnly, consultationHandler.Update)
	router.DELETE("/consultations/:id", medecinOnly, consultationHandler.Delete)
	router.GET("/consultations/rendezvous/:rendezVousId", consultationHandler.GetByRendezVous)
	router.POST("/consultations/:id/prescriptions", medecinOnly, consultationHandler.AddPrescription)
	router.GET("/consultations/:id/prescriptions", consultationHandler.GetPrescriptions)

	router.POST("/patients", patientHandler.Create)
	router.GET("/patients", patientHandler.GetAll)
	router.GET("/patients/:id", patientHandler.GetByID)
	router.PUT("/patients/:id", patientHandler.Update)
	router.DELETE("/patients/:id", patientHandler.Delete)
	router.GET("/patients/:id/dossier", patientHandler.GetDossier)
	router.PUT("/patients/:id/dossier", patientHandler.UpdateDossier)

	router.POST("/salles", salleHandler.Create)
	router.GET("/salles", salleHandler.GetAll)
	router.GET("/salles/:id", salleHandler.GetByID)
	router.PATCH("/salles/:id/statut", salleHandler.UpdateStatut)
	router.GET("/salles/service/:service", salleHandler.GetByService)

	router.POST("/utilisateurs", adminOnly, utilisateurHandler.Create)
	router.GET("/utilisateurs", utilisateurHandler.GetAll)
	router.GET("/utilisateurs/medecins", utilisateurHandler.GetMedecins)
	router.GET("/utilisateurs/:id", utilisateurHandler.GetByID)
	router.PUT("/utilisateurs/:id", adminOnly, utilisateurHandler.Update)
	router.DELETE("/utilisateurs/:id", adminOnly, utilisateurHandler.Delete)

	router.GET("/notifications/utilisateur/:utilisateurId", notificationHandler.GetByUtilisateur)
	router.PUT("/notifications/:id/lu", notificationHandler.MarkLu)

	router.GET("/historique", adminOnly, historiqueHandler.GetAll)

	router.GET("/stats/jour", adminOnly, statHandler.GetJour)
	router.GET("/stats/mois/:mois", adminOnly, statHandler.GetMois)
	router.GET("/stats/annee/:annee", adminOnly, statHandler.GetAnnee)
	router.POST("/stats/refresh", adminOnly, statHandler.Refresh)
}
