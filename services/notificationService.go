package services

import (
	"GestionClinique/config"
	"GestionClinique/models"
	"GestionClinique/repositories"
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// RendezVousNotifier is the notification collaborator invoked after a
// rendez-vous is booked. Delivery is best-effort.
type RendezVousNotifier interface {
	NotifyRendezVousCree(ctx context.Context, rendezVous *models.RendezVous, medecin *models.Utilisateur)
}

type NotificationService struct {
	repository *repositories.NotificationRepository
	config     *config.AppConfig
}

func NewNotificationService(repository *repositories.NotificationRepository, config *config.AppConfig) *NotificationService {
	return &NotificationService{repository: repository, config: config}
}

// NotifyRendezVousCree persists an in-app notification for the medecin and,
// when SMTP is configured, sends a courtesy email. Neither failure reaches
// the caller.
func (s *NotificationService) NotifyRendezVousCree(ctx context.Context, rendezVous *models.RendezVous, medecin *models.Utilisateur) {
	notification := models.Notification{
		Type: models.NotificationRendezVous,
		Contenu: fmt.Sprintf("Nouveau rendez-vous le %s à %s (salle %d)",
			rendezVous.Jour, rendezVous.Heure, rendezVous.SalleID),
		UtilisateurID: medecin.ID,
		RendezVousID:  &rendezVous.ID,
	}
	if err := s.repository.Create(ctx, &notification); err != nil {
		log.Printf("Failed to create rendez-vous notification: %v", err)
	}

	if s.config != nil && s.config.SMTPConfigured() && medecin.Email != "" {
		if err := s.sendEmail(medecin.Email, rendezVous); err != nil {
			log.Printf("Failed to send rendez-vous email to %s: %v", medecin.Email, err)
		}
	}
}

func (s *NotificationService) sendEmail(to string, rendezVous *models.RendezVous) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Nouveau rendez-vous")
	m.SetBody("text/plain", fmt.Sprintf(
		"Un rendez-vous a été planifié le %s à %s.", rendezVous.Jour, rendezVous.Heure))

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUser, s.config.SMTPPassword)
	return d.DialAndSend(m)
}

func (s *NotificationService) FindByUtilisateur(ctx context.Context, utilisateurID uint) ([]models.Notification, error) {
	return s.repository.FindByUtilisateur(ctx, utilisateurID)
}

func (s *NotificationService) MarkLu(ctx context.Context, id uint) error {
	return s.repository.MarkLu(ctx, id)
}
