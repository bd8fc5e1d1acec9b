package models

import (
	"time"
)

// Notification types
const (
	NotificationRendezVous = "RENDEZ_VOUS"
	NotificationSysteme    = "SYSTEME"
)

// Notification is a per-user message, created when a rendez-vous is booked
// for a medecin. Delivery is best-effort.
type Notification struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Type          string    `gorm:"column:type;not null" json:"type"`
	Contenu       string    `gorm:"column:contenu;not null" json:"contenu"`
	Lu            bool      `gorm:"column:lu;default:false" json:"lu"`
	UtilisateurID uint      `gorm:"column:utilisateur_id;not null;index" json:"utilisateur_id"`
	RendezVousID  *uint     `gorm:"column:rendez_vous_id" json:"rendez_vous_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notification"
}

// HistoriqueAction is an audit entry. Writes are fire-and-forget.
type HistoriqueAction struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Action        string    `gorm:"column:action;type:text;not null" json:"action"`
	UtilisateurID *uint     `gorm:"column:utilisateur_id;index" json:"utilisateur_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (HistoriqueAction) TableName() string {
	return "historique_action"
}
