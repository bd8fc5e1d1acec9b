package models

import (
	"time"
)

// User roles
const (
	RoleAdmin      = "ADMIN"
	RoleMedecin    = "MEDECIN"
	RoleSecretaire = "SECRETAIRE"
)

// Utilisateur represents a clinic staff member. Medecins carry the medical
// service whose tariff prices their consultations.
type Utilisateur struct {
	ID             uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Nom            string          `gorm:"column:nom;not null;index" json:"nom"`
	Prenom         string          `gorm:"column:prenom;not null" json:"prenom"`
	Email          string          `gorm:"column:email;unique;not null;index" json:"email"`
	Password       string          `gorm:"column:password;not null" json:"-"`
	Role           string          `gorm:"column:role;check:role IN ('ADMIN', 'MEDECIN', 'SECRETAIRE');not null" json:"role"`
	ServiceMedical *ServiceMedical `gorm:"column:service_medical" json:"service_medical"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Utilisateur) TableName() string {
	return "utilisateur"
}
