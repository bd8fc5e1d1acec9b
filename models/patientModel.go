package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Nom           string    `gorm:"column:nom;not null;index" json:"nom"`
	Prenom        string    `gorm:"column:prenom;not null" json:"prenom"`
	Sexe          string    `gorm:"column:sexe;check:sexe IN ('M', 'F');not null" json:"sexe"`
	DateNaissance string    `gorm:"column:date_naissance;not null" json:"date_naissance"`
	Telephone     string    `gorm:"column:telephone" json:"telephone"`
	Email         string    `gorm:"column:email" json:"email"`
	Adresse       string    `gorm:"column:adresse" json:"adresse"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patient"
}

// DossierMedical is the longitudinal chart of a patient, one per patient.
// DernierTraitement is overwritten with the medication text of the last
// prescription submitted during a consultation.
type DossierMedical struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	GroupeSanguin       string    `gorm:"column:groupe_sanguin" json:"groupe_sanguin"`
	AntecedentsMedicaux string    `gorm:"column:antecedents_medicaux;type:text" json:"antecedents_medicaux"`
	Allergies           string    `gorm:"column:allergies;type:text" json:"allergies"`
	DernierTraitement   string    `gorm:"column:dernier_traitement;type:text" json:"dernier_traitement"`
	Observations        string    `gorm:"column:observations;type:text" json:"observations"`
	PatientID           uint      `gorm:"column:patient_id;not null;uniqueIndex" json:"patient_id"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DossierMedical) TableName() string {
	return "dossier_medical"
}
