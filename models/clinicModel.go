package models

import (
	"time"

	"gorm.io/gorm"
)

// StatutRDV is the lifecycle status of a rendez-vous.
type StatutRDV string

const (
	RDVEnAttente StatutRDV = "EN_ATTENTE"
	RDVConfirme  StatutRDV = "CONFIRME"
	RDVEnCours   StatutRDV = "ENCOURS"
	RDVTermine   StatutRDV = "TERMINE"
	RDVAnnule    StatutRDV = "ANNULE"
)

// StatutPaiement is the payment status of a facture.
type StatutPaiement string

const (
	FactureImpayee StatutPaiement = "IMPAYEE"
	FacturePayee   StatutPaiement = "PAYEE"
)

// ModePaiement is the payment channel recorded on a facture.
type ModePaiement string

const (
	PaiementEspeces       ModePaiement = "ESPECES"
	PaiementCarteBancaire ModePaiement = "CARTE_BANCAIRE"
	PaiementMobileMoney   ModePaiement = "MOBILE_MONEY"
	PaiementCheque        ModePaiement = "CHEQUE"
)

// ValidModePaiement reports whether mode is one of the supported payment channels.
func ValidModePaiement(mode ModePaiement) bool {
	switch mode {
	case PaiementEspeces, PaiementCarteBancaire, PaiementMobileMoney, PaiementCheque:
		return true
	}
	return false
}

// StatutSalle is the occupancy status of a treatment room.
type StatutSalle string

const (
	SalleDisponible StatutSalle = "DISPONIBLE"
	SalleOccupee    StatutSalle = "OCCUPEE"
)

// ServiceMedical identifies a medical department; each service has a
// designated salle and a consultation tariff.
type ServiceMedical string

const (
	MedecineGenerale ServiceMedical = "MEDECINE_GENERALE"
	Cardiologie      ServiceMedical = "CARDIOLOGIE"
	Pediatrie        ServiceMedical = "PEDIATRIE"
	Dermatologie     ServiceMedical = "DERMATOLOGIE"
	Ophtalmologie    ServiceMedical = "OPHTALMOLOGIE"
	Radiologie       ServiceMedical = "RADIOLOGIE"
)

var tarifs = map[ServiceMedical]float64{
	MedecineGenerale: 5000,
	Cardiologie:      15000,
	Pediatrie:        7000,
	Dermatologie:     10000,
	Ophtalmologie:    12000,
	Radiologie:       20000,
}

// TarifPourService returns the consultation tariff of a medical service.
// Unknown services fall back to the general medicine tariff.
func TarifPourService(service ServiceMedical) float64 {
	if tarif, ok := tarifs[service]; ok {
		return tarif
	}
	return tarifs[MedecineGenerale]
}

// ValidServiceMedical reports whether service is a known department.
func ValidServiceMedical(service ServiceMedical) bool {
	_, ok := tarifs[service]
	return ok
}

// Salle is a treatment room assigned to one medical service.
type Salle struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	NumeroSalle    string         `gorm:"column:numero_salle;unique;not null" json:"numero_salle"`
	ServiceMedical ServiceMedical `gorm:"column:service_medical;not null;index" json:"service_medical"`
	StatutSalle    StatutSalle    `gorm:"column:statut_salle;check:statut_salle IN ('DISPONIBLE', 'OCCUPEE');not null" json:"statut_salle"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Salle) TableName() string {
	return "salle"
}

// RendezVous is a scheduled slot binding patient, medecin, salle and time.
// Slot uniqueness among non-cancelled rows is enforced by partial unique
// indexes created in database.Migrate.
type RendezVous struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Jour           string         `gorm:"column:jour;not null;index" json:"jour"`
	Heure          string         `gorm:"column:heure;not null" json:"heure"`
	Statut         StatutRDV      `gorm:"column:statut;check:statut IN ('EN_ATTENTE', 'CONFIRME', 'ENCOURS', 'TERMINE', 'ANNULE');not null" json:"statut"`
	Notes          string         `gorm:"column:notes;type:text" json:"notes"`
	ServiceMedical ServiceMedical `gorm:"column:service_medical;not null" json:"service_medical"`
	PatientID      uint           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	MedecinID      uint           `gorm:"column:medecin_id;not null;index" json:"medecin_id"`
	SalleID        uint           `gorm:"column:salle_id;not null;index" json:"salle_id"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient        Patient        `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Medecin        Utilisateur    `gorm:"foreignKey:MedecinID;references:ID" json:"medecin"`
	Salle          Salle          `gorm:"foreignKey:SalleID;references:ID" json:"salle"`
}

func (RendezVous) TableName() string {
	return "rendez_vous"
}

// Facture is the billing record of a rendez-vous or a direct consultation.
// At most one facture per rendez-vous and per consultation.
type Facture struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Montant        float64        `gorm:"column:montant;not null" json:"montant"`
	DateEmission   time.Time      `gorm:"column:date_emission;not null" json:"date_emission"`
	StatutPaiement StatutPaiement `gorm:"column:statut_paiement;check:statut_paiement IN ('IMPAYEE', 'PAYEE');not null" json:"statut_paiement"`
	ModePaiement   ModePaiement   `gorm:"column:mode_paiement;not null" json:"mode_paiement"`
	PatientID      *uint          `gorm:"column:patient_id;index" json:"patient_id"`
	ConsultationID *uint          `gorm:"column:consultation_id;uniqueIndex" json:"consultation_id"`
	RendezVousID   *uint          `gorm:"column:rendez_vous_id;uniqueIndex" json:"rendez_vous_id"`
}

func (Facture) TableName() string {
	return "facture"
}

// Consultation is the clinical encounter record. RendezVousID is set when the
// consultation was started from a rendez-vous and nil on the emergency path.
type Consultation struct {
	ID                uint           `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Poids             float64        `gorm:"column:poids;not null" json:"poids"`
	Taille            float64        `gorm:"column:taille;not null" json:"taille"`
	Temperature       float64        `gorm:"column:temperature;not null" json:"temperature"`
	TensionArterielle string         `gorm:"column:tension_arterielle;not null" json:"tension_arterielle"`
	Motifs            string         `gorm:"column:motifs;not null" json:"motifs"`
	CompteRendu       string         `gorm:"column:compte_rendu;type:text" json:"compte_rendu"`
	Diagnostic        string         `gorm:"column:diagnostic;type:text" json:"diagnostic"`
	DossierMedicalID  *uint          `gorm:"column:dossier_medical_id;index" json:"dossier_medical_id"`
	MedecinID         uint           `gorm:"column:medecin_id;not null;index" json:"medecin_id"`
	RendezVousID      *uint          `gorm:"column:rendez_vous_id;uniqueIndex" json:"rendez_vous_id"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Medecin           Utilisateur    `gorm:"foreignKey:MedecinID;references:ID" json:"medecin"`
	Prescriptions     []Prescription `gorm:"foreignKey:ConsultationID;references:ID" json:"prescriptions"`
}

func (Consultation) TableName() string {
	return "consultation"
}

// Prescription belongs to a consultation. Patient and dossier links stay nil
// on the emergency path until the chart is attached later.
type Prescription struct {
	ID                uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	TypePrescription  string    `gorm:"column:type_prescription;not null" json:"type_prescription"`
	Medicaments       string    `gorm:"column:medicaments;type:text" json:"medicaments"`
	Instructions      string    `gorm:"column:instructions;type:text" json:"instructions"`
	DureePrescription string    `gorm:"column:duree_prescription" json:"duree_prescription"`
	Quantite          int       `gorm:"column:quantite;not null" json:"quantite"`
	ConsultationID    uint      `gorm:"column:consultation_id;not null;index" json:"consultation_id"`
	MedecinID         uint      `gorm:"column:medecin_id;not null" json:"medecin_id"`
	PatientID         *uint     `gorm:"column:patient_id;index" json:"patient_id"`
	DossierMedicalID  *uint     `gorm:"column:dossier_medical_id;index" json:"dossier_medical_id"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// SeedSalles inserts one salle per medical service.
func SeedSalles(db *gorm.DB) error {
	initialSalles := []Salle{
		{NumeroSalle: "S-101", ServiceMedical: MedecineGenerale, StatutSalle: SalleDisponible},
		{NumeroSalle: "S-102", ServiceMedical: Cardiologie, StatutSalle: SalleDisponible},
		{NumeroSalle: "S-103", ServiceMedical: Pediatrie, StatutSalle: SalleDisponible},
		{NumeroSalle: "S-104", ServiceMedical: Dermatologie, StatutSalle: SalleDisponible},
		{NumeroSalle: "S-105", ServiceMedical: Ophtalmologie, StatutSalle: SalleDisponible},
		{NumeroSalle: "S-106", ServiceMedical: Radiologie, StatutSalle: SalleDisponible},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, salle := range initialSalles {
			if err := tx.FirstOrCreate(&salle, Salle{NumeroSalle: salle.NumeroSalle}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
