package models

// StatDuJour caches daily aggregates, one row per ISO date.
type StatDuJour struct {
	ID                    uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Jour                  string  `gorm:"column:jour;unique;not null" json:"jour"`
	NbrRendezVousConfirme int64   `gorm:"column:nbr_rendez_vous_confirme" json:"nbr_rendez_vous_confirme"`
	NbrRendezVousAnnule   int64   `gorm:"column:nbr_rendez_vous_annule" json:"nbr_rendez_vous_annule"`
	NbrPatientEnrg        int64   `gorm:"column:nbr_patient_enrg" json:"nbr_patient_enrg"`
	NbrConsultation       int64   `gorm:"column:nbr_consultation" json:"nbr_consultation"`
	Revenu                float64 `gorm:"column:revenu" json:"revenu"`
}

func (StatDuJour) TableName() string {
	return "stat_du_jour"
}

// StatsMois caches monthly aggregates, one row per month name.
type StatsMois struct {
	ID                    uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Mois                  string  `gorm:"column:mois;unique;not null" json:"mois"`
	NbrRendezVousConfirme int64   `gorm:"column:nbr_rendez_vous_confirme" json:"nbr_rendez_vous_confirme"`
	NbrRendezVousAnnule   int64   `gorm:"column:nbr_rendez_vous_annule" json:"nbr_rendez_vous_annule"`
	NbrPatientEnrg        int64   `gorm:"column:nbr_patient_enrg" json:"nbr_patient_enrg"`
	NbrConsultation       int64   `gorm:"column:nbr_consultation" json:"nbr_consultation"`
	Revenu                float64 `gorm:"column:revenu" json:"revenu"`
}

func (StatsMois) TableName() string {
	return "stats_mois"
}

// StatsSurLannee caches yearly aggregates, one row per year string.
type StatsSurLannee struct {
	ID                    uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Annee                 string  `gorm:"column:annee;unique;not null" json:"annee"`
	NbrRendezVousConfirme int64   `gorm:"column:nbr_rendez_vous_confirme" json:"nbr_rendez_vous_confirme"`
	NbrRendezVousAnnule   int64   `gorm:"column:nbr_rendez_vous_annule" json:"nbr_rendez_vous_annule"`
	NbrPatientEnrg        int64   `gorm:"column:nbr_patient_enrg" json:"nbr_patient_enrg"`
	NbrConsultation       int64   `gorm:"column:nbr_consultation" json:"nbr_consultation"`
	Revenu                float64 `gorm:"column:revenu" json:"revenu"`
}

func (StatsSurLannee) TableName() string {
	return "stats_sur_lannee"
}

// Month names used as StatsMois keys, January first.
var MoisNoms = []string{
	"JANVIER", "FEVRIER", "MARS", "AVRIL", "MAI", "JUIN",
	"JUILLET", "AOUT", "SEPTEMBRE", "OCTOBRE", "NOVEMBRE", "DECEMBRE",
}

// NomDuMois returns the stat key of a month number (1-12).
func NomDuMois(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MoisNoms[month-1]
}
