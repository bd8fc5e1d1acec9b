package repositories

import (
	"GestionClinique/cache"
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PatientRepository) WithTx(tx *gorm.DB) *PatientRepository {
	return &PatientRepository{db: tx, cache: r.cache}
}

// Create persists the patient and opens their dossier medical in one
// transaction; every patient has exactly one dossier from day one.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return errors.Wrap(err, "failed to create patient")
		}
		dossier := models.DossierMedical{PatientID: patient.ID}
		if err := tx.Create(&dossier).Error; err != nil {
			return errors.Wrap(err, "failed to create dossier medical")
		}
		return nil
	})
}

func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("patient", id)
		}
		return nil, errors.Wrap(err, "failed to get patient")
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all patients")
	}
	return patients, nil
}

func (r *PatientRepository) Save(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return errors.Wrap(err, "failed to update patient")
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.DossierMedical{}, "patient_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "failed to delete dossier medical")
		}
		if err := tx.Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
			return errors.Wrap(err, "failed to delete patient")
		}
		return nil
	})
}

// GetDossierByPatientID returns the patient's dossier medical, nil when the
// patient has none.
func (r *PatientRepository) GetDossierByPatientID(ctx context.Context, patientID uint) (*models.DossierMedical, error) {
	var dossier models.DossierMedical
	err := r.db.WithContext(ctx).First(&dossier, "patient_id = ?", patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get dossier medical")
	}
	return &dossier, nil
}

func (r *PatientRepository) GetDossierByID(ctx context.Context, id uint) (*models.DossierMedical, error) {
	var dossier models.DossierMedical
	err := r.db.WithContext(ctx).First(&dossier, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("dossier medical", id)
		}
		return nil, errors.Wrap(err, "failed to get dossier medical")
	}
	return &dossier, nil
}

func (r *PatientRepository) SaveDossier(ctx context.Context, dossier *models.DossierMedical) error {
	if err := r.db.WithContext(ctx).Save(dossier).Error; err != nil {
		return errors.Wrap(err, "failed to update dossier medical")
	}
	return nil
}

// CountRegisteredBetween counts patients registered in [from, to).
func (r *PatientRepository) CountRegisteredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, errors.Wrap(err, "failed to count patients")
}
