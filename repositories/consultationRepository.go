package repositories

import (
	"GestionClinique/cache"
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsultationRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewConsultationRepository(db *gorm.DB, cache *cache.Cache) *ConsultationRepository {
	return &ConsultationRepository{db: db, cache: cache}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ConsultationRepository) WithTx(tx *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: tx, cache: r.cache}
}

// Create persists the consultation together with its prescriptions.
func (r *ConsultationRepository) Create(ctx context.Context, consultation *models.Consultation) error {
	if err := r.db.WithContext(ctx).Create(consultation).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ConflictError("le rendez-vous est déjà lié à une consultation")
		}
		return errors.Wrap(err, "failed to create consultation")
	}
	return nil
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id uint) (*models.Consultation, error) {
	var consultation models.Consultation
	err := r.db.WithContext(ctx).
		Preload("Medecin").
		Preload("Prescriptions").
		First(&consultation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("consultation", id)
		}
		return nil, errors.Wrap(err, "failed to get consultation")
	}
	return &consultation, nil
}

func (r *ConsultationRepository) GetAll(ctx context.Context) ([]models.Consultation, error) {
	var consultations []models.Consultation
	err := r.db.WithContext(ctx).
		Preload("Medecin").
		Preload("Prescriptions").
		Order("created_at DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all consultations")
	}
	return consultations, nil
}

// Save persists field changes only; the preloaded prescriptions are managed
// through their own writes.
func (r *ConsultationRepository) Save(ctx context.Context, consultation *models.Consultation) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(consultation).Error; err != nil {
		return errors.Wrap(err, "failed to update consultation")
	}
	return nil
}

// Delete removes the consultation row only; any rendez-vous keeps existing
// with its consultation link gone.
func (r *ConsultationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Consultation{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete consultation")
	}
	return nil
}

// FindByRendezVousID returns the consultation linked to a rendez-vous, nil
// when the rendez-vous has none.
func (r *ConsultationRepository) FindByRendezVousID(ctx context.Context, rendezVousID uint) (*models.Consultation, error) {
	var consultation models.Consultation
	err := r.db.WithContext(ctx).First(&consultation, "rendez_vous_id = ?", rendezVousID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get consultation by rendez-vous")
	}
	return &consultation, nil
}

// CountCreatedBetween counts consultations performed in [from, to).
func (r *ConsultationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, errors.Wrap(err, "failed to count consultations")
}
