package repositories

import (
	"GestionClinique/cache"
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type FactureRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFactureRepository(db *gorm.DB, cache *cache.Cache) *FactureRepository {
	return &FactureRepository{db: db, cache: cache}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *FactureRepository) WithTx(tx *gorm.DB) *FactureRepository {
	return &FactureRepository{db: tx, cache: r.cache}
}

func (r *FactureRepository) Create(ctx context.Context, facture *models.Facture) error {
	if err := r.db.WithContext(ctx).Create(facture).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ConflictError("une facture existe déjà pour ce rendez-vous ou cette consultation")
		}
		return errors.Wrap(err, "failed to create facture")
	}
	r.invalidate(ctx, facture.ID)
	return nil
}

func (r *FactureRepository) GetByID(ctx context.Context, id uint) (*models.Facture, error) {
	var facture models.Facture
	err := r.db.WithContext(ctx).First(&facture, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("facture", id)
		}
		return nil, errors.Wrap(err, "failed to get facture")
	}
	return &facture, nil
}

func (r *FactureRepository) GetAll(ctx context.Context) ([]models.Facture, error) {
	var factures []models.Facture
	err := r.db.WithContext(ctx).Order("date_emission DESC").Find(&factures).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all factures")
	}
	return factures, nil
}

// FindByRendezVousID returns the facture of a rendez-vous, nil when none.
func (r *FactureRepository) FindByRendezVousID(ctx context.Context, rendezVousID uint) (*models.Facture, error) {
	var facture models.Facture
	err := r.db.WithContext(ctx).First(&facture, "rendez_vous_id = ?", rendezVousID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get facture by rendez-vous")
	}
	return &facture, nil
}

// FindByConsultationID returns the facture of a consultation, nil when none.
func (r *FactureRepository) FindByConsultationID(ctx context.Context, consultationID uint) (*models.Facture, error) {
	var facture models.Facture
	err := r.db.WithContext(ctx).First(&facture, "consultation_id = ?", consultationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get facture by consultation")
	}
	return &facture, nil
}

func (r *FactureRepository) FindByStatut(ctx context.Context, statut models.StatutPaiement) ([]models.Facture, error) {
	var factures []models.Facture
	err := r.db.WithContext(ctx).
		Where("statut_paiement = ?", statut).
		Order("date_emission DESC").
		Find(&factures).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get factures by statut")
	}
	return factures, nil
}

// MarkPayee flips the facture to PAYEE only when it is still IMPAYEE; the
// guard makes concurrent payments of the same facture succeed exactly once.
func (r *FactureRepository) MarkPayee(ctx context.Context, id uint, mode models.ModePaiement) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Facture{}).
		Where("id = ? AND statut_paiement = ?", id, models.FactureImpayee).
		Updates(map[string]interface{}{
			"statut_paiement": models.FacturePayee,
			"mode_paiement":   mode,
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to mark facture as paid")
	}
	r.invalidate(ctx, id)
	return res.RowsAffected > 0, nil
}

func (r *FactureRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Facture{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete facture")
	}
	r.invalidate(ctx, id)
	return nil
}

// SumRevenuBetween totals paid factures issued in [from, to).
func (r *FactureRepository) SumRevenuBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Facture{}).
		Where("statut_paiement = ?", models.FacturePayee).
		Where("date_emission >= ? AND date_emission < ?", from, to).
		Select("COALESCE(SUM(montant), 0)").
		Scan(&total).Error
	return total, errors.Wrap(err, "failed to sum revenue")
}

func (r *FactureRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, fmt.Sprintf("facture_cache:%d", id)); err != nil {
		log.Printf("Failed to delete facture cache: %v", err)
	}
}
