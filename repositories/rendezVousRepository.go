package repositories

import (
	"GestionClinique/cache"
	"GestionClinique/database"
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	RendezVousCacheExpiry  = 24 * time.Hour
	rendezVousListCacheKey = "rendezvous_cache"
)

type RendezVousRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewRendezVousRepository(db *gorm.DB, cache *cache.Cache) *RendezVousRepository {
	return &RendezVousRepository{db: db, cache: cache}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *RendezVousRepository) WithTx(tx *gorm.DB) *RendezVousRepository {
	return &RendezVousRepository{db: tx, cache: r.cache}
}

// isUniqueViolation detects duplicate-key failures from the partial slot
// indexes, for both the postgres and sqlite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *RendezVousRepository) Create(ctx context.Context, rendezVous *models.RendezVous) error {
	lockKey := fmt.Sprintf("rendezvous_lock:%s_%s_%d", rendezVous.Jour, rendezVous.Heure, rendezVous.MedecinID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil || !locked {
		return utils.ConflictError("le créneau horaire est déjà pris pour ce médecin ou cette salle")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := r.db.WithContext(ctx).Create(rendezVous).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ConflictError("le créneau horaire est déjà pris pour ce médecin ou cette salle")
		}
		return errors.Wrap(err, "failed to create rendez-vous")
	}
	r.invalidate(ctx, rendezVous.ID)
	return nil
}

func (r *RendezVousRepository) GetByID(ctx context.Context, id uint) (*models.RendezVous, error) {
	cacheKey := r.cacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		var rendezVous models.RendezVous
		if err := json.Unmarshal([]byte(cached), &rendezVous); err == nil {
			return &rendezVous, nil
		}
	} else if err != cache.ErrCacheMiss {
		log.Printf("Failed to get rendez-vous from cache: %v", err)
	}

	var rendezVous models.RendezVous
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin").
		Preload("Salle").
		First(&rendezVous, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("rendez-vous", id)
		}
		return nil, errors.Wrap(err, "failed to get rendez-vous")
	}

	if payload, err := json.Marshal(rendezVous); err == nil {
		if err := r.cache.Set(ctx, cacheKey, payload, RendezVousCacheExpiry); err != nil {
			log.Printf("Failed to set rendez-vous in cache: %v", err)
		}
	}
	return &rendezVous, nil
}

func (r *RendezVousRepository) GetAll(ctx context.Context) ([]models.RendezVous, error) {
	var rendezVous []models.RendezVous
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin").
		Preload("Salle").
		Order("jour DESC, heure DESC").
		Find(&rendezVous).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all rendez-vous")
	}
	return rendezVous, nil
}

// Save persists field changes only; preloaded associations are omitted so a
// stale Salle or Medecin struct cannot override the foreign keys.
func (r *RendezVousRepository) Save(ctx context.Context, rendezVous *models.RendezVous) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(rendezVous).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ConflictError("le créneau horaire est déjà pris pour ce médecin ou cette salle")
		}
		return errors.Wrap(err, "failed to update rendez-vous")
	}
	r.invalidate(ctx, rendezVous.ID)
	return nil
}

// UpdateStatutIf transitions the status only when the current status is one
// of from. Returns true when the row was updated; the conditional guard makes
// concurrent transitions on the same rendez-vous mutually exclusive.
func (r *RendezVousRepository) UpdateStatutIf(ctx context.Context, id uint, from []models.StatutRDV, to models.StatutRDV) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RendezVous{}).
		Where("id = ? AND statut IN ?", id, from).
		Update("statut", to)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to update rendez-vous status")
	}
	r.invalidate(ctx, id)
	return res.RowsAffected > 0, nil
}

func (r *RendezVousRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.RendezVous{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete rendez-vous")
	}
	r.invalidate(ctx, id)
	return nil
}

// FindSlotMedecin returns the non-cancelled rendez-vous occupying the
// (jour, heure, medecin) slot, nil when the slot is free.
func (r *RendezVousRepository) FindSlotMedecin(ctx context.Context, jour, heure string, medecinID uint) (*models.RendezVous, error) {
	return r.findSlot(ctx, "jour = ? AND heure = ? AND medecin_id = ? AND statut <> ?", jour, heure, medecinID)
}

// FindSlotSalle is FindSlotMedecin for the (jour, heure, salle) slot.
func (r *RendezVousRepository) FindSlotSalle(ctx context.Context, jour, heure string, salleID uint) (*models.RendezVous, error) {
	return r.findSlot(ctx, "jour = ? AND heure = ? AND salle_id = ? AND statut <> ?", jour, heure, salleID)
}

func (r *RendezVousRepository) findSlot(ctx context.Context, query, jour, heure string, ownerID uint) (*models.RendezVous, error) {
	var rendezVous models.RendezVous
	err := r.db.WithContext(ctx).
		Where(query, jour, heure, ownerID, models.RDVAnnule).
		First(&rendezVous).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query slot")
	}
	return &rendezVous, nil
}

func (r *RendezVousRepository) FindByJour(ctx context.Context, jour string) ([]models.RendezVous, error) {
	var rendezVous []models.RendezVous
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin").
		Preload("Salle").
		Where("jour = ?", jour).
		Order("heure ASC").
		Find(&rendezVous).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rendez-vous by jour")
	}
	return rendezVous, nil
}

// FindPendingBefore returns the EN_ATTENTE rendez-vous strictly older than
// jour, the working set of the expiry sweep.
func (r *RendezVousRepository) FindPendingBefore(ctx context.Context, jour string) ([]models.RendezVous, error) {
	var rendezVous []models.RendezVous
	err := r.db.WithContext(ctx).
		Where("jour < ? AND statut = ?", jour, models.RDVEnAttente).
		Find(&rendezVous).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stale rendez-vous")
	}
	return rendezVous, nil
}

func (r *RendezVousRepository) FindByJourBetween(ctx context.Context, from, to string) ([]models.RendezVous, error) {
	var rendezVous []models.RendezVous
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Medecin").
		Preload("Salle").
		Where("jour BETWEEN ? AND ?", from, to).
		Order("jour ASC, heure ASC").
		Find(&rendezVous).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rendez-vous by period")
	}
	return rendezVous, nil
}

func (r *RendezVousRepository) FindByMedecinStatutBetween(ctx context.Context, medecinID uint, statut models.StatutRDV, from, to string) ([]models.RendezVous, error) {
	var rendezVous []models.RendezVous
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Salle").
		Where("medecin_id = ? AND statut = ? AND jour BETWEEN ? AND ?", medecinID, statut, from, to).
		Order("jour ASC, heure ASC").
		Find(&rendezVous).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get medecin rendez-vous by period")
	}
	return rendezVous, nil
}

func (r *RendezVousRepository) CountByJourAndStatut(ctx context.Context, jour string, statut models.StatutRDV) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RendezVous{}).
		Where("jour = ? AND statut = ?", jour, statut).
		Count(&count).Error
	return count, errors.Wrap(err, "failed to count rendez-vous by jour")
}

// CountByMoisAndStatut counts over a month of the current year; jour is
// stored as an ISO date string so the month is substr(jour, 6, 2).
func (r *RendezVousRepository) CountByMoisAndStatut(ctx context.Context, annee string, mois int, statut models.StatutRDV) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RendezVous{}).
		Where("substr(jour, 1, 4) = ? AND substr(jour, 6, 2) = ? AND statut = ?", annee, fmt.Sprintf("%02d", mois), statut).
		Count(&count).Error
	return count, errors.Wrap(err, "failed to count rendez-vous by mois")
}

func (r *RendezVousRepository) CountByAnneeAndStatut(ctx context.Context, annee string, statut models.StatutRDV) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RendezVous{}).
		Where("substr(jour, 1, 4) = ? AND statut = ?", annee, statut).
		Count(&count).Error
	return count, errors.Wrap(err, "failed to count rendez-vous by annee")
}

func (r *RendezVousRepository) cacheKey(id uint) string {
	return fmt.Sprintf("rendezvous_cache:%d", id)
}

func (r *RendezVousRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.cacheKey(id)); err != nil {
		log.Printf("Failed to delete rendez-vous cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, rendezVousListCacheKey+"*"); err != nil {
		log.Printf("Failed to delete rendez-vous list cache: %v", err)
	}
}
