package repositories

import (
	"GestionClinique/models"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// StatRepository persists the cached aggregate rows. The aggregates
// themselves are computed by the stat service from the entity repositories.
type StatRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) FindJour(ctx context.Context, jour string) (*models.StatDuJour, error) {
	var stat models.StatDuJour
	err := r.db.WithContext(ctx).First(&stat, "jour = ?", jour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get stat du jour")
	}
	return &stat, nil
}

// UpsertJour overwrites the daily row for its key, creating it when absent.
func (r *StatRepository) UpsertJour(ctx context.Context, stat *models.StatDuJour) error {
	existing, err := r.FindJour(ctx, stat.Jour)
	if err != nil {
		return err
	}
	if existing != nil {
		stat.ID = existing.ID
	}
	if err := r.db.WithContext(ctx).Save(stat).Error; err != nil {
		return errors.Wrap(err, "failed to save stat du jour")
	}
	return nil
}

func (r *StatRepository) FindMois(ctx context.Context, mois string) (*models.StatsMois, error) {
	var stat models.StatsMois
	err := r.db.WithContext(ctx).First(&stat, "mois = ?", mois).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get stats mois")
	}
	return &stat, nil
}

func (r *StatRepository) UpsertMois(ctx context.Context, stat *models.StatsMois) error {
	existing, err := r.FindMois(ctx, stat.Mois)
	if err != nil {
		return err
	}
	if existing != nil {
		stat.ID = existing.ID
	}
	if err := r.db.WithContext(ctx).Save(stat).Error; err != nil {
		return errors.Wrap(err, "failed to save stats mois")
	}
	return nil
}

func (r *StatRepository) FindAnnee(ctx context.Context, annee string) (*models.StatsSurLannee, error) {
	var stat models.StatsSurLannee
	err := r.db.WithContext(ctx).First(&stat, "annee = ?", annee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get stats sur l'annee")
	}
	return &stat, nil
}

func (r *StatRepository) UpsertAnnee(ctx context.Context, stat *models.StatsSurLannee) error {
	existing, err := r.FindAnnee(ctx, stat.Annee)
	if err != nil {
		return err
	}
	if existing != nil {
		stat.ID = existing.ID
	}
	if err := r.db.WithContext(ctx).Save(stat).Error; err != nil {
		return errors.Wrap(err, "failed to save stats sur l'annee")
	}
	return nil
}
