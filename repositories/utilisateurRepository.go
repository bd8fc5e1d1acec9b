package repositories

import (
	"GestionClinique/cache"
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UtilisateurRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUtilisateurRepository(db *gorm.DB, cache *cache.Cache) *UtilisateurRepository {
	return &UtilisateurRepository{db: db, cache: cache}
}

func (r *UtilisateurRepository) Create(ctx context.Context, utilisateur *models.Utilisateur) error {
	if err := r.db.WithContext(ctx).Create(utilisateur).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ConflictError("un utilisateur avec cet email existe déjà")
		}
		return errors.Wrap(err, "failed to create utilisateur")
	}
	return nil
}

func (r *UtilisateurRepository) GetByID(ctx context.Context, id uint) (*models.Utilisateur, error) {
	var utilisateur models.Utilisateur
	err := r.db.WithContext(ctx).First(&utilisateur, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("utilisateur", id)
		}
		return nil, errors.Wrap(err, "failed to get utilisateur")
	}
	return &utilisateur, nil
}

// GetByEmail returns nil when no account matches; login treats that the same
// as a bad password.
func (r *UtilisateurRepository) GetByEmail(ctx context.Context, email string) (*models.Utilisateur, error) {
	var utilisateur models.Utilisateur
	err := r.db.WithContext(ctx).First(&utilisateur, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get utilisateur by email")
	}
	return &utilisateur, nil
}

func (r *UtilisateurRepository) GetAll(ctx context.Context) ([]models.Utilisateur, error) {
	var utilisateurs []models.Utilisateur
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&utilisateurs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all utilisateurs")
	}
	return utilisateurs, nil
}

func (r *UtilisateurRepository) FindByRole(ctx context.Context, role string) ([]models.Utilisateur, error) {
	var utilisateurs []models.Utilisateur
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("nom ASC").Find(&utilisateurs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get utilisateurs by role")
	}
	return utilisateurs, nil
}

func (r *UtilisateurRepository) Save(ctx context.Context, utilisateur *models.Utilisateur) error {
	if err := r.db.WithContext(ctx).Save(utilisateur).Error; err != nil {
		return errors.Wrap(err, "failed to update utilisateur")
	}
	return nil
}

func (r *UtilisateurRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Utilisateur{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete utilisateur")
	}
	return nil
}
