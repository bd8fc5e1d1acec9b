package repositories

import (
	"GestionClinique/cache"
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SalleRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewSalleRepository(db *gorm.DB, cache *cache.Cache) *SalleRepository {
	return &SalleRepository{db: db, cache: cache}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *SalleRepository) WithTx(tx *gorm.DB) *SalleRepository {
	return &SalleRepository{db: tx, cache: r.cache}
}

func (r *SalleRepository) Create(ctx context.Context, salle *models.Salle) error {
	if err := r.db.WithContext(ctx).Create(salle).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ConflictError("une salle avec ce numéro existe déjà")
		}
		return errors.Wrap(err, "failed to create salle")
	}
	return nil
}

func (r *SalleRepository) GetByID(ctx context.Context, id uint) (*models.Salle, error) {
	var salle models.Salle
	err := r.db.WithContext(ctx).First(&salle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("salle", id)
		}
		return nil, errors.Wrap(err, "failed to get salle")
	}
	return &salle, nil
}

func (r *SalleRepository) GetAll(ctx context.Context) ([]models.Salle, error) {
	var salles []models.Salle
	err := r.db.WithContext(ctx).Order("numero_salle ASC").Find(&salles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all salles")
	}
	return salles, nil
}

// FindByServiceMedical returns the designated salle of a medical service,
// nil when the service has none.
func (r *SalleRepository) FindByServiceMedical(ctx context.Context, service models.ServiceMedical) (*models.Salle, error) {
	var salle models.Salle
	err := r.db.WithContext(ctx).First(&salle, "service_medical = ?", service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get salle by service")
	}
	return &salle, nil
}

// UpdateStatut sets the occupancy status of a salle.
func (r *SalleRepository) UpdateStatut(ctx context.Context, id uint, statut models.StatutSalle) error {
	err := r.db.WithContext(ctx).
		Model(&models.Salle{}).
		Where("id = ?", id).
		Update("statut_salle", statut).Error
	return errors.Wrap(err, "failed to update salle status")
}

func (r *SalleRepository) Save(ctx context.Context, salle *models.Salle) error {
	if err := r.db.WithContext(ctx).Save(salle).Error; err != nil {
		return errors.Wrap(err, "failed to update salle")
	}
	return nil
}
