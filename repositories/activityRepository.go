package repositories

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type HistoriqueRepository struct {
	db *gorm.DB
}

func NewHistoriqueRepository(db *gorm.DB) *HistoriqueRepository {
	return &HistoriqueRepository{db: db}
}

func (r *HistoriqueRepository) Create(ctx context.Context, entry *models.HistoriqueAction) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return errors.Wrap(err, "failed to record historique action")
	}
	return nil
}

func (r *HistoriqueRepository) GetAll(ctx context.Context) ([]models.HistoriqueAction, error) {
	var entries []models.HistoriqueAction
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get historique actions")
	}
	return entries, nil
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return errors.Wrap(err, "failed to create notification")
	}
	return nil
}

func (r *NotificationRepository) FindByUtilisateur(ctx context.Context, utilisateurID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("utilisateur_id = ?", utilisateurID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get notifications")
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkLu(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("lu", true)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to mark notification as read")
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("notification", id)
	}
	return nil
}
