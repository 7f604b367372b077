package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

// UpdateRepository stores the per-equipment update log.
type UpdateRepository struct {
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) *UpdateRepository {
	return &UpdateRepository{db: db}
}

// Create inserts update, stamping it with the current time unless a
// timestamp was supplied.
func (r *UpdateRepository) Create(ctx context.Context, update *models.Update) error {
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(update).Error; err != nil {
		return fmt.Errorf("create update: %w", err)
	}
	return nil
}

// ListByEquipment returns the log most recent first.
func (r *UpdateRepository) ListByEquipment(ctx context.Context, equipmentID uint) ([]models.Update, error) {
	var updates []models.Update
	if err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order("id DESC").
		Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}
	return updates, nil
}
