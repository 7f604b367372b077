package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

// Store bundles the per-entity repositories handed to request handlers.
type Store struct {
	Equipment *EquipmentRepository
	Tasks     *TaskRepository
	Updates   *UpdateRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Equipment: NewEquipmentRepository(db),
		Tasks:     NewTaskRepository(db),
		Updates:   NewUpdateRepository(db),
	}
}

// EquipmentFilter narrows the dashboard listing. Zero value lists everything.
type EquipmentFilter struct {
	Status models.EquipmentStatus `json:"status,omitempty"`
	Query  string                 `json:"q,omitempty"`
}

// likeEscaper makes search input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// EquipmentRepository handles CRUD for equipment.
type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, equipment *models.Equipment) error {
	if err := r.db.WithContext(ctx).Create(equipment).Error; err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uint) (*models.Equipment, error) {
	var equipment models.Equipment
	if err := r.db.WithContext(ctx).First(&equipment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &equipment, nil
}

// List returns equipment newest first.
func (r *EquipmentRepository) List(ctx context.Context, filter EquipmentFilter) ([]models.Equipment, error) {
	query := r.db.WithContext(ctx).Model(&models.Equipment{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := "%" + likeEscaper.Replace(q) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`, like, like)
	}

	var equipment []models.Equipment
	if err := query.Order("created_at DESC").Order("id DESC").Find(&equipment).Error; err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return equipment, nil
}

// Delete removes the equipment together with its tasks and updates.
func (r *EquipmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var equipment models.Equipment
		if err := tx.Select("id").First(&equipment, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("equipment_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete equipment tasks: %w", err)
		}
		if err := tx.Where("equipment_id = ?", id).Delete(&models.Update{}).Error; err != nil {
			return fmt.Errorf("delete equipment updates: %w", err)
		}
		if err := tx.Delete(&models.Equipment{}, id).Error; err != nil {
			return fmt.Errorf("delete equipment: %w", err)
		}
		return nil
	})
}
