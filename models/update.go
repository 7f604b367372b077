package models

import "time"

// Update is a free-text log entry recorded against a piece of equipment.
type Update struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EquipmentID uint       `gorm:"not null;index" json:"equipment_id"`
	Equipment   *Equipment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Timestamp   time.Time  `gorm:"not null;index" json:"timestamp"`
}
