package models

import "time"

// EquipmentStatus is the lifecycle state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentActive      EquipmentStatus = "active"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentBroken      EquipmentStatus = "broken"
	EquipmentStored      EquipmentStatus = "stored"
	EquipmentRetired     EquipmentStatus = "retired"
)

// EquipmentStatuses lists every accepted status in display order.
var EquipmentStatuses = []EquipmentStatus{
	EquipmentActive,
	EquipmentMaintenance,
	EquipmentBroken,
	EquipmentStored,
	EquipmentRetired,
}

var equipmentStatusLabels = map[EquipmentStatus]string{
	EquipmentActive:      "Active",
	EquipmentMaintenance: "Needs Maintenance",
	EquipmentBroken:      "Broken",
	EquipmentStored:      "Stored",
	EquipmentRetired:     "Retired",
}

func (s EquipmentStatus) Valid() bool {
	_, ok := equipmentStatusLabels[s]
	return ok
}

func (s EquipmentStatus) Label() string {
	if label, ok := equipmentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Equipment is a tracked physical item. Its tasks and updates are removed
// with it.
type Equipment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:200;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Status       EquipmentStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	Image        string          `gorm:"size:255" json:"image,omitempty"`
	Location     string          `gorm:"size:200" json:"location"`
	PurchaseDate *time.Time      `gorm:"type:date" json:"purchase_date,omitempty"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
