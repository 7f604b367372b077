package forms

import (
	"strings"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

// EquipmentForm is the add-equipment submission.
type EquipmentForm struct {
	Name         string `form:"name" json:"name" validate:"required,max=200"`
	Description  string `form:"description" json:"description"`
	Status       string `form:"status" json:"status" validate:"omitempty,equipment_status"`
	Image        string `form:"image" json:"image" validate:"max=255"`
	Location     string `form:"location" json:"location" validate:"max=200"`
	PurchaseDate string `form:"purchase_date" json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
}

// Validate trims the submission and builds an Equipment from it.
func (f *EquipmentForm) Validate() (models.Equipment, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Status = strings.TrimSpace(f.Status)
	f.Image = strings.TrimSpace(f.Image)
	f.Location = strings.TrimSpace(f.Location)
	f.PurchaseDate = strings.TrimSpace(f.PurchaseDate)

	if err := check(f); err != nil {
		return models.Equipment{}, err
	}

	status := models.EquipmentStatus(f.Status)
	if status == "" {
		status = models.EquipmentActive
	}
	return models.Equipment{
		Name:         f.Name,
		Description:  f.Description,
		Status:       status,
		Image:        f.Image,
		Location:     f.Location,
		PurchaseDate: parseDate(f.PurchaseDate),
	}, nil
}
